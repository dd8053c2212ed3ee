package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/entrhq/scribby/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "  Subjective: dysuria for 3 days.\n"}},
    {"index": 1, "finish_reason": "stop", "message": {"role": "assistant", "content": "second"}}
  ]
}`

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewProvider("sk-test", WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return p
}

func testMessages() []*types.Message {
	return []*types.Message{
		types.NewSystemMessage("system text"),
		types.NewUserMessage("Summarize based on:\nnote"),
	}
}

func TestNewProvider(t *testing.T) {
	t.Run("requires api key", func(t *testing.T) {
		_, err := NewProvider("")
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("defaults", func(t *testing.T) {
		p, err := NewProvider("sk-test")
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, p.GetModel())
		assert.Equal(t, DefaultBaseURL, p.GetBaseURL())
		assert.Equal(t, "openai", p.GetModelInfo().Provider)
		assert.NotContains(t, p.GetModelInfo().Metadata, "base_url")
	})

	t.Run("options", func(t *testing.T) {
		p, err := NewProvider("sk-test", WithModel("gpt-4o"), WithBaseURL("http://localhost:8080/v1/"))
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o", p.GetModel())
		assert.Equal(t, "http://localhost:8080/v1", p.GetBaseURL())
		assert.Equal(t, "gpt-4o", p.GetModelInfo().Name)
		assert.Equal(t, "http://localhost:8080/v1", p.GetModelInfo().Metadata["base_url"])
	})
}

func TestComplete_Request(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotAuth   string
		gotType   string
		gotBody   map[string]interface{}
	)

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	})

	_, err := p.Complete(context.Background(), testMessages())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "gpt-4", gotBody["model"])
	assert.Equal(t, float64(0), gotBody["temperature"])

	msgs, ok := gotBody["messages"].([]interface{})
	require.True(t, ok, "messages should be a list")
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]interface{})
	second := msgs[1].(map[string]interface{})
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "system text", first["content"])
	assert.Equal(t, "user", second["role"])
	assert.Equal(t, "Summarize based on:\nnote", second["content"])
}

func TestComplete_ReturnsTrimmedFirstChoice(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, completionBody)
	})

	reply, err := p.Complete(context.Background(), testMessages())
	require.NoError(t, err)
	assert.Equal(t, types.RoleAssistant, reply.Role)
	assert.Equal(t, "Subjective: dysuria for 3 days.", reply.Content)
}

func TestComplete_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"error":{"message":"Incorrect API key provided"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
				assert.Contains(t, apiErr.Body, "Incorrect API key")
				assert.NotEmpty(t, err.Error())
			},
		},
		{
			name:   "server error without body",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "API request failed with status 500", apiErr.Error())
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `not json`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			},
		},
		{
			name:   "blank content",
			status: http.StatusOK,
			body:   `{"choices":[{"index":0,"message":{"role":"assistant","content":"   "}}]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrEmptyResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			reply, err := p.Complete(context.Background(), testMessages())
			require.Error(t, err)
			assert.Nil(t, reply)
			tt.check(t, err)
		})
	}
}

func TestComplete_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	p, err := NewProvider("sk-test", WithBaseURL(url))
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), testMessages())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestComplete_Canceled(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Complete(ctx, testMessages())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvertToOpenAIMessages(t *testing.T) {
	msgs := convertToOpenAIMessages([]*types.Message{
		types.NewSystemMessage("s"),
		types.NewUserMessage("u"),
		types.NewAssistantMessage("a"),
		{Role: "tool", Content: "x"},
	})
	require.Len(t, msgs, 4)

	raw, err := json.Marshal(msgs)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "system", decoded[0]["role"])
	assert.Equal(t, "user", decoded[1]["role"])
	assert.Equal(t, "assistant", decoded[2]["role"])
	assert.Equal(t, "user", decoded[3]["role"])
}
