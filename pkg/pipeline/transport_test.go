package pipeline

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/llm"
	"github.com/entrhq/scribby/pkg/llm/openai"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clinicalText = "Patient reports gross hematuria since Monday."

func serverFactory(t *testing.T, status int, body string, calls *int) func(string) (llm.Provider, error) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return func(apiKey string) (llm.Provider, error) {
		return openai.NewProvider(apiKey, openai.WithBaseURL(server.URL))
	}
}

func TestTransport_MissingKeyMakesNoCall(t *testing.T) {
	calls := 0
	transport := NewTransport(serverFactory(t, http.StatusOK, `{}`, &calls))

	result := transport.Send(context.Background(), "", actions.Request{Action: actions.Summarize, SourceText: clinicalText})

	assert.False(t, result.IsSuccess())
	assert.Equal(t, types.FailureMissingCredential, result.Failure)
	assert.Equal(t, 0, calls)
}

func TestTransport_Success(t *testing.T) {
	calls := 0
	body := `{"choices":[{"index":0,"message":{"role":"assistant","content":"\n Plan: CT urogram. \n"}}]}`
	var logs bytes.Buffer
	transport := NewTransport(serverFactory(t, http.StatusOK, body, &calls),
		WithTransportLogger(logging.New("transport", &logs)))

	result := transport.Send(context.Background(), "sk-test", actions.Request{Action: actions.Summarize, SourceText: clinicalText})

	require.True(t, result.IsSuccess(), result.Display())
	assert.Equal(t, "Plan: CT urogram.", result.Text)
	assert.Equal(t, 1, calls)
	assert.Contains(t, logs.String(), "action=summarize")
	assert.NotContains(t, logs.String(), clinicalText)
}

func TestTransport_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   types.FailureCode
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{}}`, code: types.FailureHTTPStatus},
		{name: "rate limited", status: http.StatusTooManyRequests, code: types.FailureHTTPStatus},
		{name: "malformed", status: http.StatusOK, body: `<html>`, code: types.FailureMalformedResponse},
		{name: "empty", status: http.StatusOK, body: `{"choices":[]}`, code: types.FailureEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			transport := NewTransport(serverFactory(t, tt.status, tt.body, &calls))

			result := transport.Send(context.Background(), "sk-test", actions.Request{Action: actions.GenerateHPI, SourceText: clinicalText})

			assert.False(t, result.IsSuccess())
			assert.Equal(t, tt.code, result.Failure)
			assert.NotEmpty(t, result.Display())
			assert.Equal(t, 1, calls, "exactly one round trip")
		})
	}
}

func TestTransport_Canceled(t *testing.T) {
	calls := 0
	transport := NewTransport(serverFactory(t, http.StatusOK, `{}`, &calls))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := transport.Send(ctx, "sk-test", actions.Request{Action: actions.Summarize, SourceText: clinicalText})
	assert.Equal(t, types.FailureCanceled, result.Failure)
}

func TestTransport_FactoryError(t *testing.T) {
	transport := NewTransport(func(string) (llm.Provider, error) {
		return nil, assert.AnError
	})

	result := transport.Send(context.Background(), "sk-test", actions.Request{Action: actions.Summarize, SourceText: clinicalText})
	assert.Equal(t, types.FailureNetwork, result.Failure)
	assert.ErrorIs(t, result.Err, assert.AnError)
}
