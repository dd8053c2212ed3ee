package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/entrhq/scribby/pkg/config"
	"github.com/entrhq/scribby/pkg/executor/cli"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/render"
	"github.com/entrhq/scribby/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4",
"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Subjective: dysuria."}}]}`

type completionServer struct {
	url    string
	calls  atomic.Int32
	bodies chan string
}

func newCompletionServer(t *testing.T) *completionServer {
	t.Helper()
	s := &completionServer{bodies: make(chan string, 4)}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		s.bodies <- string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody)
	}))
	t.Cleanup(server.Close)
	s.url = server.URL
	return s
}

func TestRunOneShot(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		setup     func(t *testing.T, home string, cfg *Config)
		wantErr   string
		wantIs    error
		wantOut   string
		wantCalls int32
		check     func(t *testing.T, home string, server *completionServer, stderr string)
	}{
		{name: "list", cfg: Config{List: true}},
		{
			name: "set key",
			cfg:  Config{SetKey: "sk-saved"},
			check: func(t *testing.T, home string, _ *completionServer, stderr string) {
				assert.Contains(t, stderr, "API key saved.")
				settings, err := config.Open(home)
				require.NoError(t, err)
				key, err := settings.Credentials("").APIKey()
				require.NoError(t, err)
				assert.Equal(t, "sk-saved", key)
			},
		},
		{
			name:   "show last with empty cache",
			cfg:    Config{ShowLast: true, Print: true},
			wantIs: render.ErrNothingToShow,
		},
		{
			name: "show last with cached result",
			cfg:  Config{ShowLast: true, Print: true},
			setup: func(t *testing.T, home string, _ *Config) {
				settings, err := config.Open(home)
				require.NoError(t, err)
				require.NoError(t, settings.ResultCache().Save("<p><strong>Plan</strong>: CT KUB</p>"))
			},
			wantOut: "Plan: CT KUB\n",
		},
		{
			name:      "action with text",
			cfg:       Config{APIKey: "sk-test", Action: "summarize", Text: "burning on urination"},
			wantOut:   "Subjective: dysuria.\n",
			wantCalls: 1,
			check: func(t *testing.T, _ string, server *completionServer, _ string) {
				assert.Contains(t, <-server.bodies, `Summarize based on:\nburning on urination`)
			},
		},
		{
			name: "intake from file",
			cfg:  Config{APIKey: "sk-test"},
			setup: func(t *testing.T, home string, cfg *Config) {
				path := filepath.Join(home, "answers.yaml")
				answers := "name: Jane\nage: \"40\"\nreason: Other\n"
				require.NoError(t, os.WriteFile(path, []byte(answers), 0600))
				cfg.Intake = path
			},
			wantOut:   "Subjective: dysuria.\n",
			wantCalls: 1,
			check: func(t *testing.T, _ string, server *completionServer, _ string) {
				assert.Contains(t, <-server.bodies, `Reason for Visit: Other`)
			},
		},
		{
			name:    "print alone",
			cfg:     Config{Print: true},
			wantErr: "-print needs -action, -intake or -show-last",
		},
		{
			name:    "missing key",
			cfg:     Config{Action: "summarize", Text: "note"},
			wantErr: types.Failed(types.FailureMissingCredential, nil).Display(),
			check: func(t *testing.T, _ string, _ *completionServer, stderr string) {
				assert.Contains(t, stderr, "-set-key")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("OPENAI_BASE_URL", "")
			home := t.TempDir()
			server := newCompletionServer(t)

			cfg := tt.cfg
			cfg.HomeDir = home
			cfg.BaseURL = server.url
			cfg.Format = string(cli.FormatText)
			if tt.setup != nil {
				tt.setup(t, home, &cfg)
			}

			d, surface, err := newPipeline(&cfg, logging.Discard(), nil)
			require.NoError(t, err)

			var stdout, stderr bytes.Buffer
			err = runOneShot(context.Background(), &cfg, d, surface, &stdout, &stderr)

			switch {
			case tt.wantIs != nil:
				assert.ErrorIs(t, err, tt.wantIs)
			case tt.wantErr != "":
				assert.EqualError(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Equal(t, tt.wantOut, stdout.String())
			}
			assert.Equal(t, tt.wantCalls, server.calls.Load())
			if tt.check != nil {
				tt.check(t, home, server, stderr.String())
			}
		})
	}
}

func TestRunOneShot_ListWritesActions(t *testing.T) {
	cfg := Config{List: true, HomeDir: t.TempDir()}
	d, surface, err := newPipeline(&cfg, logging.Discard(), nil)
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, runOneShot(context.Background(), &cfg, d, surface, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "create-soap-note")
	assert.Contains(t, stdout.String(), "scribby")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Config{Format: "text"}},
		{name: "text and file", cfg: Config{Format: "text", Text: "a", File: "b"}, wantErr: "use either -text or -file, not both"},
		{name: "action and intake", cfg: Config{Format: "text", Action: "summarize", Intake: "a.yaml"}, wantErr: "use either -action or -intake, not both"},
		{name: "negative timeout", cfg: Config{Format: "text", Timeout: -time.Second}, wantErr: "timeout must not be negative"},
		{name: "unknown format", cfg: Config{Format: "pdf"}, wantErr: `unknown output format "pdf"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestConfigOneShot(t *testing.T) {
	assert.False(t, (&Config{}).oneShot())
	assert.False(t, (&Config{ShowLast: true}).oneShot(), "show-last alone opens the editor")
	assert.True(t, (&Config{Intake: "a.yaml"}).oneShot())
	assert.True(t, (&Config{ShowLast: true, Print: true}).oneShot())
}

func TestReadText(t *testing.T) {
	text, err := readText(&Config{Text: "inline"}, true)
	require.NoError(t, err)
	assert.Equal(t, "inline", text)

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file\n"), 0600))
	text, err = readText(&Config{File: path}, true)
	require.NoError(t, err)
	assert.Equal(t, "from file\n", text)

	_, err = readText(&Config{File: filepath.Join(t.TempDir(), "missing.txt")}, true)
	assert.ErrorContains(t, err, "failed to open")
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, &cli.FailureError{Result: types.Failed(types.FailureHTTPStatus, nil)})
	assert.Empty(t, buf.String(), "failed results are already on stderr")

	reportError(&buf, errors.New("failed to load settings"))
	assert.Equal(t, "scribby: failed to load settings\n", buf.String())
}
