package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/entrhq/scribby/pkg/llm"
	"github.com/entrhq/scribby/pkg/llm/openai"
)

// Overrides are endpoint settings given on the command line.
type Overrides struct {
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

// ProviderFactory builds a provider for one request. The key is resolved per
// request because it can be saved while the program runs.
type ProviderFactory func(apiKey string) (llm.Provider, error)

// NewProviderFactory resolves endpoint settings with the precedence
// CLI flags > environment variables > settings file > defaults.
func NewProviderFactory(s *Settings, o Overrides) ProviderFactory {
	return func(apiKey string) (llm.Provider, error) {
		model := o.Model
		if model == "" {
			model = s.LLM().GetModel()
		}
		if model == "" {
			model = DefaultModel
		}

		baseURL := o.BaseURL
		if baseURL == "" {
			baseURL = os.Getenv("OPENAI_BASE_URL")
		}
		if baseURL == "" {
			baseURL = s.LLM().GetBaseURL()
		}

		opts := []openai.ProviderOption{openai.WithModel(model)}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		if o.HTTPClient != nil {
			opts = append(opts, openai.WithHTTPClient(o.HTTPClient))
		}

		provider, err := openai.NewProvider(apiKey, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM provider: %w", err)
		}
		return provider, nil
	}
}
