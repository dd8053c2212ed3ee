package pipeline

import (
	"context"
	"errors"

	"github.com/entrhq/scribby/pkg/actions"
	"github.com/entrhq/scribby/pkg/config"
	"github.com/entrhq/scribby/pkg/llm/openai"
	"github.com/entrhq/scribby/pkg/llm/tokenizer"
	"github.com/entrhq/scribby/pkg/logging"
	"github.com/entrhq/scribby/pkg/types"
	"github.com/google/uuid"
)

// Sender performs one completion round trip for a request.
type Sender interface {
	Send(ctx context.Context, apiKey string, req actions.Request) types.Result
}

// Transport turns a request into exactly one completion call and reports the
// outcome as a Result. It never retries.
type Transport struct {
	newProvider config.ProviderFactory
	tokenizer   *tokenizer.Tokenizer
	logger      *logging.Logger
}

var _ Sender = (*Transport)(nil)

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithTransportLogger sets the logger for request metadata.
func WithTransportLogger(l *logging.Logger) TransportOption {
	return func(t *Transport) {
		t.logger = l
	}
}

// WithTokenizer sets the tokenizer used for the logged token estimate.
// Without one the estimate is approximate.
func WithTokenizer(tok *tokenizer.Tokenizer) TransportOption {
	return func(t *Transport) {
		t.tokenizer = tok
	}
}

// NewTransport creates a transport building providers with newProvider.
func NewTransport(newProvider config.ProviderFactory, opts ...TransportOption) *Transport {
	t := &Transport{newProvider: newProvider}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send builds the conversation for req and sends it authenticated by apiKey.
// An empty key fails without touching the network.
func (t *Transport) Send(ctx context.Context, apiKey string, req actions.Request) types.Result {
	if apiKey == "" {
		return types.Failed(types.FailureMissingCredential, nil)
	}

	requestID := uuid.New().String()
	messages := actions.Messages(req)
	t.logger.Infof("request %s action=%s kind=%s source_len=%d tokens=%d",
		requestID, req.Action.ID, req.Action.Kind, len(req.SourceText), t.tokenizer.CountMessagesTokens(messages))

	provider, err := t.newProvider(apiKey)
	if err != nil {
		t.logger.Errorf("request %s: %v", requestID, err)
		return types.Failed(types.FailureNetwork, err)
	}

	reply, err := provider.Complete(ctx, messages)
	if err != nil {
		code := classify(ctx, err)
		t.logger.Warnf("request %s failed: code=%s model=%s", requestID, code, provider.GetModel())
		return types.Failed(code, err)
	}

	t.logger.Infof("request %s done: reply_len=%d", requestID, len(reply.Content))
	return types.Success(reply.Content)
}

func classify(ctx context.Context, err error) types.FailureCode {
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr):
		return types.FailureHTTPStatus
	case errors.Is(err, openai.ErrMalformedResponse):
		return types.FailureMalformedResponse
	case errors.Is(err, openai.ErrEmptyResponse):
		return types.FailureEmptyResponse
	case errors.Is(err, context.Canceled), errors.Is(ctx.Err(), context.Canceled):
		return types.FailureCanceled
	default:
		return types.FailureNetwork
	}
}
