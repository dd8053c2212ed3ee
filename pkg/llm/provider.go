// Package llm provides abstractions for LLM provider integration.
//
// Example usage:
//
//	provider, err := openai.NewProvider(apiKey, openai.WithModel("gpt-4"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := provider.Complete(ctx, []*types.Message{
//	    types.NewSystemMessage("You are concise."),
//	    types.NewUserMessage("Summarize based on:\n..."),
//	})
package llm

import (
	"context"

	"github.com/entrhq/scribby/pkg/types"
)

// Provider defines the interface for LLM integrations.
//
// A provider performs exactly one round trip per Complete call. It does not
// retry and does not time out on its own; callers bound the call with ctx.
type Provider interface {
	// Complete sends the conversation and returns the assistant reply.
	//
	// The reply content is the trimmed text of the first choice. Errors
	// distinguish a non-success status, an unreadable body and an empty
	// reply so callers can report them separately.
	Complete(ctx context.Context, messages []*types.Message) (*types.Message, error)

	// GetModelInfo returns information about the LLM model being used.
	GetModelInfo() *types.ModelInfo

	// GetModel returns the model name being used.
	GetModel() string

	// GetBaseURL returns the base URL being used for API requests.
	GetBaseURL() string
}
