// Package tokenizer counts prompt tokens on the client side.
package tokenizer

import (
	"fmt"

	"github.com/entrhq/scribby/pkg/types"
	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the BPE encoding used by the gpt-4 family.
const Encoding = "cl100k_base"

// perMessageOverhead approximates the role and separator tokens added to each message.
const perMessageOverhead = 4

// Tokenizer counts tokens with a tiktoken encoding.
type Tokenizer struct {
	enc *tiktoken.Tiktoken
}

// New loads the encoding. Loading may fetch the BPE ranks on first use, so
// callers should treat an error as "count approximately" rather than fatal.
func New() (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s encoding: %w", Encoding, err)
	}
	return &Tokenizer{enc: enc}, nil
}

// CountTokens returns the token count of text. A nil Tokenizer estimates
// four characters per token.
func (t *Tokenizer) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	if t == nil || t.enc == nil {
		return Estimate(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

// CountMessagesTokens returns the token count of a conversation.
func (t *Tokenizer) CountMessagesTokens(messages []*types.Message) int {
	total := 0
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		total += perMessageOverhead + t.CountTokens(msg.Content)
	}
	return total
}

// Estimate approximates the token count of text without an encoding.
func Estimate(text string) int {
	n := len(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}
