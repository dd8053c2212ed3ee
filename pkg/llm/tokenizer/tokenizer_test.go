package tokenizer

import (
	"testing"

	"github.com/entrhq/scribby/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestEstimate(t *testing.T) {
	assert.Equal(t, 0, Estimate(""))
	assert.Equal(t, 1, Estimate("abc"))
	assert.Equal(t, 1, Estimate("abcd"))
	assert.Equal(t, 2, Estimate("abcde"))
}

func TestNilTokenizerFallsBack(t *testing.T) {
	var tok *Tokenizer
	assert.Equal(t, Estimate("Summarize based on:\nnote"), tok.CountTokens("Summarize based on:\nnote"))
	assert.Equal(t, 0, tok.CountTokens(""))

	msgs := []*types.Message{
		types.NewSystemMessage("abcd"),
		nil,
		types.NewUserMessage("abcdefgh"),
	}
	assert.Equal(t, 2*perMessageOverhead+1+2, tok.CountMessagesTokens(msgs))
}

func TestTokenizerCounts(t *testing.T) {
	tok, err := New()
	if err != nil {
		// The encoding may be unavailable offline.
		t.Skipf("encoding unavailable: %v", err)
	}

	assert.Equal(t, 0, tok.CountTokens(""))
	assert.Greater(t, tok.CountTokens("Patient reports dysuria for three days."), 0)

	short := tok.CountTokens("Plan")
	long := tok.CountTokens("Plan: start tamsulosin 0.4 mg daily and follow up in six weeks.")
	assert.Less(t, short, long)
}
