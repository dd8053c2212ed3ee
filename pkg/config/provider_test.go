package config

import (
	"path/filepath"
	"testing"

	"github.com/entrhq/scribby/pkg/llm/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderFactory_Defaults(t *testing.T) {
	t.Setenv("OPENAI_BASE_URL", "")
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	provider, err := NewProviderFactory(s, Overrides{})("sk-test")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, provider.GetModel())
	assert.Equal(t, openai.DefaultBaseURL, provider.GetBaseURL())
}

func TestNewProviderFactory_Precedence(t *testing.T) {
	dir := t.TempDir()
	raw := `{"version":"1.0","sections":{"llm":{"model":"gpt-4o-mini","base_url":"http://file/v1"}}}`
	require.NoError(t, writeFile(filepath.Join(dir, SettingsFile), raw))

	s, err := Open(dir)
	require.NoError(t, err)

	t.Run("settings file", func(t *testing.T) {
		t.Setenv("OPENAI_BASE_URL", "")
		p, err := NewProviderFactory(s, Overrides{})("sk")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4o-mini", p.GetModel())
		assert.Equal(t, "http://file/v1", p.GetBaseURL())
	})

	t.Run("environment beats file", func(t *testing.T) {
		t.Setenv("OPENAI_BASE_URL", "http://env/v1")
		p, err := NewProviderFactory(s, Overrides{})("sk")
		require.NoError(t, err)
		assert.Equal(t, "http://env/v1", p.GetBaseURL())
	})

	t.Run("flags beat everything", func(t *testing.T) {
		t.Setenv("OPENAI_BASE_URL", "http://env/v1")
		p, err := NewProviderFactory(s, Overrides{Model: "gpt-4", BaseURL: "http://flag/v1"})("sk")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4", p.GetModel())
		assert.Equal(t, "http://flag/v1", p.GetBaseURL())
	})
}

func TestNewProviderFactory_MissingKey(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = NewProviderFactory(s, Overrides{})("")
	assert.ErrorIs(t, err, openai.ErrMissingAPIKey)
}
