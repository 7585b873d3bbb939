package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "anthropic", cfg.Provider.Default)
	assert.Equal(t, "english", cfg.Tutorial.Language)
	assert.Equal(t, int64(100_000), cfg.Tutorial.MaxFileBytes)
	assert.Positive(t, cfg.Tutorial.MaxAbstractions)
}

func TestLoadOverridesDefaults(t *testing.T) {
	tomlContent := `
[provider]
default = "local"
model = "qwen3"

[[provider.openai_compatible]]
name = "local"
base_url = "http://localhost:11434/v1"
api_key_source = "config"
api_key = "unused"

[tutorial]
language = "japanese"
max_abstractions = 7
`
	tmpFile := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(tomlContent), 0o644))

	cfg, err := Load(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Provider.Default)
	assert.Equal(t, "qwen3", cfg.Provider.Model)
	require.Len(t, cfg.Provider.OpenAI, 1)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Provider.OpenAI[0].BaseURL)
	assert.Equal(t, "japanese", cfg.Tutorial.Language)
	assert.Equal(t, 7, cfg.Tutorial.MaxAbstractions)

	// Untouched sections keep defaults.
	assert.Equal(t, "output", cfg.Tutorial.OutputDir)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadInvalidTOML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("not [valid"), 0o644))

	_, err := Load(tmpFile)
	assert.Error(t, err)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("CODETUTOR_TEST_KEY", "sk-test")

	key, err := ResolveAPIKey("env", "", "CODETUTOR_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-test", key)

	key, err = ResolveAPIKey("config", "sk-config", "")
	require.NoError(t, err)
	assert.Equal(t, "sk-config", key)

	_, err = ResolveAPIKey("config", "", "")
	assert.Error(t, err)

	_, err = ResolveAPIKey("vault", "", "")
	assert.Error(t, err)

	_, err = ResolveAPIKey("env", "", "CODETUTOR_UNSET_KEY")
	assert.Error(t, err)
}
