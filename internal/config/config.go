package config

// Config represents the top-level application configuration.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Tutorial TutorialConfig `toml:"tutorial"`
}

// ProviderConfig holds settings for LLM provider selection and configuration.
type ProviderConfig struct {
	Default   string                   `toml:"default"`
	Model     string                   `toml:"model"`
	MaxTokens int                      `toml:"max_tokens"`
	Anthropic AnthropicProviderConfig  `toml:"anthropic"`
	OpenAI    []OpenAICompatibleConfig `toml:"openai_compatible"`
}

// AnthropicProviderConfig holds Anthropic-specific provider settings.
type AnthropicProviderConfig struct {
	APIKeySource string `toml:"api_key_source"`
	APIKey       string `toml:"api_key"`
}

// OpenAICompatibleConfig holds settings for an OpenAI-compatible provider.
type OpenAICompatibleConfig struct {
	Name         string            `toml:"name"`
	BaseURL      string            `toml:"base_url"`
	APIKeySource string            `toml:"api_key_source"`
	APIKey       string            `toml:"api_key"`
	ExtraHeaders map[string]string `toml:"extra_headers"`
}

// TutorialConfig holds defaults for tutorial generation.
type TutorialConfig struct {
	OutputDir         string `toml:"output_dir"`
	Language          string `toml:"language"`
	MaxAbstractions   int    `toml:"max_abstractions"`
	MaxFileBytes      int64  `toml:"max_file_bytes"`
	CachePath         string `toml:"cache_path"` // LLM response cache database; empty uses the config dir default
	RequestsPerMinute int    `toml:"requests_per_minute"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Default:   "anthropic",
			Model:     "claude-sonnet-4-5",
			MaxTokens: 8192,
			Anthropic: AnthropicProviderConfig{
				APIKeySource: "env",
			},
		},
		Tutorial: TutorialConfig{
			OutputDir:         "output",
			Language:          "english",
			MaxAbstractions:   10,
			MaxFileBytes:      100_000,
			RequestsPerMinute: 30,
		},
	}
}
