package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains HTTP server and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// StorageConfig locates the project and meeting files.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir" validate:"required"`
}

// LLMConfig selects the language model provider and the model sequence tried
// for each generation.
type LLMConfig struct {
	Provider       string   `mapstructure:"provider" validate:"required,oneof=openai anthropic gemini"`
	APIKey         string   `mapstructure:"api_key" validate:"required"`
	BaseURL        string   `mapstructure:"base_url" validate:"omitempty,url"`
	Model          string   `mapstructure:"model" validate:"required"`
	FallbackModels []string `mapstructure:"fallback_models" validate:"dive,required"`
	// Zero disables the per-attempt deadline.
	AttemptTimeoutSeconds int `mapstructure:"attempt_timeout_seconds" validate:"gte=0"`
}

// AttemptTimeout returns the per-attempt deadline as a duration.
func (c LLMConfig) AttemptTimeout() time.Duration {
	return time.Duration(c.AttemptTimeoutSeconds) * time.Second
}

// Models returns the ordered model sequence: the primary model followed by
// the fallbacks. Duplicates are kept.
func (c LLMConfig) Models() []string {
	out := make([]string, 0, 1+len(c.FallbackModels))
	out = append(out, c.Model)
	return append(out, c.FallbackModels...)
}
