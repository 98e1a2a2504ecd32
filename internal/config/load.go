package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment.
const EnvPrefix = "MOM"

// PlaceholderAPIKey is the value shipped in the example env file. It is
// treated as if no key had been configured.
const PlaceholderAPIKey = "your_openai_api_key_here"

// Provider names accepted by llm.provider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

type modelDefaults struct {
	primary   string
	fallbacks []string
	keyEnv    string
	modelEnv  string
}

var providerDefaults = map[string]modelDefaults{
	ProviderOpenAI: {
		primary:   "gpt-4o-mini",
		fallbacks: []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"},
		keyEnv:    "OPENAI_API_KEY",
		modelEnv:  "OPENAI_MODEL",
	},
	ProviderAnthropic: {
		primary:   "claude-3-5-haiku-latest",
		fallbacks: []string{"claude-3-5-haiku-latest", "claude-3-5-sonnet-latest"},
		keyEnv:    "ANTHROPIC_API_KEY",
	},
	ProviderGemini: {
		primary:   "gemini-2.0-flash",
		fallbacks: []string{"gemini-2.0-flash", "gemini-1.5-flash"},
		keyEnv:    "GEMINI_API_KEY",
	},
}

// DefaultModels returns the default primary model and fallback list for a
// provider. ok is false for unknown providers.
func DefaultModels(provider string) (primary string, fallbacks []string, ok bool) {
	d, ok := providerDefaults[provider]
	if !ok {
		return "", nil, false
	}
	return d.primary, append([]string(nil), d.fallbacks...), true
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. When configFile is empty a
// config.yaml in the working directory is used if present.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8501)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")
	v.SetDefault("storage.data_dir", "data")
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.attempt_timeout_seconds", 60)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are invisible to AutomaticEnv during Unmarshal.
	for _, key := range []string{"llm.api_key", "llm.base_url", "llm.model", "llm.fallback_models"} {
		env := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyProviderDefaults(&cfg.LLM)

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyProviderDefaults fills the key and model sequence from the provider's
// native environment variables and built-in defaults.
func applyProviderDefaults(llm *LLMConfig) {
	llm.Provider = strings.ToLower(strings.TrimSpace(llm.Provider))
	llm.APIKey = strings.TrimSpace(llm.APIKey)
	llm.Model = strings.TrimSpace(llm.Model)
	llm.FallbackModels = normalizeModels(llm.FallbackModels)

	d, ok := providerDefaults[llm.Provider]
	if !ok {
		return
	}

	if llm.APIKey == "" || llm.APIKey == PlaceholderAPIKey {
		llm.APIKey = strings.TrimSpace(os.Getenv(d.keyEnv))
	}
	if llm.APIKey == PlaceholderAPIKey {
		llm.APIKey = ""
	}

	if llm.Model == "" && d.modelEnv != "" {
		llm.Model = strings.TrimSpace(os.Getenv(d.modelEnv))
	}
	if llm.Model == "" {
		llm.Model = d.primary
	}
	if len(llm.FallbackModels) == 0 {
		llm.FallbackModels = append([]string(nil), d.fallbacks...)
	}
}

// normalizeModels flattens comma separated entries and drops blanks, so
// "a, b" from the environment and a YAML list produce the same sequence.
func normalizeModels(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, m := range strings.Split(entry, ",") {
			if m = strings.TrimSpace(m); m != "" {
				out = append(out, m)
			}
		}
	}
	return out
}
