// Package config loads companion settings from an optional YAML file with
// COMPANION_* environment overrides. Credentials are read from the
// environment only and never written back out.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "companion.yaml"

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var defaultModels = map[string]string{
	ProviderAnthropic: "claude-sonnet-4-5",
	ProviderGemini:    "gemini-2.5-flash",
}

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	return defaultModels[provider]
}

// MaxTokensLimit is the largest accepted max_tokens.
const MaxTokensLimit = 128000

var ErrInvalid = errors.New("config: invalid")

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	// MaxTokens caps the length of a model reply.
	MaxTokens int `yaml:"max_tokens"`
	// HistoryBudget limits the history sent to the model; 0 sends everything.
	HistoryBudget int       `yaml:"history_budget"`
	MemoryPath    string    `yaml:"memory_path"`
	Log           LogConfig `yaml:"log"`

	APIKey string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		Provider:   ProviderAnthropic,
		MaxTokens:  1024,
		MemoryPath: "memory.json",
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// Overrides are command-line values; non-empty fields win over file and env.
type Overrides struct {
	Provider   string
	Model      string
	MemoryPath string
}

// Load reads path (a missing file yields defaults), applies environment
// overrides, fills the provider's default model and credential, and validates.
func Load(path string) (*Config, error) {
	return LoadWith(path, Overrides{})
}

// LoadWith is Load with command-line overrides applied after the environment.
func LoadWith(path string, o Overrides) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if o.Provider != "" {
		cfg.Provider = o.Provider
	}
	if o.Model != "" {
		cfg.Model = o.Model
	}
	if o.MemoryPath != "" {
		cfg.MemoryPath = o.MemoryPath
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	cfg.APIKey = apiKeyFor(cfg.Provider)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
		}
		*dst = n
		return nil
	}

	setString("COMPANION_PROVIDER", &c.Provider)
	setString("COMPANION_MODEL", &c.Model)
	setString("COMPANION_MEMORY_PATH", &c.MemoryPath)
	setString("COMPANION_LOG_LEVEL", &c.Log.Level)
	setString("COMPANION_LOG_FORMAT", &c.Log.Format)
	if err := setInt("COMPANION_MAX_TOKENS", &c.MaxTokens); err != nil {
		return err
	}
	return setInt("COMPANION_HISTORY_BUDGET", &c.HistoryBudget)
}

func apiKeyFor(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	case ProviderGemini:
		if k := os.Getenv("GEMINI_API_KEY"); k != "" {
			return k
		}
		return os.Getenv("GOOGLE_API_KEY")
	}
	return ""
}

// CredentialEnv names the environment variable holding the provider's key.
func CredentialEnv(provider string) string {
	if provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "ANTHROPIC_API_KEY"
}

func (c *Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("%w: unknown provider %q (want %s or %s)", ErrInvalid, c.Provider, ProviderAnthropic, ProviderGemini)
	}
	if c.MaxTokens <= 0 || c.MaxTokens > MaxTokensLimit {
		return fmt.Errorf("%w: max_tokens must be between 1 and %d, got %d", ErrInvalid, MaxTokensLimit, c.MaxTokens)
	}
	if c.HistoryBudget < 0 {
		return fmt.Errorf("%w: history_budget must not be negative, got %d", ErrInvalid, c.HistoryBudget)
	}
	if strings.TrimSpace(c.MemoryPath) == "" {
		return fmt.Errorf("%w: memory_path is empty", ErrInvalid)
	}
	return nil
}

// YAML renders the effective configuration without credentials.
func (c *Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}
