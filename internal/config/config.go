package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Chat     ChatConfig     `yaml:"chat" mapstructure:"chat"`
}

type ProviderConfig struct {
	Type    string `yaml:"type" mapstructure:"type"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	// MaxRetries is the explicit retry policy for AI calls. 0 disables
	// retrying entirely.
	MaxRetries int `yaml:"max_retries" mapstructure:"max_retries"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type ChatConfig struct {
	// MaxSentences bounds how long the chat companion's answers should be.
	// Enforced by instruction to the model, not locally.
	MaxSentences int `yaml:"max_sentences" mapstructure:"max_sentences"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Type:       "google",
			APIKey:     "$GEMINI_API_KEY",
			Model:      "gemini-2.0-flash",
			MaxRetries: 2,
		},
		Store: StoreConfig{Path: "flashcards.json"},
		Chat:  ChatConfig{MaxSentences: 3},
	}
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kadstudi")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "kadstudi")
}

func Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(configDir())

	v.SetEnvPrefix("KADSTUDI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file; defaults plus environment are enough.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.Provider.APIKey = expandEnv(cfg.Provider.APIKey)
	cfg.Provider.BaseURL = expandEnv(cfg.Provider.BaseURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Provider.Type != "google" {
		return fmt.Errorf("config: provider type %q is not supported (only google)", c.Provider.Type)
	}
	if c.Provider.APIKey == "" || strings.HasPrefix(c.Provider.APIKey, "$") {
		return fmt.Errorf("config: provider api_key is not set (export GEMINI_API_KEY or set provider.api_key)")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("config: provider model is required")
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("config: provider max_retries must be >= 0")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("config: store path is required")
	}
	if c.Chat.MaxSentences <= 0 {
		return fmt.Errorf("config: chat max_sentences must be positive")
	}
	return nil
}
