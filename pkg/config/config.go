package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zpam/nbayes/pkg/document"
)

// Config represents nbayes configuration
type Config struct {
	// Tokenizer settings
	Tokenizer TokenizerConfig `yaml:"tokenizer"`

	// Training settings
	Training TrainingConfig `yaml:"training"`

	// Classification settings
	Classification ClassificationConfig `yaml:"classification"`

	// Model storage settings
	Store StoreConfig `yaml:"store"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Metrics settings
	Metrics MetricsConfig `yaml:"metrics"`
}

// TokenizerConfig controls how documents are split into tokens
type TokenizerConfig struct {
	// Drop the first token of every document ("Subject:")
	SkipHeader bool `yaml:"skip_header"`
}

// TrainingConfig contains training settings
type TrainingConfig struct {
	Workers    int      `yaml:"workers"`    // documents read concurrently, 1 = sequential
	Extensions []string `yaml:"extensions"` // accepted file extensions, "" = no extension
	Format     string   `yaml:"format"`     // raw, mail
}

// ClassificationConfig contains classification settings
type ClassificationConfig struct {
	Workers int    `yaml:"workers"`
	Output  string `yaml:"output"` // text, json
}

// StoreConfig selects where the trained model is kept
type StoreConfig struct {
	// Backend selection: "file" or "redis"
	Backend string `yaml:"backend"`

	// File backend
	ModelPath string `yaml:"model_path"`

	// Redis backend
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix"`
	Database  int    `yaml:"database"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string   `yaml:"level"`  // debug, info, warn, error
	Format      string   `yaml:"format"` // console, json
	OutputPaths []string `yaml:"output_paths"`
}

// MetricsConfig contains Prometheus settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Textfile  string `yaml:"textfile"` // write exposition here at the end of a run
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			SkipHeader: true,
		},
		Training: TrainingConfig{
			Workers:    1,
			Extensions: append([]string(nil), document.DefaultExtensions...),
			Format:     "raw",
		},
		Classification: ClassificationConfig{
			Workers: 1,
			Output:  "text",
		},
		Store: StoreConfig{
			Backend:   "file",
			ModelPath: "nbayes-model.json",
			Redis: RedisConfig{
				URL:       "redis://localhost:6379",
				KeyPrefix: "nbayes:model",
				Database:  0,
			},
		},
		Logging: LoggingConfig{
			Level:       "warn",
			Format:      "console",
			OutputPaths: []string{"stderr"},
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "nbayes",
			Textfile:  "",
		},
	}
}

// LoadConfig loads configuration from file
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// If no config file specified, return defaults
	if configPath == "" {
		return config, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Training.Workers < 1 {
		return fmt.Errorf("training workers must be >= 1")
	}
	if c.Classification.Workers < 1 {
		return fmt.Errorf("classification workers must be >= 1")
	}

	if !oneOf(c.Training.Format, "raw", "mail") {
		return fmt.Errorf("invalid training format: %s", c.Training.Format)
	}

	if !oneOf(c.Classification.Output, "text", "json") {
		return fmt.Errorf("invalid classification output: %s", c.Classification.Output)
	}

	switch c.Store.Backend {
	case "file":
		if c.Store.ModelPath == "" {
			return fmt.Errorf("store model_path cannot be empty for the file backend")
		}
	case "redis":
		if c.Store.Redis.URL == "" {
			return fmt.Errorf("store redis url cannot be empty for the redis backend")
		}
		if c.Store.Redis.KeyPrefix == "" {
			return fmt.Errorf("store redis key_prefix cannot be empty")
		}
	default:
		return fmt.Errorf("invalid store backend: %s", c.Store.Backend)
	}

	if !oneOf(c.Logging.Level, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, "console", "json") {
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics namespace cannot be empty when enabled")
	}

	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
