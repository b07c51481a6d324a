package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	DataFile        string         `mapstructure:"data_file"`
	LogLevel        string         `mapstructure:"log_level"`
	LogFormat       string         `mapstructure:"log_format"` // "console" or "json"
	SeedSampleData  bool           `mapstructure:"seed_sample_data"`
	DefaultCategory string         `mapstructure:"default_category"`
	Categories      []CategoryRule `mapstructure:"categories"`
}

// CategoryRule assigns Category to descriptions matching Pattern
type CategoryRule struct {
	Pattern  string `mapstructure:"pattern"`
	Category string `mapstructure:"category"`
}

// EnvPrefix is prepended to every environment override, e.g. EXPENSE_DATA_FILE
const EnvPrefix = "EXPENSE"

// LoadConfig loads configuration from file and environment variables.
// An empty configPath skips the file and uses defaults plus environment.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	// Set defaults
	v.SetDefault("data_file", "expenses.json")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("seed_sample_data", true)
	v.SetDefault("default_category", "Uncategorized")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("invalid config: data_file must not be empty")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid config: unknown log_format %q", c.LogFormat)
	}
	return nil
}
