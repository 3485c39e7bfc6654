package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"enigma/internal/paths"
)

// Config represents the enigma workspace configuration
type Config struct {
	Version     int           `json:"version" mapstructure:"version"`
	MachineFile string        `json:"machineFile" mapstructure:"machineFile"`
	Autosave    bool          `json:"autosave" mapstructure:"autosave"`
	History     HistoryConfig `json:"history" mapstructure:"history"`
	Logging     LoggingConfig `json:"logging" mapstructure:"logging"`
}

// HistoryConfig controls the durable history store
type HistoryConfig struct {
	Persist bool `json:"persist" mapstructure:"persist"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:     1,
		MachineFile: "",
		Autosave:    true,
		History: HistoryConfig{
			Persist: true,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .enigma/config.json under root,
// falling back to defaults when no file exists.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("autosave", true)
	v.SetDefault("history.persist", true)
	v.SetDefault("logging.format", "human")
	v.SetDefault("logging.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, paths.WorkspaceDirName))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to .enigma/config.json under root.
func (c *Config) Save(root string) error {
	if _, err := paths.WorkspaceDir(root); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(paths.ConfigPath(root), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &ConfigError{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// ConfigError represents a configuration file error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
