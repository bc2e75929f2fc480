package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the global service configuration
type Config struct {
	// General configuration
	General struct {
		// LogLevel is the logging level
		LogLevel string `yaml:"logLevel"`

		// Development enables development mode
		Development bool `yaml:"development"`
	} `yaml:"general"`

	// Watch configuration
	Watch struct {
		// Interval is the maximum delay between two polls of the watched files
		Interval time.Duration `yaml:"interval"`

		// Paused starts the watcher with polling disabled
		Paused bool `yaml:"paused"`

		// Files are registered at startup
		Files []string `yaml:"files"`
	} `yaml:"watch"`

	// HTTP server configuration
	HTTP struct {
		// Enabled enables the HTTP server
		Enabled bool `yaml:"enabled"`

		// Address to bind the HTTP server
		Address string `yaml:"address"`

		// Port to bind the HTTP server
		Port int `yaml:"port"`
	} `yaml:"http"`

	Logging struct {
		Level       string `yaml:"level"` // "ERROR", "WARN", "INFO", "DEBUG"
		ChannelSize int    `yaml:"channelSize"`
		Format      string `yaml:"format"` // "json" or "text"
		Output      string `yaml:"output"` // "stdout", "stderr" or "file"
		FilePath    string `yaml:"filePath"`
	} `yaml:"logging"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	c := &Config{}

	// General configuration
	c.General.LogLevel = "info"
	c.General.Development = false

	// Watch configuration
	c.Watch.Interval = 1 * time.Second
	c.Watch.Paused = false
	c.Watch.Files = []string{}

	// HTTP server configuration
	c.HTTP.Enabled = true
	c.HTTP.Address = "127.0.0.1"
	c.HTTP.Port = 8080

	// Logging configuration defaults
	c.Logging.Level = "INFO"
	c.Logging.ChannelSize = 1000
	c.Logging.Format = "json"
	c.Logging.Output = "stdout"
	c.Logging.FilePath = ""

	return c
}

// LoadConfig loads the configuration from a file
func LoadConfig(path string) (*Config, error) {
	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Load the default configuration
	config := DefaultConfig()

	// Decode the YAML file
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Watched files are relative to the config file
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	for i, file := range config.Watch.Files {
		if !filepath.IsAbs(file) {
			config.Watch.Files[i] = filepath.Join(dir, file)
		}
	}

	if config.Logging.Output == "file" && config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(dir, config.Logging.FilePath)
	}

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, path string) error {
	// Encode the configuration to YAML
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	// Create parent directory if necessary
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	// Check the log level
	logLevel := strings.ToLower(config.General.LogLevel)
	if logLevel != "debug" && logLevel != "info" && logLevel != "warn" && logLevel != "error" {
		return fmt.Errorf("invalid log level: %s", config.General.LogLevel)
	}

	if config.Watch.Interval <= 0 {
		return fmt.Errorf("invalid watch interval: %s", config.Watch.Interval)
	}

	// check ports
	if config.HTTP.Enabled && (config.HTTP.Port < 1 || config.HTTP.Port > 65535) {
		return fmt.Errorf("invalid HTTP port: %d", config.HTTP.Port)
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid logging format: %s", config.Logging.Format)
	}

	switch strings.ToLower(config.Logging.Output) {
	case "stdout", "stderr":
	case "file":
		if config.Logging.FilePath == "" {
			return fmt.Errorf("logging output is file but no file path specified")
		}
	default:
		return fmt.Errorf("invalid logging output: %s", config.Logging.Output)
	}

	return nil
}
