// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// legacyConfigPath is the path to the configuration file used in previous versions.
	legacyConfigPath = "config.json"
	// DefaultAPIURL is the pipeline service base URL used when none is configured.
	DefaultAPIURL = "http://localhost:8000"
	// defaultPipelineTimeout bounds pipeline execution requests.
	defaultPipelineTimeout = 300 * time.Second
	// defaultHealthTimeout bounds health probe requests.
	defaultHealthTimeout = 10 * time.Second
	// defaultCooldown is how long terminal agent statuses stay visible after a run.
	defaultCooldown = 3 * time.Second
	// defaultPageLimit is the report list page size.
	defaultPageLimit = 20
)

// Config represents the top-level application configuration.
type Config struct {
	APIURL          string `json:"apiUrl,omitempty" mapstructure:"apiUrl"`
	APIKey          string `json:"apiKey,omitempty" mapstructure:"apiKey"`
	Debug           bool   `json:"debug" mapstructure:"debug"`
	PipelineTimeout int    `json:"pipelineTimeout,omitempty" mapstructure:"pipelineTimeout"`
	HealthTimeout   int    `json:"healthTimeout,omitempty" mapstructure:"healthTimeout"`
	CooldownSeconds int    `json:"cooldown,omitempty" mapstructure:"cooldown"`
	AutoFetch       bool   `json:"autoFetch" mapstructure:"autoFetch"`
	PageLimit       int    `json:"pageLimit,omitempty" mapstructure:"pageLimit"`
	DownloadDir     string `json:"downloadDir,omitempty" mapstructure:"downloadDir"`
	LogFile         string `json:"logFile,omitempty" mapstructure:"logFile"`
	ConfigPath      string `json:"-" mapstructure:"-"`
}

// Default returns a configuration with all defaults applied and no API key.
func Default() Config {
	return Config{
		APIURL:    DefaultAPIURL,
		AutoFetch: true,
	}
}

// BaseURL returns the configured service base URL without a trailing slash.
func (c Config) BaseURL() string {
	url := strings.TrimSpace(c.APIURL)
	if url == "" {
		url = DefaultAPIURL
	}
	return strings.TrimSuffix(url, "/")
}

// PipelineRequestTimeout returns the timeout for pipeline execution requests.
func (c Config) PipelineRequestTimeout() time.Duration {
	if c.PipelineTimeout <= 0 {
		return defaultPipelineTimeout
	}
	return time.Duration(c.PipelineTimeout) * time.Second
}

// HealthRequestTimeout returns the timeout for health probe requests.
func (c Config) HealthRequestTimeout() time.Duration {
	if c.HealthTimeout <= 0 {
		return defaultHealthTimeout
	}
	return time.Duration(c.HealthTimeout) * time.Second
}

// Cooldown returns how long agents hold their terminal status before resetting to idle.
func (c Config) Cooldown() time.Duration {
	if c.CooldownSeconds <= 0 {
		return defaultCooldown
	}
	return time.Duration(c.CooldownSeconds) * time.Second
}

// ReportPageLimit returns the report list page size.
func (c Config) ReportPageLimit() int {
	if c.PageLimit <= 0 {
		return defaultPageLimit
	}
	return c.PageLimit
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "nexus.log"
}

// ApplyEnv overrides configuration values from NEXUS_* environment variables.
func (c *Config) ApplyEnv() {
	if url := strings.TrimSpace(os.Getenv("NEXUS_API_URL")); url != "" {
		c.APIURL = url
	}
	if key := strings.TrimSpace(os.Getenv("NEXUS_API_KEY")); key != "" {
		c.APIKey = key
	}
}

// Load reads the application configuration from the specified path, with
// fallback to a legacy path. A missing file is not an error: the client works
// against the default local service with no API key.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		if path == DefaultConfigPath {
			config, legacyErr := loadFromPath(legacyConfigPath)
			if legacyErr == nil {
				config.ConfigPath = legacyConfigPath
				return config, nil
			}
			if errors.Is(legacyErr, os.ErrNotExist) {
				return Default(), nil
			}
			return Config{}, fmt.Errorf("could not read config file %q: %w", legacyConfigPath, legacyErr)
		}
		return Default(), nil
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Default()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
