// Package config provides configuration loading and validation for the CLI
// and the HTTP server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Defaults used when neither flags, config file nor environment set a value.
const (
	DefaultVariant              = "work"
	DefaultOutputDir            = "out"
	DefaultPort                 = 8080
	DefaultExportTimeoutSeconds = 60
	DefaultSessionIdleMinutes   = 30
	DefaultMaxSessions          = 1000
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values come from the environment or defaults.
type Config struct {
	// Documents
	Variant     string `json:"variant,omitempty"`      // Variant used by new documents
	VariantsDir string `json:"variants_dir,omitempty"` // Directory of extra variant definitions
	Template    string `json:"template,omitempty"`     // Path to a LaTeX template override
	OutputDir   string `json:"output_dir,omitempty"`   // Where export writes artifacts

	// Export
	ChromePath           string `json:"chrome_path,omitempty"`            // Browser used for PDF export
	ExportTimeoutSeconds int    `json:"export_timeout_seconds,omitempty"` // Per-export timeout

	// Server
	Port               int `json:"port,omitempty"`                 // HTTP listen port
	SessionIdleMinutes int `json:"session_idle_minutes,omitempty"` // Idle sessions are evicted after this
	MaxSessions        int `json:"max_sessions,omitempty"`         // Upper bound on live sessions

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.ExportTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'export_timeout_seconds' must be non-negative")
	}
	if c.SessionIdleMinutes < 0 {
		return fmt.Errorf("config error: 'session_idle_minutes' must be non-negative")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("config error: 'max_sessions' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.VariantsDir != "" {
		info, err := os.Stat(c.VariantsDir)
		if err != nil {
			return fmt.Errorf("config error: variants directory not found: %s", c.VariantsDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config error: variants_dir is not a directory: %s", c.VariantsDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Variant == "" {
		result.Variant = defaults.Variant
	}
	if result.VariantsDir == "" {
		result.VariantsDir = defaults.VariantsDir
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	if result.ExportTimeoutSeconds == 0 {
		result.ExportTimeoutSeconds = defaults.ExportTimeoutSeconds
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionIdleMinutes == 0 {
		result.SessionIdleMinutes = defaults.SessionIdleMinutes
	}
	if result.MaxSessions == 0 {
		result.MaxSessions = defaults.MaxSessions
	}

	// Bool fields: cannot distinguish unset from false, so a true anywhere wins
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Variant:              DefaultVariant,
		OutputDir:            DefaultOutputDir,
		ExportTimeoutSeconds: DefaultExportTimeoutSeconds,
		Port:                 DefaultPort,
		SessionIdleMinutes:   DefaultSessionIdleMinutes,
		MaxSessions:          DefaultMaxSessions,
	}
}

// FromEnv reads configuration from environment variables. Unset or
// unparseable numeric variables are left zero.
func FromEnv() Config {
	return Config{
		Variant:              os.Getenv("CV_VARIANT"),
		VariantsDir:          os.Getenv("CV_VARIANTS_DIR"),
		Template:             os.Getenv("CV_TEMPLATE"),
		OutputDir:            os.Getenv("CV_OUTPUT_DIR"),
		ChromePath:           os.Getenv("CHROME_PATH"),
		ExportTimeoutSeconds: envInt("CV_EXPORT_TIMEOUT"),
		Port:                 envInt("PORT"),
		SessionIdleMinutes:   envInt("SESSION_IDLE_TIMEOUT"),
		MaxSessions:          envInt("CV_MAX_SESSIONS"),
	}
}

// Resolve layers file values over the environment over the defaults.
// file may be nil.
func Resolve(file *Config) Config {
	env := FromEnv()
	layered := env.MergeWithDefaults(Defaults())
	if file == nil {
		return layered
	}
	return file.MergeWithDefaults(layered)
}

// ExportTimeout returns the export timeout as a duration.
func (c *Config) ExportTimeout() time.Duration {
	return time.Duration(c.ExportTimeoutSeconds) * time.Second
}

// SessionIdleTimeout returns the session idle timeout as a duration.
func (c *Config) SessionIdleTimeout() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func envInt(key string) int {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
