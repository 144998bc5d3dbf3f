// Package config provides configuration loading and validation for the
// CV builder service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied when neither the environment nor a config file set a value.
const (
	DefaultAppName       = "CV Builder"
	DefaultPDFQuality    = 2
	DefaultMaxUploadSize = 1048576 // 1 MiB
	DefaultDataDir       = "./data"
	DefaultPort          = 8080
)

// AppConfig is the runtime configuration. It can be read from the
// environment or from a JSON file; all fields are optional.
type AppConfig struct {
	AppName       string `json:"app_name,omitempty"`
	PDFQuality    int    `json:"pdf_quality,omitempty"`     // device scale factor for image export (1-4)
	MaxUploadSize int64  `json:"max_upload_size,omitempty"` // bytes accepted for a profile image
	Port          int    `json:"port,omitempty"`

	// Collaborators. Empty values select the local fallbacks.
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL
	DataDir      string `json:"data_dir,omitempty"`       // directory of the local store
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // enables the Gemini assistant
	ChromePath   string `json:"chrome_path,omitempty"`    // browser binary for export
}

// FromEnv reads the configuration from environment variables and applies
// defaults for anything unset.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		AppName:      os.Getenv("APP_NAME"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DataDir:      os.Getenv("DATA_DIR"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}

	var err error
	if cfg.PDFQuality, err = envInt("PDF_QUALITY"); err != nil {
		return nil, err
	}
	if cfg.Port, err = envInt("PORT"); err != nil {
		return nil, err
	}
	size, err := envInt("MAX_UPLOAD_SIZE")
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadSize = int64(size)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envInt(key string) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return v, nil
}

// normalize fills defaults and validates ranges.
func (c *AppConfig) normalize() error {
	if c.AppName == "" {
		c.AppName = DefaultAppName
	}
	if c.PDFQuality == 0 {
		c.PDFQuality = DefaultPDFQuality
	}
	if c.MaxUploadSize == 0 {
		c.MaxUploadSize = DefaultMaxUploadSize
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	return c.Validate()
}

// Validate checks that the configuration has valid values.
func (c *AppConfig) Validate() error {
	if c.PDFQuality < 1 || c.PDFQuality > 4 {
		return fmt.Errorf("config error: 'pdf_quality' must be between 1 and 4, got %d", c.PDFQuality)
	}
	if c.MaxUploadSize < 0 {
		return fmt.Errorf("config error: 'max_upload_size' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.ChromePath != "" {
		if _, err := os.Stat(c.ChromePath); os.IsNotExist(err) {
			return fmt.Errorf("config error: chrome binary not found: %s", c.ChromePath)
		}
	}
	return nil
}

// LocalMode reports whether persistence and identity use the local fallbacks.
func (c *AppConfig) LocalMode() bool {
	return c.DatabaseURL == ""
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*AppConfig, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new AppConfig with empty fields filled from
// defaults. Values from the file win over the environment.
func (c *AppConfig) MergeWithDefaults(defaults AppConfig) AppConfig {
	result := *c

	if result.AppName == "" {
		result.AppName = defaults.AppName
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	if result.PDFQuality == 0 {
		result.PDFQuality = defaults.PDFQuality
	}
	if result.MaxUploadSize == 0 {
		result.MaxUploadSize = defaults.MaxUploadSize
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}

// Load reads the environment and, when path is set, overlays the JSON file.
func Load(path string) (*AppConfig, error) {
	env, err := FromEnv()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return env, nil
	}

	file, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	merged := file.MergeWithDefaults(*env)
	if err := merged.normalize(); err != nil {
		return nil, err
	}
	return &merged, nil
}
