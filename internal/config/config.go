package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// EnhanceConfig holds defaults for enhancement requests
type EnhanceConfig struct {
	// Temperature is the default creativity level sent to the backend (0.1-1.0)
	Temperature float64 `json:"temperature"`

	// MaxTokens is the default response length cap sent to the backend (256-4096)
	MaxTokens int `json:"max_tokens"`

	// Timeout for a single enhancement request (duration string, e.g. "60s")
	Timeout string `json:"timeout"`
}

// CacheConfig controls the local SQLite store
type CacheConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// KeyBindings holds configurable keyboard shortcuts
type KeyBindings struct {
	Submit       string `json:"submit"`
	Templates    string `json:"templates"`
	Advanced     string `json:"advanced"`
	NewPrompt    string `json:"new_prompt"`
	SavePrompt   string `json:"save_prompt"`
	SavedPrompts string `json:"saved_prompts"`
	History      string `json:"history"`
	Help         string `json:"help"`
	Quit         string `json:"quit"`
}

// LayoutConfig defines layout-specific configuration
type LayoutConfig struct {
	ShowBorders bool `json:"show_borders"`
	ShowTitles  bool `json:"show_titles"`
}

// Config holds all configuration for the Echo TUI application
type Config struct {
	// BaseURL is the Echo API base URL (e.g. http://localhost:8000/api)
	BaseURL string `json:"base_url"`

	// Token is the path to the bearer token file
	Token string `json:"token"`

	// Enhance holds request defaults
	Enhance EnhanceConfig `json:"enhance"`

	// Cache holds local store settings
	Cache CacheConfig `json:"cache"`

	// TemplatesDir holds local template files merged into the picker
	TemplatesDir string `json:"templates_dir"`

	// Keys holds keyboard shortcuts
	Keys KeyBindings `json:"keys"`

	// Layout holds UI preferences
	Layout LayoutConfig `json:"layout"`

	// LogFile enables debug logging when set
	LogFile string `json:"log_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "http://localhost:8000/api",
		Enhance:      DefaultEnhanceConfig(),
		Cache:        CacheConfig{Enabled: true},
		TemplatesDir: "",
		Keys:         DefaultKeyBindings(),
		Layout:       DefaultLayoutConfig(),
		LogFile:      "",
	}
}

// DefaultEnhanceConfig returns default enhancement request settings.
// The temperature and token defaults mirror the backend serializer defaults.
func DefaultEnhanceConfig() EnhanceConfig {
	return EnhanceConfig{
		Temperature: 0.3,
		MaxTokens:   2048,
		Timeout:     "60s",
	}
}

// DefaultKeyBindings returns default keyboard shortcuts
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Submit:       "ctrl+e",
		Templates:    "t",
		Advanced:     "a",
		NewPrompt:    "n",
		SavePrompt:   "w",
		SavedPrompts: "S",
		History:      "H",
		Help:         "?",
		Quit:         "q",
	}
}

// DefaultLayoutConfig returns default layout configuration
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		ShowBorders: true,
		ShowTitles:  true,
	}
}

// LoadConfig loads configuration from file, falling back to defaults for
// any field the file does not set
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigPath returns the default configuration file path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "echo-tui", "config.json")
}

// DefaultTokenPath returns the default bearer token file path
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "echo-tui", "token.json")
}

// DefaultCacheDir returns the default cache directory path
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "echo-tui", "cache")
}

// DefaultTemplatesDir returns the default local templates directory path
func DefaultTemplatesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "echo-tui", "templates")
}

// GetEnhanceTimeout returns the parsed request timeout
func (c *Config) GetEnhanceTimeout() time.Duration {
	if c.Enhance.Timeout != "" {
		if d, err := time.ParseDuration(c.Enhance.Timeout); err == nil {
			return d
		}
	}
	return 60 * time.Second
}
