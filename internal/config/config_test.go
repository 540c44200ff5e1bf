package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Layout.ShowBorders)
	assert.NotEmpty(t, cfg.Keys.Submit)
	assert.Empty(t, cfg.LogFile)
}

func TestDefaultEnhanceConfig(t *testing.T) {
	cfg := DefaultEnhanceConfig()

	assert.Equal(t, 0.3, cfg.Temperature)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, "60s", cfg.Timeout)
}

func TestDefaultKeyBindings(t *testing.T) {
	keys := DefaultKeyBindings()

	assert.Equal(t, "ctrl+e", keys.Submit)
	assert.Equal(t, "t", keys.Templates)
	assert.Equal(t, "a", keys.Advanced)
	assert.Equal(t, "n", keys.NewPrompt)
	assert.Equal(t, "w", keys.SavePrompt)
	assert.Equal(t, "S", keys.SavedPrompts)
	assert.Equal(t, "H", keys.History)
	assert.Equal(t, "?", keys.Help)
	assert.Equal(t, "q", keys.Quit)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))

	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")

	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"base_url":"https://echo.example.com/api","enhance":{"temperature":0.7,"max_tokens":1024,"timeout":"30s"}}`), 0644)
	assert.NoError(t, err)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, "https://echo.example.com/api", cfg.BaseURL)
	assert.Equal(t, 0.7, cfg.Enhance.Temperature)
	assert.Equal(t, 1024, cfg.Enhance.MaxTokens)
	// Fields absent from the file keep their defaults
	assert.Equal(t, DefaultKeyBindings(), cfg.Keys)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{not json`), 0644)
	assert.NoError(t, err)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.BaseURL = "https://echo.example.com/api"
	cfg.Enhance.Temperature = 0.9

	err := cfg.SaveConfig(path)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	loaded := &Config{}
	assert.NoError(t, json.Unmarshal(data, loaded))
	assert.Equal(t, cfg.BaseURL, loaded.BaseURL)
	assert.Equal(t, cfg.Enhance.Temperature, loaded.Enhance.Temperature)
}

func TestGetEnhanceTimeout(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60*time.Second, cfg.GetEnhanceTimeout())

	cfg.Enhance.Timeout = "90s"
	assert.Equal(t, 90*time.Second, cfg.GetEnhanceTimeout())

	cfg.Enhance.Timeout = "garbage"
	assert.Equal(t, 60*time.Second, cfg.GetEnhanceTimeout())
}
