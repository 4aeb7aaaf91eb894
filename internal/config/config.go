// Package config handles loading and saving user configuration for HanzCraft.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

// Config holds all user configuration.
type Config struct {
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Catalog    CatalogConfig    `yaml:"catalog" mapstructure:"catalog"`
	Dictionary DictionaryConfig `yaml:"dictionary" mapstructure:"dictionary"`
	Prompt     PromptConfig     `yaml:"prompt" mapstructure:"prompt"`
	UI         UIConfig         `yaml:"ui" mapstructure:"ui"`
}

// LLMConfig selects the model behind suggestions. API keys come from the
// environment, never from this file.
type LLMConfig struct {
	Provider string        `yaml:"provider" mapstructure:"provider"` // "anthropic" or "gemini"
	Model    string        `yaml:"model" mapstructure:"model"`       // empty uses the provider default
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Endpoint string        `yaml:"endpoint,omitempty" mapstructure:"endpoint"`
}

// StorageConfig locates the local key/value database.
type StorageConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CatalogConfig points at a catalogue file replacing the built-in one.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// DictionaryConfig points at a Make Me a Hanzi dictionary.jsonl.
type DictionaryConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PromptConfig customizes the suggestion prompt.
type PromptConfig struct {
	Template string `yaml:"template" mapstructure:"template"` // path to a text/template file
	Max      int    `yaml:"max" mapstructure:"max"`           // suggestions per request
}

// UIConfig tunes the terminal UI.
type UIConfig struct {
	Font string `yaml:"font" mapstructure:"font"` // CJK font for the large glyph
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "anthropic",
			Timeout:  30 * time.Second,
		},
		Prompt: PromptConfig{Max: 8},
	}
}

// Load reads a config file. Missing keys keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Resolve fills empty paths with their locations inside dir.
func (c *Config) Resolve(dir string) {
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(dir, "hanzcraft.db")
	}
	if c.Catalog.Path == "" {
		if p := filepath.Join(dir, "catalog.yaml"); exists(p) {
			c.Catalog.Path = p
		}
	}
	if c.Dictionary.Path == "" {
		if p := filepath.Join(dir, "dictionary.jsonl"); exists(p) {
			c.Dictionary.Path = p
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hanzcraft"), nil
}

// EnsureConfigDir creates dir, or the default directory when dir is empty.
func EnsureConfigDir(dir string) (string, error) {
	if dir == "" {
		d, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
