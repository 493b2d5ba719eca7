// Package config handles voicenote configuration loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/voicenote/config.yaml, /etc/voicenote/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "voicenote", "config.yaml"))
	}

	paths = append(paths, "/etc/voicenote/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns the path found, or an error if nothing was found.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", DefaultSearchPaths())
}

// Config holds all voicenote configuration.
type Config struct {
	// DataDir holds the prompt library, stacks and settings database.
	// Relative file paths below are resolved against it.
	DataDir string `yaml:"data_dir"`

	// FoundationDir holds foundation rule markdown files. Empty or
	// missing means the built-in rules are used.
	FoundationDir string `yaml:"foundation_dir"`

	LibraryFile string `yaml:"library_file"` // default prompt_library.json
	StacksFile  string `yaml:"stacks_file"`  // default prompt_stacks.json
	SettingsDB  string `yaml:"settings_db"`  // default settings.db

	LogLevel  string `yaml:"log_level"`  // trace, debug, info, warn, error
	LogFormat string `yaml:"log_format"` // text or json
}

// Load reads configuration from a YAML file. A .env file next to the
// config is loaded first so its variables are available to ${VAR}
// expansion; variables already set in the environment win.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns a default configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	c.DataDir = expandHome(c.DataDir)
	c.FoundationDir = expandHome(c.FoundationDir)
	if c.LibraryFile == "" {
		c.LibraryFile = "prompt_library.json"
	}
	if c.StacksFile == "" {
		c.StacksFile = "prompt_stacks.json"
	}
	if c.SettingsDB == "" {
		c.SettingsDB = "settings.db"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q (valid: text, json)", c.LogFormat)
	}
	return nil
}

// LibraryPath returns the prompt library file location.
func (c *Config) LibraryPath() string {
	return c.resolve(c.LibraryFile)
}

// StacksPath returns the stack store file location.
func (c *Config) StacksPath() string {
	return c.resolve(c.StacksFile)
}

// SettingsPath returns the settings database location.
func (c *Config) SettingsPath() string {
	return c.resolve(c.SettingsDB)
}

func (c *Config) resolve(p string) string {
	p = expandHome(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "voicenote")
	}
	return "data"
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
