package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir  string
	homeDir  string
	fileName string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	home, _ := os.UserHomeDir()
	return &loader{
		rootDir: rootDir,
		homeDir: home,
	}
}

// NewFileLoader creates a loader that reads exactly the given config file.
func NewFileLoader(path string) Loader {
	return &loader{fileName: path}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (JSXTRACT_*)
// 2. Config file (.jsxtract/config.yml, then ~/.jsxtract/config.yml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.fileName != "" {
		v.SetConfigFile(l.fileName)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".jsxtract"))
		if l.homeDir != "" {
			v.AddConfigPath(filepath.Join(l.homeDir, ".jsxtract"))
		}
	}

	// Replace . with _ in env var names (e.g., JSXTRACT_COMPONENT_STYLE)
	v.SetEnvPrefix("JSXTRACT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("component.style")
	v.BindEnv("component.indent")
	v.BindEnv("imports.react")
	v.BindEnv("imports.react_path")
	v.BindEnv("imports.link_source")
	v.BindEnv("paths.destinations")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("component.style", defaults.Component.Style)
	v.SetDefault("component.indent", defaults.Component.Indent)

	v.SetDefault("imports.react", defaults.Imports.React)
	v.SetDefault("imports.react_path", defaults.Imports.ReactPath)
	v.SetDefault("imports.link_source", defaults.Imports.LinkSource)

	v.SetDefault("paths.destinations", defaults.Paths.Destinations)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
