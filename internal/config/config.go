// Package config provides configuration loading for jsxtract.
//
// Configuration is read from .jsxtract/config.yml in the project directory,
// falling back to ~/.jsxtract/config.yml, with JSXTRACT_* environment
// variables taking precedence over both.
package config

import (
	"strings"

	"github.com/mvp-joe/jsxtract/internal/extract"
)

// Config represents the complete jsxtract configuration.
type Config struct {
	Component ComponentConfig `yaml:"component" mapstructure:"component"`
	Imports   ImportsConfig   `yaml:"imports" mapstructure:"imports"`
	Paths     PathsConfig     `yaml:"paths" mapstructure:"paths"`
}

// ComponentConfig controls how the extracted unit is rendered.
type ComponentConfig struct {
	Style  string `yaml:"style" mapstructure:"style"`   // "function" or "class"
	Indent string `yaml:"indent" mapstructure:"indent"` // one indentation level
}

// ImportsConfig controls the import statements added after extraction.
type ImportsConfig struct {
	React      bool   `yaml:"react" mapstructure:"react"`             // ensure a React default import in the destination
	ReactPath  string `yaml:"react_path" mapstructure:"react_path"`   // module specifier for React
	LinkSource bool   `yaml:"link_source" mapstructure:"link_source"` // import the new unit into the source file
}

// PathsConfig restricts which files may receive an extracted unit.
type PathsConfig struct {
	Destinations []string `yaml:"destinations" mapstructure:"destinations"` // glob patterns for destination files
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Component: ComponentConfig{
			Style:  string(extract.StyleFunction),
			Indent: extract.DefaultIndent,
		},
		Imports: ImportsConfig{
			React:      true,
			ReactPath:  "react",
			LinkSource: true,
		},
		Paths: PathsConfig{
			Destinations: []string{
				"**/*.jsx",
				"**/*.tsx",
				"**/*.js",
				"**/*.ts",
				"*.jsx",
				"*.tsx",
				"*.js",
				"*.ts",
			},
		},
	}
}

// UnitOptions converts the component settings into extract options.
func (c *Config) UnitOptions() extract.UnitOptions {
	return extract.UnitOptions{
		Style:  extract.Style(strings.ToLower(c.Component.Style)),
		Indent: c.Component.Indent,
	}
}
