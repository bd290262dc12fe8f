package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/jsxtract/internal/extract"
)

var (
	// ErrInvalidStyle indicates an unsupported component style
	ErrInvalidStyle = errors.New("invalid component style")

	// ErrInvalidIndent indicates an indentation string that is empty or not whitespace
	ErrInvalidIndent = errors.New("invalid indent")

	// ErrEmptyReactPath indicates React imports are enabled without a module path
	ErrEmptyReactPath = errors.New("empty react import path")

	// ErrEmptyDestinations indicates no destination patterns are configured
	ErrEmptyDestinations = errors.New("empty destination patterns")

	// ErrInvalidPattern indicates a destination pattern that does not compile
	ErrInvalidPattern = errors.New("invalid destination pattern")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateComponent(&cfg.Component); err != nil {
		errs = append(errs, err)
	}

	if err := validateImports(&cfg.Imports); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateComponent(cfg *ComponentConfig) error {
	var errs []error

	switch extract.Style(strings.ToLower(cfg.Style)) {
	case extract.StyleFunction, extract.StyleClass:
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'function' or 'class', got '%s'", ErrInvalidStyle, cfg.Style))
	}

	if cfg.Indent == "" || strings.Trim(cfg.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("%w: must be spaces or tabs, got %q", ErrInvalidIndent, cfg.Indent))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateImports(cfg *ImportsConfig) error {
	if cfg.React && strings.TrimSpace(cfg.ReactPath) == "" {
		return fmt.Errorf("%w: react_path is required when react imports are enabled", ErrEmptyReactPath)
	}
	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Destinations) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one pattern required", ErrEmptyDestinations))
	}

	for _, pattern := range cfg.Destinations {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches every joined error with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &validationError{errs: errs}
}

type validationError struct {
	errs []error
}

func (e *validationError) Error() string {
	var msgs []string
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationError) Unwrap() []error {
	return e.errs
}
