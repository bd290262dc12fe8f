// Package workflow runs an extraction end to end: it reads the selection
// from a source file, asks for a destination, synthesizes the component and
// its call site, and writes both files.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/mvp-joe/jsxtract/internal/extract"
)

var (
	// ErrEmptySelection means there was nothing to extract.
	ErrEmptySelection = errors.New("selection is empty")

	// ErrCancelled means no destination was chosen.
	ErrCancelled = errors.New("extraction cancelled")

	// ErrUnsupportedDestination means the destination does not match any
	// configured destination pattern.
	ErrUnsupportedDestination = errors.New("unsupported destination file")
)

// IsSilent reports whether err ends a run without anything to report.
func IsSilent(err error) bool {
	return errors.Is(err, ErrEmptySelection) || errors.Is(err, ErrCancelled)
}

// Config wires a Workflow to its collaborators and settings.
type Config struct {
	Files   FileSystem
	Picker  DestinationPicker
	Imports ImportInjector
	Logger  *log.Logger

	Unit extract.UnitOptions

	// ReactImport adds a default import of ReactPath to the destination.
	ReactImport bool
	ReactPath   string

	// LinkSource imports the new component into the source file when the
	// destination is another file.
	LinkSource bool

	// Destinations are glob patterns a destination path must match,
	// relative to the source file's directory.
	Destinations []string
}

// Workflow performs extractions. It is safe for sequential reuse.
type Workflow struct {
	cfg      Config
	patterns []glob.Glob
}

// New validates cfg and fills in defaults for nil collaborators.
func New(cfg Config) (*Workflow, error) {
	if cfg.Picker == nil {
		return nil, errors.New("workflow requires a destination picker")
	}
	if cfg.Files == nil {
		cfg.Files = OSFileSystem{}
	}
	if cfg.Imports == nil {
		cfg.Imports = SyntaxImportInjector{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard, "", 0)
	}
	if cfg.ReactPath == "" {
		cfg.ReactPath = "react"
	}

	w := &Workflow{cfg: cfg}
	for _, pattern := range cfg.Destinations {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("failed to compile destination pattern %q: %w", pattern, err)
		}
		w.patterns = append(w.patterns, g)
	}
	return w, nil
}

// Request names the source file and the selected range.
type Request struct {
	Source string
	Range  Range
	DryRun bool
}

// Report describes a finished extraction.
type Report struct {
	Name           string                  `json:"name" yaml:"name"`
	Source         string                  `json:"source" yaml:"source"`
	Destination    string                  `json:"destination" yaml:"destination"`
	Unit           string                  `json:"unit" yaml:"unit"`
	CallSite       string                  `json:"call_site" yaml:"call_site"`
	Classification *extract.Classification `json:"classification" yaml:"classification"`
	Written        bool                    `json:"written" yaml:"written"`

	// SwitchTo is the file an editor should show next.
	SwitchTo string `json:"switch_to" yaml:"switch_to"`

	// Final file contents, kept for dry runs.
	SourceText      string `json:"-" yaml:"-"`
	DestinationText string `json:"-" yaml:"-"`
}

// Run extracts the selection in req. Nothing is written unless every step
// succeeds. The destination is written before the source so a failed write
// never leaves a call site pointing at a missing component.
func (w *Workflow) Run(ctx context.Context, req Request) (*Report, error) {
	source, err := filepath.Abs(req.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source path: %w", err)
	}

	content, err := w.cfg.Files.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}

	sel, err := Select(content, req.Range)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sel.Text) == "" {
		w.cfg.Logger.Printf("Nothing selected in %s", source)
		return nil, ErrEmptySelection
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dest, err := w.destination(ctx, source)
	if err != nil {
		return nil, err
	}

	ext, err := extract.Extract(dest, sel.Text, w.cfg.Unit)
	if err != nil {
		return nil, err
	}

	sourceText := sel.Replace(content, ext.CallSite)
	sameFile := dest == source

	var destText []byte
	if sameFile {
		destText, err = w.destinationText(sourceText, ext.Unit)
		if err != nil {
			return nil, err
		}
		sourceText = destText
	} else {
		existing, err := readOptional(w.cfg.Files, dest)
		if err != nil {
			return nil, fmt.Errorf("failed to read destination file: %w", err)
		}
		destText, err = w.destinationText(existing, ext.Unit)
		if err != nil {
			return nil, err
		}

		if w.cfg.LinkSource {
			module, err := modulePath(source, dest)
			if err != nil {
				return nil, fmt.Errorf("failed to compute import path: %w", err)
			}
			sourceText, err = w.cfg.Imports.EnsureNamedImport(sourceText, ext.Name, module)
			if err != nil {
				return nil, fmt.Errorf("failed to import %s into source: %w", ext.Name, err)
			}
		}
	}

	report := &Report{
		Name:            ext.Name,
		Source:          source,
		Destination:     dest,
		Unit:            ext.Unit,
		CallSite:        ext.CallSite,
		Classification:  ext.Classification,
		SwitchTo:        dest,
		SourceText:      string(sourceText),
		DestinationText: string(destText),
	}

	if req.DryRun {
		w.cfg.Logger.Printf("Dry run: %s would be extracted into %s", ext.Name, dest)
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !sameFile {
		if err := w.cfg.Files.WriteFile(dest, destText); err != nil {
			return nil, fmt.Errorf("failed to write destination file: %w", err)
		}
	}
	if err := w.cfg.Files.WriteFile(source, sourceText); err != nil {
		return nil, fmt.Errorf("failed to write source file: %w", err)
	}
	report.Written = true

	w.cfg.Logger.Printf("Extracted %s into %s", ext.Name, dest)
	return report, nil
}

func (w *Workflow) destination(ctx context.Context, source string) (string, error) {
	picked, err := w.cfg.Picker.Pick(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to pick destination: %w", err)
	}
	if strings.TrimSpace(picked) == "" {
		w.cfg.Logger.Printf("No destination chosen")
		return "", ErrCancelled
	}

	dir := filepath.Dir(source)
	dest := picked
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(dir, dest)
	}
	dest = filepath.Clean(dest)

	if len(w.patterns) > 0 {
		rel, err := filepath.Rel(dir, dest)
		if err != nil {
			rel = dest
		}
		rel = filepath.ToSlash(rel)
		if !w.matches(rel) {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedDestination, picked)
		}
	}
	return dest, nil
}

func (w *Workflow) matches(rel string) bool {
	for _, g := range w.patterns {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// destinationText appends unit to existing and adds the React import.
func (w *Workflow) destinationText(existing []byte, unit string) ([]byte, error) {
	var b strings.Builder
	if trimmed := strings.TrimRight(string(existing), "\n"); trimmed != "" {
		b.WriteString(trimmed)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimRight(unit, "\n"))
	b.WriteString("\n")

	out := []byte(b.String())
	if !w.cfg.ReactImport {
		return out, nil
	}
	out, err := w.cfg.Imports.EnsureDefaultImport(out, "React", w.cfg.ReactPath)
	if err != nil {
		return nil, fmt.Errorf("failed to add React import: %w", err)
	}
	return out, nil
}
