package workflow

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mvp-joe/jsxtract/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Workflow.Run:
// - A selection is moved into a new destination file and replaced by a call site
// - The source imports the new component and the destination imports React
// - The destination is written before the source
// - An existing destination keeps its content and React import
// - Extracting into the source file itself needs no cross-file import
// - Dry runs report the result without writing
// - Empty selections and cancelled pickers end silently without writes
// - Destinations outside the configured patterns are rejected
// - Malformed fragments leave both files untouched
// - A cancelled context stops the run before writing

const appSource = `import React from "react";

export class App extends React.Component {
  render() {
    return (
      <div>
        <span>{this.props.label}</span>
      </div>
    );
  }
}
`

// labelRange selects <span>{this.props.label}</span>.
var labelRange = Range{Start: Position{Line: 7, Column: 9}, End: Position{Line: 7, Column: 40}}

type memFS struct {
	mu     sync.Mutex
	files  map[string][]byte
	writes []string
	failOn string
}

func newMemFS(files map[string]string) *memFS {
	m := &memFS{files: map[string][]byte{}}
	for path, content := range files {
		m.files[path] = []byte(content)
	}
	return m
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if path == m.failOn {
		return fmt.Errorf("disk full")
	}
	m.writes = append(m.writes, path)
	m.files[path] = data
	return nil
}

func (m *memFS) text(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.files[path])
}

func newTestWorkflow(t *testing.T, files FileSystem, dest string, mutate ...func(*Config)) *Workflow {
	t.Helper()
	cfg := Config{
		Files:        files,
		Picker:       StaticPicker(dest),
		Unit:         extract.UnitOptions{Style: extract.StyleFunction},
		ReactImport:  true,
		ReactPath:    "react",
		LinkSource:   true,
		Destinations: []string{"**/*.jsx", "*.jsx"},
	}
	for _, m := range mutate {
		m(&cfg)
	}
	w, err := New(cfg)
	require.NoError(t, err)
	return w
}

func TestRun_ExtractsIntoNewFile(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "widgets/label.jsx")

	report, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "Label", report.Name)
	assert.Equal(t, "/project/src/widgets/label.jsx", report.Destination)
	assert.Equal(t, report.Destination, report.SwitchTo)
	assert.True(t, report.Written)
	assert.Equal(t, []string{"label"}, report.Classification.MemberProps.Names())

	dest := files.text("/project/src/widgets/label.jsx")
	assert.True(t, strings.HasPrefix(dest, "import React from \"react\";\n"))
	assert.Contains(t, dest, "export function Label(props) {\n  const { label } = props;\n")
	assert.Contains(t, dest, "<span>{label}</span>")

	src := files.text("/project/src/App.jsx")
	assert.Contains(t, src, "import { Label } from \"./widgets/label\";")
	assert.Contains(t, src, report.CallSite)
	assert.NotContains(t, src, "<span>")
	assert.Equal(t, extract.SynthesizeCallSite("Label", report.Classification), report.CallSite)

	assert.Equal(t, []string{"/project/src/widgets/label.jsx", "/project/src/App.jsx"}, files.writes,
		"destination must be written before the source")
}

func TestRun_AppendsToExistingDestination(t *testing.T) {
	t.Parallel()

	existing := "import React, { useState } from \"react\";\n\nexport function Other() {\n  return null;\n}\n\n\n"
	files := newMemFS(map[string]string{
		"/project/src/App.jsx":   appSource,
		"/project/src/label.jsx": existing,
	})
	w := newTestWorkflow(t, files, "label.jsx")

	_, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	require.NoError(t, err)

	dest := files.text("/project/src/label.jsx")
	assert.True(t, strings.HasPrefix(dest, strings.TrimRight(existing, "\n")+"\n\nexport function Label("))
	assert.Equal(t, 1, strings.Count(dest, "from \"react\""))
	assert.True(t, strings.HasSuffix(dest, "}\n"))
	assert.False(t, strings.HasSuffix(dest, "}\n\n"))

	assert.Contains(t, files.text("/project/src/App.jsx"), "import { Label } from \"./label\";")
}

func TestRun_SameFileDestination(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "App.jsx")

	report, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	require.NoError(t, err)
	assert.Equal(t, "App", report.Name)

	src := files.text("/project/src/App.jsx")
	assert.Contains(t, src, report.CallSite)
	assert.Contains(t, src, "export function App(props) {")
	assert.NotContains(t, src, "import { App }")
	assert.Equal(t, 1, strings.Count(src, "import React"))
	assert.Equal(t, []string{"/project/src/App.jsx"}, files.writes)
}

func TestRun_DryRunDoesNotWrite(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "label.jsx")

	report, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange, DryRun: true})
	require.NoError(t, err)

	assert.False(t, report.Written)
	assert.Empty(t, files.writes)
	assert.Equal(t, appSource, files.text("/project/src/App.jsx"))
	assert.Contains(t, report.DestinationText, "export function Label(")
	assert.Contains(t, report.SourceText, report.CallSite)
}

func TestRun_SilentEndings(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})

	var logs bytes.Buffer
	w := newTestWorkflow(t, files, "label.jsx", func(c *Config) {
		c.Logger = log.New(&logs, "", 0)
	})
	blank := Range{Start: Position{Line: 2, Column: 1}, End: Position{Line: 3, Column: 1}}
	report, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: blank})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.True(t, IsSilent(err))
	assert.Nil(t, report)
	assert.Contains(t, logs.String(), "Nothing selected")

	w = newTestWorkflow(t, files, "  ")
	_, err = w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.True(t, IsSilent(err))

	assert.Empty(t, files.writes)
}

func TestRun_RejectsUnsupportedDestination(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "label.css")

	_, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	assert.ErrorIs(t, err, ErrUnsupportedDestination)
	assert.False(t, IsSilent(err))
	assert.Empty(t, files.writes)
}

func TestRun_MalformedFragmentLeavesFilesUntouched(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "label.jsx")

	// Selects "<span>{this.props" only.
	partial := Range{Start: Position{Line: 7, Column: 9}, End: Position{Line: 7, Column: 26}}
	_, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: partial})
	assert.ErrorIs(t, err, extract.ErrMalformedFragment)
	assert.Empty(t, files.writes)
}

func TestRun_DestinationWriteFailureKeepsSource(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	files.failOn = "/project/src/label.jsx"
	w := newTestWorkflow(t, files, "label.jsx")

	_, err := w.Run(context.Background(), Request{Source: "/project/src/App.jsx", Range: labelRange})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write destination file")
	assert.Equal(t, appSource, files.text("/project/src/App.jsx"))
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	files := newMemFS(map[string]string{"/project/src/App.jsx": appSource})
	w := newTestWorkflow(t, files, "label.jsx")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := w.Run(ctx, Request{Source: "/project/src/App.jsx", Range: labelRange})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, files.writes)
}

func TestRun_ClassStyleOnDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "App.jsx")
	require.NoError(t, os.WriteFile(source, []byte(appSource), 0644))

	w := newTestWorkflow(t, OSFileSystem{}, "user-label.jsx", func(c *Config) {
		c.Unit = extract.UnitOptions{Style: extract.StyleClass, Indent: "    "}
	})

	report, err := w.Run(context.Background(), Request{Source: source, Range: labelRange})
	require.NoError(t, err)
	assert.Equal(t, "UserLabel", report.Name)

	dest, err := os.ReadFile(filepath.Join(dir, "user-label.jsx"))
	require.NoError(t, err)
	assert.Contains(t, string(dest), "export class UserLabel extends React.Component {\n    render() {\n")
	assert.Contains(t, string(dest), "        const { label } = this.props;\n")

	src, err := os.ReadFile(source)
	require.NoError(t, err)
	assert.Contains(t, string(src), "import { UserLabel } from \"./user-label\";")
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(Config{})
	assert.Error(t, err)

	_, err = New(Config{Picker: StaticPicker("x.jsx"), Destinations: []string{"src/[a-"}})
	assert.Error(t, err)
}
