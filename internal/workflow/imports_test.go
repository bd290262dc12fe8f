package workflow

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for imports, files and pickers:
// - EnsureDefaultImport adds a default import only when none exists
// - EnsureDefaultImport places the import before existing imports
// - EnsureNamedImport appends after the last import and skips existing ones
// - Both keep "use client" style directives first in modules without imports
// - modulePath produces relative specifiers without extensions
// - OSFileSystem writes atomically, keeps the file mode and leaves no temp files
// - PromptPicker reads one line and treats an empty answer as cancel
// - PromptPicker keeps buffered input across Picks
// - A Pick cancelled mid-read hands the late line to the next Pick

func TestEnsureDefaultImport(t *testing.T) {
	t.Parallel()

	var inj SyntaxImportInjector

	out, err := inj.EnsureDefaultImport([]byte("export const a = 1;\n"), "React", "react")
	require.NoError(t, err)
	assert.Equal(t, "import React from \"react\";\nexport const a = 1;\n", string(out))

	src := "// header\nimport { useState } from \"react\";\nimport x from \"./x\";\n"
	out, err = inj.EnsureDefaultImport([]byte(src), "React", "react")
	require.NoError(t, err)
	assert.Equal(t,
		"// header\nimport React from \"react\";\nimport { useState } from \"react\";\nimport x from \"./x\";\n",
		string(out))

	for _, existing := range []string{
		"import React from \"react\";\n",
		"import React, { useState } from 'react';\n",
		"import * as React from \"react\";\n",
	} {
		out, err := inj.EnsureDefaultImport([]byte(existing), "React", "react")
		require.NoError(t, err)
		assert.Equal(t, existing, string(out))
	}
}

func TestEnsureNamedImport(t *testing.T) {
	t.Parallel()

	var inj SyntaxImportInjector

	src := "import React from \"react\";\n\nexport class App {}\n"
	out, err := inj.EnsureNamedImport([]byte(src), "Label", "./label")
	require.NoError(t, err)
	assert.Equal(t,
		"import React from \"react\";\nimport { Label } from \"./label\";\n\nexport class App {}\n",
		string(out))

	again, err := inj.EnsureNamedImport(out, "Label", "./label")
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))

	out, err = inj.EnsureNamedImport([]byte("const a = 1;\n"), "Label", "./label")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "import { Label } from \"./label\";\n"))
}

func TestEnsureImport_AfterDirectives(t *testing.T) {
	t.Parallel()

	var inj SyntaxImportInjector

	src := "\"use client\";\n\nexport function Card() {}\n"
	out, err := inj.EnsureDefaultImport([]byte(src), "React", "react")
	require.NoError(t, err)
	assert.Equal(t,
		"\"use client\";\nimport React from \"react\";\n\nexport function Card() {}\n",
		string(out))

	src = "// app\n'use strict';\n\"use client\";\nconst a = 1;\n"
	out, err = inj.EnsureNamedImport([]byte(src), "Label", "./label")
	require.NoError(t, err)
	assert.Equal(t,
		"// app\n'use strict';\n\"use client\";\nimport { Label } from \"./label\";\nconst a = 1;\n",
		string(out))

	// Existing imports already follow the directives.
	src = "\"use client\";\nimport x from \"./x\";\n"
	out, err = inj.EnsureDefaultImport([]byte(src), "React", "react")
	require.NoError(t, err)
	assert.Equal(t, "\"use client\";\nimport React from \"react\";\nimport x from \"./x\";\n", string(out))
}

func TestModulePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, target, want string
	}{
		{"/p/src/App.jsx", "/p/src/label.jsx", "./label"},
		{"/p/src/App.jsx", "/p/src/widgets/nav-bar.tsx", "./widgets/nav-bar"},
		{"/p/src/App.jsx", "/p/shared/card.js", "../shared/card"},
	}
	for _, tt := range tests {
		got, err := modulePath(tt.from, tt.target)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestOSFileSystem_WriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "card.jsx")
	var files OSFileSystem

	require.NoError(t, files.WriteFile(path, []byte("one")))
	data, err := files.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))

	require.NoError(t, os.Chmod(path, 0600))
	require.NoError(t, files.WriteFile(path, []byte("two")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "card.jsx", entries[0].Name())
}

func TestPromptPicker(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	p := &PromptPicker{In: strings.NewReader("  widgets/card.jsx \n"), Out: &out}
	got, err := p.Pick(context.Background(), "App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "widgets/card.jsx", got)
	assert.Contains(t, out.String(), "App.jsx")

	p = &PromptPicker{In: strings.NewReader(""), Out: &out}
	got, err = p.Pick(context.Background(), "App.jsx")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPromptPicker_SharedReader(t *testing.T) {
	t.Parallel()

	p := &PromptPicker{In: strings.NewReader("first.jsx\nsecond.jsx\n"), Out: io.Discard}

	got, err := p.Pick(context.Background(), "App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "first.jsx", got)

	got, err = p.Pick(context.Background(), "App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "second.jsx", got)
}

func TestPromptPicker_CancelledRead(t *testing.T) {
	t.Parallel()

	in, w := io.Pipe()
	defer w.Close()
	p := &PromptPicker{In: in, Out: io.Discard}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Pick(ctx, "App.jsx")
	assert.ErrorIs(t, err, context.Canceled)

	go func() {
		w.Write([]byte("late.jsx\n"))
	}()
	got, err := p.Pick(context.Background(), "App.jsx")
	require.NoError(t, err)
	assert.Equal(t, "late.jsx", got)
}
