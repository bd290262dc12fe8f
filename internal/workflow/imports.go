package workflow

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mvp-joe/jsxtract/internal/jsx"
)

// ImportInjector adds import statements to module source when missing.
type ImportInjector interface {
	// EnsureDefaultImport makes sure module is imported with a default or
	// namespace binding, adding `import name from "module";` otherwise.
	EnsureDefaultImport(source []byte, name, module string) ([]byte, error)

	// EnsureNamedImport makes sure name is imported from module.
	EnsureNamedImport(source []byte, name, module string) ([]byte, error)
}

// SyntaxImportInjector inspects existing imports with the tsx grammar.
type SyntaxImportInjector struct{}

// EnsureDefaultImport prepends a default import before the first import, or
// after the directive prologue of a module without imports.
func (SyntaxImportInjector) EnsureDefaultImport(source []byte, name, module string) ([]byte, error) {
	imports, err := jsx.ScanImports(source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan imports: %w", err)
	}

	for _, imp := range imports {
		if imp.Source == module && (imp.Default != "" || imp.Namespace != "") {
			return source, nil
		}
	}

	stmt := fmt.Sprintf("import %s from %q;", name, module)
	if len(imports) > 0 {
		return insertAt(source, int(imports[0].StartByte), stmt+"\n"), nil
	}
	return insertFirst(source, stmt)
}

// EnsureNamedImport appends a named import after the last import.
func (SyntaxImportInjector) EnsureNamedImport(source []byte, name, module string) ([]byte, error) {
	imports, err := jsx.ScanImports(source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan imports: %w", err)
	}

	for _, imp := range imports {
		if imp.Source == module && (imp.Default == name || slices.Contains(imp.Named, name)) {
			return source, nil
		}
	}

	stmt := fmt.Sprintf("import { %s } from %q;", name, module)
	if len(imports) == 0 {
		return insertFirst(source, stmt)
	}
	return insertAt(source, int(imports[len(imports)-1].EndByte), "\n"+stmt), nil
}

// insertFirst places stmt on its own line as the first statement after any
// "use client" style directives.
func insertFirst(source []byte, stmt string) ([]byte, error) {
	end, err := jsx.DirectivesEnd(source)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directives: %w", err)
	}
	if end == 0 {
		return insertAt(source, 0, stmt+"\n"), nil
	}
	return insertAt(source, int(end), "\n"+stmt), nil
}

func insertAt(source []byte, at int, text string) []byte {
	out := make([]byte, 0, len(source)+len(text))
	out = append(out, source[:at]...)
	out = append(out, text...)
	out = append(out, source[at:]...)
	return out
}

// modulePath is the relative import specifier of target seen from the
// directory of from, without the file extension.
func modulePath(from, target string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(from), target)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel, nil
}
