package jsx

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Import describes one import statement of a module.
type Import struct {
	Source    string   // module specifier without quotes
	Default   string   // default binding, if any
	Namespace string   // "* as X" binding, if any
	Named     []string // imported names (not aliases)
	StartByte uint
	EndByte   uint
}

// ScanImports lists the import statements of a whole module in source order.
// Files with syntax errors are scanned on a best-effort basis.
func ScanImports(source []byte) ([]Import, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return nil, nil
	}

	tree, err := parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	var imports []Import
	root := tree.RootNode()
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "import_statement" {
			continue
		}
		imports = append(imports, scanImport(stmt, source))
	}
	return imports, nil
}

// DirectivesEnd returns the end offset of the directive prologue of a module,
// the leading string statements such as "use client". It is 0 when the
// module has none.
func DirectivesEnd(source []byte) (uint, error) {
	if len(strings.TrimSpace(string(source))) == 0 {
		return 0, nil
	}

	tree, err := parse(source)
	if err != nil {
		return 0, err
	}
	defer tree.Close()

	var end uint
	root := tree.RootNode()
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() == "comment" || stmt.Kind() == "hash_bang_line" {
			continue
		}
		if !isDirective(stmt) {
			break
		}
		end = stmt.EndByte()
	}
	return end, nil
}

func isDirective(stmt *sitter.Node) bool {
	return stmt.Kind() == "expression_statement" &&
		stmt.NamedChildCount() == 1 &&
		stmt.NamedChild(0).Kind() == "string"
}

func scanImport(stmt *sitter.Node, source []byte) Import {
	imp := Import{
		Source:    unquote(NodeText(stmt.ChildByFieldName("source"), source)),
		StartByte: stmt.StartByte(),
		EndByte:   stmt.EndByte(),
	}

	clause := FindChildByType(stmt, "import_clause")
	if clause == nil {
		return imp
	}

	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		switch child.Kind() {
		case "identifier":
			imp.Default = NodeText(child, source)
		case "namespace_import":
			if id := FindChildByType(child, "identifier"); id != nil {
				imp.Namespace = NodeText(id, source)
			}
		case "named_imports":
			for _, specifier := range FindChildrenByType(child, "import_specifier") {
				if name := specifier.ChildByFieldName("name"); name != nil {
					imp.Named = append(imp.Named, NodeText(name, source))
				}
			}
		}
	}
	return imp
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && last == first {
			return s[1 : len(s)-1]
		}
	}
	return s
}
