package jsx

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var (
	// ErrEmptyFragment indicates the fragment contained only whitespace.
	ErrEmptyFragment = errors.New("empty fragment")

	// ErrNotExpression indicates the fragment parsed, but not as a single expression.
	ErrNotExpression = errors.New("fragment is not a single expression")

	// ErrOverlappingEdits indicates two edits touch the same bytes.
	ErrOverlappingEdits = errors.New("overlapping edits")
)

// SyntaxError reports the first position tree-sitter could not parse.
type SyntaxError struct {
	Row    int // 1-indexed
	Column int // 1-indexed
	Near   string
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("syntax error at %d:%d", e.Row, e.Column)
	}
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Row, e.Column, e.Near)
}

// tsx is the TSX grammar. It parses plain JSX as well.
var tsx = sitter.NewLanguage(typescript.LanguageTSX())

// Fragment is a parsed markup expression. A Fragment is never modified;
// Apply returns a new one.
type Fragment struct {
	source []byte
	tree   *sitter.Tree
}

// Parse parses text as a standalone JSX/TSX expression. Leading and trailing
// whitespace is dropped, so node offsets refer to the trimmed text.
func Parse(text string) (*Fragment, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyFragment
	}

	source := []byte(trimmed)
	tree, err := parse(source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		defer tree.Close()
		return nil, syntaxErrorAt(firstErrorNode(root), source)
	}

	if countStatements(root) != 1 || firstStatement(root).Kind() != "expression_statement" {
		tree.Close()
		return nil, ErrNotExpression
	}

	return &Fragment{source: source, tree: tree}, nil
}

func parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsx); err != nil {
		return nil, fmt.Errorf("failed to load tsx grammar: %w", err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	return tree, nil
}

// countStatements counts top-level named children, ignoring comments.
func countStatements(root *sitter.Node) int {
	count := 0
	for i := uint(0); i < root.NamedChildCount(); i++ {
		if root.NamedChild(i).Kind() != "comment" {
			count++
		}
	}
	return count
}

func firstStatement(root *sitter.Node) *sitter.Node {
	for i := uint(0); i < root.NamedChildCount(); i++ {
		if child := root.NamedChild(i); child.Kind() != "comment" {
			return child
		}
	}
	return nil
}

// Close releases the underlying tree.
func (f *Fragment) Close() {
	if f != nil && f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Root returns the program node.
func (f *Fragment) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Expression returns the single top-level expression, without the statement
// wrapper or a trailing semicolon.
func (f *Fragment) Expression() *sitter.Node {
	root := f.Root()
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() == "expression_statement" {
			return stmt.NamedChild(0)
		}
	}
	return nil
}

// Text serializes the expression back to source text.
func (f *Fragment) Text() string {
	return NodeText(f.Expression(), f.source)
}

// NodeText returns the source text a node spans.
func (f *Fragment) NodeText(node *sitter.Node) string {
	return NodeText(node, f.source)
}

// Edit replaces the bytes [Start, End) of a fragment with Text.
type Edit struct {
	Start uint
	End   uint
	Text  string
}

// Apply returns a new Fragment with the edits applied and re-parsed.
// The receiver is left untouched.
func (f *Fragment) Apply(edits []Edit) (*Fragment, error) {
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var buf bytes.Buffer
	var pos uint
	for _, e := range sorted {
		if e.Start < pos || e.End < e.Start || e.End > uint(len(f.source)) {
			return nil, fmt.Errorf("%w: [%d,%d)", ErrOverlappingEdits, e.Start, e.End)
		}
		buf.Write(f.source[pos:e.Start])
		buf.WriteString(e.Text)
		pos = e.End
	}
	buf.Write(f.source[pos:])

	return Parse(buf.String())
}

func syntaxErrorAt(node *sitter.Node, source []byte) *SyntaxError {
	if node == nil {
		return &SyntaxError{Row: 1, Column: 1}
	}
	pos := node.StartPosition()
	near := NodeText(node, source)
	if len(near) > 20 {
		near = near[:20]
	}
	return &SyntaxError{
		Row:    int(pos.Row) + 1,
		Column: int(pos.Column) + 1,
		Near:   near,
	}
}

// firstErrorNode finds the first ERROR or MISSING node in document order.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	var found *sitter.Node
	Walk(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			found = n
			return false
		}
		return n.HasError()
	})
	return found
}
