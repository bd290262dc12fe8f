package jsx

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeText extracts the text content of a tree-sitter node.
func NodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Walk recursively walks a tree-sitter tree in pre-order and calls the
// visitor for each node. Returning false skips the node's children.
func Walk(node *sitter.Node, visitor func(*sitter.Node) bool) {
	if node == nil {
		return
	}

	if !visitor(node) {
		return
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		Walk(node.Child(i), visitor)
	}
}

// SameNode reports whether a and b are the same node of the same tree.
func SameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Id() == b.Id()
}

// IsField reports whether child is the node stored under field on parent.
func IsField(parent *sitter.Node, field string, child *sitter.Node) bool {
	if parent == nil {
		return false
	}
	return SameNode(parent.ChildByFieldName(field), child)
}

// FindChildByType finds the first child node with the given type.
func FindChildByType(node *sitter.Node, nodeType string) *sitter.Node {
	if node == nil {
		return nil
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == nodeType {
			return child
		}
	}
	return nil
}

// FindChildrenByType finds all child nodes with the given type.
func FindChildrenByType(node *sitter.Node, nodeType string) []*sitter.Node {
	var results []*sitter.Node
	if node == nil {
		return results
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == nodeType {
			results = append(results, child)
		}
	}
	return results
}
