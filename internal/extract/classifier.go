package extract

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/jsxtract/internal/jsx"
)

// selfKind is the node kind of the enclosing component's instance reference.
const selfKind = "this"

// Rewrite records one member access the normalizer replaced.
type Rewrite struct {
	Category  Category `json:"category" yaml:"category"`
	Name      string   `json:"name" yaml:"name"`
	From      string   `json:"from" yaml:"from"`
	Rewritten string   `json:"rewritten" yaml:"rewritten"`
	To        string   `json:"to" yaml:"to"`
	StartByte uint     `json:"start_byte" yaml:"start_byte"`
	EndByte   uint     `json:"end_byte" yaml:"end_byte"`
}

// Result is a classified fragment together with its normalized form.
type Result struct {
	Fragment       *jsx.Fragment
	Classification *Classification
	Rewrites       []Rewrite
}

// Body returns the normalized fragment text.
func (r *Result) Body() string {
	return r.Fragment.Text()
}

// Close releases the normalized fragment.
func (r *Result) Close() {
	if r != nil {
		r.Fragment.Close()
	}
}

// ClassifyText parses text and classifies it.
func ClassifyText(text string) (*Result, error) {
	frag, err := jsx.Parse(text)
	if err != nil {
		return nil, &MalformedFragmentError{Err: err}
	}
	defer frag.Close()

	return Classify(frag)
}

// Classify walks the fragment once, buckets every name it depends on and
// returns a new fragment in which every this.props.x, this.state.x and
// this.x access has been replaced by the bare name x. frag is not modified.
func Classify(frag *jsx.Fragment) (*Result, error) {
	c := &classifier{
		frag:    frag,
		visited: make(map[uintptr]bool),
		result:  NewClassification(),
	}

	if err := c.visit(frag.Expression(), nil); err != nil {
		return nil, err
	}

	normalized, err := frag.Apply(c.edits)
	if err != nil {
		return nil, &SynthesisInputError{
			Reason:  fmt.Sprintf("normalized fragment is invalid: %v", err),
			Snippet: frag.Text(),
		}
	}

	return &Result{
		Fragment:       normalized,
		Classification: c.result,
		Rewrites:       c.rewrites,
	}, nil
}

// classifier holds the state of a single traversal. visited is keyed by
// node identity and never outlives the call to Classify.
type classifier struct {
	frag     *jsx.Fragment
	visited  map[uintptr]bool
	result   *Classification
	edits    []jsx.Edit
	rewrites []Rewrite
}

func (c *classifier) visit(n *sitter.Node, sc *scope) error {
	if n == nil || c.visited[n.Id()] {
		return nil
	}

	switch n.Kind() {
	case "member_expression":
		replaced, err := c.member(n)
		if err != nil || replaced {
			return err
		}
	case "identifier", "shorthand_property_identifier":
		c.identifier(n, sc)
		return nil
	case selfKind:
		return &SynthesisInputError{
			Reason:  "self reference cannot be relocated",
			Snippet: c.frag.NodeText(enclosing(n)),
		}
	case "arrow_function", "function_expression", "function", "generator_function", "method_definition":
		return c.function(n, sc)
	}

	return c.visitChildren(n, sc)
}

func (c *classifier) visitChildren(n *sitter.Node, sc *scope) error {
	for i := uint(0); i < n.ChildCount(); i++ {
		if err := c.visit(n.Child(i), sc); err != nil {
			return err
		}
	}
	return nil
}

// member classifies this.props.x, this.state.x and this.x. It reports
// whether n was replaced; unmatched chains are left for the caller to descend.
func (c *classifier) member(n *sitter.Node) (bool, error) {
	object := n.ChildByFieldName("object")
	property := n.ChildByFieldName("property")
	if object == nil || property == nil {
		return false, nil
	}
	name := c.frag.NodeText(property)

	if object.Kind() == selfKind {
		if name == "props" || name == "state" {
			return false, &SynthesisInputError{
				Reason:  fmt.Sprintf("this.%s must be followed by a property name", name),
				Snippet: c.frag.NodeText(enclosing(n)),
			}
		}
		c.replace(n, ComponentMembers, name, selfKind+"."+name)
		return true, nil
	}

	if object.Kind() != "member_expression" {
		return false, nil
	}
	root := object.ChildByFieldName("object")
	via := object.ChildByFieldName("property")
	if root == nil || via == nil || root.Kind() != selfKind {
		return false, nil
	}

	switch c.frag.NodeText(via) {
	case "props":
		c.replace(n, MemberProps, name, selfKind+".props."+name)
		return true, nil
	case "state":
		// The new unit receives state as an incoming prop.
		c.replace(n, State, name, selfKind+".props."+name)
		return true, nil
	}
	return false, nil
}

func (c *classifier) replace(n *sitter.Node, cat Category, name, rewritten string) {
	c.visited[n.Id()] = true
	c.result.Set(cat).Add(name)
	c.edits = append(c.edits, jsx.Edit{Start: n.StartByte(), End: n.EndByte(), Text: name})
	c.rewrites = append(c.rewrites, Rewrite{
		Category:  cat,
		Name:      name,
		From:      c.frag.NodeText(n),
		Rewritten: rewritten,
		To:        name,
		StartByte: n.StartByte(),
		EndByte:   n.EndByte(),
	})
}

func (c *classifier) identifier(n *sitter.Node, sc *scope) {
	c.visited[n.Id()] = true

	name := c.frag.NodeText(n)
	if sc.binds(name) || isPropertyName(n) || isObjectKey(n) || isTagName(n) {
		return
	}
	c.result.ArgumentProps.Add(name)
}

// function binds the parameters (and name) of a function nested in the
// fragment, so references to them are not treated as free variables.
func (c *classifier) function(n *sitter.Node, outer *scope) error {
	inner := outer.child()

	if name := n.ChildByFieldName("name"); name != nil && n.Kind() != "method_definition" {
		inner.bind(c.frag.NodeText(name))
		c.visited[name.Id()] = true
	}

	for _, field := range []string{"parameter", "parameters"} {
		params := n.ChildByFieldName(field)
		if params == nil {
			continue
		}
		if err := c.bindPattern(params, inner, outer); err != nil {
			return err
		}
		c.visited[params.Id()] = true
	}

	return c.visitChildren(n, inner)
}

// bindPattern declares every name a parameter pattern introduces. Default
// values are classified in the outer scope.
func (c *classifier) bindPattern(p *sitter.Node, inner, outer *scope) error {
	if p == nil {
		return nil
	}

	switch p.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		inner.bind(c.frag.NodeText(p))
		c.visited[p.Id()] = true
		return nil
	case "required_parameter", "optional_parameter":
		if err := c.bindPattern(p.ChildByFieldName("pattern"), inner, outer); err != nil {
			return err
		}
		return c.visit(p.ChildByFieldName("value"), outer)
	case "assignment_pattern", "object_assignment_pattern":
		if err := c.bindPattern(p.ChildByFieldName("left"), inner, outer); err != nil {
			return err
		}
		return c.visit(p.ChildByFieldName("right"), outer)
	case "pair_pattern":
		return c.bindPattern(p.ChildByFieldName("value"), inner, outer)
	case "formal_parameters", "object_pattern", "array_pattern", "rest_pattern":
		for i := uint(0); i < p.NamedChildCount(); i++ {
			if err := c.bindPattern(p.NamedChild(i), inner, outer); err != nil {
				return err
			}
		}
	}
	return nil
}

// isPropertyName reports whether n is the property side of a member access.
func isPropertyName(n *sitter.Node) bool {
	parent := n.Parent()
	return parent != nil && parent.Kind() == "member_expression" && jsx.IsField(parent, "property", n)
}

// isObjectKey reports whether n is the key of an object literal entry.
func isObjectKey(n *sitter.Node) bool {
	parent := n.Parent()
	return parent != nil && parent.Kind() == "pair" && jsx.IsField(parent, "key", n)
}

// isTagName reports whether n is part of a JSX element or attribute name.
func isTagName(n *sitter.Node) bool {
	cur := n
	parent := cur.Parent()
	for parent != nil {
		switch parent.Kind() {
		case "jsx_namespace_name":
			return true
		case "member_expression", "nested_identifier":
			cur = parent
			parent = parent.Parent()
			continue
		case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
			return jsx.IsField(parent, "name", cur)
		}
		return false
	}
	return false
}

// enclosing widens a self reference to the expression that uses it.
func enclosing(n *sitter.Node) *sitter.Node {
	if parent := n.Parent(); parent != nil {
		switch parent.Kind() {
		case "member_expression", "subscript_expression", "spread_element", "call_expression":
			return parent
		}
	}
	return n
}

// scope is the set of names bound by functions nested in the fragment.
type scope struct {
	parent *scope
	names  map[string]bool
}

func (s *scope) child() *scope {
	return &scope{parent: s, names: make(map[string]bool)}
}

func (s *scope) bind(name string) {
	s.names[name] = true
}

func (s *scope) binds(name string) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.names[name] {
			return true
		}
	}
	return false
}
