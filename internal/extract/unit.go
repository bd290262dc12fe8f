package extract

import (
	"fmt"
	"strings"
)

// Style selects how the new unit is declared.
type Style string

const (
	// StyleFunction declares a function component.
	StyleFunction Style = "function"
	// StyleClass declares a React.Component subclass.
	StyleClass Style = "class"
)

// DefaultIndent is used when UnitOptions.Indent is empty.
const DefaultIndent = "  "

// UnitOptions controls unit rendering.
type UnitOptions struct {
	Style  Style
	Indent string
}

// UnitModel is the structure of a synthesized unit before rendering.
type UnitModel struct {
	Name string `json:"name" yaml:"name"`
	// Params are received directly as destructured parameters.
	Params []string `json:"params" yaml:"params"`
	// PropReads are read from the unit's incoming props object.
	PropReads []string `json:"prop_reads" yaml:"prop_reads"`
	Body      string   `json:"body" yaml:"body"`
}

// propsName binds the unit's incoming props object whenever it has prop reads.
const propsName = "props"

// BuildUnit assembles the unit model. A name classified under two
// provenances is rejected, since the unit could only receive one of them.
// So is a name that shadows the props binding of a unit with prop reads.
func BuildUnit(name, body string, c *Classification) (*UnitModel, error) {
	if dup := c.Collisions(); len(dup) > 0 {
		return nil, &NameCollisionError{Names: dup}
	}

	m := &UnitModel{
		Name:   name,
		Params: c.ArgumentProps.Names(),
		Body:   body,
	}
	for _, cat := range []Category{State, MemberProps, ComponentMembers} {
		m.PropReads = append(m.PropReads, c.Set(cat).Names()...)
	}
	if len(m.PropReads) > 0 {
		for _, cat := range Categories {
			if c.Set(cat).Has(propsName) {
				return nil, &NameCollisionError{Names: []string{propsName}, Reserved: true}
			}
		}
	}
	return m, nil
}

// Render renders the model as source text.
func (m *UnitModel) Render(opts UnitOptions) (string, error) {
	indent := opts.Indent
	if indent == "" {
		indent = DefaultIndent
	}

	switch opts.Style {
	case StyleFunction, "":
		return renderFunction(m, indent), nil
	case StyleClass:
		return renderClass(m, indent), nil
	default:
		return "", fmt.Errorf("unknown unit style %q", opts.Style)
	}
}

// SynthesizeUnit produces the full definition of the new unit.
func SynthesizeUnit(name, body string, c *Classification, opts UnitOptions) (string, error) {
	m, err := BuildUnit(name, body, c)
	if err != nil {
		return "", err
	}
	return m.Render(opts)
}

// renderFunction:
//
//	export function Name({ a, ...props }) {
//	  const { s, m } = props;
//	  return (
//	    <body />
//	  );
//	}
func renderFunction(m *UnitModel, indent string) string {
	var param string
	switch {
	case len(m.Params) > 0 && len(m.PropReads) > 0:
		param = "{ " + strings.Join(m.Params, ", ") + ", ..." + propsName + " }"
	case len(m.Params) > 0:
		param = "{ " + strings.Join(m.Params, ", ") + " }"
	case len(m.PropReads) > 0:
		param = propsName
	}

	var b strings.Builder
	fmt.Fprintf(&b, "export function %s(%s) {\n", m.Name, param)
	if len(m.PropReads) > 0 {
		fmt.Fprintf(&b, "%sconst { %s } = %s;\n", indent, strings.Join(m.PropReads, ", "), propsName)
	}
	writeReturn(&b, m.Body, indent, 1)
	b.WriteString("}\n")
	return b.String()
}

// renderClass:
//
//	export class Name extends React.Component {
//	  render() {
//	    const { a, s, m } = this.props;
//	    return (
//	      <body />
//	    );
//	  }
//	}
func renderClass(m *UnitModel, indent string) string {
	names := append(append([]string{}, m.Params...), m.PropReads...)

	var b strings.Builder
	fmt.Fprintf(&b, "export class %s extends React.Component {\n", m.Name)
	fmt.Fprintf(&b, "%srender() {\n", indent)
	if len(names) > 0 {
		fmt.Fprintf(&b, "%sconst { %s } = this.props;\n", strings.Repeat(indent, 2), strings.Join(names, ", "))
	}
	writeReturn(&b, m.Body, indent, 2)
	fmt.Fprintf(&b, "%s}\n", indent)
	b.WriteString("}\n")
	return b.String()
}

func writeReturn(b *strings.Builder, body, indent string, depth int) {
	prefix := strings.Repeat(indent, depth)
	fmt.Fprintf(b, "%sreturn (\n", prefix)
	b.WriteString(reindent(body, prefix+indent))
	b.WriteString("\n")
	fmt.Fprintf(b, "%s);\n", prefix)
}

// reindent strips the indentation shared by all lines after the first (the
// first line lost its indentation when the selection was trimmed) and
// prefixes every line with prefix.
func reindent(body, prefix string) string {
	lines := strings.Split(body, "\n")

	common := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	if common < 0 {
		common = 0
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		if i > 0 {
			line = line[common:]
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
