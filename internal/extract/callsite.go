package extract

import (
	"fmt"
	"strings"
)

// Attribute is one prop passed at the call site: Name={Value}.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// CallSiteModel is the replacement reference before rendering. Groups holds
// one attribute list per category, in Categories order.
type CallSiteModel struct {
	Name   string        `json:"name" yaml:"name"`
	Groups [][]Attribute `json:"groups" yaml:"groups"`
}

// BuildCallSite forwards every classified name from its original provenance.
func BuildCallSite(name string, c *Classification) *CallSiteModel {
	m := &CallSiteModel{Name: name, Groups: make([][]Attribute, len(Categories))}
	for i, cat := range Categories {
		for _, prop := range c.Set(cat).Names() {
			m.Groups[i] = append(m.Groups[i], Attribute{Name: prop, Value: cat.Source(prop)})
		}
	}
	return m
}

// Render prints the self-closing element. Each category contributes one
// space-separated segment, including empty ones.
func (m *CallSiteModel) Render() string {
	segments := make([]string, len(m.Groups))
	for i, group := range m.Groups {
		attrs := make([]string, len(group))
		for j, attr := range group {
			attrs[j] = fmt.Sprintf("%s={%s}", attr.Name, attr.Value)
		}
		segments[i] = strings.Join(attrs, " ")
	}
	return fmt.Sprintf("<%s  %s/>", m.Name, strings.Join(segments, " "))
}

// SynthesizeCallSite produces the element that replaces the selection.
func SynthesizeCallSite(name string, c *Classification) string {
	return BuildCallSite(name, c).Render()
}
