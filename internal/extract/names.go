package extract

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Category is the provenance of a name used by an extracted fragment.
type Category int

const (
	// State names were read from this.state.<name>.
	State Category = iota
	// ArgumentProps are bare identifiers resolved in the enclosing scope.
	ArgumentProps
	// MemberProps names were read from this.props.<name>.
	MemberProps
	// ComponentMembers names were read from this.<name>.
	ComponentMembers
)

// Categories lists every category in call-site attribute order.
var Categories = []Category{State, ArgumentProps, MemberProps, ComponentMembers}

func (c Category) String() string {
	switch c {
	case State:
		return "state"
	case ArgumentProps:
		return "argumentProps"
	case MemberProps:
		return "memberProps"
	case ComponentMembers:
		return "componentMembers"
	default:
		return "unknown"
	}
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Source returns the expression that reads name from its original
// provenance in the enclosing component.
func (c Category) Source(name string) string {
	switch c {
	case State:
		return selfKind + ".state." + name
	case MemberProps:
		return selfKind + ".props." + name
	case ComponentMembers:
		return selfKind + "." + name
	default:
		return name
	}
}

// NameSet is a set of names that remembers insertion order.
type NameSet struct {
	m *orderedmap.OrderedMap[string, struct{}]
}

// NewNameSet creates a set holding names.
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{m: orderedmap.New[string, struct{}]()}
	for _, name := range names {
		s.Add(name)
	}
	return s
}

// Add inserts name and reports whether it was new.
func (s *NameSet) Add(name string) bool {
	_, present := s.m.Set(name, struct{}{})
	return !present
}

// Has reports whether name is in the set.
func (s *NameSet) Has(name string) bool {
	_, ok := s.m.Get(name)
	return ok
}

// Len returns the number of names.
func (s *NameSet) Len() int {
	return s.m.Len()
}

// Names returns the names in insertion order.
func (s *NameSet) Names() []string {
	names := make([]string, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MarshalJSON encodes the set as an array.
func (s *NameSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// MarshalYAML encodes the set as a sequence.
func (s *NameSet) MarshalYAML() (interface{}, error) {
	return s.Names(), nil
}

var _ yaml.Marshaler = (*NameSet)(nil)

// Classification buckets every name a fragment depends on by provenance.
type Classification struct {
	State            *NameSet `json:"state" yaml:"state"`
	ArgumentProps    *NameSet `json:"argumentProps" yaml:"argumentProps"`
	MemberProps      *NameSet `json:"memberProps" yaml:"memberProps"`
	ComponentMembers *NameSet `json:"componentMembers" yaml:"componentMembers"`
}

// NewClassification returns a classification with four empty sets.
func NewClassification() *Classification {
	return &Classification{
		State:            NewNameSet(),
		ArgumentProps:    NewNameSet(),
		MemberProps:      NewNameSet(),
		ComponentMembers: NewNameSet(),
	}
}

// Set returns the set backing a category.
func (c *Classification) Set(cat Category) *NameSet {
	switch cat {
	case State:
		return c.State
	case ArgumentProps:
		return c.ArgumentProps
	case MemberProps:
		return c.MemberProps
	default:
		return c.ComponentMembers
	}
}

// Empty reports whether no category holds a name.
func (c *Classification) Empty() bool {
	for _, cat := range Categories {
		if c.Set(cat).Len() > 0 {
			return false
		}
	}
	return true
}

// Collisions returns names held by more than one category, each once, in
// call-site order.
func (c *Classification) Collisions() []string {
	seen := make(map[string]Category)
	var dup []string
	reported := make(map[string]bool)
	for _, cat := range Categories {
		for _, name := range c.Set(cat).Names() {
			if first, ok := seen[name]; ok && first != cat {
				if !reported[name] {
					dup = append(dup, name)
					reported[name] = true
				}
				continue
			}
			seen[name] = cat
		}
	}
	return dup
}
