// Package caps contains a minimal model of media capability structures,
// the negotiation currency exchanged with a downstream consumer. A Caps is
// an ordered sequence of alternative structures; each structure carries
// named fields whose values are either a single string or an ordered list
// of acceptable alternatives.
package caps

import (
	"fmt"
	"sort"
	"strings"
)

// Value is the value of a Structure field.
type Value interface {
	// Strings returns the value flattened into an ordered string sequence.
	Strings() []string

	isValue()
}

// Single is a field value holding one string.
type Single string

// Strings implements Value.
func (v Single) Strings() []string {
	return []string{string(v)}
}

func (Single) isValue() {}

// List is a field value holding an ordered list of alternative strings.
type List []string

// Strings implements Value.
func (v List) Strings() []string {
	return v
}

func (List) isValue() {}

// Structure is a named set of fields.
type Structure struct {
	Name string

	fields map[string]Value
}

// NewStructure allocates a Structure.
func NewStructure(name string) *Structure {
	return &Structure{
		Name:   name,
		fields: make(map[string]Value),
	}
}

// Set sets the value of a field.
func (s *Structure) Set(name string, v Value) {
	if s.fields == nil {
		s.fields = make(map[string]Value)
	}
	s.fields[name] = v
}

// Get returns the value of a field.
func (s *Structure) Get(name string) (Value, bool) {
	v, ok := s.fields[name]
	return v, ok
}

// GetString returns the value of a field, but only when it holds a single
// string.
func (s *Structure) GetString(name string) (string, bool) {
	v, ok := s.fields[name]
	if !ok {
		return "", false
	}
	single, ok := v.(Single)
	if !ok {
		return "", false
	}
	return string(single), true
}

// String implements fmt.Stringer. Fields are printed in name order.
func (s *Structure) String() string {
	names := make([]string, 0, len(s.fields))
	for name := range s.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(s.Name)

	for _, name := range names {
		v := s.fields[name]
		if _, ok := v.(Single); ok {
			fmt.Fprintf(&b, ", %s=%s", name, v.Strings()[0])
		} else {
			fmt.Fprintf(&b, ", %s={ %s }", name, strings.Join(v.Strings(), ", "))
		}
	}

	return b.String()
}

// Caps is an ordered sequence of alternative Structures.
type Caps []*Structure

// String implements fmt.Stringer.
func (c Caps) String() string {
	elems := make([]string, len(c))
	for i, s := range c {
		elems[i] = s.String()
	}
	return strings.Join(elems, "; ")
}

// FirstString returns the value of the named field in the first structure
// in which it holds a single string.
func (c Caps) FirstString(name string) (string, bool) {
	for _, s := range c {
		if v, ok := s.GetString(name); ok {
			return v, true
		}
	}
	return "", false
}
