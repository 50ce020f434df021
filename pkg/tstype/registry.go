package tstype

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Definition is the body of a named type: a Record or an Alias.
type Definition interface {
	isDefinition()
}

// FieldEntry is one field of a record.
type FieldEntry struct {
	Name string
	// Types holds the distinct non-null types observed, in first-seen order.
	Types []Expr
	// Optional is set when the field was missing from, or null in, at least one sample.
	Optional bool
	// Nullable is set when the field was null in at least one sample. TypeScript
	// output folds this into Optional; schema output keeps it apart.
	Nullable bool
}

// Type returns the field's declared type: the union of Types, or Any when no
// non-null value was ever observed.
func (f FieldEntry) Type() Expr {
	return NewUnion(f.Types...)
}

// Record is an object-shaped definition with fields in first-seen order.
type Record struct {
	Fields []FieldEntry
}

// Alias is a definition whose shape is a single expression, used when the
// sampled value was not an object.
type Alias struct {
	Expr Expr
}

func (Record) isDefinition() {}
func (Alias) isDefinition()  {}

// Field returns the field with the given name.
func (r Record) Field(name string) (FieldEntry, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldEntry{}, false
}

// Collision records a synthesized name that was registered twice with
// different bodies. The later definition replaced the earlier one.
type Collision struct {
	Name string `json:"name"`
	// Paths are the dotted locations of the replaced and replacing values.
	Paths []string `json:"paths"`
}

type registryEntry struct {
	def    Definition
	origin string
}

// Registry maps synthesized type names to their definitions. Iteration
// follows first-registration order; replacing a definition keeps its slot.
// A Registry is owned by one traversal and is not safe for concurrent use.
type Registry struct {
	entries    *orderedmap.OrderedMap[string, registryEntry]
	collisions []Collision
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.New[string, registryEntry]()}
}

// Put stores def under name, replacing any previous definition entirely.
// It reports whether a previous definition existed.
func (r *Registry) Put(name string, def Definition) bool {
	return r.put(name, "", def)
}

func (r *Registry) put(name, origin string, def Definition) bool {
	prev, replaced := r.entries.Set(name, registryEntry{def: def, origin: origin})
	if replaced && body(prev.def, false) != body(def, false) {
		r.collisions = append(r.collisions, Collision{
			Name:  name,
			Paths: []string{prev.origin, origin},
		})
	}
	return replaced
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (Definition, bool) {
	e, ok := r.entries.Get(name)
	if !ok {
		return nil, false
	}
	return e.def, true
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	return r.entries.Len()
}

// Names returns the registered names in first-registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Each calls fn for every entry in first-registration order.
func (r *Registry) Each(fn func(name string, def Definition)) {
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value.def)
	}
}

// Collisions returns every name whose definition was replaced by a different one.
func (r *Registry) Collisions() []Collision {
	out := make([]Collision, len(r.collisions))
	copy(out, r.collisions)
	return out
}
