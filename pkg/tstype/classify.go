package tstype

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/usestring/json2ts/pkg/value"
)

// DefaultRootName names the type synthesized for the whole input.
const DefaultRootName = "Root"

// Options controls a Generate run.
type Options struct {
	// RootName names the top-level type. Default: DefaultRootName.
	RootName string
	// Naming selects the name derivation for nested types. Default: NamingFlat.
	Naming Naming
}

// Generate infers type definitions for root and returns the populated registry.
// The root is synthesized under opts.RootName as a single sample.
func Generate(root value.Value, opts Options) *Registry {
	if opts.RootName == "" {
		opts.RootName = DefaultRootName
	}
	reg := NewRegistry()
	c := newClassifier(reg, opts.Naming)
	c.claimed[opts.RootName] = "$"
	c.synthesize(opts.RootName, "", []value.Value{root})

	slog.Debug("type inference finished",
		slog.String("root", opts.RootName),
		slog.String("naming", opts.Naming.String()),
		slog.Int("types", reg.Len()),
		slog.Int("collisions", len(reg.collisions)),
	)
	return reg
}

// Classify returns the type expression for v found under fieldKey, registering
// any synthesized record types in reg. Names are derived with NamingFlat.
func Classify(fieldKey string, v value.Value, reg *Registry) Expr {
	return newClassifier(reg, NamingFlat).classify(fieldKey, v)
}

// Synthesize registers a definition for name built from samples. A single
// sample may be any value; several samples must all be objects and are merged.
func Synthesize(name string, samples []value.Value, reg *Registry) {
	newClassifier(reg, NamingFlat).synthesize(name, "", samples)
}

// classifier carries the state of one traversal: the registry being written and
// the chain of field keys from the root to the value being classified.
type classifier struct {
	reg    *Registry
	naming Naming
	path   []string
	// claimed maps each name handed out under NamingPath to its origin.
	claimed map[string]string
}

func newClassifier(reg *Registry, naming Naming) *classifier {
	return &classifier{reg: reg, naming: naming, claimed: make(map[string]string)}
}

func (c *classifier) classify(fieldKey string, v value.Value) Expr {
	switch val := v.(type) {
	case nil, value.Null:
		return Any
	case value.Bool:
		return Boolean
	case value.Number:
		return Number
	case value.String:
		return String
	case value.Array:
		return c.classifyArray(fieldKey, val)
	case *value.Object:
		name := c.nameFor(fieldKey)
		c.synthesize(name, fieldKey, []value.Value{val})
		return Ref(name)
	default:
		panic(fmt.Sprintf("tstype: unhandled value variant %T", v))
	}
}

// classifyArray classifies non-object elements one by one and merges all
// object elements into a single record type.
func (c *classifier) classifyArray(fieldKey string, arr value.Array) Expr {
	if len(arr) == 0 {
		return ArrayOf{Elem: Any}
	}

	set := newExprSet()
	var objects []value.Value
	for _, item := range arr {
		if value.IsObject(item) {
			objects = append(objects, item)
			continue
		}
		set.add(c.classify(fieldKey, item))
	}

	if len(objects) > 0 {
		name := c.nameFor(fieldKey)
		c.synthesize(name, fieldKey, objects)
		set.add(Ref(name))
	}

	return ArrayOf{Elem: set.expr()}
}

// nameFor picks the type name for an object found under fieldKey. Under
// NamingPath every origin keeps one name of its own: when the derived name
// already belongs to another origin, a number is inserted before the suffix.
func (c *classifier) nameFor(fieldKey string) string {
	if c.naming != NamingPath {
		return DeriveName(fieldKey)
	}

	base := derivePathName(c.path, fieldKey)
	origin := c.origin(fieldKey)
	name := base
	for n := 2; ; n++ {
		owner, taken := c.claimed[name]
		if !taken || owner == origin {
			break
		}
		name = numberedName(base, n)
	}
	c.claimed[name] = origin
	return name
}

// origin renders the location of the value currently being synthesized.
func (c *classifier) origin(fieldKey string) string {
	if fieldKey == "" {
		return "$"
	}
	return "$." + strings.Join(append(append([]string(nil), c.path...), fieldKey), ".")
}

// enter pushes fieldKey onto the path for the duration of a nested traversal.
func (c *classifier) enter(fieldKey string) func() {
	if fieldKey == "" {
		return func() {}
	}
	c.path = append(c.path, fieldKey)
	return func() { c.path = c.path[:len(c.path)-1] }
}
