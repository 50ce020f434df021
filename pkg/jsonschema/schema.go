// Package jsonschema renders inferred type definitions as a JSON Schema
// (Draft 2020-12) document. Every synthesized type becomes an entry under
// $defs and references between types become $ref pointers.
package jsonschema

import (
	"github.com/invopop/jsonschema"

	"github.com/usestring/json2ts/pkg/tstype"
)

// DefsPrefix is the JSON pointer prefix of every $ref produced.
const DefsPrefix = "#/$defs/"

// Options controls schema rendering.
type Options struct {
	// AdditionalProperties sets additionalProperties on every object schema.
	// Default: nil (not set)
	AdditionalProperties *bool
	// NullableAsType adds {"type": "null"} to the alternatives of fields that
	// were null in at least one sample. Default: true
	NullableAsType bool
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() *Options {
	return &Options{NullableAsType: true}
}

// FromRegistry builds a schema document whose $defs hold every registry entry
// and whose top level refers to rootName.
func FromRegistry(reg *tstype.Registry, rootName string, opts *Options) *jsonschema.Schema {
	if opts == nil {
		opts = DefaultOptions()
	}

	doc := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Ref:         DefsPrefix + rootName,
		Definitions: make(jsonschema.Definitions, reg.Len()),
	}

	reg.Each(func(name string, def tstype.Definition) {
		s := definitionSchema(def, opts)
		s.Title = name
		doc.Definitions[name] = s
	})

	if opts.AdditionalProperties != nil {
		for _, s := range doc.Definitions {
			applyAdditionalProperties(s, *opts.AdditionalProperties)
		}
	}
	return doc
}

// ExprSchema converts a single type expression.
func ExprSchema(e tstype.Expr) *jsonschema.Schema {
	switch x := e.(type) {
	case tstype.Primitive:
		if x == tstype.Any {
			return &jsonschema.Schema{}
		}
		return &jsonschema.Schema{Type: string(x)}
	case tstype.Ref:
		return &jsonschema.Schema{Ref: DefsPrefix + string(x)}
	case tstype.ArrayOf:
		s := &jsonschema.Schema{Type: "array"}
		if x.Elem != nil && !tstype.Equal(x.Elem, tstype.Any) {
			s.Items = ExprSchema(x.Elem)
		}
		return s
	case tstype.Union:
		anyOf := make([]*jsonschema.Schema, 0, len(x))
		for _, m := range x {
			anyOf = append(anyOf, ExprSchema(m))
		}
		return &jsonschema.Schema{AnyOf: anyOf}
	default:
		return &jsonschema.Schema{}
	}
}

func definitionSchema(def tstype.Definition, opts *Options) *jsonschema.Schema {
	switch d := def.(type) {
	case tstype.Alias:
		return ExprSchema(d.Expr)
	case tstype.Record:
		s := &jsonschema.Schema{
			Type:       "object",
			Properties: jsonschema.NewProperties(),
		}
		required := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			s.Properties.Set(f.Name, fieldSchema(f, opts))
			if !f.Optional {
				required = append(required, f.Name)
			}
		}
		if len(required) > 0 {
			s.Required = required
		}
		return s
	default:
		return &jsonschema.Schema{}
	}
}

func fieldSchema(f tstype.FieldEntry, opts *Options) *jsonschema.Schema {
	s := ExprSchema(f.Type())
	if !opts.NullableAsType || !f.Nullable || len(f.Types) == 0 {
		return s
	}

	null := &jsonschema.Schema{Type: "null"}
	if len(s.AnyOf) > 0 {
		s.AnyOf = append(s.AnyOf, null)
		return s
	}
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, null}}
}

// applyAdditionalProperties recursively sets additionalProperties on all object schemas.
func applyAdditionalProperties(schema *jsonschema.Schema, allowed bool) {
	if schema == nil {
		return
	}

	if schema.Type == "object" {
		if allowed {
			schema.AdditionalProperties = jsonschema.TrueSchema
		} else {
			schema.AdditionalProperties = jsonschema.FalseSchema
		}

		if schema.Properties != nil {
			for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
				applyAdditionalProperties(pair.Value, allowed)
			}
		}
	}

	if schema.Type == "array" && schema.Items != nil {
		applyAdditionalProperties(schema.Items, allowed)
	}

	for _, s := range schema.AnyOf {
		applyAdditionalProperties(s, allowed)
	}
}
