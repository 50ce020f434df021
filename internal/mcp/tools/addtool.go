package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T does not satisfy the
// output schema the SDK infers for T.
//
// A generation that finds no collisions leaves GenerateOutput.Collisions nil.
// Without omitzero the field marshals as null while the inferred schema says
// array, and the SDK rejects the structured result. The panic names every
// slice or map field of T that carries neither omitzero nor omitempty.
//
// The untyped any output is not checked. Inference errors are left to the SDK.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return
	}

	if err := resolved.Validate(&doc); err != nil {
		panic(fmt.Sprintf(
			"tool %q: empty %s result fails its output schema: %v\n"+
				"  JSON: %s\n"+
				"  Fix: tag %s with omitzero",
			toolName, rt.Name(), err, data, strings.Join(nullableFields(rt), ", "),
		))
	}
}

// nullableFields lists the exported slice and map fields of struct type t whose
// nil value is marshaled as null.
func nullableFields(t reflect.Type) []string {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if k := f.Type.Kind(); k != reflect.Slice && k != reflect.Map {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		tagOpts := strings.Split(opts, ",")
		if slices.Contains(tagOpts, "omitzero") || slices.Contains(tagOpts, "omitempty") {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}
