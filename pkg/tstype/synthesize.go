package tstype

import (
	"fmt"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/usestring/json2ts/pkg/value"
)

// fieldState accumulates what the samples say about one field.
type fieldState struct {
	types    *exprSet
	optional bool
	nullable bool
}

// synthesize registers name -> definition built from samples. fieldKey is the
// key the samples were found under ("" for the root).
//
// A lone non-object sample becomes an Alias of its classification. Object
// samples are merged into a Record; a single object is simply a merge of one.
func (c *classifier) synthesize(name, fieldKey string, samples []value.Value) {
	if len(samples) == 0 {
		panic(fmt.Sprintf("tstype: synthesize %q called without samples", name))
	}

	var def Definition
	if _, isObject := samples[0].(*value.Object); len(samples) == 1 && !isObject {
		key := fieldKey
		if key == "" {
			key = name
		}
		def = Alias{Expr: c.classify(key, samples[0])}
	} else {
		leave := c.enter(fieldKey)
		def = Record{Fields: c.mergeFields(name, samples)}
		leave()
	}

	before := len(c.reg.collisions)
	c.reg.put(name, c.origin(fieldKey), def)
	if len(c.reg.collisions) > before {
		col := c.reg.collisions[len(c.reg.collisions)-1]
		slog.Warn("synthesized type name collision, earlier definition replaced",
			slog.String("name", name),
			slog.Any("paths", col.Paths),
		)
	}

	slog.Debug("synthesized type",
		slog.String("name", name),
		slog.Int("samples", len(samples)),
	)
}

// mergeFields builds the field table for a set of object samples, processed in
// order. Fields appear in the order they were first seen.
//
//   - a field absent from any sample is optional;
//   - a null value marks the field optional and adds nothing to its types;
//   - every other value adds its type to the field's set if not already present.
func (c *classifier) mergeFields(name string, samples []value.Value) []FieldEntry {
	table := orderedmap.New[string, *fieldState]()

	for i, sample := range samples {
		obj, ok := sample.(*value.Object)
		if !ok {
			panic(fmt.Sprintf("tstype: synthesize %q: sample %d is %s, want object", name, i, value.Kind(sample)))
		}

		if i > 0 {
			for pair := table.Oldest(); pair != nil; pair = pair.Next() {
				if !obj.Has(pair.Key) {
					pair.Value.optional = true
				}
			}
		}

		obj.Each(func(key string, v value.Value) {
			t := c.classify(key, v)

			st, known := table.Get(key)
			if !known {
				// A field first seen after sample 0 was absent from sample 0.
				st = &fieldState{types: newExprSet(), optional: i > 0}
				table.Set(key, st)
			}

			if Equal(t, Any) {
				st.optional = true
				st.nullable = true
				return
			}
			st.types.add(t)
		})
	}

	fields := make([]FieldEntry, 0, table.Len())
	for pair := table.Oldest(); pair != nil; pair = pair.Next() {
		fields = append(fields, FieldEntry{
			Name:     pair.Key,
			Types:    pair.Value.types.members(),
			Optional: pair.Value.optional,
			Nullable: pair.Value.nullable,
		})
	}
	return fields
}
