// Package value defines the tree-shaped input model consumed by type inference.
//
// A Value is one of Null, Bool, Number, String, Array or *Object. The set is
// closed: only this package can add variants, and every consumer is expected to
// switch over all of them.
package value

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is a single node of an acyclic JSON-like tree.
type Value interface {
	isValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number. Integer and floating point values are not distinguished.
type Number float64

// String is a JSON string.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Object is a mapping of member names to values that preserves insertion order.
type Object struct {
	members *orderedmap.OrderedMap[string, Value]
}

func (Null) isValue()    {}
func (Bool) isValue()    {}
func (Number) isValue()  {}
func (String) isValue()  {}
func (Array) isValue()   {}
func (*Object) isValue() {}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// NewObject creates an object from members in order.
// A repeated key keeps its first position and takes the last value.
func NewObject(members ...Member) *Object {
	o := &Object{members: orderedmap.New[string, Value]()}
	for _, m := range members {
		o.Set(m.Key, m.Value)
	}
	return o
}

// Set adds or replaces a member. Replacing keeps the member's original position.
func (o *Object) Set(key string, v Value) {
	if o.members == nil {
		o.members = orderedmap.New[string, Value]()
	}
	if v == nil {
		v = Null{}
	}
	o.members.Set(key, v)
}

// Get returns the member value for key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.members == nil {
		return nil, false
	}
	return o.members.Get(key)
}

// Has reports whether key is a member.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil || o.members == nil {
		return 0
	}
	return o.members.Len()
}

// Keys returns member names in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	o.Each(func(key string, _ Value) {
		keys = append(keys, key)
	})
	return keys
}

// Members returns all members in insertion order.
func (o *Object) Members() []Member {
	out := make([]Member, 0, o.Len())
	o.Each(func(key string, v Value) {
		out = append(out, Member{Key: key, Value: v})
	})
	return out
}

// Each calls fn for every member in insertion order.
func (o *Object) Each(fn func(key string, v Value)) {
	if o == nil || o.members == nil {
		return
	}
	for pair := o.members.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Kind returns a short lowercase name of the variant, for diagnostics.
func Kind(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case *Object:
		return "object"
	default:
		return fmt.Sprintf("unknown(%T)", v)
	}
}

// IsObject reports whether v is an object.
func IsObject(v Value) bool {
	_, ok := v.(*Object)
	return ok
}

// Lookup navigates v by a path of object keys (string), array indexes (int)
// and slices ({"start": n, "end": m}, either bound may be absent or null).
// Stepping into null or a missing member yields Null.
func Lookup(v Value, path []any) (Value, error) {
	cur := v
	for i, step := range path {
		if _, isNull := cur.(Null); isNull || cur == nil {
			return Null{}, nil
		}
		switch s := step.(type) {
		case string:
			obj, ok := cur.(*Object)
			if !ok {
				return nil, fmt.Errorf("path step %d: cannot index %s with key %q", i, Kind(cur), s)
			}
			next, ok := obj.Get(s)
			if !ok {
				return Null{}, nil
			}
			cur = next
		case int:
			arr, ok := cur.(Array)
			if !ok {
				return nil, fmt.Errorf("path step %d: cannot index %s with %d", i, Kind(cur), s)
			}
			if s < 0 {
				s += len(arr)
			}
			if s < 0 || s >= len(arr) {
				return Null{}, nil
			}
			cur = arr[s]
		case float64:
			return Lookup(cur, append([]any{int(s)}, path[i+1:]...))
		case map[string]any:
			next, err := slice(cur, s)
			if err != nil {
				return nil, fmt.Errorf("path step %d: %w", i, err)
			}
			cur = next
		default:
			return nil, fmt.Errorf("path step %d: unsupported step type %T", i, step)
		}
	}
	return cur, nil
}

// slice applies a {"start", "end"} step to an array or a string. Bounds count
// from the end when negative and are clamped to the length.
func slice(cur Value, step map[string]any) (Value, error) {
	var n int
	switch c := cur.(type) {
	case Array:
		n = len(c)
	case String:
		n = utf8.RuneCountInString(string(c))
	default:
		return nil, fmt.Errorf("cannot slice %s", Kind(cur))
	}

	start, err := sliceBound(step["start"], 0, n, math.Floor)
	if err != nil {
		return nil, fmt.Errorf("slice start: %w", err)
	}
	end, err := sliceBound(step["end"], n, n, math.Ceil)
	if err != nil {
		return nil, fmt.Errorf("slice end: %w", err)
	}
	if end < start {
		end = start
	}

	if arr, ok := cur.(Array); ok {
		return arr[start:end], nil
	}
	runes := []rune(string(cur.(String)))
	return String(runes[start:end]), nil
}

func sliceBound(raw any, def, n int, round func(float64) float64) (int, error) {
	var b int
	switch x := raw.(type) {
	case nil:
		return def, nil
	case int:
		b = x
	case float64:
		b = int(round(x))
	default:
		return 0, fmt.Errorf("unsupported bound type %T", raw)
	}
	if b < 0 {
		b += n
	}
	return min(max(b, 0), n), nil
}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
