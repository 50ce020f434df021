package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sort"
	"strconv"

	"github.com/buger/jsonparser"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when input bytes are not a well-formed document.
var ErrMalformed = errors.New("malformed input")

// ParseJSON decodes a JSON document into a Value tree, keeping object members
// in source order.
func ParseJSON(data []byte) (Value, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	body, dt, _, err := jsonparser.Get(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return decodeJSON(body, dt)
}

func decodeJSON(data []byte, dt jsonparser.ValueType) (Value, error) {
	switch dt {
	case jsonparser.Null:
		return Null{}, nil

	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return nil, fmt.Errorf("%w: boolean %q: %v", ErrMalformed, data, err)
		}
		return Bool(b), nil

	case jsonparser.Number:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: number %q: %v", ErrMalformed, data, err)
		}
		return Number(f), nil

	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return nil, fmt.Errorf("%w: string: %v", ErrMalformed, err)
		}
		return String(s), nil

	case jsonparser.Array:
		arr := make(Array, 0)
		var firstErr error
		_, err := jsonparser.ArrayEach(data, func(elem []byte, elemType jsonparser.ValueType, _ int, err error) {
			if firstErr != nil {
				return
			}
			if err != nil {
				firstErr = err
				return
			}
			v, err := decodeJSON(elem, elemType)
			if err != nil {
				firstErr = err
				return
			}
			arr = append(arr, v)
		})
		if err == nil {
			err = firstErr
		}
		if err != nil {
			return nil, fmt.Errorf("%w: array: %v", ErrMalformed, err)
		}
		return arr, nil

	case jsonparser.Object:
		obj := NewObject()
		err := jsonparser.ObjectEach(data, func(key, member []byte, memberType jsonparser.ValueType, _ int) error {
			// ObjectEach hands over keys already unescaped.
			v, err := decodeJSON(member, memberType)
			if err != nil {
				return err
			}
			obj.Set(string(key), v)
			return nil
		})
		if err != nil {
			if errors.Is(err, ErrMalformed) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: object: %v", ErrMalformed, err)
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("%w: unexpected token %q", ErrMalformed, data)
	}
}

// ParseYAML decodes YAML into a Value tree, keeping mapping order.
// An empty document decodes to Null; a stream of several documents decodes to
// an Array with one element per document.
func ParseYAML(data []byte) (Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []Value
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		v, err := decodeYAML(&node)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}

	switch len(docs) {
	case 0:
		return Null{}, nil
	case 1:
		return docs[0], nil
	default:
		return Array(docs), nil
	}
}

func decodeYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null{}, nil
		}
		return decodeYAML(node.Content[0])

	case yaml.AliasNode:
		if node.Alias == nil {
			return Null{}, nil
		}
		return decodeYAML(node.Alias)

	case yaml.SequenceNode:
		arr := make(Array, 0, len(node.Content))
		for _, child := range node.Content {
			v, err := decodeYAML(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil

	case yaml.MappingNode:
		obj := NewObject()
		if err := mergeYAMLMapping(obj, node); err != nil {
			return nil, err
		}
		return obj, nil

	case yaml.ScalarNode:
		return decodeYAMLScalar(node)

	default:
		return nil, fmt.Errorf("%w: unsupported YAML node kind %d at line %d", ErrMalformed, node.Kind, node.Line)
	}
}

func mergeYAMLMapping(obj *Object, node *yaml.Node) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		if keyNode.ShortTag() == "!!merge" {
			if err := applyYAMLMerge(obj, valNode); err != nil {
				return err
			}
			continue
		}

		v, err := decodeYAML(valNode)
		if err != nil {
			return err
		}
		obj.Set(keyNode.Value, v)
	}
	return nil
}

// applyYAMLMerge handles "<<" keys. Merged members never override explicit ones.
func applyYAMLMerge(obj *Object, node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	switch node.Kind {
	case yaml.MappingNode:
		merged := NewObject()
		if err := mergeYAMLMapping(merged, node); err != nil {
			return err
		}
		merged.Each(func(key string, v Value) {
			if !obj.Has(key) {
				obj.Set(key, v)
			}
		})
		return nil
	case yaml.SequenceNode:
		for _, child := range node.Content {
			if err := applyYAMLMerge(obj, child); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: merge value at line %d is not a mapping", ErrMalformed, node.Line)
	}
}

func decodeYAMLScalar(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, node.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, node.Line, err)
		}
		return Number(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags are kept as text.
		return String(node.Value), nil
	}
}

// FromAny converts a generic Go value (as produced by encoding/json or gojq)
// into a Value. Map keys are sorted, since Go maps carry no order.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case float32:
		return Number(val)
	case int:
		return Number(val)
	case int64:
		return Number(val)
	case int32:
		return Number(val)
	case uint64:
		return Number(val)
	case json.Number:
		f, _ := val.Float64()
		return Number(f)
	case *big.Int:
		f, _ := new(big.Float).SetInt(val).Float64()
		return Number(f)
	case string:
		return String(val)
	case []any:
		arr := make(Array, 0, len(val))
		for _, item := range val {
			arr = append(arr, FromAny(item))
		}
		return arr
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(val[k]))
		}
		return obj
	default:
		return String(fmt.Sprint(val))
	}
}

// ToAny converts a Value into plain Go values: nil, bool, float64, string,
// []any and map[string]any.
func ToAny(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Number:
		return float64(val)
	case String:
		return string(val)
	case Array:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, ToAny(item))
		}
		return out
	case *Object:
		out := make(map[string]any, val.Len())
		val.Each(func(key string, member Value) {
			out[key] = ToAny(member)
		})
		return out
	default:
		panic(fmt.Sprintf("value: unknown variant %T", v))
	}
}
