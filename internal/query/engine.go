// Package query provides JQ-based selection of the part of a document that
// types should be inferred from.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/json2ts/pkg/value"
)

// ErrNoMatch is returned when an expression produces no values.
var ErrNoMatch = errors.New("expression produced no values")

// Engine executes JQ selections against value trees.
type Engine struct {
	// MaxResults caps how many outputs a selection may produce. Zero means no cap.
	MaxResults int
}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Select evaluates expression against v.
//
// Path expressions (".data.items", ".[0].user") are resolved against the
// original tree, so object member order is kept. Other expressions are
// evaluated on a plain copy of the tree and their objects come back with
// sorted keys. A single output is returned as is; several outputs are
// collected into an Array.
func (e *Engine) Select(v value.Value, expression string) (value.Value, error) {
	if strings.TrimSpace(expression) == "" || strings.TrimSpace(expression) == "." {
		return v, nil
	}

	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	input := value.ToAny(v)

	if paths, err := e.selectPaths(input, expression); err == nil {
		out, err := resolve(v, paths)
		if err == nil {
			return collect(out)
		}
		slog.Debug("path selection unresolved, evaluating values",
			slog.String("expression", expression),
			slog.Any("error", err),
		)
	}

	outputs, err := e.run(code, input)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, value.FromAny(o))
	}
	return collect(out)
}

// selectPaths runs path(expression) and returns every produced path. Any error
// means the expression is not a plain path expression.
func (e *Engine) selectPaths(input any, expression string) ([][]any, error) {
	code, err := compile("path(" + expression + ")")
	if err != nil {
		return nil, err
	}
	outputs, err := e.run(code, input)
	if err != nil {
		return nil, err
	}

	paths := make([][]any, 0, len(outputs))
	for _, o := range outputs {
		p, ok := o.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected path output %T", o)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// resolve looks every path up in the original tree. An error sends the caller
// back to value evaluation.
func resolve(v value.Value, paths [][]any) ([]value.Value, error) {
	out := make([]value.Value, 0, len(paths))
	for _, p := range paths {
		sel, err := value.Lookup(v, p)
		if err != nil {
			return nil, fmt.Errorf("resolve path %v: %w", p, err)
		}
		out = append(out, sel)
	}
	return out, nil
}

func (e *Engine) run(code *gojq.Code, input any) ([]any, error) {
	var outputs []any
	iter := code.Run(input)
	for {
		if e.MaxResults > 0 && len(outputs) >= e.MaxResults {
			break
		}
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, errors.New(formatJQError("select", err))
		}
		outputs = append(outputs, v)
	}
	return outputs, nil
}

func collect(out []value.Value) (value.Value, error) {
	switch len(out) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return out[0], nil
	default:
		return value.Array(out), nil
	}
}

func compile(expression string) (*gojq.Code, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// formatJQError creates a helpful error message for JQ execution errors.
// It adds contextual hints to help users fix common issues.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so string matching is used for user-facing hints.
func formatJQError(label string, err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return fmt.Sprintf("%s: query halted", label)
		}
		return fmt.Sprintf("%s: query halted with: %v", label, haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return fmt.Sprintf("%s: %s%s", label, errStr, hint)
}

// ValidateExpression checks if a JQ expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := compile(expression)
	return err
}
