// Package tstype infers TypeScript type declarations from sample values.
//
// A run classifies every value of the input tree into an Expr. Nested objects
// (and objects found inside arrays) are synthesized into named record types
// and stored in a Registry, which an Emitter renders once the traversal is done.
//
// When several objects describe the same type (the object elements of one
// array), their fields are merged: a field missing from any sample, or null in
// any sample, is optional; the distinct non-null types a field takes form a
// union. Null never participates in a union. A field that is null in every
// sample is typed any.
package tstype

import (
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Expr is a type expression. The variants are Primitive, Ref, ArrayOf and Union.
type Expr interface {
	isExpr()
	// String renders the expression in TypeScript syntax.
	String() string
}

// Primitive is one of the built-in scalar types.
type Primitive string

// Primitive types.
const (
	String  Primitive = "string"
	Number  Primitive = "number"
	Boolean Primitive = "boolean"
	Any     Primitive = "any"
)

// Ref names a synthesized type held by a Registry.
type Ref string

// ArrayOf is an array whose elements have type Elem.
type ArrayOf struct {
	Elem Expr
}

// Union is a canonical set of two or more alternatives, sorted by their
// rendering and free of duplicates. Build unions with NewUnion.
type Union []Expr

func (Primitive) isExpr() {}
func (Ref) isExpr()       {}
func (ArrayOf) isExpr()   {}
func (Union) isExpr()     {}

func (p Primitive) String() string { return string(p) }

func (r Ref) String() string { return string(r) }

func (a ArrayOf) String() string {
	if a.Elem == nil {
		return "any[]"
	}
	if _, ok := a.Elem.(Union); ok {
		return "(" + a.Elem.String() + ")[]"
	}
	return a.Elem.String() + "[]"
}

func (u Union) String() string {
	parts := make([]string, len(u))
	for i, m := range u {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

// NewUnion builds the canonical expression for a set of alternatives.
// Nested unions are flattened, duplicates removed and members sorted.
// An empty set yields Any and a single member is returned unwrapped.
func NewUnion(members ...Expr) Expr {
	set := newExprSet()
	for _, m := range members {
		set.add(m)
	}
	return set.expr()
}

// Equal reports whether two expressions denote the same type.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// exprSet is an insertion-ordered set of expressions keyed by rendering.
type exprSet struct {
	items *orderedmap.OrderedMap[string, Expr]
}

func newExprSet() *exprSet {
	return &exprSet{items: orderedmap.New[string, Expr]()}
}

// add inserts e, flattening unions. It reports whether anything was added.
func (s *exprSet) add(e Expr) bool {
	if e == nil {
		return false
	}
	if u, ok := e.(Union); ok {
		added := false
		for _, m := range u {
			if s.add(m) {
				added = true
			}
		}
		return added
	}
	key := e.String()
	if _, present := s.items.Get(key); present {
		return false
	}
	s.items.Set(key, e)
	return true
}

func (s *exprSet) len() int { return s.items.Len() }

// members returns the set in insertion order.
func (s *exprSet) members() []Expr {
	out := make([]Expr, 0, s.items.Len())
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// expr returns the canonical expression for the set.
func (s *exprSet) expr() Expr {
	members := s.members()
	switch len(members) {
	case 0:
		return Any
	case 1:
		return members[0]
	}
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].String() < members[j].String()
	})
	return Union(members)
}
