package tstype

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Declaration kinds.
const (
	KindRecord = "record"
	KindAlias  = "alias"
)

// fieldIndent prefixes each field line of a record body.
const fieldIndent = "    "

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Declaration is one rendered type declaration.
type Declaration struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // record or alias
	Text string `json:"text"`
}

// EmitOptions controls declaration rendering.
type EmitOptions struct {
	// Export prefixes every declaration with "export ".
	Export bool
	// QuoteKeys quotes field names that are not valid identifiers.
	QuoteKeys bool
}

// Emitter renders registry entries as TypeScript type declarations:
//
//	type Name = {
//	    field: string;
//	    other?: number | string;
//	}
//
// or, for aliases, "type Name = string[]".
type Emitter struct {
	opts EmitOptions
}

// NewEmitter creates an emitter.
func NewEmitter(opts EmitOptions) *Emitter {
	return &Emitter{opts: opts}
}

// RenderAll renders every entry of reg in registration order.
func (e *Emitter) RenderAll(reg *Registry) []Declaration {
	decls := make([]Declaration, 0, reg.Len())
	reg.Each(func(name string, def Definition) {
		decls = append(decls, Declaration{
			Name: name,
			Kind: kindOf(def),
			Text: e.Render(name, def),
		})
	})
	return decls
}

// Render renders a single declaration.
func (e *Emitter) Render(name string, def Definition) string {
	prefix := "type "
	if e.opts.Export {
		prefix = "export type "
	}
	return prefix + name + " = " + body(def, e.opts.QuoteKeys)
}

// WriteAll writes every declaration of reg to w, separated by blank lines.
func (e *Emitter) WriteAll(w io.Writer, reg *Registry) error {
	for i, d := range e.RenderAll(reg) {
		if i > 0 {
			if _, err := io.WriteString(w, "\n\n"); err != nil {
				return fmt.Errorf("write separator before %s: %w", d.Name, err)
			}
		}
		if _, err := io.WriteString(w, d.Text); err != nil {
			return fmt.Errorf("write declaration %s: %w", d.Name, err)
		}
	}
	if reg.Len() > 0 {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write final newline: %w", err)
		}
	}
	return nil
}

// Text renders every declaration of reg as one string.
func (e *Emitter) Text(reg *Registry) string {
	var b strings.Builder
	_ = e.WriteAll(&b, reg)
	return b.String()
}

func kindOf(def Definition) string {
	switch def.(type) {
	case Record:
		return KindRecord
	case Alias:
		return KindAlias
	default:
		panic(fmt.Sprintf("tstype: unknown definition %T", def))
	}
}

// body renders the right-hand side of a declaration.
func body(def Definition, quoteKeys bool) string {
	switch d := def.(type) {
	case nil:
		return ""
	case Alias:
		return d.Expr.String()
	case Record:
		if len(d.Fields) == 0 {
			return "{}"
		}
		var b strings.Builder
		b.WriteString("{\n")
		for _, f := range d.Fields {
			b.WriteString(fieldIndent)
			b.WriteString(fieldName(f.Name, quoteKeys))
			if f.Optional {
				b.WriteString("?")
			}
			b.WriteString(": ")
			b.WriteString(f.Type().String())
			b.WriteString(";\n")
		}
		b.WriteString("}")
		return b.String()
	default:
		panic(fmt.Sprintf("tstype: unknown definition %T", def))
	}
}

func fieldName(name string, quote bool) string {
	if !quote || identifierRegex.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}
