package typesystem

import (
	"strings"

	"github.com/funvibe/typerel/internal/config"
)

// FormatFlag controls Format.
type FormatFlag uint8

const (
	// FormatDebug adds declaration identities and parenthesizes array components.
	FormatDebug FormatFlag = 1 << iota
	// FormatBareVariables prints type variables by name only.
	FormatBareVariables
)

// Format renders t. Without flags the result is accepted by the type parser:
// qualified class names, Object bounds omitted, and the bounds of a type
// variable printed at its first occurrence only.
func Format(t Type, flags FormatFlag) string {
	f := &formatter{flags: flags, visited: make(map[TypeVar]bool)}
	f.write(t)
	return f.b.String()
}

// DebugString renders t with declaration identities.
func DebugString(t Type) string { return Format(t, FormatDebug) }

type formatter struct {
	b       strings.Builder
	flags   FormatFlag
	visited map[TypeVar]bool
}

func (f *formatter) write(t Type) {
	switch typ := t.(type) {
	case nil:
		f.b.WriteString("<nil>")
	case *Class:
		f.b.WriteString(typ.name)
	case Primitive:
		f.b.WriteString(typ.String())
	case Parameterized:
		if typ.Owner != nil && f.flags&FormatDebug != 0 {
			f.write(typ.Owner)
			f.b.WriteByte('$')
		}
		f.b.WriteString(typ.Raw.name)
		f.b.WriteByte('<')
		f.list(typ.Args, config.ArgSeparator)
		f.b.WriteByte('>')
	case Wildcard:
		f.b.WriteString(config.WildcardSymbol)
		if len(typ.Lower) > 0 {
			f.b.WriteString(" " + config.SuperKeyword + " ")
			f.list(typ.Lower, config.BoundSeparator)
		}
		if upper := withoutTop(typ.UpperBounds()); len(upper) > 0 {
			f.b.WriteString(" " + config.ExtendsKeyword + " ")
			f.list(upper, config.BoundSeparator)
		}
	case TypeVar:
		f.b.WriteString(typ.name)
		if f.flags&FormatDebug != 0 {
			f.b.WriteByte('@')
			f.b.WriteString(declarationLabel(typ.decl))
		}
		if f.visited[typ] || f.flags&FormatBareVariables != 0 {
			return
		}
		f.visited[typ] = true
		if bounds := withoutTop(typ.Bounds()); len(bounds) > 0 {
			f.b.WriteString(" " + config.ExtendsKeyword + " ")
			f.list(bounds, config.BoundSeparator)
		}
	case Array:
		if f.flags&FormatDebug != 0 {
			f.b.WriteByte('(')
			f.write(typ.Component)
			f.b.WriteByte(')')
		} else {
			f.write(typ.Component)
		}
		f.b.WriteString(config.ArraySuffix)
	}
}

func (f *formatter) list(ts []Type, sep string) {
	for i, t := range ts {
		if i > 0 {
			f.b.WriteString(sep)
		}
		f.write(t)
	}
}

func withoutTop(ts []Type) []Type {
	var out []Type
	for _, t := range ts {
		if t != Type(Top) {
			out = append(out, t)
		}
	}
	return out
}

func declarationLabel(d *Declaration) string {
	if d == nil {
		return "-"
	}
	if config.IsTestMode {
		return d.owner
	}
	return d.owner + "#" + d.id.String()[:8]
}

// TypeNames renders each type with String.
func TypeNames(ts []Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
