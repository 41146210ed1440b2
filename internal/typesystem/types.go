package typesystem

import (
	"strings"

	"github.com/funvibe/typerel/internal/config"
)

// Type is the interface for all types in the system.
// The set of implementations is closed: *Class, Parameterized, Wildcard,
// TypeVar, Array and Primitive.
type Type interface {
	String() string
	// Hash returns the canonical key of the type. Two types are equal
	// exactly when their keys are equal.
	Hash() string
	Apply(Subst) Type
	FreeTypeVariables() []TypeVar
	isType()
}

// Equal reports whether a and b denote the same type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Hash() == b.Hash()
}

// ClassKind distinguishes classes from interfaces.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
)

func (k ClassKind) String() string {
	if k == KindInterface {
		return config.IfaceKindName
	}
	return config.ClassKindName
}

// ParseClassKind parses "class" or "interface". An empty string is a class.
func ParseClassKind(s string) (ClassKind, error) {
	switch s {
	case "", config.ClassKindName:
		return KindClass, nil
	case config.IfaceKindName:
		return KindInterface, nil
	}
	return KindClass, malformedf("unknown class kind %q", s)
}

// Class is a named (nominal) class or interface. A class is built with
// NewClass, given its header and then sealed; a sealed class is immutable.
type Class struct {
	name       string
	kind       ClassKind
	decl       *Declaration
	super      Type   // nil for Object and for interfaces
	interfaces []Type // directly implemented (or, for interfaces, extended) interfaces
	sealed     bool
}

func (c *Class) isType() {}

func (c *Class) String() string { return c.name }

func (c *Class) Hash() string { return c.name }

func (c *Class) Apply(Subst) Type { return c }

func (c *Class) FreeTypeVariables() []TypeVar { return nil }

// Name returns the fully qualified name.
func (c *Class) Name() string { return c.name }

// SimpleName returns the last segment of the qualified name.
func (c *Class) SimpleName() string {
	if i := strings.LastIndex(c.name, config.PackageSep); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

func (c *Class) Kind() ClassKind { return c.kind }

func (c *Class) IsInterface() bool { return c.kind == KindInterface }

// Arity is the number of declared type parameters.
func (c *Class) Arity() int { return c.decl.Len() }

// Params returns the formal type parameters in declaration order.
func (c *Class) Params() []TypeVar { return c.decl.Vars() }

func (c *Class) Declaration() *Declaration { return c.decl }

// Superclass returns the generic superclass, or nil for Object and interfaces.
func (c *Class) Superclass() Type { return c.super }

// Interfaces returns the generic interfaces in declaration order.
func (c *Class) Interfaces() []Type {
	out := make([]Type, len(c.interfaces))
	copy(out, c.interfaces)
	return out
}

// RawSuperclass returns the erased superclass, or nil.
func (c *Class) RawSuperclass() *Class {
	if c.super == nil {
		return nil
	}
	return RawClass(c.super)
}

// RawInterfaces returns the erased interfaces.
func (c *Class) RawInterfaces() []*Class {
	out := make([]*Class, 0, len(c.interfaces))
	for _, i := range c.interfaces {
		out = append(out, RawClass(i))
	}
	return out
}

// declaredSupertypes returns the generic superclass followed by the generic
// interfaces, as written in the class header.
func (c *Class) declaredSupertypes() []Type {
	out := make([]Type, 0, len(c.interfaces)+1)
	if c.super != nil {
		out = append(out, c.super)
	}
	return append(out, c.interfaces...)
}

func (c *Class) Sealed() bool { return c.sealed }

// Parameterized is a generic class applied to type arguments, e.g. List<String>.
type Parameterized struct {
	Raw   *Class
	Owner Type // enclosing type, may be nil
	Args  []Type
}

func (p Parameterized) isType() {}

func (p Parameterized) String() string { return Format(p, 0) }

func (p Parameterized) Hash() string {
	var b strings.Builder
	if p.Owner != nil {
		b.WriteString(p.Owner.Hash())
		b.WriteByte('$')
	}
	b.WriteString(p.Raw.Hash())
	b.WriteByte('<')
	for i, a := range p.Args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Hash())
	}
	b.WriteByte('>')
	return b.String()
}

func (p Parameterized) Apply(s Subst) Type {
	return ApplyWithCycleCheck(p, s, make(map[TypeVar]bool))
}

func (p Parameterized) FreeTypeVariables() []TypeVar {
	var vars []TypeVar
	if p.Owner != nil {
		vars = append(vars, p.Owner.FreeTypeVariables()...)
	}
	for _, a := range p.Args {
		vars = append(vars, a.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// Wildcard is a use-site variance marker: ? extends U1 & U2, ? super L.
// An empty Upper is read as {Object}.
type Wildcard struct {
	Lower []Type
	Upper []Type
}

func (w Wildcard) isType() {}

func (w Wildcard) String() string { return Format(w, 0) }

func (w Wildcard) Hash() string {
	var b strings.Builder
	b.WriteString("?extends(")
	for i, u := range w.UpperBounds() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(u.Hash())
	}
	b.WriteString(")super(")
	for i, l := range w.Lower {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Hash())
	}
	b.WriteByte(')')
	return b.String()
}

func (w Wildcard) Apply(s Subst) Type {
	return ApplyWithCycleCheck(w, s, make(map[TypeVar]bool))
}

func (w Wildcard) FreeTypeVariables() []TypeVar {
	var vars []TypeVar
	for _, t := range w.Lower {
		vars = append(vars, t.FreeTypeVariables()...)
	}
	for _, t := range w.Upper {
		vars = append(vars, t.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// UpperBounds returns the upper bounds, {Object} when none were given.
func (w Wildcard) UpperBounds() []Type {
	if len(w.Upper) == 0 {
		return []Type{Top}
	}
	return w.Upper
}

// LowerBounds returns the lower bounds (possibly empty).
func (w Wildcard) LowerBounds() []Type { return w.Lower }

// TypeVar is a handle to a type variable: the declaration it belongs to
// plus its name. Bounds live in the declaration, so a variable may occur in
// its own bounds (E extends Comparable<E>). TypeVar values are comparable.
type TypeVar struct {
	decl *Declaration
	name string
}

func (v TypeVar) isType() {}

func (v TypeVar) String() string { return Format(v, 0) }

func (v TypeVar) Hash() string {
	if v.decl == nil {
		return v.name + "@"
	}
	return v.name + "@" + v.decl.id.String()
}

func (v TypeVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(v, s, make(map[TypeVar]bool))
}

func (v TypeVar) FreeTypeVariables() []TypeVar { return []TypeVar{v} }

func (v TypeVar) Name() string { return v.name }

func (v TypeVar) Declaration() *Declaration { return v.decl }

// Bounds returns the upper bounds of the variable, {Object} when unbounded.
func (v TypeVar) Bounds() []Type {
	if v.decl == nil {
		return []Type{Top}
	}
	b := v.decl.bounds[v.name]
	if len(b) == 0 {
		return []Type{Top}
	}
	out := make([]Type, len(b))
	copy(out, b)
	return out
}

// Array is an array type. Generic is set when the component is a
// parameterized type, a type variable or another generic array.
type Array struct {
	Component Type
	Generic   bool
}

func (a Array) isType() {}

func (a Array) String() string { return Format(a, 0) }

func (a Array) Hash() string { return a.Component.Hash() + config.ArraySuffix }

func (a Array) Apply(s Subst) Type {
	return ApplyWithCycleCheck(a, s, make(map[TypeVar]bool))
}

func (a Array) FreeTypeVariables() []TypeVar { return a.Component.FreeTypeVariables() }

func uniqueTVars(vars []TypeVar) []TypeVar {
	if len(vars) < 2 {
		return vars
	}
	seen := make(map[TypeVar]bool, len(vars))
	out := vars[:0:0]
	for _, v := range vars {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
