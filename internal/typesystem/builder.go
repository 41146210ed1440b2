package typesystem

// Parameterize applies raw to args. The number of arguments must equal the
// declared arity of raw, and raw must be generic: a class without type
// parameters is never parameterized, not even with zero arguments. Use the
// class itself instead.
func Parameterize(raw *Class, owner Type, args ...Type) (Parameterized, error) {
	if raw == nil {
		return Parameterized{}, malformedf("nil raw type")
	}
	if raw.Arity() == 0 {
		return Parameterized{}, newArityMismatchError(raw, len(args))
	}
	if len(args) != raw.Arity() {
		return Parameterized{}, newArityMismatchError(raw, len(args))
	}
	for i, a := range args {
		switch a.(type) {
		case nil:
			return Parameterized{}, malformedf("nil type argument %d of %s", i, raw.name)
		case Primitive:
			return Parameterized{}, malformedf("primitive type argument %s of %s", a, raw.name)
		}
	}
	return Parameterized{Raw: raw, Owner: owner, Args: append([]Type(nil), args...)}, nil
}

// MustParameterize is like Parameterize but panics on error.
// Intended for built-in tables and tests.
func MustParameterize(raw *Class, args ...Type) Parameterized {
	p, err := Parameterize(raw, nil, args...)
	if err != nil {
		panic(err)
	}
	return p
}

// NewWildcard creates a wildcard. Empty upper bounds mean Object.
func NewWildcard(lower, upper []Type) Wildcard {
	w := Wildcard{Lower: nonNil(lower), Upper: nonNil(upper)}
	if len(w.Upper) == 0 {
		w.Upper = []Type{Top}
	}
	return w
}

// Unbounded returns the wildcard "?".
func Unbounded() Wildcard { return NewWildcard(nil, nil) }

// Extends returns "? extends bound".
func Extends(bound Type) Wildcard { return NewWildcard(nil, []Type{bound}) }

// Super returns "? super bound".
func Super(bound Type) Wildcard { return NewWildcard([]Type{bound}, nil) }

func nonNil(ts []Type) []Type {
	var out []Type
	for _, t := range ts {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// ArrayOf creates an array type with the given component.
func ArrayOf(component Type) (Array, error) {
	switch c := component.(type) {
	case nil:
		return Array{}, malformedf("nil array component")
	case Wildcard:
		return Array{}, malformedf("wildcard array component %s", c)
	case Primitive:
		if c.IsVoid() {
			return Array{}, malformedf("void array component")
		}
	}
	return Array{Component: component, Generic: isGenericComponent(component)}, nil
}

func isGenericComponent(t Type) bool {
	switch c := t.(type) {
	case Parameterized, TypeVar:
		return true
	case Array:
		return c.Generic
	}
	return false
}

// TypeBuilder accumulates type arguments for a generic class.
//
//	t, err := NewTypeBuilder(mapClass).
//		WithType(StringClass).
//		WithSubtypeOf(NumberClass).
//		Build() // java.util.Map<java.lang.String, ? extends java.lang.Number>
type TypeBuilder struct {
	raw   *Class
	owner Type
	args  []Type
}

func NewTypeBuilder(raw *Class) *TypeBuilder {
	return &TypeBuilder{raw: raw}
}

func (b *TypeBuilder) WithOwner(owner Type) *TypeBuilder {
	b.owner = owner
	return b
}

// WithType appends t as the next argument.
func (b *TypeBuilder) WithType(t Type) *TypeBuilder {
	b.args = append(b.args, t)
	return b
}

// WithSubtypeOf appends "? extends bound".
func (b *TypeBuilder) WithSubtypeOf(bound Type) *TypeBuilder {
	return b.WithType(Extends(bound))
}

// WithSupertypeOf appends "? super bound".
func (b *TypeBuilder) WithSupertypeOf(bound Type) *TypeBuilder {
	return b.WithType(Super(bound))
}

// WithWildcard appends "?".
func (b *TypeBuilder) WithWildcard() *TypeBuilder {
	return b.WithType(Unbounded())
}

// Build returns the raw class when no arguments were given, otherwise the
// parameterized type.
func (b *TypeBuilder) Build() (Type, error) {
	if b.raw == nil {
		return nil, malformedf("nil raw type")
	}
	if len(b.args) == 0 && b.owner == nil {
		return b.raw, nil
	}
	return Parameterize(b.raw, b.owner, b.args...)
}

// AsParameterized returns c applied to its own formal parameters
// (List<E> for List), or c itself when it is not generic.
func AsParameterized(c *Class) Type {
	if c.Arity() == 0 {
		return c
	}
	params := c.Params()
	args := make([]Type, len(params))
	for i, p := range params {
		args[i] = p
	}
	return Parameterized{Raw: c, Args: args}
}
