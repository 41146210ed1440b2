package typesystem

import (
	"github.com/cockroachdb/errors"
)

// IsAssignable reports whether a value of type from may be assigned to a
// location of type to.
func (e *Engine) IsAssignable(to, from Type) bool {
	c := &checker{Engine: e}
	return c.assignable(to, from)
}

// IsMatchingTypeArgument reports whether from is acceptable as the type
// argument at a position where to is declared, e.g. Integer for ? extends
// Number. Apart from wildcards and type variables, arguments must be equal.
func (e *Engine) IsMatchingTypeArgument(to, from Type) bool {
	c := &checker{Engine: e}
	return c.matching(to, from)
}

// typePair represents a pair of types whose check is in progress.
type typePair struct {
	to, from string
}

type checker struct {
	*Engine
	visited []typePair
}

// expand runs check unless the same pair is already being expanded higher
// up, which happens only through cyclic variable bindings. Such a cycle has
// no finite derivation and counts as failure.
func (c *checker) expand(to, from Type, check func() bool) bool {
	p := typePair{to: to.Hash(), from: from.Hash()}
	for _, v := range c.visited {
		if v == p {
			return false
		}
	}
	c.visited = append(c.visited, p)
	defer func() { c.visited = c.visited[:len(c.visited)-1] }()
	return check()
}

func (c *checker) assignable(to, from Type) bool {
	if to == nil || from == nil {
		panic(errors.AssertionFailedf("nil type in assignability check (%v <- %v)", to, from))
	}
	if Equal(to, from) {
		return true
	}

	if tv, ok := to.(TypeVar); ok {
		return c.assignableToTypeVar(tv, from)
	}
	if fv, ok := from.(TypeVar); ok {
		if bound, ok := c.mapping.Get(fv); ok {
			return c.expand(to, from, func() bool { return c.assignable(to, bound) })
		}
		if c.mode == FreeMode {
			return true
		}
	}

	toPrim, fromPrim := IsPrimitive(to), IsPrimitive(from)
	if toPrim && fromPrim {
		return IsPrimitiveAssignable(to.(Primitive), from.(Primitive))
	}
	if (toPrim || IsBoxed(to)) && (fromPrim || IsBoxed(from)) {
		return IsPrimitiveAssignableWithAutoboxing(to, from)
	}
	if fromPrim {
		boxed, ok := from.(Primitive).Boxed()
		if !ok {
			return false
		}
		return c.assignable(to, boxed)
	}

	switch t := to.(type) {
	case *Class:
		return c.assignableToClass(t, from)
	case Parameterized:
		return c.assignableToParameterized(t, from)
	case Wildcard:
		return c.assignableToWildcard(t, from)
	case Array:
		return c.assignableToArray(t, from)
	case Primitive:
		return c.anyUpperBound(to, from)
	}
	panic(errors.AssertionFailedf("unexpected type %T", to))
}

func (c *checker) assignableToTypeVar(tv TypeVar, from Type) bool {
	if bound, ok := c.mapping.Get(tv); ok {
		return c.expand(tv, from, func() bool { return c.assignable(bound, from) })
	}
	if fv, ok := from.(TypeVar); ok {
		if bound, ok := c.mapping.Get(fv); ok {
			return c.expand(tv, from, func() bool { return c.assignable(tv, bound) })
		}
	}
	return c.mode == FreeMode
}

// anyUpperBound reports whether some upper bound of a wildcard or type
// variable from is assignable to to.
func (c *checker) anyUpperBound(to, from Type) bool {
	var bounds []Type
	switch f := from.(type) {
	case Wildcard:
		bounds = f.UpperBounds()
	case TypeVar:
		bounds = f.Bounds()
	default:
		return false
	}
	return c.expand(to, from, func() bool {
		for _, b := range bounds {
			if c.assignable(to, b) {
				return true
			}
		}
		return false
	})
}

func (c *checker) assignableToClass(to *Class, from Type) bool {
	switch f := from.(type) {
	case *Class:
		return f.IsSubclassOf(to)
	case Parameterized:
		return f.Raw.IsSubclassOf(to)
	case Wildcard, TypeVar:
		return c.anyUpperBound(to, from)
	case Array:
		return to == Top
	}
	return false
}

func (c *checker) assignableToParameterized(to Parameterized, from Type) bool {
	switch f := from.(type) {
	case *Class:
		// A raw use of a generic class converts unchecked.
		if f.Arity() > 0 || len(f.declaredSupertypes()) == 0 {
			return f.IsSubclassOf(to.Raw)
		}
		for _, s := range f.declaredSupertypes() {
			if c.assignable(to, s) {
				return true
			}
		}
		return false
	case Parameterized:
		if !f.Raw.IsSubclassOf(to.Raw) {
			return false
		}
		sup, ok := AsSuper(f, to.Raw)
		if !ok {
			return false
		}
		p, ok := sup.(Parameterized)
		if !ok {
			// reached through a raw supertype
			return true
		}
		if len(p.Args) != len(to.Args) {
			panic(errors.AssertionFailedf("%v and %v disagree on the arity of %s", to, p, to.Raw.name))
		}
		for i := range to.Args {
			if !c.matching(to.Args[i], p.Args[i]) {
				return false
			}
		}
		return true
	case Wildcard, TypeVar:
		return c.anyUpperBound(to, from)
	}
	return false
}

func (c *checker) matching(to, from Type) bool {
	if Equal(to, from) {
		return true
	}
	if tv, ok := to.(TypeVar); ok {
		if bound, ok := c.mapping.Get(tv); ok {
			return c.expand(to, from, func() bool { return c.matching(bound, from) })
		}
		return c.mode == FreeMode
	}
	if fv, ok := from.(TypeVar); ok {
		if bound, ok := c.mapping.Get(fv); ok {
			return c.expand(to, from, func() bool { return c.matching(to, bound) })
		}
		if c.mode == FreeMode {
			return true
		}
		if w, ok := to.(Wildcard); ok {
			return c.variableMatchesWildcard(w, fv)
		}
		return false
	}
	if w, ok := to.(Wildcard); ok {
		return c.assignableToWildcard(w, from)
	}
	return false
}

// variableMatchesWildcard: a variable fits a wildcard without lower bounds
// when one of the wildcard's upper bounds accepts one of the variable's.
func (c *checker) variableMatchesWildcard(to Wildcard, from TypeVar) bool {
	if len(to.Lower) > 0 {
		return false
	}
	return c.expand(to, from, func() bool {
		for _, u := range to.UpperBounds() {
			for _, b := range from.Bounds() {
				if c.assignable(u, b) {
					return true
				}
			}
		}
		return false
	})
}

// assignableToWildcard requires every upper bound of to to accept from and
// from to accept every lower bound of to.
func (c *checker) assignableToWildcard(to Wildcard, from Type) bool {
	for _, u := range to.UpperBounds() {
		if !c.satisfiesUpper(u, from) {
			return false
		}
	}
	for _, l := range to.Lower {
		if !c.satisfiesLower(l, from) {
			return false
		}
	}
	return true
}

func (c *checker) satisfiesUpper(upper, from Type) bool {
	var bounds []Type
	switch f := from.(type) {
	case Wildcard:
		bounds = f.UpperBounds()
	case TypeVar:
		bounds = f.Bounds()
	default:
		return c.assignable(upper, from)
	}
	return c.expand(upper, from, func() bool {
		for _, b := range bounds {
			if c.assignable(upper, b) {
				return true
			}
		}
		return false
	})
}

func (c *checker) satisfiesLower(lower, from Type) bool {
	var bounds []Type
	switch f := from.(type) {
	case Wildcard:
		bounds = f.Lower
	case TypeVar:
		bounds = f.Bounds()
	default:
		return c.assignable(from, lower)
	}
	return c.expand(from, lower, func() bool {
		for _, b := range bounds {
			if c.assignable(b, lower) {
				return true
			}
		}
		return false
	})
}

func (c *checker) assignableToArray(to Array, from Type) bool {
	switch f := from.(type) {
	case Array:
		if IsPrimitive(to.Component) || IsPrimitive(f.Component) {
			return Equal(to.Component, f.Component)
		}
		return c.assignable(to.Component, f.Component)
	case Wildcard, TypeVar:
		return c.anyUpperBound(to, from)
	}
	return false
}
