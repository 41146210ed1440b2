package typesystem

import (
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"
)

// DirectSupertypes returns the superclass and interfaces of a class or
// parameterized type with the type arguments substituted. A raw use of a
// generic class yields erased supertypes.
func DirectSupertypes(t Type) []Type {
	switch typ := t.(type) {
	case *Class:
		declared := typ.declaredSupertypes()
		if typ.Arity() == 0 {
			return declared
		}
		out := make([]Type, len(declared))
		for i, s := range declared {
			out[i] = RawClass(s)
		}
		return out
	case Parameterized:
		s := typ.Raw.bindings(typ.Args)
		declared := typ.Raw.declaredSupertypes()
		out := make([]Type, len(declared))
		for i, d := range declared {
			out[i] = d.Apply(s)
		}
		return out
	}
	return nil
}

// AsSuper returns the supertype of t whose class is target, with t's type
// arguments substituted (AsSuper(ArrayList<String>, List) is List<String>).
func AsSuper(t Type, target *Class) (Type, bool) {
	visited := set.New[*Class](8)
	stack := []Type{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		raw := RawClass(cur)
		if raw == nil {
			continue
		}
		if raw == target {
			return cur, true
		}
		if !visited.Insert(raw) {
			continue
		}
		supers := DirectSupertypes(cur)
		for i := len(supers) - 1; i >= 0; i-- {
			stack = append(stack, supers[i])
		}
	}
	return nil, false
}

// RawSupertypes returns the reflexive, transitive closure of raw
// superclasses and interfaces: the class first, then depth first along the
// superclass and the interfaces in declaration order. The closure of an
// interface does not contain Object. For wildcards and type variables the
// closures of their upper bounds are joined; an array has Object.
func (e *Engine) RawSupertypes(t Type) *TypeSet {
	result := NewTypeSet()
	switch typ := t.(type) {
	case *Class:
		collectRawSupertypes(typ, result)
	case Parameterized:
		collectRawSupertypes(typ.Raw, result)
	case Wildcard, TypeVar:
		for _, b := range UpperBounds(typ) {
			result.InsertAll(e.RawSupertypes(b))
		}
	case Array:
		result.Insert(Top)
	}
	return result
}

func collectRawSupertypes(c *Class, result *TypeSet) {
	stack := []*Class{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !result.Insert(cur) {
			continue
		}
		ifaces := cur.RawInterfaces()
		for i := len(ifaces) - 1; i >= 0; i-- {
			stack = append(stack, ifaces[i])
		}
		if s := cur.RawSuperclass(); s != nil {
			stack = append(stack, s)
		}
	}
}

// GenericSupertypes returns the parameterized types among t and its
// ancestors as they are written in the class headers, that is over the
// ancestors' own formal parameters (List<E>, Collection<E>, ...).
func (e *Engine) GenericSupertypes(t Type) *TypeSet {
	result := NewTypeSet()
	if RawClass(t) == nil {
		return result
	}
	seen := set.New[string](8)
	stack := []Type{t}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Insert(cur.Hash()) {
			continue
		}
		if p, ok := cur.(Parameterized); ok {
			result.Insert(p)
		}
		declared := RawClass(cur).declaredSupertypes()
		for i := len(declared) - 1; i >= 0; i-- {
			stack = append(stack, declared[i])
		}
	}
	return result
}

// TypeArgumentMap maps the formal parameter of every generic ancestor of t
// to the actual argument it receives from t. Parameters that would only
// resolve to another unresolved formal parameter are left out.
func (e *Engine) TypeArgumentMap(t Parameterized) Subst {
	s, _ := e.typeArguments(t)
	return s
}

func (e *Engine) typeArguments(t Parameterized) (Subst, *set.Set[TypeVar]) {
	subst := make(Subst)
	formals := set.New[TypeVar](8)
	for g := range e.GenericSupertypes(t).All() {
		p := g.(Parameterized)
		for i, param := range p.Raw.Params() {
			formals.Insert(param)
			actual := p.Args[i].Apply(subst)
			if v, ok := actual.(TypeVar); ok && formals.Contains(v) {
				if _, resolved := subst[v]; !resolved {
					continue
				}
			}
			subst[param] = actual
		}
	}
	return subst, formals
}

// Supertypes returns every type t is assignable to: t itself, its raw
// supertypes and, for parameterized types, every parameterization of a
// generic ancestor whose arguments are drawn from the supertypes of the
// actual arguments (the argument itself, ?, or ? extends S for each other
// supertype S). Wildcards and type variables yield wildcards over the
// supertypes of their upper bounds; an array yields Object.
func (e *Engine) Supertypes(t Type) *TypeSet {
	result := NewTypeSet()
	e.collectSupertypes(NewTypeSet(), t, result)
	e.logger.Debug("computed supertypes",
		zap.Stringer("type", t),
		zap.Int("count", result.Len()))
	return result
}

// collectSupertypes adds the supertypes of t to result. Parameterized types
// currently being expanded are on stack; meeting one again contributes
// nothing, which ends recursion through self-referential bounds.
func (e *Engine) collectSupertypes(stack *TypeSet, t Type, result *TypeSet) {
	if stack.Contains(t) {
		return
	}
	switch typ := t.(type) {
	case *Class:
		result.Insert(typ)
		if s := typ.RawSuperclass(); s != nil {
			e.collectSupertypes(stack, s, result)
		}
		for _, i := range typ.RawInterfaces() {
			e.collectSupertypes(stack, i, result)
		}

	case Parameterized:
		result.Insert(typ)
		result.InsertAll(e.RawSupertypes(typ))

		stack.Insert(typ)
		defer stack.Remove(typ)

		subst, formals := e.typeArguments(typ)
		for g := range e.GenericSupertypes(typ).All() {
			p := g.(Parameterized)
			domains := make([][]Type, len(p.Args))
			for i, arg := range p.Args {
				domains[i] = e.argumentDomain(stack, arg.Apply(subst), subst, formals)
			}
			for combo := range CartesianProduct(domains) {
				np, err := Parameterize(p.Raw, p.Owner, combo...)
				if err != nil {
					panic(errors.NewAssertionErrorWithWrappedErrf(err, "supertype of %s", typ))
				}
				result.Insert(np)
			}
		}

	case Wildcard, TypeVar:
		result.Insert(typ)
		for _, w := range e.wildcardsOver(stack, UpperBounds(typ)) {
			result.Insert(w)
		}

	case Array:
		result.Insert(typ)
		result.Insert(Top)

	case Primitive:
		result.Insert(typ)

	default:
		panic(errors.AssertionFailedf("unexpected type %T", t))
	}
}

// argumentDomain lists the types that may replace the actual argument arg
// in a supertype. The unbounded wildcard is always among them.
func (e *Engine) argumentDomain(stack *TypeSet, arg Type, subst Subst, formals *set.Set[TypeVar]) []Type {
	switch a := arg.(type) {
	case Wildcard:
		return e.wildcardsOver(stack, a.UpperBounds())
	case TypeVar:
		if _, resolved := subst[a]; formals.Contains(a) && !resolved {
			return nil
		}
		return append([]Type{a}, e.wildcardsOver(stack, a.Bounds())...)
	}
	supers := NewTypeSet()
	e.collectSupertypes(stack, arg, supers)
	out := NewTypeSet()
	for s := range supers.All() {
		switch {
		case Equal(s, arg):
			out.Insert(s)
		case IsPrimitive(s):
		default:
			out.Insert(asUpperWildcard(s))
		}
	}
	out.Insert(Unbounded())
	return out.Slice()
}

// wildcardsOver returns ? extends S for every supertype S of the bounds,
// and ? itself.
func (e *Engine) wildcardsOver(stack *TypeSet, bounds []Type) []Type {
	supers := NewTypeSet()
	for _, b := range bounds {
		e.collectSupertypes(stack, b, supers)
	}
	out := NewTypeSet()
	for s := range supers.All() {
		if IsPrimitive(s) {
			continue
		}
		out.Insert(asUpperWildcard(s))
	}
	out.Insert(Unbounded())
	return out.Slice()
}

func asUpperWildcard(t Type) Type {
	if w, ok := t.(Wildcard); ok {
		return w
	}
	return Extends(t)
}
