package typesystem

// Subst maps type variables to the types that replace them.
type Subst map[TypeVar]Type

// bindings maps the formal parameters of c to args. Extra or missing
// arguments are ignored.
func (c *Class) bindings(args []Type) Subst {
	params := c.Params()
	s := make(Subst, len(params))
	for i, p := range params {
		if i < len(args) {
			s[p] = args[i]
		}
	}
	return s
}

// ApplyWithCycleCheck applies substitution with cycle detection.
// A variable that is reached again while its replacement is being applied
// is left as is. Bounds of variables are not rewritten.
func ApplyWithCycleCheck(t Type, s Subst, visited map[TypeVar]bool) Type {
	if t == nil || len(s) == 0 {
		return t
	}

	switch typ := t.(type) {
	case TypeVar:
		if visited[typ] {
			return typ
		}
		replacement, ok := s[typ]
		if !ok {
			return typ
		}
		if rv, ok := replacement.(TypeVar); ok && rv == typ {
			return typ
		}
		visited[typ] = true
		defer delete(visited, typ)
		return ApplyWithCycleCheck(replacement, s, visited)

	case Parameterized:
		args := make([]Type, len(typ.Args))
		for i, a := range typ.Args {
			args[i] = ApplyWithCycleCheck(a, s, visited)
		}
		return Parameterized{
			Raw:   typ.Raw,
			Owner: ApplyWithCycleCheck(typ.Owner, s, visited),
			Args:  args,
		}

	case Wildcard:
		return Wildcard{
			Lower: applyAll(typ.Lower, s, visited),
			Upper: applyAll(typ.Upper, s, visited),
		}

	case Array:
		c := ApplyWithCycleCheck(typ.Component, s, visited)
		return Array{Component: c, Generic: isGenericComponent(c)}

	default:
		return t
	}
}

func applyAll(ts []Type, s Subst, visited map[TypeVar]bool) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = ApplyWithCycleCheck(t, s, visited)
	}
	return out
}

// Erase returns the erasure of t: parameterized types become their raw
// class, type variables and wildcards the erasure of their first upper bound.
func Erase(t Type) Type {
	return erase(t, make(map[TypeVar]bool))
}

func erase(t Type, visited map[TypeVar]bool) Type {
	switch typ := t.(type) {
	case Parameterized:
		return typ.Raw
	case TypeVar:
		if visited[typ] {
			return Top
		}
		visited[typ] = true
		return erase(typ.Bounds()[0], visited)
	case Wildcard:
		return erase(typ.UpperBounds()[0], visited)
	case Array:
		c := erase(typ.Component, visited)
		return Array{Component: c, Generic: isGenericComponent(c)}
	default:
		return t
	}
}
