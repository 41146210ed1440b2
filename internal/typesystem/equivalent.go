package typesystem

// Equivalent reports whether a and b have the same structure. Unlike Equal
// it ignores which declaration a type variable belongs to: variables match
// when their names and bounds are equivalent.
func Equivalent(a, b Type) bool {
	return equivalent(a, b, make(map[[2]TypeVar]bool))
}

func equivalent(a, b Type, assumed map[[2]TypeVar]bool) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case *Class:
		tb, ok := b.(*Class)
		return ok && ta.name == tb.name
	case Primitive:
		tb, ok := b.(Primitive)
		return ok && ta == tb
	case Parameterized:
		tb, ok := b.(Parameterized)
		if !ok || ta.Raw.name != tb.Raw.name {
			return false
		}
		if (ta.Owner == nil) != (tb.Owner == nil) {
			return false
		}
		if ta.Owner != nil && !equivalent(ta.Owner, tb.Owner, assumed) {
			return false
		}
		return equivalentAll(ta.Args, tb.Args, assumed)
	case Wildcard:
		tb, ok := b.(Wildcard)
		return ok &&
			equivalentAll(ta.UpperBounds(), tb.UpperBounds(), assumed) &&
			equivalentAll(ta.Lower, tb.Lower, assumed)
	case TypeVar:
		tb, ok := b.(TypeVar)
		if !ok || ta.name != tb.name {
			return false
		}
		pair := [2]TypeVar{ta, tb}
		if assumed[pair] {
			return true
		}
		assumed[pair] = true
		return equivalentAll(ta.Bounds(), tb.Bounds(), assumed)
	case Array:
		tb, ok := b.(Array)
		return ok && equivalent(ta.Component, tb.Component, assumed)
	}
	return false
}

func equivalentAll(as, bs []Type, assumed map[[2]TypeVar]bool) bool {
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !equivalent(as[i], bs[i], assumed) {
			return false
		}
	}
	return true
}
