package typesystem

// RawClass returns the class behind t: the class itself or the raw type of
// a parameterized type. Other variants have none.
func RawClass(t Type) *Class {
	switch typ := t.(type) {
	case *Class:
		return typ
	case Parameterized:
		return typ.Raw
	}
	return nil
}

func IsInterface(t Type) bool {
	c := RawClass(t)
	return c != nil && c.IsInterface()
}

// IsPrimitive reports whether t is a primitive type, void included.
func IsPrimitive(t Type) bool {
	_, ok := t.(Primitive)
	return ok
}

// IsVoid reports whether t is void or java.lang.Void.
func IsVoid(t Type) bool {
	if p, ok := t.(Primitive); ok {
		return p.IsVoid()
	}
	return t == Type(VoidClass)
}

func IsArray(t Type) bool {
	_, ok := t.(Array)
	return ok
}

func ComponentType(t Type) (Type, bool) {
	if a, ok := t.(Array); ok {
		return a.Component, true
	}
	return nil, false
}

// TypeArguments returns the arguments of a parameterized type.
func TypeArguments(t Type) []Type {
	if p, ok := t.(Parameterized); ok {
		return p.Args
	}
	return nil
}

// UpperBounds returns the upper bounds of a wildcard or type variable.
func UpperBounds(t Type) []Type {
	switch typ := t.(type) {
	case Wildcard:
		return typ.UpperBounds()
	case TypeVar:
		return typ.Bounds()
	}
	return nil
}

// LowerBounds returns the lower bounds of a wildcard.
func LowerBounds(t Type) []Type {
	if w, ok := t.(Wildcard); ok {
		return w.Lower
	}
	return nil
}
