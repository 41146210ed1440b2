package typesystem

import (
	"github.com/cockroachdb/errors"

	"github.com/funvibe/typerel/internal/config"
)

// PrimitiveKind enumerates the primitive types.
type PrimitiveKind uint8

const (
	BooleanKind PrimitiveKind = iota
	ByteKind
	CharKind
	ShortKind
	IntKind
	LongKind
	FloatKind
	DoubleKind
	VoidKind
)

var primitiveNames = [...]string{
	BooleanKind: "boolean",
	ByteKind:    "byte",
	CharKind:    "char",
	ShortKind:   "short",
	IntKind:     "int",
	LongKind:    "long",
	FloatKind:   "float",
	DoubleKind:  "double",
	VoidKind:    config.VoidKeyword,
}

// Primitive is a primitive type. Void is included so that "void" can be
// parsed; it takes part in no conversion.
type Primitive struct {
	kind PrimitiveKind
}

var (
	Boolean = Primitive{BooleanKind}
	Byte    = Primitive{ByteKind}
	Char    = Primitive{CharKind}
	Short   = Primitive{ShortKind}
	Int     = Primitive{IntKind}
	Long    = Primitive{LongKind}
	Float   = Primitive{FloatKind}
	Double  = Primitive{DoubleKind}
	Void    = Primitive{VoidKind}
)

func (p Primitive) isType() {}

func (p Primitive) String() string { return primitiveNames[p.kind] }

func (p Primitive) Hash() string { return primitiveNames[p.kind] }

func (p Primitive) Apply(Subst) Type { return p }

func (p Primitive) FreeTypeVariables() []TypeVar { return nil }

func (p Primitive) Kind() PrimitiveKind { return p.kind }

func (p Primitive) IsVoid() bool { return p.kind == VoidKind }

// Primitives returns the eight convertible primitive types.
func Primitives() []Primitive {
	return []Primitive{Boolean, Byte, Char, Short, Int, Long, Float, Double}
}

// PrimitiveByName returns the primitive (or void) with the given keyword.
func PrimitiveByName(name string) (Primitive, bool) {
	for k, n := range primitiveNames {
		if n == name {
			return Primitive{PrimitiveKind(k)}, true
		}
	}
	return Primitive{}, false
}

// Filled in by the built-in class table.
var (
	boxedByKind = map[PrimitiveKind]*Class{}
	kindByBoxed = map[*Class]PrimitiveKind{}
)

// Direct widening edges; double and boolean have none.
var widening = map[PrimitiveKind]PrimitiveKind{
	ByteKind:  ShortKind,
	ShortKind: IntKind,
	CharKind:  IntKind,
	IntKind:   LongKind,
	LongKind:  FloatKind,
	FloatKind: DoubleKind,
}

// Boxed returns the wrapper class of p. Void has none.
func (p Primitive) Boxed() (*Class, bool) {
	c, ok := boxedByKind[p.kind]
	return c, ok
}

// Unbox returns the primitive wrapped by a boxed class.
func Unbox(t Type) (Primitive, bool) {
	c, ok := t.(*Class)
	if !ok {
		return Primitive{}, false
	}
	k, ok := kindByBoxed[c]
	return Primitive{k}, ok
}

// IsBoxed reports whether t is one of the eight wrapper classes.
func IsBoxed(t Type) bool {
	_, ok := Unbox(t)
	return ok
}

// DirectWideningSupertype returns the next wider primitive of p.
func DirectWideningSupertype(p Primitive) (Primitive, bool) {
	k, ok := widening[p.kind]
	return Primitive{k}, ok
}

// IsPrimitiveAssignable reports whether a value of primitive type from can
// be assigned to to by identity or widening along
// byte→short→int→long→float→double and char→int.
func IsPrimitiveAssignable(to, from Primitive) bool {
	for cur := from; ; {
		if cur == to {
			return true
		}
		next, ok := DirectWideningSupertype(cur)
		if !ok {
			return false
		}
		cur = next
	}
}

// IsPrimitiveAssignableWithAutoboxing extends IsPrimitiveAssignable to
// wrapper classes: a primitive and a wrapper match only through their exact
// boxing, two wrappers only when equal. Other types yield false.
func IsPrimitiveAssignableWithAutoboxing(to, from Type) bool {
	ok, _ := CheckPrimitiveAssignableWithAutoboxing(to, from)
	return ok
}

// CheckPrimitiveAssignableWithAutoboxing is IsPrimitiveAssignableWithAutoboxing
// reporting ErrNotPrimitive for arguments that are neither primitive nor boxed.
func CheckPrimitiveAssignableWithAutoboxing(to, from Type) (bool, error) {
	for _, t := range []Type{to, from} {
		if !IsPrimitive(t) && !IsBoxed(t) {
			return false, errors.Wrapf(ErrNotPrimitive, "%v", t)
		}
	}
	if Equal(to, from) {
		return true, nil
	}
	tp, toPrim := to.(Primitive)
	fp, fromPrim := from.(Primitive)
	switch {
	case toPrim && fromPrim:
		return IsPrimitiveAssignable(tp, fp), nil
	case toPrim:
		u, _ := Unbox(from)
		return u == tp, nil
	case fromPrim:
		u, _ := Unbox(to)
		return u == fp, nil
	}
	return false, nil
}
