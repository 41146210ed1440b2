package typesystem

import (
	"github.com/cockroachdb/errors"

	"github.com/funvibe/typerel/internal/config"
)

// Built-in classes. They exist independently of any universe so that Top,
// the wrapper classes and their supertypes are always available.
var (
	ObjectClass       *Class
	SerializableClass *Class
	CloneableClass    *Class
	ComparableClass   *Class
	CharSequenceClass *Class
	RunnableClass     *Class
	IterableClass     *Class
	NumberClass       *Class
	StringClass       *Class
	VoidClass         *Class
	BooleanClass      *Class
	CharacterClass    *Class
	ByteClass         *Class
	ShortClass        *Class
	IntegerClass      *Class
	LongClass         *Class
	FloatClass        *Class
	DoubleClass       *Class
)

// Top is the root of the class hierarchy, java.lang.Object.
var Top *Class

var builtinClasses []*Class

// BuiltinClasses returns the built-in classes in definition order.
func BuiltinClasses() []*Class {
	out := make([]*Class, len(builtinClasses))
	copy(out, builtinClasses)
	return out
}

func init() {
	lang := func(simple string, kind ClassKind, params ...string) *Class {
		return builtin(config.LangPackage+simple, kind, params...)
	}

	ObjectClass = builtin(config.TopTypeName, KindClass)
	Top = ObjectClass

	SerializableClass = builtin("java.io.Serializable", KindInterface)
	CloneableClass = lang("Cloneable", KindInterface)
	ComparableClass = lang("Comparable", KindInterface, "T")
	CharSequenceClass = lang("CharSequence", KindInterface)
	RunnableClass = lang("Runnable", KindInterface)
	IterableClass = lang("Iterable", KindInterface, "T")

	NumberClass = lang("Number", KindClass)
	mustHeader(NumberClass.AddInterface(SerializableClass))

	StringClass = lang("String", KindClass)
	mustHeader(StringClass.AddInterface(SerializableClass))
	mustHeader(StringClass.AddInterface(MustParameterize(ComparableClass, StringClass)))
	mustHeader(StringClass.AddInterface(CharSequenceClass))

	VoidClass = lang("Void", KindClass)

	BooleanClass = boxed("Boolean", BooleanKind, ObjectClass)
	CharacterClass = boxed("Character", CharKind, ObjectClass)
	ByteClass = boxed("Byte", ByteKind, NumberClass)
	ShortClass = boxed("Short", ShortKind, NumberClass)
	IntegerClass = boxed("Integer", IntKind, NumberClass)
	LongClass = boxed("Long", LongKind, NumberClass)
	FloatClass = boxed("Float", FloatKind, NumberClass)
	DoubleClass = boxed("Double", DoubleKind, NumberClass)

	for _, c := range builtinClasses {
		c.Seal()
	}
}

func builtin(name string, kind ClassKind, params ...string) *Class {
	c, err := NewClass(name, kind, params...)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "built-in class %s", name))
	}
	builtinClasses = append(builtinClasses, c)
	return c
}

func boxed(simple string, kind PrimitiveKind, super *Class) *Class {
	c := builtin(config.LangPackage+simple, KindClass)
	if super != ObjectClass {
		mustHeader(c.SetSuperclass(super))
	} else {
		mustHeader(c.AddInterface(SerializableClass))
	}
	mustHeader(c.AddInterface(MustParameterize(ComparableClass, c)))
	boxedByKind[kind] = c
	kindByBoxed[c] = kind
	return c
}

func mustHeader(err error) {
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "built-in class header"))
	}
}
