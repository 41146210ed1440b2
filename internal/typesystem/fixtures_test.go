package typesystem

import (
	"testing"
)

// jdk is a small hand-built slice of java.util used across the tests.
type jdk struct {
	Collection, List, Set, RandomAccess        *Class
	AbstractCollection, AbstractList, ArrayList *Class
	Map, HashMap, StringKeyMap                  *Class
	IntList                                     *Class
	TestInterface, TestInterfaceExt             *Class
}

func newClass(t testing.TB, name string, kind ClassKind, params ...string) *Class {
	t.Helper()
	c, err := NewClass(name, kind, params...)
	if err != nil {
		t.Fatalf("NewClass(%s): %v", name, err)
	}
	return c
}

func param(c *Class, i int) TypeVar { return c.Params()[i] }

func check(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func newJDK(t testing.TB) *jdk {
	t.Helper()
	j := &jdk{}

	j.Collection = newClass(t, "java.util.Collection", KindInterface, "E")
	check(t, j.Collection.AddInterface(MustParameterize(IterableClass, param(j.Collection, 0))))
	j.Collection.Seal()

	j.List = newClass(t, "java.util.List", KindInterface, "E")
	check(t, j.List.AddInterface(MustParameterize(j.Collection, param(j.List, 0))))
	j.List.Seal()

	j.Set = newClass(t, "java.util.Set", KindInterface, "E")
	check(t, j.Set.AddInterface(MustParameterize(j.Collection, param(j.Set, 0))))
	j.Set.Seal()

	j.RandomAccess = newClass(t, "java.util.RandomAccess", KindInterface)
	j.RandomAccess.Seal()

	j.AbstractCollection = newClass(t, "java.util.AbstractCollection", KindClass, "E")
	check(t, j.AbstractCollection.AddInterface(MustParameterize(j.Collection, param(j.AbstractCollection, 0))))
	j.AbstractCollection.Seal()

	j.AbstractList = newClass(t, "java.util.AbstractList", KindClass, "E")
	check(t, j.AbstractList.SetSuperclass(MustParameterize(j.AbstractCollection, param(j.AbstractList, 0))))
	check(t, j.AbstractList.AddInterface(MustParameterize(j.List, param(j.AbstractList, 0))))
	j.AbstractList.Seal()

	j.ArrayList = newClass(t, "java.util.ArrayList", KindClass, "E")
	check(t, j.ArrayList.SetSuperclass(MustParameterize(j.AbstractList, param(j.ArrayList, 0))))
	check(t, j.ArrayList.AddInterface(MustParameterize(j.List, param(j.ArrayList, 0))))
	check(t, j.ArrayList.AddInterface(j.RandomAccess))
	check(t, j.ArrayList.AddInterface(CloneableClass))
	check(t, j.ArrayList.AddInterface(SerializableClass))
	j.ArrayList.Seal()

	j.Map = newClass(t, "java.util.Map", KindInterface, "K", "V")
	j.Map.Seal()

	j.HashMap = newClass(t, "java.util.HashMap", KindClass, "K", "V")
	check(t, j.HashMap.AddInterface(MustParameterize(j.Map, param(j.HashMap, 0), param(j.HashMap, 1))))
	j.HashMap.Seal()

	j.StringKeyMap = newClass(t, "test.StringKeyMap", KindClass, "V")
	check(t, j.StringKeyMap.SetSuperclass(MustParameterize(j.HashMap, StringClass, param(j.StringKeyMap, 0))))
	j.StringKeyMap.Seal()

	j.IntList = newClass(t, "test.IntList", KindClass)
	check(t, j.IntList.SetSuperclass(MustParameterize(j.ArrayList, IntegerClass)))
	j.IntList.Seal()

	j.TestInterface = newClass(t, "test.TestInterface", KindInterface)
	j.TestInterface.Seal()
	j.TestInterfaceExt = newClass(t, "test.TestInterfaceExt", KindInterface)
	check(t, j.TestInterfaceExt.AddInterface(j.TestInterface))
	check(t, j.TestInterfaceExt.AddInterface(SerializableClass))
	j.TestInterfaceExt.Seal()

	return j
}

func arrayOf(t testing.TB, c Type) Array {
	t.Helper()
	a, err := ArrayOf(c)
	check(t, err)
	return a
}

func typeVar(t testing.TB, name string, bounds ...Type) TypeVar {
	t.Helper()
	v, err := NewTypeVariable(name, bounds...)
	check(t, err)
	return v
}

func names(ts []Type) []string { return TypeNames(ts) }
