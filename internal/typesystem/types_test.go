package typesystem

import (
	"errors"
	"testing"

	"github.com/funvibe/typerel/internal/config"
)

func TestParameterizeArity(t *testing.T) {
	j := newJDK(t)
	tests := []struct {
		name string
		raw  *Class
		args []Type
		err  error
	}{
		{"ok", j.Map, []Type{StringClass, IntegerClass}, nil},
		{"too few", j.Map, []Type{StringClass}, ErrArityMismatch},
		{"too many", j.List, []Type{StringClass, StringClass}, ErrArityMismatch},
		{"not generic", StringClass, []Type{StringClass}, ErrArityMismatch},
		{"not generic without arguments", StringClass, nil, ErrArityMismatch},
		{"primitive argument", j.List, []Type{Int}, ErrMalformedInput},
		{"nil argument", j.List, []Type{nil}, ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parameterize(tt.raw, nil, tt.args...)
			if tt.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
		})
	}

	var arity *ArityMismatchError
	_, err := Parameterize(j.Map, nil, StringClass)
	if !errors.As(err, &arity) || arity.Want != 2 || arity.Got != 1 {
		t.Errorf("expected ArityMismatchError{Want: 2, Got: 1}, got %v", err)
	}
	_, err = Parameterize(StringClass, nil)
	if !errors.As(err, &arity) || arity.Want != 0 || arity.Got != 0 {
		t.Errorf("expected ArityMismatchError{Want: 0, Got: 0}, got %v", err)
	}
	if got, err := NewTypeBuilder(StringClass).Build(); err != nil || got != Type(StringClass) {
		t.Errorf("Build of a non-generic class = %v, %v; want the class", got, err)
	}
}

func TestTypeBuilder(t *testing.T) {
	j := newJDK(t)

	raw, err := NewTypeBuilder(j.List).Build()
	check(t, err)
	if raw != Type(j.List) {
		t.Errorf("Build without arguments = %s, want raw List", raw)
	}

	got, err := NewTypeBuilder(j.Map).WithSupertypeOf(IntegerClass).WithSubtypeOf(NumberClass).Build()
	check(t, err)
	want := "java.util.Map<? super java.lang.Integer, ? extends java.lang.Number>"
	if got.String() != want {
		t.Errorf("built %s, want %s", got, want)
	}

	if _, err := NewTypeBuilder(j.Map).WithWildcard().Build(); !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected arity mismatch, got %v", err)
	}
}

func TestDeclarationBuilder(t *testing.T) {
	b := NewDeclarationBuilder("test")
	tv, err := b.Add("T", NumberClass)
	check(t, err)
	if _, err := b.Declare("T"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := b.Declare("1T"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for invalid name, got %v", err)
	}
	if err := b.Bound(tv, Int); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for primitive bound, got %v", err)
	}
	other := typeVar(t, "U")
	if err := b.Bound(other, NumberClass); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for foreign variable, got %v", err)
	}
	if _, err := b.Add("U", Extends(NumberClass)); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for wildcard bound, got %v", err)
	}
	if _, ok := b.Var("U"); ok {
		t.Error("failed Add must not declare the variable")
	}

	d := b.Build()
	if _, err := b.Declare("V"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput on sealed declaration, got %v", err)
	}
	if d.Len() != 1 || d.Vars()[0] != tv {
		t.Errorf("declaration vars = %v", d.Vars())
	}
	if got := tv.Bounds(); len(got) != 1 || got[0] != Type(NumberClass) {
		t.Errorf("bounds = %v", names(got))
	}
}

func TestWildcardDefaults(t *testing.T) {
	w := NewWildcard(nil, nil)
	if len(w.UpperBounds()) != 1 || w.UpperBounds()[0] != Type(Top) {
		t.Errorf("upper bounds = %v", names(w.UpperBounds()))
	}
	if !Equal(w, Wildcard{}) {
		t.Error("a wildcard without upper bounds equals ?")
	}
	if !Equal(Extends(ObjectClass), Unbounded()) {
		t.Error("? extends Object equals ?")
	}
	if Equal(Super(IntegerClass), Unbounded()) {
		t.Error("? super Integer differs from ?")
	}
}

func TestArrayOf(t *testing.T) {
	j := newJDK(t)
	if _, err := ArrayOf(nil); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput, got %v", err)
	}
	if _, err := ArrayOf(Void); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected ErrMalformedInput for void[], got %v", err)
	}
	if a := arrayOf(t, Int); a.Generic {
		t.Error("int[] is not generic")
	}
	if a := arrayOf(t, MustParameterize(j.List, StringClass)); !a.Generic {
		t.Error("List<String>[] is generic")
	}
	nested := arrayOf(t, arrayOf(t, typeVar(t, "T")))
	if !nested.Generic {
		t.Error("T[][] is generic")
	}
}

func TestFormat(t *testing.T) {
	j := newJDK(t)
	tv := typeVar(t, "T", NumberClass, RunnableClass)
	uv := typeVar(t, "U")

	tests := []struct {
		typ   Type
		flags FormatFlag
		want  string
	}{
		{Int, 0, "int"},
		{Void, 0, "void"},
		{ObjectClass, 0, "java.lang.Object"},
		{Unbounded(), 0, "?"},
		{Super(IntegerClass), 0, "? super java.lang.Integer"},
		{NewWildcard(nil, []Type{NumberClass, RunnableClass}), 0, "? extends java.lang.Number & java.lang.Runnable"},
		{MustParameterize(j.Map, StringClass, Extends(NumberClass)), 0, "java.util.Map<java.lang.String, ? extends java.lang.Number>"},
		{MustParameterize(j.Map, tv, tv), 0, "java.util.Map<T extends java.lang.Number & java.lang.Runnable, T>"},
		{MustParameterize(j.Map, tv, tv), FormatBareVariables, "java.util.Map<T, T>"},
		{uv, 0, "U"},
		{arrayOf(t, arrayOf(t, Int)), 0, "int[][]"},
		{arrayOf(t, IntegerClass), FormatDebug, "(java.lang.Integer)[]"},
	}
	for _, tt := range tests {
		if got := Format(tt.typ, tt.flags); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestDebugStringNormalizedInTestMode(t *testing.T) {
	old := config.IsTestMode
	config.IsTestMode = true
	defer func() { config.IsTestMode = old }()

	if got := DebugString(typeVar(t, "T")); got != "T@T" {
		t.Errorf("DebugString = %q, want %q", got, "T@T")
	}
}

func TestEquivalent(t *testing.T) {
	j := newJDK(t)
	t1 := typeVar(t, "T", NumberClass)
	t2 := typeVar(t, "T", NumberClass)
	t3 := typeVar(t, "T", StringClass)

	if Equal(t1, t2) {
		t.Error("variables from different declarations are not equal")
	}
	if !Equivalent(t1, t2) {
		t.Error("same name and bounds are equivalent")
	}
	if Equivalent(t1, t3) {
		t.Error("different bounds are not equivalent")
	}
	if !Equivalent(MustParameterize(j.List, Extends(t1)), MustParameterize(j.List, Extends(t2))) {
		t.Error("structures over equivalent variables are equivalent")
	}

	mk := func() TypeVar {
		b := NewDeclarationBuilder("test")
		e, err := b.Declare("E")
		check(t, err)
		check(t, b.Bound(e, MustParameterize(ComparableClass, e)))
		return e
	}
	if !Equivalent(mk(), mk()) {
		t.Error("self-referential variables are equivalent")
	}
}

func TestMapping(t *testing.T) {
	tv := typeVar(t, "T")
	m := NewMapping()
	m.Put(tv, tv)
	if _, ok := m.Get(tv); ok {
		t.Error("binding a variable to itself is ignored")
	}
	m.Put(tv, IntegerClass)
	if got, ok := m.Get(tv); !ok || got != Type(IntegerClass) {
		t.Errorf("Get = %v, %v", got, ok)
	}
	m.Put(tv, nil)
	if m.Len() != 0 {
		t.Errorf("Len after removal = %d", m.Len())
	}
}

func TestApplyAndErase(t *testing.T) {
	j := newJDK(t)
	tv := typeVar(t, "T", NumberClass)
	listT := MustParameterize(j.List, tv)
	got := listT.Apply(Subst{tv: IntegerClass})
	if !Equal(got, MustParameterize(j.List, IntegerClass)) {
		t.Errorf("Apply = %s", got)
	}
	if vars := listT.FreeTypeVariables(); len(vars) != 1 || vars[0] != tv {
		t.Errorf("FreeTypeVariables = %v", vars)
	}
	if got := Erase(arrayOf(t, tv)); got.String() != "java.lang.Number[]" {
		t.Errorf("Erase(T[]) = %s", got)
	}
	if got := Erase(listT); got != Type(j.List) {
		t.Errorf("Erase(List<T>) = %s", got)
	}
}

func TestClassHeaderValidation(t *testing.T) {
	j := newJDK(t)
	c := newClass(t, "test.Foo", KindClass, "A")
	if err := c.SetSuperclass(j.List); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("extending an interface: %v", err)
	}
	if err := c.AddInterface(NumberClass); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("implementing a class: %v", err)
	}
	check(t, c.AddInterface(j.RandomAccess))
	if err := c.AddInterface(j.RandomAccess); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("implementing twice: %v", err)
	}
	if _, err := NewClass("test.Bar", KindClass, "A", "A"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate parameter: %v", err)
	}
	if _, err := NewClass("test.int", KindClass); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("reserved word in class name: %v", err)
	}
	c.Seal()
	if c.Superclass() != Type(Top) {
		t.Errorf("default superclass = %v", c.Superclass())
	}
	if err := c.BoundParam("A", NumberClass); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("modifying a sealed class: %v", err)
	}
	if c.HasSupertypeCycle() {
		t.Error("no cycle expected")
	}
}
