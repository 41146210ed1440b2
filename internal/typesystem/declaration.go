package typesystem

import (
	"strings"

	"github.com/google/uuid"
)

// Declaration is the arena that owns a group of type variables, such as the
// formal parameters of a class or the variables of one parsed type string.
// Variables refer to it by handle, so the declaration exists (and can be
// referenced from bounds) before its bounds are known.
type Declaration struct {
	id     uuid.UUID
	owner  string
	names  []string
	bounds map[string][]Type
	sealed bool
}

func newDeclaration(owner string) *Declaration {
	return &Declaration{
		id:     uuid.New(),
		owner:  owner,
		bounds: make(map[string][]Type),
	}
}

func (d *Declaration) ID() uuid.UUID { return d.id }

// Owner names what declared the variables (a class name, or a description).
func (d *Declaration) Owner() string { return d.owner }

func (d *Declaration) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}

// Vars returns the declared variables in declaration order.
func (d *Declaration) Vars() []TypeVar {
	if d == nil {
		return nil
	}
	out := make([]TypeVar, len(d.names))
	for i, n := range d.names {
		out[i] = TypeVar{decl: d, name: n}
	}
	return out
}

func (d *Declaration) Lookup(name string) (TypeVar, bool) {
	if d == nil {
		return TypeVar{}, false
	}
	if _, ok := d.bounds[name]; !ok {
		return TypeVar{}, false
	}
	return TypeVar{decl: d, name: name}, true
}

func (d *Declaration) Sealed() bool { return d.sealed }

func (d *Declaration) String() string {
	return d.owner + "<" + strings.Join(d.names, ", ") + ">"
}

// DeclarationBuilder declares type variables and their bounds.
//
//	b := NewDeclarationBuilder("java.lang.Enum")
//	e, _ := b.Declare("E")
//	enumE, _ := Parameterize(enum, nil, e)
//	_ = b.Bound(e, enumE)
type DeclarationBuilder struct {
	decl *Declaration
}

func NewDeclarationBuilder(owner string) *DeclarationBuilder {
	return &DeclarationBuilder{decl: newDeclaration(owner)}
}

func (b *DeclarationBuilder) Declaration() *Declaration { return b.decl }

// Declare adds an unbounded variable.
func (b *DeclarationBuilder) Declare(name string) (TypeVar, error) {
	if b.decl.sealed {
		return TypeVar{}, malformedf("declaration %s is sealed", b.decl.owner)
	}
	if !IsIdentifier(name) {
		return TypeVar{}, malformedf("invalid type variable name %q", name)
	}
	if _, ok := b.decl.bounds[name]; ok {
		return TypeVar{}, NewDuplicateNameError(name, b.decl.owner)
	}
	b.decl.names = append(b.decl.names, name)
	b.decl.bounds[name] = nil
	return TypeVar{decl: b.decl, name: name}, nil
}

// Bound sets the upper bounds of v, replacing earlier ones.
// No bounds means Object.
func (b *DeclarationBuilder) Bound(v TypeVar, bounds ...Type) error {
	if b.decl.sealed {
		return malformedf("declaration %s is sealed", b.decl.owner)
	}
	if v.decl != b.decl {
		return malformedf("type variable %s is not declared by %s", v.name, b.decl.owner)
	}
	for _, t := range bounds {
		if err := checkBound(v, t); err != nil {
			return err
		}
	}
	b.decl.bounds[v.name] = append([]Type(nil), bounds...)
	return nil
}

// Add declares a variable with the given bounds.
func (b *DeclarationBuilder) Add(name string, bounds ...Type) (TypeVar, error) {
	v, err := b.Declare(name)
	if err != nil {
		return TypeVar{}, err
	}
	if err := b.Bound(v, bounds...); err != nil {
		b.decl.names = b.decl.names[:len(b.decl.names)-1]
		delete(b.decl.bounds, name)
		return TypeVar{}, err
	}
	return v, nil
}

func (b *DeclarationBuilder) Var(name string) (TypeVar, bool) {
	return b.decl.Lookup(name)
}

// Build seals and returns the declaration.
func (b *DeclarationBuilder) Build() *Declaration {
	b.decl.sealed = true
	return b.decl
}

func checkBound(v TypeVar, t Type) error {
	switch bt := t.(type) {
	case nil:
		return malformedf("nil bound for type variable %s", v.name)
	case Primitive:
		return malformedf("primitive bound %s for type variable %s", bt, v.name)
	case Wildcard:
		return malformedf("wildcard bound for type variable %s", v.name)
	case TypeVar:
		if bt == v {
			return malformedf("type variable %s bounded by itself", v.name)
		}
	}
	return nil
}

// NewTypeVariable creates a variable in a fresh declaration of its own.
func NewTypeVariable(name string, bounds ...Type) (TypeVar, error) {
	b := NewDeclarationBuilder(name)
	v, err := b.Add(name, bounds...)
	if err != nil {
		return TypeVar{}, err
	}
	b.Build()
	return v, nil
}
