package typesystem

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/funvibe/typerel/internal/config"
)

// NewClass creates an unsealed class or interface with the given formal
// type parameters. The header is completed with SetSuperclass, AddInterface
// and BoundParam, then fixed by Seal.
func NewClass(name string, kind ClassKind, params ...string) (*Class, error) {
	if !IsQualifiedName(name) {
		return nil, malformedf("invalid class name %q", name)
	}
	b := NewDeclarationBuilder(name)
	for _, p := range params {
		if _, err := b.Declare(p); err != nil {
			return nil, err
		}
	}
	return &Class{name: name, kind: kind, decl: b.Declaration()}, nil
}

// BoundParam sets the upper bounds of the formal parameter name.
func (c *Class) BoundParam(name string, bounds ...Type) error {
	if c.sealed {
		return malformedf("class %s is sealed", c.name)
	}
	v, ok := c.decl.Lookup(name)
	if !ok {
		return malformedf("class %s has no type parameter %s", c.name, name)
	}
	b := &DeclarationBuilder{decl: c.decl}
	return b.Bound(v, bounds...)
}

// SetSuperclass sets the generic superclass. Only classes have one and it
// must name a class, raw or parameterized.
func (c *Class) SetSuperclass(t Type) error {
	if c.sealed {
		return malformedf("class %s is sealed", c.name)
	}
	if c.IsInterface() {
		return malformedf("interface %s cannot have a superclass", c.name)
	}
	raw := RawClass(t)
	if raw == nil {
		return malformedf("superclass of %s must be a class type, got %v", c.name, t)
	}
	if raw.IsInterface() {
		return malformedf("superclass of %s is the interface %s", c.name, raw.name)
	}
	if raw == c {
		return malformedf("class %s cannot extend itself", c.name)
	}
	c.super = t
	return nil
}

// AddInterface appends a directly implemented interface (for an interface,
// an extended one).
func (c *Class) AddInterface(t Type) error {
	if c.sealed {
		return malformedf("class %s is sealed", c.name)
	}
	raw := RawClass(t)
	if raw == nil || !raw.IsInterface() {
		return malformedf("%s cannot implement non-interface type %v", c.name, t)
	}
	if raw == c {
		return malformedf("interface %s cannot extend itself", c.name)
	}
	for _, i := range c.interfaces {
		if RawClass(i) == raw {
			return NewDuplicateNameError(raw.name, c.name)
		}
	}
	c.interfaces = append(c.interfaces, t)
	return nil
}

// Seal fixes the header. A class without an explicit superclass extends Object.
func (c *Class) Seal() {
	if c.sealed {
		return
	}
	if c.super == nil && !c.IsInterface() && c.name != config.TopTypeName {
		c.super = Top
	}
	c.decl.sealed = true
	c.sealed = true
}

// IsSubclassOf reports whether other is c or a raw supertype of c.
// Every class and interface is a subclass of Object.
func (c *Class) IsSubclassOf(other *Class) bool {
	if c == other || other.name == config.TopTypeName {
		return true
	}
	visited := set.New[*Class](8)
	stack := []*Class{c}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Insert(cur) {
			continue
		}
		if cur == other {
			return true
		}
		if s := cur.RawSuperclass(); s != nil {
			stack = append(stack, s)
		}
		stack = append(stack, cur.RawInterfaces()...)
	}
	return false
}

// HasSupertypeCycle reports whether c is reachable from its own supertypes.
func (c *Class) HasSupertypeCycle() bool {
	visited := set.New[*Class](8)
	var stack []*Class
	push := func(k *Class) {
		if s := k.RawSuperclass(); s != nil {
			stack = append(stack, s)
		}
		stack = append(stack, k.RawInterfaces()...)
	}
	push(c)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == c {
			return true
		}
		if visited.Insert(cur) {
			push(cur)
		}
	}
	return false
}
