package typesystem

import "strings"

// Mapping binds type variables to types for the assignability engine.
type Mapping struct {
	bindings map[TypeVar]Type
	order    []TypeVar
}

func NewMapping() *Mapping {
	return &Mapping{bindings: make(map[TypeVar]Type)}
}

// Put binds v to t. Binding a variable to itself is ignored and a nil t
// removes the binding.
func (m *Mapping) Put(v TypeVar, t Type) {
	if t == nil {
		if _, ok := m.bindings[v]; ok {
			delete(m.bindings, v)
			for i, o := range m.order {
				if o == v {
					m.order = append(m.order[:i], m.order[i+1:]...)
					break
				}
			}
		}
		return
	}
	if tv, ok := t.(TypeVar); ok && tv == v {
		return
	}
	if _, ok := m.bindings[v]; !ok {
		m.order = append(m.order, v)
	}
	m.bindings[v] = t
}

// Get returns the type bound to v, following chains of variables bound to
// variables. A chain that leads back to v counts as unbound.
func (m *Mapping) Get(v TypeVar) (Type, bool) {
	if m == nil {
		return nil, false
	}
	t, ok := m.bindings[v]
	if !ok {
		return nil, false
	}
	seen := map[TypeVar]bool{v: true}
	for {
		next, isVar := t.(TypeVar)
		if !isVar {
			return t, true
		}
		if seen[next] {
			if next == v {
				return nil, false
			}
			return t, true
		}
		seen[next] = true
		bound, ok := m.bindings[next]
		if !ok {
			return t, true
		}
		t = bound
	}
}

// Vars returns the bound variables in binding order.
func (m *Mapping) Vars() []TypeVar {
	if m == nil {
		return nil
	}
	return append([]TypeVar(nil), m.order...)
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// Subst returns the resolved bindings as a substitution.
func (m *Mapping) Subst() Subst {
	s := make(Subst, m.Len())
	for _, v := range m.Vars() {
		if t, ok := m.Get(v); ok {
			s[v] = t
		}
	}
	return s
}

func (m *Mapping) String() string {
	parts := make([]string, 0, m.Len())
	for _, v := range m.Vars() {
		parts = append(parts, v.name+" := "+Format(m.bindings[v], FormatBareVariables))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
