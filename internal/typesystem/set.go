package typesystem

import (
	"iter"
	"slices"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// TypeSet is a duplicate-free collection of types that remembers insertion
// order. Membership is decided by the canonical key.
type TypeSet struct {
	index *set.HashSet[Type, string]
	items []Type
}

func NewTypeSet(types ...Type) *TypeSet {
	s := &TypeSet{index: set.NewHashSet[Type, string](len(types) + 4)}
	for _, t := range types {
		s.Insert(t)
	}
	return s
}

// Insert adds t and reports whether it was not already present.
func (s *TypeSet) Insert(t Type) bool {
	if !s.index.Insert(t) {
		return false
	}
	s.items = append(s.items, t)
	return true
}

func (s *TypeSet) InsertAll(other *TypeSet) {
	for _, t := range other.items {
		s.Insert(t)
	}
}

func (s *TypeSet) Contains(t Type) bool { return s.index.Contains(t) }

// Remove deletes t and reports whether it was present.
func (s *TypeSet) Remove(t Type) bool {
	if !s.index.Remove(t) {
		return false
	}
	key := t.Hash()
	s.items = slices.DeleteFunc(s.items, func(x Type) bool { return x.Hash() == key })
	return true
}

func (s *TypeSet) Len() int { return len(s.items) }

// Slice returns the elements in insertion order.
func (s *TypeSet) Slice() []Type { return slices.Clone(s.items) }

// All iterates the elements in insertion order.
func (s *TypeSet) All() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for _, t := range s.items {
			if !yield(t) {
				return
			}
		}
	}
}

// Equal reports whether both sets hold the same types, in any order.
func (s *TypeSet) Equal(other *TypeSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.items {
		if !other.Contains(t) {
			return false
		}
	}
	return true
}

// Strings returns the rendered elements in insertion order.
func (s *TypeSet) Strings() []string { return TypeNames(s.items) }

func (s *TypeSet) String() string {
	return "{" + strings.Join(s.Strings(), ", ") + "}"
}
