package typeparser

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/internal/typesystem"
)

// ClassResolver looks up classes by fully qualified name.
type ClassResolver interface {
	LookupClass(name string) (*typesystem.Class, bool)
}

// Imports resolves simple class names. Single imports ("java.util.List")
// take precedence over wildcard imports ("java.util.*"); the wildcard
// prefixes always include fully qualified names and java.lang.
type Imports struct {
	single   map[string]string // simple name -> qualified name
	order    []string
	prefixes []string
}

func NewImports() *Imports {
	return &Imports{
		single:   make(map[string]string),
		prefixes: slices.Clone(config.DefaultImportPrefixes),
	}
}

// Add registers a single or wildcard import. Whitespace is ignored.
// Registering the same import twice has no effect; a single import whose
// simple name is already imported from another package is an error.
func (im *Imports) Add(spec string) error {
	s := strings.Join(strings.Fields(spec), "")
	if pkg, ok := strings.CutSuffix(s, config.WildcardImport); ok {
		if !typesystem.IsQualifiedName(pkg) {
			return errors.Wrapf(typesystem.ErrMalformedInput, "invalid import %q", spec)
		}
		prefix := pkg + config.PackageSep
		if !slices.Contains(im.prefixes, prefix) {
			im.prefixes = append(im.prefixes, prefix)
		}
		return nil
	}

	i := strings.LastIndex(s, config.PackageSep)
	if i < 0 || !typesystem.IsQualifiedName(s) {
		return errors.Wrapf(typesystem.ErrMalformedInput, "invalid import %q", spec)
	}
	simple := s[i+1:]
	if existing, ok := im.single[simple]; ok {
		if existing == s {
			return nil
		}
		return errors.WithHintf(
			typesystem.NewDuplicateNameError(simple, "imports"),
			"%s is already imported as %s", simple, existing)
	}
	im.single[simple] = s
	im.order = append(im.order, s)
	return nil
}

// Singles returns the single imports in registration order.
func (im *Imports) Singles() []string { return slices.Clone(im.order) }

// Prefixes returns the wildcard prefixes searched for simple names,
// including the implicit "" and "java.lang.".
func (im *Imports) Prefixes() []string { return slices.Clone(im.prefixes) }

// Resolve finds the class named name.
func (im *Imports) Resolve(name string, r ClassResolver) (*typesystem.Class, error) {
	if !strings.Contains(name, config.PackageSep) {
		if qualified, ok := im.single[name]; ok {
			if c, ok := r.LookupClass(qualified); ok {
				return c, nil
			}
			return nil, errors.Wrapf(ErrNameNotFound, "imported class %s", qualified)
		}
	}

	var found []*typesystem.Class
	for _, prefix := range im.prefixes {
		if c, ok := r.LookupClass(prefix + name); ok && !slices.Contains(found, c) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return nil, errors.Wrapf(ErrNameNotFound, "class %s", name)
	case 1:
		return found[0], nil
	}
	candidates := make([]string, len(found))
	for i, c := range found {
		candidates[i] = c.Name()
	}
	return nil, errors.WithHintf(
		errors.Wrapf(ErrAmbiguousName, "class %s", name),
		"candidates: %s", strings.Join(candidates, ", "))
}
