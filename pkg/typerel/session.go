// Package typerel answers subtyping questions about Java-like generic types
// written as strings.
//
//	s, _ := typerel.NewSession(typerel.WithImports("java.util.*"))
//	ok, _ := s.IsAssignable("List<? extends Number>", "ArrayList<Integer>") // true
package typerel

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/internal/typeparser"
	"github.com/funvibe/typerel/internal/typesystem"
	"github.com/funvibe/typerel/internal/universe"
)

// Session bundles a class universe with parser and engine settings. A
// session is immutable after NewSession and may be shared by goroutines.
type Session struct {
	universe *universe.Universe
	imports  []string
	vars     []string
	mode     typesystem.Mode
	maxDepth int
	logger   *zap.Logger
}

type Option func(*Session)

// WithUniverse replaces the default universe.
func WithUniverse(u *universe.Universe) Option {
	return func(s *Session) { s.universe = u }
}

// WithImports adds single ("java.util.List") or wildcard ("java.util.*")
// imports.
func WithImports(imports ...string) Option {
	return func(s *Session) { s.imports = append(s.imports, imports...) }
}

// WithTypeVariables adds names the parser treats as type variables.
func WithTypeVariables(names ...string) Option {
	return func(s *Session) { s.vars = append(s.vars, names...) }
}

func WithMode(m typesystem.Mode) Option {
	return func(s *Session) { s.mode = m }
}

func WithMaxDepth(n int) Option {
	return func(s *Session) { s.maxDepth = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a session. Without WithUniverse it uses
// universe.Default. Imports and variable names are validated here.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		mode:     typesystem.BoundMode,
		maxDepth: config.DefaultMaxParseDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.universe == nil {
		s.universe = universe.Default(universe.WithLogger(s.logger))
	}
	if _, err := s.NewParser(); err != nil {
		return nil, err
	}
	return s, nil
}

// FromConfig builds a session from a tool configuration, loading its
// universe files and catalog.
func FromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var u *universe.Universe
	if cfg.NoDefaultUniverse {
		u = universe.New(universe.WithLogger(logger))
	} else {
		u = universe.Default(universe.WithLogger(logger))
	}
	for _, path := range cfg.Universe {
		if err := u.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if cfg.Catalog != "" {
		db, err := universe.OpenCatalog(ctx, cfg.Catalog)
		if err != nil {
			return nil, err
		}
		err = u.LoadCatalog(ctx, db)
		db.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "loading catalog %s", cfg.Catalog)
		}
	}
	logger.Debug("universe loaded", zap.Int("classes", u.Len()))

	mode := typesystem.BoundMode
	if cfg.FreeMode() {
		mode = typesystem.FreeMode
	}
	return NewSession(
		WithUniverse(u),
		WithImports(cfg.Imports...),
		WithTypeVariables(cfg.TypeVariables...),
		WithMode(mode),
		WithMaxDepth(cfg.MaxDepth),
		WithLogger(logger))
}

func (s *Session) Universe() *universe.Universe { return s.universe }

func (s *Session) Mode() typesystem.Mode { return s.mode }

// NewParser returns a parser configured with the session's imports and
// type variable names.
func (s *Session) NewParser() (*typeparser.Parser, error) {
	p := typeparser.New(s.universe,
		typeparser.WithMaxDepth(s.maxDepth),
		typeparser.WithLogger(s.logger))
	for _, imp := range s.imports {
		if err := p.AddImport(imp); err != nil {
			return nil, err
		}
	}
	for _, name := range s.vars {
		if err := p.AddTypeVariableName(name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Engine returns an engine in the session's mode with the given bindings,
// which may be nil.
func (s *Session) Engine(m *typesystem.Mapping) *typesystem.Engine {
	return typesystem.NewEngine(
		typesystem.WithMode(s.mode),
		typesystem.WithMapping(m),
		typesystem.WithLogger(s.logger))
}

// Parse parses a single type string.
func (s *Session) Parse(text string) (typesystem.Type, error) {
	p, err := s.NewParser()
	if err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// ParseAll parses texts in one scope, so that a type variable named in
// several of them is the same variable.
func (s *Session) ParseAll(texts ...string) ([]typesystem.Type, error) {
	p, err := s.NewParser()
	if err != nil {
		return nil, err
	}
	return parseIn(p.NewScope(), texts)
}

func parseIn(scope *typeparser.Scope, texts []string) ([]typesystem.Type, error) {
	out := make([]typesystem.Type, len(texts))
	for i, text := range texts {
		t, err := scope.Parse(text)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// Check configures a single assignability check.
type Check func(*check)

type check struct {
	mode     typesystem.Mode
	bindings [][2]string
}

// Free checks in free mode regardless of the session mode.
func Free() Check {
	return func(c *check) { c.mode = typesystem.FreeMode }
}

// Bind binds the type variable name, which must occur in one of the
// checked types, to the type text.
func Bind(name, text string) Check {
	return func(c *check) { c.bindings = append(c.bindings, [2]string{name, text}) }
}

// ParseBinding splits "T=java.lang.String" into a Bind check.
func ParseBinding(s string) (Check, error) {
	name, text, ok := strings.Cut(s, "=")
	name, text = strings.TrimSpace(name), strings.TrimSpace(text)
	if !ok || name == "" || text == "" {
		return nil, errors.Wrapf(typesystem.ErrMalformedInput, "binding %q: expected NAME=TYPE", s)
	}
	return Bind(name, text), nil
}

// IsAssignable reports whether a value of type from may be assigned to a
// location of type to. Both strings and the bound types share one scope.
func (s *Session) IsAssignable(to, from string, checks ...Check) (bool, error) {
	c := check{mode: s.mode}
	for _, fn := range checks {
		fn(&c)
	}
	p, err := s.NewParser()
	if err != nil {
		return false, err
	}
	scope := p.NewScope()
	types, err := parseIn(scope, []string{to, from})
	if err != nil {
		return false, err
	}

	m, err := bindIn(scope, c.bindings)
	if err != nil {
		return false, err
	}

	e := typesystem.NewEngine(
		typesystem.WithMode(c.mode),
		typesystem.WithMapping(m),
		typesystem.WithLogger(s.logger))
	ok := e.IsAssignable(types[0], types[1])
	s.logger.Debug("assignability",
		zap.Stringer("to", types[0]),
		zap.Stringer("from", types[1]),
		zap.Stringer("mode", c.mode),
		zap.Bool("result", ok))
	return ok, nil
}

// Instantiate parses texts in one scope and replaces the type variables
// named by Bind checks with their bound types. Other checks are ignored.
func (s *Session) Instantiate(texts []string, checks ...Check) ([]typesystem.Type, error) {
	var c check
	for _, fn := range checks {
		fn(&c)
	}
	p, err := s.NewParser()
	if err != nil {
		return nil, err
	}
	scope := p.NewScope()
	types, err := parseIn(scope, texts)
	if err != nil {
		return nil, err
	}
	m, err := bindIn(scope, c.bindings)
	if err != nil {
		return nil, err
	}
	subst := m.Subst()
	for i, t := range types {
		types[i] = t.Apply(subst)
	}
	return types, nil
}

func bindIn(scope *typeparser.Scope, bindings [][2]string) (*typesystem.Mapping, error) {
	m := typesystem.NewMapping()
	for _, b := range bindings {
		v, ok := scope.Var(b[0])
		if !ok {
			return nil, errors.Wrapf(typeparser.ErrNameNotFound, "bound type variable %s", b[0])
		}
		t, err := scope.Parse(b[1])
		if err != nil {
			return nil, errors.Wrapf(err, "binding of %s", b[0])
		}
		m.Put(v, t)
	}
	return m, nil
}

// Supertypes returns every type the parsed text is assignable to.
func (s *Session) Supertypes(text string) (*typesystem.TypeSet, error) {
	t, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	return s.Engine(nil).Supertypes(t), nil
}

// RawSupertypes returns the raw classes the parsed text is a subtype of.
func (s *Session) RawSupertypes(text string) (*typesystem.TypeSet, error) {
	t, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	return s.Engine(nil).RawSupertypes(t), nil
}

// GenericSupertypes returns the generic ancestors of the parsed text as
// declared in their class headers.
func (s *Session) GenericSupertypes(text string) (*typesystem.TypeSet, error) {
	t, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	return s.Engine(nil).GenericSupertypes(t), nil
}

// MergeUpperBounds parses old and add in one scope and merges them as
// upper bounds.
func (s *Session) MergeUpperBounds(old, add []string) ([]typesystem.Type, error) {
	return s.mergeBounds(old, add, (*typesystem.Engine).MergeUpperBounds)
}

// MergeLowerBounds parses old and add in one scope and merges them as
// lower bounds.
func (s *Session) MergeLowerBounds(old, add []string) ([]typesystem.Type, error) {
	return s.mergeBounds(old, add, (*typesystem.Engine).MergeLowerBounds)
}

func (s *Session) mergeBounds(old, add []string, merge func(*typesystem.Engine, []typesystem.Type, []typesystem.Type) []typesystem.Type) ([]typesystem.Type, error) {
	types, err := s.ParseAll(append(append([]string(nil), old...), add...)...)
	if err != nil {
		return nil, err
	}
	return merge(s.Engine(nil), types[:len(old)], types[len(old):]), nil
}
