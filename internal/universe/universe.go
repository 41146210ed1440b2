// Package universe holds the set of classes type strings are resolved
// against. Classes come from YAML documents, the embedded JDK subset or a
// SQLite catalog; the built-in java.lang classes are always present.
package universe

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/internal/typeparser"
	"github.com/funvibe/typerel/internal/typesystem"
)

// Universe is a registry of classes by qualified name. It is filled by a
// single owner and may be read concurrently afterwards.
type Universe struct {
	classes map[string]*typesystem.Class
	builtin int
	order   []*typesystem.Class
	logger  *zap.Logger
}

type Option func(*Universe)

func WithLogger(l *zap.Logger) Option {
	return func(u *Universe) {
		if l != nil {
			u.logger = l
		}
	}
}

// New returns a universe holding only the built-in classes.
func New(opts ...Option) *Universe {
	u := &Universe{
		classes: make(map[string]*typesystem.Class),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	for _, c := range typesystem.BuiltinClasses() {
		u.add(c)
	}
	u.builtin = len(u.order)
	return u
}

func (u *Universe) add(c *typesystem.Class) {
	u.classes[c.Name()] = c
	u.order = append(u.order, c)
}

// LookupClass implements typeparser.ClassResolver.
func (u *Universe) LookupClass(name string) (*typesystem.Class, bool) {
	c, ok := u.classes[name]
	return c, ok
}

// Classes returns every class in definition order, built-ins first.
func (u *Universe) Classes() []*typesystem.Class {
	return append([]*typesystem.Class(nil), u.order...)
}

// Defined returns the classes added with Define, in definition order.
func (u *Universe) Defined() []*typesystem.Class {
	return append([]*typesystem.Class(nil), u.order[u.builtin:]...)
}

func (u *Universe) Len() int { return len(u.order) }

// Define adds classes. Their headers may refer to each other in any order.
// Either all classes are added or, on error, none.
func (u *Universe) Define(specs ...ClassSpec) error {
	return u.define(nil, specs)
}

// DefineDocument adds the classes of doc, resolving simple names through
// its imports.
func (u *Universe) DefineDocument(doc *Document) error {
	return u.define(doc.Imports, doc.Classes)
}

// LoadYAML reads a YAML document from r and defines its classes.
func (u *Universe) LoadYAML(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "reading class definitions")
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return u.DefineDocument(doc)
}

// LoadFile defines the classes of the YAML file at path.
func (u *Universe) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return errors.Wrapf(u.LoadYAML(f), "loading %s", path)
}

// staged resolves the classes of a pending Define before the registry.
type staged struct {
	u       *Universe
	pending map[string]*typesystem.Class
}

func (s staged) LookupClass(name string) (*typesystem.Class, bool) {
	if c, ok := s.pending[name]; ok {
		return c, true
	}
	return s.u.LookupClass(name)
}

func (u *Universe) define(imports []string, specs []ClassSpec) error {
	res := staged{u: u, pending: make(map[string]*typesystem.Class, len(specs))}
	classes := make([]*typesystem.Class, len(specs))

	// Shells first so that headers can refer to any class of the batch.
	for i, spec := range specs {
		if _, ok := res.LookupClass(spec.Name); ok {
			return typesystem.NewDuplicateNameError(spec.Name, "universe")
		}
		kind, err := typesystem.ParseClassKind(spec.Kind)
		if err != nil {
			return errors.Wrapf(err, "class %s", spec.Name)
		}
		names := make([]string, len(spec.Params))
		for j, p := range spec.Params {
			names[j] = p.Name
		}
		c, err := typesystem.NewClass(spec.Name, kind, names...)
		if err != nil {
			return errors.Wrapf(err, "class %s", spec.Name)
		}
		classes[i] = c
		res.pending[spec.Name] = c
	}

	for i, spec := range specs {
		if err := u.defineHeader(res, imports, classes[i], spec); err != nil {
			return errors.Wrapf(err, "class %s", spec.Name)
		}
	}
	for _, c := range classes {
		if c.HasSupertypeCycle() {
			return errors.Wrapf(typesystem.ErrMalformedInput, "cyclic inheritance involving %s", c.Name())
		}
	}

	for _, c := range classes {
		c.Seal()
		u.add(c)
		u.logger.Debug("defined class",
			zap.String("name", c.Name()),
			zap.Stringer("kind", c.Kind()),
			zap.Int("arity", c.Arity()))
	}
	return nil
}

func (u *Universe) defineHeader(r typeparser.ClassResolver, imports []string, c *typesystem.Class, spec ClassSpec) error {
	p := typeparser.New(r,
		typeparser.WithTypeVariables(c.Params()...),
		typeparser.WithLogger(u.logger))
	for _, imp := range imports {
		if err := p.AddImport(imp); err != nil {
			return err
		}
	}

	for _, ps := range spec.Params {
		if len(ps.Bounds) == 0 {
			continue
		}
		bounds, err := parseAll(p, ps.Bounds)
		if err != nil {
			return errors.Wrapf(err, "bounds of %s", ps.Name)
		}
		if err := c.BoundParam(ps.Name, bounds...); err != nil {
			return err
		}
	}

	extends, err := parseSupertypes(p, spec.Extends)
	if err != nil {
		return err
	}
	implements, err := parseSupertypes(p, spec.Implements)
	if err != nil {
		return err
	}

	if c.IsInterface() {
		if len(implements) > 0 {
			return errors.Wrapf(typesystem.ErrMalformedInput,
				"interface %s cannot implement, use extends", c.Name())
		}
		implements = extends
	} else {
		if len(extends) > 1 {
			return errors.Wrapf(typesystem.ErrMalformedInput,
				"class %s extends %d classes", c.Name(), len(extends))
		}
		if len(extends) == 1 {
			if err := c.SetSuperclass(extends[0]); err != nil {
				return err
			}
		}
	}
	for _, t := range implements {
		if err := c.AddInterface(t); err != nil {
			return err
		}
	}
	return nil
}

func parseAll(p *typeparser.Parser, texts []string) ([]typesystem.Type, error) {
	out := make([]typesystem.Type, len(texts))
	for i, text := range texts {
		t, err := p.Parse(text)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

// parseSupertypes parses header types, which must be classes or
// parameterized types without wildcard arguments.
func parseSupertypes(p *typeparser.Parser, texts []string) ([]typesystem.Type, error) {
	types, err := parseAll(p, texts)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		switch typ := t.(type) {
		case *typesystem.Class:
		case typesystem.Parameterized:
			for _, a := range typ.Args {
				if _, ok := a.(typesystem.Wildcard); ok {
					return nil, errors.Wrapf(typesystem.ErrMalformedInput,
						"supertype %s has a wildcard argument", t)
				}
			}
		default:
			return nil, errors.Wrapf(typesystem.ErrMalformedInput,
				"supertype %s is not a class type", t)
		}
	}
	return types, nil
}

// Specs describes the defined classes in a form Define accepts. Names in
// headers are fully qualified.
func (u *Universe) Specs() []ClassSpec {
	defined := u.Defined()
	out := make([]ClassSpec, len(defined))
	for i, c := range defined {
		out[i] = specOf(c)
	}
	return out
}

// Document returns Specs as a document.
func (u *Universe) Document() *Document {
	return &Document{Classes: u.Specs()}
}

func specOf(c *typesystem.Class) ClassSpec {
	spec := ClassSpec{Name: c.Name()}
	if c.IsInterface() {
		spec.Kind = config.IfaceKindName
	}
	for _, v := range c.Params() {
		ps := ParamSpec{Name: v.Name()}
		for _, b := range v.Bounds() {
			if b != typesystem.Type(typesystem.Top) {
				ps.Bounds = append(ps.Bounds, format(b))
			}
		}
		spec.Params = append(spec.Params, ps)
	}
	if s := c.Superclass(); s != nil && s != typesystem.Type(typesystem.Top) {
		spec.Extends = StringList{format(s)}
	}
	for _, i := range c.Interfaces() {
		if c.IsInterface() {
			spec.Extends = append(spec.Extends, format(i))
		} else {
			spec.Implements = append(spec.Implements, format(i))
		}
	}
	return spec
}

func format(t typesystem.Type) string {
	return typesystem.Format(t, typesystem.FormatBareVariables)
}
