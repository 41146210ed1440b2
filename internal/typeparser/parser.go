// Package typeparser turns type strings such as
// "Map<String, ? extends List<T extends Number>>" into typesystem values.
//
// Grammar:
//
//	Type     := Name [ '<' Arg { ',' Arg } '>' ] { '[' ']' } | Primitive { '[' ']' } | Variable
//	Arg      := Type | '?' [ 'super' Type { '&' Type } ] [ 'extends' Type { '&' Type } ]
//	Variable := Ident [ 'extends' Type { '&' Type } ]
//
// A name is a type variable when it was registered with AddTypeVariableName
// or WithTypeVariables. Its first occurrence in a parse may carry bounds;
// later occurrences refer to the same variable.
package typeparser

import (
	"slices"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/internal/typesystem"
)

// Parser parses type strings against a class resolver. A Parser is
// configured once and then used from one goroutine at a time.
type Parser struct {
	resolver ClassResolver
	imports  *Imports
	varNames []string // longest first
	prebound map[string]typesystem.TypeVar
	maxDepth int
	logger   *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithTypeVariables makes existing variables available by name, e.g. the
// formal parameters of a class while its header is parsed. They cannot be
// given bounds by the parsed text.
func WithTypeVariables(vars ...typesystem.TypeVar) Option {
	return func(p *Parser) {
		for _, v := range vars {
			p.prebound[v.Name()] = v
		}
	}
}

// WithMaxDepth limits the nesting of type arguments.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

func New(resolver ClassResolver, opts ...Option) *Parser {
	p := &Parser{
		resolver: resolver,
		imports:  NewImports(),
		prebound: make(map[string]typesystem.TypeVar),
		maxDepth: config.DefaultMaxParseDepth,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddImport registers "pkg.Class" or "pkg.*".
func (p *Parser) AddImport(spec string) error {
	return p.imports.Add(spec)
}

func (p *Parser) Imports() *Imports { return p.imports }

// AddTypeVariableName registers name as a type variable name.
func (p *Parser) AddTypeVariableName(name string) error {
	if !typesystem.IsIdentifier(name) {
		return errors.Wrapf(typesystem.ErrMalformedInput, "invalid type variable name %q", name)
	}
	if slices.Contains(p.varNames, name) {
		return nil
	}
	p.varNames = append(p.varNames, name)
	sort.SliceStable(p.varNames, func(i, j int) bool {
		return len(p.varNames[i]) > len(p.varNames[j])
	})
	return nil
}

// TypeVariableNames returns the registered names, longest first.
func (p *Parser) TypeVariableNames() []string { return slices.Clone(p.varNames) }

func (p *Parser) isVariableName(name string) bool {
	if _, ok := p.prebound[name]; ok {
		return true
	}
	return slices.Contains(p.varNames, name)
}

// Parse parses text. Type variables get a fresh declaration.
func (p *Parser) Parse(text string) (typesystem.Type, error) {
	s := p.NewScope()
	t, err := s.Parse(text)
	if err != nil {
		return nil, err
	}
	s.builder.Build()
	return t, nil
}

// Scope parses several type strings whose type variables are shared:
// "T" in two strings parsed by the same scope is the same variable.
type Scope struct {
	p        *Parser
	builder  *typesystem.DeclarationBuilder
	declared map[string]typesystem.TypeVar
}

func (p *Parser) NewScope() *Scope {
	return &Scope{
		p:        p,
		builder:  typesystem.NewDeclarationBuilder("type string"),
		declared: make(map[string]typesystem.TypeVar),
	}
}

// Var returns a variable declared by an earlier parse in this scope, or a
// pre-bound variable.
func (s *Scope) Var(name string) (typesystem.TypeVar, bool) {
	if v, ok := s.p.prebound[name]; ok {
		return v, true
	}
	v, ok := s.declared[name]
	return v, ok
}

// Declaration returns the declaration holding the variables of this scope.
func (s *Scope) Declaration() *typesystem.Declaration { return s.builder.Declaration() }

func (s *Scope) Parse(text string) (typesystem.Type, error) {
	st := &state{scope: s, input: text, toks: scan(text)}
	t, err := st.parseArg()
	if err != nil {
		return nil, err
	}
	if tok := st.peek(); tok.kind != tokEOF {
		return nil, st.errorf(tok, "unexpected %s", tok)
	}
	s.p.logger.Debug("parsed type", zap.String("input", text), zap.Stringer("type", t))
	return t, nil
}

type state struct {
	scope *Scope
	input string
	toks  []token
	pos   int
	depth int
}

func (st *state) peek() token { return st.toks[st.pos] }

func (st *state) next() token {
	t := st.toks[st.pos]
	if t.kind != tokEOF {
		st.pos++
	}
	return t
}

func (st *state) accept(kind tokenKind) bool {
	if st.peek().kind == kind {
		st.next()
		return true
	}
	return false
}

func (st *state) peekKeyword(kw string) bool {
	t := st.peek()
	return t.kind == tokIdent && t.text == kw
}

func (st *state) expect(kind tokenKind) (token, error) {
	t := st.peek()
	if t.kind != kind {
		return t, st.errorf(t, "expected %s, found %s", tokenNames[kind], t)
	}
	return st.next(), nil
}

func (st *state) errorf(at token, format string, args ...interface{}) error {
	return errors.WithStack(&SyntaxError{
		Input:  st.input,
		Offset: at.offset,
		Msg:    errors.Newf(format, args...).Error(),
	})
}

// wrap attaches the position of at to an error from a builder or resolver.
func (st *state) wrap(err error, at token) error {
	return errors.Wrapf(err, "at offset %d in %q", at.offset, st.input)
}

func (st *state) parseArg() (typesystem.Type, error) {
	if st.peek().kind == tokQuestion {
		return st.parseWildcard()
	}
	return st.parseType()
}

func (st *state) parseWildcard() (typesystem.Type, error) {
	st.next()
	var lower, upper []typesystem.Type
	var err error
	if st.peekKeyword(config.SuperKeyword) {
		st.next()
		if lower, err = st.parseBoundList(); err != nil {
			return nil, err
		}
	}
	if st.peekKeyword(config.ExtendsKeyword) {
		st.next()
		if upper, err = st.parseBoundList(); err != nil {
			return nil, err
		}
	}
	return typesystem.NewWildcard(lower, upper), nil
}

func (st *state) parseBoundList() ([]typesystem.Type, error) {
	var bounds []typesystem.Type
	for {
		t, err := st.parseType()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, t)
		if !st.accept(tokAmp) {
			return bounds, nil
		}
	}
}

func (st *state) parseType() (typesystem.Type, error) {
	st.depth++
	defer func() { st.depth-- }()
	if st.depth > st.scope.p.maxDepth {
		return nil, st.errorf(st.peek(), "type nested deeper than %d levels", st.scope.p.maxDepth)
	}

	start := st.peek()
	t, err := st.parsePrimary()
	if err != nil {
		return nil, err
	}
	for st.peek().kind == tokLBrack {
		st.next()
		if _, err := st.expect(tokRBrack); err != nil {
			return nil, err
		}
		arr, err := typesystem.ArrayOf(t)
		if err != nil {
			return nil, st.wrap(err, start)
		}
		t = arr
	}
	return t, nil
}

func (st *state) parsePrimary() (typesystem.Type, error) {
	start := st.peek()
	if start.kind != tokIdent {
		return nil, st.errorf(start, "expected type, found %s", start)
	}
	if start.text == config.ExtendsKeyword || start.text == config.SuperKeyword {
		return nil, st.errorf(start, "unexpected keyword %q", start.text)
	}
	st.next()

	if st.peek().kind != tokDot && st.scope.p.isVariableName(start.text) {
		return st.parseVariable(start)
	}

	name := start.text
	for st.accept(tokDot) {
		id, err := st.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		name += config.PackageSep + id.text
	}

	if prim, ok := typesystem.PrimitiveByName(name); ok {
		if st.peek().kind == tokLT {
			return nil, st.errorf(st.peek(), "primitive type %s cannot have type arguments", name)
		}
		return prim, nil
	}

	class, err := st.scope.p.imports.Resolve(name, st.scope.p.resolver)
	if err != nil {
		return nil, st.wrap(err, start)
	}
	if !st.accept(tokLT) {
		return class, nil
	}

	b := typesystem.NewTypeBuilder(class)
	for {
		arg, err := st.parseArg()
		if err != nil {
			return nil, err
		}
		b.WithType(arg)
		if st.accept(tokComma) {
			continue
		}
		if _, err := st.expect(tokGT); err != nil {
			return nil, err
		}
		break
	}
	t, err := b.Build()
	if err != nil {
		return nil, st.wrap(err, start)
	}
	return t, nil
}

func (st *state) parseVariable(tok token) (typesystem.Type, error) {
	s := st.scope
	if v, ok := s.Var(tok.text); ok {
		if st.peekKeyword(config.ExtendsKeyword) {
			return nil, st.wrap(typesystem.NewDuplicateNameError(tok.text, "type string"), st.peek())
		}
		return v, nil
	}

	v, err := s.builder.Declare(tok.text)
	if err != nil {
		return nil, st.wrap(err, tok)
	}
	s.declared[tok.text] = v
	if !st.peekKeyword(config.ExtendsKeyword) {
		return v, nil
	}
	st.next()
	bounds, err := st.parseBoundList()
	if err != nil {
		return nil, err
	}
	if err := s.builder.Bound(v, bounds...); err != nil {
		return nil, st.wrap(err, tok)
	}
	return v, nil
}
