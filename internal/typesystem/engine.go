package typesystem

import "go.uber.org/zap"

// Mode decides how unbound type variables are treated.
type Mode int

const (
	// BoundMode treats an unbound type variable as a fixed but unknown
	// type: it is only assignable from itself.
	BoundMode Mode = iota
	// FreeMode treats an unbound type variable as a placeholder that
	// matches anything.
	FreeMode
)

func (m Mode) String() string {
	if m == FreeMode {
		return "free"
	}
	return "bound"
}

// Engine answers assignability, bound and supertype questions. It is
// immutable after construction and safe for concurrent use as long as its
// mapping is not modified.
type Engine struct {
	mode    Mode
	mapping *Mapping
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// WithMapping supplies explicit type variable bindings, consulted before
// the mode.
func WithMapping(m *Mapping) Option {
	return func(e *Engine) { e.mapping = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{mode: BoundMode, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.mapping == nil {
		e.mapping = NewMapping()
	}
	return e
}

// DefaultEngine returns an engine in bound mode with no bindings.
func DefaultEngine() *Engine { return NewEngine() }

func (e *Engine) Mode() Mode { return e.mode }

func (e *Engine) Mapping() *Mapping { return e.mapping }

func (e *Engine) Logger() *zap.Logger { return e.logger }
