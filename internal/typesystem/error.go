package typesystem

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrArityMismatch is returned when a generic class is given the wrong
	// number of type arguments.
	ErrArityMismatch = errors.New("arity mismatch")
	// ErrDuplicateName is returned for a name declared twice in one scope.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrMalformedInput is returned for structurally invalid input.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNotPrimitive is returned when a primitive predicate is given a
	// type that is neither primitive nor boxed.
	ErrNotPrimitive = errors.New("not a primitive type")
)

// ArityMismatchError indicates a wrong number of type arguments.
type ArityMismatchError struct {
	Class string
	Want  int
	Got   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s declares %d type parameters, got %d type arguments", e.Class, e.Want, e.Got)
}

func (e *ArityMismatchError) Is(target error) bool { return target == ErrArityMismatch }

func newArityMismatchError(raw *Class, got int) error {
	return errors.WithStack(&ArityMismatchError{Class: raw.Name(), Want: raw.Arity(), Got: got})
}

// DuplicateNameError indicates a name that is already declared in Scope.
type DuplicateNameError struct {
	Name  string
	Scope string
}

func (e *DuplicateNameError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("duplicate name: %s", e.Name)
	}
	return fmt.Sprintf("duplicate name: %s in %s", e.Name, e.Scope)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// NewDuplicateNameError returns a DuplicateNameError with a stack trace.
func NewDuplicateNameError(name, scope string) error {
	return errors.WithStack(&DuplicateNameError{Name: name, Scope: scope})
}

func malformedf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrMalformedInput, format, args...)
}
