package typeparser

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/funvibe/typerel/internal/typesystem"
)

var (
	// ErrNameNotFound is returned when a simple or qualified name does not
	// resolve to a class.
	ErrNameNotFound = errors.New("name not found")
	// ErrAmbiguousName is returned when two wildcard imports both provide
	// a class for a simple name.
	ErrAmbiguousName = errors.New("ambiguous name")
)

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at offset %d in %q", e.Msg, e.Offset, e.Input)
}

func (e *SyntaxError) Is(target error) bool { return target == typesystem.ErrMalformedInput }
