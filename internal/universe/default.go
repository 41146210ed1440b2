package universe

import (
	_ "embed"

	"github.com/cockroachdb/errors"
)

//go:embed jdk.yaml
var jdkYAML []byte

// Default returns a new universe with the embedded JDK collection classes.
func Default(opts ...Option) *Universe {
	u := New(opts...)
	doc, err := ParseDocument(jdkYAML)
	if err == nil {
		err = u.DefineDocument(doc)
	}
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "embedded class definitions"))
	}
	return u
}
