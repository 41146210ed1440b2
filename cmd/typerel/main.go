// Command typerel answers subtyping questions about Java-like generic types.
//
//	typerel assignable 'List<? extends Number>' 'ArrayList<Integer>' --import 'java.util.*'
//	typerel supertypes 'Set<Integer>' --import 'java.util.*'
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Exit codes.
const (
	exitOK = iota
	exitFalse
	exitError
)

// errNotAssignable reports a negative answer of the assignable command.
var errNotAssignable = errors.New("not assignable")

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout, stderr)
	defer a.close()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errNotAssignable):
		return exitFalse
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	for _, hint := range strings.Split(errors.FlattenHints(err), "\n--\n") {
		if hint != "" {
			fmt.Fprintf(stderr, "Hint: %s\n", hint)
		}
	}
	return exitError
}
