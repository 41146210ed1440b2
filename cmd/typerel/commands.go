package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/funvibe/typerel/internal/typesystem"
	"github.com/funvibe/typerel/internal/universe"
	"github.com/funvibe/typerel/pkg/typerel"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		debug    bool
		erase    bool
		bindings []string
	)
	cmd := &cobra.Command{
		Use:   "parse TYPE...",
		Short: "Parse type strings and print them fully qualified",
		Long: `Parse type strings in one scope and print their canonical form.
A type variable used in several arguments is the same variable.

--bind T=TYPE replaces the variable T by TYPE before printing and --erase
prints the erasure of each type.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := make([]typerel.Check, 0, len(bindings))
			for _, b := range bindings {
				c, err := typerel.ParseBinding(b)
				if err != nil {
					return err
				}
				checks = append(checks, c)
			}
			types, err := a.session.Instantiate(args, checks...)
			if err != nil {
				return err
			}
			for _, t := range types {
				if erase {
					t = typesystem.Erase(t)
				}
				if debug {
					fmt.Fprintln(a.stdout, typesystem.DebugString(t))
				} else {
					fmt.Fprintln(a.stdout, t)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "show type variable declarations")
	cmd.Flags().BoolVar(&erase, "erase", false, "print erased types")
	cmd.Flags().StringArrayVar(&bindings, "bind", nil, "replace a type variable, as NAME=TYPE (repeatable)")
	return cmd
}

func (a *app) assignableCmd() *cobra.Command {
	var (
		free     bool
		bindings []string
	)
	cmd := &cobra.Command{
		Use:   "assignable TO FROM",
		Short: "Check whether FROM is assignable to TO",
		Long: `Print true when a value of type FROM may be assigned to a location of
type TO, false otherwise. The exit status is 1 for false.

Unbound type variables only match themselves unless --free is given.
--bind T=TYPE fixes the variable T, which must occur in TO or FROM.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var checks []typerel.Check
			if free {
				checks = append(checks, typerel.Free())
			}
			for _, b := range bindings {
				c, err := typerel.ParseBinding(b)
				if err != nil {
					return err
				}
				checks = append(checks, c)
			}
			ok, err := a.session.IsAssignable(args[0], args[1], checks...)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, a.verdict(ok))
			if !ok {
				return errNotAssignable
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&free, "free", false, "let unbound type variables match anything")
	cmd.Flags().StringArrayVar(&bindings, "bind", nil, "bind a type variable, NAME=TYPE (repeatable)")
	return cmd
}

func (a *app) supertypesCmd() *cobra.Command {
	var raw, generic bool
	cmd := &cobra.Command{
		Use:   "supertypes TYPE",
		Short: "List the supertypes of a type",
		Long: `List every type TYPE is assignable to. --raw lists only the raw classes,
--generic the generic ancestors as written in their class headers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				set *typesystem.TypeSet
				err error
			)
			switch {
			case raw:
				set, err = a.session.RawSupertypes(args[0])
			case generic:
				set, err = a.session.GenericSupertypes(args[0])
			default:
				set, err = a.session.Supertypes(args[0])
			}
			if err != nil {
				return err
			}
			for _, s := range set.Strings() {
				fmt.Fprintln(a.stdout, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "list raw supertypes only")
	cmd.Flags().BoolVar(&generic, "generic", false, "list generic supertypes as declared")
	cmd.MarkFlagsMutuallyExclusive("raw", "generic")
	return cmd
}

func (a *app) boundsCmd() *cobra.Command {
	var old, add []string
	cmd := &cobra.Command{
		Use:       "bounds upper|lower",
		Short:     "Merge type bounds",
		Long:      `Add the --add bounds to the --old bounds and print the minimal result.`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"upper", "lower"},
		RunE: func(cmd *cobra.Command, args []string) error {
			merge := a.session.MergeUpperBounds
			if args[0] == "lower" {
				merge = a.session.MergeLowerBounds
			}
			bounds, err := merge(old, add)
			if err != nil {
				return err
			}
			for _, b := range bounds {
				fmt.Fprintln(a.stdout, b)
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&old, "old", nil, "existing bound (repeatable)")
	cmd.Flags().StringArrayVar(&add, "add", nil, "bound to add (repeatable)")
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the loaded classes to a catalog",
		Long: `Write every class except the built-ins to FILE: YAML when the name ends
in .yaml or .yml, otherwise a SQLite catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := a.session.Universe()
			path := args[0]
			switch strings.ToLower(filepath.Ext(path)) {
			case ".yaml", ".yml":
				data, err := u.Document().Marshal()
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return errors.Wrapf(err, "writing %s", path)
				}
			default:
				db, err := universe.OpenCatalog(cmd.Context(), path)
				if err != nil {
					return err
				}
				defer db.Close()
				if err := universe.WriteCatalog(cmd.Context(), db, u.Specs()); err != nil {
					return err
				}
			}
			fmt.Fprintf(a.stdout, "exported %d classes to %s\n", len(u.Defined()), path)
			return nil
		},
	}
}
