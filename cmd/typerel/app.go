package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/funvibe/typerel/internal/config"
	"github.com/funvibe/typerel/pkg/typerel"
)

type app struct {
	stdout, stderr io.Writer

	configPath string
	universes  []string
	catalog    string
	imports    []string
	vars       []string
	verbose    bool
	noColor    bool

	logger  *zap.Logger
	session *typerel.Session
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr, logger: zap.NewNop()}
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "typerel",
		Short: "Subtyping queries over Java-like generic types",
		Long: `typerel parses Java-like type strings and answers assignability,
supertype and bound questions about them.

Classes come from the embedded java.util subset, YAML universe files
(--universe) and SQLite catalogs (--catalog). Settings are also read from
typerel.yaml in the current directory or a parent, or from the file named by
$TYPEREL_CONFIG.

Examples:
  typerel parse 'java.util.Map<String, ? extends Number>'
  typerel assignable -i 'java.util.*' 'List<? extends Number>' 'ArrayList<Integer>'
  typerel assignable --var T --bind T=String 'java.util.List<T>' 'java.util.List<String>'
  typerel supertypes --raw java.util.ArrayList
  typerel bounds upper --old Number --old String --add Integer`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "configuration file (default: search for "+config.ConfigFileName+")")
	f.StringArrayVarP(&a.universes, "universe", "u", nil, "YAML class universe file (repeatable)")
	f.StringVar(&a.catalog, "catalog", "", "SQLite class catalog")
	f.StringArrayVarP(&a.imports, "import", "i", nil, "import such as java.util.List or java.util.* (repeatable)")
	f.StringArrayVar(&a.vars, "var", nil, "type variable name (repeatable)")
	f.BoolVarP(&a.verbose, "verbose", "v", false, "log to stderr")
	f.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.parseCmd(),
		a.assignableCmd(),
		a.supertypesCmd(),
		a.boundsCmd(),
		a.exportCmd(),
	)
	return root
}

// setup builds the logger and the session shared by all commands.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.verbose {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.AddSync(a.stderr),
			zap.DebugLevel)
		a.logger = zap.New(core, zap.Development())
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	cfg.Universe = append(cfg.Universe, a.universes...)
	if a.catalog != "" {
		cfg.Catalog = a.catalog
	}
	cfg.Imports = append(cfg.Imports, a.imports...)
	cfg.TypeVariables = append(cfg.TypeVariables, a.vars...)

	a.session, err = typerel.FromConfig(cmd.Context(), cfg, a.logger)
	return err
}

func (a *app) loadConfig() (*config.Config, error) {
	path := a.configPath
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return config.ParseConfig(nil, config.ConfigFileName)
	}
	a.logger.Debug("using config", zap.String("path", path))
	return config.LoadConfig(path)
}

// colored reports whether verdicts are printed with ANSI colors.
func (a *app) colored() bool {
	if a.noColor {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := a.stdout.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func (a *app) verdict(ok bool) string {
	text, color := "false", ansiRed
	if ok {
		text, color = "true", ansiGreen
	}
	if !a.colored() {
		return text
	}
	return color + text + ansiReset
}
