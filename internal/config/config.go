package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Mode names accepted in typerel.yaml.
const (
	ModeBound = "bound"
	ModeFree  = "free"
)

// Config represents the top-level typerel.yaml configuration.
type Config struct {
	// Universe lists YAML class universe files loaded on top of the
	// default universe. Relative paths are resolved against the config file.
	Universe []string `yaml:"universe,omitempty"`

	// Catalog is an optional SQLite class catalog (relative paths as above).
	Catalog string `yaml:"catalog,omitempty"`

	// Imports are registered with every parser, e.g. "java.util.*".
	Imports []string `yaml:"imports,omitempty"`

	// TypeVariables are the names recognized as type variables by the parser.
	TypeVariables []string `yaml:"type_variables,omitempty"`

	// Mode is "bound" (default) or "free".
	Mode string `yaml:"mode,omitempty"`

	// MaxDepth limits type argument nesting. Defaults to DefaultMaxParseDepth.
	MaxDepth int `yaml:"max_depth,omitempty"`

	// NoDefaultUniverse skips the embedded java.util universe.
	NoDefaultUniverse bool `yaml:"no_default_universe,omitempty"`
}

// LoadConfig reads and parses a typerel.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses typerel.yaml content from bytes.
// The path argument is used for error messages and to resolve relative paths.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	cfg.setDefaults(filepath.Dir(path))
	return &cfg, nil
}

// FindConfig returns the path named by TYPEREL_CONFIG, or searches for
// typerel.yaml starting from dir and walking up to parent directories.
// An empty path and nil error mean no config was found.
func FindConfig(dir string) (string, error) {
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env, nil
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(err, "resolving directory")
	}

	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	switch c.Mode {
	case "", ModeBound, ModeFree:
	default:
		return errors.Newf("mode %q: expected %q or %q", c.Mode, ModeBound, ModeFree)
	}
	if c.MaxDepth < 0 {
		return errors.Newf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	for i, imp := range c.Imports {
		if strings.TrimSpace(imp) == "" {
			return errors.Newf("imports[%d]: empty import", i)
		}
	}
	seen := make(map[string]bool)
	for i, name := range c.TypeVariables {
		if name == "" {
			return errors.Newf("type_variables[%d]: empty name", i)
		}
		if seen[name] {
			return errors.Newf("type_variables[%d]: duplicate name %q", i, name)
		}
		seen[name] = true
	}
	for i, u := range c.Universe {
		if u == "" {
			return errors.Newf("universe[%d]: empty path", i)
		}
	}
	return nil
}

// FreeMode reports whether type variables are matched in free mode.
func (c *Config) FreeMode() bool {
	return c.Mode == ModeFree
}

func (c *Config) setDefaults(dir string) {
	if c.Mode == "" {
		c.Mode = ModeBound
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxParseDepth
	}
	for i, u := range c.Universe {
		if !filepath.IsAbs(u) {
			c.Universe[i] = filepath.Join(dir, u)
		}
	}
	if c.Catalog != "" && !filepath.IsAbs(c.Catalog) {
		c.Catalog = filepath.Join(dir, c.Catalog)
	}
}
