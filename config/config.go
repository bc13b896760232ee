// Package config loads rewire.yaml, the configuration of the rewire command.
//
// Example:
//
//	map_var: deps
//	exclude:
//	  - Logger
//	  - Enum
//	macros:
//	  - Calc.macro_sum/2
//	  - Logger.debug/1
//
// exclude extends inject.DefaultExcluded unless replace_exclusions is true,
// in which case it replaces it. macros lists the compile-time-only functions
// in reference syntax. REWIRE_MAP_VAR, when set, overrides map_var.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sghaida/rewire/dispatch"
	"github.com/sghaida/rewire/inject"
)

// EnvMapVar overrides Config.MapVar when set.
const EnvMapVar = "REWIRE_MAP_VAR"

// Config represents rewire.yaml.
type Config struct {
	// MapVar is the name of the substitution-map parameter appended to every
	// rewritten function. Defaults to inject.DefaultMapVar.
	MapVar string `yaml:"map_var,omitempty"`

	// Exclude lists additional modules whose calls are never rewritten.
	Exclude []string `yaml:"exclude,omitempty"`

	// ReplaceExclusions makes Exclude the complete exclusion set instead of
	// an addition to the defaults. The dispatcher stays excluded regardless.
	ReplaceExclusions bool `yaml:"replace_exclusions,omitempty"`

	// Macros lists compile-time-only functions as Module.function/arity.
	Macros []string `yaml:"macros,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a configuration document. path is only used
// in error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	if c.MapVar != "" && !isIdent(c.MapVar) {
		return fmt.Errorf("%s: map_var %q is not a valid variable name", path, c.MapVar)
	}
	seen := make(map[string]bool, len(c.Exclude))
	for i, m := range c.Exclude {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("%s: exclude[%d]: empty module name", path, i)
		}
		if seen[m] {
			return fmt.Errorf("%s: exclude[%d]: duplicate module %q", path, i, m)
		}
		seen[m] = true
	}
	for i, ref := range c.Macros {
		if _, err := dispatch.ParseRef(ref); err != nil {
			return fmt.Errorf("%s: macros[%d]: %w", path, i, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvMapVar); v != "" {
		c.MapVar = v
	}
}

func (c *Config) setDefaults() {
	if c.MapVar == "" {
		c.MapVar = inject.DefaultMapVar
	}
}

// Policy builds the exclusion policy described by the configuration.
func (c *Config) Policy() *inject.Policy {
	if c.ReplaceExclusions {
		return inject.NewPolicy(c.Exclude...)
	}
	return inject.DefaultPolicy().With(c.Exclude...)
}

// Env builds the macro table described by the configuration.
func (c *Config) Env() (*inject.MacroTable, error) {
	t := inject.NewMacroTable()
	for _, ref := range c.Macros {
		if _, err := t.ProvideRef(ref); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Rewriter builds an inject.Rewriter from the configuration.
func (c *Config) Rewriter() (*inject.Rewriter, error) {
	env, err := c.Env()
	if err != nil {
		return nil, err
	}
	return inject.New(inject.WithPolicy(c.Policy()), inject.WithEnv(env)), nil
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z':
		case i > 0 && (r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return s != ""
}
