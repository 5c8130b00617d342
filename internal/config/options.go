package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options holds compiler-wide toggles threaded through the CodeGenerator
// (codegen.New) and RuntimeAssertions (runtimeassert.New) (§4.8).
type Options struct {
	// EmitRuntimeAssertions gates RuntimeAssertions.Transform: false makes
	// it a passthrough, returning its input IR block unchanged.
	EmitRuntimeAssertions bool `yaml:"emitRuntimeAssertions"`

	// AssumptionCacheHint is a pre-sizing hint for the SubtypeEngine's
	// per-query assumption cache. Zero means "no pre-sizing hint". No
	// package in this module reads it; subtype.NewWithCacheHint takes the
	// hint as a direct argument.
	AssumptionCacheHint int `yaml:"assumptionCacheHint"`

	// LambdaNamePrefix namespaces synthesized top-level lambda functions
	// (§4.5.2) so they cannot collide with user-declared names.
	LambdaNamePrefix string `yaml:"lambdaNamePrefix"`

	// Trace enables internal/clog trace output during code generation.
	Trace bool `yaml:"trace"`
}

// Default returns the options a standalone compilation uses absent an
// explicit config file.
func Default() Options {
	return Options{
		EmitRuntimeAssertions: true,
		LambdaNamePrefix:      "__lambda_",
	}
}

// Load reads and parses a YAML options file at path, starting from Default()
// so an options file only needs to specify the fields it overrides.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return opts, nil
}
