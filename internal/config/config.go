// Package config loads the feature toggles that govern how permissive the
// tokenizer and parser are, the way a production CLI in this corpus loads
// its YAML-based options file (see vippsas-sqlcode).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls scanner/parser behavior. The zero value is not valid;
// use Default().
type Options struct {
	// TabWidth is the column width a tab expands to when measuring
	// indentation. Python's tokenizer uses 8.
	TabWidth int `yaml:"tab_width"`

	// EnableShellExtensions governs recognition of the xonsh-derived
	// shell operators (??, ||, &&, @(, !(, ![, $(, $[, ${, @$(, &>, >&)
	// and the search-path (backtick) literal. When false the scanner
	// runs in strict-Python mode.
	EnableShellExtensions bool `yaml:"enable_shell_extensions"`

	// Trace enables structured per-token debug logging via
	// internal/diagnostic. Off by default: the hot path performs no
	// logging calls when this is false.
	Trace bool `yaml:"trace"`
}

// Default returns the standard option set: 8-column tabs, shell
// extensions enabled, tracing disabled.
func Default() Options {
	return Options{
		TabWidth:              8,
		EnableShellExtensions: true,
		Trace:                 false,
	}
}

// Load reads YAML-encoded Options from path, filling unset fields from
// Default().
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = 8
	}
	return opts, nil
}
