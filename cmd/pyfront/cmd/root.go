// Package cmd implements the pyfront CLI: ambient, non-core per the
// tokenizer/parser's synchronous, I/O-free core. Every subcommand here
// reads files, expands globs, and wraps errors at that I/O boundary
// before handing bytes to scanner/parser.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "pyfront",
		Short:        "pyfront",
		SilenceUsage: true,
		Long:         `Tokenizes and parses Python-family source files, and dumps their AST.`,
	}

	traceFlag bool
	noShellExtensions bool
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "enable structured scan/parse tracing")
	rootCmd.PersistentFlags().BoolVar(&noShellExtensions, "strict-python", false, "disable the xonsh-derived shell-extension operators")
	return rootCmd.Execute()
}
