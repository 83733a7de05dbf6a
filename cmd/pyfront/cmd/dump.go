package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/parser"
	"github.com/xonsh/peg-parser-sub000/token"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file|glob>...",
	Short: "Parse one or more files and print their AST",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandFiles(args)
		if err != nil {
			return err
		}
		opts := config.Default()
		opts.Trace = traceFlag
		opts.EnableShellExtensions = !noShellExtensions
		for _, f := range files {
			data, err := readSource(f)
			if err != nil {
				return err
			}
			mod, err := parser.Parse(token.NewSource(f, data), opts)
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			fmt.Printf("%s:\n%s\n", f, ast.Dump(mod))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}
