package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/internal/diagnostic"
	"github.com/xonsh/peg-parser-sub000/scanner"
	"github.com/xonsh/peg-parser-sub000/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file|glob>...",
	Short: "Print the token stream for one or more files",
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
			var tracer *diagnostic.Tracer
			if opts.Trace {
				tracer = diagnostic.NewTracer()
			}
			sc := scanner.NewTraced(token.NewSource(f, data), opts, tracer)
			for {
				tok, err := sc.Next()
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", f, tok)
				if tok.Kind == token.ENDMARKER {
					break
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}
