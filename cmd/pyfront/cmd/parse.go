package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/parser"
	"github.com/xonsh/peg-parser-sub000/token"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|glob>...",
	Short: "Parse one or more files and report success or the first syntax error",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandFiles(args)
		if err != nil {
			return err
		}
		opts := config.Default()
		opts.Trace = traceFlag
		opts.EnableShellExtensions = !noShellExtensions
		failed := false
		for _, f := range files {
			data, err := readSource(f)
			if err != nil {
				return err
			}
			if _, err := parser.Parse(token.NewSource(f, data), opts); err != nil {
				failed = true
				fmt.Printf("%s: %s\n", f, err)
				continue
			}
			fmt.Printf("%s: ok\n", f)
		}
		if failed {
			return fmt.Errorf("one or more files failed to parse")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
