package main

import (
	"os"

	"github.com/xonsh/peg-parser-sub000/cmd/pyfront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
