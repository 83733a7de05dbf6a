package ast

import "github.com/alecthomas/repr"

// Dump renders a node tree for debugging (the CLI's dump command), using
// alecthomas/repr rather than a hand-rolled recursive formatter.
func Dump(n Node) string {
	return repr.String(n, repr.Indent("  "), repr.OmitEmpty(true))
}
