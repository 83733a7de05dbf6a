package ast

import "github.com/xonsh/peg-parser-sub000/token"

// SetLoc is component I: it copies the coordinates of the bracketing
// start/end tokens onto a freshly-built node's Loc. It never computes or
// guesses a location; every node's span is exactly the span of the tokens
// the parser consumed to build it.
func SetLoc(n Node, start, end token.Token) Node {
	loc := n.location()
	loc.StartLine = start.Start.Line
	loc.StartCol = start.Start.Col
	loc.EndLine = end.End.Line
	loc.EndCol = end.End.Col
	return n
}

// SetLocTok is the common case where a node's span is exactly one token
// (e.g. a bare Name or Constant built from a single NAME/NUMBER/STRING).
func SetLocTok(n Node, tok token.Token) Node {
	return SetLoc(n, tok, tok)
}
