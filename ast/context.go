package ast

// SetContext is component H: the post-hoc context tagger. The parser
// builds target expressions with Ctx defaulted to Load (the value-reading
// default written by the expression grammar) and only afterward, once it
// knows an expression sits on the left of an assignment, in a `del`, or is
// a `for`/comprehension target, does it retag the tree via SetContext.
//
// Tuple, List, and Starred recurse into their children so that a nested
// target like `(a, [b, *c]) = x` tags every leaf Name/Attribute/Subscript.
func SetContext(e Expr, ctx ExprContext) {
	switch n := e.(type) {
	case *Name:
		n.Ctx = ctx
	case *Attribute:
		n.Ctx = ctx
	case *Subscript:
		n.Ctx = ctx
	case *Starred:
		n.Ctx = ctx
		SetContext(n.Value, ctx)
	case *Tuple:
		n.Ctx = ctx
		for _, elt := range n.Elts {
			SetContext(elt, ctx)
		}
	case *List:
		n.Ctx = ctx
		for _, elt := range n.Elts {
			SetContext(elt, ctx)
		}
	}
	// Any other expression kind (Call, BinOp, Constant, ...) is left
	// untouched: tagging is a no-op rather than a panic, and the parser
	// does not reject such targets itself (e.g. `f() = 1` parses).
}
