package parser

import (
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/token"
)

// parser wraps a stream with the entry points the statement grammar
// calls back into (component F).
type pparser struct {
	s *stream
}

func loc(n ast.Node, start, end token.Token) ast.Expr {
	ast.SetLoc(n, start, end)
	return n.(ast.Expr)
}

func locStmt(n ast.Stmt, start, end token.Token) ast.Stmt {
	ast.SetLoc(n, start, end)
	return n
}

// parseTestListStar parses a comma-separated list of expressions, used
// both for bare expression statements and for tuple-valued targets; it
// allows a trailing comma when allowTrailing is set (parenthesized
// contexts) and wraps multiple elements in a Tuple.
func (p *pparser) parseTestListStar(allowTrailing bool, stop func() bool) ast.Expr {
	start := p.s.peek()
	first := p.parseStarOrTest()
	if !p.s.atOp(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.s.atOp(",") {
		p.s.advance()
		if stop != nil && stop() {
			break
		}
		if allowTrailing && (p.s.atOp(")") || p.s.atOp("]") || p.s.atOp("}") || p.s.at(token.NEWLINE)) {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	tup := ast.NewTuple(elts, ast.Load)
	return loc(tup, start, p.s.peekAt(-1))
}

func (p *pparser) parseStarOrTest() ast.Expr {
	if p.s.atOp("*") {
		start := p.s.advance()
		v := p.parseOrExpr(0)
		return loc(ast.NewStarred(v, ast.Load), start, p.s.peekAt(-1))
	}
	return p.parseTest()
}

// parseTest is the public expression entry point: `test` in the Python
// grammar (conditional expression or lambda).
func (p *pparser) parseTest() ast.Expr {
	if p.s.atKeyword("lambda") {
		return p.parseLambda()
	}
	start := p.s.peek()
	body := p.parseOrTest()
	if p.s.atKeyword("if") {
		p.s.advance()
		cond := p.parseOrTest()
		p.s.expectKeyword("else")
		orelse := p.parseTest()
		return loc(ast.NewIfExp(cond, body, orelse), start, p.s.peekAt(-1))
	}
	return body
}

// parseTestNoCond is used where a conditional expression is disallowed
// (comprehension `if` clauses); a lambda is still accepted.
func (p *pparser) parseTestNoCond() ast.Expr {
	if p.s.atKeyword("lambda") {
		return p.parseLambda()
	}
	return p.parseOrTest()
}

func (p *pparser) parseLambda() ast.Expr {
	start := p.s.advance() // consume 'lambda'
	var params *ast.Arguments
	if !p.s.atOp(":") {
		params = p.parseParamList(true)
	} else {
		params = ast.NewArguments(nil, nil, nil, nil, nil, nil, nil)
	}
	p.s.expectOp(":")
	body := p.parseTest()
	return loc(ast.NewLambda(params, body), start, p.s.peekAt(-1))
}

func (p *pparser) parseOrTest() ast.Expr {
	start := p.s.peek()
	x := p.parseAndTest()
	if !p.s.atKeyword("or") {
		return x
	}
	values := []ast.Expr{x}
	for p.s.atKeyword("or") {
		p.s.advance()
		values = append(values, p.parseAndTest())
	}
	return loc(ast.NewBoolOp(ast.Or, values), start, p.s.peekAt(-1))
}

func (p *pparser) parseAndTest() ast.Expr {
	start := p.s.peek()
	x := p.parseNotTest()
	if !p.s.atKeyword("and") {
		return x
	}
	values := []ast.Expr{x}
	for p.s.atKeyword("and") {
		p.s.advance()
		values = append(values, p.parseNotTest())
	}
	return loc(ast.NewBoolOp(ast.And, values), start, p.s.peekAt(-1))
}

func (p *pparser) parseNotTest() ast.Expr {
	if p.s.atKeyword("not") {
		start := p.s.advance()
		x := p.parseNotTest()
		return loc(ast.NewUnaryOp(ast.NotOp, x), start, p.s.peekAt(-1))
	}
	return p.parseComparison()
}

var cmpOpText = map[string]ast.CmpOp{
	"==": ast.Eq, "!=": ast.NotEq, "<": ast.Lt, "<=": ast.LtE,
	">": ast.Gt, ">=": ast.GtE,
}

// tryComparisonOp recognizes one comparison operator, including the
// two-keyword forms `is not` and `not in`; it returns ok=false (no
// mutation) when the current position isn't a comparison operator.
func (p *pparser) tryComparisonOp() (ast.CmpOp, bool) {
	if op, ok := cmpOpText[p.s.peek().Text()]; ok && p.s.at(token.OP) {
		p.s.advance()
		return op, true
	}
	if p.s.atKeyword("in") {
		p.s.advance()
		return ast.In, true
	}
	if p.s.atKeyword("is") {
		p.s.advance()
		if p.s.atKeyword("not") {
			p.s.advance()
			return ast.IsNot, true
		}
		return ast.Is, true
	}
	if p.s.atKeyword("not") {
		mark := p.s.mark()
		p.s.advance()
		if p.s.atKeyword("in") {
			p.s.advance()
			return ast.NotIn, true
		}
		p.s.reset(mark)
	}
	return 0, false
}

func (p *pparser) parseComparison() ast.Expr {
	start := p.s.peek()
	x := p.parseBitOr()
	var ops []ast.CmpOp
	var comparators []ast.Expr
	for {
		op, ok := p.tryComparisonOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBitOr())
	}
	if len(ops) == 0 {
		return x
	}
	return loc(ast.NewCompare(x, ops, comparators), start, p.s.peekAt(-1))
}

// binaryLevel generalizes the left-associative binary-operator loop
// shared by bitor/bitxor/bitand/shift/arith/term (precedence climbing
// restricted to one level, since each level's operator set and next-
// level parser differ).
func (p *pparser) binaryLevel(next func() ast.Expr, ops map[string]ast.Operator) ast.Expr {
	start := p.s.peek()
	x := next()
	for {
		cur := p.s.peek()
		if cur.Kind != token.OP {
			break
		}
		op, ok := ops[cur.Text()]
		if !ok {
			break
		}
		p.s.advance()
		y := next()
		x = loc(ast.NewBinOp(x, op, y), start, p.s.peekAt(-1))
	}
	return x
}

func (p *pparser) parseBitOr() ast.Expr {
	return p.binaryLevel(p.parseBitXor, map[string]ast.Operator{"|": ast.BitOr})
}

func (p *pparser) parseBitXor() ast.Expr {
	return p.binaryLevel(p.parseBitAnd, map[string]ast.Operator{"^": ast.BitXor})
}

func (p *pparser) parseBitAnd() ast.Expr {
	return p.binaryLevel(p.parseShift, map[string]ast.Operator{"&": ast.BitAnd})
}

func (p *pparser) parseShift() ast.Expr {
	return p.binaryLevel(p.parseArith, map[string]ast.Operator{"<<": ast.LShift, ">>": ast.RShift})
}

func (p *pparser) parseArith() ast.Expr {
	return p.binaryLevel(p.parseTerm, map[string]ast.Operator{"+": ast.Add, "-": ast.Sub})
}

func (p *pparser) parseTerm() ast.Expr {
	return p.binaryLevel(p.parseFactor, map[string]ast.Operator{
		"*": ast.Mult, "/": ast.Div, "//": ast.FloorDiv, "%": ast.Mod, "@": ast.MatMult,
	})
}

func (p *pparser) parseFactor() ast.Expr {
	if p.s.at(token.OP) {
		switch p.s.peek().Text() {
		case "+":
			start := p.s.advance()
			return loc(ast.NewUnaryOp(ast.UAdd, p.parseFactor()), start, p.s.peekAt(-1))
		case "-":
			start := p.s.advance()
			return loc(ast.NewUnaryOp(ast.USub, p.parseFactor()), start, p.s.peekAt(-1))
		case "~":
			start := p.s.advance()
			return loc(ast.NewUnaryOp(ast.Invert, p.parseFactor()), start, p.s.peekAt(-1))
		}
	}
	return p.parsePower()
}

// parsePower binds tighter than the unary operators on its left (so
// `-x**2` parses as `-(x**2)`) but is right-associative on its right
// (`x**y**z` is `x**(y**z)`), matching Python exactly.
func (p *pparser) parsePower() ast.Expr {
	start := p.s.peek()
	x := p.parseAwaitExpr()
	if p.s.atOp("**") {
		p.s.advance()
		y := p.parseFactor()
		return loc(ast.NewBinOp(x, ast.Pow, y), start, p.s.peekAt(-1))
	}
	return x
}

func (p *pparser) parseAwaitExpr() ast.Expr {
	if p.s.at(token.AWAIT) {
		start := p.s.advance()
		x := p.parsePrimaryWithTrailers()
		return loc(ast.NewAwait(x), start, p.s.peekAt(-1))
	}
	return p.parsePrimaryWithTrailers()
}

// parsePrimaryWithTrailers parses an atom followed by any chain of
// `.name`, `(...)`, and `[...]` postfix trailers (the postfix-chain
// design note: implemented iteratively, not by left recursion).
func (p *pparser) parsePrimaryWithTrailers() ast.Expr {
	start := p.s.peek()
	x := p.parseAtom()
	for {
		switch {
		case p.s.atOp("."):
			p.s.advance()
			nameTok := p.s.expect(token.NAME)
			x = loc(ast.NewAttribute(x, nameTok.Text(), ast.Load), start, nameTok)
		case p.s.atOp("("):
			x = p.parseCallTrailer(start, x)
		case p.s.atOp("["):
			x = p.parseSubscriptTrailer(start, x)
		default:
			return x
		}
	}
}

func (p *pparser) parseCallTrailer(start token.Token, fn ast.Expr) ast.Expr {
	p.s.advance() // consume '('
	var args []ast.Expr
	var keywords []*ast.Keyword
	for !p.s.atOp(")") {
		if p.s.atOp("**") {
			p.s.advance()
			v := p.parseTest()
			keywords = append(keywords, ast.NewKeyword("", v))
		} else if p.s.atOp("*") {
			star := p.s.advance()
			v := p.parseTest()
			args = append(args, loc(ast.NewStarred(v, ast.Load), star, p.s.peekAt(-1)))
		} else if p.s.at(token.NAME) && p.s.peekAt(1).Kind == token.OP && p.s.peekAt(1).Text() == "=" {
			name := p.s.advance()
			p.s.advance() // '='
			v := p.parseTest()
			keywords = append(keywords, ast.NewKeyword(name.Text(), v))
		} else {
			v := p.parseNamedOrGenExpr()
			args = append(args, v)
		}
		if p.s.atOp(",") {
			p.s.advance()
			continue
		}
		break
	}
	end := p.s.expectOp(")")
	return loc(ast.NewCall(fn, args, keywords), start, end)
}

// parseNamedOrGenExpr parses a single call argument, recognizing a bare
// generator expression (`f(x for x in y)`, no parens needed around the
// single argument).
func (p *pparser) parseNamedOrGenExpr() ast.Expr {
	start := p.s.peek()
	v := p.parseTest()
	if p.s.atKeyword("for") || (p.s.at(token.ASYNC) && p.s.peekAt(1).Kind == token.NAME && p.s.peekAt(1).Text() == "for") {
		gens := p.parseComprehensionClauses()
		return loc(ast.NewGeneratorExp(v, gens), start, p.s.peekAt(-1))
	}
	return v
}

func (p *pparser) parseSubscriptTrailer(start token.Token, value ast.Expr) ast.Expr {
	p.s.advance() // consume '['
	itemStart := p.s.peek()
	first := p.parseSubscriptItem()
	items := []ast.Expr{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp("]") {
			break
		}
		items = append(items, p.parseSubscriptItem())
	}
	itemEnd := p.s.peekAt(-1)
	end := p.s.expectOp("]")
	var sliceExpr ast.Expr
	if len(items) == 1 {
		sliceExpr = items[0]
	} else {
		sliceExpr = loc(ast.NewTuple(items, ast.Load), itemStart, itemEnd)
	}
	return loc(ast.NewSubscript(value, sliceExpr, ast.Load), start, end)
}

// parseSubscriptItem parses one subscript element, which may be a plain
// test or a `lower? : upper? (: step?)?` slice.
func (p *pparser) parseSubscriptItem() ast.Expr {
	start := p.s.peek()
	var lower ast.Expr
	if !p.s.atOp(":") && !p.s.atOp(",") && !p.s.atOp("]") {
		lower = p.parseStarOrTest()
	}
	if !p.s.atOp(":") {
		return lower
	}
	p.s.advance()
	var upper, step ast.Expr
	if !p.s.atOp(":") && !p.s.atOp(",") && !p.s.atOp("]") {
		upper = p.parseTest()
	}
	if p.s.atOp(":") {
		p.s.advance()
		if !p.s.atOp(",") && !p.s.atOp("]") {
			step = p.parseTest()
		}
	}
	return loc(ast.NewSlice(lower, upper, step), start, p.s.peekAt(-1))
}

// parseAtom parses the innermost expression forms: literals, names,
// parenthesized/bracketed constructs, and `yield`.
func (p *pparser) parseAtom() ast.Expr {
	cur := p.s.peek()
	switch cur.Kind {
	case token.NAME:
		switch cur.Text() {
		case "None":
			p.s.advance()
			return loc(ast.NewConstant(nil, ""), cur, cur)
		case "True":
			p.s.advance()
			return loc(ast.NewConstant(true, ""), cur, cur)
		case "False":
			p.s.advance()
			return loc(ast.NewConstant(false, ""), cur, cur)
		case "yield":
			return p.parseYield()
		}
		p.s.advance()
		return loc(ast.NewName(cur.Text(), ast.Load), cur, cur)

	case token.NUMBER:
		p.s.advance()
		v, err := evalNumber(cur.Text())
		if err != nil {
			p.s.errorf(cur.Start, "%v", err)
		}
		return loc(ast.NewConstant(v, ""), cur, cur)

	case token.STRING:
		return p.parseStringRun()

	case token.FSTRING_START:
		return p.parseStringRun()

	case token.OP:
		switch cur.Text() {
		case "(":
			return p.parseParenForm()
		case "[":
			return p.parseListForm()
		case "{":
			return p.parseBraceForm()
		case "...":
			p.s.advance()
			return loc(ast.NewConstant(ast.Ellipsis, ""), cur, cur)
		}
	}

	p.s.errorf(cur.Start, "got %s %q, want expression", cur.Kind, cur.Text())
	panic("unreachable")
}

// parseStringRun collects a run of adjacent STRING/f-string tokens and
// applies implicit concatenation (component F + J collaboration).
func (p *pparser) parseStringRun() ast.Expr {
	start := p.s.peek()
	var parts []ast.Expr
	for p.s.at(token.STRING) || p.s.at(token.FSTRING_START) {
		if p.s.at(token.STRING) {
			tok := p.s.advance()
			lit := splitStringToken(tok.Text())
			v, err := evalString(lit)
			if err != nil {
				p.s.errorf(tok.Start, "%v", err)
			}
			kind := ""
			if strings_containsU(lit.prefix) {
				kind = "u"
			}
			parts = append(parts, loc(ast.NewConstant(v, kind), tok, tok))
		} else {
			parts = append(parts, p.parseFString())
		}
	}
	result := concatAdjacentStrings(parts)
	ast.SetLoc(result, start, p.s.peekAt(-1))
	return result
}

func strings_containsU(prefix string) bool {
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == 'u' {
			return true
		}
	}
	return false
}

func (p *pparser) parseYield() ast.Expr {
	start := p.s.advance() // consume 'yield'
	if p.s.atKeyword("from") {
		p.s.advance()
		v := p.parseTest()
		return loc(ast.NewYieldFrom(v), start, p.s.peekAt(-1))
	}
	if p.s.atOp(")") || p.s.at(token.NEWLINE) || p.s.atOp(";") || p.s.at(token.ENDMARKER) {
		return loc(ast.NewYield(nil), start, start)
	}
	v := p.parseTestListStar(false, nil)
	return loc(ast.NewYield(v), start, p.s.peekAt(-1))
}

// parseParenForm parses `()`, `(expr)`, `(expr,)`, a parenthesized tuple,
// or a parenthesized generator expression.
func (p *pparser) parseParenForm() ast.Expr {
	start := p.s.advance() // '('
	if p.s.atOp(")") {
		end := p.s.advance()
		return loc(ast.NewTuple(nil, ast.Load), start, end)
	}
	if p.s.atKeyword("yield") {
		v := p.parseYield()
		end := p.s.expectOp(")")
		return loc(v, start, end)
	}
	first := p.parseStarOrTest()
	if p.s.atKeyword("for") || (p.s.at(token.ASYNC) && p.s.peekAt(1).Text() == "for") {
		gens := p.parseComprehensionClauses()
		end := p.s.expectOp(")")
		return loc(ast.NewGeneratorExp(first, gens), start, end)
	}
	if !p.s.atOp(",") {
		end := p.s.expectOp(")")
		// Parenthesization doesn't create a node; the inner expr keeps
		// its own span since it was already fully located.
		_ = end
		return first
	}
	elts := []ast.Expr{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp(")") {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.s.expectOp(")")
	return loc(ast.NewTuple(elts, ast.Load), start, end)
}

func (p *pparser) parseListForm() ast.Expr {
	start := p.s.advance() // '['
	if p.s.atOp("]") {
		end := p.s.advance()
		return loc(ast.NewList(nil, ast.Load), start, end)
	}
	first := p.parseStarOrTest()
	if p.s.atKeyword("for") || (p.s.at(token.ASYNC) && p.s.peekAt(1).Text() == "for") {
		gens := p.parseComprehensionClauses()
		end := p.s.expectOp("]")
		return loc(ast.NewListComp(first, gens), start, end)
	}
	elts := []ast.Expr{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp("]") {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.s.expectOp("]")
	return loc(ast.NewList(elts, ast.Load), start, end)
}

// parseBraceForm parses `{}`, a set/dict literal, or a set/dict
// comprehension.
func (p *pparser) parseBraceForm() ast.Expr {
	start := p.s.advance() // '{'
	if p.s.atOp("}") {
		end := p.s.advance()
		return loc(ast.NewDict(nil, nil), start, end)
	}

	if p.s.atOp("**") {
		p.s.advance()
		v := p.parseOrExpr(0)
		keys := []ast.Expr{nil}
		values := []ast.Expr{v}
		for p.s.atOp(",") {
			p.s.advance()
			if p.s.atOp("}") {
				break
			}
			k, val := p.parseDictItem()
			keys = append(keys, k)
			values = append(values, val)
		}
		end := p.s.expectOp("}")
		return loc(ast.NewDict(keys, values), start, end)
	}

	firstStar := p.s.atOp("*")
	first := p.parseStarOrTest()

	if !firstStar && p.s.atOp(":") {
		p.s.advance()
		val := p.parseTest()
		if p.s.atKeyword("for") || (p.s.at(token.ASYNC) && p.s.peekAt(1).Text() == "for") {
			gens := p.parseComprehensionClauses()
			end := p.s.expectOp("}")
			return loc(ast.NewDictComp(first, val, gens), start, end)
		}
		keys := []ast.Expr{first}
		values := []ast.Expr{val}
		for p.s.atOp(",") {
			p.s.advance()
			if p.s.atOp("}") {
				break
			}
			k, v := p.parseDictItem()
			keys = append(keys, k)
			values = append(values, v)
		}
		end := p.s.expectOp("}")
		return loc(ast.NewDict(keys, values), start, end)
	}

	if p.s.atKeyword("for") || (p.s.at(token.ASYNC) && p.s.peekAt(1).Text() == "for") {
		gens := p.parseComprehensionClauses()
		end := p.s.expectOp("}")
		return loc(ast.NewSetComp(first, gens), start, end)
	}

	elts := []ast.Expr{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp("}") {
			break
		}
		elts = append(elts, p.parseStarOrTest())
	}
	end := p.s.expectOp("}")
	return loc(ast.NewSet(elts), start, end)
}

// parseDictItem parses one `key: value` or `**expr` dict-display entry;
// a `**expr` entry is represented as a nil key (matching ast.Dict's
// convention, mirroring Python's own ast.Dict).
func (p *pparser) parseDictItem() (ast.Expr, ast.Expr) {
	if p.s.atOp("**") {
		p.s.advance()
		v := p.parseOrExpr(0)
		return nil, v
	}
	k := p.parseTest()
	p.s.expectOp(":")
	v := p.parseTest()
	return k, v
}

// parseOrExpr parses a `test`-level expression (used where the grammar
// needs a bare expression without directly calling parseTest, kept as a
// distinct name for call sites that conceptually want "an expression
// here", e.g. `**expr` unpacking and starred targets).
func (p *pparser) parseOrExpr(_ int) ast.Expr {
	return p.parseTest()
}
