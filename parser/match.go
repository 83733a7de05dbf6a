package parser

import (
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/token"
)

// parseMatch parses a `match subject: NEWLINE INDENT case_block+ DEDENT`
// statement (component G's pattern grammar). `match` is a soft keyword;
// the caller (parseStmt via looksLikeMatch) has already confirmed this
// line isn't a plain `match`-named expression statement.
func (p *pparser) parseMatch() ast.Stmt {
	start := p.s.advance() // 'match'
	subject := p.parseTestListStar(false, nil)
	p.s.expectOp(":")
	p.s.expect(token.NEWLINE)
	p.s.expect(token.INDENT)
	var cases []*ast.MatchCase
	for p.s.atKeyword("case") {
		cases = append(cases, p.parseCaseBlock())
	}
	p.s.expect(token.DEDENT)
	return locStmt(ast.NewMatch(subject, cases), start, p.s.peekAt(-1))
}

func (p *pparser) parseCaseBlock() *ast.MatchCase {
	p.s.advance() // 'case'
	pat := p.parsePatterns()
	var guard ast.Expr
	if p.s.atKeyword("if") {
		p.s.advance()
		guard = p.parseTestListStar(false, nil)
	}
	p.s.expectOp(":")
	body := p.parseSuite()
	return ast.NewMatchCase(pat, guard, body)
}

// parsePatterns parses a top-level pattern, which may be an
// unparenthesized sequence pattern (`case a, b:`) in addition to a
// single `or_pattern ['as' NAME]`.
func (p *pparser) parsePatterns() ast.Pattern {
	start := p.s.peek()
	first := p.parsePattern()
	if !p.s.atOp(",") {
		return first
	}
	pats := []ast.Pattern{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp(":") || p.s.atKeyword("if") {
			break
		}
		pats = append(pats, p.parsePattern())
	}
	n := ast.NewMatchSequence(pats)
	ast.SetLoc(n, start, p.s.peekAt(-1))
	return n
}

func (p *pparser) parsePattern() ast.Pattern {
	start := p.s.peek()
	pat := p.parseOrPattern()
	if p.s.atKeyword("as") {
		p.s.advance()
		name := p.s.expect(token.NAME).Text()
		n := ast.NewMatchAs(pat, name)
		ast.SetLoc(n, start, p.s.peekAt(-1))
		return n
	}
	return pat
}

func (p *pparser) parseOrPattern() ast.Pattern {
	start := p.s.peek()
	first := p.parseClosedPattern()
	if !p.s.atOp("|") {
		return first
	}
	pats := []ast.Pattern{first}
	for p.s.atOp("|") {
		p.s.advance()
		pats = append(pats, p.parseClosedPattern())
	}
	n := ast.NewMatchOr(pats)
	ast.SetLoc(n, start, p.s.peekAt(-1))
	return n
}

func (p *pparser) parseClosedPattern() ast.Pattern {
	start := p.s.peek()

	switch {
	case start.Kind == token.NAME && start.Text() == "_" && !p.dottedOrCallFollows():
		p.s.advance()
		n := ast.NewMatchAs(nil, "")
		return ast.SetLocTok(n, start).(ast.Pattern)

	case start.Kind == token.NAME && (start.Text() == "None" || start.Text() == "True" || start.Text() == "False"):
		p.s.advance()
		var v interface{}
		switch start.Text() {
		case "True":
			v = true
		case "False":
			v = false
		}
		n := ast.NewMatchSingleton(v)
		return ast.SetLocTok(n, start).(ast.Pattern)

	case start.Kind == token.NAME:
		return p.parseNameOrClassOrValuePattern()

	case start.Kind == token.NUMBER, start.Kind == token.STRING, start.Kind == token.FSTRING_START:
		v := p.parseComparableLiteral()
		n := ast.NewMatchValue(v)
		ast.SetLoc(n, start, p.s.peekAt(-1))
		return n

	case start.Kind == token.OP && start.Text() == "-":
		v := p.parseComparableLiteral()
		n := ast.NewMatchValue(v)
		ast.SetLoc(n, start, p.s.peekAt(-1))
		return n

	case start.Kind == token.OP && start.Text() == "(":
		return p.parseGroupOrSequencePattern("(", ")")

	case start.Kind == token.OP && start.Text() == "[":
		return p.parseGroupOrSequencePattern("[", "]")

	case start.Kind == token.OP && start.Text() == "{":
		return p.parseMappingPattern()
	}

	p.s.errorf(start.Start, "got %s %q, want pattern", start.Kind, start.Text())
	panic("unreachable")
}

// dottedOrCallFollows looks one token ahead to see whether a bare NAME
// is actually the start of a dotted value pattern or class pattern
// rather than a capture target (only meaningful for deciding whether
// `_` is the wildcard or a dotted attribute base, which Python disallows
// anyway but we simply fall through to the general name handler).
func (p *pparser) dottedOrCallFollows() bool {
	nxt := p.s.peekAt(1)
	return nxt.Kind == token.OP && (nxt.Text() == "." || nxt.Text() == "(")
}

// parseNameOrClassOrValuePattern handles a NAME-led closed pattern: a
// bare capture (`x`), a dotted value pattern (`Color.RED`), or a class
// pattern (`Point(x=0, y=0)`).
func (p *pparser) parseNameOrClassOrValuePattern() ast.Pattern {
	start := p.s.peek()
	nameTok := p.s.advance()
	var valueExpr ast.Expr = ast.NewName(nameTok.Text(), ast.Load)
	ast.SetLocTok(valueExpr, nameTok)
	dotted := false
	for p.s.atOp(".") {
		dotted = true
		p.s.advance()
		attr := p.s.expect(token.NAME)
		valueExpr = loc(ast.NewAttribute(valueExpr, attr.Text(), ast.Load), start, attr)
	}

	if p.s.atOp("(") {
		return p.parseClassPatternArgs(start, valueExpr)
	}

	if dotted {
		n := ast.NewMatchValue(valueExpr)
		ast.SetLoc(n, start, p.s.peekAt(-1))
		return n
	}

	n := ast.NewMatchAs(nil, nameTok.Text())
	return ast.SetLocTok(n, nameTok).(ast.Pattern)
}

func (p *pparser) parseClassPatternArgs(start token.Token, cls ast.Expr) ast.Pattern {
	p.s.advance() // '('
	var positional []ast.Pattern
	var kwdAttrs []string
	var kwdPatterns []ast.Pattern
	for !p.s.atOp(")") {
		if p.s.at(token.NAME) && p.s.peekAt(1).Kind == token.OP && p.s.peekAt(1).Text() == "=" {
			attr := p.s.advance()
			p.s.advance() // '='
			v := p.parsePattern()
			kwdAttrs = append(kwdAttrs, attr.Text())
			kwdPatterns = append(kwdPatterns, v)
		} else {
			positional = append(positional, p.parsePattern())
		}
		if p.s.atOp(",") {
			p.s.advance()
			continue
		}
		break
	}
	end := p.s.expectOp(")")
	n := ast.NewMatchClass(cls, positional, kwdAttrs, kwdPatterns)
	ast.SetLoc(n, start, end)
	return n
}

// parseGroupOrSequencePattern parses `(pattern)` (a non-capturing group,
// returned unwrapped) or `(p, p, ...)`/`[p, p, ...]` (a sequence
// pattern), including an optional `*name`/`*_` star pattern element.
func (p *pparser) parseGroupOrSequencePattern(openText, closeText string) ast.Pattern {
	start := p.s.advance() // consume open bracket
	if p.s.atOp(closeText) {
		end := p.s.advance()
		n := ast.NewMatchSequence(nil)
		ast.SetLoc(n, start, end)
		return n
	}
	first := p.parseSequencePatternElement()
	if !p.s.atOp(",") {
		if openText == "(" {
			if _, isStar := first.(*ast.MatchStar); !isStar {
				p.s.expectOp(closeText)
				return first // parenthesized group, not a sequence
			}
		}
	}
	elts := []ast.Pattern{first}
	for p.s.atOp(",") {
		p.s.advance()
		if p.s.atOp(closeText) {
			break
		}
		elts = append(elts, p.parseSequencePatternElement())
	}
	end := p.s.expectOp(closeText)
	n := ast.NewMatchSequence(elts)
	ast.SetLoc(n, start, end)
	return n
}

func (p *pparser) parseSequencePatternElement() ast.Pattern {
	if p.s.atOp("*") {
		start := p.s.advance()
		name := ""
		if !p.s.atKeyword("_") {
			tok := p.s.expect(token.NAME)
			if tok.Text() != "_" {
				name = tok.Text()
			}
		} else {
			p.s.advance()
		}
		n := ast.NewMatchStar(name)
		ast.SetLoc(n, start, p.s.peekAt(-1))
		return n
	}
	return p.parsePattern()
}

// parseMappingPattern parses `{key: pattern, ..., **rest}`.
func (p *pparser) parseMappingPattern() ast.Pattern {
	start := p.s.advance() // '{'
	var keys []ast.Expr
	var patterns []ast.Pattern
	rest := ""
	for !p.s.atOp("}") {
		if p.s.atOp("**") {
			p.s.advance()
			rest = p.s.expect(token.NAME).Text()
		} else {
			k := p.parseComparableLiteral()
			p.s.expectOp(":")
			v := p.parsePattern()
			keys = append(keys, k)
			patterns = append(patterns, v)
		}
		if p.s.atOp(",") {
			p.s.advance()
			continue
		}
		break
	}
	end := p.s.expectOp("}")
	n := ast.NewMatchMapping(keys, patterns, rest)
	ast.SetLoc(n, start, end)
	return n
}

// parseComparableLiteral parses the restricted literal expression a
// value/literal pattern allows: an optionally-negated number, a string
// run, or a dotted name (for value patterns like `Color.RED`).
func (p *pparser) parseComparableLiteral() ast.Expr {
	if p.s.atOp("-") {
		start := p.s.advance()
		v := p.parseComparableLiteral()
		return loc(ast.NewUnaryOp(ast.USub, v), start, p.s.peekAt(-1))
	}
	switch {
	case p.s.at(token.NUMBER), p.s.at(token.STRING), p.s.at(token.FSTRING_START):
		return p.parseAtom()
	case p.s.atKeyword("None"), p.s.atKeyword("True"), p.s.atKeyword("False"):
		return p.parseAtom()
	case p.s.at(token.NAME):
		start := p.s.peek()
		var e ast.Expr = ast.NewName(p.s.advance().Text(), ast.Load)
		ast.SetLocTok(e, start)
		for p.s.atOp(".") {
			p.s.advance()
			attr := p.s.expect(token.NAME)
			e = loc(ast.NewAttribute(e, attr.Text(), ast.Load), start, attr)
		}
		return e
	}
	cur := p.s.peek()
	p.s.errorf(cur.Start, "got %s %q, want literal pattern", cur.Kind, cur.Text())
	panic("unreachable")
}
