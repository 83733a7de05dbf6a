package parser

import (
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/token"
)

// parseComprehensionClauses parses the `(ASYNC? FOR target IN or_test
// (IF test_nocond)*)+` tail shared by list/set/dict/generator
// comprehensions (component F). The leading FOR has already been
// confirmed present by the caller's lookahead.
func (p *pparser) parseComprehensionClauses() []*ast.Comprehension {
	var gens []*ast.Comprehension
	for p.s.atKeyword("for") || p.s.at(token.ASYNC) {
		isAsync := false
		if p.s.at(token.ASYNC) {
			isAsync = true
			p.s.advance()
		}
		p.s.expectKeyword("for")
		target := p.parseCompTarget()
		ast.SetContext(target, ast.Store)
		p.s.expectKeyword("in")
		iter := p.parseOrTest()
		var ifs []ast.Expr
		for p.s.atKeyword("if") {
			p.s.advance()
			ifs = append(ifs, p.parseTestNoCond())
		}
		gens = append(gens, ast.NewComprehension(target, iter, ifs, isAsync))
	}
	return gens
}

// parseCompTarget parses a comprehension/for-loop target list: either a
// single primary-with-trailers expression or a bare (unparenthesized)
// tuple of them, stopping at `in`.
func (p *pparser) parseCompTarget() ast.Expr {
	start := p.s.peek()
	first := p.parseTargetAtom()
	if !p.s.atOp(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.s.atOp(",") {
		mark := p.s.mark()
		p.s.advance()
		if p.s.atKeyword("in") {
			p.s.reset(mark)
			break
		}
		elts = append(elts, p.parseTargetAtom())
	}
	return loc(ast.NewTuple(elts, ast.Load), start, p.s.peekAt(-1))
}

// parseTargetAtom parses one assignment-target expression: a primary
// with trailers, a starred target, or a parenthesized/bracketed target
// list (for nested unpacking like `for (a, b), c in pairs`).
func (p *pparser) parseTargetAtom() ast.Expr {
	if p.s.atOp("*") {
		start := p.s.advance()
		v := p.parseTargetAtom()
		return loc(ast.NewStarred(v, ast.Load), start, p.s.peekAt(-1))
	}
	if p.s.atOp("(") || p.s.atOp("[") {
		closeTok := ")"
		if p.s.peek().Text() == "[" {
			closeTok = "]"
		}
		start := p.s.advance()
		var elts []ast.Expr
		for !p.s.atOp(closeTok) {
			elts = append(elts, p.parseTargetAtom())
			if p.s.atOp(",") {
				p.s.advance()
				continue
			}
			break
		}
		end := p.s.expectOp(closeTok)
		if closeTok == "]" {
			return loc(ast.NewList(elts, ast.Load), start, end)
		}
		return loc(ast.NewTuple(elts, ast.Load), start, end)
	}
	return p.parsePrimaryWithTrailers()
}
