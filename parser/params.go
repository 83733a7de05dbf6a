package parser

import (
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/token"
)

// parseParamList parses a function/lambda parameter list (component G's
// parameter state machine): positional params, an optional bare `/`
// positional-only marker, an optional `*args` or bare `*` keyword-only
// marker, keyword-only params, and an optional `**kwargs`. isLambda
// disables annotations (lambda params may not carry them) and changes
// the terminator from ")" to ":".
func (p *pparser) parseParamList(isLambda bool) *ast.Arguments {
	stop := func() bool {
		if isLambda {
			return p.s.atOp(":")
		}
		return p.s.atOp(")")
	}

	var posOnly, args, kwOnly []*ast.Arg
	var kwDefaults, defaults []ast.Expr
	var vararg, kwarg *ast.Arg
	seenStar := false
	seenSlash := false

	for !stop() {
		switch {
		case p.s.atOp("/"):
			tok := p.s.peek()
			if seenSlash {
				p.s.errorf(tok.Start, "duplicate '/' in parameter list")
			}
			if seenStar {
				p.s.errorf(tok.Start, "'/' must appear before '*' in parameter list")
			}
			seenSlash = true
			p.s.advance()
			posOnly = append(posOnly, args...)
			args = nil
			p.consumeParamComma()

		case p.s.atOp("*"):
			tok := p.s.peek()
			if seenStar {
				p.s.errorf(tok.Start, "duplicate '*' in parameter list")
			}
			seenStar = true
			p.s.advance()
			if p.s.at(token.NAME) {
				vararg = p.parseOneParam(isLambda)
			}
			p.consumeParamComma()

		case p.s.atOp("**"):
			tok := p.s.peek()
			if kwarg != nil {
				p.s.errorf(tok.Start, "duplicate '**' in parameter list")
			}
			p.s.advance()
			kwarg = p.parseOneParam(isLambda)
			p.consumeParamComma()

		default:
			arg := p.parseOneParam(isLambda)
			var def ast.Expr
			if p.s.atOp("=") {
				p.s.advance()
				def = p.parseTest()
			}
			if seenStar {
				kwOnly = append(kwOnly, arg)
				kwDefaults = append(kwDefaults, def)
			} else {
				args = append(args, arg)
				if def != nil {
					defaults = append(defaults, def)
				}
			}
			if !p.consumeParamComma() {
				return ast.NewArguments(posOnly, args, vararg, kwOnly, kwDefaults, kwarg, defaults)
			}
		}
	}
	return ast.NewArguments(posOnly, args, vararg, kwOnly, kwDefaults, kwarg, defaults)
}

// consumeParamComma consumes a trailing "," if present, reporting
// whether one was found.
func (p *pparser) consumeParamComma() bool {
	if p.s.atOp(",") {
		p.s.advance()
		return true
	}
	return false
}

func (p *pparser) parseOneParam(isLambda bool) *ast.Arg {
	nameTok := p.s.expect(token.NAME)
	var ann ast.Expr
	if !isLambda && p.s.atOp(":") {
		p.s.advance()
		ann = p.parseTest()
	}
	a := ast.NewArg(nameTok.Text(), ann, "")
	ast.SetLoc(a, nameTok, p.s.peekAt(-1))
	return a
}
