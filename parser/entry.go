package parser

import (
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/internal/diagnostic"
	"github.com/xonsh/peg-parser-sub000/token"
)

// Parse tokenizes and parses src as a complete module, returning its
// root ast.ModuleNode. A *scanner.LexError is returned by newStream,
// which tokenizes the whole source before parsing starts. A *SyntaxError
// from deep inside the recursive-descent grammar is recovered here
// exactly once (grounded on the teacher's `defer p.in.recover(&err)`
// idiom) and returned as a plain error rather than propagating as a panic.
func Parse(src *token.Source, opts config.Options) (mod *ast.ModuleNode, err error) {
	var tracer *diagnostic.Tracer
	if opts.Trace {
		tracer = diagnostic.NewTracer()
	}
	st, serr := newStream(src, opts, tracer)
	if serr != nil {
		return nil, serr
	}
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	p := &pparser{s: st}
	mod = p.parseModule()
	mod.Path = src.Filename
	return mod, nil
}

// ParseExpr tokenizes and parses src as a single expression, requiring
// the remainder of the stream (aside from trailing NEWLINE/ENDMARKER) to
// be empty.
func ParseExpr(src *token.Source, opts config.Options) (expr ast.Expr, err error) {
	var tracer *diagnostic.Tracer
	if opts.Trace {
		tracer = diagnostic.NewTracer()
	}
	st, serr := newStream(src, opts, tracer)
	if serr != nil {
		return nil, serr
	}
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*SyntaxError); ok {
				err = se
				return
			}
			panic(r)
		}
	}()
	p := &pparser{s: st}
	for st.at(token.NEWLINE) {
		st.advance()
	}
	expr = p.parseTestListStar(false, nil)
	for st.at(token.NEWLINE) {
		st.advance()
	}
	if !st.at(token.ENDMARKER) {
		st.errorf(st.peek().Start, "got %s after expression, want end of input", st.peek().Kind)
	}
	return expr, nil
}
