// Package parser implements the expression/statement recursive-descent
// parser (components E–G, J): a checkpointable token stream, precedence
// climbing over the expression grammar, and the statement grammar
// producing the ast package's node shapes.
package parser

import (
	"fmt"

	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/internal/diagnostic"
	"github.com/xonsh/peg-parser-sub000/scanner"
	"github.com/xonsh/peg-parser-sub000/token"
)

// SyntaxError is every committed/cut or hard parse failure (spec §7).
// Grammar code raises it via the stream helpers (evalNumber returns one,
// which parseAtom re-raises through errorf); it surfaces by panic,
// recovered exactly once at the Parse/ParseExpr boundary.
type SyntaxError struct {
	Msg string
	Pos token.Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// stream is component E: the parser's view of the token sequence. Tokens
// are materialized up front (the "arena of token indices" design note)
// so that checkpoint/reset is a plain integer save/restore rather than a
// scanner-level rewind.
type stream struct {
	toks   []token.Token
	pos    int
	tracer *diagnostic.Tracer
}

// newStream tokenizes src to completion (filtering WS/NL/COMMENT/
// ENCODING/TYPE_COMMENT) and returns a stream ready for parsing, or the
// first LexError encountered.
func newStream(src *token.Source, opts config.Options, tracer *diagnostic.Tracer) (*stream, error) {
	sc := scanner.NewTraced(src, opts, tracer)
	var toks []token.Token
	for {
		tok, err := scanner.FilteredNext(sc)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.ENDMARKER {
			break
		}
	}
	return &stream{toks: toks, tracer: tracer}, nil
}

func (s *stream) cur() token.Token { return s.toks[s.pos] }

func (s *stream) peek() token.Token { return s.toks[s.pos] }

// peekAt returns the token n positions ahead of the cursor, clamped to
// the final ENDMARKER if n runs past the end.
func (s *stream) peekAt(n int) token.Token {
	i := s.pos + n
	if i >= len(s.toks) {
		i = len(s.toks) - 1
	}
	if i < 0 {
		i = 0
	}
	return s.toks[i]
}

func (s *stream) advance() token.Token {
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

// mark/reset implement the checkpoint used by ordered-choice backtracking.
func (s *stream) mark() int { return s.pos }

func (s *stream) reset(mark int) { s.pos = mark }

func (s *stream) at(k token.Kind) bool { return s.cur().Kind == k }

// atOp reports whether the current token is an OP/keyword-like token
// whose text matches one of the given candidates.
func (s *stream) atOp(texts ...string) bool {
	cur := s.cur()
	if cur.Kind != token.OP && cur.Kind != token.NAME {
		return false
	}
	text := cur.Text()
	for _, t := range texts {
		if text == t {
			return true
		}
	}
	return false
}

// atKeyword reports whether the current token is a NAME whose text is
// exactly kw (Python keywords are ordinary NAME tokens; the parser, not
// the scanner, is responsible for recognizing them contextually).
func (s *stream) atKeyword(kw string) bool {
	cur := s.cur()
	return cur.Kind == token.NAME && cur.Text() == kw
}

func (s *stream) errorf(pos token.Position, format string, args ...interface{}) {
	panic(&SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos})
}

// expect consumes the current token if it has kind k, else raises a
// SyntaxError (a committed failure: the grammar has already chosen this
// production and there is no alternative left to backtrack into).
func (s *stream) expect(k token.Kind) token.Token {
	if !s.at(k) {
		s.errorf(s.cur().Start, "got %s, want %s", s.cur().Kind, k)
	}
	return s.advance()
}

// expectOp is like expect but matches OP/NAME text rather than Kind.
func (s *stream) expectOp(text string) token.Token {
	if !s.atOp(text) {
		s.errorf(s.cur().Start, "got %q, want %q", s.cur().Text(), text)
	}
	return s.advance()
}

func (s *stream) expectKeyword(kw string) token.Token {
	if !s.atKeyword(kw) {
		s.errorf(s.cur().Start, "got %q, want keyword %q", s.cur().Text(), kw)
	}
	return s.advance()
}
