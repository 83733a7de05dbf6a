// Package scanner implements the physical-line tokenizer: component B
// (state), component C (lexical scanners), and component D (the driver
// that dispatches a scanner per state + lookahead byte and synthesizes
// INDENT/DEDENT/NEWLINE/ENDMARKER at stream boundaries).
package scanner

import (
	"fmt"

	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/internal/diagnostic"
	"github.com/xonsh/peg-parser-sub000/token"
)

// LexError is the one hard, unrecoverable lexing failure: an unterminated
// string or f-string, or a dedent to a level absent from the indent
// stack. All other unclassifiable input becomes an ERRORTOKEN and
// scanning continues (per spec §7's lex-error taxonomy).
type LexError struct {
	Msg string
	Pos token.Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

// Scanner is the tokenizer driver (component D). One Scanner is created
// per source buffer and is never shared across goroutines (§5).
type Scanner struct {
	src    *token.Source
	opts   config.Options
	st     state
	offset int
	line   int
	col    int

	eofEmitted bool
	endTok     token.Token

	tracer *diagnostic.Tracer
}

// New creates a Scanner over src using opts.
func New(src *token.Source, opts config.Options) *Scanner {
	return &Scanner{src: src, opts: opts, st: newState(), line: 1, col: 0}
}

// NewTraced is like New but logs one structured entry per emitted token.
func NewTraced(src *token.Source, opts config.Options, tracer *diagnostic.Tracer) *Scanner {
	s := New(src, opts)
	s.tracer = tracer
	return s
}

func (s *Scanner) pos() token.Position { return token.Position{Line: s.line, Col: s.col} }

// advance moves the cursor offset..newOffset, updating line/col by
// scanning the consumed bytes rune by rune (coordinates are counted in
// Unicode scalar values, not byte counts).
func (s *Scanner) advance(newOffset int) {
	b := s.src.Bytes[s.offset:newOffset]
	for len(b) > 0 {
		r, size := decodeRuneSize(b)
		if r == '\n' {
			s.line++
			s.col = 0
		} else {
			s.col++
		}
		b = b[size:]
	}
	s.offset = newOffset
}

func (s *Scanner) emit(kind token.Kind, start int, startPos token.Position) token.Token {
	end := s.offset
	tok := token.New(kind, token.Span{Start: start, End: end}, startPos, s.pos(), s.src)
	if s.tracer != nil {
		s.tracer.Token(kind, tok.Text(), startPos.Line, startPos.Col)
	}
	return tok
}

// Next returns the next raw (unfiltered) token. It never returns an error
// for recoverable lex problems (those become ERRORTOKEN); it returns a
// *LexError only for unterminated strings/f-strings and invalid dedents.
func (s *Scanner) Next() (token.Token, error) {
	for {
		if s.offset >= len(s.src.Bytes) {
			return s.handleEOF()
		}

		if consumed, ok := s.tryLineContinuation(); ok {
			s.advance(consumed)
			continue
		}

		if s.st.atLineStart {
			start := s.offset
			startPos := s.pos()
			newOffset, outcome, err := resolveIndent(s.src.Bytes, s.offset, &s.st, s.opts.TabWidth)
			if err != nil {
				if s.tracer != nil {
					s.tracer.Error(err.Error(), startPos.Line, startPos.Col)
				}
				return token.Token{}, &LexError{Msg: err.Error(), Pos: startPos}
			}
			switch outcome {
			case indentSkip:
				s.advance(newOffset)
				if !looksBlank(s.src.Bytes, s.offset) {
					s.st.atLineStart = false
				}
				return s.emit(token.WS, start, startPos), nil
			case indentPush:
				s.st.atLineStart = false
				s.advance(newOffset)
				return s.emit(token.INDENT, start, startPos), nil
			case indentPop:
				s.st.atLineStart = true
				return s.emit(token.DEDENT, start, startPos), nil
			case indentNotApplicable:
				// fall through to ordinary dispatch below
				if !looksBlank(s.src.Bytes, s.offset) {
					s.st.atLineStart = false
				}
			}
		}

		return s.dispatch()
	}
}

// tryLineContinuation matches a backslash optionally followed by
// whitespace and a line ending; it does not mutate scanner state itself,
// leaving that to the caller's advance().
func (s *Scanner) tryLineContinuation() (int, bool) {
	b, i := s.src.Bytes, s.offset
	if i >= len(b) || b[i] != '\\' {
		return 0, false
	}
	j := i + 1
	if k, ok := scanWhitespace(b, j); ok {
		j = k
	}
	if k, ok := scanLineEnding(b, j); ok {
		return k, true
	}
	return 0, false
}

func (s *Scanner) handleEOF() (token.Token, error) {
	if s.st.inFString() {
		frame := s.st.topFString()
		return token.Token{}, &LexError{
			Msg: fmt.Sprintf("unterminated f-string literal (quote %q)", string(frame.quote)),
			Pos: s.pos(),
		}
	}
	if s.eofEmitted {
		return s.endTok, nil
	}
	if !s.st.atLineStart {
		s.st.atLineStart = true
	}
	if s.st.contentSeen {
		s.st.contentSeen = false
		start := s.offset
		startPos := s.pos()
		return s.emit(token.NEWLINE, start, startPos), nil
	}
	if s.st.indents.len() > 1 {
		s.st.indents.pop()
		start := s.offset
		startPos := s.pos()
		return s.emit(token.DEDENT, start, startPos), nil
	}
	s.eofEmitted = true
	start := s.offset
	startPos := s.pos()
	s.endTok = s.emit(token.ENDMARKER, start, startPos)
	return s.endTok, nil
}

// dispatch selects a scanner by current state and the first byte of
// lookahead (component D's dispatch table, spec §4.2).
func (s *Scanner) dispatch() (token.Token, error) {
	b := s.src.Bytes
	i := s.offset
	start := i
	startPos := s.pos()

	if s.st.inFString() && s.st.topFString().braceDepth == 0 {
		if j, res, ok := scanFStringMiddle(b, i, &s.st); ok {
			s.advance(j)
			switch res {
			case fstrMiddleEnd:
				return s.emit(token.FSTRING_END, start, startPos), nil
			case fstrMiddleOpenBrace, fstrMiddleCloseBrace:
				s.st.contentSeen = true
				return s.emit(token.OP, start, startPos), nil
			default:
				return s.emit(token.FSTRING_MIDDLE, start, startPos), nil
			}
		}
		return s.errorToken(start, startPos)
	}

	c := b[i]
	switch {
	case isSpace(c):
		j, _ := scanWhitespace(b, i)
		s.advance(j)
		return s.emit(token.WS, start, startPos), nil

	case c == '#':
		j, _ := scanComment(b, i)
		s.advance(j)
		return s.emit(token.COMMENT, start, startPos), nil

	case c == '\r' || c == '\n':
		j, _ := scanLineEnding(b, i)
		nlKind := token.NEWLINE
		if s.st.bracketDepth > 0 || s.st.inFString() || !s.st.contentSeen {
			nlKind = token.NL
		}
		s.advance(j)
		s.st.contentSeen = false
		s.st.atLineStart = true
		return s.emit(nlKind, start, startPos), nil

	case isDigit(c):
		if j, ok := scanNumber(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.NUMBER, start, startPos), nil
		}
		return s.errorToken(start, startPos)

	case c == '.':
		if j, ok := scanNumber(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.NUMBER, start, startPos), nil
		}
		return s.opOrError(start, startPos)

	case c == '\'' || c == '"':
		if j, ok := scanFStringStart(b, i, &s.st); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.FSTRING_START, start, startPos), nil
		}
		if j, ok := scanPrefixedString(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.STRING, start, startPos), nil
		}
		return s.unterminatedString(start, startPos)

	case c == '`':
		if !s.opts.EnableShellExtensions {
			return s.errorToken(start, startPos)
		}
		if j, ok := scanSearchPath(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.SEARCH_PATH, start, startPos), nil
		}
		return s.errorToken(start, startPos)

	case c == '@':
		if s.opts.EnableShellExtensions {
			if j, ok := scanSearchPath(b, i); ok {
				s.advance(j)
				s.st.contentSeen = true
				return s.emit(token.SEARCH_PATH, start, startPos), nil
			}
		}
		return s.opOrError(start, startPos)

	case isIdentStart(c):
		if j, ok := scanFStringStart(b, i, &s.st); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.FSTRING_START, start, startPos), nil
		}
		if s.opts.EnableShellExtensions {
			if j, ok := scanSearchPath(b, i); ok {
				s.advance(j)
				s.st.contentSeen = true
				return s.emit(token.SEARCH_PATH, start, startPos), nil
			}
		}
		if j, ok := scanPrefixedString(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			return s.emit(token.STRING, start, startPos), nil
		}
		if j, ok := scanIdentifier(b, i); ok {
			s.advance(j)
			s.st.contentSeen = true
			text := string(b[i:j])
			kind := token.NAME
			switch text {
			case "async":
				kind = token.ASYNC
			case "await":
				kind = token.AWAIT
			}
			return s.emit(kind, start, startPos), nil
		}
		return s.errorToken(start, startPos)

	default:
		return s.opOrError(start, startPos)
	}
}

func (s *Scanner) opOrError(start int, startPos token.Position) (token.Token, error) {
	b := s.src.Bytes
	if j, text, ok := scanOperator(b, s.offset, s.opts.EnableShellExtensions); ok {
		s.advance(j)
		s.st.contentSeen = true
		s.applyOpEffects(text)
		return s.emit(token.OP, start, startPos), nil
	}
	return s.errorToken(start, startPos)
}

// applyOpEffects updates bracket-depth and, when inside an f-string
// expression region, the frame's brace-depth/format-spec state, per
// spec §4.2 "After a successful OP".
func (s *Scanner) applyOpEffects(op string) {
	switch op {
	case "(", "[", "{":
		s.st.incBracket()
	case ")", "]", "}":
		s.st.decBracket()
	}

	frame := s.st.topFString()
	if frame == nil || frame.braceDepth <= 0 {
		return
	}
	switch op {
	case "{":
		frame.braceDepth++
	case "}":
		frame.braceDepth--
		if frame.braceDepth == 0 && frame.inFormatSpec {
			frame.inFormatSpec = false
		}
	case ":":
		if frame.braceDepth == 1 && s.st.bracketDepth == len(s.st.fstrings) {
			frame.inFormatSpec = true
			frame.braceDepth = 0
		}
	}
}

func (s *Scanner) errorToken(start int, startPos token.Position) (token.Token, error) {
	b := s.src.Bytes
	_, size := decodeRuneSize(b[s.offset:])
	if size == 0 {
		size = 1
	}
	s.advance(s.offset + size)
	s.st.contentSeen = true
	return s.emit(token.ERRORTOKEN, start, startPos), nil
}

func (s *Scanner) unterminatedString(start int, startPos token.Position) (token.Token, error) {
	return token.Token{}, &LexError{Msg: "unterminated string literal", Pos: startPos}
}

// Tokenize runs a Scanner to completion and returns every raw
// (unfiltered) token including the trailing ENDMARKER.
func Tokenize(src *token.Source, opts config.Options) ([]token.Token, error) {
	sc := New(src, opts)
	var toks []token.Token
	for {
		tok, err := sc.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.ENDMARKER {
			return toks, nil
		}
	}
}
