package scanner

import "github.com/xonsh/peg-parser-sub000/token"

// filtered reports whether a token kind is dropped before reaching the
// parser (component §4.3): WS, NL, COMMENT, ENCODING, TYPE_COMMENT.
func filtered(k token.Kind) bool {
	switch k {
	case token.WS, token.NL, token.COMMENT, token.ENCODING, token.TYPE_COMMENT:
		return true
	}
	return false
}

// FilteredNext pulls tokens from sc, skipping filtered kinds, and returns
// the next token the parser should see.
func FilteredNext(sc *Scanner) (token.Token, error) {
	for {
		tok, err := sc.Next()
		if err != nil {
			return token.Token{}, err
		}
		if !filtered(tok.Kind) {
			return tok, nil
		}
	}
}

// Filter drops WS/NL/COMMENT/ENCODING/TYPE_COMMENT tokens from an
// already-materialized unfiltered token slice (the scanner tests use it
// to compare token kinds as the parser would see them).
func Filter(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !filtered(t.Kind) {
			out = append(out, t)
		}
	}
	return out
}
