package parser

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/xonsh/peg-parser-sub000/ast"
)

// evalNumber is component J for NUMBER tokens: it converts the raw
// lexeme (already validated by the scanner) into the Go value an
// ast.Constant carries. The standard library's strconv covers every
// numeric base Python's grammar defines; no third-party numeric parser
// in this pack does better (see DESIGN.md).
func evalNumber(raw string) (interface{}, error) {
	text := strings.ReplaceAll(raw, "_", "")

	imaginary := false
	if strings.HasSuffix(text, "j") || strings.HasSuffix(text, "J") {
		imaginary = true
		text = text[:len(text)-1]
	}

	switch {
	case strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X"):
		return bigIntOrValue(text, 16, imaginary)
	case strings.HasPrefix(text, "0o") || strings.HasPrefix(text, "0O"):
		return bigIntOrValue(text, 8, imaginary)
	case strings.HasPrefix(text, "0b") || strings.HasPrefix(text, "0B"):
		return bigIntOrValue(text, 2, imaginary)
	}

	isFloat := strings.ContainsAny(text, ".eE")
	if imaginary {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return complex(0, f), nil
	}
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i, nil
	}
	bi, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, &SyntaxError{Msg: "invalid numeric literal " + raw}
	}
	return bi, nil
}

func bigIntOrValue(text string, base int, imaginary bool) (interface{}, error) {
	digits := text[2:]
	if imaginary {
		bi, ok := new(big.Int).SetString(digits, base)
		if !ok {
			return nil, &SyntaxError{Msg: "invalid numeric literal " + text}
		}
		f, _ := new(big.Float).SetInt(bi).Float64()
		return complex(0, f), nil
	}
	if i, err := strconv.ParseInt(digits, base, 64); err == nil {
		return i, nil
	}
	bi, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, &SyntaxError{Msg: "invalid numeric literal " + text}
	}
	return bi, nil
}

// stringLiteral holds the decomposed parts of a scanned STRING token
// (prefix letters and the raw inner text between quotes).
type stringLiteral struct {
	prefix string // lowercased
	inner  string
}

// splitStringToken separates a raw STRING lexeme into its prefix and
// quoted body, stripping the (1 or 3 byte) quote characters.
func splitStringToken(raw string) stringLiteral {
	i := 0
	for i < len(raw) && raw[i] != '\'' && raw[i] != '"' {
		i++
	}
	prefix := strings.ToLower(raw[:i])
	rest := raw[i:]
	quote := rest[0]
	ql := 1
	if len(rest) >= 6 && rest[1] == quote && rest[2] == quote {
		ql = 3
	}
	inner := rest[ql : len(rest)-ql]
	return stringLiteral{prefix: prefix, inner: inner}
}

// evalString is component J for STRING tokens: it decodes backslash
// escapes (unless the literal is raw) and returns either a string or,
// for a b-prefixed literal, a []byte — matching Python's str/bytes
// distinction. No escape decoding happens for a raw ("r") prefix.
func evalString(lit stringLiteral) (interface{}, error) {
	isRaw := strings.Contains(lit.prefix, "r")
	isBytes := strings.Contains(lit.prefix, "b")

	var decoded string
	if isRaw {
		decoded = lit.inner
	} else {
		d, err := decodeEscapes(lit.inner)
		if err != nil {
			return nil, err
		}
		decoded = d
	}

	if isBytes {
		return []byte(decoded), nil
	}
	return decoded, nil
}

// escapeTable maps the character following a backslash to its decoded
// rune, for the fixed single-character escapes Python recognizes.
var escapeTable = map[byte]rune{
	'\\': '\\', '\'': '\'', '"': '"', 'a': '\a', 'b': '\b',
	'f': '\f', 'n': '\n', 'r': '\r', 't': '\t', 'v': '\v',
}

// decodeEscapes walks a non-raw string body, expanding backslash escapes
// (\n, \t, \xHH, \uHHHH, \UHHHHHHHH, \ooo, and a bare-backslash-newline
// line splice). An escape sequence this walker doesn't recognize is
// passed through literally, matching CPython's lenient behavior.
func decodeEscapes(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			i++
			continue
		}
		next := s[i+1]
		if r, ok := escapeTable[next]; ok {
			b.WriteRune(r)
			i += 2
			continue
		}
		switch next {
		case '\n':
			i += 2 // escaped newline: line splice, emits nothing
		case 'x':
			if i+4 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
					b.WriteByte(byte(v))
					i += 4
					continue
				}
			}
			b.WriteByte(c)
			i++
		case 'u':
			if i+6 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 6
					continue
				}
			}
			b.WriteByte(c)
			i++
		case 'U':
			if i+10 <= len(s) {
				if v, err := strconv.ParseUint(s[i+2:i+10], 16, 32); err == nil {
					b.WriteRune(rune(v))
					i += 10
					continue
				}
			}
			b.WriteByte(c)
			i++
		default:
			if next >= '0' && next <= '7' {
				j := i + 1
				for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
					j++
				}
				if v, err := strconv.ParseUint(s[i+1:j], 8, 16); err == nil {
					b.WriteByte(byte(v))
					i = j
					continue
				}
			}
			b.WriteByte(c)
			b.WriteByte(next)
			i += 2
		}
	}
	return b.String(), nil
}

// concatAdjacentStrings implements Python's implicit adjacent-string-
// literal concatenation (component F): a run of bare Constant string/
// bytes nodes collapses into one node, concatenating their values; a
// JoinedStr (f-string) breaks the run and forces the whole group to
// become one JoinedStr whose parts are the concatenated pieces.
func concatAdjacentStrings(parts []ast.Expr) ast.Expr {
	if len(parts) == 1 {
		return parts[0]
	}

	allPlain := true
	for _, p := range parts {
		if _, ok := p.(*ast.Constant); !ok {
			allPlain = false
			break
		}
	}
	if allPlain {
		first := parts[0].(*ast.Constant)
		if sval, ok := first.Value.(string); ok {
			var b strings.Builder
			b.WriteString(sval)
			for _, p := range parts[1:] {
				b.WriteString(p.(*ast.Constant).Value.(string))
			}
			return ast.NewConstant(b.String(), first.Kind)
		}
		var buf []byte
		buf = append(buf, first.Value.([]byte)...)
		for _, p := range parts[1:] {
			buf = append(buf, p.(*ast.Constant).Value.([]byte)...)
		}
		return ast.NewConstant(buf, first.Kind)
	}

	var values []ast.Expr
	for _, p := range parts {
		if js, ok := p.(*ast.JoinedStr); ok {
			values = append(values, js.Values...)
		} else {
			values = append(values, p)
		}
	}
	return ast.NewJoinedStr(values)
}
