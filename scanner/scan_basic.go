package scanner

// Pure lexical scanners (component C): each takes the full source buffer
// and a start offset and either succeeds, returning the new offset, or
// fails leaving the offset untouched. None of these mutate tokenizer
// state; the few that need state to decide what to accept (the
// indentation resolver, f-string middle/start) live in their own files
// since the spec treats them as the stateful exception within component C.

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\f' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }

func isBinDigit(b byte) bool { return b == '0' || b == '1' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

// scanWhitespace matches one or more of SP/HT/FF.
func scanWhitespace(src []byte, i int) (int, bool) {
	j := i
	for j < len(src) && isSpace(src[j]) {
		j++
	}
	return j, j > i
}

// scanComment matches '#' followed by any run of non-newline bytes. The
// terminating newline is not consumed.
func scanComment(src []byte, i int) (int, bool) {
	if i >= len(src) || src[i] != '#' {
		return i, false
	}
	j := i + 1
	for j < len(src) && src[j] != '\n' && src[j] != '\r' {
		j++
	}
	return j, true
}

// scanLineEnding matches an optional CR then LF (i.e. "\r\n", "\n", or a
// lone "\r").
func scanLineEnding(src []byte, i int) (int, bool) {
	if i >= len(src) {
		return i, false
	}
	if src[i] == '\r' {
		j := i + 1
		if j < len(src) && src[j] == '\n' {
			j++
		}
		return j, true
	}
	if src[i] == '\n' {
		return i + 1, true
	}
	return i, false
}

// scanIdentifier matches one or more identifier-continuation bytes, the
// first of which must not be an ASCII digit.
func scanIdentifier(src []byte, i int) (int, bool) {
	if i >= len(src) || !isIdentStart(src[i]) {
		return i, false
	}
	j := i + 1
	for j < len(src) && isIdentCont(src[j]) {
		j++
	}
	return j, true
}

// scanDigitsGrouped matches one or more digits of the given class, with a
// single '_' permitted only between two digits of that class.
func scanDigitsGrouped(src []byte, i int, class func(byte) bool) (int, bool) {
	if i >= len(src) || !class(src[i]) {
		return i, false
	}
	j := i + 1
	for j < len(src) && class(src[j]) {
		j++
	}
	for j+1 < len(src) && src[j] == '_' && class(src[j+1]) {
		j++
		for j < len(src) && class(src[j]) {
			j++
		}
	}
	return j, true
}

// scanNumber matches the longest of: hex/oct/bin literal, decimal
// int/float (with optional fraction and exponent), or a leading-dot
// float, each with '_' digit grouping. Decimal and float forms accept an
// optional trailing 'j'/'J' imaginary suffix (a supplement over the
// distilled spec's grammar; see SPEC_FULL.md); hex/oct/bin forms do not.
func scanNumber(src []byte, i int) (int, bool) {
	if i >= len(src) {
		return i, false
	}

	if src[i] == '0' && i+1 < len(src) {
		switch src[i+1] {
		case 'x', 'X':
			if j, ok := scanDigitsGrouped(src, i+2, isHexDigit); ok {
				return j, true
			}
			return i, false
		case 'b', 'B':
			if j, ok := scanDigitsGrouped(src, i+2, isBinDigit); ok {
				return j, true
			}
			return i, false
		case 'o', 'O':
			if j, ok := scanDigitsGrouped(src, i+2, isOctDigit); ok {
				return j, true
			}
			return i, false
		}
	}

	j := i
	sawDigits := false
	if k, ok := scanDigitsGrouped(src, j, isDigit); ok {
		j = k
		sawDigits = true
	}

	if j < len(src) && src[j] == '.' {
		j++
		if k, ok := scanDigitsGrouped(src, j, isDigit); ok {
			j = k
			sawDigits = true
		}
	}

	if !sawDigits {
		return i, false
	}

	if j < len(src) && (src[j] == 'e' || src[j] == 'E') {
		k := j + 1
		if k < len(src) && (src[k] == '+' || src[k] == '-') {
			k++
		}
		if m, ok := scanDigitsGrouped(src, k, isDigit); ok {
			j = m
		}
	}

	if j < len(src) && (src[j] == 'j' || src[j] == 'J') {
		j++
	}

	return j, true
}

// opsByLen is the fixed operator vocabulary, including the shell-extension
// operators, grouped by byte length so the driver can try longest-match
// first. Order within a length class does not matter since lookups are by
// exact string.
var opsByLen = [][]string{
	3: {"...", "**=", "//=", ">>=", "<<=", "@$("},
	2: {
		":=", "->", "**", "//", ">>", "<<", "<=", ">=", "==", "!=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
		"??", "||", "&&", "@(", "!(", "![", "$(", "$[", "${", "&>", ">&",
	},
	1: {
		"+", "-", "*", "/", "%", "@", "&", "|", "^", "~", "!", "?", "$",
		"(", ")", "[", "]", "{", "}", ",", ".", ":", ";", "<", ">", "=",
	},
}

// shellOps is the subset of the 2/3-length operator vocabulary that only
// exists for the xonsh-derived shell extensions; scanOperator consults it
// when config.Options.EnableShellExtensions is false.
var shellOps = map[string]bool{
	"??": true, "||": true, "&&": true,
	"@(": true, "!(": true, "![": true,
	"$(": true, "$[": true, "${": true,
	"&>": true, ">&": true, "@$(": true,
}

// scanOperator performs longest-match lookup over opsByLen. When
// shellExtensions is false, shell-only operators are skipped so shorter
// alternatives (or failure) are tried instead.
func scanOperator(src []byte, i int, shellExtensions bool) (int, string, bool) {
	for length := 3; length >= 1; length-- {
		if i+length > len(src) {
			continue
		}
		cand := string(src[i : i+length])
		if !shellExtensions && shellOps[cand] {
			continue
		}
		for _, op := range opsByLen[length] {
			if op == cand {
				return i + length, cand, true
			}
		}
	}
	return i, "", false
}

// prefixPairs is the set of valid two-letter (lowercased) string-literal
// prefix combinations.
var prefixPairs = map[[2]byte]bool{
	{'r', 'f'}: true, {'r', 'b'}: true, {'f', 'r'}: true, {'b', 'r'}: true,
	{'r', 'p'}: true, {'p', 'r'}: true, {'p', 'f'}: true, {'f', 'p'}: true,
}

var prefixSingles = map[byte]bool{'r': true, 'b': true, 'u': true, 'f': true, 'p': true}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

// scanStringPrefix matches the longest valid string-literal prefix: the
// closure of {r,b,u,f,p} under case, and under the eight two-letter
// orderings in {rf,rb,fr,br,rp,pr,pf,fp}, or the empty prefix (per
// DESIGN.md's resolution of the spec's Open Question about this set).
func scanStringPrefix(src []byte, i int) (int, bool) {
	isLetter := func(b byte) bool {
		l := lowerByte(b)
		return l == 'r' || l == 'b' || l == 'u' || l == 'f' || l == 'p'
	}
	if i+1 < len(src) && isLetter(src[i]) && isLetter(src[i+1]) {
		pair := [2]byte{lowerByte(src[i]), lowerByte(src[i+1])}
		if prefixPairs[pair] {
			return i + 2, true
		}
	}
	if i < len(src) && isLetter(src[i]) && prefixSingles[lowerByte(src[i])] {
		return i + 1, true
	}
	return i, true // empty prefix is always valid
}

// quoteLen reports the length (3 or 1) of the quote sequence starting at
// i, or 0 if none is present.
func quoteLen(src []byte, i int) int {
	if i+2 < len(src) && (src[i] == '"' || src[i] == '\'') && src[i+1] == src[i] && src[i+2] == src[i] {
		return 3
	}
	if i < len(src) && (src[i] == '"' || src[i] == '\'') {
		return 1
	}
	return 0
}

// scanFullString matches a (possibly already-prefixed) string literal
// body: a quote sequence, content up to the matching close, honoring '\'
// as an escape that never terminates the string. Single-quoted strings
// forbid an unescaped bare newline; triple-quoted strings do not.
// The offset i must already be positioned at the opening quote.
func scanFullString(src []byte, i int) (int, bool) {
	ql := quoteLen(src, i)
	if ql == 0 {
		return i, false
	}
	quote := src[i : i+ql]
	j := i + ql
	for {
		if j >= len(src) {
			return i, false // unterminated
		}
		if j+ql <= len(src) && string(src[j:j+ql]) == string(quote) {
			return j + ql, true
		}
		if src[j] == '\\' {
			j++
			if j < len(src) {
				j++
			}
			continue
		}
		if ql == 1 && (src[j] == '\n' || src[j] == '\r') {
			return i, false // unterminated: unescaped newline in single-quoted string
		}
		j++
	}
}

// scanPrefixedString matches an optional string prefix followed by a
// quoted string body (component C's "string literal": prefix letters
// then scanFullString). Used both when the cursor starts on a bare quote
// (empty prefix) and when it starts on a prefix letter.
func scanPrefixedString(src []byte, i int) (int, bool) {
	pEnd, _ := scanStringPrefix(src, i)
	return scanFullString(src, pEnd)
}

// scanSearchPath matches the shell search-path literal: an optional
// r/g/p/f flag run or an `@identifier` prefix, then a backtick-delimited
// body with '\.' escapes.
func scanSearchPath(src []byte, i int) (int, bool) {
	j := i
	if j < len(src) && src[j] == '@' {
		k := j + 1
		for k < len(src) && isIdentCont(src[k]) {
			k++
		}
		if k > j+1 {
			j = k
		}
	} else {
		k := j
		for k < len(src) && (src[k] == 'r' || src[k] == 'g' || src[k] == 'p' || src[k] == 'f') {
			k++
		}
		j = k
	}
	if j >= len(src) || src[j] != '`' {
		return i, false
	}
	j++
	for {
		if j >= len(src) {
			return i, false
		}
		if src[j] == '`' {
			return j + 1, true
		}
		if src[j] == '\\' && j+1 < len(src) {
			j += 2
			continue
		}
		j++
	}
}
