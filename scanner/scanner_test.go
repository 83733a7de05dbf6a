package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	sc := New(token.NewSource("<test>", []byte(src)), config.Default())
	var toks []token.Token
	for {
		tok, err := sc.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == token.ENDMARKER {
			break
		}
	}
	return toks
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestNextBasicTokens(t *testing.T) {
	test := func(input string, expected ...token.Kind) func(*testing.T) {
		return func(t *testing.T) {
			toks := Filter(scanAll(t, input))
			assert.Equal(t, append(append([]token.Kind{}, expected...), token.ENDMARKER), kinds(toks))
		}
	}

	t.Run("name", test("hello", token.NAME, token.NEWLINE))
	t.Run("number_int", test("123", token.NUMBER, token.NEWLINE))
	t.Run("number_float", test("1.5e3", token.NUMBER, token.NEWLINE))
	t.Run("number_hex", test("0x1F", token.NUMBER, token.NEWLINE))
	t.Run("string", test(`"hi"`, token.STRING, token.NEWLINE))
	t.Run("op_arrow", test("->", token.OP, token.NEWLINE))
	t.Run("op_walrus", test(":=", token.OP, token.NEWLINE))
	t.Run("op_power", test("**", token.OP, token.NEWLINE))
	t.Run("keyword_as_name", test("match", token.NAME, token.NEWLINE))
}

func TestNextIndentation(t *testing.T) {
	src := "if x:\n    y\n    z\nw\n"
	toks := Filter(scanAll(t, src))
	got := kinds(toks)
	want := []token.Kind{
		token.NAME, token.NAME, token.OP, token.NEWLINE,
		token.INDENT, token.NAME, token.NEWLINE,
		token.NAME, token.NEWLINE,
		token.DEDENT, token.NAME, token.NEWLINE,
		token.ENDMARKER,
	}
	assert.Equal(t, want, got)
}

func TestNextMultiLevelDedent(t *testing.T) {
	src := "if a:\n    if b:\n        x\ny\n"
	toks := Filter(scanAll(t, src))
	got := kinds(toks)
	want := []token.Kind{
		token.NAME, token.NAME, token.OP, token.NEWLINE,
		token.INDENT,
		token.NAME, token.NAME, token.OP, token.NEWLINE,
		token.INDENT,
		token.NAME, token.NEWLINE,
		token.DEDENT, token.DEDENT,
		token.NAME, token.NEWLINE,
		token.ENDMARKER,
	}
	assert.Equal(t, want, got)
}

func TestNextDedentToMismatchedLevelIsLexError(t *testing.T) {
	src := "if a:\n    if b:\n        x\n  y\n"
	sc := New(token.NewSource("<test>", []byte(src)), config.Default())
	var err error
	for {
		var tok token.Token
		tok, err = sc.Next()
		if err != nil || tok.Kind == token.ENDMARKER {
			break
		}
	}
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestNextStringPrefixes(t *testing.T) {
	for _, prefix := range []string{"r", "b", "u", "f", "rb", "br", "Rb", "fr", "RF"} {
		t.Run(prefix, func(t *testing.T) {
			toks := Filter(scanAll(t, prefix+`"x"`))
			require.GreaterOrEqual(t, len(toks), 1)
			assert.Contains(t, []token.Kind{token.STRING, token.FSTRING_START}, toks[0].Kind)
		})
	}
}

func TestNextUnterminatedStringIsLexError(t *testing.T) {
	sc := New(token.NewSource("<test>", []byte(`"abc`)), config.Default())
	var err error
	for {
		var tok token.Token
		tok, err = sc.Next()
		if err != nil || tok.Kind == token.ENDMARKER {
			break
		}
	}
	require.Error(t, err)
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
}

func TestNextDedentMismatchIsLexError(t *testing.T) {
	src := "if x:\n    y\n  z\n"
	sc := New(token.NewSource("<test>", []byte(src)), config.Default())
	var err error
	for {
		var tok token.Token
		tok, err = sc.Next()
		if err != nil || tok.Kind == token.ENDMARKER {
			break
		}
	}
	require.Error(t, err)
}

func TestFilteredNextSkipsCommentsAndWhitespace(t *testing.T) {
	sc := New(token.NewSource("<test>", []byte("x = 1  # comment\n")), config.Default())
	var got []token.Kind
	for {
		tok, err := FilteredNext(sc)
		require.NoError(t, err)
		got = append(got, tok.Kind)
		if tok.Kind == token.ENDMARKER {
			break
		}
	}
	assert.Equal(t, []token.Kind{token.NAME, token.OP, token.NUMBER, token.NEWLINE, token.ENDMARKER}, got)
}

func TestShellExtensionsToggle(t *testing.T) {
	src := "$(ls)"
	optsOn := config.Default()
	optsOn.EnableShellExtensions = true
	sc := New(token.NewSource("<test>", []byte(src)), optsOn)
	tok, err := sc.Next()
	require.NoError(t, err)
	assert.NotEqual(t, token.ERRORTOKEN, tok.Kind)
}
