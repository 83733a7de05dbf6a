package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xonsh/peg-parser-sub000/ast"
	"github.com/xonsh/peg-parser-sub000/internal/config"
	"github.com/xonsh/peg-parser-sub000/token"
)

func parseModuleSrc(t *testing.T, src string) *ast.ModuleNode {
	t.Helper()
	mod, err := Parse(token.NewSource("<test>", []byte(src)), config.Default())
	require.NoError(t, err)
	require.NotNil(t, mod)
	return mod
}

func parseExprSrc(t *testing.T, src string) ast.Expr {
	t.Helper()
	e, err := ParseExpr(token.NewSource("<test>", []byte(src)), config.Default())
	require.NoError(t, err)
	require.NotNil(t, e)
	return e
}

func TestParseExprPrecedence(t *testing.T) {
	e := parseExprSrc(t, "1 + 2 * 3")
	bin, ok := e.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.Add, bin.Op)
	_, rhsIsMul := bin.Right.(*ast.BinOp)
	require.True(t, rhsIsMul)
}

func TestParseExprPowerIsRightAssociative(t *testing.T) {
	e := parseExprSrc(t, "2 ** 3 ** 2")
	bin, ok := e.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, ast.Pow, bin.Op)
	lhs, ok := bin.Left.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, int64(2), lhs.Value)
	_, rhsIsPow := bin.Right.(*ast.BinOp)
	require.True(t, rhsIsPow)
}

func TestParseExprComparisonChain(t *testing.T) {
	e := parseExprSrc(t, "a < b <= c")
	cmp, ok := e.(*ast.Compare)
	require.True(t, ok)
	assert.Equal(t, []ast.CmpOp{ast.Lt, ast.LtE}, cmp.Ops)
	assert.Len(t, cmp.Comparators, 2)
}

func TestParseExprIsNotAndNotIn(t *testing.T) {
	e := parseExprSrc(t, "a is not b")
	cmp, ok := e.(*ast.Compare)
	require.True(t, ok)
	assert.Equal(t, []ast.CmpOp{ast.IsNot}, cmp.Ops)

	e2 := parseExprSrc(t, "a not in b")
	cmp2, ok := e2.(*ast.Compare)
	require.True(t, ok)
	assert.Equal(t, []ast.CmpOp{ast.NotIn}, cmp2.Ops)
}

func TestParseExprCallWithArgs(t *testing.T) {
	e := parseExprSrc(t, "f(1, *a, b=2, **kw)")
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	_, isStarred := call.Args[1].(*ast.Starred)
	assert.True(t, isStarred)
	require.Len(t, call.Keywords, 2)
	assert.Equal(t, "b", call.Keywords[0].Arg)
	assert.Equal(t, "", call.Keywords[1].Arg) // **kw
}

func TestParseExprAttributeSubscriptChain(t *testing.T) {
	e := parseExprSrc(t, "a.b[1].c")
	attr, ok := e.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "c", attr.Attr)
	_, ok = attr.Value.(*ast.Subscript)
	require.True(t, ok)
}

func TestParseExprSlice(t *testing.T) {
	e := parseExprSrc(t, "a[1:2:3]")
	sub, ok := e.(*ast.Subscript)
	require.True(t, ok)
	sl, ok := sub.Slice.(*ast.Slice)
	require.True(t, ok)
	require.NotNil(t, sl.Lower)
	require.NotNil(t, sl.Upper)
	require.NotNil(t, sl.Step)
}

func TestParseExprListDictSetComprehensions(t *testing.T) {
	e := parseExprSrc(t, "[x for x in y if x]")
	lc, ok := e.(*ast.ListComp)
	require.True(t, ok)
	require.Len(t, lc.Generators, 1)
	assert.Len(t, lc.Generators[0].Ifs, 1)

	e2 := parseExprSrc(t, "{k: v for k, v in items}")
	_, ok = e2.(*ast.DictComp)
	require.True(t, ok)

	e3 := parseExprSrc(t, "{x for x in y}")
	_, ok = e3.(*ast.SetComp)
	require.True(t, ok)
}

func TestParseExprFString(t *testing.T) {
	e := parseExprSrc(t, `f"hello {name!r:>10}"`)
	js, ok := e.(*ast.JoinedStr)
	require.True(t, ok)
	require.Len(t, js.Values, 2)
	fv, ok := js.Values[1].(*ast.FormattedValue)
	require.True(t, ok)
	assert.Equal(t, 'r', fv.Conversion)
	require.NotNil(t, fv.FormatSpec)
}

func TestParseExprImplicitStringConcat(t *testing.T) {
	e := parseExprSrc(t, `"a" "b" "c"`)
	c, ok := e.(*ast.Constant)
	require.True(t, ok)
	assert.Equal(t, "abc", c.Value)
}

func TestParseStmtAssignmentForms(t *testing.T) {
	mod := parseModuleSrc(t, "x: int = 1\ny += 1\na = b = 2\nz\n")
	require.Len(t, mod.Body, 4)
	_, ok := mod.Body[0].(*ast.AnnAssign)
	assert.True(t, ok)
	_, ok = mod.Body[1].(*ast.AugAssign)
	assert.True(t, ok)
	assign, ok := mod.Body[2].(*ast.Assign)
	require.True(t, ok)
	assert.Len(t, assign.Targets, 2)
	_, ok = mod.Body[3].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseStmtIfElifElse(t *testing.T) {
	mod := parseModuleSrc(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	ifStmt, ok := mod.Body[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.OrElse, 1)
	_, ok = ifStmt.OrElse[0].(*ast.If)
	assert.True(t, ok)
}

func TestParseStmtFunctionDef(t *testing.T) {
	mod := parseModuleSrc(t, "def f(a, b=1, *args, c, d=2, **kwargs) -> int:\n    return a\n")
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name)
	require.NotNil(t, fn.Returns)
	assert.Len(t, fn.Args.Args, 2)
	assert.NotNil(t, fn.Args.VarArg)
	assert.Len(t, fn.Args.KwOnlyArgs, 2)
	assert.NotNil(t, fn.Args.KwArg)
}

func TestParseStmtFunctionDefPosOnlyAndKwOnly(t *testing.T) {
	mod := parseModuleSrc(t, "def f(a, b, /, c, *, d, e=1):\n    pass\n")
	fn, ok := mod.Body[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Len(t, fn.Args.PosOnlyArgs, 2)
	assert.Len(t, fn.Args.Args, 1)
	assert.Len(t, fn.Args.KwOnlyArgs, 2)
	assert.Nil(t, fn.Args.VarArg)
}

func TestParseStmtFunctionDefInvalidParamLists(t *testing.T) {
	invalid := []string{
		"def f(a, /, b, /): pass\n",
		"def f(*args, /): pass\n",
		"def f(**a, **b): pass\n",
	}
	for _, src := range invalid {
		_, err := Parse(token.NewSource("<test>", []byte(src)), config.Default())
		require.Error(t, err, src)
		var se *SyntaxError
		require.ErrorAs(t, err, &se, src)
	}
}

func TestParseStmtAsyncDef(t *testing.T) {
	mod := parseModuleSrc(t, "async def f():\n    await g()\n")
	_, ok := mod.Body[0].(*ast.AsyncFunctionDef)
	assert.True(t, ok)
}

func TestParseStmtClassDef(t *testing.T) {
	mod := parseModuleSrc(t, "class A(B, metaclass=C):\n    pass\n")
	cls, ok := mod.Body[0].(*ast.ClassDef)
	require.True(t, ok)
	assert.Equal(t, "A", cls.Name)
	require.Len(t, cls.Bases, 1)
	require.Len(t, cls.Keywords, 1)
	assert.Equal(t, "metaclass", cls.Keywords[0].Arg)
}

func TestParseStmtTryExceptStar(t *testing.T) {
	mod := parseModuleSrc(t, "try:\n    pass\nexcept* ValueError as e:\n    pass\nfinally:\n    pass\n")
	ts, ok := mod.Body[0].(*ast.TryStar)
	require.True(t, ok)
	require.Len(t, ts.Handlers, 1)
	assert.Equal(t, "e", ts.Handlers[0].Name)
	require.Len(t, ts.FinalBody, 1)
}

func TestParseStmtWithMultipleItems(t *testing.T) {
	mod := parseModuleSrc(t, "with a() as x, b() as y:\n    pass\n")
	w, ok := mod.Body[0].(*ast.With)
	require.True(t, ok)
	require.Len(t, w.Items, 2)
	_, ok = w.Items[1].OptionalVars.(*ast.Name)
	assert.True(t, ok)
}

func TestParseStmtImportForms(t *testing.T) {
	mod := parseModuleSrc(t, "import a.b as c\nfrom . import x\nfrom ...pkg import (y, z as w)\n")
	imp, ok := mod.Body[0].(*ast.Import)
	require.True(t, ok)
	assert.Equal(t, "a.b", imp.Names[0].Name)
	assert.Equal(t, "c", imp.Names[0].AsName)

	from1, ok := mod.Body[1].(*ast.ImportFrom)
	require.True(t, ok)
	assert.Equal(t, 1, from1.Level)

	from2, ok := mod.Body[2].(*ast.ImportFrom)
	require.True(t, ok)
	assert.Equal(t, 3, from2.Level)
	require.Len(t, from2.Names, 2)
	assert.Equal(t, "w", from2.Names[1].AsName)
}

func TestParseStmtMatchCase(t *testing.T) {
	src := "match point:\n" +
		"    case Point(x=0, y=0):\n" +
		"        pass\n" +
		"    case Point(x=x, y=y) if x == y:\n" +
		"        pass\n" +
		"    case [a, *rest]:\n" +
		"        pass\n" +
		"    case {\"k\": v, **rest}:\n" +
		"        pass\n" +
		"    case _:\n" +
		"        pass\n"
	mod := parseModuleSrc(t, src)
	m, ok := mod.Body[0].(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 5)

	_, ok = m.Cases[0].Pattern.(*ast.MatchClass)
	assert.True(t, ok)

	require.NotNil(t, m.Cases[1].Guard)

	seq, ok := m.Cases[2].Pattern.(*ast.MatchSequence)
	require.True(t, ok)
	require.Len(t, seq.Patterns, 2)
	_, ok = seq.Patterns[1].(*ast.MatchStar)
	assert.True(t, ok)

	mp, ok := m.Cases[3].Pattern.(*ast.MatchMapping)
	require.True(t, ok)
	assert.Equal(t, "rest", mp.Rest)

	wildcard, ok := m.Cases[4].Pattern.(*ast.MatchAs)
	require.True(t, ok)
	assert.Equal(t, "", wildcard.Name)
	assert.Nil(t, wildcard.Pattern)
}

func TestParseStmtMatchSoftKeywordAsName(t *testing.T) {
	mod := parseModuleSrc(t, "match = 1\nmatch.attr\nmatch(1, 2)\n")
	_, ok := mod.Body[0].(*ast.Assign)
	assert.True(t, ok)
	_, ok = mod.Body[1].(*ast.ExprStmt)
	assert.True(t, ok)
	_, ok = mod.Body[2].(*ast.ExprStmt)
	assert.True(t, ok)
}

func TestParseExprTrailingErrorIsSyntaxError(t *testing.T) {
	_, err := ParseExpr(token.NewSource("<test>", []byte("1 +")), config.Default())
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}
