package ast

// BoolOp: op, values.
type BoolOp struct {
	base
	Op     BoolOpKind
	Values []Expr
}

func (*BoolOp) exprNode() {}

// BinOp: left, op, right.
type BinOp struct {
	base
	Left  Expr
	Op    Operator
	Right Expr
}

func (*BinOp) exprNode() {}

// UnaryOp: op, operand.
type UnaryOp struct {
	base
	Op      UnaryOpKind
	Operand Expr
}

func (*UnaryOp) exprNode() {}

// Lambda: args, body.
type Lambda struct {
	base
	Args *Arguments
	Body Expr
}

func (*Lambda) exprNode() {}

// IfExp: test, body, orelse.
type IfExp struct {
	base
	Test   Expr
	Body   Expr
	OrElse Expr
}

func (*IfExp) exprNode() {}

// Keyword is the `keyword` node used by Call and ClassDef: arg, value.
// Arg == "" denotes **kwargs expansion.
type Keyword struct {
	Arg   string
	Value Expr
}

// Dict: keys, values. A nil key at index i denotes a `**expr` expansion.
type Dict struct {
	base
	Keys   []Expr
	Values []Expr
}

func (*Dict) exprNode() {}

// Set: elts.
type Set struct {
	base
	Elts []Expr
}

func (*Set) exprNode() {}

// Comprehension is the `comprehension` node: target, iter, ifs, is_async.
type Comprehension struct {
	Target  Expr
	Iter    Expr
	Ifs     []Expr
	IsAsync bool
}

// ListComp / SetComp / DictComp / GeneratorExp: elt[, key], generators.
type ListComp struct {
	base
	Elt        Expr
	Generators []*Comprehension
}

func (*ListComp) exprNode() {}

type SetComp struct {
	base
	Elt        Expr
	Generators []*Comprehension
}

func (*SetComp) exprNode() {}

type DictComp struct {
	base
	Key        Expr
	Value      Expr
	Generators []*Comprehension
}

func (*DictComp) exprNode() {}

type GeneratorExp struct {
	base
	Elt        Expr
	Generators []*Comprehension
}

func (*GeneratorExp) exprNode() {}

// Await: value.
type Await struct {
	base
	Value Expr
}

func (*Await) exprNode() {}

// Yield: value (may be nil).
type Yield struct {
	base
	Value Expr
}

func (*Yield) exprNode() {}

// YieldFrom: value.
type YieldFrom struct {
	base
	Value Expr
}

func (*YieldFrom) exprNode() {}

// Compare: left, ops, comparators.
type Compare struct {
	base
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
}

func (*Compare) exprNode() {}

// Call: func, args, keywords.
type Call struct {
	base
	Func     Expr
	Args     []Expr
	Keywords []*Keyword
}

func (*Call) exprNode() {}

// JoinedStr: values (Constant and FormattedValue children).
type JoinedStr struct {
	base
	Values []Expr
}

func (*JoinedStr) exprNode() {}

// FormattedValue: value, conversion, format_spec.
type FormattedValue struct {
	base
	Value      Expr
	Conversion rune // -1 when absent; else one of 's','r','a'
	FormatSpec Expr // *JoinedStr, or nil
}

func (*FormattedValue) exprNode() {}

// Constant: value, kind. Value holds the already-evaluated Go value
// (component J's output): int64/float64/complex128/*big.Int/string/[]byte/
// bool/nil (for Python None) /ellipsisType{}.
type Constant struct {
	base
	Value interface{}
	Kind  string // "" normally; "u" for a u-prefixed string literal
}

func (*Constant) exprNode() {}

// Ellipsis is the sentinel Constant.Value for a bare `...` literal.
type ellipsisType struct{}

// Ellipsis is the singleton value stored in Constant.Value for `...`.
var Ellipsis = ellipsisType{}

// Attribute: value, attr, ctx.
type Attribute struct {
	base
	Value Expr
	Attr  string
	Ctx   ExprContext
}

func (*Attribute) exprNode() {}

// Subscript: value, slice, ctx.
type Subscript struct {
	base
	Value Expr
	Slice Expr
	Ctx   ExprContext
}

func (*Subscript) exprNode() {}

// Starred: value, ctx.
type Starred struct {
	base
	Value Expr
	Ctx   ExprContext
}

func (*Starred) exprNode() {}

// Name: id, ctx.
type Name struct {
	base
	ID  string
	Ctx ExprContext
}

func (*Name) exprNode() {}

// List: elts, ctx.
type List struct {
	base
	Elts []Expr
	Ctx  ExprContext
}

func (*List) exprNode() {}

// Tuple: elts, ctx.
type Tuple struct {
	base
	Elts []Expr
	Ctx  ExprContext
}

func (*Tuple) exprNode() {}

// Slice: lower, upper, step (each may be nil).
type Slice struct {
	base
	Lower Expr
	Upper Expr
	Step  Expr
}

func (*Slice) exprNode() {}

// --- match-statement patterns (component G's pattern grammar) ---

// MatchValue: value (a literal or dotted-name expression).
type MatchValue struct {
	base
	Value Expr
}

func (*MatchValue) patternNode() {}

// MatchSingleton: value (None/True/False).
type MatchSingleton struct {
	base
	Value interface{}
}

func (*MatchSingleton) patternNode() {}

// MatchSequence: patterns.
type MatchSequence struct {
	base
	Patterns []Pattern
}

func (*MatchSequence) patternNode() {}

// MatchMapping: keys, patterns, rest ("" if no `**rest`).
type MatchMapping struct {
	base
	Keys     []Expr
	Patterns []Pattern
	Rest     string
}

func (*MatchMapping) patternNode() {}

// MatchClass: cls, patterns, kwd_attrs, kwd_patterns.
type MatchClass struct {
	base
	Cls         Expr
	Patterns    []Pattern
	KwdAttrs    []string
	KwdPatterns []Pattern
}

func (*MatchClass) patternNode() {}

// MatchStar: name ("" for a bare `*_`).
type MatchStar struct {
	base
	Name string
}

func (*MatchStar) patternNode() {}

// MatchAs: pattern (may be nil), name ("" for a bare capture-all `_`/name).
type MatchAs struct {
	base
	Pattern Pattern
	Name    string
}

func (*MatchAs) patternNode() {}

// MatchOr: patterns.
type MatchOr struct {
	base
	Patterns []Pattern
}

func (*MatchOr) patternNode() {}
