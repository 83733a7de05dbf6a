package ast

// Constructors named NewXxx rather than Xxx (Go forbids a func sharing its
// type's name); argument order follows the Python ast module's field order
// for the corresponding class, per SPEC_FULL.md §6, except that NewModule
// takes the source path as an extra leading argument. None of these set
// location; callers run the result through SetLoc once End coordinates are
// known (component I).

func NewModule(path string, body []Stmt, typeIgnores []TypeIgnore) *ModuleNode {
	return &ModuleNode{Path: path, Body: body, TypeIgnores: typeIgnores}
}

func NewArguments(posOnly, args []*Arg, vararg *Arg, kwOnly []*Arg, kwDefaults []Expr, kwarg *Arg, defaults []Expr) *Arguments {
	return &Arguments{
		PosOnlyArgs: posOnly,
		Args:        args,
		VarArg:      vararg,
		KwOnlyArgs:  kwOnly,
		KwDefaults:  kwDefaults,
		KwArg:       kwarg,
		Defaults:    defaults,
	}
}

func NewArg(name string, annotation Expr, typeComment string) *Arg {
	return &Arg{Name: name, Annotation: annotation, TypeComment: typeComment}
}

func NewFunctionDef(name string, args *Arguments, body []Stmt, decorators []Expr, returns Expr, typeComment string) *FunctionDef {
	return &FunctionDef{Name: name, Args: args, Body: body, DecoratorList: decorators, Returns: returns, TypeComment: typeComment}
}

func NewAsyncFunctionDef(name string, args *Arguments, body []Stmt, decorators []Expr, returns Expr) *AsyncFunctionDef {
	return &AsyncFunctionDef{Name: name, Args: args, Body: body, DecoratorList: decorators, Returns: returns}
}

func NewClassDef(name string, bases []Expr, keywords []*Keyword, body []Stmt, decorators []Expr) *ClassDef {
	return &ClassDef{Name: name, Bases: bases, Keywords: keywords, Body: body, DecoratorList: decorators}
}

func NewReturn(value Expr) *Return { return &Return{Value: value} }

func NewDelete(targets []Expr) *Delete { return &Delete{Targets: targets} }

func NewAssign(targets []Expr, value Expr, typeComment string) *Assign {
	return &Assign{Targets: targets, Value: value, TypeComment: typeComment}
}

func NewAugAssign(target Expr, op Operator, value Expr) *AugAssign {
	return &AugAssign{Target: target, Op: op, Value: value}
}

func NewAnnAssign(target, annotation, value Expr, simple int) *AnnAssign {
	return &AnnAssign{Target: target, Annotation: annotation, Value: value, Simple: simple}
}

func NewFor(target, iter Expr, body, orelse []Stmt, typeComment string) *For {
	return &For{Target: target, Iter: iter, Body: body, OrElse: orelse, TypeComment: typeComment}
}

func NewAsyncFor(target, iter Expr, body, orelse []Stmt) *AsyncFor {
	return &AsyncFor{Target: target, Iter: iter, Body: body, OrElse: orelse}
}

func NewWhile(test Expr, body, orelse []Stmt) *While {
	return &While{Test: test, Body: body, OrElse: orelse}
}

func NewIf(test Expr, body, orelse []Stmt) *If {
	return &If{Test: test, Body: body, OrElse: orelse}
}

func NewWithItem(contextExpr, optionalVars Expr) *WithItem {
	return &WithItem{ContextExpr: contextExpr, OptionalVars: optionalVars}
}

func NewWith(items []*WithItem, body []Stmt, typeComment string) *With {
	return &With{Items: items, Body: body, TypeComment: typeComment}
}

func NewAsyncWith(items []*WithItem, body []Stmt) *AsyncWith {
	return &AsyncWith{Items: items, Body: body}
}

func NewRaise(exc, cause Expr) *Raise { return &Raise{Exc: exc, Cause: cause} }

func NewExceptHandler(typ Expr, name string, body []Stmt) *ExceptHandler {
	return &ExceptHandler{Type: typ, Name: name, Body: body}
}

func NewTry(body []Stmt, handlers []*ExceptHandler, orelse, finalBody []Stmt) *Try {
	return &Try{Body: body, Handlers: handlers, OrElse: orelse, FinalBody: finalBody}
}

func NewTryStar(body []Stmt, handlers []*ExceptHandler, orelse, finalBody []Stmt) *TryStar {
	return &TryStar{Body: body, Handlers: handlers, OrElse: orelse, FinalBody: finalBody}
}

func NewAssert(test, msg Expr) *Assert { return &Assert{Test: test, Msg: msg} }

func NewAlias(name, asName string) *Alias { return &Alias{Name: name, AsName: asName} }

func NewImport(names []*Alias) *Import { return &Import{Names: names} }

func NewImportFrom(module string, names []*Alias, level int) *ImportFrom {
	return &ImportFrom{Module: module, Names: names, Level: level}
}

func NewGlobal(names []string) *Global { return &Global{Names: names} }

func NewNonlocal(names []string) *Nonlocal { return &Nonlocal{Names: names} }

func NewExprStmt(value Expr) *ExprStmt { return &ExprStmt{Value: value} }

func NewPass() *Pass { return &Pass{} }

func NewBreak() *Break { return &Break{} }

func NewContinue() *Continue { return &Continue{} }

func NewMatchCase(pattern Pattern, guard Expr, body []Stmt) *MatchCase {
	return &MatchCase{Pattern: pattern, Guard: guard, Body: body}
}

func NewMatch(subject Expr, cases []*MatchCase) *Match {
	return &Match{Subject: subject, Cases: cases}
}

// --- expressions ---

func NewBoolOp(op BoolOpKind, values []Expr) *BoolOp { return &BoolOp{Op: op, Values: values} }

func NewBinOp(left Expr, op Operator, right Expr) *BinOp {
	return &BinOp{Left: left, Op: op, Right: right}
}

func NewUnaryOp(op UnaryOpKind, operand Expr) *UnaryOp { return &UnaryOp{Op: op, Operand: operand} }

func NewLambda(args *Arguments, body Expr) *Lambda { return &Lambda{Args: args, Body: body} }

func NewIfExp(test, body, orelse Expr) *IfExp { return &IfExp{Test: test, Body: body, OrElse: orelse} }

func NewKeyword(arg string, value Expr) *Keyword { return &Keyword{Arg: arg, Value: value} }

func NewDict(keys, values []Expr) *Dict { return &Dict{Keys: keys, Values: values} }

func NewSet(elts []Expr) *Set { return &Set{Elts: elts} }

func NewComprehension(target, iter Expr, ifs []Expr, isAsync bool) *Comprehension {
	return &Comprehension{Target: target, Iter: iter, Ifs: ifs, IsAsync: isAsync}
}

func NewListComp(elt Expr, generators []*Comprehension) *ListComp {
	return &ListComp{Elt: elt, Generators: generators}
}

func NewSetComp(elt Expr, generators []*Comprehension) *SetComp {
	return &SetComp{Elt: elt, Generators: generators}
}

func NewDictComp(key, value Expr, generators []*Comprehension) *DictComp {
	return &DictComp{Key: key, Value: value, Generators: generators}
}

func NewGeneratorExp(elt Expr, generators []*Comprehension) *GeneratorExp {
	return &GeneratorExp{Elt: elt, Generators: generators}
}

func NewAwait(value Expr) *Await { return &Await{Value: value} }

func NewYield(value Expr) *Yield { return &Yield{Value: value} }

func NewYieldFrom(value Expr) *YieldFrom { return &YieldFrom{Value: value} }

func NewCompare(left Expr, ops []CmpOp, comparators []Expr) *Compare {
	return &Compare{Left: left, Ops: ops, Comparators: comparators}
}

func NewCall(fn Expr, args []Expr, keywords []*Keyword) *Call {
	return &Call{Func: fn, Args: args, Keywords: keywords}
}

func NewJoinedStr(values []Expr) *JoinedStr { return &JoinedStr{Values: values} }

func NewFormattedValue(value Expr, conversion rune, formatSpec Expr) *FormattedValue {
	return &FormattedValue{Value: value, Conversion: conversion, FormatSpec: formatSpec}
}

func NewConstant(value interface{}, kind string) *Constant { return &Constant{Value: value, Kind: kind} }

func NewAttribute(value Expr, attr string, ctx ExprContext) *Attribute {
	return &Attribute{Value: value, Attr: attr, Ctx: ctx}
}

func NewSubscript(value, slice Expr, ctx ExprContext) *Subscript {
	return &Subscript{Value: value, Slice: slice, Ctx: ctx}
}

func NewStarred(value Expr, ctx ExprContext) *Starred { return &Starred{Value: value, Ctx: ctx} }

func NewName(id string, ctx ExprContext) *Name { return &Name{ID: id, Ctx: ctx} }

func NewList(elts []Expr, ctx ExprContext) *List { return &List{Elts: elts, Ctx: ctx} }

func NewTuple(elts []Expr, ctx ExprContext) *Tuple { return &Tuple{Elts: elts, Ctx: ctx} }

func NewSlice(lower, upper, step Expr) *Slice { return &Slice{Lower: lower, Upper: upper, Step: step} }

// --- match patterns ---

func NewMatchValue(value Expr) *MatchValue { return &MatchValue{Value: value} }

func NewMatchSingleton(value interface{}) *MatchSingleton { return &MatchSingleton{Value: value} }

func NewMatchSequence(patterns []Pattern) *MatchSequence { return &MatchSequence{Patterns: patterns} }

func NewMatchMapping(keys []Expr, patterns []Pattern, rest string) *MatchMapping {
	return &MatchMapping{Keys: keys, Patterns: patterns, Rest: rest}
}

func NewMatchClass(cls Expr, patterns []Pattern, kwdAttrs []string, kwdPatterns []Pattern) *MatchClass {
	return &MatchClass{Cls: cls, Patterns: patterns, KwdAttrs: kwdAttrs, KwdPatterns: kwdPatterns}
}

func NewMatchStar(name string) *MatchStar { return &MatchStar{Name: name} }

func NewMatchAs(pattern Pattern, name string) *MatchAs { return &MatchAs{Pattern: pattern, Name: name} }

func NewMatchOr(patterns []Pattern) *MatchOr { return &MatchOr{Patterns: patterns} }
