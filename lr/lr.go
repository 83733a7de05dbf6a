// Package lr is the alternative, structurally independent execution
// strategy the spec keeps as an external collaborator (§1, §9): a small
// table-driven shift-reduce engine, kept deliberately unwired from
// parser.Parse/ParseExpr. It is never used to realize the Python-family
// grammar; it exists to demonstrate the shape of an LR-style consumer
// over the same token stream a caller could build from `scanner`.
package lr

import "fmt"

// Symbol is a grammar symbol id; by convention ids >= 0 are terminals
// (matching a token kind) and negative ids are non-terminals.
type Symbol int

// ActionKind distinguishes the three things a cell of the ACTION table
// can say to do.
type ActionKind uint8

const (
	Error ActionKind = iota
	Shift
	Reduce
	Accept
)

// Action is one ACTION-table cell.
type Action struct {
	Kind    ActionKind
	Next    int  // target state, for Shift
	Rule    Rule // rule to reduce by, for Reduce
}

// Rule is one grammar production `LHS -> RHS...`, kept only for its
// arity (how many stack items a Reduce pops) and the non-terminal symbol
// pushed back via the GOTO table.
type Rule struct {
	LHS Symbol
	Len int
}

// Grammar bundles the ACTION/GOTO tables a Parser drives.
type Grammar struct {
	Action map[[2]int]Action // (state, terminal) -> Action
	Goto   map[[2]int]int    // (state, nonterminal) -> state
	Start  int
}

// Token is the minimal input unit the engine consumes; Sym identifies
// which terminal it is, Value is opaque payload carried onto the stack.
type Token struct {
	Sym   Symbol
	Value interface{}
}

// Tokenizer supplies the next Token; EOF is signaled by a Token whose
// Sym equals the grammar's designated EOF symbol (by convention, 0).
type Tokenizer interface {
	Next() Token
}

type stackItem struct {
	state int
	sym   Symbol
	value interface{}
}

// Parser is a shift-reduce engine over a Grammar's precomputed tables.
type Parser struct {
	g     *Grammar
	stack []stackItem
}

// NewParser creates a Parser for g.
func NewParser(g *Grammar) *Parser {
	return &Parser{g: g}
}

// ReduceFunc is invoked once per Reduce action with the popped stack
// values, in order, and must return the semantic value to push for the
// rule's LHS; the default (nil ReduceFunc) pushes nil.
type ReduceFunc func(rule Rule, popped []interface{}) interface{}

// Parse drives the engine to completion, returning the value produced by
// the final Accept reduction, or an error on a table miss (no Action
// defined for the current state/lookahead pair).
func (p *Parser) Parse(tz Tokenizer, reduce ReduceFunc) (interface{}, error) {
	p.stack = append(p.stack[:0], stackItem{state: p.g.Start})
	tok := tz.Next()
	for {
		top := p.stack[len(p.stack)-1]
		action, ok := p.g.Action[[2]int{top.state, int(tok.Sym)}]
		if !ok {
			return nil, fmt.Errorf("lr: no action for state %d, symbol %d", top.state, tok.Sym)
		}
		switch action.Kind {
		case Shift:
			p.stack = append(p.stack, stackItem{state: action.Next, sym: tok.Sym, value: tok.Value})
			tok = tz.Next()

		case Reduce:
			n := action.Rule.Len
			popped := make([]interface{}, n)
			for i := 0; i < n; i++ {
				popped[i] = p.stack[len(p.stack)-n+i].value
			}
			p.stack = p.stack[:len(p.stack)-n]
			top = p.stack[len(p.stack)-1]
			nextState, ok := p.g.Goto[[2]int{top.state, int(action.Rule.LHS)}]
			if !ok {
				return nil, fmt.Errorf("lr: no goto for state %d, nonterminal %d", top.state, action.Rule.LHS)
			}
			var v interface{}
			if reduce != nil {
				v = reduce(action.Rule, popped)
			}
			p.stack = append(p.stack, stackItem{state: nextState, sym: action.Rule.LHS, value: v})

		case Accept:
			return p.stack[len(p.stack)-1].value, nil

		default:
			return nil, fmt.Errorf("lr: error action at state %d, symbol %d", top.state, tok.Sym)
		}
	}
}
