package lr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceTokenizer drives a fixed Token slice, yielding Sym 0 (EOF) forever
// once exhausted.
type sliceTokenizer struct {
	toks []Token
	pos  int
}

func (s *sliceTokenizer) Next() Token {
	if s.pos >= len(s.toks) {
		return Token{Sym: 0}
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

// Grammar for `num (+ num)*`, reducing left-to-right:
//
//	S -> E
//	E -> E + num | num
//
// Symbols: 0=EOF/$, 1=num, 2='+', -1=E (nonterminal), -2=S (nonterminal,
// accept).
//
// States: 0 start, 1 after shifting num (reduce E->num), 2 after goto on
// E, 3 after shifting '+' from state 2, 4 after shifting num from state
// 3 (reduce E->E+num), 5 accept state (goto S from state 0... folded
// into state 2 for this toy 2-state-effective machine).
func sumGrammar() *Grammar {
	const (
		symEOF  Symbol = 0
		symNum  Symbol = 1
		symPlus Symbol = 2
		nonE    Symbol = -1
	)
	ruleNum := Rule{LHS: nonE, Len: 1}  // E -> num
	rulePlus := Rule{LHS: nonE, Len: 3} // E -> E + num

	return &Grammar{
		Start: 0,
		Action: map[[2]int]Action{
			{0, int(symNum)}: {Kind: Shift, Next: 1},
			{1, int(symNum)}: {Kind: Reduce, Rule: ruleNum},
			{1, int(symPlus)}: {Kind: Reduce, Rule: ruleNum},
			{1, int(symEOF)}: {Kind: Reduce, Rule: ruleNum},
			{2, int(symPlus)}: {Kind: Shift, Next: 3},
			{2, int(symEOF)}: {Kind: Accept},
			{3, int(symNum)}: {Kind: Shift, Next: 4},
			{4, int(symNum)}:  {Kind: Reduce, Rule: rulePlus},
			{4, int(symPlus)}: {Kind: Reduce, Rule: rulePlus},
			{4, int(symEOF)}:  {Kind: Reduce, Rule: rulePlus},
		},
		Goto: map[[2]int]int{
			{0, int(nonE)}: 2,
			{2, int(nonE)}: 2,
		},
	}
}

func sumReduce(rule Rule, popped []interface{}) interface{} {
	if rule.Len == 1 {
		return popped[0]
	}
	return popped[0].(int) + popped[2].(int)
}

func TestParserShiftReduceSum(t *testing.T) {
	g := sumGrammar()
	p := NewParser(g)
	tz := &sliceTokenizer{toks: []Token{
		{Sym: 1, Value: 1},
		{Sym: 2},
		{Sym: 1, Value: 2},
		{Sym: 2},
		{Sym: 1, Value: 3},
	}}
	got, err := p.Parse(tz, sumReduce)
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}

func TestParserSingleNumber(t *testing.T) {
	g := sumGrammar()
	p := NewParser(g)
	tz := &sliceTokenizer{toks: []Token{{Sym: 1, Value: 42}}}
	got, err := p.Parse(tz, sumReduce)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestParserMissingActionIsError(t *testing.T) {
	g := sumGrammar()
	p := NewParser(g)
	tz := &sliceTokenizer{toks: []Token{{Sym: 2}}} // '+' with nothing shifted
	_, err := p.Parse(tz, sumReduce)
	require.Error(t, err)
}
