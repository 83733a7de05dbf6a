package scanner

import "fmt"

// indentOutcome classifies what the indentation resolver decided.
type indentOutcome int

const (
	// indentNotApplicable means the resolver consumed nothing and the
	// driver should fall back to ordinary dispatch (this happens when
	// the cursor isn't at the start of a line, or a blank/comment-only
	// line had no leading whitespace to strip, or we're inside brackets
	// with no leading whitespace).
	indentNotApplicable indentOutcome = iota
	// indentSkip means leading whitespace was consumed with no
	// INDENT/DEDENT implication (blank line, comment-only line, or
	// inside brackets/an f-string, or N == current top level).
	indentSkip
	indentPush
	indentPop
)

// measureIndent returns the column width of the run of SP/HT/FF starting
// at i (tabs expand to the next multiple of tabWidth, FF resets to column
// 0) and the offset just past that run.
func measureIndent(src []byte, i, tabWidth int) (end int, width int) {
	j, col := i, 0
	for j < len(src) {
		switch src[j] {
		case ' ':
			col++
		case '\t':
			col = ((col / tabWidth) + 1) * tabWidth
		case '\f':
			col = 0
		default:
			return j, col
		}
		j++
	}
	return j, col
}

// looksBlank reports whether the bytes starting at i (after any leading
// whitespace) are empty, a line ending, or a comment — i.e. a line with
// no indentation-relevant content.
func looksBlank(src []byte, i int) bool {
	if i >= len(src) {
		return true
	}
	if _, ok := scanLineEnding(src, i); ok {
		return true
	}
	if _, ok := scanComment(src, i); ok {
		return true
	}
	return false
}

// resolveIndent implements component C's indentation resolver, coupled to
// the tokenizer state it reads and updates (the indent stack, and the
// bracket-depth/f-string-stack it only reads). It must only be called
// when st.atLineStart is true.
func resolveIndent(src []byte, i int, st *state, tabWidth int) (newI int, outcome indentOutcome, err error) {
	wsEnd, width := measureIndent(src, i, tabWidth)

	if looksBlank(src, wsEnd) {
		if wsEnd > i {
			return wsEnd, indentSkip, nil
		}
		return i, indentNotApplicable, nil
	}

	if st.bracketDepth > 0 || st.inFString() {
		if wsEnd > i {
			return wsEnd, indentSkip, nil
		}
		return i, indentNotApplicable, nil
	}

	top := st.indents.top()
	switch {
	case width > top:
		st.indents.push(width)
		return wsEnd, indentPush, nil
	case width < top:
		if !st.indents.pop() {
			return i, indentNotApplicable, fmt.Errorf("dedent underflow")
		}
		if st.indents.top() < width {
			// Overshot: width lies strictly between the level we just
			// popped and the one beneath it, so it matches no level on
			// the stack at all.
			return i, indentNotApplicable, fmt.Errorf("unindent does not match any outer indentation level")
		}
		// top() may still exceed width (a multi-level dedent, e.g.
		// [0,4,8] collapsing to 0): don't consume the measured
		// whitespace and don't error here — the driver re-enters this
		// resolver, which pops again, until top() == width or the
		// overshoot check above fires.
		return i, indentPop, nil
	default:
		if wsEnd > i {
			return wsEnd, indentSkip, nil
		}
		return i, indentNotApplicable, nil
	}
}
