package search

import (
	"errors"
	"fmt"
)

// MaxPatternLen is the longest pattern ShiftAnd accepts: the automaton
// state lives in a single uint64.
const MaxPatternLen = 64

// ErrPatternTooLong reports a pattern that does not fit the Shift-And
// automaton.
var ErrPatternTooLong = errors.New("pattern too long for shift-and")

const allOnes = ^uint64(0)

// CheckPattern reports whether pattern fits a ShiftAnd searcher. Callers
// that cannot afford the panic in NewShiftAnd validate with it first.
func CheckPattern(pattern []byte) error {
	if len(pattern) > MaxPatternLen {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrPatternTooLong, len(pattern), MaxPatternLen)
	}
	return nil
}

// ShiftAnd runs the bitap automaton of the pattern over the text. Bit i of
// the state is clear while the last i+1 bytes read equal pattern[:i+1].
type ShiftAnd struct {
	text    []byte
	pattern []byte
	cursor  int
	done    bool

	// masks[b] has bit i clear for every i where pattern[i] == b.
	masks [256]uint64
	// state is the automaton after consuming text[:cursor]. It survives
	// across calls, so a resumed scan sees overlapping matches.
	state uint64
}

// NewShiftAnd returns a Shift-And searcher for pattern in text. It panics
// if the pattern is longer than MaxPatternLen.
func NewShiftAnd(text, pattern []byte) *ShiftAnd {
	if err := CheckPattern(pattern); err != nil {
		panic(err)
	}

	// For the pattern "AABA" the table holds
	//
	//	A -> 0100
	//	B -> 1011
	//	* -> 1111
	sa := &ShiftAnd{text: text, pattern: pattern, state: allOnes}
	for i := range sa.masks {
		sa.masks[i] = allOnes
	}
	for i, b := range pattern {
		sa.masks[b] &^= 1 << i
	}
	return sa
}

// Search feeds bytes to the automaton from the cursor on and stops at the
// first byte that completes a match.
func (sa *ShiftAnd) Search() (int, bool) {
	if sa.done {
		return 0, false
	}

	if len(sa.pattern) == 0 {
		pos := sa.cursor
		if pos == len(sa.text) {
			sa.done = true
		} else {
			sa.cursor++
		}
		return pos, true
	}

	last := len(sa.pattern) - 1
	accept := uint64(1) << last

	for sa.cursor < len(sa.text) {
		b := sa.text[sa.cursor]
		sa.state = sa.state<<1 | sa.masks[b]
		sa.cursor++

		if sa.state&accept == 0 {
			return sa.cursor - 1 - last, true
		}
	}

	sa.done = true
	return 0, false
}
