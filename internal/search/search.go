// Package search implements resumable exact substring search over byte
// slices with the Rabin-Karp and Shift-And (bitap) algorithms.
//
// A searcher is built once over a text and a pattern and then asked for
// matches one at a time:
//
//	s := search.NewShiftAnd(text, pattern)
//	for {
//		pos, ok := s.Search()
//		if !ok {
//			break
//		}
//		fmt.Println(pos)
//	}
//
// Searchers borrow text and pattern; neither may be modified while the
// searcher is in use. A searcher is not safe for concurrent use, but any
// number of searchers may share the same slices.
package search

import "iter"

// Searcher reports the matches of a pattern in a text, in increasing order.
type Searcher interface {
	// Search returns the start offset of the next match and true, or false
	// once no match remains. After returning false it keeps returning false.
	Search() (pos int, ok bool)
}

// Count drains s and returns the number of matches it reported.
func Count(s Searcher) int {
	n := 0
	for _, ok := s.Search(); ok; _, ok = s.Search() {
		n++
	}
	return n
}

// All drains s and returns every match position.
func All(s Searcher) []int {
	var out []int
	for pos := range Positions(s) {
		out = append(out, pos)
	}
	return out
}

// Positions returns an iterator over the remaining matches of s.
func Positions(s Searcher) iter.Seq[int] {
	return func(yield func(int) bool) {
		for {
			pos, ok := s.Search()
			if !ok || !yield(pos) {
				return
			}
		}
	}
}
