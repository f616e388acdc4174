package search

import (
	"bytes"

	"github.com/Anish-Chanda/bytesearch/internal/hasher"
)

// RabinKarp finds matches by comparing the rolling hash of every window of
// the text against the hash of the pattern. Equal hashes are confirmed with
// a byte comparison, so collisions never produce false matches.
type RabinKarp struct {
	text    []byte
	pattern []byte
	cursor  int
	done    bool

	hasher hasher.RollingHasher
	rehash bool
}

// RabinKarpOption configures a RabinKarp searcher.
type RabinKarpOption func(*RabinKarp)

// WithHasher selects the rolling checksum. The default is Adler-32.
func WithHasher(f hasher.Factory) RabinKarpOption {
	return func(rk *RabinKarp) {
		if f != nil {
			rk.hasher = f()
		}
	}
}

// WithRehash makes the searcher hash every window from scratch instead of
// rolling the previous window's hash forward by one byte.
func WithRehash(rehash bool) RabinKarpOption {
	return func(rk *RabinKarp) { rk.rehash = rehash }
}

// NewRabinKarp returns a Rabin-Karp searcher for pattern in text.
func NewRabinKarp(text, pattern []byte, opts ...RabinKarpOption) *RabinKarp {
	rk := &RabinKarp{text: text, pattern: pattern}
	for _, opt := range opts {
		opt(rk)
	}
	if rk.hasher == nil {
		rk.hasher = hasher.NewAdler32()
	}
	return rk
}

// Search returns the next match at or after the cursor. The cursor moves
// one byte past every window examined, hit or miss, so the following call
// resumes right after the reported position.
func (rk *RabinKarp) Search() (int, bool) {
	if rk.done {
		return 0, false
	}

	n, p := len(rk.text), len(rk.pattern)
	if n-rk.cursor < p {
		rk.done = true
		return 0, false
	}

	h := rk.hasher
	patternHash := hasher.Hash(h, rk.pattern)

	start := rk.cursor
	for i := start; i <= n-p; i++ {
		window := rk.text[i : i+p]

		var sum uint64
		switch {
		case rk.rehash || i == start:
			sum = hasher.Hash(h, window)
		case p > 0:
			h.Remove(p, rk.text[i-1])
			h.Update(rk.text[i+p-1])
			sum = h.Sum()
		default:
			sum = h.Sum()
		}

		rk.advance(i + 1)
		if sum == patternHash && bytes.Equal(window, rk.pattern) {
			return i, true
		}
	}

	rk.done = true
	return 0, false
}

// advance moves the cursor to next, keeping it inside the text. Running past
// the end only happens after the empty pattern matched at len(text).
func (rk *RabinKarp) advance(next int) {
	if next > len(rk.text) {
		rk.cursor = len(rk.text)
		rk.done = true
		return
	}
	rk.cursor = next
}
