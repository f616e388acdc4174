package hasher

import (
	"sync"

	"github.com/aclements/go-rabin/rabin"
)

// tables holds one lazily built rabin table per window size up to
// MaxTableWindow. rabin.NewTable is quadratic in the window size.
var tables [MaxTableWindow + 1]struct {
	once sync.Once
	tab  *rabin.Table
}

func tableFor(window int) *rabin.Table {
	t := &tables[window]
	t.once.Do(func() { t.tab = rabin.NewTable(rabin.Poly64, window) })
	return t.tab
}

// tableWindow is the window of the table used for a logical window of n
// bytes.
func tableWindow(n int) int {
	return min(n, MaxTableWindow)
}

// Fingerprint adapts go-rabin's fixed-window Rabin fingerprint to the
// RollingHasher contract.
//
// A rabin.Hash slides automatically once more than its table's window has
// been written, so a Remove followed by an Update on a full window is a
// single one-byte Write. Anything else rebuilds the hash over the window
// copy with a table sized to it. Windows longer than MaxTableWindow share
// the largest table, which fingerprints only their trailing bytes.
type Fingerprint struct {
	h       *rabin.Hash
	hw      int // window size of h's table
	window  []byte
	pending int
	stale   bool
}

// NewFingerprint returns an empty Rabin fingerprint hasher.
func NewFingerprint() RollingHasher { return &Fingerprint{} }

func (f *Fingerprint) Sum() uint64 {
	if f.stale || f.pending > 0 {
		f.reseed()
	}
	if f.h == nil {
		return 0
	}
	return f.h.Sum64()
}

func (f *Fingerprint) Reset() {
	f.h = nil
	f.hw = 0
	f.window = f.window[:0]
	f.pending = 0
	f.stale = false
}

func (f *Fingerprint) Remove(size int, b byte) {
	if len(f.window) == 0 {
		return
	}
	f.window = f.window[1:]
	if !f.stale {
		f.pending++
	}
}

func (f *Fingerprint) Update(b byte) {
	f.window = append(f.window, b)
	if !f.stale && f.pending == 1 && f.h != nil && f.hw == tableWindow(len(f.window)) {
		f.h.Write([]byte{b})
		f.pending = 0
		return
	}
	f.stale = true
}

func (f *Fingerprint) UpdateBuffer(p []byte) {
	if len(p) == 0 {
		return
	}
	f.window = append(f.window, p...)
	f.stale = true
}

func (f *Fingerprint) reseed() {
	f.pending = 0
	f.stale = false
	if len(f.window) == 0 {
		f.h, f.hw = nil, 0
		return
	}
	f.hw = tableWindow(len(f.window))
	f.h = rabin.New(tableFor(f.hw))
	f.h.Write(f.window[len(f.window)-f.hw:])
}
