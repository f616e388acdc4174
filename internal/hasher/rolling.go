package hasher

import (
	"hash"
	"sync"

	"github.com/chmduquesne/rollinghash"
	"github.com/chmduquesne/rollinghash/adler32"
	"github.com/chmduquesne/rollinghash/bozo32"
	"github.com/chmduquesne/rollinghash/buzhash32"
	"github.com/chmduquesne/rollinghash/buzhash64"
	"github.com/chmduquesne/rollinghash/rabinkarp32"
	"github.com/chmduquesne/rollinghash/rabinkarp64"
)

// Rolling adapts a rollinghash.Hash to the RollingHasher contract.
//
// The wrapped digests only know how to be seeded with a whole window
// (Write) and how to slide that window by one byte (Roll). Rolling keeps a
// copy of the logical window, turns a Remove immediately followed by an
// Update into a single Roll, and re-seeds the digest lazily for every other
// sequence of operations.
type Rolling struct {
	digest rollinghash.Hash
	sum    func() uint64

	window []byte
	// pending counts the bytes removed from window since the digest was
	// last in sync with it.
	pending int
	// stale is set when the digest can only be recovered by re-seeding.
	stale bool
	// limit, when positive, caps the digest's window to the trailing
	// limit bytes of window.
	limit int
}

// NewRolling wraps d. d must also implement hash.Hash32 or hash.Hash64.
func NewRolling(d rollinghash.Hash) *Rolling {
	return newRolling(d, 0)
}

func newRolling(d rollinghash.Hash, limit int) *Rolling {
	r := &Rolling{digest: d, limit: limit}
	switch h := d.(type) {
	case hash.Hash64:
		r.sum = h.Sum64
	case hash.Hash32:
		r.sum = func() uint64 { return uint64(h.Sum32()) }
	default:
		panic("hasher: rolling digest is neither hash.Hash32 nor hash.Hash64")
	}
	r.Reset()
	return r
}

// NewAdler32 returns the rolling Adler-32 checksum.
func NewAdler32() RollingHasher { return NewRolling(adler32.New()) }

// NewBuzhash32 returns a 32-bit cyclic polynomial (buzhash) checksum.
func NewBuzhash32() RollingHasher { return NewRolling(buzhash32.New()) }

// NewBuzhash64 returns a 64-bit cyclic polynomial (buzhash) checksum.
func NewBuzhash64() RollingHasher { return NewRolling(buzhash64.New()) }

// NewRabinKarp32 returns a Rabin-Karp checksum modulo 2^32.
func NewRabinKarp32() RollingHasher { return NewRolling(rabinkarp32.New()) }

// rk64Pol is the polynomial rabinkarp64.New would pick. Finding it takes
// hundreds of milliseconds, so it is searched for once.
var rk64Pol = sync.OnceValues(func() (rabinkarp64.Pol, error) {
	return rabinkarp64.RandomPolynomial(1)
})

// NewRabinKarp64 returns a Rabin-Karp checksum over GF(2) polynomials.
//
// rabinkarp64 builds a table per window size in time linear in the size and
// never frees it, so only the trailing MaxTableWindow bytes of the window
// are hashed.
func NewRabinKarp64() RollingHasher {
	pol, err := rk64Pol()
	if err != nil {
		panic(err)
	}
	return newRolling(rabinkarp64.NewFromPol(pol), MaxTableWindow)
}

// NewBozo32 returns the bozo32 checksum.
func NewBozo32() RollingHasher { return NewRolling(bozo32.New()) }

func (r *Rolling) Sum() uint64 {
	if r.stale || r.pending > 0 {
		r.reseed()
	}
	return r.sum()
}

// Reset empties the window. The digest itself is reset on the next reseed.
func (r *Rolling) Reset() {
	r.window = r.window[:0]
	r.pending = 0
	r.stale = true
}

// Remove drops the oldest byte of the window. The window copy is
// authoritative, so size and b are not consulted.
func (r *Rolling) Remove(size int, b byte) {
	if len(r.window) == 0 {
		return
	}
	r.window = r.window[1:]
	if !r.stale {
		r.pending++
	}
}

func (r *Rolling) Update(b byte) {
	r.window = append(r.window, b)
	if !r.stale && r.pending == 1 {
		r.digest.Roll(b)
		r.pending = 0
		return
	}
	r.stale = true
}

func (r *Rolling) UpdateBuffer(p []byte) {
	if len(p) == 0 {
		return
	}
	r.window = append(r.window, p...)
	r.stale = true
}

func (r *Rolling) reseed() {
	w := r.window
	if r.limit > 0 && len(w) > r.limit {
		w = w[len(w)-r.limit:]
	}
	r.digest.Reset()
	r.digest.Write(w)
	r.pending = 0
	r.stale = false
}
