package hasher

const (
	PrimeRK = 16777619 // Default base, the 32-bit FNV prime
)

// Poly is a multiplicative polynomial rolling hash modulo 2^64:
//
//	H(c0 .. cn-1) = c0*B^(n-1) + c1*B^(n-2) + ... + cn-1
//
// Unlike the adapters in this package it keeps no copy of the window, so
// Remove relies on the caller passing the real window size and byte.
type Poly struct {
	base uint64
	hash uint64

	pow  uint64 // base^powN
	powN int
}

// NewPoly returns a Poly hasher using PrimeRK as its base.
func NewPoly() RollingHasher { return NewPolyBase(PrimeRK) }

// NewPolyBase returns a Poly hasher with the given base.
func NewPolyBase(base uint64) *Poly {
	return &Poly{base: base, pow: 1}
}

func (p *Poly) Sum() uint64 { return p.hash }

func (p *Poly) Reset() { p.hash = 0 }

func (p *Poly) Remove(size int, b byte) {
	if size <= 0 {
		return
	}
	p.hash -= uint64(b) * p.power(size-1)
}

func (p *Poly) Update(b byte) {
	p.hash = p.hash*p.base + uint64(b)
}

func (p *Poly) UpdateBuffer(buf []byte) {
	h := p.hash
	for _, b := range buf {
		h = h*p.base + uint64(b)
	}
	p.hash = h
}

// power returns base^n, caching the last exponent since a sliding window
// always asks for the same one.
func (p *Poly) power(n int) uint64 {
	if n == p.powN {
		return p.pow
	}
	var pow, sq uint64 = 1, p.base
	for i := n; i > 0; i >>= 1 {
		if i&1 != 0 {
			pow *= sq
		}
		sq *= sq
	}
	p.pow, p.powN = pow, n
	return pow
}
