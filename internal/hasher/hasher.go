// Package hasher defines the rolling checksum contract used by the
// Rabin-Karp searcher, along with the concrete checksums that satisfy it.
package hasher

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultName is the hasher used when none is requested.
const DefaultName = "adler32"

// MaxTableWindow bounds the per-window-size tables the rabin and
// rabinkarp64 variants precompute. Longer windows are hashed by their
// trailing MaxTableWindow bytes, which only makes collisions more likely;
// searchers confirm every hit byte by byte.
const MaxTableWindow = 64

// ErrUnknownHasher is returned by Lookup for names that are not registered.
var ErrUnknownHasher = errors.New("unknown hasher")

// RollingHasher is an incremental, order-sensitive checksum over a window
// of bytes.
type RollingHasher interface {
	// Sum returns the hash of the current window.
	Sum() uint64

	// Reset empties the window.
	Reset()

	// Remove drops b, the byte that was appended size bytes ago. Callers
	// pass the current window length, so b is always the oldest byte.
	Remove(size int, b byte)

	// Update appends a single byte to the window.
	Update(b byte)

	// UpdateBuffer appends p to the window.
	UpdateBuffer(p []byte)
}

// Factory builds an empty RollingHasher.
type Factory func() RollingHasher

var factories = map[string]Factory{
	"adler32":     NewAdler32,
	"buzhash32":   NewBuzhash32,
	"buzhash64":   NewBuzhash64,
	"rabinkarp32": NewRabinKarp32,
	"rabinkarp64": NewRabinKarp64,
	"bozo32":      NewBozo32,
	"rabin":       NewFingerprint,
	"poly":        NewPoly,
}

// Lookup returns the factory registered under name. The empty name selects
// DefaultName.
func Lookup(name string) (Factory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultName
	}
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownHasher, name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the registered hasher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hash resets h, feeds it p and returns the resulting sum.
func Hash(h RollingHasher, p []byte) uint64 {
	h.Reset()
	h.UpdateBuffer(p)
	return h.Sum()
}
