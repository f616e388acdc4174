package search

import (
	"errors"
	"fmt"
	"strings"
)

// Algorithm selects the search algorithm behind an Engine.
type Algorithm int

const (
	ShiftAndAlgorithm Algorithm = iota
	RabinKarpAlgorithm
)

// DefaultAlgorithm is used when no algorithm is requested.
const DefaultAlgorithm = ShiftAndAlgorithm

// ErrUnknownAlgorithm is returned for algorithm names that do not exist.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

var algorithmNames = map[Algorithm]string{
	ShiftAndAlgorithm:  "shift-and",
	RabinKarpAlgorithm: "rabin-karp",
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Algorithms returns the names accepted by ParseAlgorithm.
func Algorithms() []string {
	return []string{ShiftAndAlgorithm.String(), RabinKarpAlgorithm.String()}
}

// ParseAlgorithm maps a name such as "rabin-karp" to its Algorithm. The
// empty string selects DefaultAlgorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultAlgorithm, nil
	}
	for alg, s := range algorithmNames {
		if s == name || strings.ReplaceAll(s, "-", "") == name {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("%w %q (want one of %s)", ErrUnknownAlgorithm, name, strings.Join(Algorithms(), ", "))
}

// Engine wraps exactly one concrete searcher, chosen by its Algorithm.
type Engine struct {
	alg Algorithm
	rk  *RabinKarp
	sa  *ShiftAnd
}

// NewEngine builds the searcher for alg. Unlike NewShiftAnd it reports an
// oversized Shift-And pattern as ErrPatternTooLong instead of panicking.
// opts only apply to Rabin-Karp.
func NewEngine(alg Algorithm, text, pattern []byte, opts ...RabinKarpOption) (*Engine, error) {
	switch alg {
	case ShiftAndAlgorithm:
		if err := CheckPattern(pattern); err != nil {
			return nil, err
		}
		return &Engine{alg: alg, sa: NewShiftAnd(text, pattern)}, nil
	case RabinKarpAlgorithm:
		return &Engine{alg: alg, rk: NewRabinKarp(text, pattern, opts...)}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, alg)
	}
}

// Algorithm reports which searcher e wraps.
func (e *Engine) Algorithm() Algorithm { return e.alg }

func (e *Engine) Search() (int, bool) {
	switch e.alg {
	case RabinKarpAlgorithm:
		return e.rk.Search()
	default:
		return e.sa.Search()
	}
}
