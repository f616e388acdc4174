package search_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Anish-Chanda/bytesearch/internal/hasher"
	"github.com/Anish-Chanda/bytesearch/internal/search"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    search.Algorithm
		wantErr bool
	}{
		{"", search.DefaultAlgorithm, false},
		{"shift-and", search.ShiftAndAlgorithm, false},
		{"Shift-And", search.ShiftAndAlgorithm, false},
		{"rabin-karp", search.RabinKarpAlgorithm, false},
		{" rabinkarp ", search.RabinKarpAlgorithm, false},
		{"boyer-moore", 0, true},
	}
	for _, tc := range tests {
		got, err := search.ParseAlgorithm(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAlgorithm(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, search.ErrUnknownAlgorithm) {
				t.Errorf("ParseAlgorithm(%q) error = %v, want ErrUnknownAlgorithm", tc.in, err)
			}
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAlgorithm(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, name := range search.Algorithms() {
		alg, err := search.ParseAlgorithm(name)
		if err != nil || alg.String() != name {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want round trip", name, alg, err)
		}
	}
}

func TestEngine(t *testing.T) {
	text, pattern := []byte("XXabcYYabcZZabc"), []byte("abc")
	for _, alg := range []search.Algorithm{search.ShiftAndAlgorithm, search.RabinKarpAlgorithm} {
		e, err := search.NewEngine(alg, text, pattern, search.WithHasher(hasher.NewPoly))
		if err != nil {
			t.Fatalf("NewEngine(%v) error: %v", alg, err)
		}
		if e.Algorithm() != alg {
			t.Errorf("Algorithm() = %v, want %v", e.Algorithm(), alg)
		}
		if diff := cmp.Diff([]int{2, 7, 12}, search.All(e)); diff != "" {
			t.Errorf("%v matches (-want +got):\n%s", alg, diff)
		}
	}
}

func TestEngineRejectsLongShiftAndPattern(t *testing.T) {
	long := bytes.Repeat([]byte("a"), search.MaxPatternLen+1)

	if _, err := search.NewEngine(search.ShiftAndAlgorithm, long, long); !errors.Is(err, search.ErrPatternTooLong) {
		t.Errorf("NewEngine(shift-and) error = %v, want ErrPatternTooLong", err)
	}

	e, err := search.NewEngine(search.RabinKarpAlgorithm, long, long)
	if err != nil {
		t.Fatalf("NewEngine(rabin-karp) error: %v", err)
	}
	if diff := cmp.Diff([]int{0}, search.All(e)); diff != "" {
		t.Errorf("rabin-karp matches (-want +got):\n%s", diff)
	}
}

func TestEngineUnknownAlgorithm(t *testing.T) {
	if _, err := search.NewEngine(search.Algorithm(42), nil, nil); !errors.Is(err, search.ErrUnknownAlgorithm) {
		t.Errorf("NewEngine(42) error = %v, want ErrUnknownAlgorithm", err)
	}
}
