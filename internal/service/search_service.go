package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Anish-Chanda/bytesearch/internal/db"
	"github.com/Anish-Chanda/bytesearch/internal/hasher"
	"github.com/Anish-Chanda/bytesearch/internal/search"
)

// ErrNoStore is returned by RecentRuns when no run store is configured.
var ErrNoStore = errors.New("run history is not configured")

// RunStore persists search runs.
type RunStore interface {
	InsertRun(run db.Run) error
	RecentRuns(limit int) ([]db.Run, error)
}

// Request describes one search.
type Request struct {
	Text      []byte
	Pattern   []byte
	Algorithm string
	Hasher    string
}

// Result summarises a finished search.
type Result struct {
	ID        string
	Algorithm search.Algorithm
	Hasher    string // empty unless Algorithm is Rabin-Karp
	Positions []int  // only filled by Search
	Count     int
	Elapsed   time.Duration
}

type Service struct {
	store RunStore
}

// New returns a search service. store may be nil, in which case runs are
// not recorded.
func New(store RunStore) *Service {
	return &Service{store: store}
}

// Search runs req and collects every match position.
func (s *Service) Search(ctx context.Context, req Request) (*Result, error) {
	var positions []int
	res, err := s.Each(ctx, req, func(pos int) error {
		positions = append(positions, pos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Positions = positions
	return res, nil
}

// Each runs req and hands every match position to fn as it is found. The
// search stops early if fn fails or ctx is cancelled.
func (s *Service) Each(ctx context.Context, req Request, fn func(pos int) error) (*Result, error) {
	log := zap.L().Named("Search")

	engine, res, err := newEngine(req)
	if err != nil {
		return nil, err
	}
	log.Debug("start",
		zap.Stringer("algorithm", res.Algorithm),
		zap.String("hasher", res.Hasher),
		zap.Int("text_bytes", len(req.Text)),
		zap.Int("pattern_bytes", len(req.Pattern)))

	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			log.Info("cancelled", zap.Int("matches", res.Count), zap.Error(err))
			return nil, err
		}
		pos, ok := engine.Search()
		if !ok {
			break
		}
		res.Count++
		if err := fn(pos); err != nil {
			return nil, err
		}
	}
	res.Elapsed = time.Since(start)

	log.Debug("done", zap.Int("matches", res.Count), zap.Duration("elapsed", res.Elapsed))
	s.record(req, res)
	return res, nil
}

// RecentRuns returns the latest recorded runs.
func (s *Service) RecentRuns(limit int) ([]db.Run, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.RecentRuns(limit)
}

func newEngine(req Request) (*search.Engine, *Result, error) {
	alg, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		return nil, nil, err
	}
	res := &Result{ID: uuid.NewString(), Algorithm: alg}

	var opts []search.RabinKarpOption
	if alg == search.RabinKarpAlgorithm {
		f, err := hasher.Lookup(req.Hasher)
		if err != nil {
			return nil, nil, err
		}
		res.Hasher = strings.ToLower(strings.TrimSpace(req.Hasher))
		if res.Hasher == "" {
			res.Hasher = hasher.DefaultName
		}
		opts = append(opts, search.WithHasher(f))
	}

	engine, err := search.NewEngine(alg, req.Text, req.Pattern, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%v: %w", alg, err)
	}
	return engine, res, nil
}

// record stores res. A failure is logged but does not fail the search.
func (s *Service) record(req Request, res *Result) {
	if s.store == nil {
		return
	}
	run := db.Run{
		ID:            res.ID,
		Algorithm:     res.Algorithm.String(),
		Hasher:        res.Hasher,
		Pattern:       req.Pattern,
		TextBytes:     int64(len(req.Text)),
		Matches:       int64(res.Count),
		ElapsedMicros: res.Elapsed.Microseconds(),
	}
	if err := s.store.InsertRun(run); err != nil {
		zap.L().Named("Search").Warn("record run", zap.String("id", res.ID), zap.Error(err))
	}
}
