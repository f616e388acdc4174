package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Anish-Chanda/bytesearch/internal/db"
	"github.com/Anish-Chanda/bytesearch/internal/hasher"
	"github.com/Anish-Chanda/bytesearch/internal/search"
	"github.com/Anish-Chanda/bytesearch/internal/service"
)

const defaultRunsLimit = 20

// bodyOverhead is the room left for the JSON framing around text and
// pattern.
const bodyOverhead = 64 << 10

// SearchRequest is the body of POST /search. Text and pattern are arbitrary
// bytes and travel base64 encoded.
type SearchRequest struct {
	Text      []byte `json:"text"`
	Pattern   []byte `json:"pattern"`
	Algorithm string `json:"algorithm,omitempty"`
	Hasher    string `json:"hasher,omitempty"`
}

// SearchResponse is returned by POST /search.
type SearchResponse struct {
	ID        string `json:"id"`
	Algorithm string `json:"algorithm"`
	Hasher    string `json:"hasher,omitempty"`
	Positions []int  `json:"positions"`
	Count     int    `json:"count"`
	ElapsedUS int64  `json:"elapsed_us"`
}

// RunResponse is one entry of GET /runs.
type RunResponse struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	Hasher    string    `json:"hasher,omitempty"`
	Pattern   []byte    `json:"pattern"`
	TextBytes int64     `json:"text_bytes"`
	Count     int64     `json:"count"`
	ElapsedUS int64     `json:"elapsed_us"`
	CreatedAt time.Time `json:"created_at"`
}

type Handler struct {
	svc          *service.Service
	maxBodyBytes int64
}

// NewHandler serves searches through svc. Requests whose text cannot fit in
// maxTextBytes once decoded are rejected.
func NewHandler(svc *service.Service, maxTextBytes int64) *Handler {
	body := int64(base64.StdEncoding.EncodedLen(int(maxTextBytes))) + bodyOverhead
	return &Handler{svc: svc, maxBodyBytes: body}
}

// Health checks if the server is alive
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Search handles POST /search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.svc.Search(r.Context(), service.Request{
		Text:      req.Text,
		Pattern:   req.Pattern,
		Algorithm: req.Algorithm,
		Hasher:    req.Hasher,
	})
	if err != nil {
		if isBadRequest(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, context.Canceled) {
			// client went away, nobody is left to answer
			zap.L().Named("API").Debug("search cancelled", zap.Error(err))
			return
		}
		zap.L().Named("API").Error("search failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	positions := res.Positions
	if positions == nil {
		positions = []int{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{
		ID:        res.ID,
		Algorithm: res.Algorithm.String(),
		Hasher:    res.Hasher,
		Positions: positions,
		Count:     res.Count,
		ElapsedUS: res.Elapsed.Microseconds(),
	})
}

// Runs handles GET /runs?limit=N
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	runs, err := h.svc.RecentRuns(limit)
	if errors.Is(err, service.ErrNoStore) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		zap.L().Named("API").Error("list runs failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]RunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunResponse(run))
	}
	writeJSON(w, http.StatusOK, out)
}

func toRunResponse(run db.Run) RunResponse {
	return RunResponse{
		ID:        run.ID,
		Algorithm: run.Algorithm,
		Hasher:    run.Hasher,
		Pattern:   run.Pattern,
		TextBytes: run.TextBytes,
		Count:     run.Matches,
		ElapsedUS: run.ElapsedMicros,
		CreatedAt: run.CreatedAt,
	}
}

func isBadRequest(err error) bool {
	return errors.Is(err, search.ErrUnknownAlgorithm) ||
		errors.Is(err, search.ErrPatternTooLong) ||
		errors.Is(err, hasher.ErrUnknownHasher)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
