package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (l *zapLoggerAdapter) Print(v ...interface{}) {
	l.logger.Sugar().Info(v...)
}

// NewRouter mounts h on a chi router with the usual middleware stack.
func NewRouter(h *Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: &zapLoggerAdapter{logger: log}, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Post("/search", h.Search)
	r.Get("/runs", h.Runs)

	return r
}
