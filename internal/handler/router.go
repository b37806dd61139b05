package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaultpass/passgen/internal/generator"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/session"
	"github.com/vaultpass/passgen/internal/token"
)

// RouterConfig carries the dependencies of the HTTP adapter.
type RouterConfig struct {
	Store          *session.Store
	JWTSecret      string
	Source         generator.Source
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsPath    string
}

// NewRouter wires every route of the HTTP adapter. Background work started
// for the router stops when ctx is done.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	genHandler := NewGeneratorHandler(cfg.Source)
	tokens := token.NewIssuer(cfg.JWTSecret)
	sessionHandler := NewSessionHandler(cfg.Store, tokens)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/", HandleIndex)
	if cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerateOnce)
		r.Post("/api/v1/session", sessionHandler.HandleCreate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(tokens, cfg.Store))
		r.Delete("/api/v1/session", sessionHandler.HandleDelete)

		r.Route("/api/v1/generator", func(r chi.Router) {
			r.Get("/", genHandler.HandleState)
			r.Put("/length", genHandler.HandleSetLength)
			r.Put("/flags/{class}", genHandler.HandleSetFlag)
			r.Post("/generate", genHandler.HandleGenerate)
			r.Post("/copy", genHandler.HandleCopy)
		})
	})

	return r
}
