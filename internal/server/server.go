// Package server exposes the save workflow over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/flashnote/internal/config"
	"github.com/at-ishikawa/flashnote/internal/logger"
)

const defaultRequestTimeout = 60 * time.Second

// Server wraps the HTTP server and its router.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// NewRouter builds the router with every route and middleware.
func NewRouter(cfg config.ServerConfig, h *Handler, log logger.Logger) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(accessLog(log))
	r.Use(cors(cfg.CORS.AllowedOrigins))

	r.Get("/healthz", h.Healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/notebooks", h.ListNotebooks)
		r.Route("/notebooks/{notebookID}", func(r chi.Router) {
			r.Post("/prepare", h.Prepare)
			r.Post("/confirm", h.Confirm)
			r.Put("/content", h.SaveContentOnly)
			r.Get("/saves", h.ListSaves)
		})
		r.Route("/saves/{saveID}", func(r chi.Router) {
			r.Get("/flashcards", h.LinkedFlashcards)
			r.Post("/regenerate", h.Regenerate)
			r.Post("/regeneration/confirm", h.ConfirmRegeneration)
		})
		r.Route("/drafts/{draftID}", func(r chi.Router) {
			r.Get("/", h.GetDraft)
			r.Delete("/", h.DeleteDraft)
			r.Patch("/previews/{tempID}", h.EditPreview)
			r.Delete("/previews/{tempID}", h.RemovePreview)
		})
		r.Post("/assist", h.Assist)
	})
	return r
}

// New builds the HTTP server. It serves HTTP/2 without TLS as well as HTTP/1.1.
func New(cfg config.ServerConfig, h *Handler, log logger.Logger) *Server {
	s := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(NewRouter(cfg, h, log), &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
	return &Server{
		http:   s,
		logger: log,
	}
}

// Start blocks until the server fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logger.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
