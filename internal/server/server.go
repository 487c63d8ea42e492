// Package server exposes the bookmark collection over HTTP: listing
// with filter/sort facets, imports, exports, and bookmark commands.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nlohse/stash/internal/favicon"
	"github.com/nlohse/stash/internal/model"
	"github.com/nlohse/stash/internal/storage"
)

// Server wraps the HTTP server and its dependencies. The bookmark
// store is shared across handlers and guarded by a single mutex;
// every mutation persists through the storage backend.
type Server struct {
	http   *http.Server
	logger *zap.Logger
	icons  *favicon.Fetcher

	mu    sync.Mutex
	store *model.Store
	back  storage.Storage
}

// New builds the HTTP server (router, middlewares, routes).
func New(addr string, store *model.Store, back storage.Storage, logger *zap.Logger) *Server {
	s := &Server{
		logger: logger,
		icons:  favicon.NewFetcher(),
		store:  store,
		back:   back,
	}

	r := chi.NewRouter()
	r.Use(middleware.GetHead)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger(logger))

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/bookmarks", s.handleList)
		r.Post("/import", s.handleImport)
		r.Get("/tags", s.handleTags)
		r.Get("/categories", s.handleCategories)
		r.Get("/export/{format}", s.handleExport)

		r.Route("/bookmarks/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Get("/favicon", s.handleFavicon)
			r.Delete("/", s.handleDelete)
			r.Post("/like", s.handleLike)
			r.Post("/dislike", s.handleDislike)
			r.Post("/archive", s.handleArchive)
			r.Post("/visit", s.handleVisit)
		})
	})

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(ctx)
}

// persist saves the collection after a mutation. Persistence failures
// are logged, not surfaced: the in-memory state is already updated.
func (s *Server) persist() {
	if s.back == nil {
		return
	}
	if err := s.back.Save(s.store); err != nil {
		s.logger.Error("persist failed", zap.Error(err))
	}
}
