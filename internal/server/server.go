// Package server serves the compiled WASM app and the two collaborator
// endpoints the form talks to.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vcrobe/entryform/internal/app/services"
	"github.com/vcrobe/entryform/internal/observability"
)

// Server bundles the gin engine with the collaborators it exposes.
type Server struct {
	Addr string

	locations services.LocationProvider
	names     services.NameValidator
	logger    zerolog.Logger
	router    *gin.Engine
	http      *http.Server
}

// Options configures New.
type Options struct {
	Addr        string
	StaticDir   string // empty disables static file serving
	CorsOrigins []string
	Locations   services.LocationProvider
	Names       services.NameValidator
	Logger      zerolog.Logger
}

// New builds a Server with its routes registered.
func New(opts Options) *Server {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(opts.Logger))
	r.Use(observability.RequestMetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CorsOrigins),
		AllowMethods: []string{http.MethodGet},
		AllowHeaders: []string{"Origin", "Accept", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	s := &Server{
		Addr:      opts.Addr,
		locations: opts.Locations,
		names:     opts.Names,
		logger:    opts.Logger,
		router:    r,
	}
	s.routes(opts.StaticDir)
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on Addr until Shutdown is called.
func (s *Server) Serve() error {
	s.logger.Info().Str("addr", s.Addr).Msg("entryform server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:8080"}
	}
	return out
}
