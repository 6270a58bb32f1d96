package server

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vcrobe/entryform/internal/app/services"
	"github.com/vcrobe/entryform/internal/observability"
)

func (s *Server) routes(staticDir string) {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	api.GET("/locations", s.handleLocations)
	api.GET("/names/valid", s.handleNameValid)

	if staticDir != "" {
		s.router.StaticFile("/", filepath.Join(staticDir, "index.html"))
		files := http.FileServer(http.Dir(staticDir))
		s.router.NoRoute(func(c *gin.Context) {
			files.ServeHTTP(c.Writer, c.Request)
		})
	}
}

func (s *Server) handleLocations(c *gin.Context) {
	locs, err := s.locations.Locations(c.Request.Context())
	if err != nil {
		observability.RecordLocationFetch(false)
		s.logger.Warn().Err(err).Msg("location fetch failed")
		c.JSON(http.StatusServiceUnavailable, services.ErrorResponse{Error: "locations unavailable"})
		return
	}
	observability.RecordLocationFetch(true)
	if locs == nil {
		locs = []string{}
	}
	c.JSON(http.StatusOK, services.LocationsResponse{Locations: locs})
}

func (s *Server) handleNameValid(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		c.JSON(http.StatusBadRequest, services.ErrorResponse{Error: "name query parameter required"})
		return
	}

	valid, err := s.names.IsNameValid(c.Request.Context(), name)
	if err != nil {
		observability.RecordNameCheck(observability.OutcomeError)
		s.logger.Warn().Err(err).Str("name", name).Msg("name check failed")
		c.JSON(http.StatusServiceUnavailable, services.ErrorResponse{Error: "name validation unavailable"})
		return
	}

	outcome := observability.OutcomeAvailable
	if !valid {
		outcome = observability.OutcomeTaken
	}
	observability.RecordNameCheck(outcome)
	c.JSON(http.StatusOK, services.NameCheckResponse{Name: name, Valid: valid})
}
