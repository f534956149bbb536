// Package server exposes the regrind engines over HTTP. It owns the JSON
// boundary: binding and shape-checking requests, filling in a trace id
// when the caller did not supply one, translating engine validation
// failures into 400 responses, and returning engine output verbatim.
package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aggcycle/regrind/pkg/sweep"
	"github.com/aggcycle/regrind/pkg/units"
)

// Server is the HTTP front for the computation engines.
type Server struct {
	port int
}

// New creates a server listening on the given port.
func New(port int) *Server {
	return &Server{port: port}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/healthz", handleHealth)
	api.POST("/simulate", handleSimulate)
	api.POST("/kpi", handleKpi)
	api.POST("/sweep", handleSweep)
	api.POST("/invest", handleInvest)
	api.POST("/scenario", handleScenario)

	return r
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("regrind server starting on http://localhost%s", addr)
	return s.Router().Run(addr)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// traceID returns the caller-supplied trace id or generates one.
func traceID(supplied string) string {
	if supplied != "" {
		return supplied
	}
	return uuid.NewString()
}

// writeEngineError maps engine failures onto HTTP statuses: validation
// failures and oversized grids are client errors, anything else is a 500.
func writeEngineError(c *gin.Context, trace string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, units.ErrInvalidInput) || errors.Is(err, sweep.ErrGridTooLarge) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"trace_id": trace, "error": err.Error()})
}
