// Package handler serves liveness and readiness checks.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceName is reported by the liveness check.
const ServiceName = "VorteX WellMind Backend"

const readyTimeout = 2 * time.Second

// Checker is one readiness dependency.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker.
type CheckerFunc func(ctx context.Context) error

// HealthCheck calls f.
func (f CheckerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

// Server implements the health routes.
type Server struct {
	checks map[string]Checker
}

// NewServer returns a Server whose readiness route runs checks. Nil checkers are ignored.
func NewServer(checks map[string]Checker) *Server {
	s := &Server{checks: map[string]Checker{}}
	for name, c := range checks {
		if c != nil {
			s.checks[name] = c
		}
	}
	return s
}

// Register mounts the routes on rg.
func (s *Server) Register(rg gin.IRoutes) {
	rg.GET("/health", s.Health)
	rg.GET("/ready", s.Ready)
}

// Health always reports ok while the process is serving.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
}

// Ready runs every check and returns 503 if any fails.
func (s *Server) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		if err := check.HealthCheck(ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}
	overall := "ready"
	if status != http.StatusOK {
		overall = "not_ready"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
