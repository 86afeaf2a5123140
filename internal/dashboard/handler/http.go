// Package handler exposes the dashboard over HTTP.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/dashboard"
)

// Builder builds the dashboard.
type Builder interface {
	Build(ctx context.Context) (*dashboard.Dashboard, error)
}

// Handler serves GET /dashboard.
type Handler struct {
	builder Builder
	log     *zap.Logger
}

// NewHandler returns a Handler backed by builder.
func NewHandler(builder Builder, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{builder: builder, log: log}
}

// Register mounts the route on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/dashboard", h.Get)
}

// Get returns the dashboard.
func (h *Handler) Get(c *gin.Context) {
	d, err := h.builder.Build(c.Request.Context())
	if err != nil {
		h.log.Error("build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}
