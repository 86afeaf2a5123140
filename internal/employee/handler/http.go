// Package handler exposes the employee list and history over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/employee/service"
)

// Roster is the employee view service.
type Roster interface {
	List(ctx context.Context) ([]service.Row, error)
	History(ctx context.Context, id int64) (*service.History, error)
}

// Handler serves the employee routes.
type Handler struct {
	roster Roster
	log    *zap.Logger
}

// NewHandler returns a Handler backed by roster.
func NewHandler(roster Roster, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{roster: roster, log: log}
}

// Register mounts the routes on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.GET("/employees", h.List)
	rg.GET("/employee/:id/history", h.History)
}

// List returns every employee with their latest result.
func (h *Handler) List(c *gin.Context) {
	rows, err := h.roster.List(c.Request.Context())
	if err != nil {
		h.dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// History returns one employee's results, newest first.
func (h *Handler) History(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return
	}
	hist, err := h.roster.History(c.Request.Context(), id)
	if errors.Is(err, service.ErrEmployeeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}
	if err != nil {
		h.dbError(c, err)
		return
	}
	c.JSON(http.StatusOK, hist)
}

func (h *Handler) dbError(c *gin.Context, err error) {
	h.log.Error("employee query failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
}
