// Package handler exposes the high-risk sweep over HTTP.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/notify"
)

// Sweeper runs the high-risk sweep.
type Sweeper interface {
	Run(ctx context.Context) (*notify.Result, error)
	Last() *notify.Result
	Cooldown() time.Duration
}

// Handler serves the auto-notify routes.
type Handler struct {
	sweeper  Sweeper
	schedule string
	log      *zap.Logger
}

// NewHandler returns a Handler. schedule is reported by the status route; empty means manual only.
func NewHandler(sweeper Sweeper, schedule string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sweeper: sweeper, schedule: schedule, log: log}
}

// Register mounts the routes on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/employees/auto-notify", h.Run)
	rg.GET("/employees/auto-notify", h.Status)
}

// Run performs a sweep now.
func (h *Handler) Run(c *gin.Context) {
	res, err := h.sweeper.Run(c.Request.Context())
	if err != nil {
		h.log.Error("auto-notify sweep failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to process automated notifications",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Automated notifications processed",
		"checked":  res.Checked,
		"notified": res.Notified,
		"skipped":  res.Skipped,
	})
}

// Status describes the sweep and its last run.
func (h *Handler) Status(c *gin.Context) {
	schedule := h.schedule
	if schedule == "" {
		schedule = "manual"
	}
	c.JSON(http.StatusOK, gin.H{
		"service":        "Automated Notification System",
		"status":         "active",
		"description":    "Re-triggers the wellness workflow for employees whose latest result is High",
		"cooldownPeriod": h.sweeper.Cooldown().String(),
		"schedule":       schedule,
		"last_run":       h.sweeper.Last(),
	})
}
