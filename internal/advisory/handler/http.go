// Package handler exposes wellness advisory emails over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/advisory"
)

// Sender sends one advisory.
type Sender interface {
	Send(ctx context.Context, req advisory.Request) (advisory.Outcome, error)
}

// Handler serves the send-email route.
type Handler struct {
	sender Sender
	log    *zap.Logger
}

// NewHandler returns a Handler backed by sender.
func NewHandler(sender Sender, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{sender: sender, log: log}
}

// Register mounts the route on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/employees/send-email", h.Send)
}

type sendResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Delivered bool   `json:"delivered"`
}

// Send emails the advisory to the employee in the body.
func (h *Handler) Send(c *gin.Context) {
	var req advisory.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee email is required"})
		return
	}
	out, err := h.sender.Send(c.Request.Context(), req)
	switch {
	case errors.Is(err, advisory.ErrEmailRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Employee email is required"})
		return
	case err != nil:
		h.log.Error("advisory email failed", zap.Int64("employee_id", req.EmployeeID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
		return
	}
	name := req.EmployeeName
	if name == "" {
		name = out.Recipient
	}
	c.JSON(http.StatusOK, sendResponse{
		Success:   true,
		Message:   "Wellness email sent to " + name,
		Delivered: out.Delivered,
	})
}
