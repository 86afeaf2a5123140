// Package handler serves the HR login route.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/security"
)

// Authenticator checks the HR password and issues tokens.
type Authenticator interface {
	Login(password string) (token string, expiresAt time.Time, err error)
}

// Handler serves POST /auth/hr.
type Handler struct {
	auth Authenticator
	log  *zap.Logger
}

// NewHandler returns a Handler. auth may be nil when HR login is disabled; the route then answers 404.
func NewHandler(auth Authenticator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{auth: auth, log: log}
}

// Register mounts the route on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/auth/hr", h.Login)
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the HR password for an access token.
func (h *Handler) Login(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "HR authentication is not enabled"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password is required"})
		return
	}
	token, expiresAt, err := h.auth.Login(req.Password)
	if errors.Is(err, security.ErrWrongPassword) {
		h.log.Info("hr login rejected", zap.String("client_ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid password"})
		return
	}
	if err != nil {
		h.log.Error("hr login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}
