// Package handler exposes the HR care assistant over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/chat"
)

// BusyReply is returned with 429 when the provider throttles requests.
const BusyReply = "I'm getting a lot of requests right now. Please try again in a moment."

// Assistant answers one chat message.
type Assistant interface {
	Reply(ctx context.Context, message string, history []chat.Turn) (string, error)
}

// Handler serves the chat route. A nil assistant answers every request with 400.
type Handler struct {
	assistant Assistant
	log       *zap.Logger
}

// NewHandler returns a Handler backed by assistant, which may be nil.
func NewHandler(assistant Assistant, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{assistant: assistant, log: log}
}

// Register mounts the route on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/chat", h.Chat)
}

type chatRequest struct {
	Message string      `json:"message"`
	History []chat.Turn `json:"history"`
}

// Chat forwards the message and history to the assistant.
func (h *Handler) Chat(c *gin.Context) {
	if h.assistant == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Chat assistant not configured"})
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	reply, err := h.assistant.Reply(c.Request.Context(), req.Message, req.History)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
	case errors.Is(err, chat.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"reply": BusyReply})
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Chat request failed", "details": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
