// Package handler exposes report export over HTTP.
package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/report"
)

// Builder builds reports.
type Builder interface {
	Build(ctx context.Context, req report.Request) (*report.Report, error)
}

// Handler serves POST /employees/export-report.
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
	rg.POST("/employees/export-report", h.Export)
}

// Export writes the filtered roster as a CSV or JSON attachment. An empty body exports every employee as CSV.
func (h *Handler) Export(c *gin.Context) {
	var req report.Request
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err == nil && len(bytes.TrimSpace(raw)) > 0 {
		err = json.Unmarshal(raw, &req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.builder.Build(c.Request.Context(), req)
	if err != nil {
		h.log.Error("build report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}

	var buf bytes.Buffer
	contentType := "text/csv; charset=utf-8"
	if req.Format == report.FormatJSON {
		contentType = "application/json; charset=utf-8"
		err = report.WriteJSON(&buf, rep)
	} else {
		err = report.WriteCSV(&buf, rep.Employees)
	}
	if err != nil {
		h.log.Error("encode report", zap.String("format", req.Format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.Filename(time.Now(), req.Format)+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
