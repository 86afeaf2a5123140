// Package handler exposes the survey service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/safinirasol/WellMind-IBM/internal/aiscoring"
	"github.com/safinirasol/WellMind-IBM/internal/scoring"
	"github.com/safinirasol/WellMind-IBM/internal/survey/service"
)

const maxBodyBytes = 1 << 20

// Service is the survey service used by the handler.
type Service interface {
	Predict(in scoring.SimpleInput) service.Prediction
	Analyze(ctx context.Context, answers scoring.Answers) aiscoring.Outcome
	Submit(ctx context.Context, in service.SubmitInput) (*service.SubmitResult, error)
}

// Handler serves the predict, survey and analyze routes.
type Handler struct {
	svc Service
	log *zap.Logger
}

// NewHandler returns a Handler backed by svc.
func NewHandler(svc Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// Register mounts the routes on rg.
func (h *Handler) Register(rg gin.IRoutes) {
	rg.POST("/predict", h.Predict)
	rg.POST("/survey", h.Submit)
	rg.POST("/analyze", h.Analyze)
}

// submitRequest is the survey body. Required fields of the wrong JSON type decode as blank.
type submitRequest struct {
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Department string        `json:"department"`
	WorkHours  scoring.Value `json:"work_hours"`
	Stress     scoring.Value `json:"stress"`
}

type submitResponse struct {
	EmployeeID int64  `json:"employee_id"`
	ResultID   int64  `json:"result_id"`
	Risk       string `json:"risk"`
	Score      int    `json:"score"`
	Message    string `json:"message"`
}

type analyzeResponse struct {
	Risk   int    `json:"risk"`
	Label  string `json:"label"`
	Source string `json:"source"`
}

// Predict scores the body with the simple policy. An unreadable body scores with defaults.
func (h *Handler) Predict(c *gin.Context) {
	var in scoring.SimpleInput
	_ = decodeObject(c, &in)
	c.JSON(http.StatusOK, h.svc.Predict(in))
}

// Analyze scores the five-input questionnaire.
func (h *Handler) Analyze(c *gin.Context) {
	var in scoring.Answers
	_ = decodeObject(c, &in)
	out := h.svc.Analyze(c.Request.Context(), in)
	source := "heuristic"
	if out.FromAI {
		source = "ai"
	}
	c.JSON(http.StatusOK, analyzeResponse{Risk: out.Score, Label: out.Label, Source: source})
}

// Submit persists a survey.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := decodeObject(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No data provided"})
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), service.SubmitInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Answers:    scoring.SimpleInput{WorkHours: req.WorkHours, Stress: req.Stress},
	})
	if err != nil {
		var fe *service.FieldError
		if errors.As(err, &fe) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fe.Error()})
			return
		}
		h.log.Error("survey submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, submitResponse{
		EmployeeID: res.EmployeeID,
		ResultID:   res.ResultID,
		Risk:       res.Risk,
		Score:      res.Score,
		Message:    "Survey submitted successfully",
	})
}

var errNoData = errors.New("no data provided")

// decodeObject decodes a non-empty JSON object body into v. Fields of the wrong type are left zero.
func decodeObject(c *gin.Context, v any) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return errNoData
	}
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(raw, v); err != nil && !errors.As(err, &typeErr) {
		return err
	}
	return nil
}
