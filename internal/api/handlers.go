// Package api implements the HTTP front-end of the detector service.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtegrity/detector/internal/database"
	"github.com/jobtegrity/detector/internal/detector"
	"github.com/jobtegrity/detector/internal/metrics"
)

const maxHistoryLimit = 100

// Logger defines the logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Handler handles HTTP requests for the detector API.
type Handler struct {
	detector *detector.Detector
	history  *database.HistoryRepository // nil when history is disabled
	metrics  *metrics.Metrics
	logger   Logger
}

// NewHandler creates a new API handler.
func NewHandler(
	det *detector.Detector,
	history *database.HistoryRepository,
	m *metrics.Metrics,
	logger Logger,
) *Handler {
	return &Handler{
		detector: det,
		history:  history,
		metrics:  m,
		logger:   logger,
	}
}

// PredictRequest is the wire input for a prediction. Empty required fields
// are rejected by binding before the core is reached.
type PredictRequest struct {
	Title       string `json:"title"       binding:"required"`
	Company     string `json:"company"     binding:"required"`
	Description string `json:"description" binding:"required"`
	Salary      string `json:"salary"`
	Location    string `json:"location"`
	Link        string `json:"link"`
}

// HealthResponse is the health probe body.
type HealthResponse struct {
	Status string `json:"status"`
}

// Predict handles POST /api/predict.
func (h *Handler) Predict(c *gin.Context) {
	var req PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result := h.detector.Predict(detector.JobPosting{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		Salary:      req.Salary,
		Location:    req.Location,
		Link:        req.Link,
	})

	if h.metrics != nil {
		h.metrics.ObservePrediction(result.Label, result.Method, time.Since(start).Seconds())
	}
	h.recordPrediction(c, req, result)

	h.logger.Info("posting scored",
		"label", result.Label,
		"confidence", result.Confidence,
		"method", result.Method,
	)

	c.JSON(http.StatusOK, result)
}

// recordPrediction persists the outcome when history is enabled. Storage
// failures are logged and never surface to the caller.
func (h *Handler) recordPrediction(c *gin.Context, req PredictRequest, result detector.Result) {
	if h.history == nil {
		return
	}
	record := &database.PredictionRecord{
		Title:      req.Title,
		Company:    req.Company,
		Label:      result.Label,
		Confidence: result.Confidence,
		ProbFake:   result.Scores.Fake,
		Method:     result.Method,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.history.Create(c.Request.Context(), record); err != nil {
		h.logger.Warn("failed to record prediction", "error", err)
	}
}

// History handles GET /api/history.
func (h *Handler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is not enabled"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list prediction history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions": records,
		"total":       len(records),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// ReadyCheck handles GET /ready.
func (h *Handler) ReadyCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
