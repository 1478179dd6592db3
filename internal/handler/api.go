package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"earnershub/internal/models"
	"earnershub/internal/repository"
	"earnershub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPredictionLimit = 50
	maxPredictionLimit     = 500
)

// PredictionReader exposes the prediction log to the API
type PredictionReader interface {
	Latest(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	LabelCounts(ctx context.Context) (map[string]int, error)
}

// Handler handles HTTP requests
type Handler struct {
	reviews     *service.ReviewService
	sources     *service.SourceService
	predictions PredictionReader
	logger      *zap.Logger
}

// NewHandler creates a new API handler. predictions may be nil when the prediction log is disabled.
func NewHandler(
	reviews *service.ReviewService,
	sources *service.SourceService,
	predictions PredictionReader,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		reviews:     reviews,
		sources:     sources,
		predictions: predictions,
		logger:      logger,
	}
}

// RegisterRoutes registers the JSON API, the HTML pages and the health check
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		// Reviews
		api.POST("/reviews", h.SubmitReview)
		api.GET("/reviews", h.GetReviews)
		api.POST("/reviews/classify", h.ClassifyReview)
		api.GET("/credibility", h.GetCredibility)

		// Earning sources directory
		api.GET("/sources", h.GetSources)
		api.POST("/sources", h.AddSource)

		// Export
		api.GET("/export/reviews.csv", h.ExportReviewsCSV)
		api.GET("/export/sources.csv", h.ExportSourcesCSV)
		api.GET("/export/reviews.json", h.ExportReviewsJSON)

		// Audit
		api.GET("/predictions", h.GetPredictions)
	}

	h.registerPages(r)

	// Health check
	r.GET("/health", h.HealthCheck)
}

// SubmitReview classifies and stores a review
func (h *Handler) SubmitReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reviews.Submit(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err, "review submission")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ClassifyReview predicts a sentiment without storing the review
func (h *Handler) ClassifyReview(c *gin.Context) {
	var req models.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	label, err := h.reviews.Classify(c.Request.Context(), req.Text)
	if err != nil {
		h.respondError(c, err, "classification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentiment": label})
}

// GetReviews returns all reviews in submission order
func (h *Handler) GetReviews(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "loading reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"total":   len(reviews),
	})
}

// GetCredibility returns the credibility tier and sentiment counts
func (h *Handler) GetCredibility(c *gin.Context) {
	report, err := h.reviews.Credibility(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "credibility check")
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSources returns directory entries, filtered by the type query parameter
func (h *Handler) GetSources(c *gin.Context) {
	sources, selector, err := h.sources.Browse(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.respondError(c, err, "loading sources")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": sources,
		"type":    selector,
		"total":   len(sources),
	})
}

// AddSource adds an entry to the directory
func (h *Handler) AddSource(c *gin.Context) {
	var req models.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	source, err := h.sources.Add(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "adding source")
		return
	}

	c.JSON(http.StatusCreated, source)
}

// ExportReviewsCSV downloads the reviews file contents
func (h *Handler) ExportReviewsCSV(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "export")
		return
	}
	writeCSV(c, h.logger, "review_data.csv", reviews, repository.ReviewCodec{})
}

// ExportSourcesCSV downloads the directory contents
func (h *Handler) ExportSourcesCSV(c *gin.Context) {
	sources, _, err := h.sources.Browse(c.Request.Context(), models.SourceTypeAll)
	if err != nil {
		h.respondError(c, err, "export")
		return
	}
	writeCSV(c, h.logger, "earning_sources.csv", sources, repository.SourceCodec{})
}

// ExportReviewsJSON downloads the reviews as a JSON array
func (h *Handler) ExportReviewsJSON(c *gin.Context) {
	reviews, err := h.reviews.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "export")
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", "attachment; filename=reviews.json")

	encoder := json.NewEncoder(c.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reviews); err != nil {
		h.logger.Error("Failed to write JSON export", zap.Error(err))
	}
}

// GetPredictions returns the newest prediction log entries
func (h *Handler) GetPredictions(c *gin.Context) {
	if h.predictions == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "prediction log is disabled"})
		return
	}

	limit := defaultPredictionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPredictionLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit (must be 1-500)"})
			return
		}
		limit = n
	}

	records, err := h.predictions.Latest(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get predictions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get predictions"})
		return
	}
	counts, err := h.predictions.LabelCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count predictions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get predictions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"predictions":  records,
		"total":        len(records),
		"label_counts": counts,
	})
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "earnershub",
		"version":        "1.0.0",
		"prediction_log": h.predictions != nil,
	})
}

// respondError maps service errors onto status codes. Storage failures are logged
// and reported with a generic message.
func (h *Handler) respondError(c *gin.Context, err error, action string) {
	var fieldErr *models.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldErr.Reason, "field": fieldErr.Field})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInsufficientData):
		c.JSON(http.StatusConflict, gin.H{"error": "not enough data to train the model, add a few labeled reviews first"})
	default:
		h.logger.Error("Request failed", zap.String("action", action), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": action + " failed"})
	}
}

// writeCSV streams records as a CSV attachment. Headers are already sent once
// a write fails, so the error is only logged.
func writeCSV[T any](c *gin.Context, logger *zap.Logger, filename string, records []T, codec repository.Codec[T]) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(c.Writer)
	writer.Write(codec.Columns())
	for _, record := range records {
		writer.Write(codec.Encode(record))
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		logger.Error("Failed to write CSV export", zap.String("file", filename), zap.Error(err))
	}
}
