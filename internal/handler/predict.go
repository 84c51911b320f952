package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/models"
	"github.com/Becker23/projeto-cd-ia/internal/predictor"
)

type PredictHandler interface {
	Predict(c *gin.Context)
	GetModelMetrics(c *gin.Context)
}

type predictHandler struct {
	predictor *predictor.Predictor
	logger    *zap.Logger
}

func NewPredictHandler(p *predictor.Predictor, logger *zap.Logger) PredictHandler {
	return &predictHandler{predictor: p, logger: logger}
}

// Predict handles POST /api/v1/predict
func (h *predictHandler) Predict(c *gin.Context) {
	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictor.Predict(req.Text)
	if err != nil {
		if errors.Is(err, predictor.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text is empty or contains no usable content"})
			return
		}
		h.logger.Error("Prediction failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	c.JSON(http.StatusOK, models.PredictResponse{
		Label:      prediction.Label,
		Confidence: prediction.Confidence,
	})
}

// GetModelMetrics handles GET /api/v1/model/metrics
func (h *predictHandler) GetModelMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"run_id":     h.predictor.RunID(),
		"created_at": h.predictor.CreatedAt(),
		"metrics":    h.predictor.Metrics(),
	})
}
