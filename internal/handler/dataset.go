package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Becker23/projeto-cd-ia/internal/repository"
)

type DatasetHandler interface {
	GetStats(c *gin.Context)
}

type datasetHandler struct {
	datasetRepo repository.DatasetRepository
	logger      *zap.Logger
}

func NewDatasetHandler(datasetRepo repository.DatasetRepository, logger *zap.Logger) DatasetHandler {
	return &datasetHandler{datasetRepo: datasetRepo, logger: logger}
}

// GetStats handles GET /api/v1/dataset/stats
func (h *datasetHandler) GetStats(c *gin.Context) {
	stats, err := h.datasetRepo.Stats()
	if err != nil {
		h.logger.Error("Failed to get dataset stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve dataset stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
