package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/service"
)

func (h *Handler) Export(c *gin.Context) {
	data, err := service.ExportDataSnapshot(h.db)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, data)
}

// Import loads an export document. ?merge=false replaces existing data.
func (h *Handler) Import(c *gin.Context) {
	var data service.ExportData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.logger.Warn("invalid import payload", zap.Error(err))
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return
	}
	merge := strings.ToLower(c.DefaultQuery("merge", "true")) == "true"
	report, err := service.ImportDataSnapshot(h.db, &data, merge)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.logger.Info("data imported",
		zap.Bool("merge", merge),
		zap.Int("foods", report.Foods),
		zap.Int("meal_logs", report.MealLogs),
		zap.Int("skipped", report.Skipped))
	c.JSON(http.StatusOK, gin.H{"message": "Data imported successfully", "report": report})
}
