package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

// ListOffDays returns off days between ?start and ?end, or the current
// month when either is missing.
func (h *Handler) ListOffDays(c *gin.Context) {
	start := nutrition.MonthStart(h.engine.Today())
	end := nutrition.MonthEnd(start)
	if c.Query("start") != "" && c.Query("end") != "" {
		var ok bool
		if start, ok = h.day(c, "start"); !ok {
			return
		}
		if end, ok = h.day(c, "end"); !ok {
			return
		}
	}
	offDays, err := service.OffDaysInRange(h.db, start, end)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"off_days": offDays,
		"reasons":  service.OffDayReasons(),
	})
}

type offDayRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

func (h *Handler) AddOffDay(c *gin.Context) {
	var req offDayRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Date) == "" {
		errorJSON(c, http.StatusBadRequest, "Date is required")
		return
	}
	day, ok := nutrition.ParseDay(req.Date, h.engine.Today())
	if !ok {
		errorJSON(c, http.StatusBadRequest, "Invalid date format")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		req.Reason = "other"
	}
	if _, err := service.AddOffDay(h.db, day, req.Reason, req.Notes); err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Off day added"})
}

func (h *Handler) RemoveOffDay(c *gin.Context) {
	day, ok := nutrition.ParseDay(c.Param("date"), h.engine.Today())
	if !ok {
		errorJSON(c, http.StatusBadRequest, "Invalid date format")
		return
	}
	if err := service.RemoveOffDay(h.db, day); err != nil {
		h.fail(c, err, "Off day not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Off day removed"})
}

// WeightHistory returns the latest ?limit entries and the trend over the
// default window.
func (h *Handler) WeightHistory(c *gin.Context) {
	history, err := service.WeightHistory(h.db, intQuery(c, "limit", nutrition.WeightHistoryLimit))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	progress, err := h.engine.WeightProgress()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history, "progress": progress})
}

type weightRequest struct {
	Weight float64 `json:"weight"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes"`
}

func (h *Handler) LogWeight(c *gin.Context) {
	var req weightRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Weight == 0 {
		errorJSON(c, http.StatusBadRequest, "Weight is required")
		return
	}
	day := h.engine.Today()
	if strings.TrimSpace(req.Date) != "" {
		var ok bool
		if day, ok = nutrition.ParseDay(req.Date, h.engine.Today()); !ok {
			errorJSON(c, http.StatusBadRequest, "Invalid date format")
			return
		}
	}
	if _, err := service.LogWeight(h.db, req.Weight, day, req.Notes); err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Weight logged"})
}
