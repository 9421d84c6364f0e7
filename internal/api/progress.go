package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

// DailyProgress reports the day's progress with multi-ingredient meals
// folded into the totals.
func (h *Handler) DailyProgress(c *gin.Context) {
	day, ok := h.day(c, "date")
	if !ok {
		return
	}
	progress, err := h.engine.DailyProgress(day)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	singles, err := service.MealsForDate(h.db, day)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	multis, err := service.MultiMealsForDate(h.db, day)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	nutrition.FoldMultiMeals(progress, multis)

	var offDay *model.OffDay
	if offDay, err = service.GetOffDay(h.db, day); err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			h.fail(c, err, "")
			return
		}
		offDay = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"date":        progress.Date,
		"progress":    progress,
		"meals":       singles,
		"multi_meals": multis,
		"off_day":     offDay,
	})
}

func (h *Handler) WeeklyProgress(c *gin.Context) {
	day, ok := h.day(c, "date")
	if !ok {
		return
	}
	weekly, err := h.engine.WeeklyAverages(day)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weekly": weekly})
}

func (h *Handler) MonthlyProgress(c *gin.Context) {
	day, ok := h.day(c, "date")
	if !ok {
		return
	}
	monthly, err := h.engine.MonthlyAverages(day)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthly": monthly})
}

func (h *Handler) Breakdown(c *gin.Context) {
	weeks, err := h.engine.WeeklyBreakdown(intQuery(c, "weeks", nutrition.DefaultBreakdownWeeks))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	months, err := h.engine.MonthlyBreakdown(intQuery(c, "months", nutrition.DefaultBreakdownMonths))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": weeks, "months": months})
}

func (h *Handler) Streak(c *gin.Context) {
	streak, err := h.engine.Streak()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

func (h *Handler) MealTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"meal_types": model.MealTypes})
}
