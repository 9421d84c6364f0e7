package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

const mealNotFound = "Meal not found"

// ListMeals returns single-food logs for ?date, or for ?start..?end when
// both are given.
func (h *Handler) ListMeals(c *gin.Context) {
	var (
		meals []model.MealLog
		err   error
	)
	if c.Query("start") != "" && c.Query("end") != "" {
		start, ok := h.day(c, "start")
		if !ok {
			return
		}
		end, ok := h.day(c, "end")
		if !ok {
			return
		}
		meals, err = service.MealsForRange(h.db, start, end)
	} else {
		day, ok := h.day(c, "date")
		if !ok {
			return
		}
		meals, err = service.MealsForDate(h.db, day)
	}
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

type logMealRequest struct {
	FoodID   int64   `json:"food_id"`
	Portions float64 `json:"portions"`
	MealType string  `json:"meal_type"`
	LoggedAt string  `json:"logged_at"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

func (h *Handler) LogMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid meal payload", zap.Error(err))
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FoodID == 0 {
		errorJSON(c, http.StatusBadRequest, "Food ID is required")
		return
	}
	at, err := h.loggedAt(req.LoggedAt, req.Date)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.MealType) == "" {
		req.MealType = model.MealTypeSnack
	}
	id, err := service.LogMeal(h.db, service.LogMealInput{
		FoodID:   req.FoodID,
		Portions: req.Portions,
		MealType: req.MealType,
		LoggedAt: at,
		Notes:    req.Notes,
	})
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"log_id": id, "message": "Meal logged"})
}

func (h *Handler) DeleteMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.DeleteMealLog(h.db, id); err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}

type multiMealRequest struct {
	Name        string                    `json:"name"`
	MealType    string                    `json:"meal_type"`
	Ingredients []service.IngredientInput `json:"ingredients"`
	LoggedAt    string                    `json:"logged_at"`
	Date        string                    `json:"date"`
	Notes       string                    `json:"notes"`
}

func (h *Handler) CreateMultiMeal(c *gin.Context) {
	var req multiMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid multi meal payload", zap.Error(err))
		errorJSON(c, http.StatusBadRequest, "Ingredients are required")
		return
	}
	if len(req.Ingredients) == 0 {
		errorJSON(c, http.StatusBadRequest, "At least one ingredient is required")
		return
	}
	at, err := h.loggedAt(req.LoggedAt, req.Date)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.MealType) == "" {
		req.MealType = model.MealTypeLunch
	}
	id, err := service.CreateMultiMeal(h.db, service.CreateMultiMealInput{
		Name:        req.Name,
		MealType:    req.MealType,
		Ingredients: req.Ingredients,
		LoggedAt:    at,
		Notes:       req.Notes,
	})
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	meal, err := service.GetMultiMeal(h.db, id)
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"meal_id": id,
		"meal":    meal,
		"message": "Multi-ingredient meal logged",
	})
}

func (h *Handler) GetMultiMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	meal, err := service.GetMultiMeal(h.db, id)
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal": meal})
}

func (h *Handler) DeleteMultiMeal(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.DeleteMultiMeal(h.db, id); err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted"})
}

// AllMeals returns both single-food logs and multi-ingredient meals for
// ?date.
func (h *Handler) AllMeals(c *gin.Context) {
	day, ok := h.day(c, "date")
	if !ok {
		return
	}
	singles, err := service.MealsForDate(h.db, day)
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	multis, err := service.MultiMealsForDate(h.db, day)
	if err != nil {
		h.fail(c, err, mealNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":        day.Format(nutrition.DateLayout),
		"single_logs": singles,
		"multi_meals": multis,
	})
}
