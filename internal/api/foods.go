package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/service"
)

const foodNotFound = "Food not found"

// ListFoods searches by ?q when present, otherwise lists everything.
func (h *Handler) ListFoods(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	var (
		foods []model.Food
		err   error
	)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		foods, err = service.SearchFoods(h.db, q, limit)
	} else {
		foods, err = service.ListFoods(h.db, limit)
	}
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *Handler) GetFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	food, err := service.GetFood(h.db, id)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food})
}

func (h *Handler) AddFood(c *gin.Context) {
	var in service.FoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("invalid food payload", zap.Error(err))
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		errorJSON(c, http.StatusBadRequest, "Food name is required")
		return
	}
	id, err := service.AddFood(h.db, in)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	food, err := service.GetFood(h.db, id)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"food": food, "message": "Food added successfully"})
}

func (h *Handler) UpdateFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in service.UpdateFoodInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return
	}
	if err := service.UpdateFood(h.db, id, in); err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	food, err := service.GetFood(h.db, id)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food": food, "message": "Food updated"})
}

func (h *Handler) DeleteFood(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := service.DeleteFood(h.db, id); err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted"})
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	fav, err := service.ToggleFavorite(h.db, id)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_favorite": fav})
}

func (h *Handler) FavoriteFoods(c *gin.Context) {
	foods, err := service.FavoriteFoods(h.db)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *Handler) RecentFoods(c *gin.Context) {
	foods, err := service.RecentFoods(h.db, intQuery(c, "limit", 10))
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

type importFoodsRequest struct {
	Foods          []service.FoodInput `json:"foods"`
	SkipDuplicates *bool               `json:"skip_duplicates"`
}

func (h *Handler) ImportFoods(c *gin.Context) {
	var req importFoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Foods must be a list")
		return
	}
	if len(req.Foods) == 0 {
		errorJSON(c, http.StatusBadRequest, "Foods list is required")
		return
	}
	skip := true
	if req.SkipDuplicates != nil {
		skip = *req.SkipDuplicates
	}
	res, err := service.ImportFoodsBulk(h.db, req.Foods, skip)
	if err != nil {
		h.fail(c, err, foodNotFound)
		return
	}
	h.logger.Info("foods imported",
		zap.Int("added", res.Added),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped))
	c.JSON(http.StatusOK, gin.H{
		"message": "Foods imported",
		"added":   res.Added,
		"skipped": res.Skipped,
		"updated": res.Updated,
	})
}
