package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

func goalCatalog() map[nutrition.GoalType]nutrition.GoalDefinition {
	out := map[nutrition.GoalType]nutrition.GoalDefinition{}
	for _, g := range nutrition.Goals() {
		out[g.ID] = g
	}
	return out
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := service.ListSettings(h.db)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	info, err := h.engine.GoalInfo("")
	if err != nil {
		h.fail(c, err, "")
		return
	}
	targets, err := h.engine.DailyTargets()
	if err != nil {
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":   settings,
		"targets":    targets,
		"goal_info":  info,
		"goal_types": goalCatalog(),
	})
}

var integerSettings = map[string]bool{
	nutrition.SettingCalorieTarget: true,
	nutrition.SettingProteinTarget: true,
	nutrition.SettingCarbsTarget:   true,
	nutrition.SettingFatsTarget:    true,
}

// UpdateSettings stores every key of the body as text. Target keys must be
// whole numbers and goal_type must name a known goal.
func (h *Handler) UpdateSettings(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return
	}

	values := make(map[string]string, len(body))
	for key, raw := range body {
		value := settingText(raw)
		if integerSettings[key] {
			if _, err := strconv.Atoi(value); err != nil {
				errorJSON(c, http.StatusBadRequest, fmt.Sprintf("%s must be a whole number", key))
				return
			}
		}
		if key == nutrition.SettingGoalType {
			if _, ok := nutrition.ParseGoalType(value); !ok {
				errorJSON(c, http.StatusBadRequest, "Invalid goal type")
				return
			}
		}
		values[key] = value
	}

	if err := service.SetSettings(h.db, values); err != nil {
		h.fail(c, err, "")
		return
	}
	h.logger.Info("settings updated", zap.Int("keys", len(values)))
	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

// settingText renders JSON numbers without a trailing ".0" so integer
// targets round-trip.
func settingText(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

// ListGoals returns the catalog, the current goal and the calorie figure it
// recommends over the configured maintenance base.
func (h *Handler) ListGoals(c *gin.Context) {
	current, err := h.engine.GoalInfo("")
	if err != nil {
		h.fail(c, err, "")
		return
	}
	calories, err := h.engine.RecommendedCalories(h.baseMaintenance)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	resp := gin.H{
		"goals":                nutrition.Goals(),
		"current":              current,
		"base_maintenance":     h.baseMaintenance,
		"recommended_calories": calories,
	}

	latest, err := service.LatestWeight(h.db)
	switch {
	case err == nil:
		protein, err := h.engine.RecommendedProtein(latest.Weight)
		if err != nil {
			h.fail(c, err, "")
			return
		}
		resp["recommended_protein"] = protein
	case !errors.Is(err, service.ErrNotFound):
		h.fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, resp)
}

type setGoalRequest struct {
	GoalType string `json:"goal_type"`
}

func (h *Handler) SetGoal(c *gin.Context) {
	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid goal type")
		return
	}
	ok, err := h.engine.SetGoal(req.GoalType)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	if !ok {
		errorJSON(c, http.StatusBadRequest, "Invalid goal type")
		return
	}
	info, err := h.engine.GoalInfo(req.GoalType)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.logger.Info("goal updated", zap.String("goal", string(info.ID)))
	c.JSON(http.StatusOK, gin.H{"message": "Goal updated", "goal_info": info})
}
