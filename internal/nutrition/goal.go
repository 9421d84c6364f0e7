package nutrition

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	SettingGoalType      = "goal_type"
	SettingCalorieTarget = "daily_calorie_target"
	SettingProteinTarget = "protein_target"
	SettingCarbsTarget   = "carbs_target"
	SettingFatsTarget    = "fats_target"
)

const DefaultBaseMaintenance = 2000

type GoalType string

const (
	GoalBulking     GoalType = "bulking"
	GoalCutting     GoalType = "cutting"
	GoalMaintenance GoalType = "maintenance"
)

type GoalDefinition struct {
	ID              GoalType `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	CalorieModifier int      `json:"calorie_modifier"`
	ProteinPerLb    float64  `json:"protein_per_lb"`
}

var goalCatalog = []GoalDefinition{
	{ID: GoalBulking, Name: "Bulking", Description: "Gain muscle mass with calorie surplus", CalorieModifier: 300, ProteinPerLb: 1.0},
	{ID: GoalCutting, Name: "Cutting", Description: "Lose fat with calorie deficit", CalorieModifier: -500, ProteinPerLb: 1.2},
	{ID: GoalMaintenance, Name: "Maintenance", Description: "Maintain current weight", CalorieModifier: 0, ProteinPerLb: 0.8},
}

// Goals lists the catalog in display order.
func Goals() []GoalDefinition {
	out := make([]GoalDefinition, len(goalCatalog))
	copy(out, goalCatalog)
	return out
}

// ParseGoalType matches id against the catalog, ignoring case.
func ParseGoalType(id string) (GoalType, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, g := range goalCatalog {
		if string(g.ID) == id {
			return g.ID, true
		}
	}
	return "", false
}

// Definition returns g's catalog entry, or maintenance for an unknown id.
func (g GoalType) Definition() GoalDefinition {
	for _, d := range goalCatalog {
		if d.ID == g {
			return d
		}
	}
	return goalCatalog[len(goalCatalog)-1]
}

type Targets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// TargetsUpdate changes only the fields that are set.
type TargetsUpdate struct {
	Calories *int `json:"calories,omitempty"`
	Protein  *int `json:"protein,omitempty"`
	Carbs    *int `json:"carbs,omitempty"`
	Fats     *int `json:"fats,omitempty"`
}

func (u TargetsUpdate) Empty() bool {
	return u.Calories == nil && u.Protein == nil && u.Carbs == nil && u.Fats == nil
}

// CurrentGoal reads the stored goal. Unset or unrecognized values resolve
// to maintenance.
func (e *Engine) CurrentGoal() (GoalType, error) {
	raw, err := e.store.GetSetting(SettingGoalType, string(GoalMaintenance))
	if err != nil {
		return "", fmt.Errorf("current goal: %w", err)
	}
	g, ok := ParseGoalType(raw)
	if !ok {
		e.logger.Debug("unknown stored goal, using maintenance", zap.String("goal", raw))
		return GoalMaintenance, nil
	}
	return g, nil
}

// SetGoal stores id if it names a catalog goal. It reports false, without
// error, for an unknown id.
func (e *Engine) SetGoal(id string) (bool, error) {
	g, ok := ParseGoalType(id)
	if !ok {
		return false, nil
	}
	if err := e.store.SetSetting(SettingGoalType, string(g)); err != nil {
		return false, fmt.Errorf("set goal: %w", err)
	}
	return true, nil
}

// GoalInfo describes id, or the current goal when id is empty.
func (e *Engine) GoalInfo(id string) (GoalDefinition, error) {
	if strings.TrimSpace(id) == "" {
		current, err := e.CurrentGoal()
		if err != nil {
			return GoalDefinition{}, err
		}
		return current.Definition(), nil
	}
	g, _ := ParseGoalType(id)
	return g.Definition(), nil
}

// RecommendedCalories applies the current goal's modifier to base.
func (e *Engine) RecommendedCalories(base int) (int, error) {
	info, err := e.GoalInfo("")
	if err != nil {
		return 0, err
	}
	return base + info.CalorieModifier, nil
}

// RecommendedProtein is grams per day for the current goal at weightLbs.
func (e *Engine) RecommendedProtein(weightLbs float64) (float64, error) {
	info, err := e.GoalInfo("")
	if err != nil {
		return 0, err
	}
	return weightLbs * info.ProteinPerLb, nil
}

var targetDefaults = map[string]int{
	SettingCalorieTarget: 2000,
	SettingProteinTarget: 150,
	SettingCarbsTarget:   200,
	SettingFatsTarget:    65,
}

func (e *Engine) DailyTargets() (Targets, error) {
	settings, err := e.store.AllSettings()
	if err != nil {
		return Targets{}, fmt.Errorf("daily targets: %w", err)
	}
	read := func(key string) (int, error) {
		raw, ok := settings[key]
		if !ok || strings.TrimSpace(raw) == "" {
			return targetDefaults[key], nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("daily targets: setting %s=%q is not an integer", key, raw)
		}
		return v, nil
	}

	var t Targets
	if t.Calories, err = read(SettingCalorieTarget); err != nil {
		return Targets{}, err
	}
	if t.Protein, err = read(SettingProteinTarget); err != nil {
		return Targets{}, err
	}
	if t.Carbs, err = read(SettingCarbsTarget); err != nil {
		return Targets{}, err
	}
	if t.Fats, err = read(SettingFatsTarget); err != nil {
		return Targets{}, err
	}
	return t, nil
}

func (e *Engine) SetDailyTargets(u TargetsUpdate) error {
	fields := []struct {
		key   string
		value *int
	}{
		{SettingCalorieTarget, u.Calories},
		{SettingProteinTarget, u.Protein},
		{SettingCarbsTarget, u.Carbs},
		{SettingFatsTarget, u.Fats},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := e.store.SetSetting(f.key, strconv.Itoa(*f.value)); err != nil {
			return fmt.Errorf("set daily targets: %w", err)
		}
	}
	return nil
}
