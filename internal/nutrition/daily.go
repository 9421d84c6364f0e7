package nutrition

import (
	"fmt"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

type DailyTotals struct {
	Date string `json:"date"`
	Macros
	MealCount int  `json:"meal_count"`
	IsOffDay  bool `json:"is_off_day"`
}

type DailyProgress struct {
	Date           string      `json:"date"`
	Totals         DailyTotals `json:"totals"`
	Targets        Targets     `json:"targets"`
	Remaining      Macros      `json:"remaining"`
	Percentage     Macros      `json:"percentage"`
	DeficitSurplus float64     `json:"deficit_surplus"`
	IsOffDay       bool        `json:"is_off_day"`
}

// DailyTotals sums single-food logs for day. Multi-ingredient meals are not
// included; see FoldMultiMeals. A zero day means today.
func (e *Engine) DailyTotals(day time.Time) (*DailyTotals, error) {
	day = e.dayOrToday(day)

	meals, err := e.store.MealsForDate(day)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	offDay, err := e.store.IsOffDay(day)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}

	totals := &DailyTotals{Date: day.Format(DateLayout), MealCount: len(meals), IsOffDay: offDay}
	for _, m := range meals {
		totals.Add(FromMealLog(m).Macros)
	}
	return totals, nil
}

// DailyProgress compares day's single-food totals with the stored targets.
func (e *Engine) DailyProgress(day time.Time) (*DailyProgress, error) {
	totals, err := e.DailyTotals(day)
	if err != nil {
		return nil, err
	}
	targets, err := e.DailyTargets()
	if err != nil {
		return nil, fmt.Errorf("daily progress: %w", err)
	}

	p := &DailyProgress{
		Date:     totals.Date,
		Totals:   *totals,
		Targets:  targets,
		IsOffDay: totals.IsOffDay,
	}
	p.recompute()
	return p, nil
}

// FoldMultiMeals adds multi-ingredient meal totals into p and recomputes the
// derived fields. Each meal counts once toward MealCount.
func FoldMultiMeals(p *DailyProgress, meals []model.MultiMeal) {
	if p == nil || len(meals) == 0 {
		return
	}
	for _, m := range meals {
		p.Totals.Add(FromMultiMeal(m).Macros)
		p.Totals.MealCount++
	}
	p.recompute()
}

func (p *DailyProgress) recompute() {
	t := p.Totals.Macros
	p.Remaining = Macros{
		Calories: float64(p.Targets.Calories) - t.Calories,
		Protein:  float64(p.Targets.Protein) - t.Protein,
		Carbs:    float64(p.Targets.Carbs) - t.Carbs,
		Fats:     float64(p.Targets.Fats) - t.Fats,
	}
	p.Percentage = Macros{
		Calories: percentOf(t.Calories, p.Targets.Calories),
		Protein:  percentOf(t.Protein, p.Targets.Protein),
		Carbs:    percentOf(t.Carbs, p.Targets.Carbs),
		Fats:     percentOf(t.Fats, p.Targets.Fats),
	}
	p.DeficitSurplus = t.Calories - float64(p.Targets.Calories)
}

func percentOf(total float64, target int) float64 {
	if target <= 0 {
		return 0
	}
	return total / float64(target) * 100
}

// MealsByType groups day's single-food logs by meal type. Every known type
// is present, possibly empty; unknown types get their own key.
func (e *Engine) MealsByType(day time.Time) (map[string][]model.MealLog, error) {
	day = e.dayOrToday(day)
	meals, err := e.store.MealsForDate(day)
	if err != nil {
		return nil, fmt.Errorf("meals by type: %w", err)
	}
	grouped := make(map[string][]model.MealLog, len(model.MealTypes))
	for _, t := range model.MealTypes {
		grouped[t] = []model.MealLog{}
	}
	for _, m := range meals {
		grouped[m.MealType] = append(grouped[m.MealType], m)
	}
	return grouped, nil
}
