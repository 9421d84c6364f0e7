package nutrition_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
)

// memStore is an in-memory nutrition.Store.
type memStore struct {
	meals    []model.MealLog
	undated  []model.MealLog
	multi    []model.MultiMeal
	offDays  []model.OffDay
	settings map[string]string
	weights  []model.WeightEntry
	failOn   string
}

func newMemStore() *memStore {
	return &memStore{settings: map[string]string{
		nutrition.SettingGoalType:      "maintenance",
		nutrition.SettingCalorieTarget: "2000",
		nutrition.SettingProteinTarget: "150",
		nutrition.SettingCarbsTarget:   "200",
		nutrition.SettingFatsTarget:    "65",
	}}
}

var errStore = errors.New("store unavailable")

func inRange(ts model.Timestamp, start, end time.Time) bool {
	key, ok := nutrition.DateKey(ts)
	if !ok {
		return false
	}
	return key >= start.Format(nutrition.DateLayout) && key <= end.Format(nutrition.DateLayout)
}

func (s *memStore) MealsForDate(day time.Time) ([]model.MealLog, error) {
	return s.mealsIn(day, day)
}

// MealsForRange also hands back undated rows, which a date filter in SQL
// would not, so the engine's skip path gets exercised.
func (s *memStore) MealsForRange(start, end time.Time) ([]model.MealLog, error) {
	out, err := s.mealsIn(start, end)
	if err != nil {
		return nil, err
	}
	return append(out, s.undated...), nil
}

func (s *memStore) mealsIn(start, end time.Time) ([]model.MealLog, error) {
	if s.failOn == "meals" {
		return nil, errStore
	}
	var out []model.MealLog
	for _, m := range s.meals {
		if inRange(m.LoggedAt, start, end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) MultiMealsForRange(start, end time.Time) ([]model.MultiMeal, error) {
	var out []model.MultiMeal
	for _, m := range s.multi {
		if inRange(m.LoggedAt, start, end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memStore) OffDaysForRange(start, end time.Time) ([]model.OffDay, error) {
	var out []model.OffDay
	for _, o := range s.offDays {
		if inRange(o.Date, start, end) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memStore) IsOffDay(day time.Time) (bool, error) {
	days, err := s.OffDaysForRange(day, day)
	return len(days) > 0, err
}

func (s *memStore) GetSetting(key, def string) (string, error) {
	if v, ok := s.settings[key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *memStore) SetSetting(key, value string) error {
	s.settings[key] = value
	return nil
}

func (s *memStore) AllSettings() (map[string]string, error) {
	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}

func (s *memStore) WeightHistory(limit int) ([]model.WeightEntry, error) {
	out := append([]model.WeightEntry(nil), s.weights...)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt > out[j].RecordedAt })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) logMeal(at time.Time, calories, protein, carbs, fats, portions float64) {
	s.meals = append(s.meals, model.MealLog{
		ID:       int64(len(s.meals) + 1),
		Name:     "food",
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fats:     fats,
		Portions: portions,
		MealType: model.MealTypeLunch,
		LoggedAt: model.DateTimeOf(at),
	})
}

func (s *memStore) markOff(day time.Time, reason string) {
	s.offDays = append(s.offDays, model.OffDay{ID: int64(len(s.offDays) + 1), Date: model.DateOf(day), Reason: reason})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

// newEngine fixes the clock at noon on today.
func newEngine(t *testing.T, store *memStore, today time.Time) *nutrition.Engine {
	t.Helper()
	clock := func() time.Time { return today.Add(12 * time.Hour) }
	return nutrition.NewEngine(store, clock, nil)
}
