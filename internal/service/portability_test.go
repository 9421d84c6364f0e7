package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

func seedPortable(t *testing.T) (*service.ExportData, time.Time) {
	t.Helper()
	db := newTestDB(t)
	defer db.Close()

	day := time.Date(2026, 10, 21, 12, 0, 0, 0, time.Local)
	oats := mustAddFood(t, db, "Oats", 389, 17, 66, 7)
	milk := mustAddFood(t, db, "Milk", 42, 3.4, 5, 1)
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: oats, MealType: "breakfast", LoggedAt: day}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.CreateMultiMeal(db, service.CreateMultiMealInput{
		Name: "Porridge", MealType: "breakfast", LoggedAt: day,
		Ingredients: []service.IngredientInput{{FoodID: oats, AmountGrams: 50}, {FoodID: milk, AmountGrams: 200}},
	}); err != nil {
		t.Fatalf("create multi meal: %v", err)
	}
	if _, err := service.AddOffDay(db, day.AddDate(0, 0, -1), "travel", ""); err != nil {
		t.Fatalf("add off day: %v", err)
	}
	if _, err := service.LogWeight(db, 180, day, ""); err != nil {
		t.Fatalf("log weight: %v", err)
	}
	if err := service.SetSetting(db, "goal_type", "cutting"); err != nil {
		t.Fatalf("set setting: %v", err)
	}

	data, err := service.ExportDataSnapshot(db)
	if err != nil {
		t.Fatalf("export data: %v", err)
	}
	return data, day
}

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	data, day := seedPortable(t)
	if _, err := uuid.Parse(data.SnapshotID); err != nil {
		t.Fatalf("expected uuid snapshot id, got %q", data.SnapshotID)
	}
	if len(data.Foods) != 2 || len(data.MealLogs) != 1 || len(data.Meals) != 1 || len(data.OffDays) != 1 || len(data.WeightHistory) != 1 {
		t.Fatalf("unexpected export counts: %+v", data)
	}
	if data.MealLogs[0].LoggedAt != "2026-10-21 12:00:00" {
		t.Fatalf("expected stored timestamp layout, got %q", data.MealLogs[0].LoggedAt)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}
	var decoded service.ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}

	target := newTestDB(t)
	defer target.Close()
	mustAddFood(t, target, "Stale", 1, 0, 0, 0)

	report, err := service.ImportDataSnapshot(target, &decoded, false)
	if err != nil {
		t.Fatalf("import data: %v", err)
	}
	if report.Foods != 2 || report.MealLogs != 1 || report.Meals != 1 || report.OffDays != 1 || report.Weights != 1 {
		t.Fatalf("unexpected import report: %+v", report)
	}
	if stale, _ := service.SearchFoods(target, "Stale", 5); len(stale) != 0 {
		t.Fatalf("expected replace import to clear existing foods")
	}

	meals, err := service.MultiMealsForDate(target, day)
	if err != nil {
		t.Fatalf("multi meals for date: %v", err)
	}
	if len(meals) != 1 || len(meals[0].Ingredients) != 2 || meals[0].Name != "Porridge" {
		t.Fatalf("unexpected imported meals: %+v", meals)
	}
	logs, err := service.MealsForDate(target, day)
	if err != nil {
		t.Fatalf("meals for date: %v", err)
	}
	if len(logs) != 1 || logs[0].Name != "Oats" {
		t.Fatalf("unexpected imported logs: %+v", logs)
	}
	goal, _ := service.GetSetting(target, "goal_type", "")
	if goal != "cutting" {
		t.Fatalf("expected imported goal cutting, got %q", goal)
	}
}

func TestImportMergeSkipsExisting(t *testing.T) {
	t.Parallel()
	data, day := seedPortable(t)

	target := newTestDB(t)
	defer target.Close()
	if _, err := service.ImportDataSnapshot(target, data, false); err != nil {
		t.Fatalf("initial import: %v", err)
	}

	report, err := service.ImportDataSnapshot(target, data, true)
	if err != nil {
		t.Fatalf("merge import: %v", err)
	}
	if report.Foods != 0 || report.MealLogs != 0 || report.Meals != 0 {
		t.Fatalf("expected nothing new on merge, got %+v", report)
	}
	if report.Skipped != 4 {
		t.Fatalf("expected 4 skipped rows, got %d", report.Skipped)
	}
	logs, _ := service.MealsForDate(target, day)
	if len(logs) != 1 {
		t.Fatalf("expected no duplicate logs, got %d", len(logs))
	}
}

func TestImportKeepsOffsetTimestampsOnTheirLoggedDay(t *testing.T) {
	t.Parallel()
	raw := `{
  "foods": [{"id": 1, "name": "Rice", "calories": 130, "carbs": 28}],
  "meal_logs": [{"id": 1, "food_id": 1, "portions": 1, "meal_type": "dinner", "logged_at": "2026-10-25T23:30:00-05:00"}],
  "meals": [{"id": 1, "name": "Late bowl", "meal_type": "snack", "logged_at": "2026-10-25T22:00:00+09:00", "total_calories": 300}]
}`
	var data service.ExportData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}

	db := newTestDB(t)
	defer db.Close()
	report, err := service.ImportDataSnapshot(db, &data, true)
	if err != nil {
		t.Fatalf("merge import: %v", err)
	}
	if report.MealLogs != 1 || report.Meals != 1 {
		t.Fatalf("expected 1 log and 1 meal imported, got %+v", report)
	}

	day := time.Date(2026, 10, 25, 0, 0, 0, 0, time.Local)
	logs, err := service.MealsForDate(db, day)
	if err != nil {
		t.Fatalf("meals for date: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected imported log on 2026-10-25, got %d", len(logs))
	}
	meals, err := service.MultiMealsForDate(db, day)
	if err != nil {
		t.Fatalf("multi meals for date: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected imported meal on 2026-10-25, got %d", len(meals))
	}

	exported, err := service.ExportDataSnapshot(db)
	if err != nil {
		t.Fatalf("export data: %v", err)
	}
	if got := exported.MealLogs[0].LoggedAt; got != "2026-10-25 23:30:00" {
		t.Fatalf("expected wall-clock timestamp 2026-10-25 23:30:00, got %q", got)
	}

	engine := nutrition.NewEngine(service.NewStore(db), nil, nil)
	week, err := engine.WeeklyAverages(time.Date(2026, 10, 19, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("weekly averages: %v", err)
	}
	if week.TrackedDays != 1 || week.Totals.Calories != 430 {
		t.Fatalf("expected 1 tracked day with 430 kcal, got %d days and %v kcal", week.TrackedDays, week.Totals.Calories)
	}
	next, err := engine.WeeklyAverages(time.Date(2026, 10, 26, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("next weekly averages: %v", err)
	}
	if next.TrackedDays != 0 {
		t.Fatalf("expected no tracked days in the following week, got %d", next.TrackedDays)
	}
}
