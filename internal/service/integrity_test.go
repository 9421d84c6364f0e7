package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

func TestRunDoctorRemovesOrphans(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	rice := mustAddFood(t, db, "Rice", 130, 2.7, 28, 0.3)
	egg := mustAddFood(t, db, "Egg", 70, 6, 0.5, 5)
	at := time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)

	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: rice, Portions: 1, MealType: "lunch", LoggedAt: at}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	mealID, err := service.CreateMultiMeal(db, service.CreateMultiMealInput{
		MealType:    "dinner",
		LoggedAt:    at,
		Ingredients: []service.IngredientInput{{FoodID: rice, AmountGrams: 100}, {FoodID: egg, AmountGrams: 100}},
	})
	if err != nil {
		t.Fatalf("create multi meal: %v", err)
	}

	report, err := service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor on clean db: %v", err)
	}
	if !report.Clean() || report.DriftedMealTotals != 0 || report.UndatedRecords != 0 {
		t.Fatalf("expected clean report, got %+v", report)
	}

	// Rows written while foreign keys were off, e.g. by another tool.
	if _, err := db.Exec(`PRAGMA foreign_keys = OFF`); err != nil {
		t.Fatalf("disable foreign keys: %v", err)
	}
	if _, err := db.Exec(`DELETE FROM foods WHERE id = ?`, rice); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO meal_logs(food_id, portions, meal_type, logged_at) VALUES(?, 1, 'snack', 'sometime')`, egg); err != nil {
		t.Fatalf("insert undated log: %v", err)
	}

	report, err = service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.OrphanMealLogs != 1 || report.OrphanIngredients != 1 {
		t.Fatalf("expected one orphan log and ingredient, got %+v", report)
	}
	if report.UndatedRecords != 1 {
		t.Fatalf("expected one undated record, got %d", report.UndatedRecords)
	}

	report, err = service.RunDoctor(db, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if report.Removed != 2 {
		t.Fatalf("expected 2 removed rows, got %+v", report)
	}

	meal, err := service.GetMultiMeal(db, mealID)
	if err != nil {
		t.Fatalf("get multi meal: %v", err)
	}
	if meal.TotalCalories != 200 {
		t.Fatalf("expected stored meal total 200 to survive the fix, got %v", meal.TotalCalories)
	}

	report, err = service.RunDoctor(db, false)
	if err != nil {
		t.Fatalf("doctor recheck: %v", err)
	}
	if !report.Clean() || report.DriftedMealTotals != 1 {
		t.Fatalf("expected clean report with one drifted meal, got %+v", report)
	}
}

func TestRunDoctorKeepsMealTotalsAfterFoodDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	rice := mustAddFood(t, db, "Rice", 130, 2.7, 28, 0.3)
	at := time.Date(2026, 10, 21, 13, 0, 0, 0, time.Local)
	mealID, err := service.CreateMultiMeal(db, service.CreateMultiMealInput{
		MealType:    "lunch",
		LoggedAt:    at,
		Ingredients: []service.IngredientInput{{FoodID: rice, AmountGrams: 200}},
	})
	if err != nil {
		t.Fatalf("create multi meal: %v", err)
	}

	engine := nutrition.NewEngine(service.NewStore(db), nil, nil)
	before, err := engine.WeeklyAverages(at)
	if err != nil {
		t.Fatalf("weekly averages: %v", err)
	}
	if before.Totals.Calories != 260 {
		t.Fatalf("expected 260 kcal before delete, got %v", before.Totals.Calories)
	}

	if err := service.DeleteFood(db, rice); err != nil {
		t.Fatalf("delete food: %v", err)
	}

	report, err := service.RunDoctor(db, true)
	if err != nil {
		t.Fatalf("doctor fix: %v", err)
	}
	if !report.Clean() {
		t.Fatalf("expected cascaded delete to leave no orphans, got %+v", report)
	}
	if report.DriftedMealTotals != 1 {
		t.Fatalf("expected one drifted meal reported, got %d", report.DriftedMealTotals)
	}

	meal, err := service.GetMultiMeal(db, mealID)
	if err != nil {
		t.Fatalf("get multi meal: %v", err)
	}
	if meal.TotalCalories != 260 {
		t.Fatalf("expected meal total 260 after fix, got %v", meal.TotalCalories)
	}
	after, err := engine.WeeklyAverages(at)
	if err != nil {
		t.Fatalf("weekly averages after fix: %v", err)
	}
	if after.Totals.Calories != 260 {
		t.Fatalf("expected weekly total 260 after fix, got %v", after.Totals.Calories)
	}
}
