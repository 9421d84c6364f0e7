package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

func TestLogMealAndListByDate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	food := mustAddFood(t, db, "Pasta", 500, 20, 80, 10)
	late := time.Date(2026, 10, 21, 23, 30, 0, 0, time.Local)
	id, err := service.LogMeal(db, service.LogMealInput{FoodID: food, Portions: 2, MealType: "Dinner", LoggedAt: late, Notes: "big bowl"})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: food, MealType: "lunch", LoggedAt: late.AddDate(0, 0, 1).Add(-23 * time.Hour)}); err != nil {
		t.Fatalf("log second meal: %v", err)
	}

	meals, err := service.MealsForDate(db, late)
	if err != nil {
		t.Fatalf("meals for date: %v", err)
	}
	if len(meals) != 1 {
		t.Fatalf("expected 1 meal on 2026-10-21, got %d", len(meals))
	}
	m := meals[0]
	if m.ID != id || m.Portions != 2 || m.MealType != model.MealTypeDinner || m.Name != "Pasta" || m.Notes != "big bowl" {
		t.Fatalf("unexpected meal: %+v", m)
	}
	if key, ok := nutrition.DateKey(m.LoggedAt); !ok || key != "2026-10-21" {
		t.Fatalf("expected logged_at keyed on 2026-10-21, got %q (%v)", key, ok)
	}

	ranged, err := service.MealsForRange(db, late, late.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("meals for range: %v", err)
	}
	if len(ranged) != 2 || ranged[1].Portions != 1 {
		t.Fatalf("expected 2 meals with default portion, got %+v", ranged)
	}

	if err := service.DeleteMealLog(db, id); err != nil {
		t.Fatalf("delete meal log: %v", err)
	}
	if err := service.DeleteMealLog(db, id); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLogMealValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	food := mustAddFood(t, db, "Toast", 80, 3, 15, 1)
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: food, MealType: "brunch"}); err == nil {
		t.Fatalf("expected unknown meal type to fail")
	}
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: food, MealType: "snack", Portions: -1}); err == nil {
		t.Fatalf("expected negative portions to fail")
	}
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: 404, MealType: "snack"}); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected missing food to be not found, got %v", err)
	}
}

func TestDeleteFoodCascadesLogs(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	food := mustAddFood(t, db, "Soda", 150, 0, 39, 0)
	day := time.Date(2026, 10, 21, 12, 0, 0, 0, time.Local)
	if _, err := service.LogMeal(db, service.LogMealInput{FoodID: food, MealType: "snack", LoggedAt: day}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if err := service.DeleteFood(db, food); err != nil {
		t.Fatalf("delete food: %v", err)
	}
	meals, err := service.MealsForDate(db, day)
	if err != nil {
		t.Fatalf("meals for date: %v", err)
	}
	if len(meals) != 0 {
		t.Fatalf("expected logs removed with food, got %d", len(meals))
	}
}
