package nutrition_test

import (
	"testing"

	"github.com/saadjs/mealtrack/internal/nutrition"
)

func TestSetGoalIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	e := newEngine(t, store, date(2026, 10, 21))

	ok, err := e.SetGoal("BULKING")
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if !ok {
		t.Fatalf("expected bulking to be accepted")
	}
	if store.settings[nutrition.SettingGoalType] != "bulking" {
		t.Fatalf("expected stored goal bulking, got %q", store.settings[nutrition.SettingGoalType])
	}

	cal, err := e.RecommendedCalories(2000)
	if err != nil {
		t.Fatalf("recommended calories: %v", err)
	}
	if cal != 2300 {
		t.Fatalf("expected 2300 calories, got %d", cal)
	}
	protein, err := e.RecommendedProtein(180)
	if err != nil {
		t.Fatalf("recommended protein: %v", err)
	}
	if protein != 180 {
		t.Fatalf("expected 180g protein, got %v", protein)
	}
}

func TestSetGoalRejectsUnknown(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	e := newEngine(t, store, date(2026, 10, 21))

	ok, err := e.SetGoal("keto")
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if ok {
		t.Fatalf("expected unknown goal to be rejected")
	}
	if store.settings[nutrition.SettingGoalType] != "maintenance" {
		t.Fatalf("expected goal unchanged, got %q", store.settings[nutrition.SettingGoalType])
	}
}

func TestCurrentGoalDefaults(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	delete(store.settings, nutrition.SettingGoalType)
	e := newEngine(t, store, date(2026, 10, 21))

	g, err := e.CurrentGoal()
	if err != nil {
		t.Fatalf("current goal: %v", err)
	}
	if g != nutrition.GoalMaintenance {
		t.Fatalf("expected maintenance, got %s", g)
	}

	store.settings[nutrition.SettingGoalType] = "shredding"
	if g, _ = e.CurrentGoal(); g != nutrition.GoalMaintenance {
		t.Fatalf("expected unknown stored goal to resolve to maintenance, got %s", g)
	}
}

func TestGoalInfo(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.settings[nutrition.SettingGoalType] = "cutting"
	e := newEngine(t, store, date(2026, 10, 21))

	info, err := e.GoalInfo("")
	if err != nil {
		t.Fatalf("goal info: %v", err)
	}
	if info.ID != nutrition.GoalCutting || info.CalorieModifier != -500 || info.ProteinPerLb != 1.2 {
		t.Fatalf("unexpected current goal info: %+v", info)
	}

	info, err = e.GoalInfo("nonsense")
	if err != nil {
		t.Fatalf("goal info: %v", err)
	}
	if info.ID != nutrition.GoalMaintenance {
		t.Fatalf("expected maintenance fallback, got %s", info.ID)
	}

	if got := nutrition.Goals(); len(got) != 3 || got[0].ID != nutrition.GoalBulking {
		t.Fatalf("unexpected catalog: %+v", got)
	}
}

func TestSetDailyTargetsLeavesUnsetFields(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	e := newEngine(t, store, date(2026, 10, 21))

	cal := 1800
	if err := e.SetDailyTargets(nutrition.TargetsUpdate{Calories: &cal}); err != nil {
		t.Fatalf("set targets: %v", err)
	}
	targets, err := e.DailyTargets()
	if err != nil {
		t.Fatalf("get targets: %v", err)
	}
	want := nutrition.Targets{Calories: 1800, Protein: 150, Carbs: 200, Fats: 65}
	if targets != want {
		t.Fatalf("expected %+v, got %+v", want, targets)
	}
}

func TestDailyTargetsDefaultsAndMalformed(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	delete(store.settings, nutrition.SettingFatsTarget)
	e := newEngine(t, store, date(2026, 10, 21))

	targets, err := e.DailyTargets()
	if err != nil {
		t.Fatalf("get targets: %v", err)
	}
	if targets.Fats != 65 {
		t.Fatalf("expected default fats 65, got %d", targets.Fats)
	}

	store.settings[nutrition.SettingProteinTarget] = "lots"
	if _, err := e.DailyTargets(); err == nil {
		t.Fatalf("expected malformed target to fail")
	}
}
