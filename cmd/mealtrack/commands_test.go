package mealtrack

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/saadjs/mealtrack/internal/nutrition"
)

// resetFlags puts every flag back to its default. Command flags are bound to
// package variables, so values from one Execute would otherwise leak into the
// next.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if s, ok := f.Value.(pflag.SliceValue); ok {
			_ = s.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(args ...string) (string, error) {
	resetFlags(rootCmd)
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(args...)
	if err != nil {
		t.Fatalf("mealtrack %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func expectContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("expected output to contain %q, got %q", want, out)
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestTrackingWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "mealtrack.db")

	out := execute(t, "--db", db, "food", "add", "--name", "Oats", "--calories", "150", "--protein", "5", "--carbs", "27", "--fats", "3")
	expectContains(t, out, "Added food 1")

	out = execute(t, "--db", db, "log", "add", "--food", "1", "--portions", "2", "--type", "breakfast", "--date", "2026-03-04", "--time", "08:00")
	expectContains(t, out, "Logged meal 1")

	out = execute(t, "--db", db, "meal", "add", "--name", "Bowl", "--ingredient", "1:200", "--date", "2026-03-04", "--time", "12:30")
	expectContains(t, out, "300 kcal from 1 ingredient(s)")

	out = execute(t, "--db", db, "today", "--date", "2026-03-04", "--json")
	var today struct {
		Progress nutrition.DailyProgress `json:"progress"`
	}
	if err := json.Unmarshal([]byte(out), &today); err != nil {
		t.Fatalf("decode today json: %v\n%s", err, out)
	}
	if !closeTo(today.Progress.Totals.Calories, 600) {
		t.Fatalf("expected 600 kcal, got %v", today.Progress.Totals.Calories)
	}
	if !closeTo(today.Progress.DeficitSurplus, -1400) {
		t.Fatalf("expected deficit -1400, got %v", today.Progress.DeficitSurplus)
	}

	out = execute(t, "--db", db, "today", "--date", "2026-03-04")
	expectContains(t, out, "breakfast:")
	expectContains(t, out, "Bowl [1 ingredients]")

	execute(t, "--db", db, "offday", "add", "2026-03-05", "--reason", "travel")
	out = execute(t, "--db", db, "offday", "list", "--from", "2026-03-01", "--to", "2026-03-31")
	expectContains(t, out, "2026-03-05\ttravel")

	out = execute(t, "--db", db, "week", "--date", "2026-03-04", "--json")
	var week nutrition.PeriodSummary
	if err := json.Unmarshal([]byte(out), &week); err != nil {
		t.Fatalf("decode week json: %v\n%s", err, out)
	}
	if week.PeriodStart != "2026-03-02" || week.PeriodEnd != "2026-03-08" {
		t.Fatalf("expected week 2026-03-02..2026-03-08, got %s..%s", week.PeriodStart, week.PeriodEnd)
	}
	if week.TrackedDays != 1 || week.OffDayCount != 1 {
		t.Fatalf("expected 1 tracked day and 1 off day, got %d and %d", week.TrackedDays, week.OffDayCount)
	}
	if !closeTo(week.Averages.Calories, 600) {
		t.Fatalf("expected weekly average 600, got %v", week.Averages.Calories)
	}

	out = execute(t, "--db", db, "log", "list", "--from", "2026-03-04")
	expectContains(t, out, "Oats")

	execute(t, "--db", db, "meal", "delete", "1")
	if _, err := run("--db", db, "meal", "show", "1"); err == nil {
		t.Fatalf("expected deleted meal lookup to fail")
	}
}

func TestStreakCountsToday(t *testing.T) {
	db := filepath.Join(t.TempDir(), "mealtrack.db")
	execute(t, "--db", db, "food", "add", "--name", "Apple", "--calories", "95")

	out := execute(t, "--db", db, "streak")
	expectContains(t, out, "Streak: 0 days")

	execute(t, "--db", db, "log", "add", "--food", "1")
	out = execute(t, "--db", db, "streak")
	expectContains(t, out, "Streak: 1 day\n")
}

func TestGoalAndTargetsCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "mealtrack.db")

	out := execute(t, "--db", db, "goal", "current")
	expectContains(t, out, "(maintenance)")

	out = execute(t, "--db", db, "goal", "set", "cutting")
	expectContains(t, out, "Goal set to Cutting")

	out = execute(t, "--db", db, "goal", "recommend", "--base", "2200")
	expectContains(t, out, "Calories: 1700 kcal")
	expectContains(t, out, "log a weight")

	execute(t, "--db", db, "weight", "add", "180")
	out = execute(t, "--db", db, "goal", "recommend", "--base", "2200")
	expectContains(t, out, "Protein: 216g")

	if _, err := run("--db", db, "goal", "set", "shredding"); err == nil {
		t.Fatalf("expected unknown goal to fail")
	}

	execute(t, "--db", db, "targets", "set", "--calories", "1800", "--protein", "160")
	out = execute(t, "--db", db, "targets", "get")
	expectContains(t, out, "Calories: 1800")
	expectContains(t, out, "Protein: 160g")

	if _, err := run("--db", db, "targets", "set"); err == nil {
		t.Fatalf("expected targets set without flags to fail")
	}
}

func TestWeightExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	snapshot := filepath.Join(dir, "export.json")

	execute(t, "--db", src, "food", "add", "--name", "Rice", "--calories", "200", "--carbs", "45")
	execute(t, "--db", src, "weight", "add", "180", "--date", "2026-03-01")
	execute(t, "--db", src, "weight", "add", "178.5", "--date", "2026-03-04")

	out := execute(t, "--db", src, "weight", "progress", "--json")
	var p nutrition.WeightProgress
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		t.Fatalf("decode weight progress: %v\n%s", err, out)
	}
	if p.CurrentWeight == nil || !closeTo(*p.CurrentWeight, 178.5) {
		t.Fatalf("expected current weight 178.5, got %v", p.CurrentWeight)
	}
	if p.Change == nil || !closeTo(*p.Change, -1.5) {
		t.Fatalf("expected change -1.5, got %v", p.Change)
	}

	out = execute(t, "--db", src, "export", "--out", snapshot)
	expectContains(t, out, "Exported data to")

	out = execute(t, "--db", dst, "import", "--file", snapshot)
	expectContains(t, out, "foods=1")
	expectContains(t, out, "weights=2")

	out = execute(t, "--db", dst, "weight", "history")
	expectContains(t, out, "178.5")
	out = execute(t, "--db", dst, "food", "list")
	expectContains(t, out, "Rice")

	if _, err := run("--db", dst, "import"); err == nil {
		t.Fatalf("expected import without --file to fail")
	}
}

func TestParseIngredientsConvertsUnits(t *testing.T) {
	got, err := parseIngredients([]string{"3:150", "4:2oz", "5:0.25kg"})
	if err != nil {
		t.Fatalf("parse ingredients: %v", err)
	}
	want := []float64{150, 56.7, 250}
	for i, ing := range got {
		if !closeTo(ing.AmountGrams, want[i]) {
			t.Fatalf("ingredient %d: expected %.2f g, got %.4f", i, want[i], ing.AmountGrams)
		}
	}
	if got[1].FoodID != 4 {
		t.Fatalf("expected food id 4, got %d", got[1].FoodID)
	}
	for _, bad := range []string{"3", "x:100", "3:1cup", "3:0"} {
		if _, err := parseIngredients([]string{bad}); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
