package mealtrack

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake and progress toward targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay("date", todayDate)
		if err != nil {
			return err
		}
		return withEngine(func(sqldb *sql.DB, engine *nutrition.Engine) error {
			progress, err := engine.DailyProgress(day)
			if err != nil {
				return err
			}
			multis, err := service.MultiMealsForDate(sqldb, day)
			if err != nil {
				return err
			}
			nutrition.FoldMultiMeals(progress, multis)
			byType, err := engine.MealsByType(day)
			if err != nil {
				return err
			}
			offDay, err := service.GetOffDay(sqldb, day)
			if err != nil && !errors.Is(err, service.ErrNotFound) {
				return err
			}

			if todayJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"progress":    progress,
					"meals":       byType,
					"multi_meals": multis,
					"off_day":     offDay,
				})
			}
			printDailyProgress(cmd, progress, offDay)
			printMealsByType(cmd, byType, multis)
			return nil
		})
	},
}

func printDailyProgress(cmd *cobra.Command, p *nutrition.DailyProgress, offDay *model.OffDay) {
	out := cmd.OutOrStdout()
	header := "Date: " + p.Date
	if offDay != nil {
		header += fmt.Sprintf(" (off day: %s)", offDay.Reason)
	}
	fmt.Fprintln(out, header)
	rows := []struct {
		label  string
		unit   string
		total  float64
		target int
		pct    float64
		remain float64
	}{
		{"Calories", "kcal", p.Totals.Calories, p.Targets.Calories, p.Percentage.Calories, p.Remaining.Calories},
		{"Protein", "g", p.Totals.Protein, p.Targets.Protein, p.Percentage.Protein, p.Remaining.Protein},
		{"Carbs", "g", p.Totals.Carbs, p.Targets.Carbs, p.Percentage.Carbs, p.Remaining.Carbs},
		{"Fats", "g", p.Totals.Fats, p.Targets.Fats, p.Percentage.Fats, p.Remaining.Fats},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "%-9s %s %6.0f / %d %s (%3.0f%%) remaining %.0f\n", r.label+":", progressBar(r.pct), r.total, r.target, r.unit, r.pct, r.remain)
	}
	fmt.Fprintf(out, "Deficit/Surplus: %+.0f kcal\n", p.DeficitSurplus)
	fmt.Fprintf(out, "Macro ratio (P/C/F): %s\n", nutrition.MacroRatio(p.Totals.Protein, p.Totals.Carbs, p.Totals.Fats))
	fmt.Fprintf(out, "Meals logged: %d\n", p.Totals.MealCount)
}

func printMealsByType(cmd *cobra.Command, byType map[string][]model.MealLog, multis []model.MultiMeal) {
	out := cmd.OutOrStdout()
	for _, mt := range model.MealTypes {
		var lines []string
		for _, m := range byType[mt] {
			lines = append(lines, fmt.Sprintf("  %s x%.2f (%.0f kcal)", m.Name, m.Portions, m.Calories*m.Portions))
		}
		for _, m := range multis {
			if m.MealType == mt {
				lines = append(lines, fmt.Sprintf("  %s [%d ingredients] (%.0f kcal)", m.Name, len(m.Ingredients), m.TotalCalories))
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(out, "%s:\n", mt)
		for _, l := range lines {
			fmt.Fprintln(out, l)
		}
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD, today or yesterday (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print JSON")
}
