package mealtrack

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/nutrition"
)

var (
	periodDate string
	periodJSON bool

	breakdownWeeks  int
	breakdownMonths int
	breakdownJSON   bool
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Weekly averages over tracked days (Monday to Sunday)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPeriod(cmd, func(e *nutrition.Engine, day time.Time) (*nutrition.PeriodSummary, error) {
			return e.WeeklyAverages(day)
		})
	},
}

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Monthly averages over tracked days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPeriod(cmd, func(e *nutrition.Engine, day time.Time) (*nutrition.PeriodSummary, error) {
			return e.MonthlyAverages(day)
		})
	},
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Recent weeks and months side by side, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			weeks, err := engine.WeeklyBreakdown(breakdownWeeks)
			if err != nil {
				return err
			}
			months, err := engine.MonthlyBreakdown(breakdownMonths)
			if err != nil {
				return err
			}
			if breakdownJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"weeks": weeks, "months": months})
			}
			printSummaryTable(cmd, "WEEK", weeks)
			fmt.Fprintln(cmd.OutOrStdout())
			printSummaryTable(cmd, "MONTH", months)
			return nil
		})
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Consecutive tracked days ending today (off days don't break it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			streak, err := engine.Streak()
			if err != nil {
				return err
			}
			unit := "days"
			if streak == 1 {
				unit = "day"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d %s\n", streak, unit)
			return nil
		})
	},
}

func runPeriod(cmd *cobra.Command, summarize func(*nutrition.Engine, time.Time) (*nutrition.PeriodSummary, error)) error {
	day, err := parseDay("date", periodDate)
	if err != nil {
		return err
	}
	return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
		s, err := summarize(engine, day)
		if err != nil {
			return err
		}
		if periodJSON {
			return writeJSON(cmd.OutOrStdout(), s)
		}
		printSummary(cmd, s)
		return nil
	})
}

func printSummary(cmd *cobra.Command, s *nutrition.PeriodSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s to %s)\n", s.Label, s.PeriodStart, s.PeriodEnd)
	fmt.Fprintf(out, "Tracked days: %d | Off days: %d\n", s.TrackedDays, s.OffDayCount)
	fmt.Fprintf(out, "Average: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", s.Averages.Calories, s.Averages.Protein, s.Averages.Carbs, s.Averages.Fats)
	fmt.Fprintf(out, "Total: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", s.Totals.Calories, s.Totals.Protein, s.Totals.Carbs, s.Totals.Fats)
	fmt.Fprintf(out, "Macro ratio (P/C/F): %s\n", nutrition.MacroRatio(s.Totals.Protein, s.Totals.Carbs, s.Totals.Fats))
	if len(s.Days) == 0 {
		return
	}
	fmt.Fprintln(out, "DATE\tKCAL\tP\tC\tF\tENTRIES\tOFF")
	for _, d := range s.Days {
		off := ""
		if d.OffDay {
			off = "yes"
		}
		fmt.Fprintf(out, "%s\t%.0f\t%.1f\t%.1f\t%.1f\t%d\t%s\n", d.Date, d.Calories, d.Protein, d.Carbs, d.Fats, d.Entries, off)
	}
}

func printSummaryTable(cmd *cobra.Command, title string, summaries []*nutrition.PeriodSummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Join([]string{title, "DAYS", "OFF", "AVG_KCAL", "AVG_P", "AVG_C", "AVG_F"}, "\t"))
	for _, s := range summaries {
		fmt.Fprintf(out, "%s\t%d\t%d\t%.0f\t%.1f\t%.1f\t%.1f\n", s.Label, s.TrackedDays, s.OffDayCount, s.Averages.Calories, s.Averages.Protein, s.Averages.Carbs, s.Averages.Fats)
	}
}

func init() {
	rootCmd.AddCommand(weekCmd, monthCmd, breakdownCmd, streakCmd)

	for _, c := range []*cobra.Command{weekCmd, monthCmd} {
		c.Flags().StringVar(&periodDate, "date", "", "Any day inside the period (default today)")
		c.Flags().BoolVar(&periodJSON, "json", false, "Print JSON")
	}

	breakdownCmd.Flags().IntVar(&breakdownWeeks, "weeks", nutrition.DefaultBreakdownWeeks, "Number of weeks")
	breakdownCmd.Flags().IntVar(&breakdownMonths, "months", nutrition.DefaultBreakdownMonths, "Number of months")
	breakdownCmd.Flags().BoolVar(&breakdownJSON, "json", false, "Print JSON")
}
