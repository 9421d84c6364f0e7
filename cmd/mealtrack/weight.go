package mealtrack

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight (lb)",
}

var (
	weightDate   string
	weightNotes  string
	weightLimit  int
	weightAsJSON bool
)

var weightAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Log a weight; one entry per day, later entries replace earlier ones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil || w <= 0 {
			return fmt.Errorf("invalid weight %q (must be > 0)", args[0])
		}
		day, err := parseDay("date", weightDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if _, err := service.LogWeight(sqldb, w, day, weightNotes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.1f lb on %s\n", w, day.Format(nutrition.DateLayout))
			return nil
		})
	},
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent weights, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.WeightHistory(sqldb, weightLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tWEIGHT\tNOTES")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%s\n", e.RecordedAt, e.Weight, e.Notes)
			}
			return nil
		})
	},
}

var weightProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Current, starting and trend weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			p, err := engine.WeightProgress()
			if err != nil {
				return err
			}
			if weightAsJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			out := cmd.OutOrStdout()
			if p.CurrentWeight == nil {
				fmt.Fprintln(out, "No weight logged yet")
				return nil
			}
			fmt.Fprintf(out, "Current: %.1f lb\n", *p.CurrentWeight)
			fmt.Fprintf(out, "Starting: %.1f lb\n", *p.StartingWeight)
			fmt.Fprintf(out, "Change: %+.1f lb\n", *p.Change)
			if p.Trend != nil && p.TrendDirection != nil {
				fmt.Fprintf(out, "Trend: %+.1f lb (%s)\n", *p.Trend, *p.TrendDirection)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightHistoryCmd, weightProgressCmd)

	weightAddCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD, today or yesterday (default today)")
	weightAddCmd.Flags().StringVar(&weightNotes, "notes", "", "Notes")

	weightHistoryCmd.Flags().IntVar(&weightLimit, "limit", nutrition.WeightHistoryLimit, "Number of entries")
	weightProgressCmd.Flags().BoolVar(&weightAsJSON, "json", false, "Print JSON")
}
