package mealtrack

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Orphan meal logs: %d\n", report.OrphanMealLogs)
			fmt.Fprintf(out, "Orphan meal ingredients: %d\n", report.OrphanIngredients)
			fmt.Fprintf(out, "Meals whose totals differ from ingredients: %d\n", report.DriftedMealTotals)
			fmt.Fprintf(out, "Undated records: %d\n", report.UndatedRecords)
			if doctorFix {
				fmt.Fprintf(out, "Removed rows: %d\n", report.Removed)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if !report.Clean() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove orphaned rows")
}
