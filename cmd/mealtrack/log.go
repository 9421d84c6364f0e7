package mealtrack

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/service"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log portions of catalog foods",
}

var (
	logFoodID   int64
	logPortions float64
	logMealType string
	logDate     string
	logTime     string
	logNotes    string
	logFrom     string
	logTo       string
)

var logAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a food",
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseDateTimeOrNow(logDate, logTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogMeal(sqldb, service.LogMealInput{
				FoodID:   logFoodID,
				Portions: logPortions,
				MealType: logMealType,
				LoggedAt: at,
				Notes:    logNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d\n", id)
			return nil
		})
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged foods for a day or range",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDay("from", logFrom)
		if err != nil {
			return err
		}
		end := start
		if logTo != "" {
			if end, err = parseDay("to", logTo); err != nil {
				return err
			}
		}
		if end.Before(start) {
			return fmt.Errorf("--to must not be before --from")
		}
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.MealsForRange(sqldb, start, end)
			if err != nil {
				return err
			}
			printMealLogs(cmd, meals)
			return nil
		})
	},
}

var logDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("log id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMealLog(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal log %d\n", id)
			return nil
		})
	},
}

func printMealLogs(cmd *cobra.Command, meals []model.MealLog) {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tLOGGED\tTYPE\tFOOD\tPORTIONS\tKCAL\tP\tC\tF")
	for _, m := range meals {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%.2f\t%.0f\t%.1f\t%.1f\t%.1f\n",
			m.ID, m.LoggedAt.String(), m.MealType, m.Name, m.Portions,
			m.Calories*m.Portions, m.Protein*m.Portions, m.Carbs*m.Portions, m.Fats*m.Portions)
	}
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logAddCmd, logListCmd, logDeleteCmd)

	logAddCmd.Flags().Int64Var(&logFoodID, "food", 0, "Food id")
	logAddCmd.Flags().Float64Var(&logPortions, "portions", 1, "Number of servings")
	logAddCmd.Flags().StringVar(&logMealType, "type", model.MealTypeSnack, "Meal type breakfast|lunch|dinner|snack")
	logAddCmd.Flags().StringVar(&logDate, "date", "", "Date YYYY-MM-DD, today or yesterday (default now)")
	logAddCmd.Flags().StringVar(&logTime, "time", "", "Time HH:MM")
	logAddCmd.Flags().StringVar(&logNotes, "notes", "", "Notes")
	_ = logAddCmd.MarkFlagRequired("food")

	logListCmd.Flags().StringVar(&logFrom, "from", "", "First day (default today)")
	logListCmd.Flags().StringVar(&logTo, "to", "", "Last day (default --from)")
}
