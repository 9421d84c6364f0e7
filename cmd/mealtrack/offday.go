package mealtrack

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

var offDayCmd = &cobra.Command{
	Use:   "offday",
	Short: "Mark days excluded from averages and streaks",
}

var (
	offDayReason string
	offDayNotes  string
	offDayFrom   string
	offDayTo     string
)

var offDayAddCmd = &cobra.Command{
	Use:   "add <date>",
	Short: "Mark a day as off (replaces an existing mark)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay("date", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if _, err := service.AddOffDay(sqldb, day, offDayReason, offDayNotes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as off day (%s)\n", day.Format(nutrition.DateLayout), offDayReason)
			return nil
		})
	},
}

var offDayRemoveCmd = &cobra.Command{
	Use:   "remove <date>",
	Short: "Unmark an off day",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay("date", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.RemoveOffDay(sqldb, day); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed off day %s\n", day.Format(nutrition.DateLayout))
			return nil
		})
	},
}

var offDayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List off days (default current month)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		now := time.Now()
		start, end := nutrition.MonthStart(now), nutrition.MonthEnd(now)
		if offDayFrom != "" {
			if start, err = parseDay("from", offDayFrom); err != nil {
				return err
			}
		}
		if offDayTo != "" {
			if end, err = parseDay("to", offDayTo); err != nil {
				return err
			}
		}
		if end.Before(start) {
			return fmt.Errorf("--to must not be before --from")
		}
		return withDB(func(sqldb *sql.DB) error {
			days, err := service.OffDaysInRange(sqldb, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tREASON\tNOTES")
			for _, d := range days {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.Date.String(), d.Reason, d.Notes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(offDayCmd)
	offDayCmd.AddCommand(offDayAddCmd, offDayRemoveCmd, offDayListCmd)

	offDayAddCmd.Flags().StringVar(&offDayReason, "reason", "other", "Reason: "+strings.Join(service.OffDayReasons(), "|"))
	offDayAddCmd.Flags().StringVar(&offDayNotes, "notes", "", "Notes")

	offDayListCmd.Flags().StringVar(&offDayFrom, "from", "", "First day (default start of month)")
	offDayListCmd.Flags().StringVar(&offDayTo, "to", "", "Last day (default end of month)")
}
