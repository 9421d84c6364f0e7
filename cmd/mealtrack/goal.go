package mealtrack

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the fitness goal (bulking, cutting, maintenance)",
}

var goalRecommendBase int

var goalCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			info, err := engine.GoalInfo("")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s (%s)\n%s\n", info.Name, info.ID, info.Description)
			return nil
		})
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set <bulking|cutting|maintenance>",
	Short: "Set the current goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			ok, err := engine.SetGoal(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unknown goal %q (use %s)", args[0], strings.Join(goalIDs(), "|"))
			}
			info, err := engine.GoalInfo(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal set to %s\n", info.Name)
			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tKCAL_MOD\tPROTEIN_G_PER_LB\tDESCRIPTION")
		for _, g := range nutrition.Goals() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%+d\t%.1f\t%s\n", g.ID, g.Name, g.CalorieModifier, g.ProteinPerLb, g.Description)
		}
		return nil
	},
}

var goalRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommended calories (and protein, if a weight is logged) for the current goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		base := goalRecommendBase
		if !cmd.Flags().Changed("base") {
			base = cfg.BaseMaintenance
		}
		if base <= 0 {
			return fmt.Errorf("--base must be > 0")
		}
		return withEngine(func(sqldb *sql.DB, engine *nutrition.Engine) error {
			calories, err := engine.RecommendedCalories(base)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d kcal (base %d)\n", calories, base)

			latest, err := service.LatestWeight(sqldb)
			if errors.Is(err, service.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), "Protein: log a weight to get a recommendation")
				return nil
			}
			if err != nil {
				return err
			}
			protein, err := engine.RecommendedProtein(latest.Weight)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Protein: %.0fg (at %.1f lb)\n", protein, latest.Weight)
			return nil
		})
	},
}

func goalIDs() []string {
	var ids []string
	for _, g := range nutrition.Goals() {
		ids = append(ids, string(g.ID))
	}
	return ids
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show or change daily calorie and macro targets",
}

var (
	targetCalories int
	targetProtein  int
	targetCarbs    int
	targetFats     int
)

var targetsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show daily targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			t, err := engine.DailyTargets()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\nProtein: %dg\nCarbs: %dg\nFats: %dg\n", t.Calories, t.Protein, t.Carbs, t.Fats)
			return nil
		})
	},
}

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more daily targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		var u nutrition.TargetsUpdate
		flags := cmd.Flags()
		if flags.Changed("calories") {
			u.Calories = &targetCalories
		}
		if flags.Changed("protein") {
			u.Protein = &targetProtein
		}
		if flags.Changed("carbs") {
			u.Carbs = &targetCarbs
		}
		if flags.Changed("fats") {
			u.Fats = &targetFats
		}
		if u.Empty() {
			return fmt.Errorf("set at least one flag")
		}
		return withEngine(func(_ *sql.DB, engine *nutrition.Engine) error {
			if err := engine.SetDailyTargets(u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated daily targets")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd, targetsCmd)
	goalCmd.AddCommand(goalCurrentCmd, goalSetCmd, goalListCmd, goalRecommendCmd)
	targetsCmd.AddCommand(targetsGetCmd, targetsSetCmd)

	goalRecommendCmd.Flags().IntVar(&goalRecommendBase, "base", nutrition.DefaultBaseMaintenance, "Maintenance calories (default MEALTRACK_BASE_MAINTENANCE)")

	targetsSetCmd.Flags().IntVar(&targetCalories, "calories", 0, "Daily calorie target")
	targetsSetCmd.Flags().IntVar(&targetProtein, "protein", 0, "Daily protein grams")
	targetsSetCmd.Flags().IntVar(&targetCarbs, "carbs", 0, "Daily carbs grams")
	targetsSetCmd.Flags().IntVar(&targetFats, "fats", 0, "Daily fat grams")
}
