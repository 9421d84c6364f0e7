package mealtrack

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var (
	foodName      string
	foodCalories  float64
	foodProtein   float64
	foodCarbs     float64
	foodFats      float64
	foodServing   string
	foodLimit     int
	foodQueryMax  int
	foodFavorites bool
	foodRecent    bool
	foodFile      string
	foodOverwrite bool
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food with per-serving nutrition",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddFood(sqldb, service.FoodInput{
				Name:        foodName,
				Calories:    foodCalories,
				Protein:     foodProtein,
				Carbs:       foodCarbs,
				Fats:        foodFats,
				ServingSize: foodServing,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %d\n", id)
			return nil
		})
	},
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods, favorites first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			var (
				foods []model.Food
				err   error
			)
			switch {
			case foodFavorites:
				foods, err = service.FavoriteFoods(sqldb)
			case foodRecent:
				foods, err = service.RecentFoods(sqldb, foodLimit)
			default:
				foods, err = service.ListFoods(sqldb, foodLimit)
			}
			if err != nil {
				return err
			}
			printFoods(cmd, foods)
			return nil
		})
	},
}

var foodSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.SearchFoods(sqldb, args[0], foodQueryMax)
			if err != nil {
				return err
			}
			printFoods(cmd, foods)
			return nil
		})
	},
}

var foodUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update the given fields of a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		var in service.UpdateFoodInput
		flags := cmd.Flags()
		if flags.Changed("name") {
			in.Name = &foodName
		}
		if flags.Changed("calories") {
			in.Calories = &foodCalories
		}
		if flags.Changed("protein") {
			in.Protein = &foodProtein
		}
		if flags.Changed("carbs") {
			in.Carbs = &foodCarbs
		}
		if flags.Changed("fats") {
			in.Fats = &foodFats
		}
		if flags.Changed("serving") {
			in.ServingSize = &foodServing
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateFood(sqldb, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food %d\n", id)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food and everything logged from it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFood(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %d\n", id)
			return nil
		})
	},
}

var foodFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a food's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			fav, err := service.ToggleFavorite(sqldb, id)
			if err != nil {
				return err
			}
			state := "no longer a favorite"
			if fav {
				state = "marked as favorite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Food %d %s\n", id, state)
			return nil
		})
	},
}

var foodImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk import foods from a JSON file",
	Long:  "Reads either a JSON array of foods or an object with a \"foods\" array. Values are per 100g unless serving_size says otherwise.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(foodFile) == "" {
			return fmt.Errorf("--file is required")
		}
		foods, err := readFoodFile(foodFile)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			res, err := service.ImportFoodsBulk(sqldb, foods, !foodOverwrite)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported foods: added=%d updated=%d skipped=%d\n", res.Added, res.Updated, res.Skipped)
			return nil
		})
	},
}

func readFoodFile(path string) ([]service.FoodInput, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read food file: %w", err)
	}
	var foods []service.FoodInput
	if err := json.Unmarshal(b, &foods); err == nil {
		return foods, nil
	}
	var wrapped struct {
		Foods []service.FoodInput `json:"foods"`
	}
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("parse food file: %w", err)
	}
	if len(wrapped.Foods) == 0 {
		return nil, fmt.Errorf("food file %s has no foods", path)
	}
	return wrapped.Foods, nil
}

func printFoods(cmd *cobra.Command, foods []model.Food) {
	fmt.Fprintln(cmd.OutOrStdout(), "ID\tFAV\tNAME\tKCAL\tP\tC\tF\tSERVING")
	for _, f := range foods {
		fav := ""
		if f.IsFavorite {
			fav = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n", f.ID, fav, f.Name, f.Calories, f.Protein, f.Carbs, f.Fats, f.ServingSize)
	}
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodSearchCmd, foodUpdateCmd, foodDeleteCmd, foodFavoriteCmd, foodImportCmd)

	for _, c := range []*cobra.Command{foodAddCmd, foodUpdateCmd} {
		c.Flags().StringVar(&foodName, "name", "", "Food name")
		c.Flags().Float64Var(&foodCalories, "calories", 0, "Calories per serving")
		c.Flags().Float64Var(&foodProtein, "protein", 0, "Protein grams per serving")
		c.Flags().Float64Var(&foodCarbs, "carbs", 0, "Carbs grams per serving")
		c.Flags().Float64Var(&foodFats, "fats", 0, "Fat grams per serving")
		c.Flags().StringVar(&foodServing, "serving", "", "Serving size label (default \"1 serving\")")
	}
	_ = foodAddCmd.MarkFlagRequired("name")
	_ = foodAddCmd.MarkFlagRequired("calories")

	foodListCmd.Flags().IntVar(&foodLimit, "limit", 0, "Maximum rows (default 100, or 10 with --recent)")
	foodListCmd.Flags().BoolVar(&foodFavorites, "favorites", false, "Only favorites")
	foodListCmd.Flags().BoolVar(&foodRecent, "recent", false, "Most recently logged foods")
	foodSearchCmd.Flags().IntVar(&foodQueryMax, "limit", 20, "Maximum rows")

	foodImportCmd.Flags().StringVar(&foodFile, "file", "", "JSON file to import")
	foodImportCmd.Flags().BoolVar(&foodOverwrite, "overwrite", false, "Overwrite nutrition of foods that already exist")
}
