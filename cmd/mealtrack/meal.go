package mealtrack

import (
	"database/sql"
	"fmt"
		"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage multi-ingredient meals",
}

var (
	mealName        string
	mealType        string
	mealIngredients []string
	mealDate        string
	mealTime        string
	mealNotes       string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal built from several foods",
	Long:  "Each --ingredient is food_id:amount, where amount is grams or carries a unit (150g, 5oz, 0.2kg). Food nutrition is treated as per 100g and scaled by the amount given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ingredients, err := parseIngredients(mealIngredients)
		if err != nil {
			return err
		}
		at, err := parseDateTimeOrNow(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateMultiMeal(sqldb, service.CreateMultiMealInput{
				Name:        mealName,
				MealType:    mealType,
				Ingredients: ingredients,
				LoggedAt:    at,
				Notes:       mealNotes,
			})
			if err != nil {
				return err
			}
			meal, err := service.GetMultiMeal(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d (%s): %.0f kcal from %d ingredient(s)\n", id, meal.Name, meal.TotalCalories, len(meal.Ingredients))
			return nil
		})
	},
}

var mealShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a meal and its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			m, err := service.GetMultiMeal(sqldb, id)
			if err != nil {
				return err
			}
			printMultiMeal(cmd, *m)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal and its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMultiMeal(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", id)
			return nil
		})
	},
}

func parseIngredients(values []string) ([]service.IngredientInput, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one --ingredient food_id:amount is required")
	}
	out := make([]service.IngredientInput, 0, len(values))
	for _, v := range values {
		idPart, gramsPart, ok := strings.Cut(strings.TrimSpace(v), ":")
		if !ok {
			return nil, fmt.Errorf("invalid --ingredient %q (expected food_id:amount)", v)
		}
		id, err := parseInt64Arg("ingredient food id", idPart)
		if err != nil {
			return nil, err
		}
		grams, err := service.ParseAmountGrams(gramsPart)
		if err != nil {
			return nil, fmt.Errorf("invalid --ingredient %q: %w", v, err)
		}
		out = append(out, service.IngredientInput{FoodID: id, AmountGrams: grams})
	}
	return out, nil
}

func printMultiMeal(cmd *cobra.Command, m model.MultiMeal) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID: %d\n", m.ID)
	fmt.Fprintf(out, "Name: %s\n", m.Name)
	fmt.Fprintf(out, "Type: %s\n", m.MealType)
	fmt.Fprintf(out, "Logged: %s\n", m.LoggedAt.String())
	fmt.Fprintf(out, "Totals: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFats)
	if m.Notes != "" {
		fmt.Fprintf(out, "Notes: %s\n", m.Notes)
	}
	fmt.Fprintln(out, "FOOD_ID\tFOOD\tGRAMS\tKCAL\tP\tC\tF")
	for _, ing := range m.Ingredients {
		fmt.Fprintf(out, "%d\t%s\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f\n", ing.FoodID, ing.FoodName, ing.AmountGrams, ing.Calories, ing.Protein, ing.Carbs, ing.Fats)
	}
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealShowCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name (default \"Meal at <time>\")")
	mealAddCmd.Flags().StringVar(&mealType, "type", model.MealTypeLunch, "Meal type breakfast|lunch|dinner|snack")
	mealAddCmd.Flags().StringArrayVar(&mealIngredients, "ingredient", nil, "Ingredient as food_id:amount, e.g. 3:150g or 3:5oz (repeatable)")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD, today or yesterday (default now)")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time HH:MM")
	mealAddCmd.Flags().StringVar(&mealNotes, "notes", "", "Notes")
}
