package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

type IngredientInput struct {
	FoodID      int64   `json:"food_id"`
	AmountGrams float64 `json:"amount_grams"`
}

type CreateMultiMealInput struct {
	Name        string
	MealType    string
	Ingredients []IngredientInput
	LoggedAt    time.Time
	Notes       string
}

// CreateMultiMeal stores a meal built from several foods. Food values are
// taken as per 100g and scaled by each ingredient's grams. Ingredients whose
// food does not exist are dropped.
func CreateMultiMeal(db *sql.DB, in CreateMultiMealInput) (int64, error) {
	mealType, err := validateMealType(in.MealType)
	if err != nil {
		return 0, err
	}
	if len(in.Ingredients) == 0 {
		return 0, invalidf("at least one ingredient is required")
	}
	for _, ing := range in.Ingredients {
		if ing.AmountGrams <= 0 {
			return 0, invalidf("ingredient amount must be > 0 grams")
		}
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = "Meal at " + in.LoggedAt.Format("03:04 PM")
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin multi meal: %w", err)
	}
	defer tx.Rollback()

	var totals model.MealIngredient
	scaled := make([]model.MealIngredient, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		var per model.MealIngredient
		err := tx.QueryRow(`SELECT calories, protein, carbs, fats FROM foods WHERE id = ?`, ing.FoodID).
			Scan(&per.Calories, &per.Protein, &per.Carbs, &per.Fats)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("lookup ingredient food %d: %w", ing.FoodID, err)
		}
		m := ing.AmountGrams / 100
		item := model.MealIngredient{
			FoodID:      ing.FoodID,
			AmountGrams: ing.AmountGrams,
			Calories:    per.Calories * m,
			Protein:     per.Protein * m,
			Carbs:       per.Carbs * m,
			Fats:        per.Fats * m,
		}
		totals.Calories += item.Calories
		totals.Protein += item.Protein
		totals.Carbs += item.Carbs
		totals.Fats += item.Fats
		scaled = append(scaled, item)
	}

	res, err := tx.Exec(`
INSERT INTO meals(name, meal_type, logged_at, total_calories, total_protein, total_carbs, total_fats, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, name, mealType, formatDateTime(in.LoggedAt), totals.Calories, totals.Protein, totals.Carbs, totals.Fats, nullIfEmpty(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert multi meal: %w", err)
	}
	mealID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read multi meal id: %w", err)
	}

	for _, item := range scaled {
		if _, err := tx.Exec(`
INSERT INTO meal_ingredients(meal_id, food_id, amount_grams, calories, protein, carbs, fats)
VALUES(?, ?, ?, ?, ?, ?, ?)
`, mealID, item.FoodID, item.AmountGrams, item.Calories, item.Protein, item.Carbs, item.Fats); err != nil {
			return 0, fmt.Errorf("insert meal ingredient: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit multi meal: %w", err)
	}
	return mealID, nil
}

const multiMealColumns = `id, IFNULL(name, ''), meal_type, logged_at, total_calories, total_protein, total_carbs, total_fats, IFNULL(notes, '')`

func scanMultiMeal(row interface{ Scan(...any) error }) (model.MultiMeal, error) {
	var m model.MultiMeal
	var loggedAt any
	if err := row.Scan(&m.ID, &m.Name, &m.MealType, &loggedAt, &m.TotalCalories, &m.TotalProtein, &m.TotalCarbs, &m.TotalFats, &m.Notes); err != nil {
		return model.MultiMeal{}, err
	}
	m.LoggedAt = model.TimestampFromDB(loggedAt)
	return m, nil
}

func GetMultiMeal(db *sql.DB, id int64) (*model.MultiMeal, error) {
	m, err := scanMultiMeal(db.QueryRow(`SELECT `+multiMealColumns+` FROM meals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("meal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get meal %d: %w", id, err)
	}
	if m.Ingredients, err = mealIngredients(db, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMultiMeal removes the meal; ingredients cascade.
func DeleteMultiMeal(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("meal %d", id))
}

func MultiMealsForDate(db *sql.DB, day time.Time) ([]model.MultiMeal, error) {
	return MultiMealsForRange(db, day, day)
}

func MultiMealsForRange(db *sql.DB, start, end time.Time) ([]model.MultiMeal, error) {
	rows, err := db.Query(`
SELECT `+multiMealColumns+`
FROM meals
WHERE substr(logged_at, 1, 10) BETWEEN ? AND ?
ORDER BY logged_at ASC, id ASC
`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	out := make([]model.MultiMeal, 0)
	for rows.Next() {
		m, err := scanMultiMeal(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	_ = rows.Close()

	// One connection: the meal cursor must be closed before nested queries.
	for i := range out {
		if out[i].Ingredients, err = mealIngredients(db, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func mealIngredients(db *sql.DB, mealID int64) ([]model.MealIngredient, error) {
	rows, err := db.Query(`
SELECT mi.id, mi.meal_id, mi.food_id, f.name, mi.amount_grams, mi.calories, mi.protein, mi.carbs, mi.fats
FROM meal_ingredients mi
JOIN foods f ON f.id = mi.food_id
WHERE mi.meal_id = ?
ORDER BY mi.id ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list meal ingredients: %w", err)
	}
	defer rows.Close()

	out := make([]model.MealIngredient, 0)
	for rows.Next() {
		var ing model.MealIngredient
		if err := rows.Scan(&ing.ID, &ing.MealID, &ing.FoodID, &ing.FoodName, &ing.AmountGrams, &ing.Calories, &ing.Protein, &ing.Carbs, &ing.Fats); err != nil {
			return nil, fmt.Errorf("scan meal ingredient: %w", err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal ingredients: %w", err)
	}
	return out, nil
}
