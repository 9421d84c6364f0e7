package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/saadjs/mealtrack/internal/model"
)

const (
	defaultServingSize     = "1 serving"
	defaultBulkServingSize = "100g"
	defaultFoodListLimit   = 100
	defaultFoodSearchLimit = 20
)

type FoodInput struct {
	Name        string  `json:"name"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
	ServingSize string  `json:"serving_size"`
}

// UpdateFoodInput changes only the non-nil fields.
type UpdateFoodInput struct {
	Name        *string  `json:"name"`
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fats        *float64 `json:"fats"`
	ServingSize *string  `json:"serving_size"`
}

type ImportFoodsResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Updated int `json:"updated"`
}

func (in FoodInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("food name is required")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{{"calories", in.Calories}, {"protein", in.Protein}, {"carbs", in.Carbs}, {"fats", in.Fats}} {
		if err := validateNonNegativeFloat(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func AddFood(db *sql.DB, in FoodInput) (int64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	serving := strings.TrimSpace(in.ServingSize)
	if serving == "" {
		serving = defaultServingSize
	}
	res, err := db.Exec(`
INSERT INTO foods(name, calories, protein, carbs, fats, serving_size)
VALUES(?, ?, ?, ?, ?, ?)
`, strings.TrimSpace(in.Name), in.Calories, in.Protein, in.Carbs, in.Fats, serving)
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read food id: %w", err)
	}
	return id, nil
}

func UpdateFood(db *sql.DB, id int64, in UpdateFoodInput) error {
	var sets []string
	var args []any
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return invalidf("food name is required")
		}
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	for _, f := range []struct {
		col   string
		value *float64
	}{{"calories", in.Calories}, {"protein", in.Protein}, {"carbs", in.Carbs}, {"fats", in.Fats}} {
		if f.value == nil {
			continue
		}
		if err := validateNonNegativeFloat(f.col, *f.value); err != nil {
			return err
		}
		sets = append(sets, f.col+" = ?")
		args = append(args, *f.value)
	}
	if in.ServingSize != nil {
		sets = append(sets, "serving_size = ?")
		args = append(args, strings.TrimSpace(*in.ServingSize))
	}
	if len(sets) == 0 {
		return invalidf("no food fields to update")
	}

	args = append(args, id)
	res, err := db.Exec(`UPDATE foods SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update food %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("food %d", id))
}

// DeleteFood also removes the food's meal logs and ingredient rows.
func DeleteFood(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("food %d", id))
}

const foodColumns = `id, name, calories, protein, carbs, fats, serving_size, is_favorite, created_at`

func scanFood(row interface{ Scan(...any) error }) (model.Food, error) {
	var f model.Food
	var fav int
	var created any
	if err := row.Scan(&f.ID, &f.Name, &f.Calories, &f.Protein, &f.Carbs, &f.Fats, &f.ServingSize, &fav, &created); err != nil {
		return model.Food{}, err
	}
	f.IsFavorite = fav != 0
	f.CreatedAt = timeFromDB(created)
	return f, nil
}

func GetFood(db *sql.DB, id int64) (*model.Food, error) {
	f, err := scanFood(db.QueryRow(`SELECT `+foodColumns+` FROM foods WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("food %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get food %d: %w", id, err)
	}
	return &f, nil
}

func queryFoods(db *sql.DB, what, query string, args ...any) ([]model.Food, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	out := make([]model.Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return out, nil
}

// SearchFoods matches name substrings, favorites first.
func SearchFoods(db *sql.DB, query string, limit int) ([]model.Food, error) {
	if limit <= 0 {
		limit = defaultFoodSearchLimit
	}
	return queryFoods(db, "search foods", `
SELECT `+foodColumns+`
FROM foods
WHERE name LIKE ?
ORDER BY is_favorite DESC, name ASC
LIMIT ?`, "%"+strings.TrimSpace(query)+"%", limit)
}

func ListFoods(db *sql.DB, limit int) ([]model.Food, error) {
	if limit <= 0 {
		limit = defaultFoodListLimit
	}
	return queryFoods(db, "list foods", `
SELECT `+foodColumns+`
FROM foods
ORDER BY is_favorite DESC, name ASC
LIMIT ?`, limit)
}

func FavoriteFoods(db *sql.DB) ([]model.Food, error) {
	return queryFoods(db, "list favorite foods", `
SELECT `+foodColumns+`
FROM foods
WHERE is_favorite = 1
ORDER BY name ASC`)
}

// ToggleFavorite flips the flag and returns the new value.
func ToggleFavorite(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`UPDATE foods SET is_favorite = NOT is_favorite WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle favorite %d: %w", id, err)
	}
	if err := requireAffected(res, fmt.Sprintf("food %d", id)); err != nil {
		return false, err
	}
	var fav int
	if err := db.QueryRow(`SELECT is_favorite FROM foods WHERE id = ?`, id).Scan(&fav); err != nil {
		return false, fmt.Errorf("read favorite %d: %w", id, err)
	}
	return fav != 0, nil
}

// RecentFoods lists distinct foods by their latest log time.
func RecentFoods(db *sql.DB, limit int) ([]model.Food, error) {
	if limit <= 0 {
		limit = 10
	}
	return queryFoods(db, "list recent foods", `
SELECT f.id, f.name, f.calories, f.protein, f.carbs, f.fats, f.serving_size, f.is_favorite, f.created_at
FROM foods f
JOIN meal_logs ml ON ml.food_id = f.id
GROUP BY f.id
ORDER BY MAX(ml.logged_at) DESC
LIMIT ?`, limit)
}

// ImportFoodsBulk inserts foods by name. Existing names are skipped, or
// overwritten when skipDuplicates is false. Serving size defaults to 100g.
func ImportFoodsBulk(db *sql.DB, foods []FoodInput, skipDuplicates bool) (*ImportFoodsResult, error) {
	for i, f := range foods {
		if err := f.validate(); err != nil {
			return nil, fmt.Errorf("food %d: %w", i+1, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin food import: %w", err)
	}
	defer tx.Rollback()

	out := &ImportFoodsResult{}
	for _, f := range foods {
		name := strings.TrimSpace(f.Name)
		serving := strings.TrimSpace(f.ServingSize)
		if serving == "" {
			serving = defaultBulkServingSize
		}

		var existing int64
		err := tx.QueryRow(`SELECT id FROM foods WHERE name = ?`, name).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.Exec(`
INSERT INTO foods(name, calories, protein, carbs, fats, serving_size)
VALUES(?, ?, ?, ?, ?, ?)`, name, f.Calories, f.Protein, f.Carbs, f.Fats, serving); err != nil {
				return nil, fmt.Errorf("import food %q: %w", name, err)
			}
			out.Added++
		case err != nil:
			return nil, fmt.Errorf("lookup food %q: %w", name, err)
		case skipDuplicates:
			out.Skipped++
		default:
			if _, err := tx.Exec(`
UPDATE foods SET calories = ?, protein = ?, carbs = ?, fats = ?, serving_size = ?
WHERE id = ?`, f.Calories, f.Protein, f.Carbs, f.Fats, serving, existing); err != nil {
				return nil, fmt.Errorf("update food %q: %w", name, err)
			}
			out.Updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit food import: %w", err)
	}
	return out, nil
}
