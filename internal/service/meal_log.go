package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

type LogMealInput struct {
	FoodID   int64
	Portions float64
	MealType string
	LoggedAt time.Time
	Notes    string
}

// LogMeal records a portion of a saved food. Portions default to 1 and the
// time defaults to now.
func LogMeal(db *sql.DB, in LogMealInput) (int64, error) {
	if in.Portions == 0 {
		in.Portions = 1
	}
	if in.Portions < 0 {
		return 0, invalidf("portions must be > 0")
	}
	mealType, err := validateMealType(in.MealType)
	if err != nil {
		return 0, err
	}
	if in.LoggedAt.IsZero() {
		in.LoggedAt = time.Now()
	}
	if _, err := GetFood(db, in.FoodID); err != nil {
		return 0, err
	}

	res, err := db.Exec(`
INSERT INTO meal_logs(food_id, portions, meal_type, logged_at, notes)
VALUES(?, ?, ?, ?, ?)
`, in.FoodID, in.Portions, mealType, formatDateTime(in.LoggedAt), nullIfEmpty(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert meal log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read meal log id: %w", err)
	}
	return id, nil
}

func DeleteMealLog(db *sql.DB, id int64) error {
	res, err := db.Exec(`DELETE FROM meal_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal log %d: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("meal log %d", id))
}

func MealsForDate(db *sql.DB, day time.Time) ([]model.MealLog, error) {
	return MealsForRange(db, day, day)
}

// MealsForRange returns single-food logs joined with their food, oldest
// first, for days start through end inclusive.
func MealsForRange(db *sql.DB, start, end time.Time) ([]model.MealLog, error) {
	rows, err := db.Query(`
SELECT ml.id, f.id, f.name, f.calories, f.protein, f.carbs, f.fats,
       ml.portions, ml.meal_type, ml.logged_at, IFNULL(ml.notes, '')
FROM meal_logs ml
JOIN foods f ON f.id = ml.food_id
WHERE substr(ml.logged_at, 1, 10) BETWEEN ? AND ?
ORDER BY ml.logged_at ASC, ml.id ASC
`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("list meal logs: %w", err)
	}
	defer rows.Close()

	out := make([]model.MealLog, 0)
	for rows.Next() {
		var m model.MealLog
		var loggedAt any
		if err := rows.Scan(&m.ID, &m.FoodID, &m.Name, &m.Calories, &m.Protein, &m.Carbs, &m.Fats,
			&m.Portions, &m.MealType, &loggedAt, &m.Notes); err != nil {
			return nil, fmt.Errorf("scan meal log: %w", err)
		}
		m.LoggedAt = model.TimestampFromDB(loggedAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal logs: %w", err)
	}
	return out, nil
}

func nullIfEmpty(s string) any {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return s
}
