package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadjs/mealtrack/internal/model"
)

type ExportMealLog struct {
	ID       int64   `json:"id"`
	FoodID   int64   `json:"food_id"`
	Portions float64 `json:"portions"`
	MealType string  `json:"meal_type"`
	LoggedAt string  `json:"logged_at"`
	Notes    string  `json:"notes,omitempty"`
}

type ExportOffDay struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
	Notes  string `json:"notes,omitempty"`
}

type ExportData struct {
	SnapshotID    string              `json:"snapshot_id"`
	ExportedAt    string              `json:"exported_at"`
	Foods         []model.Food        `json:"foods"`
	MealLogs      []ExportMealLog     `json:"meal_logs"`
	Meals         []model.MultiMeal   `json:"meals"`
	Settings      map[string]string   `json:"settings"`
	OffDays       []ExportOffDay      `json:"off_days"`
	WeightHistory []model.WeightEntry `json:"weight_history"`
}

type ImportReport struct {
	Foods    int `json:"foods"`
	MealLogs int `json:"meal_logs"`
	Meals    int `json:"meals"`
	Settings int `json:"settings"`
	OffDays  int `json:"off_days"`
	Weights  int `json:"weight_entries"`
	Skipped  int `json:"skipped"`
}

// ExportDataSnapshot snapshots every table into one document.
func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	out := &ExportData{
		SnapshotID: uuid.NewString(),
		ExportedAt: time.Now().Format(time.RFC3339),
	}

	foods, err := queryFoods(db, "export foods", `SELECT `+foodColumns+` FROM foods ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	out.Foods = foods

	logRows, err := db.Query(`SELECT id, food_id, portions, meal_type, logged_at, IFNULL(notes, '') FROM meal_logs ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export meal logs: %w", err)
	}
	out.MealLogs = make([]ExportMealLog, 0)
	for logRows.Next() {
		var l ExportMealLog
		var loggedAt any
		if err := logRows.Scan(&l.ID, &l.FoodID, &l.Portions, &l.MealType, &loggedAt, &l.Notes); err != nil {
			_ = logRows.Close()
			return nil, fmt.Errorf("scan export meal log: %w", err)
		}
		l.LoggedAt = storedTimestamp(model.TimestampFromDB(loggedAt))
		out.MealLogs = append(out.MealLogs, l)
	}
	if err := logRows.Err(); err != nil {
		_ = logRows.Close()
		return nil, fmt.Errorf("iterate export meal logs: %w", err)
	}
	_ = logRows.Close()

	mealRows, err := db.Query(`SELECT ` + multiMealColumns + ` FROM meals ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export meals: %w", err)
	}
	out.Meals = make([]model.MultiMeal, 0)
	for mealRows.Next() {
		m, err := scanMultiMeal(mealRows)
		if err != nil {
			_ = mealRows.Close()
			return nil, fmt.Errorf("scan export meal: %w", err)
		}
		out.Meals = append(out.Meals, m)
	}
	if err := mealRows.Err(); err != nil {
		_ = mealRows.Close()
		return nil, fmt.Errorf("iterate export meals: %w", err)
	}
	_ = mealRows.Close()
	for i := range out.Meals {
		if out.Meals[i].Ingredients, err = mealIngredients(db, out.Meals[i].ID); err != nil {
			return nil, err
		}
	}

	if out.Settings, err = ListSettings(db); err != nil {
		return nil, err
	}

	offRows, err := db.Query(`SELECT date, reason, IFNULL(notes, '') FROM off_days ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("export off days: %w", err)
	}
	out.OffDays = make([]ExportOffDay, 0)
	for offRows.Next() {
		var o ExportOffDay
		var date any
		if err := offRows.Scan(&date, &o.Reason, &o.Notes); err != nil {
			_ = offRows.Close()
			return nil, fmt.Errorf("scan export off day: %w", err)
		}
		o.Date = dateString(date)
		out.OffDays = append(out.OffDays, o)
	}
	if err := offRows.Err(); err != nil {
		_ = offRows.Close()
		return nil, fmt.Errorf("iterate export off days: %w", err)
	}
	_ = offRows.Close()

	if out.WeightHistory, err = WeightHistory(db, -1); err != nil {
		return nil, err
	}
	return out, nil
}

// storedTimestamp renders a timestamp in the layout it is written with.
func storedTimestamp(ts model.Timestamp) string {
	switch ts.Kind {
	case model.TimestampDateTime:
		return formatDateTime(ts.Time)
	case model.TimestampDate:
		return formatDate(ts.Time)
	default:
		return normalizeTimestampText(ts.Text)
	}
}

// normalizeTimestampText rewrites an imported timestamp into the naive
// wall-clock form the tracker writes itself. An offset is dropped without
// converting, so the row stays on the calendar day it was logged on. Text
// that does not parse is kept as is.
func normalizeTimestampText(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, dateTimeLayout, "2006-01-02T15:04:05", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return formatDateTime(t)
		}
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return formatDate(t)
	}
	return raw
}

// ImportDataSnapshot loads a snapshot in one transaction. Without merge, foods,
// logs, meals, off days and weights are cleared first. With merge, foods
// are matched by name and rows whose id already exists are skipped.
// Settings, off days and weights are always upserted.
func ImportDataSnapshot(db *sql.DB, data *ExportData, merge bool) (*ImportReport, error) {
	if data == nil {
		return nil, invalidf("import data is required")
	}
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if !merge {
		for _, table := range []string{"meal_ingredients", "meals", "meal_logs", "foods", "off_days", "weight_history"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return nil, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	report := &ImportReport{}
	foodIDs := make(map[int64]int64, len(data.Foods))
	for _, f := range data.Foods {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			report.Skipped++
			continue
		}
		if merge {
			var existing int64
			err := tx.QueryRow(`SELECT id FROM foods WHERE name = ?`, name).Scan(&existing)
			if err == nil {
				foodIDs[f.ID] = existing
				report.Skipped++
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("lookup food %q: %w", name, err)
			}
		}
		serving := f.ServingSize
		if serving == "" {
			serving = defaultServingSize
		}
		var res sql.Result
		if merge {
			res, err = tx.Exec(`
INSERT INTO foods(name, calories, protein, carbs, fats, serving_size, is_favorite)
VALUES(?, ?, ?, ?, ?, ?, ?)`, name, f.Calories, f.Protein, f.Carbs, f.Fats, serving, f.IsFavorite)
		} else {
			res, err = tx.Exec(`
INSERT INTO foods(id, name, calories, protein, carbs, fats, serving_size, is_favorite)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)`, nullIfZero(f.ID), name, f.Calories, f.Protein, f.Carbs, f.Fats, serving, f.IsFavorite)
		}
		if err != nil {
			return nil, fmt.Errorf("import food %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read imported food id: %w", err)
		}
		foodIDs[f.ID] = id
		report.Foods++
	}

	for _, l := range data.MealLogs {
		foodID, ok := foodIDs[l.FoodID]
		loggedAt := normalizeTimestampText(l.LoggedAt)
		if !ok || loggedAt == "" {
			report.Skipped++
			continue
		}
		res, err := tx.Exec(`
INSERT OR IGNORE INTO meal_logs(id, food_id, portions, meal_type, logged_at, notes)
VALUES(?, ?, ?, ?, ?, ?)`, nullIfZero(l.ID), foodID, l.Portions, l.MealType, loggedAt, nullIfEmpty(l.Notes))
		if err != nil {
			return nil, fmt.Errorf("import meal log %d: %w", l.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			report.Skipped++
			continue
		}
		report.MealLogs++
	}

	for _, m := range data.Meals {
		loggedAt := storedTimestamp(m.LoggedAt)
		if loggedAt == "" {
			report.Skipped++
			continue
		}
		res, err := tx.Exec(`
INSERT OR IGNORE INTO meals(id, name, meal_type, logged_at, total_calories, total_protein, total_carbs, total_fats, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`, nullIfZero(m.ID), m.Name, m.MealType, loggedAt, m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFats, nullIfEmpty(m.Notes))
		if err != nil {
			return nil, fmt.Errorf("import meal %d: %w", m.ID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			report.Skipped++
			continue
		}
		mealID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("read imported meal id: %w", err)
		}
		for _, ing := range m.Ingredients {
			foodID, ok := foodIDs[ing.FoodID]
			if !ok {
				continue
			}
			if _, err := tx.Exec(`
INSERT INTO meal_ingredients(meal_id, food_id, amount_grams, calories, protein, carbs, fats)
VALUES(?, ?, ?, ?, ?, ?, ?)`, mealID, foodID, ing.AmountGrams, ing.Calories, ing.Protein, ing.Carbs, ing.Fats); err != nil {
				return nil, fmt.Errorf("import meal ingredient: %w", err)
			}
		}
		report.Meals++
	}

	for key, value := range data.Settings {
		if _, err := tx.Exec(`
INSERT INTO settings(key, value) VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value); err != nil {
			return nil, fmt.Errorf("import setting %q: %w", key, err)
		}
		report.Settings++
	}

	for _, o := range data.OffDays {
		date := firstDate(o.Date)
		if date == "" || strings.TrimSpace(o.Reason) == "" {
			report.Skipped++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO off_days(date, reason, notes) VALUES(?, ?, ?)
ON CONFLICT(date) DO UPDATE SET reason=excluded.reason, notes=excluded.notes`, date, o.Reason, nullIfEmpty(o.Notes)); err != nil {
			return nil, fmt.Errorf("import off day %s: %w", date, err)
		}
		report.OffDays++
	}

	for _, w := range data.WeightHistory {
		date := firstDate(w.RecordedAt)
		if date == "" || w.Weight <= 0 {
			report.Skipped++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO weight_history(weight, recorded_at, notes) VALUES(?, ?, ?)
ON CONFLICT(recorded_at) DO UPDATE SET weight=excluded.weight, notes=excluded.notes`, w.Weight, date, nullIfEmpty(w.Notes)); err != nil {
			return nil, fmt.Errorf("import weight %s: %w", date, err)
		}
		report.Weights++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

// firstDate keeps the YYYY-MM-DD prefix of a date or date-time string.
func firstDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	if _, err := time.Parse(dateLayout, s); err != nil {
		return ""
	}
	return s
}

func nullIfZero(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
