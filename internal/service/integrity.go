package service

import (
	"database/sql"
	"fmt"
)

type DoctorReport struct {
	OrphanMealLogs    int `json:"orphan_meal_logs"`
	OrphanIngredients int `json:"orphan_ingredients"`
	DriftedMealTotals int `json:"drifted_meal_totals"`
	UndatedRecords    int `json:"undated_records"`
	Removed           int `json:"removed,omitempty"`
}

// Clean reports whether no orphans remain. Drifted totals and undated
// records are informational: a meal keeps the totals it was logged with
// after one of its foods is deleted, and aggregation skips undated rows.
func (r DoctorReport) Clean() bool {
	return r.OrphanMealLogs == 0 && r.OrphanIngredients == 0
}

const driftedTotalsQuery = `
SELECT COUNT(1) FROM meals m
LEFT JOIN (
  SELECT meal_id,
         SUM(calories) AS calories, SUM(protein) AS protein,
         SUM(carbs) AS carbs, SUM(fats) AS fats
  FROM meal_ingredients GROUP BY meal_id
) i ON i.meal_id = m.id
WHERE ABS(m.total_calories - IFNULL(i.calories, 0)) > 0.01
   OR ABS(m.total_protein - IFNULL(i.protein, 0)) > 0.01
   OR ABS(m.total_carbs - IFNULL(i.carbs, 0)) > 0.01
   OR ABS(m.total_fats - IFNULL(i.fats, 0)) > 0.01
`

// RunDoctor checks for rows that reference missing foods or meals, meals
// whose stored totals no longer match their ingredients, and records whose
// timestamp has no calendar date. With fix, orphans are deleted. Stored meal
// totals are never rewritten.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRow(`SELECT COUNT(1) FROM meal_logs ml LEFT JOIN foods f ON f.id = ml.food_id WHERE f.id IS NULL`).Scan(&report.OrphanMealLogs); err != nil {
		return report, fmt.Errorf("doctor orphan meal log check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM meal_ingredients mi
LEFT JOIN meals m ON m.id = mi.meal_id
LEFT JOIN foods f ON f.id = mi.food_id
WHERE m.id IS NULL OR f.id IS NULL
`).Scan(&report.OrphanIngredients); err != nil {
		return report, fmt.Errorf("doctor orphan ingredient check: %w", err)
	}
	if err := db.QueryRow(`
SELECT (SELECT COUNT(1) FROM meal_logs WHERE DATE(logged_at) IS NULL)
     + (SELECT COUNT(1) FROM meals WHERE DATE(logged_at) IS NULL)
`).Scan(&report.UndatedRecords); err != nil {
		return report, fmt.Errorf("doctor undated check: %w", err)
	}

	if err := db.QueryRow(driftedTotalsQuery).Scan(&report.DriftedMealTotals); err != nil {
		return report, fmt.Errorf("doctor meal totals check: %w", err)
	}

	if !fix || report.Clean() {
		return report, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("doctor fix begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM meal_logs WHERE food_id NOT IN (SELECT id FROM foods)`,
		`DELETE FROM meal_ingredients WHERE meal_id NOT IN (SELECT id FROM meals) OR food_id NOT IN (SELECT id FROM foods)`,
	} {
		res, err := tx.Exec(q)
		if err != nil {
			return report, fmt.Errorf("doctor fix orphans: %w", err)
		}
		n, _ := res.RowsAffected()
		report.Removed += int(n)
	}

	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("doctor fix commit: %w", err)
	}
	return report, nil
}
