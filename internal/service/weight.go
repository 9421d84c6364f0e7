package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

// LogWeight records weight for day, replacing that day's previous entry.
func LogWeight(db *sql.DB, weight float64, day time.Time, notes string) (int64, error) {
	if weight <= 0 {
		return 0, invalidf("weight must be > 0")
	}
	if day.IsZero() {
		day = time.Now()
	}
	if _, err := db.Exec(`
INSERT INTO weight_history(weight, recorded_at, notes)
VALUES(?, ?, ?)
ON CONFLICT(recorded_at) DO UPDATE SET weight=excluded.weight, notes=excluded.notes
`, weight, formatDate(day), nullIfEmpty(notes)); err != nil {
		return 0, fmt.Errorf("log weight: %w", err)
	}
	var id int64
	if err := db.QueryRow(`SELECT id FROM weight_history WHERE recorded_at = ?`, formatDate(day)).Scan(&id); err != nil {
		return 0, fmt.Errorf("read weight id: %w", err)
	}
	return id, nil
}

// WeightHistory returns up to limit entries, newest first. Zero means 30
// and a negative limit returns everything.
func WeightHistory(db *sql.DB, limit int) ([]model.WeightEntry, error) {
	if limit == 0 {
		limit = 30
	}
	if limit < 0 {
		limit = -1
	}
	rows, err := db.Query(`
SELECT id, weight, recorded_at, IFNULL(notes, '')
FROM weight_history
ORDER BY recorded_at DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list weight history: %w", err)
	}
	defer rows.Close()

	out := make([]model.WeightEntry, 0)
	for rows.Next() {
		var w model.WeightEntry
		var recorded any
		if err := rows.Scan(&w.ID, &w.Weight, &recorded, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		w.RecordedAt = dateString(recorded)
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight history: %w", err)
	}
	return out, nil
}

func LatestWeight(db *sql.DB) (*model.WeightEntry, error) {
	history, err := WeightHistory(db, 1)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("weight history: %w", ErrNotFound)
	}
	return &history[0], nil
}
