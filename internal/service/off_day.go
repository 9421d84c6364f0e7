package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

var offDayReasons = []string{
	"holiday",
	"weekend",
	"dinner with friends",
	"special date",
	"travel",
	"party",
	"other",
}

// OffDayReasons lists the suggested reasons. Any non-empty reason is
// accepted.
func OffDayReasons() []string {
	return append([]string(nil), offDayReasons...)
}

// AddOffDay marks day as an off day, replacing any existing mark.
func AddOffDay(db *sql.DB, day time.Time, reason, notes string) (int64, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return 0, invalidf("off day reason is required")
	}
	if _, err := db.Exec(`
INSERT INTO off_days(date, reason, notes)
VALUES(?, ?, ?)
ON CONFLICT(date) DO UPDATE SET reason=excluded.reason, notes=excluded.notes
`, formatDate(day), reason, nullIfEmpty(notes)); err != nil {
		return 0, fmt.Errorf("add off day: %w", err)
	}
	var id int64
	if err := db.QueryRow(`SELECT id FROM off_days WHERE date = ?`, formatDate(day)).Scan(&id); err != nil {
		return 0, fmt.Errorf("read off day id: %w", err)
	}
	return id, nil
}

func RemoveOffDay(db *sql.DB, day time.Time) error {
	res, err := db.Exec(`DELETE FROM off_days WHERE date = ?`, formatDate(day))
	if err != nil {
		return fmt.Errorf("remove off day: %w", err)
	}
	return requireAffected(res, "off day "+formatDate(day))
}

func scanOffDay(row interface{ Scan(...any) error }) (model.OffDay, error) {
	var o model.OffDay
	var date any
	if err := row.Scan(&o.ID, &date, &o.Reason, &o.Notes); err != nil {
		return model.OffDay{}, err
	}
	o.Date = dateFromDB(date)
	return o, nil
}

func GetOffDay(db *sql.DB, day time.Time) (*model.OffDay, error) {
	o, err := scanOffDay(db.QueryRow(`SELECT id, date, reason, IFNULL(notes, '') FROM off_days WHERE date = ?`, formatDate(day)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("off day %s: %w", formatDate(day), ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get off day: %w", err)
	}
	return &o, nil
}

func OffDaysInRange(db *sql.DB, start, end time.Time) ([]model.OffDay, error) {
	rows, err := db.Query(`
SELECT id, date, reason, IFNULL(notes, '')
FROM off_days
WHERE date BETWEEN ? AND ?
ORDER BY date ASC
`, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("list off days: %w", err)
	}
	defer rows.Close()

	out := make([]model.OffDay, 0)
	for rows.Next() {
		o, err := scanOffDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan off day: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate off days: %w", err)
	}
	return out, nil
}

func IsOffDay(db *sql.DB, day time.Time) (bool, error) {
	var one int
	err := db.QueryRow(`SELECT 1 FROM off_days WHERE date = ?`, formatDate(day)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check off day: %w", err)
	}
	return true, nil
}
