package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const upsertSettingQuery = `
INSERT INTO settings(key, value)
VALUES(?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value
`

func SetSetting(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return invalidf("setting key is required")
	}
	if _, err := db.Exec(upsertSettingQuery, key, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// SetSettings upserts every pair in one transaction. Nothing is written
// when any key is blank or any write fails.
func SetSettings(db *sql.DB, values map[string]string) error {
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return invalidf("setting key is required")
		}
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin settings update: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		if _, err := tx.Exec(upsertSettingQuery, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("set setting %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings update: %w", err)
	}
	return nil
}

// GetSetting returns def when key has never been set.
func GetSetting(db *sql.DB, key, def string) (string, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, strings.TrimSpace(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func ListSettings(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}
