package mealtrack

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/mealtrack/internal/db"
	"github.com/saadjs/mealtrack/internal/nutrition"
	"github.com/saadjs/mealtrack/internal/service"
	"github.com/saadjs/mealtrack/pkg/logger"
)

func withDB(run func(*sql.DB) error) error {
	sqldb, err := db.OpenMigrated(cfg.DBPath)
	if err != nil {
		return err
	}
	defer sqldb.Close()
	return run(sqldb)
}

func withEngine(run func(*sql.DB, *nutrition.Engine) error) error {
	return withDB(func(sqldb *sql.DB) error {
		engine := nutrition.NewEngine(service.NewStore(sqldb), nil, logger.Named(baseLogger, "nutrition"))
		return run(sqldb, engine)
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

// parseDay accepts YYYY-MM-DD, today or yesterday. Empty means today.
func parseDay(flag, value string) (time.Time, error) {
	d, ok := nutrition.ParseDay(strings.TrimSpace(value), time.Now())
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected YYYY-MM-DD, today or yesterday)", flag, value)
	}
	return d, nil
}

// parseDateTimeOrNow combines --date and --time. A date without a time
// takes the current clock time.
func parseDateTimeOrNow(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	now := time.Now()
	if date == "" && timeStr == "" {
		return now, nil
	}
	day, err := parseDay("date", date)
	if err != nil {
		return time.Time{}, err
	}
	if timeStr == "" {
		return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, time.Local), nil
	}
	clock, err := time.ParseInLocation("15:04", timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --time %q (expected HH:MM)", timeStr)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

// progressBar renders pct of a 20-cell bar, capped at full.
func progressBar(pct float64) string {
	const width = 20
	filled := int(math.Round(pct / 100 * width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
