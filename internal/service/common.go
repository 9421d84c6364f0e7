package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

// ErrNotFound is returned when a row addressed by id or date does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalid matches input rejected before it reaches storage.
var ErrInvalid = errors.New("invalid input")

type invalidError struct{ msg string }

func (e *invalidError) Error() string        { return e.msg }
func (e *invalidError) Is(target error) bool { return target == ErrInvalid }

func invalidf(format string, args ...any) error {
	return &invalidError{msg: fmt.Sprintf(format, args...)}
}

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return invalidf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func validateMealType(mealType string) (string, error) {
	mt := normalizeName(mealType)
	for _, known := range model.MealTypes {
		if mt == known {
			return mt, nil
		}
	}
	return "", invalidf("meal type must be one of %s", strings.Join(model.MealTypes, "|"))
}

// requireAffected turns a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// Timestamps are written as naive local wall-clock text. Range queries key
// on the first ten characters, the same day the aggregation engine uses.
func formatDateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// dateString renders a DATE column scanned into any as YYYY-MM-DD.
func dateString(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(dateLayout)
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return ""
	}
}

func timeFromDB(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		for _, layout := range []string{dateTimeLayout, time.RFC3339, dateLayout} {
			if t, err := time.Parse(layout, x); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}

// dateFromDB maps a DATE column onto a date-only Timestamp.
func dateFromDB(v any) model.Timestamp {
	if t, ok := v.(time.Time); ok {
		return model.DateOf(t)
	}
	return model.TimestampFromDB(v)
}
