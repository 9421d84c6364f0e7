package nutrition

import (
	"time"

	"github.com/saadjs/mealtrack/internal/model"
)

const DateLayout = "2006-01-02"

// DateKey reduces a stored timestamp to its YYYY-MM-DD bucket key. The
// second result is false when there is nothing to key on.
//
// Text is trusted to start with YYYY-MM-DD and is cut to its first ten
// characters without validation, so malformed text yields a malformed key.
func DateKey(ts model.Timestamp) (string, bool) {
	switch ts.Kind {
	case model.TimestampDateTime, model.TimestampDate:
		return ts.Time.Format(DateLayout), true
	case model.TimestampText:
		if len(ts.Text) > len(DateLayout) {
			return ts.Text[:len(DateLayout)], true
		}
		return ts.Text, true
	default:
		return "", false
	}
}

// Day truncates t to midnight local time on the same calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.Local)
}

// MonthEnd returns the last calendar day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// ParseDay parses YYYY-MM-DD, plus the words "today" and "yesterday"
// relative to now.
func ParseDay(value string, now time.Time) (time.Time, bool) {
	switch value {
	case "", "today":
		return Day(now), true
	case "yesterday":
		return Day(now).AddDate(0, 0, -1), true
	}
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
