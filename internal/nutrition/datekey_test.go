package nutrition_test

import (
	"testing"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
)

func TestDateKey(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   model.Timestamp
		want string
		ok   bool
	}{
		{"datetime", model.DateTimeOf(at(2026, 10, 21, 23)), "2026-10-21", true},
		{"date", model.DateOf(date(2026, 1, 2)), "2026-01-02", true},
		{"text datetime", model.TextOf("2026-10-21 08:15:00"), "2026-10-21", true},
		{"short text", model.TextOf("oops"), "oops", true},
		{"garbage text", model.TextOf("not-a-date-at-all"), "not-a-date", true},
		{"missing", model.Timestamp{}, "", false},
	}
	for _, tc := range cases {
		got, ok := nutrition.DateKey(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: expected (%q,%v), got (%q,%v)", tc.name, tc.want, tc.ok, got, ok)
		}
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	t.Parallel()
	for d := 19; d <= 25; d++ {
		got := nutrition.WeekStart(date(2026, 10, d))
		if got.Weekday() != time.Monday || got.Day() != 19 {
			t.Fatalf("2026-10-%d: expected monday 19th, got %s", d, got.Format(nutrition.DateLayout))
		}
	}
}

func TestParseDay(t *testing.T) {
	t.Parallel()
	now := at(2026, 1, 1, 10)
	if d, ok := nutrition.ParseDay("yesterday", now); !ok || d.Format(nutrition.DateLayout) != "2025-12-31" {
		t.Fatalf("expected 2025-12-31, got %v %v", d, ok)
	}
	if d, ok := nutrition.ParseDay("today", now); !ok || d.Format(nutrition.DateLayout) != "2026-01-01" {
		t.Fatalf("expected 2026-01-01, got %v %v", d, ok)
	}
	if _, ok := nutrition.ParseDay("2026-13-01", now); ok {
		t.Fatalf("expected invalid month to fail")
	}
}
