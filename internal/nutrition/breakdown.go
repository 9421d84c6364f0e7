package nutrition

import "time"

const (
	DefaultBreakdownWeeks  = 4
	DefaultBreakdownMonths = 3

	// Each period costs three range queries, so requests are clamped.
	MaxBreakdownWeeks  = 52
	MaxBreakdownMonths = 24
)

// WeeklyBreakdown returns n weekly summaries, newest first, starting with
// the current week. n is clamped to MaxBreakdownWeeks.
func (e *Engine) WeeklyBreakdown(n int) ([]*PeriodSummary, error) {
	if n <= 0 {
		n = DefaultBreakdownWeeks
	}
	n = min(n, MaxBreakdownWeeks)
	current := WeekStart(e.Today())
	out := make([]*PeriodSummary, 0, n)
	for i := 0; i < n; i++ {
		s, err := e.WeeklyAverages(current.AddDate(0, 0, -7*i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// MonthlyBreakdown returns n monthly summaries, newest first, starting with
// the current month. n is clamped to MaxBreakdownMonths.
func (e *Engine) MonthlyBreakdown(n int) ([]*PeriodSummary, error) {
	if n <= 0 {
		n = DefaultBreakdownMonths
	}
	n = min(n, MaxBreakdownMonths)
	current := MonthStart(e.Today())
	out := make([]*PeriodSummary, 0, n)
	for i := 0; i < n; i++ {
		s, err := e.MonthlyAverages(monthsBack(current, i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// monthsBack steps first-of-month dates only, so AddDate never normalizes
// past a short month.
func monthsBack(first time.Time, n int) time.Time {
	return first.AddDate(0, -n, 0)
}
