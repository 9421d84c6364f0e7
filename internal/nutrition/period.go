package nutrition

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/model"
)

type PeriodKind string

const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

// PeriodSummary averages a week or month over its tracked days: days that
// are not off days and have at least one logged record.
type PeriodSummary struct {
	Kind        PeriodKind     `json:"kind"`
	Label       string         `json:"label"`
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	TrackedDays int            `json:"tracked_days"`
	OffDayCount int            `json:"off_day_count"`
	OffDays     []model.OffDay `json:"off_days"`
	Totals      Macros         `json:"totals"`
	Averages    Macros         `json:"averages"`
	Days        []DayBucket    `json:"daily_breakdown"`
}

// DayBucket is one date's accumulated contributions.
type DayBucket struct {
	Date string `json:"date"`
	Macros
	Entries int  `json:"entries"`
	OffDay  bool `json:"off_day"`
}

// WeeklyAverages summarizes the Monday-to-Sunday week containing start. A
// zero start means the current week.
func (e *Engine) WeeklyAverages(start time.Time) (*PeriodSummary, error) {
	start = WeekStart(e.dayOrToday(start))
	end := start.AddDate(0, 0, 6)
	s, err := e.summarize(PeriodWeek, start, end)
	if err != nil {
		return nil, fmt.Errorf("weekly averages: %w", err)
	}
	s.Label = "Week of " + s.PeriodStart
	return s, nil
}

// MonthlyAverages summarizes the calendar month containing start. A zero
// start means the current month.
func (e *Engine) MonthlyAverages(start time.Time) (*PeriodSummary, error) {
	start = MonthStart(e.dayOrToday(start))
	end := MonthEnd(start)
	s, err := e.summarize(PeriodMonth, start, end)
	if err != nil {
		return nil, fmt.Errorf("monthly averages: %w", err)
	}
	s.Label = start.Format("January 2006")
	return s, nil
}

func (e *Engine) summarize(kind PeriodKind, start, end time.Time) (*PeriodSummary, error) {
	meals, err := e.store.MealsForRange(start, end)
	if err != nil {
		return nil, err
	}
	multi, err := e.store.MultiMealsForRange(start, end)
	if err != nil {
		return nil, err
	}
	offDays, err := e.store.OffDaysForRange(start, end)
	if err != nil {
		return nil, err
	}

	contribs := make([]Contribution, 0, len(meals)+len(multi))
	for _, m := range meals {
		contribs = append(contribs, FromMealLog(m))
	}
	for _, m := range multi {
		contribs = append(contribs, FromMultiMeal(m))
	}

	excluded := make(map[string]bool, len(offDays))
	for _, o := range offDays {
		key, ok := DateKey(o.Date)
		if !ok {
			e.logger.Debug("skipping off day without date", zap.Int64("off_day_id", o.ID))
			continue
		}
		excluded[key] = true
	}

	buckets := e.bucket(contribs)

	summary := &PeriodSummary{
		Kind:        kind,
		PeriodStart: start.Format(DateLayout),
		PeriodEnd:   end.Format(DateLayout),
		OffDayCount: len(offDays),
		OffDays:     offDays,
		Days:        make([]DayBucket, 0, len(buckets)),
	}
	if summary.OffDays == nil {
		summary.OffDays = []model.OffDay{}
	}

	for key, b := range buckets {
		b.OffDay = excluded[key]
		summary.Days = append(summary.Days, *b)
		if b.OffDay || b.Entries == 0 {
			continue
		}
		summary.TrackedDays++
		summary.Totals.Add(b.Macros)
	}
	sort.Slice(summary.Days, func(i, j int) bool { return summary.Days[i].Date < summary.Days[j].Date })
	summary.Averages = summary.Totals.PerDay(summary.TrackedDays)
	return summary, nil
}

// bucket groups contributions by date key. Records without a timestamp are
// dropped.
func (e *Engine) bucket(contribs []Contribution) map[string]*DayBucket {
	buckets := make(map[string]*DayBucket)
	for _, c := range contribs {
		key, ok := DateKey(c.LoggedAt)
		if !ok {
			e.logger.Debug("skipping record without timestamp")
			continue
		}
		b, exists := buckets[key]
		if !exists {
			b = &DayBucket{Date: key}
			buckets[key] = b
		}
		b.Add(c.Macros)
		b.Entries++
	}
	return buckets
}
