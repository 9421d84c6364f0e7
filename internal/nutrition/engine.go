// Package nutrition turns logged meals into daily, weekly and monthly
// progress figures. It reads everything through Store and keeps no state
// between calls, so an Engine can be shared freely.
package nutrition

import (
	"time"

	"go.uber.org/zap"

	"github.com/saadjs/mealtrack/internal/model"
)

// Store is the read side of meal, off-day, settings and weight storage.
// Dates passed in are calendar days; implementations compare on the date
// component only.
type Store interface {
	MealsForDate(day time.Time) ([]model.MealLog, error)
	MealsForRange(start, end time.Time) ([]model.MealLog, error)
	MultiMealsForRange(start, end time.Time) ([]model.MultiMeal, error)
	OffDaysForRange(start, end time.Time) ([]model.OffDay, error)
	IsOffDay(day time.Time) (bool, error)
	GetSetting(key, def string) (string, error)
	SetSetting(key, value string) error
	AllSettings() (map[string]string, error)
	WeightHistory(limit int) ([]model.WeightEntry, error)
}

type Engine struct {
	store  Store
	now    func() time.Time
	logger *zap.Logger
}

// NewEngine wires an engine over store. A nil clock means time.Now.
func NewEngine(store Store, clock func() time.Time, logger *zap.Logger) *Engine {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{store: store, now: clock, logger: logger}
}

// Today is the engine clock's current calendar day.
func (e *Engine) Today() time.Time {
	return Day(e.now())
}

func (e *Engine) dayOrToday(day time.Time) time.Time {
	if day.IsZero() {
		return e.Today()
	}
	return Day(day)
}
