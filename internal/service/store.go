package service

import (
	"database/sql"
	"time"

	"github.com/saadjs/mealtrack/internal/model"
	"github.com/saadjs/mealtrack/internal/nutrition"
)

// Store adapts the SQLite functions to nutrition.Store.
type Store struct {
	DB *sql.DB
}

var _ nutrition.Store = Store{}

func NewStore(db *sql.DB) Store {
	return Store{DB: db}
}

func (s Store) MealsForDate(day time.Time) ([]model.MealLog, error) {
	return MealsForDate(s.DB, day)
}

func (s Store) MealsForRange(start, end time.Time) ([]model.MealLog, error) {
	return MealsForRange(s.DB, start, end)
}

func (s Store) MultiMealsForRange(start, end time.Time) ([]model.MultiMeal, error) {
	return MultiMealsForRange(s.DB, start, end)
}

func (s Store) OffDaysForRange(start, end time.Time) ([]model.OffDay, error) {
	return OffDaysInRange(s.DB, start, end)
}

func (s Store) IsOffDay(day time.Time) (bool, error) {
	return IsOffDay(s.DB, day)
}

func (s Store) GetSetting(key, def string) (string, error) {
	return GetSetting(s.DB, key, def)
}

func (s Store) SetSetting(key, value string) error {
	return SetSetting(s.DB, key, value)
}

func (s Store) AllSettings() (map[string]string, error) {
	return ListSettings(s.DB)
}

func (s Store) WeightHistory(limit int) ([]model.WeightEntry, error) {
	return WeightHistory(s.DB, limit)
}
