package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/saadjs/mealtrack/internal/db"
	"github.com/saadjs/mealtrack/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mealtrack.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func mustAddFood(t *testing.T, sqldb *sql.DB, name string, calories, protein, carbs, fats float64) int64 {
	t.Helper()
	id, err := service.AddFood(sqldb, service.FoodInput{Name: name, Calories: calories, Protein: protein, Carbs: carbs, Fats: fats})
	if err != nil {
		t.Fatalf("add food %s: %v", name, err)
	}
	return id
}
