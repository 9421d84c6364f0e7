package model

import "time"

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

type Food struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fats        float64   `json:"fats"`
	ServingSize string    `json:"serving_size"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
}

// MealLog is a single-food log joined with the food's per-serving nutrition.
type MealLog struct {
	ID       int64     `json:"log_id"`
	FoodID   int64     `json:"food_id"`
	Name     string    `json:"name"`
	Calories float64   `json:"calories"`
	Protein  float64   `json:"protein"`
	Carbs    float64   `json:"carbs"`
	Fats     float64   `json:"fats"`
	Portions float64   `json:"portions"`
	MealType string    `json:"meal_type"`
	LoggedAt Timestamp `json:"logged_at"`
	Notes    string    `json:"notes"`
}

// MultiMeal totals are already scaled from its ingredients.
type MultiMeal struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	MealType      string           `json:"meal_type"`
	LoggedAt      Timestamp        `json:"logged_at"`
	TotalCalories float64          `json:"total_calories"`
	TotalProtein  float64          `json:"total_protein"`
	TotalCarbs    float64          `json:"total_carbs"`
	TotalFats     float64          `json:"total_fats"`
	Notes         string           `json:"notes"`
	Ingredients   []MealIngredient `json:"ingredients"`
}

type MealIngredient struct {
	ID          int64   `json:"id"`
	MealID      int64   `json:"meal_id"`
	FoodID      int64   `json:"food_id"`
	FoodName    string  `json:"food_name"`
	AmountGrams float64 `json:"amount_grams"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fats        float64 `json:"fats"`
}

type OffDay struct {
	ID     int64     `json:"id"`
	Date   Timestamp `json:"date"`
	Reason string    `json:"reason"`
	Notes  string    `json:"notes"`
}

type WeightEntry struct {
	ID         int64   `json:"id"`
	Weight     float64 `json:"weight"`
	RecordedAt string  `json:"recorded_at"`
	Notes      string  `json:"notes"`
}
