package nutrition

import (
	"fmt"
	"math"

	"github.com/saadjs/mealtrack/internal/model"
)

type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

func (m *Macros) Add(o Macros) {
	m.Calories += o.Calories
	m.Protein += o.Protein
	m.Carbs += o.Carbs
	m.Fats += o.Fats
}

func (m Macros) Scale(f float64) Macros {
	return Macros{Calories: m.Calories * f, Protein: m.Protein * f, Carbs: m.Carbs * f, Fats: m.Fats * f}
}

// PerDay divides by days, yielding zeros when days is not positive.
func (m Macros) PerDay(days int) Macros {
	if days <= 0 {
		return Macros{}
	}
	return m.Scale(1 / float64(days))
}

// Contribution is one logged record's share of a day, whichever table it
// came from.
type Contribution struct {
	LoggedAt model.Timestamp
	Macros
}

// FromMealLog scales a single-food log's per-serving values by its portions.
func FromMealLog(m model.MealLog) Contribution {
	per := Macros{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fats: m.Fats}
	return Contribution{LoggedAt: m.LoggedAt, Macros: per.Scale(m.Portions)}
}

// FromMultiMeal takes a multi-ingredient meal's totals as they are.
func FromMultiMeal(m model.MultiMeal) Contribution {
	return Contribution{
		LoggedAt: m.LoggedAt,
		Macros:   Macros{Calories: m.TotalCalories, Protein: m.TotalProtein, Carbs: m.TotalCarbs, Fats: m.TotalFats},
	}
}

// MacroRatio formats the protein/carbs/fats gram split as rounded
// percentages, e.g. "40/30/30".
func MacroRatio(protein, carbs, fats float64) string {
	total := protein + carbs + fats
	if total == 0 {
		return "0/0/0"
	}
	pct := func(v float64) int { return int(math.RoundToEven(v / total * 100)) }
	return fmt.Sprintf("%d/%d/%d", pct(protein), pct(carbs), pct(fats))
}
