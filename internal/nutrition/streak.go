package nutrition

import "fmt"

// Streak counts consecutive days with at least one single-food log, walking
// back from today. Off days are stepped over without counting or breaking
// the run. There is no upper bound on how far back it walks.
func (e *Engine) Streak() (int, error) {
	streak := 0
	day := e.Today()
	for {
		off, err := e.store.IsOffDay(day)
		if err != nil {
			return 0, fmt.Errorf("streak: %w", err)
		}
		if off {
			day = day.AddDate(0, 0, -1)
			continue
		}
		meals, err := e.store.MealsForDate(day)
		if err != nil {
			return 0, fmt.Errorf("streak: %w", err)
		}
		if len(meals) == 0 {
			return streak, nil
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
