package nutrition

import (
	"fmt"

	"github.com/saadjs/mealtrack/internal/model"
)

const (
	WeightHistoryLimit = 30
	weightTrendWindow  = 7
)

type TrendDirection string

const (
	TrendGaining TrendDirection = "gaining"
	TrendLosing  TrendDirection = "losing"
	TrendStable  TrendDirection = "stable"
)

// WeightProgress fields are nil when there is no history.
type WeightProgress struct {
	CurrentWeight  *float64            `json:"current_weight"`
	StartingWeight *float64            `json:"starting_weight"`
	Change         *float64            `json:"change"`
	Trend          *float64            `json:"trend"`
	TrendDirection *TrendDirection     `json:"trend_direction"`
	History        []model.WeightEntry `json:"history"`
}

// WeightTrend computes progress over entries ordered newest first. The
// trend compares the newest entry with the oldest of the first seven.
func WeightTrend(entries []model.WeightEntry) WeightProgress {
	p := WeightProgress{History: entries}
	if p.History == nil {
		p.History = []model.WeightEntry{}
	}
	if len(entries) == 0 {
		return p
	}

	current := entries[0].Weight
	starting := entries[len(entries)-1].Weight
	change := current - starting

	window := entries
	if len(window) > weightTrendWindow {
		window = window[:weightTrendWindow]
	}
	trend := 0.0
	if len(window) >= 2 {
		trend = window[0].Weight - window[len(window)-1].Weight
	}
	direction := TrendStable
	switch {
	case trend > 0:
		direction = TrendGaining
	case trend < 0:
		direction = TrendLosing
	}

	p.CurrentWeight = &current
	p.StartingWeight = &starting
	p.Change = &change
	p.Trend = &trend
	p.TrendDirection = &direction
	return p
}

func (e *Engine) WeightProgress() (*WeightProgress, error) {
	entries, err := e.store.WeightHistory(WeightHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("weight progress: %w", err)
	}
	p := WeightTrend(entries)
	return &p, nil
}
