package service

import (
	"strconv"
	"strings"
)

// gramsPerUnit converts supported mass units to grams.
var gramsPerUnit = map[string]float64{
	"mg":  0.001,
	"g":   1,
	"kg":  1000,
	"oz":  28.349523125,
	"lb":  453.59237,
	"lbs": 453.59237,
}

// ToGrams converts value in unit to grams. An empty unit means grams.
func ToGrams(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, invalidf("amount must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "g"
	}
	factor, ok := gramsPerUnit[u]
	if !ok {
		return 0, invalidf("unsupported unit %q (use mg, g, kg, oz or lb)", unit)
	}
	return value * factor, nil
}

// ParseAmountGrams reads amounts such as "150", "150g", "5.5 oz" or
// "0.2kg" and returns grams.
func ParseAmountGrams(s string) (float64, error) {
	s = strings.TrimSpace(s)
	split := len(s)
	for i, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			split = i
			break
		}
	}
	value, err := strconv.ParseFloat(s[:split], 64)
	if err != nil {
		return 0, invalidf("invalid amount %q", s)
	}
	return ToGrams(value, s[split:])
}
