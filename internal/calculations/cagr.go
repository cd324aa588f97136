package calculations

import (
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
)

// CalculateCAGR возвращает среднегодовой темп роста в процентах
func CalculateCAGR(initialValue, finalValue, years float64) (float64, error) {
	if err := firstError(
		validators.RequirePositive("initial_value", initialValue),
		validators.RequireNonNegative("final_value", finalValue),
		validators.RequirePositive("years", years),
	); err != nil {
		return 0, err
	}

	cagr := (math.Pow(finalValue/initialValue, 1.0/years) - 1.0) * 100.0
	if err := checkFinite("cagr", cagr); err != nil {
		return 0, err
	}
	return cagr, nil
}
