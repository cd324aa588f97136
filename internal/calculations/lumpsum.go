package calculations

import (
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

// CalculateLumpsum рассчитывает рост разового вложения: A = P(1 + r)^t
func CalculateLumpsum(principal, annualReturnPercent, years float64) (LumpsumResult, error) {
	if err := firstError(
		validators.RequirePositive("principal", principal),
		validators.RequireAbove("annual_return_percent", annualReturnPercent, -100),
		validators.RequirePositive("years", years),
	); err != nil {
		return LumpsumResult{}, err
	}

	maturity := principal * math.Pow(1.0+annualReturnPercent/100.0, years)
	if err := checkFinite("maturity_value", maturity); err != nil {
		return LumpsumResult{}, err
	}

	maturity = utils.RoundCurrency(maturity)
	return LumpsumResult{
		MaturityValue: maturity,
		WealthGained:  utils.SubExact(maturity, principal),
	}, nil
}
