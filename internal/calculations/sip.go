package calculations

import (
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

// CalculateSIP рассчитывает стоимость ежемесячных инвестиций с взносом в начале месяца.
// TotalInvestment считается точно, MaturityValue округляется до целых.
func CalculateSIP(monthlyInvestment, annualReturnPercent float64, years int) (SIPResult, error) {
	if err := firstError(
		validators.RequirePositive("monthly_investment", monthlyInvestment),
		validators.RequireAbove("annual_return_percent", annualReturnPercent, -100),
		validators.RequireMinInt("years", years, 1),
	); err != nil {
		return SIPResult{}, err
	}

	i := monthlyRate(annualReturnPercent)
	months := years * 12
	totalInvestment := utils.MulInt(monthlyInvestment, months)

	var maturity float64
	if i == 0.0 {
		maturity = totalInvestment
	} else {
		maturity = monthlyInvestment * ((math.Pow(1.0+i, float64(months)) - 1.0) / i) * (1.0 + i)
	}

	if err := checkFinite("maturity_value", maturity); err != nil {
		return SIPResult{}, err
	}

	maturity = utils.RoundCurrency(maturity)
	return SIPResult{
		MaturityValue:   maturity,
		TotalInvestment: totalInvestment,
		WealthGained:    utils.SubExact(maturity, totalInvestment),
	}, nil
}

// CalculateStepUpSIP рассчитывает SIP с ежегодным увеличением взноса на stepUpPercent.
// Каждый год считается через CalculateSIP на 1 год, накопленный капитал растёт на годовую доходность.
func CalculateStepUpSIP(initialMonthlyInvestment, annualReturnPercent float64, years int, stepUpPercent float64) (SIPResult, error) {
	if err := firstError(
		validators.RequirePositive("monthly_investment", initialMonthlyInvestment),
		validators.RequireAbove("annual_return_percent", annualReturnPercent, -100),
		validators.RequireMinInt("years", years, 1),
		validators.RequireNonNegative("step_up_percent", stepUpPercent),
	); err != nil {
		return SIPResult{}, err
	}

	current := initialMonthlyInvestment
	annualGrowth := 1.0 + annualReturnPercent/100.0
	totalMaturity := 0.0
	totalInvestment := 0.0

	for year := 0; year < years; year++ {
		yearly, err := CalculateSIP(current, annualReturnPercent, 1)
		if err != nil {
			return SIPResult{}, err
		}

		totalMaturity = totalMaturity*annualGrowth + yearly.MaturityValue
		totalInvestment = utils.AddExact(totalInvestment, yearly.TotalInvestment)

		if year < years-1 {
			current = utils.Round2(current * (1.0 + stepUpPercent/100.0))
		}
	}

	if err := checkFinite("maturity_value", totalMaturity, totalInvestment); err != nil {
		return SIPResult{}, err
	}

	maturity := utils.RoundCurrency(totalMaturity)
	invested := utils.RoundCurrency(totalInvestment)
	return SIPResult{
		MaturityValue:   maturity,
		TotalInvestment: invested,
		WealthGained:    utils.SubExact(maturity, invested),
	}, nil
}
