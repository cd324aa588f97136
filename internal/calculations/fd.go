package calculations

import (
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

// CompoundingFrequency число капитализаций процентов в год
type CompoundingFrequency int

const (
	Annually     CompoundingFrequency = 1
	SemiAnnually CompoundingFrequency = 2
	Quarterly    CompoundingFrequency = 4
	Monthly      CompoundingFrequency = 12
	Daily        CompoundingFrequency = 365

	// DefaultCompounding применяется, когда частота не указана (нулевое значение)
	DefaultCompounding = Quarterly
)

// CalculateFD рассчитывает срочный вклад: A = P(1 + r/n)^(n*t), t = tenureMonths/12
func CalculateFD(principal, annualRatePercent float64, tenureMonths int, frequency CompoundingFrequency) (FDResult, error) {
	if frequency == 0 {
		frequency = DefaultCompounding
	}

	if err := firstError(
		validators.RequirePositive("principal", principal),
		validators.RequireNonNegative("annual_rate_percent", annualRatePercent),
		validators.RequireMinInt("tenure_months", tenureMonths, 1),
		validators.CheckCompounding(int(frequency)),
	); err != nil {
		return FDResult{}, err
	}

	years := float64(tenureMonths) / 12.0
	rate := annualRatePercent / 100.0
	n := float64(frequency)

	maturity := principal * math.Pow(1.0+rate/n, n*years)
	if err := checkFinite("maturity_value", maturity); err != nil {
		return FDResult{}, err
	}

	maturity = utils.RoundCurrency(maturity)
	return FDResult{
		MaturityValue:  maturity,
		InterestEarned: utils.SubExact(maturity, principal),
	}, nil
}
