package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

// roundingTolerance погрешность платежа, округлённого до целых рублей
const roundingTolerance = 0.5

func validateLoan(principal, annualRatePercent float64, tenureMonths int) error {
	return firstError(
		validators.RequireNonNegative("principal", principal),
		validators.RequireNonNegative("annual_rate_percent", annualRatePercent),
		validators.RequireMinInt("tenure_months", tenureMonths, 1),
	)
}

// CalculateEMI рассчитывает аннуитетный ежемесячный платёж.
// При нулевой ставке платёж равен principal / tenureMonths, при нулевой сумме все поля равны 0.
func CalculateEMI(principal, annualRatePercent float64, tenureMonths int) (EMIResult, error) {
	emi, err := MonthlyPayment(principal, annualRatePercent, tenureMonths)
	if err != nil {
		return EMIResult{}, err
	}
	if principal == 0 {
		return EMIResult{}, nil
	}

	totalAmount := emi * float64(tenureMonths)
	if err := checkFinite("emi", totalAmount); err != nil {
		return EMIResult{}, err
	}

	totalAmount = utils.RoundCurrency(totalAmount)
	return EMIResult{
		EMI:           utils.RoundCurrency(emi),
		TotalAmount:   totalAmount,
		TotalInterest: utils.RoundCurrency(totalAmount - principal),
	}, nil
}

// MonthlyPayment возвращает аннуитетный платёж без округления.
// Используется графиком погашения.
func MonthlyPayment(principal, annualRatePercent float64, tenureMonths int) (float64, error) {
	if err := validateLoan(principal, annualRatePercent, tenureMonths); err != nil {
		return 0, err
	}
	if principal == 0 {
		return 0, nil
	}

	r := monthlyRate(annualRatePercent)
	n := float64(tenureMonths)

	var emi float64
	if r == 0.0 {
		emi = principal / n
	} else {
		emi = principal * r / (1.0 - math.Pow(1.0+r, -n))
	}
	if err := checkFinite("emi", emi); err != nil {
		return 0, err
	}
	return emi, nil
}

// AmortizationSchedule рассчитывает помесячный график погашения при заданном платеже.
// Последний платёж закрывает остаток, поэтому баланс в последнем месяце равен 0.
// Платёж отклоняется, только если он меньше процентов первого месяца больше чем на половину рубля.
func AmortizationSchedule(principal, annualRatePercent float64, tenureMonths int, emi float64) ([]AmortizationEntry, error) {
	if err := firstError(
		validateLoan(principal, annualRatePercent, tenureMonths),
		validators.RequireNonNegative("emi", emi),
	); err != nil {
		return nil, err
	}

	r := monthlyRate(annualRatePercent)
	if principal > 0 && emi < principal*r-roundingTolerance {
		return nil, fmt.Errorf("%w: emi: платёж не покрывает проценты первого месяца", ErrInvalidInput)
	}

	schedule := make([]AmortizationEntry, 0, tenureMonths)
	remaining := principal

	for m := 1; m <= tenureMonths; m++ {
		interest := remaining * r
		payment := emi
		principalComponent := emi - interest

		if m == tenureMonths || principalComponent > remaining {
			principalComponent = remaining
			payment = principalComponent + interest
		}

		remaining -= principalComponent
		if remaining < 0 {
			remaining = 0.0
		}

		schedule = append(schedule, AmortizationEntry{
			Month:     m,
			EMI:       utils.RoundCurrency(payment),
			Principal: utils.RoundCurrency(principalComponent),
			Interest:  utils.RoundCurrency(interest),
			Balance:   utils.RoundCurrency(remaining),
		})
	}

	if err := checkFinite("amortization_schedule", remaining); err != nil {
		return nil, err
	}
	return schedule, nil
}
