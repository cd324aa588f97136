package calculations

import (
	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

type swpState int

const (
	swpAccumulating swpState = iota
	swpDepleted
)

// CalculateSWP моделирует ежемесячное снятие с капитала, который продолжает приносить доход.
// Сначала начисляется доход, затем снимается сумма; при остатке ≤ 0 капитал считается исчерпанным.
// Остаток меньше половины рубля округляется до 0, признак исчерпания при этом определяет Depleted.
func CalculateSWP(corpus, monthlyWithdrawal, annualReturnPercent float64, years int) (SWPResult, error) {
	if err := firstError(
		validators.RequirePositive("corpus", corpus),
		validators.RequirePositive("monthly_withdrawal", monthlyWithdrawal),
		validators.RequireAbove("annual_return_percent", annualReturnPercent, -100),
		validators.RequireMinInt("years", years, 1),
	); err != nil {
		return SWPResult{}, err
	}

	i := monthlyRate(annualReturnPercent)
	totalMonths := years * 12
	balance := corpus
	monthsLasted := 0
	state := swpAccumulating

	for month := 1; month <= totalMonths && state == swpAccumulating; month++ {
		balance = balance*(1.0+i) - monthlyWithdrawal
		monthsLasted = month

		if balance <= 0 {
			balance = 0.0
			state = swpDepleted
		}
	}

	if err := checkFinite("remaining_corpus", balance); err != nil {
		return SWPResult{}, err
	}

	return SWPResult{
		RemainingCorpus: utils.RoundCurrency(balance),
		TotalWithdrawal: utils.MulInt(monthlyWithdrawal, monthsLasted),
		MonthsLasted:    monthsLasted,
		Depleted:        state == swpDepleted,
	}, nil
}
