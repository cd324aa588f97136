package calculations

// EMIResult представляет ежемесячный платёж по кредиту и итоги
type EMIResult struct {
	EMI           float64 `json:"emi"`
	TotalAmount   float64 `json:"total_amount"`
	TotalInterest float64 `json:"total_interest"`
}

// AmortizationEntry представляет одну запись в графике платежей
type AmortizationEntry struct {
	Month     int     `json:"month"`
	EMI       float64 `json:"emi"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// SIPResult представляет итог регулярных инвестиций
type SIPResult struct {
	MaturityValue   float64 `json:"maturity_value"`
	TotalInvestment float64 `json:"total_investment"`
	WealthGained    float64 `json:"wealth_gained"`
}

// FDResult представляет итог по срочному вкладу
type FDResult struct {
	MaturityValue  float64 `json:"maturity_value"`
	InterestEarned float64 `json:"interest_earned"`
}

// LumpsumResult представляет итог разового вложения
type LumpsumResult struct {
	MaturityValue float64 `json:"maturity_value"`
	WealthGained  float64 `json:"wealth_gained"`
}

// SWPResult представляет итог плана систематического снятия
type SWPResult struct {
	RemainingCorpus float64 `json:"remaining_corpus"`
	TotalWithdrawal float64 `json:"total_withdrawal"`
	MonthsLasted    int     `json:"months_lasted"`
	Depleted        bool    `json:"depleted"`
}

// NPSResult представляет пенсионный капитал и ожидаемую пенсию
type NPSResult struct {
	RetirementCorpus  float64 `json:"retirement_corpus"`
	TotalContribution float64 `json:"total_contribution"`
	WealthGained      float64 `json:"wealth_gained"`
	AnnuityCorpus     float64 `json:"annuity_corpus"`
	LumpsumWithdrawal float64 `json:"lumpsum_withdrawal"`
	MonthlyPension    float64 `json:"monthly_pension"`
}
