package calculations

import (
	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

const (
	// DefaultAnnuityRatePercent ставка аннуитета, если пользователь её не указал
	DefaultAnnuityRatePercent = 6.0

	// annuityShare доля капитала, которая обязательно идёт на покупку аннуитета
	annuityShare = 0.4
)

// CalculateNPS рассчитывает пенсионный капитал по формуле SIP и пенсию с 40% капитала
func CalculateNPS(monthlyContribution, annualReturnPercent float64, years int, annuityRatePercent float64) (NPSResult, error) {
	if err := validators.RequireNonNegative("annuity_rate_percent", annuityRatePercent); err != nil {
		return NPSResult{}, err
	}

	sip, err := CalculateSIP(monthlyContribution, annualReturnPercent, years)
	if err != nil {
		return NPSResult{}, err
	}

	annuityCorpus := sip.MaturityValue * annuityShare
	monthlyPension := annuityCorpus * annuityRatePercent / 1200.0
	roundedAnnuity := utils.RoundCurrency(annuityCorpus)

	return NPSResult{
		RetirementCorpus:  sip.MaturityValue,
		TotalContribution: sip.TotalInvestment,
		WealthGained:      sip.WealthGained,
		AnnuityCorpus:     roundedAnnuity,
		LumpsumWithdrawal: utils.SubExact(sip.MaturityValue, roundedAnnuity),
		MonthlyPension:    utils.RoundCurrency(monthlyPension),
	}, nil
}
