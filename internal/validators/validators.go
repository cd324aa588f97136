package validators

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloud-ru/finance-calculator-go/internal/config"
	"github.com/cloud-ru/finance-calculator-go/internal/models"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

// ErrInvalidInput оборачивается всеми ошибками валидации
var ErrInvalidInput = errors.New("неверные входные данные")

const defaultBalanceCap = 1e12

func invalid(name, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidInput, name, fmt.Sprintf(format, args...))
}

// RequireFinite проверяет, что число конечное
func RequireFinite(name string, value float64) error {
	if !utils.IsFinite(value) {
		return invalid(name, "значение не является конечным числом")
	}
	return nil
}

// RequireNonNegative проверяет, что число конечное и не меньше нуля
func RequireNonNegative(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value < 0 {
		return invalid(name, "значение не может быть отрицательным")
	}
	return nil
}

// RequirePositive проверяет, что число конечное и строго больше нуля
func RequirePositive(name string, value float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value <= 0 {
		return invalid(name, "значение должно быть больше 0")
	}
	return nil
}

// RequireAbove проверяет, что число строго больше нижней границы
func RequireAbove(name string, value, bound float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value <= bound {
		return invalid(name, "значение должно быть больше %g", bound)
	}
	return nil
}

// RequireMinInt проверяет целое число на нижнюю границу
func RequireMinInt(name string, value, minInclusive int) error {
	if value < minInclusive {
		return invalid(name, "значение должно быть ≥ %d", minInclusive)
	}
	return nil
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if err := RequireFinite(name, value); err != nil {
		return err
	}
	if value < minInclusive {
		return invalid(name, "значение должно быть ≥ %g", minInclusive)
	}
	if value > maxInclusive {
		return invalid(name, "значение слишком велико (>%g)", maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return invalid(name, "значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита или вклада
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckCorpus проверяет начальный капитал для плана снятия
func CheckCorpus(cfg *config.Config, corpus float64) error {
	return ValidatePositiveNumber("corpus", corpus, 1e-9, cfg.MaxPrincipal)
}

// CheckWithdrawal проверяет ежемесячную сумму снятия
func CheckWithdrawal(cfg *config.Config, withdrawal float64) error {
	return ValidatePositiveNumber("monthly_withdrawal", withdrawal, 1e-9, cfg.MaxPrincipal)
}

// CheckRate проверяет процентную ставку или доходность
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckFDRate проверяет ставку по вкладу
func CheckFDRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annual_rate_percent", rate, 0.0, cfg.MaxFDRate)
}

// CheckAnnuityRate проверяет ставку аннуитета
func CheckAnnuityRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annuity_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckStepUp проверяет ежегодное увеличение взноса
func CheckStepUp(stepUp float64) error {
	return ValidatePositiveNumber("step_up_percent", stepUp, 0.0, 100.0)
}

// CheckMonths проверяет срок кредита в месяцах
func CheckMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("tenure_months", months, 1, cfg.MaxMonths)
}

// CheckFDMonths проверяет срок вклада в месяцах
func CheckFDMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("tenure_months", months, 1, cfg.MaxFDMonths)
}

// CheckYears проверяет срок инвестирования в годах
func CheckYears(cfg *config.Config, years int) error {
	return ValidateIntRange("years", years, 1, cfg.MaxYears)
}

// CheckFractionalYears проверяет дробный срок в годах
func CheckFractionalYears(cfg *config.Config, years float64) error {
	return ValidatePositiveNumber("years", years, 1e-9, float64(cfg.MaxYears))
}

// CheckContribution проверяет ежемесячный взнос
func CheckContribution(cfg *config.Config, contribution float64) error {
	return ValidatePositiveNumber("monthly_contribution", contribution, 1e-9, cfg.MaxContribution)
}

// CheckCompounding проверяет частоту капитализации
func CheckCompounding(frequency int) error {
	switch frequency {
	case 1, 2, 4, 12, 365:
		return nil
	}
	return invalid("compounding", "допустимые значения: 1, 2, 4, 12, 365")
}

// BalanceCap возвращает максимальный баланс
func BalanceCap(cfg *config.Config) float64 {
	if cfg == nil {
		return defaultBalanceCap
	}
	return cfg.BalanceCap()
}

// CheckBalance проверяет, что итоговая сумма не превысила верхнюю границу
func CheckBalance(cfg *config.Config, name string, value float64) error {
	if value > BalanceCap(cfg) {
		return invalid(name, "итоговый баланс превысил верхнюю границу (проверьте ставку/срок/взносы)")
	}
	return nil
}

// CheckTransaction проверяет операцию перед сохранением
func CheckTransaction(cfg *config.Config, tx models.Transaction) error {
	if err := ValidatePositiveNumber("amount", tx.Amount, 1e-9, cfg.MaxTransactionAmount); err != nil {
		return err
	}
	if len([]rune(strings.TrimSpace(tx.Category))) < 2 {
		return invalid("category", "слишком короткая категория")
	}
	desc := len([]rune(strings.TrimSpace(tx.Description)))
	if desc < 3 || desc > 100 {
		return invalid("description", "длина описания должна быть от 3 до 100 символов")
	}
	if tx.Date.IsZero() {
		return invalid("date", "дата обязательна")
	}
	if tx.Date.After(time.Now()) {
		return invalid("date", "дата не может быть в будущем")
	}
	if !tx.Type.Valid() {
		return invalid("type", "допустимые значения: income, expense")
	}
	return nil
}

// CheckBudget проверяет бюджет перед сохранением
func CheckBudget(cfg *config.Config, b models.Budget) error {
	if len([]rune(strings.TrimSpace(b.Category))) < 2 {
		return invalid("category", "слишком короткая категория")
	}
	if err := ValidatePositiveNumber("amount", b.Amount, 1e-9, cfg.MaxTransactionAmount); err != nil {
		return err
	}
	if !b.Period.Valid() {
		return invalid("period", "допустимые значения: monthly, weekly, yearly")
	}
	if !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate) {
		return invalid("end_date", "дата окончания раньше даты начала")
	}
	return nil
}

// CheckScenario проверяет сохраняемый сценарий
func CheckScenario(s models.SavedScenario) error {
	if strings.TrimSpace(s.Name) == "" {
		return invalid("name", "название обязательно")
	}
	if !s.Type.Valid() {
		return invalid("type", "неизвестный тип калькулятора %q", s.Type)
	}
	return nil
}
