package calculations

import (
	"errors"
	"fmt"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
)

var (
	// ErrInvalidInput возвращается при недопустимых входных данных
	ErrInvalidInput = validators.ErrInvalidInput

	// ErrOverflow возвращается, когда результат не помещается в float64
	ErrOverflow = errors.New("численное переполнение")
)

// monthlyRate переводит годовую ставку в процентах в месячную долю
func monthlyRate(annualPercent float64) float64 {
	return annualPercent / 1200.0
}

func checkFinite(name string, values ...float64) error {
	for _, v := range values {
		if !utils.IsFinite(v) {
			return fmt.Errorf("%w: %s: уменьшите сумму, ставку или срок", ErrOverflow, name)
		}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
