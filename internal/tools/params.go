package tools

import (
	"fmt"
	"math"

	"github.com/cloud-ru/finance-calculator-go/internal/validators"
)

func invalidParam(name string) error {
	return fmt.Errorf("%w: invalid parameter: %s", validators.ErrInvalidInput, name)
}

func floatParam(params map[string]interface{}, name string) (float64, error) {
	switch v := params[name].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, invalidParam(name)
	}
}

// optionalFloatParam возвращает значение по умолчанию, если параметр не передан
func optionalFloatParam(params map[string]interface{}, name string, def float64) (float64, error) {
	if v, ok := params[name]; !ok || v == nil {
		return def, nil
	}
	return floatParam(params, name)
}

// intParam принимает только целые значения: JSON передаёт числа как float64
func intParam(params map[string]interface{}, name string) (int, error) {
	v, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s: ожидается целое число", validators.ErrInvalidInput, name)
	}
	return int(v), nil
}

func optionalIntParam(params map[string]interface{}, name string, def int) (int, error) {
	if v, ok := params[name]; !ok || v == nil {
		return def, nil
	}
	return intParam(params, name)
}
