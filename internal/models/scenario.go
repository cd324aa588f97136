package models

import "time"

// CalculatorType тип калькулятора, для которого сохранён сценарий
type CalculatorType string

const (
	CalculatorEMI     CalculatorType = "emi"
	CalculatorSIP     CalculatorType = "sip"
	CalculatorFD      CalculatorType = "fd"
	CalculatorLumpsum CalculatorType = "lumpsum"
	CalculatorSWP     CalculatorType = "swp"
	CalculatorNPS     CalculatorType = "nps"
)

// CalculatorTypes все типы калькуляторов в порядке отображения
var CalculatorTypes = []CalculatorType{
	CalculatorEMI,
	CalculatorSIP,
	CalculatorFD,
	CalculatorLumpsum,
	CalculatorSWP,
	CalculatorNPS,
}

// Valid сообщает, известен ли тип калькулятора
func (c CalculatorType) Valid() bool {
	for _, known := range CalculatorTypes {
		if c == known {
			return true
		}
	}
	return false
}

// SavedScenario сохранённые входные данные и результат расчёта
type SavedScenario struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Type      CalculatorType         `json:"type"`
	Inputs    map[string]interface{} `json:"inputs"`
	Results   interface{}            `json:"results"`
	Notes     string                 `json:"notes,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}
