package tools

import (
	"sort"

	"github.com/cloud-ru/finance-calculator-go/internal/config"
	"github.com/cloud-ru/finance-calculator-go/internal/models"
	"go.opentelemetry.io/otel/trace"
)

// Registry возвращает обработчики всех калькуляторов по имени
func Registry(cfg *config.Config, tracer trace.Tracer) map[string]ToolHandler {
	return map[string]ToolHandler{
		ToolEMI:          EMIHandler(cfg, tracer),
		ToolAmortization: AmortizationHandler(cfg, tracer),
		ToolSIP:          SIPHandler(cfg, tracer),
		ToolStepUpSIP:    StepUpSIPHandler(cfg, tracer),
		ToolFD:           FDHandler(cfg, tracer),
		ToolLumpsum:      LumpsumHandler(cfg, tracer),
		ToolSWP:          SWPHandler(cfg, tracer),
		ToolNPS:          NPSHandler(cfg, tracer),
		ToolCAGR:         CAGRHandler(cfg, tracer),
	}
}

// Names возвращает отсортированный список калькуляторов
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultInputs возвращает значения по умолчанию для форм калькуляторов
func DefaultInputs() map[models.CalculatorType]map[string]interface{} {
	return map[models.CalculatorType]map[string]interface{}{
		models.CalculatorEMI: {
			"principal":           1000000.0,
			"annual_rate_percent": 8.5,
			"tenure_months":       240.0,
		},
		models.CalculatorSIP: {
			"monthly_investment":    5000.0,
			"annual_return_percent": 12.0,
			"years":                 10.0,
		},
		models.CalculatorFD: {
			"principal":           100000.0,
			"annual_rate_percent": 6.5,
			"tenure_months":       12.0,
			"compounding":         4.0,
		},
		models.CalculatorLumpsum: {
			"principal":             100000.0,
			"annual_return_percent": 12.0,
			"years":                 5.0,
		},
		models.CalculatorSWP: {
			"corpus":                1000000.0,
			"monthly_withdrawal":    8000.0,
			"annual_return_percent": 8.0,
			"years":                 15.0,
		},
		models.CalculatorNPS: {
			"monthly_contribution":  5000.0,
			"annual_return_percent": 10.0,
			"years":                 30.0,
			"annuity_rate_percent":  6.0,
		},
	}
}

// ToolName возвращает имя обработчика для типа сохраняемого сценария
func ToolName(t models.CalculatorType) string {
	return string(t)
}
