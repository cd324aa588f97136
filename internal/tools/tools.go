package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloud-ru/finance-calculator-go/internal/calculations"
	"github.com/cloud-ru/finance-calculator-go/internal/config"
	"github.com/cloud-ru/finance-calculator-go/internal/metrics"
	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ToolHandler представляет обработчик калькулятора
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Имена калькуляторов
const (
	ToolEMI          = "emi"
	ToolAmortization = "amortization_schedule"
	ToolSIP          = "sip"
	ToolStepUpSIP    = "step_up_sip"
	ToolFD           = "fd"
	ToolLumpsum      = "lumpsum"
	ToolSWP          = "swp"
	ToolNPS          = "nps"
	ToolCAGR         = "cagr"
)

// AmortizationResult содержит платёж и график погашения
type AmortizationResult struct {
	EMI      float64                          `json:"emi"`
	Schedule []calculations.AmortizationEntry `json:"schedule"`
}

// CAGRResult содержит среднегодовой темп роста в процентах
type CAGRResult struct {
	CAGRPercent float64 `json:"cagr_percent"`
}

// invoke выполняет расчет внутри спана и обновляет метрики
func invoke(ctx context.Context, tracer trace.Tracer, toolName string, attrs []attribute.KeyValue,
	validate func() error, calculate func() (interface{}, error)) (interface{}, error) {
	_, span := tracer.Start(ctx, toolName)
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.CalculationDuration.WithLabelValues(toolName).Observe(time.Since(start).Seconds())
	}()

	span.SetAttributes(attrs...)
	metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

	fail := func(err error, kind string) error {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error", kind+"_error"))
		status := "error"
		if kind == "validation" {
			status = "validation_error"
		}
		metrics.ToolCalls.WithLabelValues(toolName, status).Inc()
		metrics.CalculationErrors.WithLabelValues(toolName, kind).Inc()
		metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
		return err
	}

	if err := validate(); err != nil {
		return nil, fail(fmt.Errorf("неверные параметры: %w", err), "validation")
	}

	result, err := calculate()
	if err != nil {
		kind := "calculation"
		if errors.Is(err, validators.ErrInvalidInput) {
			kind = "validation"
		}
		return nil, fail(fmt.Errorf("ошибка при выполнении расчета: %w", err), kind)
	}

	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "success").Inc()
	return result, nil
}

// EMIHandler обрабатывает запрос на расчет ежемесячного платежа по кредиту
func EMIHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			principal, rate float64
			months          int
		)
		validate := func() (err error) {
			if principal, err = floatParam(params, "principal"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_rate_percent"); err != nil {
				return err
			}
			if months, err = intParam(params, "tenure_months"); err != nil {
				return err
			}
			return firstError(
				validators.CheckPrincipal(cfg, principal),
				validators.CheckRate(cfg, rate),
				validators.CheckMonths(cfg, months),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateEMI(principal, rate, months)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "total_amount", result.TotalAmount); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolEMI, paramAttributes(params), validate, calculate)
	}
}

// AmortizationHandler обрабатывает запрос на построение графика платежей.
// Если emi не передан, платёж рассчитывается по сумме, ставке и сроку.
func AmortizationHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			principal, rate, emi float64
			months               int
		)
		validate := func() (err error) {
			if principal, err = floatParam(params, "principal"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_rate_percent"); err != nil {
				return err
			}
			if months, err = intParam(params, "tenure_months"); err != nil {
				return err
			}
			if emi, err = optionalFloatParam(params, "emi", 0); err != nil {
				return err
			}
			return firstError(
				validators.CheckPrincipal(cfg, principal),
				validators.CheckRate(cfg, rate),
				validators.CheckMonths(cfg, months),
				validators.RequireNonNegative("emi", emi),
			)
		}
		calculate := func() (interface{}, error) {
			if emi == 0 {
				payment, err := calculations.MonthlyPayment(principal, rate, months)
				if err != nil {
					return nil, err
				}
				emi = payment
			}
			schedule, err := calculations.AmortizationSchedule(principal, rate, months, emi)
			if err != nil {
				return nil, err
			}
			return AmortizationResult{EMI: utils.RoundCurrency(emi), Schedule: schedule}, nil
		}
		return invoke(ctx, tracer, ToolAmortization, paramAttributes(params), validate, calculate)
	}
}

// SIPHandler обрабатывает запрос на расчет регулярных инвестиций
func SIPHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			monthly, rate float64
			years         int
		)
		validate := func() (err error) {
			if monthly, err = floatParam(params, "monthly_investment"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_return_percent"); err != nil {
				return err
			}
			if years, err = intParam(params, "years"); err != nil {
				return err
			}
			return firstError(
				validators.CheckContribution(cfg, monthly),
				validators.CheckRate(cfg, rate),
				validators.CheckYears(cfg, years),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateSIP(monthly, rate, years)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "maturity_value", result.MaturityValue); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolSIP, paramAttributes(params), validate, calculate)
	}
}

// StepUpSIPHandler обрабатывает запрос на расчет SIP с ежегодным увеличением взноса
func StepUpSIPHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			monthly, rate, stepUp float64
			years                 int
		)
		validate := func() (err error) {
			if monthly, err = floatParam(params, "monthly_investment"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_return_percent"); err != nil {
				return err
			}
			if years, err = intParam(params, "years"); err != nil {
				return err
			}
			if stepUp, err = floatParam(params, "step_up_percent"); err != nil {
				return err
			}
			return firstError(
				validators.CheckContribution(cfg, monthly),
				validators.CheckRate(cfg, rate),
				validators.CheckYears(cfg, years),
				validators.CheckStepUp(stepUp),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateStepUpSIP(monthly, rate, years, stepUp)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "maturity_value", result.MaturityValue); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolStepUpSIP, paramAttributes(params), validate, calculate)
	}
}

// FDHandler обрабатывает запрос на расчет срочного вклада
func FDHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			principal, rate     float64
			months, compounding int
		)
		validate := func() (err error) {
			if principal, err = floatParam(params, "principal"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_rate_percent"); err != nil {
				return err
			}
			if months, err = intParam(params, "tenure_months"); err != nil {
				return err
			}
			if compounding, err = optionalIntParam(params, "compounding", int(calculations.DefaultCompounding)); err != nil {
				return err
			}
			return firstError(
				validators.CheckPrincipal(cfg, principal),
				validators.CheckFDRate(cfg, rate),
				validators.CheckFDMonths(cfg, months),
				validators.CheckCompounding(compounding),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateFD(principal, rate, months, calculations.CompoundingFrequency(compounding))
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "maturity_value", result.MaturityValue); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolFD, paramAttributes(params), validate, calculate)
	}
}

// LumpsumHandler обрабатывает запрос на расчет разового вложения
func LumpsumHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var principal, rate, years float64
		validate := func() (err error) {
			if principal, err = floatParam(params, "principal"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_return_percent"); err != nil {
				return err
			}
			if years, err = floatParam(params, "years"); err != nil {
				return err
			}
			return firstError(
				validators.CheckPrincipal(cfg, principal),
				validators.CheckRate(cfg, rate),
				validators.CheckFractionalYears(cfg, years),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateLumpsum(principal, rate, years)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "maturity_value", result.MaturityValue); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolLumpsum, paramAttributes(params), validate, calculate)
	}
}

// SWPHandler обрабатывает запрос на расчет плана систематического снятия
func SWPHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			corpus, withdrawal, rate float64
			years                    int
		)
		validate := func() (err error) {
			if corpus, err = floatParam(params, "corpus"); err != nil {
				return err
			}
			if withdrawal, err = floatParam(params, "monthly_withdrawal"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_return_percent"); err != nil {
				return err
			}
			if years, err = intParam(params, "years"); err != nil {
				return err
			}
			return firstError(
				validators.CheckCorpus(cfg, corpus),
				validators.CheckWithdrawal(cfg, withdrawal),
				validators.CheckRate(cfg, rate),
				validators.CheckYears(cfg, years),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateSWP(corpus, withdrawal, rate, years)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "remaining_corpus", result.RemainingCorpus); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolSWP, paramAttributes(params), validate, calculate)
	}
}

// NPSHandler обрабатывает запрос на расчет пенсионного капитала
func NPSHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var (
			monthly, rate, annuityRate float64
			years                      int
		)
		validate := func() (err error) {
			if monthly, err = floatParam(params, "monthly_contribution"); err != nil {
				return err
			}
			if rate, err = floatParam(params, "annual_return_percent"); err != nil {
				return err
			}
			if years, err = intParam(params, "years"); err != nil {
				return err
			}
			if annuityRate, err = optionalFloatParam(params, "annuity_rate_percent", calculations.DefaultAnnuityRatePercent); err != nil {
				return err
			}
			return firstError(
				validators.CheckContribution(cfg, monthly),
				validators.CheckRate(cfg, rate),
				validators.CheckYears(cfg, years),
				validators.CheckAnnuityRate(cfg, annuityRate),
			)
		}
		calculate := func() (interface{}, error) {
			result, err := calculations.CalculateNPS(monthly, rate, years, annuityRate)
			if err != nil {
				return nil, err
			}
			if err := validators.CheckBalance(cfg, "retirement_corpus", result.RetirementCorpus); err != nil {
				return nil, err
			}
			return result, nil
		}
		return invoke(ctx, tracer, ToolNPS, paramAttributes(params), validate, calculate)
	}
}

// CAGRHandler обрабатывает запрос на расчет среднегодового темпа роста
func CAGRHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		var initial, final, years float64
		validate := func() (err error) {
			if initial, err = floatParam(params, "initial_value"); err != nil {
				return err
			}
			if final, err = floatParam(params, "final_value"); err != nil {
				return err
			}
			if years, err = floatParam(params, "years"); err != nil {
				return err
			}
			return firstError(
				validators.CheckPrincipal(cfg, initial),
				validators.CheckBalance(cfg, "final_value", final),
				validators.CheckFractionalYears(cfg, years),
			)
		}
		calculate := func() (interface{}, error) {
			cagr, err := calculations.CalculateCAGR(initial, final, years)
			if err != nil {
				return nil, err
			}
			return CAGRResult{CAGRPercent: cagr}, nil
		}
		return invoke(ctx, tracer, ToolCAGR, paramAttributes(params), validate, calculate)
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// paramAttributes переносит числовые параметры запроса в атрибуты спана
func paramAttributes(params map[string]interface{}) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(params))
	for name := range params {
		if v, err := floatParam(params, name); err == nil {
			attrs = append(attrs, attribute.Float64(name, v))
		}
	}
	return attrs
}
