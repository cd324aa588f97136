package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов калькуляторов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов калькуляторов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// CalculationDuration время выполнения расчета
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculation_duration_seconds",
			Help:    "Время выполнения расчета",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"tool_name"},
	)

	// APICalls счетчик HTTP запросов
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы HTTP API",
		},
		[]string{"service", "endpoint", "status"},
	)

	// StorageOperations счетчик операций с хранилищем
	StorageOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Операции с хранилищем",
		},
		[]string{"backend", "operation", "status"},
	)
)

// Status возвращает метку статуса для счетчиков
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
