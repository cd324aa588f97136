package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cloud-ru/finance-calculator-go/internal/config"
	"github.com/cloud-ru/finance-calculator-go/internal/metrics"
	"github.com/cloud-ru/finance-calculator-go/internal/storage"
	"github.com/cloud-ru/finance-calculator-go/internal/tools"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// Server обслуживает HTTP API калькуляторов и пользовательских данных
type Server struct {
	cfg    *config.Config
	tools  map[string]tools.ToolHandler
	repo   *storage.Repository
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// New создаёт сервер
func New(cfg *config.Config, registry map[string]tools.ToolHandler, store storage.Store, logger *zap.Logger) *Server {
	return &Server{
		cfg:    cfg,
		tools:  registry,
		repo:   storage.NewRepository(store),
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Routes возвращает маршрутизатор со всеми обработчиками
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calculators", s.handleListCalculators)
		r.Post("/calculators/{tool}", s.handleCalculate)

		r.Get("/scenarios", s.handleListScenarios)
		r.Post("/scenarios", s.handleSaveScenario)
		r.Delete("/scenarios/{id}", s.handleDeleteScenario)

		r.Get("/transactions", s.handleListTransactions)
		r.Get("/transactions/summary", s.handleSummary)
		r.Post("/transactions", s.handleSaveTransaction)
		r.Delete("/transactions/{id}", s.handleDeleteTransaction)

		r.Get("/budgets", s.handleListBudgets)
		r.Post("/budgets", s.handleSaveBudget)
		r.Delete("/budgets/{id}", s.handleDeleteBudget)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings/{key}", s.handleSaveSetting)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Delete("/data", s.handleClearAll)
	})

	return r
}

// requestLogger пишет каждый запрос в лог и считает его в метриках
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.APICalls.WithLabelValues("http", route, strconv.Itoa(status)).Inc()

		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(storage.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("хранилище недоступно", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
