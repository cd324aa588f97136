package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloud-ru/finance-calculator-go/internal/models"
	"github.com/cloud-ru/finance-calculator-go/internal/storage"
	"github.com/cloud-ru/finance-calculator-go/internal/tools"
	"github.com/cloud-ru/finance-calculator-go/internal/validators"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type calculatorsResponse struct {
	Tools    []string                                         `json:"tools"`
	Defaults map[models.CalculatorType]map[string]interface{} `json:"defaults"`
}

type calculationResponse struct {
	Tool    string            `json:"tool"`
	Result  interface{}       `json:"result"`
	Display map[string]string `json:"display,omitempty"`
}

type scenarioRequest struct {
	ID     string                 `json:"id"`
	Name   string                 `json:"name"`
	Type   models.CalculatorType  `json:"type"`
	Inputs map[string]interface{} `json:"inputs"`
	Notes  string                 `json:"notes"`
}

type budgetView struct {
	models.Budget
	Remaining   float64 `json:"remaining"`
	UsedPercent float64 `json:"used_percent"`
}

func (s *Server) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, calculatorsResponse{
		Tools:    tools.Names(s.tools),
		Defaults: tools.DefaultInputs(),
	})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")
	handler, ok := s.tools[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown calculator: %s", name)})
		return
	}

	var params map[string]interface{}
	if err := decodeJSON(w, r, &params); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		s.writeCalculationError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, calculationResponse{Tool: name, Result: result, Display: displayValues(result)})
}

// writeCalculationError: ошибки расчета, не связанные с валидацией, возвращаются как 422
func (s *Server) writeCalculationError(w http.ResponseWriter, tool string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		status = http.StatusUnprocessableEntity
	}
	s.logger.Debug("расчет завершился ошибкой", zap.String("tool", tool), zap.Error(err))
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.repo.ListScenarios(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scenarios)
}

// handleSaveScenario пересчитывает результат по входным данным и сохраняет сценарий
func (s *Server) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		req.Name = fmt.Sprintf("%s - %s", strings.ToUpper(string(req.Type)), s.now().Format("2006-01-02"))
	}

	scenario := models.SavedScenario{
		ID:     req.ID,
		Name:   req.Name,
		Type:   req.Type,
		Inputs: req.Inputs,
		Notes:  req.Notes,
	}
	if err := validators.CheckScenario(scenario); err != nil {
		s.writeError(w, err)
		return
	}

	toolName := tools.ToolName(req.Type)
	handler, ok := s.tools[toolName]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: fmt.Sprintf("unknown calculator: %s", toolName)})
		return
	}
	result, err := handler(r.Context(), req.Inputs)
	if err != nil {
		s.writeCalculationError(w, toolName, err)
		return
	}
	scenario.Results = result

	saved, err := s.repo.SaveScenario(r.Context(), scenario)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, createdOrOK(req.ID), saved)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	s.writeDelete(w, s.repo.DeleteScenario(r.Context(), chi.URLParam(r, "id")))
}

// handleListTransactions поддерживает фильтры ?type=income|expense и ?month=2006-01
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := transactionFilter(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	transactions, err := s.repo.FilterTransactions(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// handleSummary возвращает итоги за месяц ?month=2006-01 или за всё время
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonth(r.URL.Query().Get("month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	summary, err := s.repo.Summary(r.Context(), month)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func transactionFilter(r *http.Request) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{Type: models.TransactionType(q.Get("type"))}
	if filter.Type != "" && !filter.Type.Valid() {
		return filter, fmt.Errorf("%w: type: допустимые значения: income, expense", validators.ErrInvalidInput)
	}
	month, err := parseMonth(q.Get("month"))
	if err != nil {
		return filter, err
	}
	filter.Month = month
	return filter, nil
}

func parseMonth(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	month, err := time.Parse("2006-01", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month: ожидается формат ГГГГ-ММ", validators.ErrInvalidInput)
	}
	return month, nil
}

func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	var tx models.Transaction
	if err := decodeJSON(w, r, &tx); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validators.CheckTransaction(s.cfg, tx); err != nil {
		s.writeError(w, err)
		return
	}

	id := tx.ID
	saved, err := s.repo.SaveTransaction(r.Context(), tx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, createdOrOK(id), saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.writeDelete(w, s.repo.DeleteTransaction(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.repo.ListBudgets(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	views := make([]budgetView, 0, len(budgets))
	for _, b := range budgets {
		views = append(views, budgetView{
			Budget:      b,
			Remaining:   b.Remaining(),
			UsedPercent: utils.Round2(utils.Percentage(b.Spent, b.Amount)),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleSaveBudget(w http.ResponseWriter, r *http.Request) {
	var b models.Budget
	if err := decodeJSON(w, r, &b); err != nil {
		s.writeError(w, err)
		return
	}
	if err := validators.CheckBudget(s.cfg, b); err != nil {
		s.writeError(w, err)
		return
	}

	id := b.ID
	saved, err := s.repo.SaveBudget(r.Context(), b)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, createdOrOK(id), saved)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	s.writeDelete(w, s.repo.DeleteBudget(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.repo.Settings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleSaveSetting(w http.ResponseWriter, r *http.Request) {
	var value interface{}
	if err := decodeJSON(w, r, &value); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.repo.SaveSetting(r.Context(), chi.URLParam(r, "key"), value); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.repo.Export(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="finance-export-%s.json"`, bundle.ExportDate.Format("20060102-150405")))
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var bundle storage.Bundle
	if err := decodeJSON(w, r, &bundle); err != nil {
		s.writeError(w, err)
		return
	}
	if bundle.Version != "" && bundle.Version != storage.BundleVersion {
		s.writeError(w, fmt.Errorf("%w: version: неподдерживаемая версия %q", validators.ErrInvalidInput, bundle.Version))
		return
	}
	if err := s.repo.Import(r.Context(), bundle); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("данные импортированы",
		zap.Int("transactions", len(bundle.Transactions)),
		zap.Int("budgets", len(bundle.Budgets)),
		zap.Int("scenarios", len(bundle.Scenarios)),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.ClearAll(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("все данные удалены")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeDelete(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// createdOrOK возвращает 201 для новой записи и 200 для обновления
func createdOrOK(requestedID string) int {
	if requestedID == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
