package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloud-ru/finance-calculator-go/internal/models"
	"github.com/cloud-ru/finance-calculator-go/pkg/utils"
	"github.com/google/uuid"
)

// BundleVersion версия формата экспорта
const BundleVersion = "1.0"

// Bundle содержит все данные пользователя для экспорта и импорта.
// Отсутствующая в импорте коллекция (nil) не перезаписывается.
type Bundle struct {
	Transactions []models.Transaction   `json:"transactions"`
	Budgets      []models.Budget        `json:"budgets"`
	Scenarios    []models.SavedScenario `json:"scenarios"`
	Settings     map[string]interface{} `json:"settings"`
	ExportDate   time.Time              `json:"export_date"`
	Version      string                 `json:"version"`
}

// Repository предоставляет типизированный доступ к коллекциям поверх Store
type Repository struct {
	store Store
	now   func() time.Time
	mu    sync.Mutex
}

// NewRepository создаёт репозиторий поверх хранилища
func NewRepository(store Store) *Repository {
	return &Repository{store: store, now: time.Now}
}

func loadList[T any](ctx context.Context, store Store, key string) ([]T, error) {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	items := []T{}
	if !ok || len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

func saveJSON(ctx context.Context, store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// upsert заменяет элемент с тем же id или добавляет новый в конец
func upsert[T any](items []T, item T, id func(T) string) []T {
	for i := range items {
		if id(items[i]) == id(item) {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, target string, id func(T) string) ([]T, bool) {
	out := items[:0]
	found := false
	for _, item := range items {
		if id(item) == target {
			found = true
			continue
		}
		out = append(out, item)
	}
	return out, found
}

func find[T any](items []T, target string, id func(T) string) (T, bool) {
	for _, item := range items {
		if id(item) == target {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func transactionID(t models.Transaction) string { return t.ID }
func budgetID(b models.Budget) string           { return b.ID }
func scenarioID(s models.SavedScenario) string  { return s.ID }

// stamp выдаёт id новой записи и проставляет время изменения
func (r *Repository) stamp(id *string, created, updated *time.Time) {
	now := r.now().UTC()
	if *id == "" {
		*id = uuid.NewString()
	}
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// ListTransactions возвращает все операции в порядке добавления
func (r *Repository) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return loadList[models.Transaction](ctx, r.store, KeyTransactions)
}

// FilterTransactions возвращает операции, подходящие под фильтр, в порядке добавления
func (r *Repository) FilterTransactions(ctx context.Context, filter models.TransactionFilter) ([]models.Transaction, error) {
	items, err := r.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, tx := range items {
		if filter.Match(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Summary считает доходы, расходы и использование бюджетов.
// Нулевой month означает итоги за всё время.
func (r *Repository) Summary(ctx context.Context, month time.Time) (models.Summary, error) {
	txs, err := r.FilterTransactions(ctx, models.TransactionFilter{Month: month})
	if err != nil {
		return models.Summary{}, err
	}
	budgets, err := loadList[models.Budget](ctx, r.store, KeyBudgets)
	if err != nil {
		return models.Summary{}, err
	}

	var summary models.Summary
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			summary.Income = utils.AddExact(summary.Income, tx.Amount)
		case models.TransactionExpense:
			summary.Expense = utils.AddExact(summary.Expense, tx.Amount)
		}
	}
	for _, b := range budgets {
		summary.TotalBudget = utils.AddExact(summary.TotalBudget, b.Amount)
	}
	summary.Balance = utils.SubExact(summary.Income, summary.Expense)
	summary.BudgetUsedPercent = utils.Round2(utils.Percentage(summary.Expense, summary.TotalBudget))
	summary.Transactions = len(txs)
	return summary, nil
}

// SaveTransaction добавляет операцию или заменяет существующую с тем же id
func (r *Repository) SaveTransaction(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.Transaction](ctx, r.store, KeyTransactions)
	if err != nil {
		return models.Transaction{}, err
	}
	if prev, ok := find(items, tx.ID, transactionID); ok && tx.ID != "" && !prev.CreatedAt.IsZero() {
		tx.CreatedAt = prev.CreatedAt
	}
	r.stamp(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)

	if err := saveJSON(ctx, r.store, KeyTransactions, upsert(items, tx, transactionID)); err != nil {
		return models.Transaction{}, err
	}
	return tx, nil
}

// DeleteTransaction удаляет операцию по id
func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.Transaction](ctx, r.store, KeyTransactions)
	if err != nil {
		return err
	}
	items, found := remove(items, id, transactionID)
	if !found {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return saveJSON(ctx, r.store, KeyTransactions, items)
}

// ListBudgets возвращает все бюджеты
func (r *Repository) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	return loadList[models.Budget](ctx, r.store, KeyBudgets)
}

// SaveBudget добавляет бюджет или заменяет существующий с тем же id
func (r *Repository) SaveBudget(ctx context.Context, b models.Budget) (models.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.Budget](ctx, r.store, KeyBudgets)
	if err != nil {
		return models.Budget{}, err
	}
	if prev, ok := find(items, b.ID, budgetID); ok && b.ID != "" && !prev.CreatedAt.IsZero() {
		b.CreatedAt = prev.CreatedAt
	}
	r.stamp(&b.ID, &b.CreatedAt, &b.UpdatedAt)

	if err := saveJSON(ctx, r.store, KeyBudgets, upsert(items, b, budgetID)); err != nil {
		return models.Budget{}, err
	}
	return b, nil
}

// DeleteBudget удаляет бюджет по id
func (r *Repository) DeleteBudget(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.Budget](ctx, r.store, KeyBudgets)
	if err != nil {
		return err
	}
	items, found := remove(items, id, budgetID)
	if !found {
		return fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	return saveJSON(ctx, r.store, KeyBudgets, items)
}

// ListScenarios возвращает сохранённые сценарии
func (r *Repository) ListScenarios(ctx context.Context) ([]models.SavedScenario, error) {
	return loadList[models.SavedScenario](ctx, r.store, KeyScenarios)
}

// SaveScenario добавляет сценарий или заменяет существующий с тем же id
func (r *Repository) SaveScenario(ctx context.Context, s models.SavedScenario) (models.SavedScenario, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.SavedScenario](ctx, r.store, KeyScenarios)
	if err != nil {
		return models.SavedScenario{}, err
	}
	if prev, ok := find(items, s.ID, scenarioID); ok && s.ID != "" && !prev.CreatedAt.IsZero() {
		s.CreatedAt = prev.CreatedAt
	}
	r.stamp(&s.ID, &s.CreatedAt, &s.UpdatedAt)

	if err := saveJSON(ctx, r.store, KeyScenarios, upsert(items, s, scenarioID)); err != nil {
		return models.SavedScenario{}, err
	}
	return s, nil
}

// DeleteScenario удаляет сценарий по id
func (r *Repository) DeleteScenario(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := loadList[models.SavedScenario](ctx, r.store, KeyScenarios)
	if err != nil {
		return err
	}
	items, found := remove(items, id, scenarioID)
	if !found {
		return fmt.Errorf("scenario %s: %w", id, ErrNotFound)
	}
	return saveJSON(ctx, r.store, KeyScenarios, items)
}

// Settings возвращает пользовательские настройки
func (r *Repository) Settings(ctx context.Context) (map[string]interface{}, error) {
	data, ok, err := r.store.Get(ctx, KeySettings)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", KeySettings, err)
	}
	settings := map[string]interface{}{}
	if !ok || len(data) == 0 {
		return settings, nil
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", KeySettings, err)
	}
	return settings, nil
}

// SaveSetting сохраняет одно значение настроек
func (r *Repository) SaveSetting(ctx context.Context, key string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	settings, err := r.Settings(ctx)
	if err != nil {
		return err
	}
	settings[key] = value
	return saveJSON(ctx, r.store, KeySettings, settings)
}

// Export собирает все коллекции в один документ
func (r *Repository) Export(ctx context.Context) (Bundle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		bundle = Bundle{ExportDate: r.now().UTC(), Version: BundleVersion}
		err    error
	)
	if bundle.Transactions, err = loadList[models.Transaction](ctx, r.store, KeyTransactions); err != nil {
		return Bundle{}, err
	}
	if bundle.Budgets, err = loadList[models.Budget](ctx, r.store, KeyBudgets); err != nil {
		return Bundle{}, err
	}
	if bundle.Scenarios, err = loadList[models.SavedScenario](ctx, r.store, KeyScenarios); err != nil {
		return Bundle{}, err
	}
	if bundle.Settings, err = r.Settings(ctx); err != nil {
		return Bundle{}, err
	}
	return bundle, nil
}

// Import перезаписывает коллекции, присутствующие в документе
func (r *Repository) Import(ctx context.Context, bundle Bundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bundle.Transactions != nil {
		if err := saveJSON(ctx, r.store, KeyTransactions, bundle.Transactions); err != nil {
			return err
		}
	}
	if bundle.Budgets != nil {
		if err := saveJSON(ctx, r.store, KeyBudgets, bundle.Budgets); err != nil {
			return err
		}
	}
	if bundle.Scenarios != nil {
		if err := saveJSON(ctx, r.store, KeyScenarios, bundle.Scenarios); err != nil {
			return err
		}
	}
	if bundle.Settings != nil {
		if err := saveJSON(ctx, r.store, KeySettings, bundle.Settings); err != nil {
			return err
		}
	}
	return nil
}

// ClearAll удаляет все коллекции
func (r *Repository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range AllKeys {
		if err := r.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
