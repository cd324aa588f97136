package models

import "time"

// TransactionType тип операции
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid сообщает, является ли тип допустимым
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction доход или расход пользователя
type Transaction struct {
	ID            string          `json:"id"`
	Amount        float64         `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	Type          TransactionType `json:"type"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tags          []string        `json:"tags,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BudgetPeriod период бюджета
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid сообщает, является ли период допустимым
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget лимит расходов по категории
type Budget struct {
	ID        string       `json:"id"`
	Category  string       `json:"category"`
	Amount    float64      `json:"amount"`
	Spent     float64      `json:"spent"`
	Period    BudgetPeriod `json:"period"`
	StartDate time.Time    `json:"start_date"`
	EndDate   time.Time    `json:"end_date"`
	Alerts    bool         `json:"alerts"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Remaining остаток бюджета (может быть отрицательным при перерасходе)
func (b Budget) Remaining() float64 {
	return b.Amount - b.Spent
}

// TransactionFilter отбирает операции по типу и календарному месяцу.
// Пустой Type и нулевой Month означают отсутствие ограничения.
type TransactionFilter struct {
	Type  TransactionType
	Month time.Time
}

// Match сообщает, подходит ли операция под фильтр
func (f TransactionFilter) Match(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if !f.Month.IsZero() {
		d := tx.Date.In(f.Month.Location())
		if d.Year() != f.Month.Year() || d.Month() != f.Month.Month() {
			return false
		}
	}
	return true
}

// Summary итоги доходов и расходов за период
type Summary struct {
	Income            float64 `json:"income"`
	Expense           float64 `json:"expense"`
	Balance           float64 `json:"balance"`
	TotalBudget       float64 `json:"total_budget"`
	BudgetUsedPercent float64 `json:"budget_used_percent"`
	Transactions      int     `json:"transactions"`
}
