package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"smartmoney/internal/domain/finance"
)

// Scope определяет, чьи данные читаются и пишутся.
// Tenant - текущее имя пользователя (ключ локального хранилища),
// Owner - постоянный идентификатор на сервере (e-mail).
type Scope struct {
	Tenant string
	Owner  string
}

// Totals - итоги по всем транзакциям.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type CategorySpend struct {
	Category finance.Category `json:"category"`
	Amount   decimal.Decimal  `json:"amount"`
}

type BudgetStatus string

const (
	BudgetOK      BudgetStatus = "ok"
	BudgetWarning BudgetStatus = "warning"
	BudgetOver    BudgetStatus = "over"
)

// BudgetProgress - расход категории за месяц относительно лимита.
type BudgetProgress struct {
	Category  finance.Category `json:"category"`
	Limit     decimal.Decimal  `json:"limit"`
	Spent     decimal.Decimal  `json:"spent"`
	Remaining decimal.Decimal  `json:"remaining"`
	Percent   decimal.Decimal  `json:"percent"`
	Status    BudgetStatus     `json:"status"`
}

type Insights struct {
	Month    time.Time        `json:"month"`
	Totals   Totals           `json:"totals"`
	Spending []CategorySpend  `json:"spending"`
	Budget   []BudgetProgress `json:"budget"`
}
