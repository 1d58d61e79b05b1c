package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/domain/ledger"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// TenantScope - общие параметры всех операций над данными пользователя.
type TenantScope struct {
	Tenant string `path:"tenant" example:"alice" doc:"Имя пользователя (ключ локального хранилища)"`
	Owner  string `header:"X-Owner" example:"alice@example.com" doc:"Идентификатор владельца на сервере"`
}

func (in TenantScope) scope() ledger.Scope {
	return ledger.Scope{Tenant: in.Tenant, Owner: in.Owner}
}

type transactionBody struct {
	ID          string           `json:"id,omitempty" doc:"Если не задан, генерируется UUID"`
	Date        time.Time        `json:"date,omitempty" doc:"Если не задана, используется текущее время"`
	Description string           `json:"description" maxLength:"256"`
	Amount      string           `json:"amount" example:"250.00" doc:"Положительная сумма"`
	Type        finance.TxType   `json:"type"`
	Category    finance.Category `json:"category"`
	Source      finance.Source   `json:"source,omitempty" enum:"Manual,UPI"`
	Notes       string           `json:"notes,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
}

func (b transactionBody) toModel() (finance.Transaction, error) {
	amount, err := decimal.NewFromString(b.Amount)
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("%w: amount %q is not a number", finance.ErrInvalidData, b.Amount)
	}
	return finance.Transaction{
		ID:          b.ID,
		Date:        b.Date,
		Description: b.Description,
		Amount:      amount,
		Type:        b.Type,
		Category:    b.Category,
		Source:      b.Source,
		Notes:       b.Notes,
		Tags:        b.Tags,
	}, nil
}

func newTransactionBody(tx finance.Transaction) transactionBody {
	return transactionBody{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Amount:      tx.Amount.StringFixed(2),
		Type:        tx.Type,
		Category:    tx.Category,
		Source:      tx.Source,
		Notes:       tx.Notes,
		Tags:        tx.Tags,
	}
}

type listTransactionsInput struct {
	TenantScope
	From     string `query:"from" example:"2024-03-01" doc:"Начало периода (включительно), YYYY-MM-DD"`
	To       string `query:"to" example:"2024-04-01" doc:"Конец периода (не включительно), YYYY-MM-DD"`
	Type     string `query:"type" enum:"Income,Expense"`
	Category string `query:"category"`
	Limit    int    `query:"limit" minimum:"0" maximum:"1000"`
	Offset   int    `query:"offset" minimum:"0"`
}

func (in *listTransactionsInput) filter() (finance.TransactionFilter, error) {
	from, err := parseDate(in.From)
	if err != nil {
		return finance.TransactionFilter{}, err
	}
	to, err := parseDate(in.To)
	if err != nil {
		return finance.TransactionFilter{}, err
	}

	f := finance.TransactionFilter{
		From:     from,
		To:       to,
		Type:     finance.TxType(in.Type),
		Category: finance.Category(in.Category),
		Limit:    in.Limit,
		Offset:   in.Offset,
	}
	if f.Type != "" {
		if err := f.Type.Validate(); err != nil {
			return finance.TransactionFilter{}, err
		}
	}
	if f.Category != "" {
		if err := f.Category.Validate(); err != nil {
			return finance.TransactionFilter{}, err
		}
	}
	return f, nil
}

type listTransactionsOutput struct {
	Body struct {
		Transactions []transactionBody `json:"transactions"`
	}
}

type createTransactionInput struct {
	TenantScope
	Body transactionBody
}

type transactionIDInput struct {
	TenantScope
	ID string `path:"id" doc:"ID транзакции"`
}

type updateTransactionInput struct {
	TenantScope
	ID   string `path:"id" doc:"ID транзакции"`
	Body transactionBody
}

type transactionOutput struct {
	Body transactionBody
}

type accountBody struct {
	ID   string              `json:"id,omitempty" readOnly:"true"`
	Name string              `json:"name" minLength:"1"`
	Type finance.AccountType `json:"type" enum:"UPI,Bank"`
	Icon string              `json:"icon,omitempty" example:"GooglePayIcon" doc:"Неизвестная иконка заменяется на BankIcon"`
}

func (b accountBody) toModel() finance.Account {
	acc := finance.Account{ID: b.ID, Name: b.Name, Type: b.Type}
	if kind, ok := finance.ParseIconID(b.Icon); ok {
		acc.Icon = kind.Icon()
	}
	return acc
}

func newAccountBody(acc finance.Account) accountBody {
	kind, _ := finance.IconKindOf(acc.Icon)
	return accountBody{
		ID:   acc.ID,
		Name: acc.Name,
		Type: acc.Type,
		Icon: kind.ID(),
	}
}

type linkAccountInput struct {
	TenantScope
	Body accountBody
}

type accountOutput struct {
	Body accountBody
}

type accountIDInput struct {
	TenantScope
	ID string `path:"id" doc:"ID счета"`
}

type listAccountsOutput struct {
	Body struct {
		Accounts []accountBody `json:"accounts"`
	}
}

type budgetBody struct {
	Category finance.Category `json:"category"`
	Amount   string           `json:"amount" example:"5000.00"`
}

func newBudgetBody(entry finance.BudgetEntry) budgetBody {
	return budgetBody{Category: entry.Category, Amount: entry.Amount.StringFixed(2)}
}

type budgetCategoryInput struct {
	TenantScope
	Category string `path:"category" example:"Food"`
}

type setBudgetInput struct {
	TenantScope
	Category string `path:"category" example:"Food"`
	Body     struct {
		Amount string `json:"amount" example:"5000.00" doc:"Неотрицательный лимит"`
	}
}

type budgetOutput struct {
	Body budgetBody
}

type listBudgetOutput struct {
	Body struct {
		Budget []budgetBody `json:"budget"`
	}
}

type profileBody struct {
	Username string `json:"username,omitempty" readOnly:"true"`
	FullName string `json:"full_name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

type saveProfileInput struct {
	TenantScope
	Body profileBody
}

type profileOutput struct {
	Body profileBody
}

type insightsInput struct {
	TenantScope
	Month string `query:"month" example:"2024-03" doc:"Месяц YYYY-MM, по умолчанию текущий"`
}

type insightsOutput struct {
	Body insightsBody
}

type insightsBody struct {
	Month    string `json:"month" example:"2024-03"`
	Income   string `json:"income"`
	Expense  string `json:"expense"`
	Balance  string `json:"balance"`
	Spending []categorySpendBody  `json:"spending"`
	Budget   []budgetProgressBody `json:"budget"`
}

type categorySpendBody struct {
	Category finance.Category `json:"category"`
	Amount   string           `json:"amount"`
}

type budgetProgressBody struct {
	Category  finance.Category    `json:"category"`
	Limit     string              `json:"limit"`
	Spent     string              `json:"spent"`
	Remaining string              `json:"remaining"`
	Percent   string              `json:"percent" example:"85.50"`
	Status    ledger.BudgetStatus `json:"status" enum:"ok,warning,over"`
}

func newInsightsBody(in ledger.Insights) insightsBody {
	body := insightsBody{
		Month:    in.Month.Format(monthLayout),
		Income:   in.Totals.Income.StringFixed(2),
		Expense:  in.Totals.Expense.StringFixed(2),
		Balance:  in.Totals.Balance.StringFixed(2),
		Spending: make([]categorySpendBody, 0, len(in.Spending)),
		Budget:   make([]budgetProgressBody, 0, len(in.Budget)),
	}
	for _, s := range in.Spending {
		body.Spending = append(body.Spending, categorySpendBody{Category: s.Category, Amount: s.Amount.StringFixed(2)})
	}
	for _, b := range in.Budget {
		body.Budget = append(body.Budget, budgetProgressBody{
			Category:  b.Category,
			Limit:     b.Limit.StringFixed(2),
			Spent:     b.Spent.StringFixed(2),
			Remaining: b.Remaining.StringFixed(2),
			Percent:   b.Percent.StringFixed(2),
			Status:    b.Status,
		})
	}
	return body
}

type statusOutput struct {
	Body struct {
		Status string `json:"status" example:"Ok"`
	}
}

func okStatus() *statusOutput {
	out := &statusOutput{}
	out.Body.Status = "Ok"
	return out
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", finance.ErrInvalidData, s)
	}
	return t, nil
}

func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", finance.ErrInvalidData, s)
	}
	return t, nil
}
