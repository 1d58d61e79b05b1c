package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"smartmoney/internal/domain/finance"
)

// warningPercent - порог, после которого бюджет считается почти исчерпанным.
var warningPercent = decimal.NewFromInt(80)

var hundred = decimal.NewFromInt(100)

// MonthStart возвращает начало месяца t в UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Insights считает итоги по всем транзакциям, расходы по категориям за месяц
// и исполнение бюджета за тот же месяц.
func (s *Service) Insights(ctx context.Context, scope Scope, month time.Time) (Insights, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return Insights{}, err
	}

	txs, err := st.ListTransactions(ctx, finance.TransactionFilter{})
	if err != nil {
		return Insights{}, fmt.Errorf("list transactions: %w", err)
	}
	budget, err := st.ListBudget(ctx)
	if err != nil {
		return Insights{}, fmt.Errorf("list budget: %w", err)
	}

	if month.IsZero() {
		month = s.now()
	}
	return Summarize(txs, budget, month), nil
}

// Summarize - расчет Insights без обращения к хранилищу.
func Summarize(txs []finance.Transaction, budget []finance.BudgetEntry, month time.Time) Insights {
	from := MonthStart(month)
	to := from.AddDate(0, 1, 0)

	var totals Totals
	spent := make(map[finance.Category]decimal.Decimal)
	for _, tx := range txs {
		switch tx.Type {
		case finance.TxTypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case finance.TxTypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
			if !tx.Date.Before(from) && tx.Date.Before(to) {
				spent[tx.Category] = spent[tx.Category].Add(tx.Amount)
			}
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)

	spending := make([]CategorySpend, 0, len(spent))
	for cat, amount := range spent {
		spending = append(spending, CategorySpend{Category: cat, Amount: amount})
	}
	sort.Slice(spending, func(i, j int) bool {
		if c := spending[i].Amount.Cmp(spending[j].Amount); c != 0 {
			return c > 0
		}
		return spending[i].Category < spending[j].Category
	})

	progress := make([]BudgetProgress, 0, len(budget))
	for _, entry := range budget {
		progress = append(progress, budgetProgress(entry, spent[entry.Category]))
	}

	return Insights{
		Month:    from,
		Totals:   totals,
		Spending: spending,
		Budget:   progress,
	}
}

func budgetProgress(entry finance.BudgetEntry, spent decimal.Decimal) BudgetProgress {
	p := BudgetProgress{
		Category:  entry.Category,
		Limit:     entry.Amount,
		Spent:     spent,
		Remaining: entry.Amount.Sub(spent),
		Percent:   decimal.Zero,
		Status:    BudgetOK,
	}
	if entry.Amount.IsPositive() {
		p.Percent = spent.Div(entry.Amount).Mul(hundred).Round(2)
	}

	switch {
	case spent.GreaterThan(entry.Amount):
		p.Status = BudgetOver
	case p.Percent.GreaterThan(warningPercent):
		p.Status = BudgetWarning
	}
	return p
}
