package ledger

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smartmoney/internal/domain/finance"
)

type seedExpense struct {
	descriptions []string
	min, spread  int64
}

var seedExpenses = map[finance.Category]seedExpense{
	finance.CategoryFood:          {[]string{"Groceries from Blinkit", "Zomato Order", "Swiggy Dinner", "Cafe Coffee Day"}, 100, 800},
	finance.CategoryShopping:      {[]string{"Myntra Shopping", "Amazon Purchase", "Flipkart Order"}, 500, 3000},
	finance.CategoryTransport:     {[]string{"Uber Ride", "Ola Cab", "Metro Card Recharge"}, 50, 400},
	finance.CategoryBills:         {[]string{"Electricity Bill", "Wi-Fi Bill", "Phone Recharge"}, 300, 1500},
	finance.CategoryEntertainment: {[]string{"Netflix Subscription", "Movie Tickets", "Spotify Premium"}, 200, 600},
	finance.CategoryHealth:        {[]string{"Pharmacy", "Doctor Visit"}, 150, 1000},
	finance.CategoryOther:         {[]string{"Miscellaneous Expense"}, 50, 500},
}

var seedCategories = []finance.Category{
	finance.CategoryFood, finance.CategoryShopping, finance.CategoryTransport,
	finance.CategoryBills, finance.CategoryEntertainment, finance.CategoryHealth,
	finance.CategoryOther,
}

// DemoSnapshot генерирует демонстрационные данные: зарплату за текущий месяц,
// расходы за последние 30 дней, два счета и бюджет. Одинаковый seed дает
// одинаковые суммы и категории, идентификаторы всегда новые.
func DemoSnapshot(now time.Time, seed uint64) *finance.Snapshot {
	rnd := rand.New(rand.NewPCG(seed, seed^0x5eed))
	now = now.UTC()

	snap := &finance.Snapshot{
		Accounts: []finance.StoredAccount{
			{ID: uuid.NewString(), Name: "Google Pay", Type: finance.AccountTypeUPI, Icon: finance.IconGooglePay.ID()},
			{ID: uuid.NewString(), Name: "HDFC Bank", Type: finance.AccountTypeBank, Icon: finance.IconBank.ID()},
		},
		Budget: []finance.BudgetEntry{
			{Category: finance.CategoryFood, Amount: decimal.NewFromInt(15000)},
			{Category: finance.CategoryShopping, Amount: decimal.NewFromInt(20000)},
			{Category: finance.CategoryTransport, Amount: decimal.NewFromInt(5000)},
			{Category: finance.CategoryBills, Amount: decimal.NewFromInt(10000)},
			{Category: finance.CategoryEntertainment, Amount: decimal.NewFromInt(7000)},
		},
	}

	snap.Transactions = append(snap.Transactions, finance.Transaction{
		ID:          uuid.NewString(),
		Date:        MonthStart(now),
		Description: "Monthly Salary",
		Amount:      decimal.NewFromInt(85000),
		Type:        finance.TxTypeIncome,
		Category:    finance.CategorySalary,
		Source:      finance.SourceManual,
	})

	for day := 0; day < 30; day++ {
		date := now.AddDate(0, 0, -day)
		for n := rnd.IntN(3) + 1; n > 0; n-- {
			cat := seedCategories[rnd.IntN(len(seedCategories))]
			exp := seedExpenses[cat]

			source := finance.SourceManual
			if rnd.IntN(2) == 1 {
				source = finance.SourceUPI
			}

			snap.Transactions = append(snap.Transactions, finance.Transaction{
				ID:          uuid.NewString(),
				Date:        date,
				Description: exp.descriptions[rnd.IntN(len(exp.descriptions))],
				Amount:      decimal.NewFromInt(exp.min + rnd.Int64N(exp.spread)),
				Type:        finance.TxTypeExpense,
				Category:    cat,
				Source:      source,
			})
		}
	}
	return snap
}

// Seed заменяет все данные пользователя демонстрационными. Профиль сохраняется.
func (s *Service) Seed(ctx context.Context, scope Scope, seed uint64) (int, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return 0, err
	}

	snap := DemoSnapshot(s.now(), seed)
	if p, err := st.GetProfile(ctx, scope.Tenant); err == nil {
		snap.Profile = &p
	}

	if err := s.confirm(scope, "seed", func(r Remote) error {
		return r.ReplaceAll(ctx, scope.Owner, snap)
	}); err != nil {
		return 0, err
	}

	if err := st.ReplaceAll(ctx, snap); err != nil {
		return 0, fmt.Errorf("seed local cache: %w", err)
	}

	s.log.Info("demo data seeded", "tenant", scope.Tenant, "rows", snap.Rows())
	return snap.Rows(), nil
}
