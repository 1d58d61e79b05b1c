package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/infrastructure/storage"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) AddTransaction(ctx context.Context, scope ledger.Scope, tx finance.Transaction) (finance.Transaction, error) {
	args := m.Called(ctx, scope, tx)
	return args.Get(0).(finance.Transaction), args.Error(1)
}

func (m *MockService) UpdateTransaction(ctx context.Context, scope ledger.Scope, tx finance.Transaction) error {
	return m.Called(ctx, scope, tx).Error(0)
}

func (m *MockService) DeleteTransaction(ctx context.Context, scope ledger.Scope, id string) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockService) GetTransaction(ctx context.Context, scope ledger.Scope, id string) (finance.Transaction, error) {
	args := m.Called(ctx, scope, id)
	return args.Get(0).(finance.Transaction), args.Error(1)
}

func (m *MockService) ListTransactions(ctx context.Context, scope ledger.Scope, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockService) LinkAccount(ctx context.Context, scope ledger.Scope, acc finance.Account) (finance.Account, error) {
	args := m.Called(ctx, scope, acc)
	return args.Get(0).(finance.Account), args.Error(1)
}

func (m *MockService) UnlinkAccount(ctx context.Context, scope ledger.Scope, id string) error {
	return m.Called(ctx, scope, id).Error(0)
}

func (m *MockService) ListAccounts(ctx context.Context, scope ledger.Scope) ([]finance.Account, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]finance.Account), args.Error(1)
}

func (m *MockService) SetBudget(ctx context.Context, scope ledger.Scope, entry finance.BudgetEntry) error {
	return m.Called(ctx, scope, entry).Error(0)
}

func (m *MockService) GetBudget(ctx context.Context, scope ledger.Scope, category finance.Category) (finance.BudgetEntry, error) {
	args := m.Called(ctx, scope, category)
	return args.Get(0).(finance.BudgetEntry), args.Error(1)
}

func (m *MockService) ClearBudget(ctx context.Context, scope ledger.Scope, category finance.Category) error {
	return m.Called(ctx, scope, category).Error(0)
}

func (m *MockService) ListBudget(ctx context.Context, scope ledger.Scope) ([]finance.BudgetEntry, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]finance.BudgetEntry), args.Error(1)
}

func (m *MockService) GetProfile(ctx context.Context, scope ledger.Scope) (finance.Profile, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(finance.Profile), args.Error(1)
}

func (m *MockService) SaveProfile(ctx context.Context, scope ledger.Scope, p finance.Profile) error {
	return m.Called(ctx, scope, p).Error(0)
}

func (m *MockService) Refresh(ctx context.Context, scope ledger.Scope) (int, error) {
	args := m.Called(ctx, scope)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Insights(ctx context.Context, scope ledger.Scope, month time.Time) (ledger.Insights, error) {
	args := m.Called(ctx, scope, month)
	return args.Get(0).(ledger.Insights), args.Error(1)
}

func (m *MockService) Seed(ctx context.Context, scope ledger.Scope, seed uint64) (int, error) {
	args := m.Called(ctx, scope, seed)
	return args.Int(0), args.Error(1)
}

var aliceScope = ledger.Scope{Tenant: "alice", Owner: "alice@example.com"}

func aliceInput() TenantScope {
	return TenantScope{Tenant: aliceScope.Tenant, Owner: aliceScope.Owner}
}

func newTestHandler(svc *MockService) *Handler {
	return NewHandler(svc, slog.Default(), nil)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, status, se.GetStatus())
}

func TestHandler_createTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &createTransactionInput{TenantScope: aliceInput()}
		input.Body = transactionBody{
			Description: "Groceries",
			Amount:      "250.5",
			Type:        finance.TxTypeExpense,
			Category:    finance.CategoryFood,
		}

		created := finance.Transaction{
			ID:          "tx-1",
			Date:        time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
			Description: "Groceries",
			Amount:      decimal.RequireFromString("250.5"),
			Type:        finance.TxTypeExpense,
			Category:    finance.CategoryFood,
			Source:      finance.SourceManual,
		}
		svc.On("AddTransaction", ctx, aliceScope, mock.MatchedBy(func(tx finance.Transaction) bool {
			return tx.Amount.Equal(decimal.RequireFromString("250.5")) && tx.Category == finance.CategoryFood
		})).Return(created, nil)

		out, err := h.createTransaction(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "tx-1", out.Body.ID)
		assert.Equal(t, "250.50", out.Body.Amount)
		assert.Equal(t, finance.SourceManual, out.Body.Source)
		svc.AssertExpectations(t)
	})

	t.Run("Amount is not a number", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &createTransactionInput{TenantScope: aliceInput()}
		input.Body.Amount = "lots"

		_, err := h.createTransaction(ctx, input)

		requireStatus(t, err, http.StatusBadRequest)
		svc.AssertNotCalled(t, "AddTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Duplicate id", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &createTransactionInput{TenantScope: aliceInput()}
		input.Body = transactionBody{ID: "tx-1", Amount: "1", Type: finance.TxTypeIncome, Category: finance.CategorySalary}
		svc.On("AddTransaction", ctx, aliceScope, mock.Anything).
			Return(finance.Transaction{}, fmt.Errorf("add transaction: %w", storage.ErrAlreadyExists))

		_, err := h.createTransaction(ctx, input)

		requireStatus(t, err, http.StatusConflict)
	})
}

func TestHandler_listTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("Filters are parsed", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &listTransactionsInput{
			TenantScope: aliceInput(),
			From:       "2024-03-01",
			To:         "2024-04-01",
			Type:       "Expense",
			Category:   "Food",
			Limit:      10,
		}
		want := finance.TransactionFilter{
			From:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			To:       time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			Type:     finance.TxTypeExpense,
			Category: finance.CategoryFood,
			Limit:    10,
		}
		svc.On("ListTransactions", ctx, aliceScope, want).Return([]finance.Transaction{
			{ID: "a", Amount: decimal.NewFromInt(3), Type: finance.TxTypeExpense, Category: finance.CategoryFood},
		}, nil)

		out, err := h.listTransactions(ctx, input)

		require.NoError(t, err)
		require.Len(t, out.Body.Transactions, 1)
		assert.Equal(t, "3.00", out.Body.Transactions[0].Amount)
		svc.AssertExpectations(t)
	})

	tests := []struct {
		name  string
		input listTransactionsInput
	}{
		{name: "bad from", input: listTransactionsInput{From: "03/01/2024"}},
		{name: "bad to", input: listTransactionsInput{To: "tomorrow"}},
		{name: "unknown category", input: listTransactionsInput{Category: "Travel"}},
		{name: "unknown type", input: listTransactionsInput{Type: "Refund"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := newTestHandler(svc)
			input := tt.input
			input.TenantScope = aliceInput()

			_, err := h.listTransactions(ctx, &input)

			requireStatus(t, err, http.StatusBadRequest)
			svc.AssertNotCalled(t, "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_getTransaction_errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "not found", err: fmt.Errorf("get: %w", finance.ErrNotFound), status: http.StatusNotFound},
		{name: "storage unavailable", err: storage.ErrStorageUnavailable, status: http.StatusServiceUnavailable},
		{name: "frozen for rename", err: fmt.Errorf("add: %w", storage.ErrFrozen), status: http.StatusServiceUnavailable},
		{name: "invalid tenant", err: storage.ErrInvalidTenant, status: http.StatusBadRequest},
		{name: "unexpected", err: errors.New("disk on fire"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			h := newTestHandler(svc)
			svc.On("GetTransaction", ctx, aliceScope, "tx-1").Return(finance.Transaction{}, tt.err)

			_, err := h.getTransaction(ctx, &transactionIDInput{TenantScope: aliceInput(), ID: "tx-1"})

			requireStatus(t, err, tt.status)
		})
	}
}

func TestHandler_updateTransaction_usesPathID(t *testing.T) {
	ctx := context.Background()
	svc := new(MockService)
	h := newTestHandler(svc)

	input := &updateTransactionInput{TenantScope: aliceInput(), ID: "tx-7"}
	input.Body = transactionBody{
		ID:          "ignored",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Description: "Rent",
		Amount:      "1200",
		Type:        finance.TxTypeExpense,
		Category:    finance.CategoryBills,
	}
	svc.On("UpdateTransaction", ctx, aliceScope, mock.MatchedBy(func(tx finance.Transaction) bool {
		return tx.ID == "tx-7" && tx.Source == finance.SourceManual
	})).Return(nil)

	out, err := h.updateTransaction(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "tx-7", out.Body.ID)
	svc.AssertExpectations(t)
}

func TestHandler_accounts(t *testing.T) {
	ctx := context.Background()

	t.Run("Link with known icon", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &linkAccountInput{TenantScope: aliceInput()}
		input.Body = accountBody{Name: "GPay", Type: finance.AccountTypeUPI, Icon: "GooglePayIcon"}

		svc.On("LinkAccount", ctx, aliceScope, mock.MatchedBy(func(acc finance.Account) bool {
			return acc.Icon == finance.GooglePayIcon
		})).Return(finance.Account{ID: "acc-1", Name: "GPay", Type: finance.AccountTypeUPI, Icon: finance.GooglePayIcon}, nil)

		out, err := h.linkAccount(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "acc-1", out.Body.ID)
		assert.Equal(t, "GooglePayIcon", out.Body.Icon)
	})

	t.Run("Unknown icon is passed as nil", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &linkAccountInput{TenantScope: aliceInput()}
		input.Body = accountBody{Name: "Card", Type: finance.AccountTypeBank, Icon: "SparkleIcon"}

		svc.On("LinkAccount", ctx, aliceScope, mock.MatchedBy(func(acc finance.Account) bool {
			return acc.Icon == nil
		})).Return(finance.Account{ID: "acc-2", Name: "Card", Type: finance.AccountTypeBank, Icon: finance.BankIcon}, nil)

		out, err := h.linkAccount(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, finance.DefaultIconID, out.Body.Icon)
	})

	t.Run("List", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		svc.On("ListAccounts", ctx, aliceScope).Return([]finance.Account{
			{ID: "acc-1", Name: "PhonePe", Type: finance.AccountTypeUPI, Icon: finance.PhonePeIcon},
		}, nil)

		in := aliceInput()
		out, err := h.listAccounts(ctx, &in)

		require.NoError(t, err)
		require.Len(t, out.Body.Accounts, 1)
		assert.Equal(t, "PhonePeIcon", out.Body.Accounts[0].Icon)
	})
}

func TestHandler_budget(t *testing.T) {
	ctx := context.Background()

	t.Run("Get missing budget is 404", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		svc.On("GetBudget", ctx, aliceScope, finance.CategoryFood).Return(finance.BudgetEntry{}, finance.ErrNotFound)

		_, err := h.getBudget(ctx, &budgetCategoryInput{TenantScope: aliceInput(), Category: "Food"})

		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("Zero budget is returned", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		svc.On("GetBudget", ctx, aliceScope, finance.CategoryFood).
			Return(finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.Zero}, nil)

		out, err := h.getBudget(ctx, &budgetCategoryInput{TenantScope: aliceInput(), Category: "Food"})

		require.NoError(t, err)
		assert.Equal(t, "0.00", out.Body.Amount)
	})

	t.Run("Set", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		svc.On("SetBudget", ctx, aliceScope, mock.MatchedBy(func(e finance.BudgetEntry) bool {
			return e.Category == finance.CategoryBills && e.Amount.Equal(decimal.NewFromInt(900))
		})).Return(nil)

		input := &setBudgetInput{TenantScope: aliceInput(), Category: "Bills"}
		input.Body.Amount = "900"
		out, err := h.setBudget(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, "900.00", out.Body.Amount)
		svc.AssertExpectations(t)
	})

	t.Run("Set with bad amount", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		input := &setBudgetInput{TenantScope: aliceInput(), Category: "Bills"}
		input.Body.Amount = "much"
		_, err := h.setBudget(ctx, input)

		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("Remote unavailable", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		svc.On("ClearBudget", ctx, aliceScope, finance.CategoryFood).Return(fmt.Errorf("remote delete budget: %w", storage.ErrStorageUnavailable))

		_, err := h.clearBudget(ctx, &budgetCategoryInput{TenantScope: aliceInput(), Category: "Food"})

		requireStatus(t, err, http.StatusServiceUnavailable)
	})
}

func TestHandler_saveProfile_usesTenant(t *testing.T) {
	ctx := context.Background()
	svc := new(MockService)
	h := newTestHandler(svc)

	input := &saveProfileInput{TenantScope: aliceInput()}
	input.Body = profileBody{Username: "mallory", FullName: "Alice A."}
	svc.On("SaveProfile", ctx, aliceScope, finance.Profile{Username: "alice", FullName: "Alice A."}).Return(nil)

	out, err := h.saveProfile(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "alice", out.Body.Username)
	svc.AssertExpectations(t)
}

func TestHandler_insights(t *testing.T) {
	ctx := context.Background()

	t.Run("Month is parsed", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)
		month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		svc.On("Insights", ctx, aliceScope, month).Return(ledger.Insights{
			Month: month,
			Totals: ledger.Totals{
				Income:  decimal.NewFromInt(1000),
				Expense: decimal.NewFromInt(400),
				Balance: decimal.NewFromInt(600),
			},
			Spending: []ledger.CategorySpend{{Category: finance.CategoryFood, Amount: decimal.NewFromInt(400)}},
			Budget: []ledger.BudgetProgress{{
				Category:  finance.CategoryFood,
				Limit:     decimal.NewFromInt(450),
				Spent:     decimal.NewFromInt(400),
				Remaining: decimal.NewFromInt(50),
				Percent:   decimal.RequireFromString("88.89"),
				Status:    ledger.BudgetWarning,
			}},
		}, nil)

		out, err := h.insights(ctx, &insightsInput{TenantScope: aliceInput(), Month: "2024-03"})

		require.NoError(t, err)
		assert.Equal(t, "2024-03", out.Body.Month)
		assert.Equal(t, "600.00", out.Body.Balance)
		require.Len(t, out.Body.Spending, 1)
		require.Len(t, out.Body.Budget, 1)
		assert.Equal(t, "88.89", out.Body.Budget[0].Percent)
		assert.Equal(t, ledger.BudgetWarning, out.Body.Budget[0].Status)
	})

	t.Run("Bad month", func(t *testing.T) {
		svc := new(MockService)
		h := newTestHandler(svc)

		_, err := h.insights(ctx, &insightsInput{TenantScope: aliceInput(), Month: "March"})

		requireStatus(t, err, http.StatusBadRequest)
	})
}
