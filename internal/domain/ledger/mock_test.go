package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"smartmoney/internal/domain/finance"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) GetTransaction(ctx context.Context, id string) (finance.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(finance.Transaction), args.Error(1)
}

func (m *MockStore) ListTransactions(ctx context.Context, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	args := m.Called(ctx, filter)
	txs, _ := args.Get(0).([]finance.Transaction)
	return txs, args.Error(1)
}

func (m *MockStore) AddTransaction(ctx context.Context, tx finance.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockStore) PutTransaction(ctx context.Context, tx finance.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockStore) DeleteTransaction(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) GetAccount(ctx context.Context, id string) (finance.StoredAccount, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(finance.StoredAccount), args.Error(1)
}

func (m *MockStore) ListAccounts(ctx context.Context) ([]finance.StoredAccount, error) {
	args := m.Called(ctx)
	accounts, _ := args.Get(0).([]finance.StoredAccount)
	return accounts, args.Error(1)
}

func (m *MockStore) PutAccount(ctx context.Context, acc finance.StoredAccount) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *MockStore) DeleteAccount(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) GetBudget(ctx context.Context, category finance.Category) (finance.BudgetEntry, error) {
	args := m.Called(ctx, category)
	return args.Get(0).(finance.BudgetEntry), args.Error(1)
}

func (m *MockStore) ListBudget(ctx context.Context) ([]finance.BudgetEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]finance.BudgetEntry)
	return entries, args.Error(1)
}

func (m *MockStore) PutBudget(ctx context.Context, entry finance.BudgetEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockStore) DeleteBudget(ctx context.Context, category finance.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockStore) GetProfile(ctx context.Context, username string) (finance.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(finance.Profile), args.Error(1)
}

func (m *MockStore) PutProfile(ctx context.Context, p finance.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockStore) ReplaceAll(ctx context.Context, snap *finance.Snapshot) error {
	return m.Called(ctx, snap).Error(0)
}

// singleStore выдает один и тот же MockStore для любого тенанта.
type singleStore struct {
	store *MockStore
}

func (s singleStore) Store(_ context.Context, _ string) (Store, error) {
	return s.store, nil
}

type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) PutTransaction(ctx context.Context, owner string, tx finance.Transaction) error {
	return m.Called(ctx, owner, tx).Error(0)
}

func (m *MockRemote) DeleteTransaction(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *MockRemote) PutAccount(ctx context.Context, owner string, acc finance.StoredAccount) error {
	return m.Called(ctx, owner, acc).Error(0)
}

func (m *MockRemote) DeleteAccount(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *MockRemote) PutBudget(ctx context.Context, owner string, entry finance.BudgetEntry) error {
	return m.Called(ctx, owner, entry).Error(0)
}

func (m *MockRemote) DeleteBudget(ctx context.Context, owner string, category finance.Category) error {
	return m.Called(ctx, owner, category).Error(0)
}

func (m *MockRemote) PutProfile(ctx context.Context, owner string, p finance.Profile) error {
	return m.Called(ctx, owner, p).Error(0)
}

func (m *MockRemote) Snapshot(ctx context.Context, owner string) (*finance.Snapshot, error) {
	args := m.Called(ctx, owner)
	snap, _ := args.Get(0).(*finance.Snapshot)
	return snap, args.Error(1)
}

func (m *MockRemote) ReplaceAll(ctx context.Context, owner string, snap *finance.Snapshot) error {
	return m.Called(ctx, owner, snap).Error(0)
}
