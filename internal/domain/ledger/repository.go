package ledger

import (
	"context"

	"smartmoney/internal/domain/finance"
)

// Store - локальный кэш одного тенанта.
type Store interface {
	GetTransaction(ctx context.Context, id string) (finance.Transaction, error)
	ListTransactions(ctx context.Context, filter finance.TransactionFilter) ([]finance.Transaction, error)
	AddTransaction(ctx context.Context, tx finance.Transaction) error
	PutTransaction(ctx context.Context, tx finance.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	GetAccount(ctx context.Context, id string) (finance.StoredAccount, error)
	ListAccounts(ctx context.Context) ([]finance.StoredAccount, error)
	PutAccount(ctx context.Context, acc finance.StoredAccount) error
	DeleteAccount(ctx context.Context, id string) error

	GetBudget(ctx context.Context, category finance.Category) (finance.BudgetEntry, error)
	ListBudget(ctx context.Context) ([]finance.BudgetEntry, error)
	PutBudget(ctx context.Context, entry finance.BudgetEntry) error
	DeleteBudget(ctx context.Context, category finance.Category) error

	GetProfile(ctx context.Context, username string) (finance.Profile, error)
	PutProfile(ctx context.Context, p finance.Profile) error

	ReplaceAll(ctx context.Context, snap *finance.Snapshot) error
}

// Stores выдает открытый локальный кэш тенанта.
type Stores interface {
	Store(ctx context.Context, tenantID string) (Store, error)
}

// Remote - серверная копия данных. Строки принадлежат владельцу (owner),
// который не меняется при переименовании пользователя.
type Remote interface {
	PutTransaction(ctx context.Context, owner string, tx finance.Transaction) error
	DeleteTransaction(ctx context.Context, owner, id string) error
	PutAccount(ctx context.Context, owner string, acc finance.StoredAccount) error
	DeleteAccount(ctx context.Context, owner, id string) error
	PutBudget(ctx context.Context, owner string, entry finance.BudgetEntry) error
	DeleteBudget(ctx context.Context, owner string, category finance.Category) error
	PutProfile(ctx context.Context, owner string, p finance.Profile) error
	Snapshot(ctx context.Context, owner string) (*finance.Snapshot, error)
	ReplaceAll(ctx context.Context, owner string, snap *finance.Snapshot) error
}
