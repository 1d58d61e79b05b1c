package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/infrastructure/storage"
)

func TestHandle_OpenCloseIdempotent(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	h, err := r.Resolve("alice")
	require.NoError(t, err)

	require.NoError(t, h.Open(ctx))
	require.NoError(t, h.Open(ctx))
	assert.True(t, h.IsOpen())

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.False(t, h.IsOpen())
}

func TestHandle_LazyOpen(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	h, err := r.Resolve("alice")
	require.NoError(t, err)
	require.False(t, h.IsOpen())

	txs, err := h.ListTransactions(ctx, finance.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.True(t, h.IsOpen())
}

func TestHandle_NotOpenAfterClose(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	h := acquire(t, r, "alice")
	require.NoError(t, h.Close())

	_, err := h.ListTransactions(ctx, finance.TransactionFilter{})
	assert.ErrorIs(t, err, storage.ErrNotOpen)

	err = h.PutBudget(ctx, finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, storage.ErrNotOpen)

	require.NoError(t, h.Open(ctx))
	_, err = h.ListTransactions(ctx, finance.TransactionFilter{})
	assert.NoError(t, err)
}

func TestHandle_Freeze(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	h := acquire(t, r, "alice")
	require.NoError(t, h.AddTransaction(ctx, testTx("t1", 1, finance.TxTypeExpense, finance.CategoryFood, "5")))

	require.NoError(t, h.Freeze(ctx))
	assert.True(t, h.IsFrozen())

	err := h.AddTransaction(ctx, testTx("t2", 2, finance.TxTypeExpense, finance.CategoryFood, "5"))
	assert.ErrorIs(t, err, storage.ErrFrozen)
	err = h.PutBudget(ctx, finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, storage.ErrFrozen)
	err = h.BulkAddAccounts(ctx, []finance.StoredAccount{{ID: "acc", Name: "HDFC", Type: finance.AccountTypeBank}})
	assert.ErrorIs(t, err, storage.ErrFrozen)
	assert.ErrorIs(t, h.DeleteTransaction(ctx, "t1"), storage.ErrFrozen)

	// Чтение и снимок на замороженном хэндле работают.
	txs, err := h.ListTransactions(ctx, finance.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids(txs))
	snap, err := h.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Transactions, 1)

	// После Close заморозка сохраняется: хэндл не переоткрывается.
	require.NoError(t, h.Close())
	assert.ErrorIs(t, h.Open(ctx), storage.ErrFrozen)
	_, err = r.Acquire(ctx, "alice")
	assert.ErrorIs(t, err, storage.ErrFrozen)
	assert.True(t, r.Cached("alice"), "frozen handle must stay cached")

	require.NoError(t, r.Destroy("alice"))
	assert.False(t, r.Cached("alice"))
}

func TestHandle_Freeze_WaitsForInFlightWrite(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- h.write(ctx, func(db *sql.DB) error {
			close(started)
			<-release
			_, err := db.ExecContext(ctx, `INSERT INTO budget (category, amount) VALUES ('Food', '10')`)
			return err
		})
	}()
	<-started

	frozen := make(chan error, 1)
	go func() { frozen <- h.Freeze(ctx) }()

	select {
	case <-frozen:
		t.Fatal("freeze returned before in-flight write finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-frozen)

	budget, err := h.ListBudget(ctx)
	require.NoError(t, err)
	assert.Len(t, budget, 1)
}

func TestHandle_Transactions(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	tx := testTx("t1", 5, finance.TxTypeExpense, finance.CategoryFood, "12.50")
	tx.Notes = "lunch"
	tx.Tags = []string{"work", "team"}
	require.NoError(t, h.AddTransaction(ctx, tx))

	err := h.AddTransaction(ctx, tx)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	got, err := h.GetTransaction(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.True(t, tx.Date.Equal(got.Date))
	assert.True(t, tx.Amount.Equal(got.Amount))
	assert.Equal(t, tx.Category, got.Category)
	assert.Equal(t, "lunch", got.Notes)
	assert.Equal(t, []string{"work", "team"}, got.Tags)

	tx.Amount = decimal.RequireFromString("15")
	tx.Notes = ""
	tx.Tags = nil
	require.NoError(t, h.PutTransaction(ctx, tx))

	got, err = h.GetTransaction(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "15", got.Amount.String())
	assert.Empty(t, got.Notes)
	assert.Nil(t, got.Tags)

	require.NoError(t, h.DeleteTransaction(ctx, "t1"))
	_, err = h.GetTransaction(ctx, "t1")
	assert.ErrorIs(t, err, finance.ErrNotFound)
	assert.ErrorIs(t, h.DeleteTransaction(ctx, "t1"), finance.ErrNotFound)
}

func TestHandle_ListTransactions_Filters(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	require.NoError(t, h.BulkAddTransactions(ctx, []finance.Transaction{
		testTx("a", 1, finance.TxTypeIncome, finance.CategorySalary, "1000"),
		testTx("b", 3, finance.TxTypeExpense, finance.CategoryFood, "20"),
		testTx("c", 10, finance.TxTypeExpense, finance.CategoryBills, "70"),
		testTx("d", 20, finance.TxTypeExpense, finance.CategoryFood, "15"),
	}))

	tests := []struct {
		name   string
		filter finance.TransactionFilter
		want   []string
	}{
		{name: "all newest first", filter: finance.TransactionFilter{}, want: []string{"d", "c", "b", "a"}},
		{name: "by type", filter: finance.TransactionFilter{Type: finance.TxTypeIncome}, want: []string{"a"}},
		{name: "by category", filter: finance.TransactionFilter{Category: finance.CategoryFood}, want: []string{"d", "b"}},
		{
			name: "date range",
			filter: finance.TransactionFilter{
				From: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
			},
			want: []string{"c", "b"},
		},
		{name: "limit offset", filter: finance.TransactionFilter{Limit: 2, Offset: 1}, want: []string{"c", "b"}},
		{name: "offset without limit", filter: finance.TransactionFilter{Offset: 2}, want: []string{"b", "a"}},
		{name: "offset past end", filter: finance.TransactionFilter{Offset: 10}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ListTransactions(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	n, err := h.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestHandle_BulkAdd_Atomic(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	require.NoError(t, h.AddTransaction(ctx, testTx("dup", 1, finance.TxTypeExpense, finance.CategoryFood, "1")))

	err := h.BulkAddTransactions(ctx, []finance.Transaction{
		testTx("new", 2, finance.TxTypeExpense, finance.CategoryFood, "1"),
		testTx("dup", 3, finance.TxTypeExpense, finance.CategoryFood, "1"),
	})
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = h.GetTransaction(ctx, "new")
	assert.ErrorIs(t, err, finance.ErrNotFound, "failed batch must roll back")
}

func TestHandle_Budget_AbsentVsZero(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	_, err := h.GetBudget(ctx, finance.CategoryFood)
	assert.ErrorIs(t, err, finance.ErrNotFound)

	require.NoError(t, h.PutBudget(ctx, finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.Zero}))
	entry, err := h.GetBudget(ctx, finance.CategoryFood)
	require.NoError(t, err)
	assert.True(t, entry.Amount.IsZero())

	require.NoError(t, h.PutBudget(ctx, finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.NewFromInt(500)}))
	entries, err := h.ListBudget(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "500", entries[0].Amount.String())

	require.NoError(t, h.DeleteBudget(ctx, finance.CategoryFood))
	_, err = h.GetBudget(ctx, finance.CategoryFood)
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestHandle_AccountsAndProfile(t *testing.T) {
	ctx := context.Background()
	h := acquire(t, newTestRegistry(t), "alice")

	acc := finance.StoredAccount{ID: "acc1", Name: "GPay", Type: finance.AccountTypeUPI, Icon: "GooglePayIcon"}
	require.NoError(t, h.AddAccount(ctx, acc))
	assert.ErrorIs(t, h.AddAccount(ctx, acc), storage.ErrAlreadyExists)

	got, err := h.GetAccount(ctx, "acc1")
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	list, err := h.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []finance.StoredAccount{acc}, list)

	require.NoError(t, h.DeleteAccount(ctx, "acc1"))
	_, err = h.GetAccount(ctx, "acc1")
	assert.ErrorIs(t, err, finance.ErrNotFound)

	_, err = h.GetProfile(ctx, "alice")
	assert.ErrorIs(t, err, finance.ErrNotFound)

	p := finance.Profile{Username: "alice", FullName: "Alice A.", Bio: "saver"}
	require.NoError(t, h.PutProfile(ctx, p))
	gotP, err := h.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, p, gotP)
}

func TestHandle_SnapshotImportReplace(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)
	src := acquire(t, r, "alice")

	require.NoError(t, src.BulkAddTransactions(ctx, []finance.Transaction{
		testTx("t1", 1, finance.TxTypeIncome, finance.CategorySalary, "100"),
		testTx("t2", 2, finance.TxTypeExpense, finance.CategoryFood, "10"),
	}))
	require.NoError(t, src.AddAccount(ctx, finance.StoredAccount{ID: "a", Name: "Bank", Type: finance.AccountTypeBank, Icon: "BankIcon"}))
	require.NoError(t, src.PutBudget(ctx, finance.BudgetEntry{Category: finance.CategoryFood, Amount: decimal.NewFromInt(50)}))
	require.NoError(t, src.PutProfile(ctx, finance.Profile{Username: "alice", FullName: "Alice"}))

	snap, err := src.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Rows())

	dst := acquire(t, r, "copy")
	require.NoError(t, dst.Import(ctx, snap))
	n, err := dst.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	// Повторный импорт конфликтует и не меняет ничего.
	assert.ErrorIs(t, dst.Import(ctx, snap), storage.ErrAlreadyExists)

	replacement := &finance.Snapshot{
		Transactions: []finance.Transaction{testTx("t9", 9, finance.TxTypeExpense, finance.CategoryBills, "9")},
	}
	require.NoError(t, dst.ReplaceAll(ctx, replacement))
	n, err = dst.CountRows(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
