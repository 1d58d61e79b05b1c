package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(t.TempDir(), slog.Default())
	t.Cleanup(func() { _ = r.CloseAll() })
	return r
}

func acquire(t *testing.T, r *Registry, tenantID string) *Handle {
	t.Helper()
	h, err := r.Acquire(context.Background(), tenantID)
	require.NoError(t, err)
	return h
}

func testTx(id string, day int, typ finance.TxType, cat finance.Category, amount string) finance.Transaction {
	return finance.Transaction{
		ID:          id,
		Date:        time.Date(2024, time.March, day, 10, 30, 0, 0, time.UTC),
		Description: "tx " + id,
		Amount:      decimal.RequireFromString(amount),
		Type:        typ,
		Category:    cat,
		Source:      finance.SourceManual,
	}
}

func ids(txs []finance.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.ID)
	}
	return out
}
