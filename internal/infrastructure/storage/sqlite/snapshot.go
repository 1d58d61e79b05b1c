package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartmoney/internal/domain/finance"
)

// Snapshot читает все строки всех таблиц тенанта в одной транзакции.
// Профиль ищется по идентификатору тенанта, который совпадает с именем пользователя.
func (h *Handle) Snapshot(ctx context.Context) (*finance.Snapshot, error) {
	snap := &finance.Snapshot{}
	err := h.readTx(ctx, func(tx *Tx) error {
		var err error
		if snap.Transactions, err = listTransactions(ctx, tx.q, finance.TransactionFilter{}); err != nil {
			return err
		}
		if snap.Accounts, err = listAccounts(ctx, tx.q); err != nil {
			return err
		}
		if snap.Budget, err = listBudget(ctx, tx.q); err != nil {
			return err
		}

		p, err := getProfile(ctx, tx.q, h.tenantID)
		switch {
		case errors.Is(err, finance.ErrNotFound):
		case err != nil:
			return err
		default:
			snap.Profile = &p
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", h.name, err)
	}
	return snap, nil
}

// Import вставляет все строки снимка одной транзакцией. Строки не
// перезаписываются: конфликт ключей откатывает всю транзакцию.
func (h *Handle) Import(ctx context.Context, snap *finance.Snapshot) error {
	err := h.InTx(ctx, func(tx *Tx) error {
		return writeSnapshot(ctx, tx, snap, false)
	})
	if err != nil {
		return fmt.Errorf("import into %s: %w", h.name, err)
	}
	return nil
}

// ReplaceAll заменяет содержимое всех таблиц снимком одной транзакцией.
func (h *Handle) ReplaceAll(ctx context.Context, snap *finance.Snapshot) error {
	err := h.InTx(ctx, func(tx *Tx) error {
		for _, table := range []string{"transactions", "accounts", "budget", "profiles"} {
			if _, err := tx.q.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}
		return writeSnapshot(ctx, tx, snap, false)
	})
	if err != nil {
		return fmt.Errorf("replace %s: %w", h.name, err)
	}
	return nil
}

// CountRows возвращает суммарное число строк во всех таблицах.
func (h *Handle) CountRows(ctx context.Context) (int, error) {
	var n int
	err := h.exec(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT
			(SELECT COUNT(*) FROM transactions) +
			(SELECT COUNT(*) FROM accounts) +
			(SELECT COUNT(*) FROM budget) +
			(SELECT COUNT(*) FROM profiles)`).Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", h.name, err)
	}
	return n, nil
}

func writeSnapshot(ctx context.Context, tx *Tx, snap *finance.Snapshot, replace bool) error {
	if err := insertTransactions(ctx, tx.q, replace, snap.Transactions...); err != nil {
		return err
	}
	if err := insertAccounts(ctx, tx.q, replace, snap.Accounts...); err != nil {
		return err
	}
	if err := insertBudget(ctx, tx.q, replace, snap.Budget...); err != nil {
		return err
	}
	if snap.Profile != nil {
		return insertProfile(ctx, tx.q, replace, *snap.Profile)
	}
	return nil
}
