package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartmoney/internal/domain/finance"
)

func (h *Handle) GetAccount(ctx context.Context, id string) (finance.StoredAccount, error) {
	var acc finance.StoredAccount
	err := h.exec(ctx, func(db *sql.DB) error {
		err := db.QueryRowContext(ctx, `SELECT id, name, type, icon FROM accounts WHERE id = ?`, id).
			Scan(&acc.ID, &acc.Name, &acc.Type, &acc.Icon)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("account %s: %w", id, finance.ErrNotFound)
		}
		return err
	})
	return acc, err
}

func (h *Handle) ListAccounts(ctx context.Context) ([]finance.StoredAccount, error) {
	var accounts []finance.StoredAccount
	err := h.exec(ctx, func(db *sql.DB) error {
		var err error
		accounts, err = listAccounts(ctx, db)
		return err
	})
	return accounts, err
}

func (h *Handle) AddAccount(ctx context.Context, acc finance.StoredAccount) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertAccounts(ctx, db, false, acc)
	})
}

func (h *Handle) PutAccount(ctx context.Context, acc finance.StoredAccount) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertAccounts(ctx, db, true, acc)
	})
}

func (h *Handle) DeleteAccount(ctx context.Context, id string) error {
	return h.write(ctx, func(db *sql.DB) error {
		return deleteByKey(ctx, db, "accounts", "id", id)
	})
}

func (h *Handle) BulkAddAccounts(ctx context.Context, accounts []finance.StoredAccount) error {
	return h.InTx(ctx, func(tx *Tx) error {
		return tx.AddAccounts(ctx, accounts...)
	})
}

func (t *Tx) AddAccounts(ctx context.Context, accounts ...finance.StoredAccount) error {
	return insertAccounts(ctx, t.q, false, accounts...)
}

func (t *Tx) PutAccounts(ctx context.Context, accounts ...finance.StoredAccount) error {
	return insertAccounts(ctx, t.q, true, accounts...)
}

func insertAccounts(ctx context.Context, q querier, replace bool, accounts ...finance.StoredAccount) error {
	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	query := verb + ` INTO accounts (id, name, type, icon) VALUES (?, ?, ?, ?)`

	for _, acc := range accounts {
		if _, err := q.ExecContext(ctx, query, acc.ID, acc.Name, string(acc.Type), acc.Icon); err != nil {
			return fmt.Errorf("insert account %s: %w", acc.ID, mapWriteErr(err))
		}
	}
	return nil
}

func listAccounts(ctx context.Context, q querier) ([]finance.StoredAccount, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, type, icon FROM accounts ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []finance.StoredAccount
	for rows.Next() {
		var acc finance.StoredAccount
		if err := rows.Scan(&acc.ID, &acc.Name, &acc.Type, &acc.Icon); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}
