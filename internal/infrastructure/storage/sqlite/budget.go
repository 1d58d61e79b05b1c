package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"smartmoney/internal/domain/finance"
)

// GetBudget возвращает лимит категории. Если лимит не задан -
// finance.ErrNotFound, что отличается от явного нулевого лимита.
func (h *Handle) GetBudget(ctx context.Context, category finance.Category) (finance.BudgetEntry, error) {
	var entry finance.BudgetEntry
	err := h.exec(ctx, func(db *sql.DB) error {
		var amount string
		err := db.QueryRowContext(ctx, `SELECT category, amount FROM budget WHERE category = ?`, string(category)).
			Scan(&entry.Category, &amount)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("budget %s: %w", category, finance.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("get budget: %w", err)
		}
		return entry.Amount.Scan(amount)
	})
	return entry, err
}

func (h *Handle) ListBudget(ctx context.Context) ([]finance.BudgetEntry, error) {
	var entries []finance.BudgetEntry
	err := h.exec(ctx, func(db *sql.DB) error {
		var err error
		entries, err = listBudget(ctx, db)
		return err
	})
	return entries, err
}

// PutBudget задает или перезаписывает лимит категории.
func (h *Handle) PutBudget(ctx context.Context, entry finance.BudgetEntry) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertBudget(ctx, db, true, entry)
	})
}

func (h *Handle) DeleteBudget(ctx context.Context, category finance.Category) error {
	return h.write(ctx, func(db *sql.DB) error {
		return deleteByKey(ctx, db, "budget", "category", string(category))
	})
}

func (h *Handle) BulkAddBudget(ctx context.Context, entries []finance.BudgetEntry) error {
	return h.InTx(ctx, func(tx *Tx) error {
		return tx.AddBudget(ctx, entries...)
	})
}

func (t *Tx) AddBudget(ctx context.Context, entries ...finance.BudgetEntry) error {
	return insertBudget(ctx, t.q, false, entries...)
}

func (t *Tx) PutBudget(ctx context.Context, entries ...finance.BudgetEntry) error {
	return insertBudget(ctx, t.q, true, entries...)
}

func insertBudget(ctx context.Context, q querier, replace bool, entries ...finance.BudgetEntry) error {
	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	query := verb + ` INTO budget (category, amount) VALUES (?, ?)`

	for _, e := range entries {
		if _, err := q.ExecContext(ctx, query, string(e.Category), e.Amount.String()); err != nil {
			return fmt.Errorf("insert budget %s: %w", e.Category, mapWriteErr(err))
		}
	}
	return nil
}

func listBudget(ctx context.Context, q querier) ([]finance.BudgetEntry, error) {
	rows, err := q.QueryContext(ctx, `SELECT category, amount FROM budget ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list budget: %w", err)
	}
	defer rows.Close()

	var entries []finance.BudgetEntry
	for rows.Next() {
		var (
			e      finance.BudgetEntry
			amount string
		)
		if err := rows.Scan(&e.Category, &amount); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		if err := e.Amount.Scan(amount); err != nil {
			return nil, fmt.Errorf("parse budget %s: %w", e.Category, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
