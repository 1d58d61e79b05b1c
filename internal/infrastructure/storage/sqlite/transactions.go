package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"smartmoney/internal/domain/finance"
)

const transactionColumns = `id, date, description, amount, type, category, source, notes, tags`

func (h *Handle) GetTransaction(ctx context.Context, id string) (finance.Transaction, error) {
	var tx finance.Transaction
	err := h.exec(ctx, func(db *sql.DB) error {
		var err error
		tx, err = getTransaction(ctx, db, id)
		return err
	})
	return tx, err
}

// ListTransactions возвращает транзакции, новые первыми.
func (h *Handle) ListTransactions(ctx context.Context, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	var txs []finance.Transaction
	err := h.exec(ctx, func(db *sql.DB) error {
		var err error
		txs, err = listTransactions(ctx, db, filter)
		return err
	})
	return txs, err
}

func (h *Handle) CountTransactions(ctx context.Context) (int, error) {
	var count int
	err := h.exec(ctx, func(db *sql.DB) error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// AddTransaction вставляет новую транзакцию; дубликат id - storage.ErrAlreadyExists.
func (h *Handle) AddTransaction(ctx context.Context, tx finance.Transaction) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertTransactions(ctx, db, false, tx)
	})
}

// PutTransaction вставляет или перезаписывает транзакцию.
func (h *Handle) PutTransaction(ctx context.Context, tx finance.Transaction) error {
	return h.write(ctx, func(db *sql.DB) error {
		return insertTransactions(ctx, db, true, tx)
	})
}

func (h *Handle) DeleteTransaction(ctx context.Context, id string) error {
	return h.write(ctx, func(db *sql.DB) error {
		return deleteByKey(ctx, db, "transactions", "id", id)
	})
}

func (h *Handle) BulkAddTransactions(ctx context.Context, txs []finance.Transaction) error {
	return h.InTx(ctx, func(tx *Tx) error {
		return tx.AddTransactions(ctx, txs...)
	})
}

func (h *Handle) BulkPutTransactions(ctx context.Context, txs []finance.Transaction) error {
	return h.InTx(ctx, func(tx *Tx) error {
		return tx.PutTransactions(ctx, txs...)
	})
}

func (t *Tx) AddTransactions(ctx context.Context, txs ...finance.Transaction) error {
	return insertTransactions(ctx, t.q, false, txs...)
}

func (t *Tx) PutTransactions(ctx context.Context, txs ...finance.Transaction) error {
	return insertTransactions(ctx, t.q, true, txs...)
}

func insertTransactions(ctx context.Context, q querier, replace bool, txs ...finance.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	verb := "INSERT"
	if replace {
		verb = "INSERT OR REPLACE"
	}
	query := verb + ` INTO transactions (` + transactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, tx := range txs {
		tags, err := encodeTags(tx.Tags)
		if err != nil {
			return fmt.Errorf("encode tags of %s: %w", tx.ID, err)
		}

		_, err = q.ExecContext(ctx, query,
			tx.ID, formatDate(tx.Date), tx.Description, tx.Amount.String(),
			string(tx.Type), string(tx.Category), string(tx.Source),
			nullString(tx.Notes), tags,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, mapWriteErr(err))
		}
	}
	return nil
}

func getTransaction(ctx context.Context, q querier, id string) (finance.Transaction, error) {
	row := q.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return finance.Transaction{}, fmt.Errorf("transaction %s: %w", id, finance.ErrNotFound)
	}
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func listTransactions(ctx context.Context, q querier, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any

	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, formatDate(filter.From))
	}
	if !filter.To.IsZero() {
		query += " AND date < ?"
		args = append(args, formatDate(filter.To))
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, string(filter.Category))
	}

	query += " ORDER BY date DESC, id"

	// SQLite не принимает OFFSET без LIMIT; LIMIT -1 снимает ограничение.
	switch {
	case filter.Limit > 0:
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []finance.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (finance.Transaction, error) {
	var (
		tx          finance.Transaction
		date        string
		amount      string
		typ, cat    string
		source      string
		notes, tags sql.NullString
	)

	if err := row.Scan(&tx.ID, &date, &tx.Description, &amount, &typ, &cat, &source, &notes, &tags); err != nil {
		return tx, err
	}

	var err error
	if tx.Date, err = parseDate(date); err != nil {
		return tx, fmt.Errorf("parse date of %s: %w", tx.ID, err)
	}
	if err = tx.Amount.Scan(amount); err != nil {
		return tx, fmt.Errorf("parse amount of %s: %w", tx.ID, err)
	}
	tx.Type = finance.TxType(typ)
	tx.Category = finance.Category(cat)
	tx.Source = finance.Source(source)
	tx.Notes = notes.String
	if tx.Tags, err = decodeTags(tags); err != nil {
		return tx, fmt.Errorf("parse tags of %s: %w", tx.ID, err)
	}
	return tx, nil
}

func encodeTags(tags []string) (any, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deleteByKey(ctx context.Context, q querier, table, column string, key any) error {
	res, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+column+` = ?`, key)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %v: %w", table, key, finance.ErrNotFound)
	}
	return nil
}
