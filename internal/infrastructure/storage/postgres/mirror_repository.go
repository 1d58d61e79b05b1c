package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
)

// Суммы передаются строкой и приводятся к numeric на стороне сервера.
const (
	upsertTransactionSQL = `
		INSERT INTO mirror_transactions (owner, id, date, description, amount, type, category, source, notes, tags)
		VALUES ($1, $2, $3, $4, $5::text::numeric, $6, $7, $8, $9, $10)
		ON CONFLICT (owner, id) DO UPDATE SET
			date = EXCLUDED.date, description = EXCLUDED.description, amount = EXCLUDED.amount,
			type = EXCLUDED.type, category = EXCLUDED.category, source = EXCLUDED.source,
			notes = EXCLUDED.notes, tags = EXCLUDED.tags, updated_at = now()`

	upsertAccountSQL = `
		INSERT INTO mirror_accounts (owner, id, name, type, icon)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner, id) DO UPDATE SET
			name = EXCLUDED.name, type = EXCLUDED.type, icon = EXCLUDED.icon, updated_at = now()`

	upsertBudgetSQL = `
		INSERT INTO mirror_budget (owner, category, amount)
		VALUES ($1, $2, $3::text::numeric)
		ON CONFLICT (owner, category) DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()`

	upsertProfileSQL = `
		INSERT INTO mirror_profiles (owner, full_name, bio, avatar)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner) DO UPDATE SET
			full_name = EXCLUDED.full_name, bio = EXCLUDED.bio, avatar = EXCLUDED.avatar, updated_at = now()`
)

// MirrorRepository - серверная копия данных пользователя. Все строки
// принадлежат владельцу (owner), а не имени пользователя, поэтому смена
// имени не затрагивает сервер.
type MirrorRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewMirrorRepository(pool *pgxpool.Pool, log *slog.Logger) *MirrorRepository {
	return &MirrorRepository{
		pool: pool,
		log:  log.With("component", "mirror_repository"),
	}
}

func (r *MirrorRepository) PutTransaction(ctx context.Context, owner string, tx finance.Transaction) error {
	if _, err := r.pool.Exec(ctx, upsertTransactionSQL, transactionArgs(owner, tx)...); err != nil {
		r.log.Error("failed to upsert transaction", "owner", owner, "id", tx.ID, "error", err)
		return fmt.Errorf("upsert transaction: %w", err)
	}
	return nil
}

func (r *MirrorRepository) DeleteTransaction(ctx context.Context, owner, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mirror_transactions WHERE owner = $1 AND id = $2`, owner, id)
	return deleted(tag, err, "transaction", id)
}

func (r *MirrorRepository) PutAccount(ctx context.Context, owner string, acc finance.StoredAccount) error {
	if _, err := r.pool.Exec(ctx, upsertAccountSQL, owner, acc.ID, acc.Name, string(acc.Type), acc.Icon); err != nil {
		r.log.Error("failed to upsert account", "owner", owner, "id", acc.ID, "error", err)
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

func (r *MirrorRepository) DeleteAccount(ctx context.Context, owner, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mirror_accounts WHERE owner = $1 AND id = $2`, owner, id)
	return deleted(tag, err, "account", id)
}

func (r *MirrorRepository) PutBudget(ctx context.Context, owner string, entry finance.BudgetEntry) error {
	if _, err := r.pool.Exec(ctx, upsertBudgetSQL, owner, string(entry.Category), entry.Amount.String()); err != nil {
		r.log.Error("failed to upsert budget", "owner", owner, "category", entry.Category, "error", err)
		return fmt.Errorf("upsert budget: %w", err)
	}
	return nil
}

func (r *MirrorRepository) DeleteBudget(ctx context.Context, owner string, category finance.Category) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM mirror_budget WHERE owner = $1 AND category = $2`, owner, string(category))
	return deleted(tag, err, "budget", string(category))
}

func (r *MirrorRepository) PutProfile(ctx context.Context, owner string, p finance.Profile) error {
	if _, err := r.pool.Exec(ctx, upsertProfileSQL, profileArgs(owner, p)...); err != nil {
		r.log.Error("failed to upsert profile", "owner", owner, "error", err)
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Snapshot читает все строки владельца в одной транзакции с повторяемым чтением.
func (r *MirrorRepository) Snapshot(ctx context.Context, owner string) (*finance.Snapshot, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	snap := &finance.Snapshot{}
	if snap.Transactions, err = r.transactions(ctx, tx, owner); err != nil {
		return nil, err
	}
	if snap.Accounts, err = r.accounts(ctx, tx, owner); err != nil {
		return nil, err
	}
	if snap.Budget, err = r.budget(ctx, tx, owner); err != nil {
		return nil, err
	}
	if snap.Profile, err = r.profile(ctx, tx, owner); err != nil {
		return nil, err
	}
	return snap, nil
}

// ReplaceAll заменяет все строки владельца снимком одной транзакцией.
func (r *MirrorRepository) ReplaceAll(ctx context.Context, owner string, snap *finance.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, table := range []string{"mirror_transactions", "mirror_accounts", "mirror_budget", "mirror_profiles"} {
		batch.Queue(`DELETE FROM `+table+` WHERE owner = $1`, owner)
	}
	for _, t := range snap.Transactions {
		batch.Queue(upsertTransactionSQL, transactionArgs(owner, t)...)
	}
	for _, a := range snap.Accounts {
		batch.Queue(upsertAccountSQL, owner, a.ID, a.Name, string(a.Type), a.Icon)
	}
	for _, b := range snap.Budget {
		batch.Queue(upsertBudgetSQL, owner, string(b.Category), b.Amount.String())
	}
	if snap.Profile != nil {
		batch.Queue(upsertProfileSQL, profileArgs(owner, *snap.Profile)...)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("failed to replace owner data", "owner", owner, "error", err)
		return fmt.Errorf("replace owner data: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *MirrorRepository) transactions(ctx context.Context, q pgx.Tx, owner string) ([]finance.Transaction, error) {
	const query = `
		SELECT id, date, description, amount::text, type, category, source, COALESCE(notes, ''), tags
		FROM mirror_transactions
		WHERE owner = $1
		ORDER BY date DESC, id`

	rows, err := q.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (finance.Transaction, error) {
		var (
			t      finance.Transaction
			amount string
		)
		if err := row.Scan(&t.ID, &t.Date, &t.Description, &amount, &t.Type, &t.Category, &t.Source, &t.Notes, &t.Tags); err != nil {
			return t, err
		}
		t.Date = t.Date.UTC()
		return t, t.Amount.Scan(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("scan transactions: %w", err)
	}
	return txs, nil
}

func (r *MirrorRepository) accounts(ctx context.Context, q pgx.Tx, owner string) ([]finance.StoredAccount, error) {
	rows, err := q.Query(ctx, `SELECT id, name, type, icon FROM mirror_accounts WHERE owner = $1 ORDER BY name, id`, owner)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (finance.StoredAccount, error) {
		var a finance.StoredAccount
		err := row.Scan(&a.ID, &a.Name, &a.Type, &a.Icon)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan accounts: %w", err)
	}
	return accounts, nil
}

func (r *MirrorRepository) budget(ctx context.Context, q pgx.Tx, owner string) ([]finance.BudgetEntry, error) {
	rows, err := q.Query(ctx, `SELECT category, amount::text FROM mirror_budget WHERE owner = $1 ORDER BY category`, owner)
	if err != nil {
		return nil, fmt.Errorf("list budget: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (finance.BudgetEntry, error) {
		var (
			e      finance.BudgetEntry
			amount string
		)
		if err := row.Scan(&e.Category, &amount); err != nil {
			return e, err
		}
		return e, e.Amount.Scan(amount)
	})
	if err != nil {
		return nil, fmt.Errorf("scan budget: %w", err)
	}
	return entries, nil
}

func (r *MirrorRepository) profile(ctx context.Context, q pgx.Tx, owner string) (*finance.Profile, error) {
	var p finance.Profile
	err := q.QueryRow(ctx,
		`SELECT COALESCE(full_name, ''), COALESCE(bio, ''), COALESCE(avatar, '') FROM mirror_profiles WHERE owner = $1`,
		owner).Scan(&p.FullName, &p.Bio, &p.Avatar)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func transactionArgs(owner string, t finance.Transaction) []any {
	var tags []string
	if len(t.Tags) > 0 {
		tags = t.Tags
	}
	return []any{
		owner, t.ID, t.Date.UTC(), t.Description, t.Amount.String(),
		string(t.Type), string(t.Category), string(t.Source), nullable(t.Notes), tags,
	}
}

func profileArgs(owner string, p finance.Profile) []any {
	return []any{owner, nullable(p.FullName), nullable(p.Bio), nullable(p.Avatar)}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deleted(tag pgconn.CommandTag, err error, what, key string) error {
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", what, key, finance.ErrNotFound)
	}
	return nil
}
