package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
)

type Servicer interface {
	AddTransaction(ctx context.Context, scope Scope, tx finance.Transaction) (finance.Transaction, error)
	UpdateTransaction(ctx context.Context, scope Scope, tx finance.Transaction) error
	DeleteTransaction(ctx context.Context, scope Scope, id string) error
	GetTransaction(ctx context.Context, scope Scope, id string) (finance.Transaction, error)
	ListTransactions(ctx context.Context, scope Scope, filter finance.TransactionFilter) ([]finance.Transaction, error)

	LinkAccount(ctx context.Context, scope Scope, acc finance.Account) (finance.Account, error)
	UnlinkAccount(ctx context.Context, scope Scope, id string) error
	ListAccounts(ctx context.Context, scope Scope) ([]finance.Account, error)

	SetBudget(ctx context.Context, scope Scope, entry finance.BudgetEntry) error
	GetBudget(ctx context.Context, scope Scope, category finance.Category) (finance.BudgetEntry, error)
	ClearBudget(ctx context.Context, scope Scope, category finance.Category) error
	ListBudget(ctx context.Context, scope Scope) ([]finance.BudgetEntry, error)

	GetProfile(ctx context.Context, scope Scope) (finance.Profile, error)
	SaveProfile(ctx context.Context, scope Scope, p finance.Profile) error

	Refresh(ctx context.Context, scope Scope) (int, error)
	Insights(ctx context.Context, scope Scope, month time.Time) (Insights, error)
	Seed(ctx context.Context, scope Scope, seed uint64) (int, error)
}

// Service - операции над данными пользователя.
//
// Если задан remote, каждое изменение сначала подтверждается сервером и
// только затем применяется к локальному кэшу. Ошибка сервера оставляет кэш
// без изменений.
type Service struct {
	stores Stores
	remote Remote
	log    *slog.Logger
	now    func() time.Time
}

// NewService создает сервис. remote может быть nil: тогда данные живут
// только локально.
func NewService(stores Stores, remote Remote, log *slog.Logger) *Service {
	return &Service{
		stores: stores,
		remote: remote,
		log:    log.With("component", "ledger_service"),
		now:    time.Now,
	}
}

func (s *Service) store(ctx context.Context, scope Scope) (Store, error) {
	if scope.Tenant == "" {
		return nil, ErrInvalidScope
	}
	st, err := s.stores.Store(ctx, scope.Tenant)
	if err != nil {
		s.log.Error("failed to acquire local store", "tenant", scope.Tenant, "error", err)
		return nil, err
	}
	return st, nil
}

// confirm отправляет изменение на сервер, если он настроен.
func (s *Service) confirm(scope Scope, op string, fn func(r Remote) error) error {
	if s.remote == nil {
		return nil
	}
	if err := fn(s.remote); err != nil {
		s.log.Error("remote rejected change", "op", op, "owner", scope.Owner, "error", err)
		return fmt.Errorf("remote %s: %w", op, err)
	}
	return nil
}

// AddTransaction создает транзакцию. Пустой ID заменяется на UUID,
// пустая дата на текущее время, пустой источник на Manual.
func (s *Service) AddTransaction(ctx context.Context, scope Scope, tx finance.Transaction) (finance.Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date.IsZero() {
		tx.Date = s.now().UTC().Truncate(time.Millisecond)
	}
	if tx.Source == "" {
		tx.Source = finance.SourceManual
	}
	if err := tx.Validate(); err != nil {
		return finance.Transaction{}, err
	}

	st, err := s.store(ctx, scope)
	if err != nil {
		return finance.Transaction{}, err
	}

	if err := s.confirm(scope, "add transaction", func(r Remote) error {
		return r.PutTransaction(ctx, scope.Owner, tx)
	}); err != nil {
		return finance.Transaction{}, err
	}

	if err := st.AddTransaction(ctx, tx); err != nil {
		s.log.Error("failed to add transaction", "tenant", scope.Tenant, "id", tx.ID, "error", err)
		return finance.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	s.log.Info("transaction added", "tenant", scope.Tenant, "id", tx.ID)
	return tx, nil
}

// UpdateTransaction перезаписывает существующую транзакцию.
func (s *Service) UpdateTransaction(ctx context.Context, scope Scope, tx finance.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}
	if _, err := st.GetTransaction(ctx, tx.ID); err != nil {
		return err
	}

	if err := s.confirm(scope, "update transaction", func(r Remote) error {
		return r.PutTransaction(ctx, scope.Owner, tx)
	}); err != nil {
		return err
	}

	if err := st.PutTransaction(ctx, tx); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *Service) DeleteTransaction(ctx context.Context, scope Scope, id string) error {
	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}

	if err := s.confirm(scope, "delete transaction", func(r Remote) error {
		return ignoreNotFound(r.DeleteTransaction(ctx, scope.Owner, id))
	}); err != nil {
		return err
	}

	return st.DeleteTransaction(ctx, id)
}

func (s *Service) GetTransaction(ctx context.Context, scope Scope, id string) (finance.Transaction, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return finance.Transaction{}, err
	}
	return st.GetTransaction(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context, scope Scope, filter finance.TransactionFilter) ([]finance.Transaction, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return nil, err
	}
	txs, err := st.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// LinkAccount сохраняет счет. Иконка переводится в строковый идентификатор;
// неизвестная иконка сохраняется как иконка по умолчанию.
func (s *Service) LinkAccount(ctx context.Context, scope Scope, acc finance.Account) (finance.Account, error) {
	if acc.ID == "" {
		acc.ID = uuid.NewString()
	}
	if err := acc.Validate(); err != nil {
		return finance.Account{}, err
	}

	stored, known := finance.ToStored(acc)
	if !known {
		s.log.Warn("unknown account icon, using default", "account", acc.ID, "icon", stored.Icon)
		acc.Icon = finance.DefaultIcon
	}

	st, err := s.store(ctx, scope)
	if err != nil {
		return finance.Account{}, err
	}

	if err := s.confirm(scope, "link account", func(r Remote) error {
		return r.PutAccount(ctx, scope.Owner, stored)
	}); err != nil {
		return finance.Account{}, err
	}

	if err := st.PutAccount(ctx, stored); err != nil {
		return finance.Account{}, fmt.Errorf("link account: %w", err)
	}

	s.log.Info("account linked", "tenant", scope.Tenant, "id", acc.ID)
	return acc, nil
}

func (s *Service) UnlinkAccount(ctx context.Context, scope Scope, id string) error {
	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}

	if err := s.confirm(scope, "unlink account", func(r Remote) error {
		return ignoreNotFound(r.DeleteAccount(ctx, scope.Owner, id))
	}); err != nil {
		return err
	}

	return st.DeleteAccount(ctx, id)
}

// ListAccounts возвращает счета в форме для интерфейса.
func (s *Service) ListAccounts(ctx context.Context, scope Scope) ([]finance.Account, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return nil, err
	}
	stored, err := st.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	accounts := make([]finance.Account, 0, len(stored))
	for _, sa := range stored {
		acc, known := finance.FromStored(sa)
		if !known {
			s.log.Warn("unknown icon identifier", "account", sa.ID, "icon", sa.Icon)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (s *Service) SetBudget(ctx context.Context, scope Scope, entry finance.BudgetEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}

	if err := s.confirm(scope, "set budget", func(r Remote) error {
		return r.PutBudget(ctx, scope.Owner, entry)
	}); err != nil {
		return err
	}

	if err := st.PutBudget(ctx, entry); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}
	return nil
}

// GetBudget возвращает finance.ErrNotFound, если лимит для категории не задан.
func (s *Service) GetBudget(ctx context.Context, scope Scope, category finance.Category) (finance.BudgetEntry, error) {
	if err := category.Validate(); err != nil {
		return finance.BudgetEntry{}, err
	}
	st, err := s.store(ctx, scope)
	if err != nil {
		return finance.BudgetEntry{}, err
	}
	return st.GetBudget(ctx, category)
}

func (s *Service) ClearBudget(ctx context.Context, scope Scope, category finance.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}

	if err := s.confirm(scope, "clear budget", func(r Remote) error {
		return ignoreNotFound(r.DeleteBudget(ctx, scope.Owner, category))
	}); err != nil {
		return err
	}

	return st.DeleteBudget(ctx, category)
}

func (s *Service) ListBudget(ctx context.Context, scope Scope) ([]finance.BudgetEntry, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return nil, err
	}
	return st.ListBudget(ctx)
}

// GetProfile возвращает профиль; если он не сохранен - пустой профиль с именем тенанта.
func (s *Service) GetProfile(ctx context.Context, scope Scope) (finance.Profile, error) {
	st, err := s.store(ctx, scope)
	if err != nil {
		return finance.Profile{}, err
	}
	p, err := st.GetProfile(ctx, scope.Tenant)
	if errors.Is(err, finance.ErrNotFound) {
		return finance.Profile{Username: scope.Tenant}, nil
	}
	return p, err
}

func (s *Service) SaveProfile(ctx context.Context, scope Scope, p finance.Profile) error {
	p.Username = scope.Tenant

	st, err := s.store(ctx, scope)
	if err != nil {
		return err
	}

	if err := s.confirm(scope, "save profile", func(r Remote) error {
		return r.PutProfile(ctx, scope.Owner, p)
	}); err != nil {
		return err
	}

	if err := st.PutProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Refresh заменяет локальный кэш данными сервера. Возвращает число строк.
func (s *Service) Refresh(ctx context.Context, scope Scope) (int, error) {
	if s.remote == nil {
		return 0, ErrNoRemote
	}
	st, err := s.store(ctx, scope)
	if err != nil {
		return 0, err
	}

	snap, err := s.remote.Snapshot(ctx, scope.Owner)
	if err != nil {
		s.log.Error("failed to fetch remote snapshot", "owner", scope.Owner, "error", err)
		return 0, fmt.Errorf("fetch remote snapshot: %w", err)
	}
	if snap.Profile != nil {
		snap.Profile.Username = scope.Tenant
	}

	if err := st.ReplaceAll(ctx, snap); err != nil {
		return 0, fmt.Errorf("refresh local cache: %w", err)
	}

	s.log.Info("local cache refreshed", "tenant", scope.Tenant, "rows", snap.Rows())
	return snap.Rows(), nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, finance.ErrNotFound) {
		return nil
	}
	return err
}
