package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/ledger"
	"smartmoney/internal/domain/tenant"
	"smartmoney/internal/infrastructure/migration"
	"smartmoney/internal/infrastructure/storage"
)

const storePrefix = "store_"

var tenantIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.@+-]{1,128}$`)

// StoreName возвращает имя хранилища тенанта.
func StoreName(tenantID string) string {
	return storePrefix + tenantID
}

// Registry - кэш хэндлов локальных баз: не больше одного хэндла на тенанта.
type Registry struct {
	dir    string
	engine migration.MigrationEngine
	log    *slog.Logger

	mu      sync.Mutex
	handles map[string]*Handle
}

type Option func(*Registry)

// WithMigrationEngine подменяет источник миграций (например, в тестах схемы).
func WithMigrationEngine(engine migration.MigrationEngine) Option {
	return func(r *Registry) {
		r.engine = engine
	}
}

// NewRegistry создает реестр хранилищ в каталоге dir.
func NewRegistry(dir string, log *slog.Logger, opts ...Option) *Registry {
	r := &Registry{
		dir:     dir,
		engine:  DefaultMigrationEngine(),
		log:     log.With("component", "tenant_registry"),
		handles: make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func validateTenantID(tenantID string) error {
	if !tenantIDPattern.MatchString(tenantID) {
		return fmt.Errorf("%w: %q", storage.ErrInvalidTenant, tenantID)
	}
	return nil
}

// Path возвращает путь к файлу базы тенанта.
func (r *Registry) Path(tenantID string) string {
	return filepath.Join(r.dir, StoreName(tenantID)+".db")
}

// Resolve возвращает закэшированный хэндл тенанта или создает новый
// (закрытый). Хранилище при этом не открывается.
func (r *Registry) Resolve(tenantID string) (*Handle, error) {
	if err := validateTenantID(tenantID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if h, ok := r.handles[tenantID]; ok {
		return h, nil
	}

	h := newHandle(tenantID, r.dir, r.engine, r.log)
	r.handles[tenantID] = h
	r.log.Debug("handle created", "tenant", tenantID)
	return h, nil
}

// Acquire возвращает открытый хэндл. Если открыть не удалось, хэндл
// убирается из кэша и возвращается storage.ErrStorageUnavailable.
// Замороженный хэндл остается в кэше: его уберет Destroy или Evict.
func (r *Registry) Acquire(ctx context.Context, tenantID string) (*Handle, error) {
	h, err := r.Resolve(tenantID)
	if err != nil {
		return nil, err
	}
	if err := h.Open(ctx); err != nil {
		if !errors.Is(err, storage.ErrFrozen) {
			r.evictHandle(tenantID, h)
		}
		return nil, err
	}
	return h, nil
}

// Evict убирает тенанта из кэша, не закрывая и не удаляя хранилище.
func (r *Registry) Evict(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, tenantID)
}

// evictHandle убирает запись, только если в кэше лежит именно h.
func (r *Registry) evictHandle(tenantID string, h *Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handles[tenantID] == h {
		delete(r.handles, tenantID)
	}
}

// Cached сообщает, есть ли хэндл тенанта в кэше.
func (r *Registry) Cached(tenantID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.handles[tenantID]
	return ok
}

// Exists сообщает, создано ли хранилище тенанта на диске.
func (r *Registry) Exists(tenantID string) (bool, error) {
	if err := validateTenantID(tenantID); err != nil {
		return false, err
	}
	_, err := os.Stat(r.Path(tenantID))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %v", storage.ErrStorageUnavailable, StoreName(tenantID), err)
	}
	return true, nil
}

// HasData сообщает, есть ли в хранилище тенанта хотя бы одна строка.
func (r *Registry) HasData(ctx context.Context, tenantID string) (bool, error) {
	exists, err := r.Exists(tenantID)
	if err != nil || !exists {
		return false, err
	}

	h, err := r.Acquire(ctx, tenantID)
	if err != nil {
		return false, err
	}
	n, err := h.CountRows(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Dataset реализует tenant.Directory.
func (r *Registry) Dataset(tenantID string) (tenant.Dataset, error) {
	h, err := r.Resolve(tenantID)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Store реализует ledger.Stores: возвращает открытый кэш тенанта.
func (r *Registry) Store(ctx context.Context, tenantID string) (ledger.Store, error) {
	h, err := r.Acquire(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Destroy закрывает закэшированный хэндл (если есть), убирает его из кэша
// и удаляет файлы хранилища. Основной файл удаляется последним.
// Кэш заблокирован до конца удаления, чтобы новый хэндл не открыл файл.
func (r *Registry) Destroy(tenantID string) error {
	if err := validateTenantID(tenantID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[tenantID]
	delete(r.handles, tenantID)

	if ok {
		if err := h.Close(); err != nil {
			return err
		}
	}

	path := r.Path(tenantID)
	for _, p := range []string{path + "-wal", path + "-shm", path + "-journal", path} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", filepath.Base(p), err)
		}
	}

	r.log.Info("store deleted", "tenant", tenantID)
	return nil
}

// CloseAll закрывает все закэшированные хэндлы и очищает кэш.
func (r *Registry) CloseAll() error {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]*Handle)
	r.mu.Unlock()

	var errs []error
	for _, h := range handles {
		errs = append(errs, h.Close())
	}
	return errors.Join(errs...)
}
