package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slog"

	"smartmoney/internal/infrastructure/migration"
	"smartmoney/internal/infrastructure/storage"
)

type handleState int

const (
	stateNew handleState = iota
	stateOpen
	stateClosed
)

// querier - общее подмножество *sql.DB и *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Handle - подключение к локальной базе одного тенанта.
//
// Новый хэндл открывается лениво при первой операции. После явного Close
// операции возвращают storage.ErrNotOpen, пока хэндл не открыт снова.
// Замороженный хэндл (Freeze) принимает только чтение и не переоткрывается.
type Handle struct {
	tenantID string
	name     string
	path     string
	engine   migration.MigrationEngine
	log      *slog.Logger

	mu     sync.RWMutex
	state  handleState
	frozen bool
	db     *sql.DB
}

func newHandle(tenantID, dir string, engine migration.MigrationEngine, log *slog.Logger) *Handle {
	name := StoreName(tenantID)
	return &Handle{
		tenantID: tenantID,
		name:     name,
		path:     filepath.Join(dir, name+".db"),
		engine:   engine,
		log:      log.With("store", name),
	}
}

func (h *Handle) TenantID() string { return h.tenantID }

// Name возвращает детерминированное имя хранилища: store_<tenant>.
func (h *Handle) Name() string { return h.name }

func (h *Handle) Path() string { return h.path }

func (h *Handle) IsOpen() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == stateOpen
}

// Open открывает хранилище, создавая его или обновляя схему до SchemaVersion.
// Повторный вызов на открытом хэндле ничего не делает.
func (h *Handle) Open(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.frozen && h.state != stateOpen {
		return fmt.Errorf("%w: %s", storage.ErrFrozen, h.name)
	}
	return h.openLocked(ctx)
}

// Freeze открывает хранилище и запрещает дальнейшую запись. Возвращается
// после завершения всех операций, начатых до вызова. Заморозка не
// снимается: хэндл остается только для чтения до удаления из реестра.
func (h *Handle) Freeze(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.openLocked(ctx); err != nil {
		return err
	}
	h.frozen = true
	h.log.Debug("store frozen")
	return nil
}

func (h *Handle) IsFrozen() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frozen
}

func (h *Handle) openLocked(ctx context.Context) error {
	if h.state == stateOpen {
		return nil
	}

	if err := h.doOpen(ctx); err != nil {
		h.state = stateClosed
		h.log.Error("failed to open store", "error", err)
		return fmt.Errorf("%w: %s: %v", storage.ErrStorageUnavailable, h.name, err)
	}

	h.state = stateOpen
	h.log.Debug("store opened")
	return nil
}

func (h *Handle) doOpen(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if err := migration.NewMigration(migrationURL(h.path), h.engine).Up(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	db, err := sql.Open("sqlite3", h.path+dsnParams)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	h.db = db
	return nil
}

// Close освобождает подключение. Повторный вызов ничего не делает.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != stateOpen {
		h.state = stateClosed
		return nil
	}

	err := h.db.Close()
	h.db = nil
	h.state = stateClosed
	if err != nil {
		return fmt.Errorf("close %s: %w", h.name, err)
	}
	h.log.Debug("store closed")
	return nil
}

// ensureOpen лениво открывает новый хэндл; закрытый явно не переоткрывает.
func (h *Handle) ensureOpen(ctx context.Context) error {
	h.mu.RLock()
	state := h.state
	h.mu.RUnlock()
	if state == stateOpen {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.state == stateOpen:
		return nil
	case h.frozen:
		return fmt.Errorf("%w: %s", storage.ErrFrozen, h.name)
	case h.state == stateClosed:
		return fmt.Errorf("%w: %s", storage.ErrNotOpen, h.name)
	}
	return h.openLocked(ctx)
}

// exec выполняет чтение на открытом подключении; Close дождется завершения fn.
func (h *Handle) exec(ctx context.Context, fn func(db *sql.DB) error) error {
	return h.run(ctx, false, fn)
}

// write - как exec, но отказывает с storage.ErrFrozen на замороженном хэндле.
func (h *Handle) write(ctx context.Context, fn func(db *sql.DB) error) error {
	return h.run(ctx, true, fn)
}

func (h *Handle) run(ctx context.Context, write bool, fn func(db *sql.DB) error) error {
	if err := h.ensureOpen(ctx); err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	if write && h.frozen {
		return fmt.Errorf("%w: %s", storage.ErrFrozen, h.name)
	}
	if h.state != stateOpen {
		return fmt.Errorf("%w: %s", storage.ErrNotOpen, h.name)
	}
	return fn(h.db)
}

// InTx выполняет fn в одной транзакции SQLite по всем таблицам тенанта.
// Параллельные читатели не видят промежуточного состояния.
func (h *Handle) InTx(ctx context.Context, fn func(tx *Tx) error) error {
	return h.tx(ctx, true, fn)
}

// readTx - транзакция только для чтения, разрешена и на замороженном хэндле.
func (h *Handle) readTx(ctx context.Context, fn func(tx *Tx) error) error {
	return h.tx(ctx, false, fn)
}

func (h *Handle) tx(ctx context.Context, write bool, fn func(tx *Tx) error) error {
	return h.run(ctx, write, func(db *sql.DB) error {
		sqlTx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}

		if err := fn(&Tx{q: sqlTx}); err != nil {
			if rbErr := sqlTx.Rollback(); rbErr != nil {
				h.log.Error("rollback failed", "error", rbErr)
			}
			return err
		}

		if err := sqlTx.Commit(); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}

// Tx - операции над таблицами внутри транзакции Handle.InTx.
type Tx struct {
	q querier
}
