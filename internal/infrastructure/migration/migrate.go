package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports required for database driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Migrate(version uint) error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(databaseURL string) (Migrator, error)

// FileEngine читает миграции из каталога на диске.
func FileEngine(dir string) MigrationEngine {
	return func(databaseURL string) (Migrator, error) {
		return migrate.New("file://"+dir, databaseURL)
	}
}

// EmbedEngine читает миграции из встроенной файловой системы.
func EmbedEngine(fsys fs.FS, dir string) MigrationEngine {
	return func(databaseURL string) (Migrator, error) {
		src, err := iofs.New(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("open migration source: %w", err)
		}
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
}

type Migration struct {
	databaseURL string
	engine      MigrationEngine
}

func NewMigration(databaseURL string, engine MigrationEngine) *Migration {
	return &Migration{
		databaseURL: databaseURL,
		engine:      engine,
	}
}

// Up применяет все миграции до последней версии.
func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error {
		return m.Up()
	})
}

// UpTo применяет миграции до указанной версии включительно.
func (mg *Migration) UpTo(version uint) error {
	return mg.run(func(m Migrator) error {
		return m.Migrate(version)
	})
}

// Version возвращает текущую версию схемы; 0 для пустой базы.
func (mg *Migration) Version() (version uint, err error) {
	err = mg.with(func(m Migrator) error {
		v, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		if verr != nil {
			return verr
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", v)
		}
		version = v
		return nil
	})
	return version, err
}

func (mg *Migration) run(step func(Migrator) error) error {
	return mg.with(func(m Migrator) error {
		if err := step(m); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%w; migration up error", err)
		}
		return nil
	})
}

func (mg *Migration) with(fn func(Migrator) error) (err error) {
	m, err := mg.engine(mg.databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	return fn(m)
}
