package sqlite

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"smartmoney/internal/infrastructure/migration"
	"smartmoney/internal/infrastructure/storage"
)

// SchemaVersion - последняя версия локальной схемы.
// v1: transactions, budget; v2: accounts, profiles.
const SchemaVersion uint = 2

//go:embed migrations/*.sql
var migrationsFS embed.FS

// dsnParams - параметры подключения к файлу тенанта.
const dsnParams = "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"

// dateLayout дает строки фиксированной ширины в UTC, поэтому сравнение
// строк в SQL совпадает с хронологическим.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// DefaultMigrationEngine применяет встроенные миграции локальной схемы.
func DefaultMigrationEngine() migration.MigrationEngine {
	return migration.EmbedEngine(migrationsFS, "migrations")
}

func migrationURL(path string) string {
	return "sqlite3://" + path
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func isConstraint(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}

func mapWriteErr(err error) error {
	if isConstraint(err) {
		return fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
	}
	return err
}
