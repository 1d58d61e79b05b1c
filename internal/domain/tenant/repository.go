package tenant

import (
	"context"

	"smartmoney/internal/domain/finance"
)

// Dataset - хранилище одного тенанта с явным управлением подключением.
type Dataset interface {
	Open(ctx context.Context) error
	// Freeze открывает хранилище и запрещает запись, дождавшись начатых операций.
	Freeze(ctx context.Context) error
	Close() error
	Snapshot(ctx context.Context) (*finance.Snapshot, error)
	Import(ctx context.Context, snap *finance.Snapshot) error
}

// Directory - реестр хранилищ тенантов.
type Directory interface {
	// Dataset возвращает (создавая при отсутствии) закэшированное хранилище тенанта.
	Dataset(tenantID string) (Dataset, error)
	// Evict убирает тенанта из кэша, не закрывая и не удаляя хранилище.
	Evict(tenantID string)
	Exists(tenantID string) (bool, error)
	HasData(ctx context.Context, tenantID string) (bool, error)
	// Destroy безвозвратно удаляет хранилище тенанта.
	Destroy(tenantID string) error
}
