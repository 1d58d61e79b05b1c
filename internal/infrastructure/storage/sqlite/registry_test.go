package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"smartmoney/internal/domain/finance"
	"smartmoney/internal/infrastructure/storage"
)

func TestStoreName(t *testing.T) {
	assert.Equal(t, "store_alice", StoreName("alice"))
	assert.Equal(t, "store_bob@example.com", StoreName("bob@example.com"))
}

func TestRegistry_Resolve_SameInstance(t *testing.T) {
	r := newTestRegistry(t)

	first, err := r.Resolve("alice")
	require.NoError(t, err)
	second, err := r.Resolve("alice")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "store_alice", first.Name())
	assert.False(t, first.IsOpen(), "resolve must not open storage")

	_, err = os.Stat(first.Path())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRegistry_Resolve_DifferentTenants(t *testing.T) {
	r := newTestRegistry(t)

	a, err := r.Resolve("alice")
	require.NoError(t, err)
	b, err := r.Resolve("bob")
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.Path(), b.Path())
}

func TestRegistry_Resolve_Concurrent(t *testing.T) {
	r := newTestRegistry(t)

	const workers = 64
	handles := make([]*Handle, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			handles[i], errs[i] = r.Resolve("alice")
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, handles[0], handles[i])
	}

	// Resolve вперемешку с Evict: кэш не ломается, в нем остается не больше
	// одного хэндла, и после гонки Resolve снова стабилен.
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				r.Evict("alice")
				return
			}
			h, err := r.Resolve("alice")
			assert.NoError(t, err)
			assert.NotNil(t, h)
			assert.Equal(t, "store_alice", h.Name())
		}(i)
	}
	wg.Wait()

	first, err := r.Resolve("alice")
	require.NoError(t, err)
	second, err := r.Resolve("alice")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_Evict(t *testing.T) {
	r := newTestRegistry(t)

	h := acquire(t, r, "alice")
	r.Evict("alice")
	assert.False(t, r.Cached("alice"))

	next, err := r.Resolve("alice")
	require.NoError(t, err)
	assert.NotSame(t, h, next)
	assert.True(t, h.IsOpen(), "evict must not close the handle")
	require.NoError(t, h.Close())
}

func TestRegistry_InvalidTenant(t *testing.T) {
	r := newTestRegistry(t)

	for _, id := range []string{"", "../etc", "a b", "with/slash"} {
		_, err := r.Resolve(id)
		assert.ErrorIs(t, err, storage.ErrInvalidTenant, id)
	}
}

func TestRegistry_Acquire_UnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	r := NewRegistry(filepath.Join(file, "data"), slog.Default())

	_, err := r.Acquire(context.Background(), "alice")
	require.ErrorIs(t, err, storage.ErrStorageUnavailable)
	assert.False(t, r.Cached("alice"), "failed handle must not stay cached")
}

func TestRegistry_ExistsHasData(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	exists, err := r.Exists("alice")
	require.NoError(t, err)
	assert.False(t, exists)

	hasData, err := r.HasData(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, hasData)

	h := acquire(t, r, "alice")
	exists, err = r.Exists("alice")
	require.NoError(t, err)
	assert.True(t, exists)

	hasData, err = r.HasData(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, hasData, "fresh storage has no rows")

	require.NoError(t, h.AddTransaction(ctx, testTx("t1", 1, finance.TxTypeExpense, finance.CategoryFood, "10")))
	hasData, err = r.HasData(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, hasData)
}

func TestRegistry_Destroy(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	h := acquire(t, r, "alice")
	require.NoError(t, h.AddTransaction(ctx, testTx("t1", 1, finance.TxTypeExpense, finance.CategoryFood, "10")))

	require.NoError(t, r.Destroy("alice"))
	assert.False(t, h.IsOpen())
	assert.False(t, r.Cached("alice"))

	exists, err := r.Exists("alice")
	require.NoError(t, err)
	assert.False(t, exists)

	// Удаление отсутствующего хранилища не ошибка.
	require.NoError(t, r.Destroy("alice"))
}

func TestRegistry_CloseAll(t *testing.T) {
	r := newTestRegistry(t)

	a := acquire(t, r, "alice")
	b := acquire(t, r, "bob")

	require.NoError(t, r.CloseAll())
	assert.False(t, a.IsOpen())
	assert.False(t, b.IsOpen())
	assert.False(t, r.Cached("alice"))
}
