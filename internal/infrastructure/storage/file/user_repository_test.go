package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartmoney/internal/domain/user"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "users.json")
	repo := NewUserRepository(path)

	_, err := repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	alice := user.User{Email: "alice@example.com", Username: "alice", Password: "hash"}
	require.NoError(t, repo.Create(ctx, alice))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assert.ErrorIs(t, repo.Create(ctx, user.User{Email: "ALICE@example.com", Username: "other"}), user.ErrEmailTaken)
	assert.ErrorIs(t, repo.Create(ctx, user.User{Email: "bob@example.com", Username: "Alice"}), user.ErrUsernameTaken)

	got, err := repo.FindByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, alice.Email, got.Email)

	got.Username = "alicia"
	require.NoError(t, repo.Update(ctx, got))

	// Новый экземпляр читает тот же файл.
	reopened := NewUserRepository(path)
	got, err = reopened.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alicia", got.Username)

	_, err = reopened.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, user.ErrNotFound)

	assert.ErrorIs(t, reopened.Update(ctx, user.User{Email: "ghost@example.com"}), user.ErrNotFound)
}
