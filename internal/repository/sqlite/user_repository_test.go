package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-identity/internal/domain"
	"storefront-identity/internal/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func testUser(email string) *domain.User {
	return &domain.User{
		FirstName:    "A",
		LastName:     "B",
		Email:        email,
		PasswordHash: "$hash",
	}
}

func TestUserRepository_Create(t *testing.T) {
	t.Run("assigns an id and round trips", func(t *testing.T) {
		repo := newTestRepo(t)

		id, err := repo.Create(context.Background(), testUser("a@x.com"))
		require.NoError(t, err)
		require.Positive(t, id)

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", got.Email)
		assert.Equal(t, "$hash", got.PasswordHash)
		assert.False(t, got.IsFederatedUser)
		assert.Empty(t, got.FederatedID)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		repo := newTestRepo(t)

		_, err := repo.Create(context.Background(), testUser("a@x.com"))
		require.NoError(t, err)

		_, err = repo.Create(context.Background(), testUser("a@x.com"))
		assert.ErrorIs(t, err, repository.ErrEmailTaken)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		repo := newTestRepo(t)

		_, err := repo.GetByEmail(context.Background(), "missing@x.com")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})

	t.Run("finds by email", func(t *testing.T) {
		repo := newTestRepo(t)

		id, err := repo.Create(context.Background(), testUser("a@x.com"))
		require.NoError(t, err)

		got, err := repo.GetByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})
}

func TestUserRepository_LinkFederatedID(t *testing.T) {
	t.Run("sets the federated id once", func(t *testing.T) {
		repo := newTestRepo(t)

		id, err := repo.Create(context.Background(), testUser("a@x.com"))
		require.NoError(t, err)

		require.NoError(t, repo.LinkFederatedID(context.Background(), id, "sub-1"))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", got.FederatedID)
		assert.True(t, got.IsFederatedUser)
	})

	t.Run("never overwrites an existing link", func(t *testing.T) {
		repo := newTestRepo(t)

		id, err := repo.Create(context.Background(), testUser("a@x.com"))
		require.NoError(t, err)
		require.NoError(t, repo.LinkFederatedID(context.Background(), id, "sub-1"))

		require.NoError(t, repo.LinkFederatedID(context.Background(), id, "sub-2"))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", got.FederatedID)
	})

	t.Run("missing record reports not found", func(t *testing.T) {
		repo := newTestRepo(t)

		err := repo.LinkFederatedID(context.Background(), 12345, "sub-1")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}
