package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycontacts/mycontacts/internal/apperr"
	"github.com/mycontacts/mycontacts/internal/infra"
)

func newPostgresRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("MYCONTACTS_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("MYCONTACTS_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := infra.NewPostgresPool(ctx, dsn, 5*time.Second)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, infra.Migrate(ctx, pool))
	return NewPostgresRepository(pool)
}

func uniqueUser(t *testing.T) User {
	t.Helper()
	suffix := uuid.NewString()[:8]
	return newUser("user-"+suffix, "user-"+suffix+"@x.com")
}

func cleanupUser(t *testing.T, pool *pgxpool.Pool, id string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id::text = $1`, id)
	})
}

func TestPostgresRepositoryCreateAndFind(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	u := uniqueUser(t)
	require.NoError(t, repo.Create(ctx, u))
	cleanupUser(t, repo.db, u.ID)

	byEmail, err := repo.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, byID.Username)
}

func TestPostgresRepositoryUniqueViolation(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	u := uniqueUser(t)
	require.NoError(t, repo.Create(ctx, u))
	cleanupUser(t, repo.db, u.ID)

	sameEmail := uniqueUser(t)
	sameEmail.Email = u.Email
	assert.ErrorIs(t, repo.Create(ctx, sameEmail), apperr.ErrConflict)

	sameName := uniqueUser(t)
	sameName.Username = u.Username
	assert.ErrorIs(t, repo.Create(ctx, sameName), apperr.ErrConflict)
}

func TestPostgresRepositoryNotFound(t *testing.T) {
	repo := newPostgresRepo(t)
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost-"+uuid.NewString()+"@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
