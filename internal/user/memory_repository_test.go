package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycontacts/mycontacts/internal/apperr"
)

func newUser(username, email string) User {
	now := time.Now().UTC()
	return User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: []byte("hash"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryRepositoryCreateAndFind(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	u := newUser("jdoe", "j@x.com")
	require.NoError(t, repo.Create(ctx, u))

	byEmail, err := repo.FindByEmail(ctx, "j@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", byID.Username)
}

func TestMemoryRepositoryUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newUser("jdoe", "j@x.com")))

	err := repo.Create(ctx, newUser("jdoe", "other@x.com"))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	err = repo.Create(ctx, newUser("other", "j@x.com"))
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// a rejected create must not leave a partial index entry behind
	_, err = repo.FindByEmail(ctx, "other@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.FindByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = repo.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
