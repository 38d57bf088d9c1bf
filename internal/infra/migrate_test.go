package infra

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycontacts/mycontacts/internal/migrations"
)

func TestEmbeddedMigrationsPresent(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_contacts.sql"}, names)

	body, err := fs.ReadFile(migrations.FS, "00002_create_contacts.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "REFERENCES users (id)")
	assert.Contains(t, string(body), "-- +goose Down")
}

func TestRunMigrationsPropagatesGooseError(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return errors.New("boom")
	}

	err := runMigrations(context.Background(), nil, migrations.FS)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migrations")
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrationsSuccess(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	gooseUp = func(context.Context, *sql.DB, string) error { return nil }
	assert.NoError(t, runMigrations(context.Background(), nil, migrations.FS))
}
