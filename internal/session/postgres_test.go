package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benx421/atm-core/internal/config"
	"github.com/benx421/atm-core/internal/db"
	"github.com/benx421/atm-core/internal/models"
)

// These tests need a reachable Postgres instance. Set TEST_DB=1 and the usual
// DB_* variables to run them.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	if os.Getenv("TEST_DB") == "" {
		t.Skip("TEST_DB not set; skipping database tests")
	}

	cfg, err := config.Load()
	require.NoError(t, err, "failed to load config")

	logger := cfg.Logger.NewLogger()

	database, err := db.Connect(context.Background(), &cfg.Database, logger)
	require.NoError(t, err, "failed to connect to test database")

	migrationPath := filepath.Join("..", "db", "migrations", "000001_init.up.sql")
	sqlBytes, err := os.ReadFile(migrationPath) // #nosec G304
	require.NoError(t, err, "failed to read migration file")

	_, err = database.ExecContext(context.Background(), string(sqlBytes))
	require.NoError(t, err, "failed to run migrations")

	_, err = database.ExecContext(context.Background(), `TRUNCATE TABLE sessions`)
	require.NoError(t, err, "failed to truncate tables")

	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestPostgresStore_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	store := NewPostgresStore(database, 5*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, testCard)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sess, err := store.GetIfValid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)
	assert.Equal(t, testCard, sess.Card)
	assert.False(t, sess.Authenticated())
}

func TestPostgresStore_UnknownSession(t *testing.T) {
	database := setupTestDB(t)
	store := NewPostgresStore(database, 5*time.Minute)

	_, err := store.GetIfValid(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestPostgresStore_ExpiredSessionNotReturned(t *testing.T) {
	database := setupTestDB(t)
	store := NewPostgresStore(database, -time.Second)
	ctx := context.Background()

	id, err := store.Create(ctx, testCard)
	require.NoError(t, err)

	_, err = store.GetIfValid(ctx, id)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestPostgresStore_SavePersistsCredential(t *testing.T) {
	database := setupTestDB(t)
	store := NewPostgresStore(database, 5*time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx, testCard)
	require.NoError(t, err)

	sess, err := store.GetIfValid(ctx, id)
	require.NoError(t, err)

	sess.AuthKey = "key-123"
	require.NoError(t, store.Save(ctx, sess))

	reloaded, err := store.GetIfValid(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "key-123", reloaded.AuthKey)
	assert.True(t, reloaded.Authenticated())
}

func TestPostgresStore_DeleteExpired(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()

	expired := NewPostgresStore(database, -time.Second)
	_, err := expired.Create(ctx, testCard)
	require.NoError(t, err)

	live := NewPostgresStore(database, 5*time.Minute)
	liveID, err := live.Create(ctx, testCard)
	require.NoError(t, err)

	deleted, err := live.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = live.GetIfValid(ctx, liveID)
	assert.NoError(t, err)
}
