package db

import (
	"context"
	"path/filepath"
	"testing"

	"design-studio/backend/internal/config"
	"design-studio/backend/internal/models/entities"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStatusCheckRepository_SQLite(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenStatusCheckRepository(ctx, config.StoreConfig{
		Driver:     config.StoreDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "status.db"),
	})
	require.NoError(t, err)
	defer repo.Close(ctx)

	assert.Equal(t, "sqlite", repo.Driver())
	require.NoError(t, repo.Save(ctx, entities.NewStatusCheck("opened")))

	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpenStatusCheckRepository_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	repo, err := OpenStatusCheckRepository(ctx, config.StoreConfig{
		Driver:    config.StoreDriverRedis,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer repo.Close(ctx)

	assert.Equal(t, "redis", repo.Driver())
	assert.NoError(t, repo.Ping(ctx))
}

func TestOpenStatusCheckRepository_UnknownDriver(t *testing.T) {
	_, err := OpenStatusCheckRepository(context.Background(), config.StoreConfig{Driver: "cassandra"})
	assert.ErrorContains(t, err, "unknown store driver")
}
