package database

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations(), "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_cache_tables.sql", "00002_sync_ledger.sql"}, names)
}

func TestMigrator_UpStatusDown(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}

	pool, err := NewPool(context.Background(), PoolConfig{ConnString: testDBConnString, MaxConns: 5})
	require.NoError(t, err)
	defer pool.Close()

	m, err := NewMigrator(pool)
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Up(ctx))
	require.NoError(t, m.Up(ctx), "second run is a no-op")

	states, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, states, 2)
	for _, s := range states {
		assert.True(t, s.Applied, "migration %d", s.Version)
	}

	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM sync_runs").Scan(&n))
	assert.Zero(t, n)

	require.NoError(t, m.Down(ctx))
	states, err = m.Status(ctx)
	require.NoError(t, err)
	assert.False(t, states[1].Applied)
	require.NoError(t, m.Up(ctx))
}
