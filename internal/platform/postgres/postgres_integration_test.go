//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"partyhub/internal/party/store"
	"partyhub/internal/platform/config"
	"partyhub/pkg/testutil/containers"
)

func TestOpenAndMigrate(t *testing.T) {
	pg := containers.GetManager().GetPostgres(t)
	ctx := context.Background()

	db, err := Open(ctx, config.DatabaseConfig{URL: pg.DSN, MaxOpenConns: 4, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, store.Schema))
	require.NoError(t, Migrate(ctx, db, store.Schema), "schema must be re-runnable")

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM parties`).Scan(&n))
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{})
	require.Error(t, err)
}
