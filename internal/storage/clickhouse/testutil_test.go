package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a ClickHouse container and returns a connection.
// Returns a cleanup function that must be called when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60 * time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	runTestMigrations(t, conn)

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// runTestMigrations creates the analytics schema directly, avoiding an
// import cycle with the migrations package.
func runTestMigrations(t *testing.T, conn *Conn) {
	t.Helper()

	err := conn.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS closed_trades (
			wallet               String,
			asset                String,
			quantity             Float64,
			cost_basis           Float64,
			proceeds             Float64,
			realized_pnl         Float64,
			pnl_percent          Nullable(Float64),
			buy_timestamp        Int64,
			sell_timestamp       Int64,
			holding_duration_sec Int64,
			signature            String,
			zero_cost_basis      UInt8
		) ENGINE = MergeTree()
		ORDER BY (wallet, sell_timestamp)
		SETTINGS index_granularity = 8192
	`)
	require.NoError(t, err)
}

// ptr is a helper to create pointers for test values
func ptr[T any](v T) *T {
	return &v
}
