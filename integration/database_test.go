//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/iocache"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRecordStoreWithMySQL exercises the record store against a real MySQL server.
func TestRecordStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "clearlabel",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/clearlabel?parseTime=true", host, port.Port())
	exerciseRecordStore(t, schema.MySQLBackend, connStr)
}

// TestRecordStoreWithPostgres exercises the record store against a real PostgreSQL server.
func TestRecordStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	exerciseRecordStore(t, schema.PostgreSQLBackend, connStr)
}

// exerciseRecordStore runs the shared save/find/status flow against a backend.
func exerciseRecordStore(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	ctx := context.Background()

	// Bring the schema up through the embedded migrations before touching the store.
	require.NoError(t, iocache.MigrateRecords(backend, connStr, -1))

	store, err := iocache.NewRecordStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	rec := schema.ScanRecord{
		Barcode: "3600550951455",
		UserID:  7,
		Result: schema.SafetyScoreResult{
			Barcode:      "3600550951455",
			ProductName:  "Hand Soap",
			Score:        82,
			RiskLevel:    schema.GoodRisk,
			TotalPenalty: 18,
			ComputedAt:   time.Now(),
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.FindRecent(ctx, "3600550951455", 7, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 82, got.Result.Score)
	assert.Equal(t, schema.GoodRisk, got.Result.RiskLevel)

	// Upsert replaces the existing row
	rec.Result.Score = 64
	rec.Result.RiskLevel = schema.GoodRisk
	require.NoError(t, store.Save(ctx, rec))

	got, err = store.FindRecent(ctx, "3600550951455", 7, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Result.Score)

	// Freshness window excludes old records
	stale := rec
	stale.Barcode = "000"
	stale.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, store.Save(ctx, stale))
	_, err = store.FindRecent(ctx, "000", 7, 24*time.Hour)
	assert.ErrorIs(t, err, contract.ErrNoRecord)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalRecords)
	assert.Equal(t, 2, status.DistinctBarcode)

	// Clearing drops the table entirely
	require.NoError(t, iocache.ClearRecords(backend, "", connStr))

	// Rolling every migration back succeeds even after the table is gone
	require.NoError(t, iocache.MigrateRecords(backend, connStr, 0))
}
