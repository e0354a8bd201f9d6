package iocache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobalStores rewinds the package-level init state so each test can
// exercise InitStores from scratch.
func resetGlobalStores() {
	CloseStores()
	Manager.Lock()
	Manager.entries = nil
	Manager.records = nil
	Manager.Unlock()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
}

func TestInitStores(t *testing.T) {
	resetGlobalStores()
	defer resetGlobalStores()

	dbPath := filepath.Join(t.TempDir(), "records.db")
	require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))

	assert.NotNil(t, Manager.GetEntryCache())
	assert.NotNil(t, Manager.GetRecordStore())

	// A second call is a no-op, not a re-initialization.
	cache := Manager.GetEntryCache()
	require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
	assert.Same(t, cache, Manager.GetEntryCache())
}

func TestInitStoresNoneBackend(t *testing.T) {
	resetGlobalStores()
	defer resetGlobalStores()

	require.NoError(t, InitStores(schema.NoneBackend, ""))
	require.NotNil(t, Manager.GetRecordStore())

	status, err := Manager.GetRecordStore().GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestCloseStoresIdempotent(t *testing.T) {
	resetGlobalStores()
	defer resetGlobalStores()

	require.NoError(t, InitStores(schema.SQLiteBackend, filepath.Join(t.TempDir(), "records.db")))
	CloseStores()
	CloseStores() // second close must be safe
}

func TestClearRecordsSQLite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "records.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("stale"), 0o644))

	require.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""))
	_, err := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	// Clearing an absent file is not an error.
	require.NoError(t, ClearRecords(schema.SQLiteBackend, dbPath, ""))
}

func TestClearRecordsValidation(t *testing.T) {
	assert.Error(t, ClearRecords(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearRecords(schema.NoneBackend, "", ""))
	assert.Error(t, ClearRecords(schema.DatabaseBackend("oracle"), "", ""))
}
