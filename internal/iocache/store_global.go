package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &StoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetRecordDBFilePath returns the path to the SQLite DB file for record storage.
func GetRecordDBFilePath() string {
	return contract.GetRecordDBFilePath()
}

// InitStores initializes the global store manager. The entry cache is always
// an in-memory store; the record store backend is configurable and may be
// NoneBackend to disable persistence.
func InitStores(recordBackend schema.DatabaseBackend, recordConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		// This function body runs exactly once, even with concurrent calls.
		entryCache := NewMemoryStore()

		recordStore, err := NewRecordStore(recordBackend, recordConnStr)
		if err != nil {
			_ = entryCache.Close()
			initErr = fmt.Errorf("failed to initialize record store: %w", err)
			return
		}

		// Assign to global manager
		Manager.Lock()
		defer Manager.Unlock()
		Manager.entries = entryCache
		Manager.records = recordStore
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.entries != nil {
			_ = Manager.entries.Close()
		}
		if Manager.records != nil {
			_ = Manager.records.Close()
		}
	})
}

// ClearRecords clears the persisted scan records for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearRecords(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, recordsTable)

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, recordsTable)

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported record backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, tableName string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	query := fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}

	return nil
}
