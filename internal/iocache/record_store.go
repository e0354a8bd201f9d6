package iocache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// recordsTable is the name of the table for persisted scan records.
const recordsTable = "clearlabel_scan_records"

// RecordStoreImpl handles durable scan record storage using various database backends.
type RecordStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.RecordStore = &RecordStoreImpl{} // Compile-time check

// NewRecordStore initializes and returns a new RecordStore based on the backend type.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetRecordDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite record store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL record store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL record store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &RecordStoreImpl{
			db:      nil,
			backend: backend,
			connStr: connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported record backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	if _, err := db.Exec(getCreateRecordsQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", recordsTable, err)
	}

	return &RecordStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateRecordsQuery returns the CREATE TABLE query for the given backend.
func getCreateRecordsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				barcode VARCHAR(64) NOT NULL,
				user_id BIGINT NOT NULL,
				payload TEXT NOT NULL,
				score INT NOT NULL,
				risk_level VARCHAR(16) NOT NULL,
				created_at BIGINT NOT NULL,
				PRIMARY KEY (barcode, user_id)
			);
		`, recordsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				barcode TEXT NOT NULL,
				user_id BIGINT NOT NULL,
				payload TEXT NOT NULL,
				score INTEGER NOT NULL,
				risk_level TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				PRIMARY KEY (barcode, user_id)
			);
		`, recordsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				barcode TEXT NOT NULL,
				user_id INTEGER NOT NULL,
				payload TEXT NOT NULL,
				score INTEGER NOT NULL,
				risk_level TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				PRIMARY KEY (barcode, user_id)
			);
		`, recordsTable)
	}
}

// FindRecent retrieves the record for (barcode, userID) if it was created
// within maxAge. Older or missing records yield contract.ErrNoRecord.
func (rs *RecordStoreImpl) FindRecent(ctx context.Context, barcode string, userID int64, maxAge time.Duration) (schema.ScanRecord, error) {
	// Report no record for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return schema.ScanRecord{}, contract.ErrNoRecord
	}

	cutoff := time.Now().Add(-maxAge).Unix()

	var payload []byte
	var ts int64

	query := fmt.Sprintf(`SELECT payload, created_at FROM %s WHERE barcode = %s AND user_id = %s AND created_at >= %s`,
		recordsTable, rs.placeholder(1), rs.placeholder(2), rs.placeholder(3))
	row := rs.db.QueryRowContext(ctx, query, barcode, userID, cutoff)

	if err := row.Scan(&payload, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.ScanRecord{}, contract.ErrNoRecord
		}
		return schema.ScanRecord{}, fmt.Errorf("failed to query scan record: %w", err)
	}

	var result schema.SafetyScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt payload is treated as absent rather than fatal.
		return schema.ScanRecord{}, contract.ErrNoRecord
	}

	return schema.ScanRecord{
		Barcode:   barcode,
		UserID:    userID,
		Result:    result,
		CreatedAt: time.Unix(ts, 0),
	}, nil
}

// Save inserts or replaces the record for its (barcode, userID) pair.
func (rs *RecordStoreImpl) Save(ctx context.Context, rec schema.ScanRecord) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode scan record: %w", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = rs.db.ExecContext(ctx, rs.getUpsertQuery(),
		rec.Barcode, rec.UserID, payload, rec.Result.Score, string(rec.Result.RiskLevel), createdAt.Unix())
	return err
}

// ListRecords returns all persisted records ordered oldest first.
func (rs *RecordStoreImpl) ListRecords(ctx context.Context) ([]schema.ScanRecord, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT barcode, user_id, payload, created_at FROM %s ORDER BY created_at ASC`, recordsTable)
	rows, err := rs.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list scan records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.ScanRecord
	for rows.Next() {
		var rec schema.ScanRecord
		var payload []byte
		var ts int64
		if err := rows.Scan(&rec.Barcode, &rec.UserID, &payload, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		if err := json.Unmarshal(payload, &rec.Result); err != nil {
			continue // skip corrupt payloads
		}
		rec.CreatedAt = time.Unix(ts, 0)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// placeholder returns the parameter placeholder for the backend.
func (rs *RecordStoreImpl) placeholder(n int) string {
	switch rs.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// getUpsertQuery returns the UPSERT query for the backend.
func (rs *RecordStoreImpl) getUpsertQuery() string {
	switch rs.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (barcode, user_id, payload, score, risk_level, created_at) VALUES (?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE payload = new.payload, score = new.score, risk_level = new.risk_level, created_at = new.created_at`, recordsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (barcode, user_id, payload, score, risk_level, created_at) VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (barcode, user_id) DO UPDATE SET payload = EXCLUDED.payload, score = EXCLUDED.score, risk_level = EXCLUDED.risk_level, created_at = EXCLUDED.created_at`, recordsTable)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (barcode, user_id, payload, score, risk_level, created_at) VALUES (?, ?, ?, ?, ?, ?)`, recordsTable)
	}
}

// Close closes the underlying DB connection.
func (rs *RecordStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the record store.
func (rs *RecordStoreImpl) GetStatus() (schema.RecordStoreStatus, error) {
	status := schema.RecordStoreStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	// Get total records
	row := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", recordsTable))
	if err := row.Scan(&status.TotalRecords); err != nil {
		return status, fmt.Errorf("failed to get total records: %w", err)
	}

	if status.TotalRecords == 0 {
		return status, nil
	}

	// Distinct barcodes
	row = rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(DISTINCT barcode) FROM %s", recordsTable))
	if err := row.Scan(&status.DistinctBarcode); err != nil {
		return status, fmt.Errorf("failed to get distinct barcodes: %w", err)
	}

	// Get newest record time
	var lastTs int64
	row = rs.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at) FROM %s", recordsTable))
	if err := row.Scan(&lastTs); err != nil {
		return status, fmt.Errorf("failed to get last record time: %w", err)
	}
	status.LastRecordTime = time.Unix(lastTs, 0)

	// Get oldest record time
	var oldestTs int64
	row = rs.db.QueryRow(fmt.Sprintf("SELECT MIN(created_at) FROM %s", recordsTable))
	if err := row.Scan(&oldestTs); err != nil {
		return status, fmt.Errorf("failed to get oldest record time: %w", err)
	}
	status.OldestRecord = time.Unix(oldestTs, 0)

	// Estimate table size (approximate)
	// For SQLite, use page_count * page_size
	// For others, use database-specific size queries
	switch rs.backend {
	case schema.SQLiteBackend:
		row = rs.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}

	case schema.MySQLBackend:
		// Fallback rough estimate if information_schema query fails
		status.TableSizeBytes = int64(status.TotalRecords) * 1000

		cfg, err := mysql.ParseDSN(rs.connStr)
		if err != nil {
			break
		}
		if cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		row := rs.db.QueryRow(sizeQuery, cfg.DBName, recordsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalRecords) * 1000
		}

	case schema.PostgreSQLBackend:
		row = rs.db.QueryRow("SELECT pg_total_relation_size($1)", recordsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalRecords) * 1000 // Fallback rough estimate
		}

	default:
		status.TableSizeBytes = int64(status.TotalRecords) * 1000 // Rough estimate
	}

	return status, nil
}
