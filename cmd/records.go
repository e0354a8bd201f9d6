package cmd

import (
	"fmt"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/iocache"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordsSetup loads minimal configuration needed for record store operations.
// This is used by commands that need the store without full shared setup.
func recordsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get record-related config values
	backend := schema.DatabaseBackend(viper.GetString("record-backend"))
	connStr := viper.GetString("record-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize storage with the loaded config
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.RecordBackend = backend
	cfg.RecordDBConnect = connStr

	return nil
}

// recordsSetupWrapper wraps recordsSetup to provide PreRunE for records commands.
func recordsSetupWrapper(_ *cobra.Command, _ []string) error {
	return recordsSetup()
}

// recordsCmd focused on persisted scan record management.
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage persisted scan records (second analysis tier)",
	Long: `Manage the durable scan record store behind the entry cache.

Records persist completed analyses per (barcode, user) pair and serve
repeat scans for up to 24 hours without touching external sources.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None

Subcommands:
  status  - Show record counts and connection info
  clear   - Remove all persisted records
  export  - Export records to a Parquet file
  migrate - Run schema migrations

Examples:
  # Check record store status
  clearlabel records status

  # Export scan history for analytics
  clearlabel records export --output-file scans.parquet`,
}

// recordsStatusCmd shows record store status.
var recordsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record counts and connection details",
	Long: `Show detailed information about the scan record store.

Displays:
- Backend type and connection status
- Total records and distinct barcodes
- Newest and oldest record timestamps
- Storage size

Examples:
  # Check record store status
  clearlabel records status`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get record status", err)
		}
		iocache.PrintRecordStatus(status)
	},
}

// recordsClearCmd clears the record store.
var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all persisted scan records",
	Long: `Delete all persisted scan records from the configured backend.

Use this when:
- Hazard weights changed and historical scores are misleading
- A user requested deletion of their scan history
- Testing cascade behavior without persisted state

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the records table

Examples:
  # Clear SQLite records (default)
  clearlabel records clear

  # Clear MySQL records (set connection string via env variable)
  CLEARLABEL_RECORD_BACKEND=mysql CLEARLABEL_RECORD_DB_CONNECT="..." clearlabel records clear`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearRecords(cfg.RecordBackend, iocache.GetRecordDBFilePath(), cfg.RecordDBConnect); err != nil {
			contract.LogFatal("Failed to clear records", err)
		}
		fmt.Println("Records cleared successfully.")
	},
}

// recordsExportCmd exports records to Parquet.
var recordsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scan records to a Parquet file",
	Long: `Export all persisted scan records to a Parquet file for analytics.

The output includes barcode, user, score, risk level and the full
per-ingredient penalty breakdown, and can be read by Spark, Arrow,
Pandas, DuckDB or any other Parquet-compatible tool.

Examples:
  # Export all scan records
  clearlabel records export --output-file scans.parquet`,
	PreRunE: recordsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		outputFile := viper.GetString("output-file")
		if err := iocache.ExecuteRecordExport(rootCtx, outputFile); err != nil {
			contract.LogFatal("Failed to export records", err)
		}
	},
}

// recordsMigrateCmd runs schema migrations for the record store.
var recordsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run record store schema migrations",
	Long: `Apply or roll back schema migrations for the scan record store.

Target versions:
  -1 - migrate to the latest version (default)
   0 - roll back all migrations
   N - migrate to version N

Examples:
  # Migrate to the latest schema
  clearlabel records migrate

  # Roll everything back
  clearlabel records migrate --target-version 0`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// Migrations open their own connection; only the config file is needed.
		return loadConfigFile()
	},
	Run: func(_ *cobra.Command, _ []string) {
		backend := schema.DatabaseBackend(viper.GetString("record-backend"))
		connStr := viper.GetString("record-db-connect")
		targetVersion := viper.GetInt("target-version")

		if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
			contract.LogFatal("Invalid connection string", err)
		}
		if err := iocache.MigrateRecords(backend, connStr, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
