// Package cmd defines the command-line interface for clearlabel.
package cmd

import (
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(hazardsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheSweepCmd)

	// Add the records subcommands to the parent records command
	recordsCmd.AddCommand(recordsStatusCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("record-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("record-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().Int64("user", 0, "User scope for caching and record lookups (0 = anonymous)")
	analyzeCmd.Flags().String("fetch-timeout", "", "Bound on each external fetch (e.g., 10s)")
	analyzeCmd.Flags().String("freshness", "", "Persisted record acceptance window (e.g., 24h)")
	analyzeCmd.Flags().String("sweep-interval", "", "Entry cache sweep period (empty = lazy eviction only)")
	analyzeCmd.Flags().String("product-api", "", "Product metadata endpoint override")
	analyzeCmd.Flags().String("chem-api", "", "Chemical database endpoint override")
	analyzeCmd.Flags().String("ai-endpoint", "", "Chat completion endpoint for hazard estimation (empty = disabled)")
	analyzeCmd.Flags().String("ai-api-key", "", "API key for the estimation endpoint (prefer CLEARLABEL_AI_API_KEY)")
	analyzeCmd.Flags().String("ai-model", "", "Model name for the estimation endpoint")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of recordsMigrateCmd to Viper
	recordsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(recordsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding records migrate flags", err)
	}
}
