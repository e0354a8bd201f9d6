package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/fetch"
	"github.com/clearlabel/clearlabel/internal/iocache"
	"github.com/clearlabel/clearlabel/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// stopSweeper halts the background cache sweeper, when one was started.
var stopSweeper = func() {}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "clearlabel",
	Short:              "Score cosmetic products by their ingredient hazards.",
	Long:               `Clearlabel resolves product barcodes to ingredient hazard data and computes a 0-100 safety score, caching every expensive lookup along the way.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".clearlabel") // Name of config file (without extension)
		viper.SetConfigType("yaml")        // We'll use YAML format
		viper.AddConfigPath(".")           // Look in the current directory
		viper.AddConfigPath("$HOME")       // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CLEARLABEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("record-backend", schema.SQLiteBackend)
	viper.SetDefault("record-db-connect", "")
	viper.SetDefault("fetch-timeout", "")
	viper.SetDefault("freshness", "")
	viper.SetDefault("sweep-interval", "")
	viper.SetDefault("user", 0)
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.Barcode = strings.TrimSpace(args[0])
	}

	// 4. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 5. Initialize storage layer with validated config
	if err := iocache.InitStores(cfg.RecordBackend, cfg.RecordDBConnect); err != nil {
		return fmt.Errorf("failed to initialize stores: %w", err)
	}

	// 6. Start the background sweeper when one is configured
	if cfg.SweepInterval > 0 {
		if store, ok := iocache.Manager.GetEntryCache().(*iocache.MemoryStore); ok {
			stopSweeper = store.StartSweeper(cfg.SweepInterval)
		}
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".clearlabel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// newAnalyzer builds the cascade from the validated config and the global
// store manager.
func newAnalyzer() (*core.Analyzer, error) {
	catalog, err := core.NewCatalog(cfg.HazardOverrides)
	if err != nil {
		return nil, err
	}

	products := fetch.NewOpenBeautyFactsClient(cfg.ProductAPI, cfg.FetchTimeout)

	// Avoid a typed-nil estimator sneaking into the interface slot.
	var estimator contract.HazardEstimator
	if e := fetch.NewChatEstimator(cfg.AIEndpoint, cfg.AIAPIKey, cfg.AIModel, cfg.FetchTimeout); e != nil {
		estimator = e
	}
	ingredients := fetch.NewPubChemClient(cfg.ChemAPI, cfg.FetchTimeout, estimator)

	return core.NewAnalyzer(cfg, iocache.Manager, products, ingredients, catalog), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// Shutdown stops background work started during setup.
func Shutdown() {
	stopSweeper()
}
