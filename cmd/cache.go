package cmd

import (
	"fmt"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/iocache"
	"github.com/spf13/cobra"
)

// cacheSetup loads minimal configuration needed for cache operations.
// The entry cache is in-process, so only the config file needs reading.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Entry cache only; persistence stays disabled for cache commands.
	if err := iocache.InitStores("none", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on entry cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the in-memory analysis cache",
	Long: `Manage the TTL entry cache that backs the first analysis tier.

Every expensive lookup lands here: product metadata, per-ingredient hazard
data, safety scores and complete analyses, each with its own TTL. Entries
expire lazily on access; sweeping only reclaims memory early.

Subcommands:
  status - Show hit/miss counters and live entry counts
  clear  - Drop every cached entry
  sweep  - Remove expired entries now

Examples:
  # Check cache statistics
  clearlabel cache status

  # Drop everything after a weight table change
  clearlabel cache clear`,
}

// cacheStatusCmd shows entry cache statistics.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache counters and live entry counts",
	Long: `Show hit, miss and eviction counters plus live entries per data type.

Use this to:
- Verify the cascade is reusing cached work
- See which data types dominate the cache
- Debug unexpected external fetches

Examples:
  # Check cache statistics
  clearlabel cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.PrintCacheStats(iocache.Manager.GetEntryCache().Stats())
	},
}

// cacheClearCmd drops all cached entries.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached analysis data",
	Long: `Drop every entry from the in-memory cache.

Use this when:
- Hazard weights were overridden and stale scores must go
- External source data is known to have changed
- Testing cascade behavior without cached state

Examples:
  # Clear the cache
  clearlabel cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.Manager.GetEntryCache().Close(); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheSweepCmd removes expired entries immediately.
var cacheSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove expired entries now",
	Long: `Run one sweep pass over the cache, removing every expired entry.

Correctness never depends on sweeping; expired entries are already
invisible to lookups. Sweeping only releases their memory earlier.

Examples:
  # Reclaim memory from expired entries
  clearlabel cache sweep`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		removed := iocache.Manager.GetEntryCache().Sweep()
		fmt.Printf("Removed %d expired entries.\n", removed)
	},
}
