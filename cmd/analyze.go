package cmd

import (
	"errors"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/outwriter"
	"github.com/spf13/cobra"
)

// analyzeCmd resolves a barcode to a safety score through the cache cascade.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <barcode>",
	Short: "Score a cosmetic product by its ingredient hazards.",
	Long: `Resolve a product barcode to a 0-100 safety score.

The lookup cascades through three tiers, stopping at the first hit:
1. The in-memory entry cache (complete analyses expire after 6 hours)
2. The persisted record store (records fresher than 24 hours)
3. The external sources: product metadata by barcode, then hazard codes
   per ingredient, each behind its own nested cache

Scoring weighs every recognized GHS hazard code by its base weight and
class/category factors; unknown codes are skipped with a warning rather
than failing the scan.

Examples:
  # Score a product
  clearlabel analyze 3600523351442

  # Score for a specific user and export the breakdown
  clearlabel analyze 3600523351442 --user 7 --output csv --output-file scan.csv

  # Tighten the external fetch budget
  clearlabel analyze 3600523351442 --fetch-timeout 5s`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if input.Barcode == "" {
			contract.LogFatal("Cannot analyze", errors.New("barcode must not be empty"))
		}

		analyzer, err := newAnalyzer()
		if err != nil {
			contract.LogFatal("Cannot build analyzer", err)
		}

		result, err := analyzer.Analyze(rootCtx, input.Barcode, cfg.UserID)
		if err != nil {
			contract.LogFatal("Cannot analyze product", err)
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteResult(result, cfg); err != nil {
			contract.LogFatal("Cannot write result", err)
		}
	},
}
