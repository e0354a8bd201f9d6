package cmd

import (
	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/internal/outwriter"
	"github.com/spf13/cobra"
)

// hazardsCmd prints the active hazard catalog.
var hazardsCmd = &cobra.Command{
	Use:   "hazards",
	Short: "Show the active GHS hazard catalog and effective penalties.",
	Long: `Print every hazard code the scorer recognizes, with its class,
description, base weight and the effective penalty after class and
category factors.

Base weights can be overridden per code in the config file:

  hazard_weights:
    H315: 7
    H319: 4

Examples:
  # Print the full catalog
  clearlabel hazards

  # Export the effective weights for review
  clearlabel hazards --output csv --output-file hazards.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		catalog, err := core.NewCatalog(cfg.HazardOverrides)
		if err != nil {
			contract.LogFatal("Cannot build catalog", err)
		}

		ow := outwriter.NewOutWriter()
		if err := ow.WriteHazards(catalog, cfg); err != nil {
			contract.LogFatal("Cannot write catalog", err)
		}
	},
}
