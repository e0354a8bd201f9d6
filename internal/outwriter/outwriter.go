// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteResult prints a scan result using the configured output format.
func (ow *OutWriter) WriteResult(result schema.SafetyScoreResult, cfg *contract.Config) error {
	return WriteScanResult(result, cfg)
}

// WriteHazards prints the hazard catalog using the configured output format.
func (ow *OutWriter) WriteHazards(catalog *core.Catalog, cfg *contract.Config) error {
	return WriteHazardCatalog(catalog, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for ingredient names in
// table output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the penalty, provenance and hazard code columns with
	// borders and padding
	baseWidth := 45

	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable name width
		return 15
	}
	if available > 60 {
		// Maximum name width to prevent overly wide tables
		return 60
	}
	return available
}

// truncateName shortens an ingredient name to fit the table, keeping the
// leading characters which carry the most signal.
func truncateName(name string, maxWidth int) string {
	if len(name) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return name[:maxWidth]
	}
	return name[:maxWidth-3] + "..."
}
