package contract

import (
	"fmt"
	"os"

	"github.com/clearlabel/clearlabel/schema"
	"github.com/fatih/color"
)

// Risk label constants.
const (
	ExcellentValue = "Excellent" // no meaningful hazards
	GoodValue      = "Good"      // minor hazards
	PoorValue      = "Poor"      // significant hazards
	BadValue       = "Bad"       // severe hazards
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor signals a clean product.
	GoodColor      = color.New(color.FgCyan)              // goodColor represents informational / acceptable signal.
	PoorColor      = color.New(color.FgYellow)            // poorColor represents standard caution, not bold.
	BadColor       = color.New(color.FgRed, color.Bold)   // badColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a risk level. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(level schema.RiskLevel) string {
	switch level {
	case schema.ExcellentRisk:
		return ExcellentValue
	case schema.GoodRisk:
		return GoodValue
	case schema.PoorRisk:
		return PoorValue
	default:
		return BadValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(level schema.RiskLevel) string {
	text := GetPlainLabel(level)

	switch text {
	case ExcellentValue:
		return ExcellentColor.Sprint(text)
	case GoodValue:
		return GoodColor.Sprint(text)
	case PoorValue:
		return PoorColor.Sprint(text)
	default: // "Bad"
		return BadColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarning logs a warning to stderr.
func LogWarning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}
