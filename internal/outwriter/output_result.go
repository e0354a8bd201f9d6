package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteScanResult outputs a scan result, dispatching based on the output format configured.
func WriteScanResult(result schema.SafetyScoreResult, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTable(result, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeResultCSV writes one row per contributing ingredient.
func writeResultCSV(w io.Writer, result schema.SafetyScoreResult, fmtFloat func(float64) string) error {
	header := []string{"barcode", "product", "brand", "score", "risk_level", "ingredient", "penalty", "hazard_codes", "provenance"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		label := contract.GetPlainLabel(result.RiskLevel)

		// A product with no contributing ingredients still gets one row.
		if len(result.Contributing) == 0 {
			return csvWriter.Write([]string{
				result.Barcode, result.ProductName, result.Brand,
				strconv.Itoa(result.Score), label, "", "", "", "",
			})
		}

		for _, ing := range result.Contributing {
			row := []string{
				result.Barcode,
				result.ProductName,
				result.Brand,
				strconv.Itoa(result.Score),
				label,
				ing.Name,
				fmtFloat(ing.Penalty),
				strings.Join(ing.HazardCodes, ";"),
				string(ing.Provenance),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeResultTable generates and writes the human-readable table.
func writeResultTable(result schema.SafetyScoreResult, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	label := contract.GetPlainLabel(result.RiskLevel)
	if cfg.UseColors {
		label = contract.GetColorLabel(result.RiskLevel)
	}

	// Summary block above the ingredient table
	fmt.Fprintf(writer, "Product: %s\n", orDash(result.ProductName))
	fmt.Fprintf(writer, "Brand: %s\n", orDash(result.Brand))
	fmt.Fprintf(writer, "Barcode: %s\n", result.Barcode)
	fmt.Fprintf(writer, "Score: %d/100 (%s)\n", result.Score, label)
	fmt.Fprintf(writer, "Total Penalty: %s\n\n", fmtFloat(result.TotalPenalty))

	if len(result.Contributing) == 0 {
		fmt.Fprintln(writer, "No ingredients with hazard data.")
		return nil
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Ingredient", "Penalty", "Hazards", "Provenance"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxName := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, ing := range result.Contributing {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(ing.Name, maxName),
			fmtFloat(ing.Penalty),
			strings.Join(ing.HazardCodes, ","),
			string(ing.Provenance),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(writer, "\nComputed at %s\n", result.ComputedAt.Format(contract.DateTimeFormat))
	return nil
}

// orDash substitutes a dash for missing metadata fields.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
