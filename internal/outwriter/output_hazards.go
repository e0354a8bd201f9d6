package outwriter

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/clearlabel/clearlabel/core"
	"github.com/clearlabel/clearlabel/internal/contract"
	"github.com/clearlabel/clearlabel/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// hazardRow is the JSON shape for one catalog entry.
type hazardRow struct {
	Code           string  `json:"code"`
	Class          string  `json:"class"`
	Category       string  `json:"category"`
	Description    string  `json:"description"`
	BaseWeight     float64 `json:"base_weight"`
	ClassFactor    float64 `json:"class_factor"`
	CategoryFactor float64 `json:"category_factor"`
	Penalty        float64 `json:"penalty"`
}

// WriteHazardCatalog outputs the active hazard table, dispatching based on the
// output format configured. Shows the effective weights after any overrides.
func WriteHazardCatalog(catalog *core.Catalog, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	rows := collectHazardRows(catalog)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHazardCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHazardTable(w, rows, fmtFloat)
		}, "Wrote table")
	}
}

// collectHazardRows flattens the catalog into sorted display rows.
func collectHazardRows(catalog *core.Catalog) []hazardRow {
	codes := catalog.Codes()
	rows := make([]hazardRow, 0, len(codes))
	for _, code := range codes {
		info, err := catalog.Lookup(code)
		if err != nil {
			continue
		}
		penalty, _ := catalog.Penalty(code)
		rows = append(rows, hazardRow{
			Code:           code,
			Class:          info.Class,
			Category:       info.Category,
			Description:    info.Description,
			BaseWeight:     info.BaseWeight,
			ClassFactor:    schema.HazardClassFactor(code),
			CategoryFactor: schema.HazardCategoryFactor(code),
			Penalty:        penalty,
		})
	}
	return rows
}

// writeHazardCSV writes one row per hazard code.
func writeHazardCSV(w io.Writer, rows []hazardRow, fmtFloat func(float64) string) error {
	header := []string{"code", "class", "category", "description", "base_weight", "class_factor", "category_factor", "penalty"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range rows {
			row := []string{
				r.Code, r.Class, r.Category, r.Description,
				fmtFloat(r.BaseWeight), fmtFloat(r.ClassFactor), fmtFloat(r.CategoryFactor), fmtFloat(r.Penalty),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeHazardTable generates and writes the human-readable table.
func writeHazardTable(w io.Writer, rows []hazardRow, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Class", "Description", "Weight", "Penalty"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range rows {
		desc := r.Description
		if len(desc) > 60 {
			desc = strings.TrimSpace(desc[:57]) + "..."
		}
		data = append(data, []string{
			r.Code,
			r.Class,
			desc,
			fmtFloat(r.BaseWeight),
			fmtFloat(r.Penalty),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
