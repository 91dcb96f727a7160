package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cpipulse/internal/cpi"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// WorkbookWriter exports derived tables as Excel workbooks for offline
// analysis: one sheet with the full table, one with the header metrics.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// WriteFile writes the table and summary to an .xlsx file.
func (ww *WorkbookWriter) WriteFile(path string, table cpi.DerivedTable, summary cpi.Summary) error {
	ww.logger.Info("writing XLSX report",
		slog.String("path", path),
		slog.Int("record_count", len(table)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := ww.writeDataSheet(f, table); err != nil {
		return err
	}
	if err := ww.writeSummarySheet(f, summary); err != nil {
		return err
	}

	// Drop the default sheet left over from NewFile.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (ww *WorkbookWriter) writeDataSheet(f *excelize.File, table cpi.DerivedTable) error {
	if _, err := f.NewSheet(dataSheet); err != nil {
		return fmt.Errorf("create data sheet: %w", err)
	}

	headers := make([]interface{}, len(derivedHeaders))
	for i, h := range derivedHeaders {
		headers[i] = h
	}
	if err := f.SetSheetRow(dataSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write data headers: %w", err)
	}

	for i, row := range table {
		cells := []interface{}{
			row.Date.Format("2006-01-02"),
			row.USCPI,
			row.IndiaCPI,
			row.ExchangeRate,
			optionalCell(row.USInflationYoY),
			optionalCell(row.IndiaInflationYoY),
			row.USCPINormalized,
			row.IndiaCPINormalized,
			row.ExchangeRateNormalized,
			row.PPPImplied,
			row.PPPDeviation,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell coordinates for row %d: %w", i, err)
		}
		if err := f.SetSheetRow(dataSheet, cell, &cells); err != nil {
			return fmt.Errorf("write data row %d: %w", i, err)
		}
	}
	return nil
}

func (ww *WorkbookWriter) writeSummarySheet(f *excelize.File, summary cpi.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	formatted := summary.Format()
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"US Cumulative Inflation", formatted.USInflation},
		{"India Cumulative Inflation", formatted.IndiaInflation},
		{"Exchange Rate Change", formatted.ExchangeChange},
		{"Inflation Differential (India - US)", formatted.InflationDifferential},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell coordinates for summary row %d: %w", i, err)
		}
		r := row
		if err := f.SetSheetRow(summarySheet, cell, &r); err != nil {
			return fmt.Errorf("write summary row %d: %w", i, err)
		}
	}
	return nil
}

func optionalCell(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
