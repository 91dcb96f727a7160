package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cpipulse/internal/cpi"
)

// rawHeaders is the input column set; derivedHeaders extends it with every
// computed column when "show all columns" is enabled.
var (
	rawHeaders = []string{
		cpi.ColumnDate, cpi.ColumnUSCPI, cpi.ColumnIndiaCPI, cpi.ColumnExchangeRate,
	}
	derivedHeaders = append(append([]string{}, rawHeaders...),
		"US_Inflation_YoY", "India_Inflation_YoY",
		"US_CPI_Normalized", "India_CPI_Normalized", "Exchange_Rate_Normalized",
		"PPP_Implied", "PPP_Deviation",
	)
)

// DownloadFilename returns the dated attachment name for a table export,
// e.g. cpi_comparison_20240131.csv.
func DownloadFilename(now time.Time) string {
	return fmt.Sprintf("cpi_comparison_%s.csv", now.Format("20060102"))
}

// CSVWriter serializes derived tables back to the CSV contract.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures table serialization.
type WriteOptions struct {
	IncludeDerived bool
	BOMPrefix      bool // UTF-8 BOM for Excel compatibility
}

// Write serializes the table to w: the raw column set, plus the derived
// columns when IncludeDerived is set. Undefined YoY cells are left empty.
func (cw *CSVWriter) Write(w io.Writer, table cpi.DerivedTable, opts WriteOptions) error {
	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	headers := rawHeaders
	if opts.IncludeDerived {
		headers = derivedHeaders
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}

	for i, row := range table {
		if err := writer.Write(formatRow(row, opts.IncludeDerived)); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile serializes the table to a file, creating parent directories.
func (cw *CSVWriter) WriteFile(path string, table cpi.DerivedTable, opts WriteOptions) error {
	cw.logger.Info("writing CSV report",
		slog.String("path", path),
		slog.Int("record_count", len(table)),
		slog.Bool("include_derived", opts.IncludeDerived))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	return cw.Write(file, table, opts)
}

func formatRow(row cpi.DerivedRow, derived bool) []string {
	record := []string{
		row.Date.Format("2006-01-02"),
		formatFloat(row.USCPI),
		formatFloat(row.IndiaCPI),
		formatFloat(row.ExchangeRate),
	}
	if !derived {
		return record
	}
	return append(record,
		formatOptional(row.USInflationYoY),
		formatOptional(row.IndiaInflationYoY),
		formatFloat(row.USCPINormalized),
		formatFloat(row.IndiaCPINormalized),
		formatFloat(row.ExchangeRateNormalized),
		formatFloat(row.PPPImplied),
		formatFloat(row.PPPDeviation),
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
