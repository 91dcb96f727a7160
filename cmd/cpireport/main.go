package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cpipulse/internal/config"
	"cpipulse/internal/cpi"
	"cpipulse/internal/dataprocessing"
	"cpipulse/internal/exporter"
)

func main() {
	inputPath := flag.String("input", "", "input CSV (Date, US_CPI, India_CPI, Exchange_Rate_INR_USD); sample data when omitted")
	fromStr := flag.String("from", "", "range start, YYYY-MM-DD (defaults to first record)")
	toStr := flag.String("to", "", "range end, YYYY-MM-DD (defaults to last record)")
	outputDir := flag.String("out", "", "output directory (defaults to configured reports dir)")
	xlsx := flag.Bool("xlsx", false, "also write an XLSX workbook with a summary sheet")
	seed := flag.Int64("seed", 1, "sample data seed, used only without -input")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *outputDir == "" {
		*outputDir = cfg.Data.ReportsDir
	}

	ds, err := loadDataset(*inputPath, *seed)
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded", "records", len(ds))

	r, err := resolveRange(ds, *fromStr, *toStr)
	if err != nil {
		slog.Error("Invalid date range", "error", err)
		os.Exit(1)
	}

	filtered := cpi.FilterRange(ds, r)
	if len(filtered) == 0 {
		slog.Error("No records in selected range",
			"from", r.Start.Format("2006-01-02"),
			"to", r.End.Format("2006-01-02"))
		os.Exit(1)
	}

	table, err := cpi.Derive(filtered)
	if err != nil {
		slog.Error("Failed to derive table", "error", err)
		os.Exit(1)
	}
	summary, err := cpi.ComputeSummary(filtered)
	if err != nil {
		slog.Error("Failed to compute summary", "error", err)
		os.Exit(1)
	}

	display := summary.Format()
	fmt.Printf("US Cumulative Inflation:    %s\n", display.USInflation)
	fmt.Printf("India Cumulative Inflation: %s\n", display.IndiaInflation)
	fmt.Printf("Exchange Rate Change:       %s\n", display.ExchangeChange)
	fmt.Printf("Inflation Differential:     %s (India - US)\n", display.InflationDifferential)

	csvPath := filepath.Join(*outputDir, exporter.DownloadFilename(time.Now()))
	writer := exporter.NewCSVWriter(slog.Default())
	if err := writer.WriteFile(csvPath, table, exporter.WriteOptions{IncludeDerived: true, BOMPrefix: true}); err != nil {
		slog.Error("Failed to write CSV report", "error", err)
		os.Exit(1)
	}
	slog.Info("CSV report written", "path", csvPath)

	if *xlsx {
		xlsxPath := csvPath[:len(csvPath)-len(".csv")] + ".xlsx"
		if err := exporter.NewWorkbookWriter(slog.Default()).WriteFile(xlsxPath, table, summary); err != nil {
			slog.Error("Failed to write XLSX report", "error", err)
			os.Exit(1)
		}
		slog.Info("XLSX report written", "path", xlsxPath)
	}
}

func loadDataset(path string, seed int64) (cpi.Dataset, error) {
	if path == "" {
		slog.Info("No input CSV given, generating sample data", "seed", seed)
		return cpi.SampleDataset(seed), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	return dataprocessing.ParseCSV(file)
}

func resolveRange(ds cpi.Dataset, fromStr, toStr string) (cpi.DateRange, error) {
	min, max, ok := ds.Bounds()
	if !ok {
		return cpi.DateRange{}, fmt.Errorf("dataset is empty")
	}
	r := cpi.DateRange{Start: min, End: max}

	if fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return cpi.DateRange{}, fmt.Errorf("parse -from: %w", err)
		}
		r.Start = from
	}
	if toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return cpi.DateRange{}, fmt.Errorf("parse -to: %w", err)
		}
		r.End = to
	}
	if r.Start.After(r.End) {
		return cpi.DateRange{}, fmt.Errorf("-from is after -to")
	}
	return r, nil
}
