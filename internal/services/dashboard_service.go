package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"cpipulse/internal/config"
	"cpipulse/internal/cpi"
	"cpipulse/internal/dataprocessing"
	"cpipulse/internal/infrastructure"
)

// DashboardService owns the session's raw table: the generated sample
// dataset by default, replaceable by an uploaded CSV. Every view is
// recomputed from scratch as a pure function of (dataset, range); the
// service holds no filter state and caches nothing.
type DashboardService struct {
	mu     sync.RWMutex
	raw    cpi.Dataset
	source string

	sampleSeed int64
	logger     *slog.Logger
	metrics    *infrastructure.Metrics
}

// Dataset sources.
const (
	SourceSample = "sample"
	SourceFile   = "file"
	SourceUpload = "upload"
)

// TrendlineSet holds the OLS fits backing the two scatter views.
type TrendlineSet struct {
	IndiaVsExchange cpi.Trendline `json:"india_cpi_vs_exchange_rate"`
	USVsExchange    cpi.Trendline `json:"us_cpi_vs_exchange_rate"`
}

// DatasetInfo describes the currently loaded table.
type DatasetInfo struct {
	Source  string    `json:"source"`
	Records int       `json:"records"`
	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}

// NewDashboardService creates the service, preloading the CSV named in
// the config when present, the sample dataset otherwise.
func NewDashboardService(cfg config.DataConfig, logger *slog.Logger, metrics *infrastructure.Metrics) (*DashboardService, error) {
	s := &DashboardService{
		sampleSeed: cfg.SampleSeed,
		logger:     logger.With(slog.String("component", "dashboard_service")),
		metrics:    metrics,
	}

	if cfg.CSVPath != "" {
		file, err := os.Open(cfg.CSVPath)
		if err != nil {
			return nil, fmt.Errorf("open preload CSV: %w", err)
		}
		defer file.Close()

		ds, err := dataprocessing.ParseCSV(file)
		if err != nil {
			return nil, fmt.Errorf("parse preload CSV %s: %w", cfg.CSVPath, err)
		}
		s.raw = ds
		s.source = SourceFile
		s.logger.Info("preloaded dataset from file",
			slog.String("path", cfg.CSVPath),
			slog.Int("records", len(ds)))
		return s, nil
	}

	s.raw = cpi.SampleDataset(cfg.SampleSeed)
	s.source = SourceSample
	s.logger.Info("loaded sample dataset",
		slog.Int64("seed", cfg.SampleSeed),
		slog.Int("records", len(s.raw)))
	return s, nil
}

// snapshot returns the current raw dataset. The slice is never mutated
// after being swapped in, so sharing the backing array is safe.
func (s *DashboardService) snapshot() cpi.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Info describes the loaded dataset.
func (s *DashboardService) Info() DatasetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := DatasetInfo{Source: s.source, Records: len(s.raw)}
	if min, max, ok := s.raw.Bounds(); ok {
		info.MinDate = min
		info.MaxDate = max
	}
	return info
}

// filtered applies the range and turns an empty result into an
// EmptyRangeError carrying the requested bounds.
func (s *DashboardService) filtered(r cpi.DateRange) (cpi.Dataset, error) {
	ds := cpi.FilterRange(s.snapshot(), r)
	if len(ds) == 0 {
		return nil, &cpi.EmptyRangeError{Start: r.Start, End: r.End}
	}
	return ds, nil
}

// Table recomputes the full derived table for the range.
func (s *DashboardService) Table(ctx context.Context, r cpi.DateRange) (cpi.DerivedTable, error) {
	ds, err := s.filtered(r)
	if err != nil {
		s.metrics.ObserveRecompute("table", err)
		return nil, err
	}

	table, err := cpi.Derive(ds)
	s.metrics.ObserveRecompute("table", err)
	if err != nil {
		return nil, fmt.Errorf("derive table: %w", err)
	}

	s.logger.DebugContext(ctx, "derived table recomputed",
		slog.Int("records", len(table)))
	return table, nil
}

// Summary recomputes the header metrics for the range.
func (s *DashboardService) Summary(ctx context.Context, r cpi.DateRange) (cpi.Summary, error) {
	ds, err := s.filtered(r)
	if err != nil {
		s.metrics.ObserveRecompute("summary", err)
		return cpi.Summary{}, err
	}

	summary, err := cpi.ComputeSummary(ds)
	s.metrics.ObserveRecompute("summary", err)
	if err != nil {
		return cpi.Summary{}, fmt.Errorf("compute summary: %w", err)
	}
	return summary, nil
}

// Correlation recomputes the pairwise Pearson matrix for the range.
func (s *DashboardService) Correlation(ctx context.Context, r cpi.DateRange) (cpi.CorrelationMatrix, error) {
	ds, err := s.filtered(r)
	if err != nil {
		s.metrics.ObserveRecompute("correlation", err)
		return cpi.CorrelationMatrix{}, err
	}

	matrix, err := cpi.Correlate(ds)
	s.metrics.ObserveRecompute("correlation", err)
	if err != nil {
		return cpi.CorrelationMatrix{}, fmt.Errorf("correlate: %w", err)
	}
	return matrix, nil
}

// ExchangeStats recomputes mean/min/max of the exchange rate for the range.
func (s *DashboardService) ExchangeStats(ctx context.Context, r cpi.DateRange) (cpi.ExchangeStats, error) {
	ds, err := s.filtered(r)
	if err != nil {
		s.metrics.ObserveRecompute("exchange_stats", err)
		return cpi.ExchangeStats{}, err
	}

	stats, err := cpi.ComputeExchangeStats(ds)
	s.metrics.ObserveRecompute("exchange_stats", err)
	if err != nil {
		return cpi.ExchangeStats{}, fmt.Errorf("exchange stats: %w", err)
	}
	return stats, nil
}

// Trendlines fits the two CPI-vs-exchange-rate OLS lines for the range.
func (s *DashboardService) Trendlines(ctx context.Context, r cpi.DateRange) (TrendlineSet, error) {
	ds, err := s.filtered(r)
	if err != nil {
		s.metrics.ObserveRecompute("trendlines", err)
		return TrendlineSet{}, err
	}

	fx := ds.ExchangeRateSeries()

	india, err := cpi.FitTrendline(ds.IndiaCPISeries(), fx, cpi.ColumnIndiaCPI)
	if err != nil {
		s.metrics.ObserveRecompute("trendlines", err)
		return TrendlineSet{}, fmt.Errorf("fit India CPI trendline: %w", err)
	}
	us, err := cpi.FitTrendline(ds.USCPISeries(), fx, cpi.ColumnUSCPI)
	s.metrics.ObserveRecompute("trendlines", err)
	if err != nil {
		return TrendlineSet{}, fmt.Errorf("fit US CPI trendline: %w", err)
	}

	return TrendlineSet{IndiaVsExchange: india, USVsExchange: us}, nil
}

// ReplaceDataset parses an uploaded CSV and swaps it in as the session
// table. A malformed upload leaves the current table untouched; whether
// to fall back to sample data is the caller's decision.
func (s *DashboardService) ReplaceDataset(ctx context.Context, r io.Reader) (DatasetInfo, error) {
	ds, err := dataprocessing.ParseCSV(r)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("error").Inc()
		return DatasetInfo{}, err
	}

	s.mu.Lock()
	s.raw = ds
	s.source = SourceUpload
	s.mu.Unlock()

	s.metrics.UploadsTotal.WithLabelValues("ok").Inc()
	s.logger.InfoContext(ctx, "dataset replaced by upload",
		slog.Int("records", len(ds)))
	return s.Info(), nil
}

// ResetSample restores the generated sample dataset.
func (s *DashboardService) ResetSample(ctx context.Context) DatasetInfo {
	s.mu.Lock()
	s.raw = cpi.SampleDataset(s.sampleSeed)
	s.source = SourceSample
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset reset to sample data")
	return s.Info()
}
