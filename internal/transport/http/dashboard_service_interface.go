package http

import (
	"context"
	"io"

	"cpipulse/internal/cpi"
	"cpipulse/internal/services"
)

// DashboardServiceInterface defines the service contract the dashboard
// handler depends on. Kept minimal so tests can substitute fakes.
type DashboardServiceInterface interface {
	Info() services.DatasetInfo
	Table(ctx context.Context, r cpi.DateRange) (cpi.DerivedTable, error)
	Summary(ctx context.Context, r cpi.DateRange) (cpi.Summary, error)
	Correlation(ctx context.Context, r cpi.DateRange) (cpi.CorrelationMatrix, error)
	ExchangeStats(ctx context.Context, r cpi.DateRange) (cpi.ExchangeStats, error)
	Trendlines(ctx context.Context, r cpi.DateRange) (services.TrendlineSet, error)
	ReplaceDataset(ctx context.Context, r io.Reader) (services.DatasetInfo, error)
	ResetSample(ctx context.Context) services.DatasetInfo
}
