package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpipulse/internal/config"
	"cpipulse/internal/cpi"
	"cpipulse/internal/dataprocessing"
	"cpipulse/internal/infrastructure"
)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewDashboardService(config.DataConfig{SampleSeed: 1}, logger, infrastructure.NewMetrics())
	require.NoError(t, err)
	return s
}

func fullRange(t *testing.T, s *DashboardService) cpi.DateRange {
	t.Helper()
	info := s.Info()
	return cpi.DateRange{Start: info.MinDate, End: info.MaxDate}
}

func TestDashboardServiceViews(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	r := fullRange(t, s)

	t.Run("info", func(t *testing.T) {
		info := s.Info()
		assert.Equal(t, SourceSample, info.Source)
		assert.Equal(t, 70, info.Records)
		assert.True(t, info.MinDate.Before(info.MaxDate))
	})

	t.Run("table", func(t *testing.T) {
		table, err := s.Table(ctx, r)
		require.NoError(t, err)
		assert.Len(t, table, 70)
		assert.InDelta(t, 100.0, table[0].USCPINormalized, 1e-9)
	})

	t.Run("summary", func(t *testing.T) {
		summary, err := s.Summary(ctx, r)
		require.NoError(t, err)
		assert.InDelta(t, summary.IndiaInflation-summary.USInflation, summary.InflationDifferential, 1e-9)
	})

	t.Run("correlation", func(t *testing.T) {
		matrix, err := s.Correlation(ctx, r)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, matrix.Values[0][0], 1e-9)
	})

	t.Run("exchange stats", func(t *testing.T) {
		stats, err := s.ExchangeStats(ctx, r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stats.Mean, stats.Min)
		assert.LessOrEqual(t, stats.Mean, stats.Max)
	})

	t.Run("trendlines", func(t *testing.T) {
		lines, err := s.Trendlines(ctx, r)
		require.NoError(t, err)
		// Both CPI series and the rate drift upward in the sample data.
		assert.Greater(t, lines.IndiaVsExchange.Beta, 0.0)
		assert.Greater(t, lines.USVsExchange.Beta, 0.0)
	})

	t.Run("empty range", func(t *testing.T) {
		bad := cpi.DateRange{
			Start: r.End.AddDate(1, 0, 0),
			End:   r.End.AddDate(2, 0, 0),
		}
		_, err := s.Summary(ctx, bad)
		var empty *cpi.EmptyRangeError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, bad.Start, empty.Start)
	})
}

func TestReplaceDataset(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	t.Run("valid upload swaps the table", func(t *testing.T) {
		csv := `Date,US_CPI,India_CPI,Exchange_Rate_INR_USD
2022-01-01,100,100,74
2022-02-01,100.5,100.9,74.2
2022-03-01,101,101.8,74.5
`
		info, err := s.ReplaceDataset(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		assert.Equal(t, SourceUpload, info.Source)
		assert.Equal(t, 3, info.Records)
		assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), info.MinDate)
	})

	t.Run("malformed upload keeps current table", func(t *testing.T) {
		before := s.Info()
		_, err := s.ReplaceDataset(ctx, strings.NewReader("Date,US_CPI\n2022-01-01,100\n"))
		require.ErrorAs(t, err, new(*dataprocessing.MalformedInputError))
		assert.Equal(t, before, s.Info())
	})

	t.Run("reset restores sample", func(t *testing.T) {
		info := s.ResetSample(ctx)
		assert.Equal(t, SourceSample, info.Source)
		assert.Equal(t, 70, info.Records)
	})
}

func TestPreloadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	csv := `Date,US_CPI,India_CPI,Exchange_Rate_INR_USD
2023-01-01,100,100,80
2023-02-01,100.3,100.6,80.4
`
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := NewDashboardService(config.DataConfig{CSVPath: path}, logger, infrastructure.NewMetrics())
	require.NoError(t, err)

	info := s.Info()
	assert.Equal(t, SourceFile, info.Source)
	assert.Equal(t, 2, info.Records)
}
