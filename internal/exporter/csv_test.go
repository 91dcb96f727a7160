package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpipulse/internal/cpi"
)

func testTable(t *testing.T) cpi.DerivedTable {
	t.Helper()

	ds := make(cpi.Dataset, 14)
	start := time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range ds {
		ds[i] = cpi.Observation{
			Date:         start.AddDate(0, i, 0),
			USCPI:        100 + float64(i)*0.2,
			IndiaCPI:     100 + float64(i)*0.4,
			ExchangeRate: 70 + float64(i)*0.15,
		}
	}
	table, err := cpi.Derive(ds)
	require.NoError(t, err)
	return table
}

func TestCSVWriter(t *testing.T) {
	table := testTable(t)
	writer := NewCSVWriter(nil)

	t.Run("raw columns only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writer.Write(&buf, table, WriteOptions{}))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, len(table)+1)
		assert.Equal(t, []string{"Date", "US_CPI", "India_CPI", "Exchange_Rate_INR_USD"}, records[0])
		assert.Equal(t, "2021-01-01", records[1][0])
	})

	t.Run("derived columns when enabled", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writer.Write(&buf, table, WriteOptions{IncludeDerived: true}))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records[0], 11)
		assert.Equal(t, "PPP_Deviation", records[0][10])

		// YoY is empty for the first 12 rows and populated after.
		assert.Empty(t, records[1][4])
		assert.NotEmpty(t, records[13][4])
	})

	t.Run("BOM prefix", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writer.Write(&buf, table, WriteOptions{BOMPrefix: true}))
		assert.True(t, strings.HasPrefix(buf.String(), "\xEF\xBB\xBF"))
	})

	t.Run("file write creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "out.csv")
		require.NoError(t, writer.WriteFile(path, table, WriteOptions{IncludeDerived: true}))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})
}

func TestDownloadFilename(t *testing.T) {
	now := time.Date(2024, time.January, 31, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "cpi_comparison_20240131.csv", DownloadFilename(now))
}

func TestWorkbookWriter(t *testing.T) {
	table := testTable(t)
	summary := cpi.Summary{USInflation: 2.4, IndiaInflation: 4.8, ExchangeChange: 4.93, InflationDifferential: 2.4}

	path := filepath.Join(t.TempDir(), "reports", "out.xlsx")
	require.NoError(t, NewWorkbookWriter(nil).WriteFile(path, table, summary))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
