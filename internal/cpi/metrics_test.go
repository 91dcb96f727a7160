package cpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearDataset builds n monthly records with each column interpolated
// linearly between its first and last value.
func linearDataset(n int, usFirst, usLast, indiaFirst, indiaLast, fxFirst, fxLast float64) Dataset {
	ds := make(Dataset, n)
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		f := float64(i) / float64(n-1)
		ds[i] = Observation{
			Date:         start.AddDate(0, i, 0),
			USCPI:        usFirst + f*(usLast-usFirst),
			IndiaCPI:     indiaFirst + f*(indiaLast-indiaFirst),
			ExchangeRate: fxFirst + f*(fxLast-fxFirst),
		}
	}
	return ds
}

func TestFilterRange(t *testing.T) {
	ds := linearDataset(24, 100, 102.4, 100, 104.8, 70, 73.45)

	t.Run("inclusive bounds", func(t *testing.T) {
		r := DateRange{Start: ds[3].Date, End: ds[10].Date}
		got := FilterRange(ds, r)
		require.Len(t, got, 8)
		assert.Equal(t, ds[3].Date, got[0].Date)
		assert.Equal(t, ds[10].Date, got[len(got)-1].Date)
	})

	t.Run("idempotent", func(t *testing.T) {
		r := DateRange{Start: ds[2].Date, End: ds[20].Date}
		once := FilterRange(ds, r)
		twice := FilterRange(once, r)
		assert.Equal(t, once, twice)
	})

	t.Run("empty when start past last date", func(t *testing.T) {
		r := DateRange{
			Start: ds[len(ds)-1].Date.AddDate(1, 0, 0),
			End:   ds[len(ds)-1].Date.AddDate(2, 0, 0),
		}
		assert.Empty(t, FilterRange(ds, r))
	})
}

func TestCumulativeChange(t *testing.T) {
	tests := []struct {
		name    string
		series  []float64
		want    float64
		wantErr bool
	}{
		{"simple increase", []float64{100, 105, 110}, 10.0, false},
		{"decrease", []float64{200, 150}, -25.0, false},
		{"single element", []float64{100}, 0.0, false},
		{"empty series", nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CumulativeChange(tt.series, ColumnUSCPI, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorAs(t, err, new(*EmptyRangeError))
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	t.Run("zero first element", func(t *testing.T) {
		dates := []time.Time{time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)}
		_, err := CumulativeChange([]float64{0, 10}, ColumnIndiaCPI, dates)
		var dz *DivisionByZeroError
		require.ErrorAs(t, err, &dz)
		assert.Equal(t, ColumnIndiaCPI, dz.Column)
		assert.Equal(t, 0, dz.Index)
		assert.Equal(t, dates[0], dz.Date)
	})
}

func TestComputeSummary(t *testing.T) {
	t.Run("24-month linear example", func(t *testing.T) {
		ds := linearDataset(24, 100, 102.4, 100, 104.8, 70, 73.45)
		s, err := ComputeSummary(ds)
		require.NoError(t, err)

		assert.InDelta(t, 2.40, s.USInflation, 1e-9)
		assert.InDelta(t, 4.80, s.IndiaInflation, 1e-9)
		assert.InDelta(t, 2.40, s.InflationDifferential, 1e-9)
		assert.InDelta(t, (73.45/70.0-1)*100, s.ExchangeChange, 1e-9)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := ComputeSummary(Dataset{})
		assert.ErrorAs(t, err, new(*EmptyRangeError))
	})

	t.Run("formatting", func(t *testing.T) {
		s := Summary{USInflation: 2.4, IndiaInflation: 4.8, ExchangeChange: 4.9285714, InflationDifferential: 2.4}
		f := s.Format()
		assert.Equal(t, "2.40%", f.USInflation)
		assert.Equal(t, "4.80%", f.IndiaInflation)
		assert.Equal(t, "4.93%", f.ExchangeChange)
		assert.Equal(t, "2.40%", f.InflationDifferential)
	})
}

func TestYearOverYear(t *testing.T) {
	t.Run("nil before period, defined after", func(t *testing.T) {
		series := make([]float64, 20)
		for i := range series {
			series[i] = 100 + float64(i)
		}
		got, err := YearOverYear(series, YoYPeriod, ColumnUSCPI, nil)
		require.NoError(t, err)
		require.Len(t, got, 20)

		for i := 0; i < YoYPeriod; i++ {
			assert.Nil(t, got[i], "index %d", i)
		}
		for i := YoYPeriod; i < 20; i++ {
			require.NotNil(t, got[i], "index %d", i)
			want := (series[i]/series[i-YoYPeriod] - 1) * 100
			assert.InDelta(t, want, *got[i], 1e-9)
		}
	})

	t.Run("zero base value", func(t *testing.T) {
		series := make([]float64, 14)
		for i := range series {
			series[i] = 100
		}
		series[1] = 0
		_, err := YearOverYear(series, YoYPeriod, ColumnIndiaCPI, nil)
		var dz *DivisionByZeroError
		require.ErrorAs(t, err, &dz)
		assert.Equal(t, 1, dz.Index)
	})

	t.Run("short series is all nil", func(t *testing.T) {
		got, err := YearOverYear([]float64{1, 2, 3}, YoYPeriod, ColumnUSCPI, nil)
		require.NoError(t, err)
		for _, v := range got {
			assert.Nil(t, v)
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("first element becomes 100", func(t *testing.T) {
		got, err := Normalize([]float64{80, 88, 96}, ColumnUSCPI, nil)
		require.NoError(t, err)
		assert.InDelta(t, 100.0, got[0], 1e-9)
		assert.InDelta(t, 110.0, got[1], 1e-9)
		assert.InDelta(t, 120.0, got[2], 1e-9)
	})

	t.Run("empty series", func(t *testing.T) {
		_, err := Normalize(nil, ColumnUSCPI, nil)
		assert.ErrorAs(t, err, new(*EmptyRangeError))
	})

	t.Run("zero base", func(t *testing.T) {
		_, err := Normalize([]float64{0, 1}, ColumnExchangeRate, nil)
		var dz *DivisionByZeroError
		require.ErrorAs(t, err, &dz)
		assert.Equal(t, ColumnExchangeRate, dz.Column)
	})
}

func TestPPP(t *testing.T) {
	t.Run("implied anchors at actual first rate", func(t *testing.T) {
		ds := linearDataset(24, 100, 102.4, 100, 104.8, 70, 73.45)
		implied, err := PPPImplied(ds.IndiaCPISeries(), ds.USCPISeries(), ds.ExchangeRateSeries(), ds.Dates())
		require.NoError(t, err)
		assert.InDelta(t, 70.0, implied[0], 1e-9)
	})

	t.Run("deviation is zero at anchor", func(t *testing.T) {
		ds := linearDataset(24, 100, 102.4, 100, 104.8, 70, 73.45)
		fx := ds.ExchangeRateSeries()
		implied, err := PPPImplied(ds.IndiaCPISeries(), ds.USCPISeries(), fx, ds.Dates())
		require.NoError(t, err)
		dev, err := PPPDeviation(fx, implied, ds.Dates())
		require.NoError(t, err)
		assert.InDelta(t, 0.0, dev[0], 1e-9)
	})

	t.Run("zero US CPI mid-range", func(t *testing.T) {
		ds := linearDataset(6, 100, 105, 100, 105, 70, 71)
		us := ds.USCPISeries()
		us[3] = 0
		_, err := PPPImplied(ds.IndiaCPISeries(), us, ds.ExchangeRateSeries(), ds.Dates())
		var dz *DivisionByZeroError
		require.ErrorAs(t, err, &dz)
		assert.Equal(t, ColumnUSCPI, dz.Column)
		assert.Equal(t, 3, dz.Index)
		assert.Equal(t, ds[3].Date, dz.Date)
	})

	t.Run("zero implied rate", func(t *testing.T) {
		_, err := PPPDeviation([]float64{70}, []float64{0}, nil)
		var dz *DivisionByZeroError
		require.ErrorAs(t, err, &dz)
		assert.Equal(t, "PPP_Implied", dz.Column)
	})
}

func TestComputeExchangeStats(t *testing.T) {
	ds := Dataset{
		{ExchangeRate: 72},
		{ExchangeRate: 70},
		{ExchangeRate: 74},
	}
	stats, err := ComputeExchangeStats(ds)
	require.NoError(t, err)
	assert.InDelta(t, 72.0, stats.Mean, 1e-9)
	assert.Equal(t, 70.0, stats.Min)
	assert.Equal(t, 74.0, stats.Max)

	_, err = ComputeExchangeStats(Dataset{})
	assert.ErrorAs(t, err, new(*EmptyRangeError))
}
