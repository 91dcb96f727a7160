package cpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelate(t *testing.T) {
	t.Run("symmetric with unit diagonal", func(t *testing.T) {
		ds := SampleDataset(7)
		m, err := Correlate(ds)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			assert.InDelta(t, 1.0, m.Values[i][i], 1e-9)
			for j := 0; j < 3; j++ {
				assert.InDelta(t, m.Values[i][j], m.Values[j][i], 1e-12)
				assert.GreaterOrEqual(t, m.Values[i][j], -1.0)
				assert.LessOrEqual(t, m.Values[i][j], 1.0)
			}
		}
	})

	t.Run("perfectly correlated linear series", func(t *testing.T) {
		ds := linearDataset(24, 100, 102.4, 100, 104.8, 70, 73.45)
		m, err := Correlate(ds)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, m.Values[0][1], 1e-9)
		assert.InDelta(t, 1.0, m.Values[0][2], 1e-9)
	})

	t.Run("zero variance column", func(t *testing.T) {
		ds := Dataset{
			{USCPI: 100, IndiaCPI: 100, ExchangeRate: 70},
			{USCPI: 100, IndiaCPI: 101, ExchangeRate: 71},
			{USCPI: 100, IndiaCPI: 102, ExchangeRate: 72},
		}
		_, err := Correlate(ds)
		var zv *ZeroVarianceError
		require.ErrorAs(t, err, &zv)
		assert.Equal(t, ColumnUSCPI, zv.Column)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := Correlate(Dataset{})
		assert.ErrorAs(t, err, new(*EmptyRangeError))
	})
}

func TestFitTrendline(t *testing.T) {
	t.Run("recovers an exact line", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{5, 7, 9, 11, 13} // y = 3 + 2x
		tl, err := FitTrendline(x, y, ColumnIndiaCPI)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, tl.Alpha, 1e-9)
		assert.InDelta(t, 2.0, tl.Beta, 1e-9)
	})

	t.Run("constant x", func(t *testing.T) {
		_, err := FitTrendline([]float64{2, 2, 2}, []float64{1, 2, 3}, ColumnUSCPI)
		assert.ErrorAs(t, err, new(*ZeroVarianceError))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := FitTrendline(nil, nil, ColumnUSCPI)
		assert.ErrorAs(t, err, new(*EmptyRangeError))
	})
}
