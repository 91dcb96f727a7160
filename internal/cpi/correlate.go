package cpi

import (
	"gonum.org/v1/gonum/stat"
)

// Correlate computes the pairwise Pearson correlation of the three raw
// series over the filtered range. The matrix is symmetric with 1.0 on the
// diagonal. A constant series makes the coefficient undefined and yields
// a ZeroVarianceError naming the column.
func Correlate(ds Dataset) (CorrelationMatrix, error) {
	if len(ds) == 0 {
		return CorrelationMatrix{}, &EmptyRangeError{}
	}

	labels := [3]string{ColumnUSCPI, ColumnIndiaCPI, ColumnExchangeRate}
	columns := [3][]float64{
		ds.USCPISeries(),
		ds.IndiaCPISeries(),
		ds.ExchangeRateSeries(),
	}

	for i, col := range columns {
		if stat.Variance(col, nil) == 0 {
			return CorrelationMatrix{}, &ZeroVarianceError{Column: labels[i]}
		}
	}

	m := CorrelationMatrix{Labels: labels}
	for i := range columns {
		m.Values[i][i] = 1.0
		for j := i + 1; j < len(columns); j++ {
			c := stat.Correlation(columns[i], columns[j], nil)
			m.Values[i][j] = c
			m.Values[j][i] = c
		}
	}
	return m, nil
}

// FitTrendline fits an ordinary-least-squares line y = Alpha + Beta*x.
// It backs the CPI-vs-exchange-rate scatter views.
func FitTrendline(x, y []float64, column string) (Trendline, error) {
	if len(x) == 0 {
		return Trendline{}, &EmptyRangeError{}
	}
	if stat.Variance(x, nil) == 0 {
		return Trendline{}, &ZeroVarianceError{Column: column}
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Trendline{Alpha: alpha, Beta: beta}, nil
}
