package cpi

import (
	"fmt"
	"time"
)

// FilterRange returns the contiguous sub-sequence of ds whose dates fall
// within r, inclusive on both ends. Order is preserved and the operation
// is idempotent. An empty result is legal here; downstream computations
// turn it into an EmptyRangeError.
func FilterRange(ds Dataset, r DateRange) Dataset {
	out := make(Dataset, 0, len(ds))
	for _, o := range ds {
		if r.Contains(o.Date) {
			out = append(out, o)
		}
	}
	return out
}

// CumulativeChange computes the first-to-last percent change of a series:
// (last/first - 1) * 100. The column name and dates are used only for
// error context.
func CumulativeChange(series []float64, column string, dates []time.Time) (float64, error) {
	if len(series) == 0 {
		return 0, &EmptyRangeError{}
	}
	if series[0] == 0 {
		return 0, &DivisionByZeroError{Column: column, Index: 0, Date: dateAt(dates, 0)}
	}
	return (series[len(series)-1]/series[0] - 1) * 100, nil
}

// ComputeSummary computes the dashboard header metrics over a filtered
// dataset. The differential is India minus US cumulative inflation.
func ComputeSummary(ds Dataset) (Summary, error) {
	if len(ds) == 0 {
		return Summary{}, &EmptyRangeError{}
	}
	dates := ds.Dates()

	usInf, err := CumulativeChange(ds.USCPISeries(), ColumnUSCPI, dates)
	if err != nil {
		return Summary{}, err
	}
	indiaInf, err := CumulativeChange(ds.IndiaCPISeries(), ColumnIndiaCPI, dates)
	if err != nil {
		return Summary{}, err
	}
	fxChange, err := CumulativeChange(ds.ExchangeRateSeries(), ColumnExchangeRate, dates)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		USInflation:           usInf,
		IndiaInflation:        indiaInf,
		ExchangeChange:        fxChange,
		InflationDifferential: indiaInf - usInf,
	}, nil
}

// Format renders the summary for display: two decimals, percent suffix.
func (s Summary) Format() FormattedSummary {
	pct := func(v float64) string { return fmt.Sprintf("%.2f%%", v) }
	return FormattedSummary{
		USInflation:           pct(s.USInflation),
		IndiaInflation:        pct(s.IndiaInflation),
		ExchangeChange:        pct(s.ExchangeChange),
		InflationDifferential: pct(s.InflationDifferential),
	}
}

// YearOverYear computes the percent change of each element against the
// element period records earlier. The first period entries are nil.
// The offset is by record count, not calendar distance, so gaps in the
// input silently compare the wrong time span.
func YearOverYear(series []float64, period int, column string, dates []time.Time) ([]*float64, error) {
	out := make([]*float64, len(series))
	for i := period; i < len(series); i++ {
		base := series[i-period]
		if base == 0 {
			return nil, &DivisionByZeroError{Column: column, Index: i - period, Date: dateAt(dates, i-period)}
		}
		v := (series[i]/base - 1) * 100
		out[i] = &v
	}
	return out, nil
}

// Normalize rescales a series so its first element equals 100.
func Normalize(series []float64, column string, dates []time.Time) ([]float64, error) {
	if len(series) == 0 {
		return nil, &EmptyRangeError{}
	}
	if series[0] == 0 {
		return nil, &DivisionByZeroError{Column: column, Index: 0, Date: dateAt(dates, 0)}
	}
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v / series[0] * 100
	}
	return out, nil
}

// PPPImplied computes the exchange rate implied by relative CPI levels,
// anchored so implied[0] equals the actual rate at the first record:
//
//	implied[i] = fx[0] * (indiaCPI[i]/usCPI[i]) / (indiaCPI[0]/usCPI[0])
func PPPImplied(indiaCPI, usCPI, fx []float64, dates []time.Time) ([]float64, error) {
	if len(fx) == 0 {
		return nil, &EmptyRangeError{}
	}
	if usCPI[0] == 0 {
		return nil, &DivisionByZeroError{Column: ColumnUSCPI, Index: 0, Date: dateAt(dates, 0)}
	}
	if indiaCPI[0] == 0 {
		return nil, &DivisionByZeroError{Column: ColumnIndiaCPI, Index: 0, Date: dateAt(dates, 0)}
	}
	baseRatio := indiaCPI[0] / usCPI[0]

	out := make([]float64, len(fx))
	for i := range fx {
		if usCPI[i] == 0 {
			return nil, &DivisionByZeroError{Column: ColumnUSCPI, Index: i, Date: dateAt(dates, i)}
		}
		out[i] = fx[0] * (indiaCPI[i] / usCPI[i]) / baseRatio
	}
	return out, nil
}

// PPPDeviation computes the percent deviation of the actual exchange rate
// from the PPP-implied rate.
func PPPDeviation(actual, implied []float64, dates []time.Time) ([]float64, error) {
	out := make([]float64, len(actual))
	for i := range actual {
		if implied[i] == 0 {
			return nil, &DivisionByZeroError{Column: "PPP_Implied", Index: i, Date: dateAt(dates, i)}
		}
		out[i] = (actual[i] - implied[i]) / implied[i] * 100
	}
	return out, nil
}

// ComputeExchangeStats summarizes the exchange rate column.
func ComputeExchangeStats(ds Dataset) (ExchangeStats, error) {
	if len(ds) == 0 {
		return ExchangeStats{}, &EmptyRangeError{}
	}
	stats := ExchangeStats{Min: ds[0].ExchangeRate, Max: ds[0].ExchangeRate}
	var sum float64
	for _, o := range ds {
		sum += o.ExchangeRate
		if o.ExchangeRate < stats.Min {
			stats.Min = o.ExchangeRate
		}
		if o.ExchangeRate > stats.Max {
			stats.Max = o.ExchangeRate
		}
	}
	stats.Mean = sum / float64(len(ds))
	return stats, nil
}

func dateAt(dates []time.Time, i int) time.Time {
	if i < 0 || i >= len(dates) {
		return time.Time{}
	}
	return dates[i]
}
