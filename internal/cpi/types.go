package cpi

import (
	"time"
)

// Canonical column names, matching the CSV input contract.
const (
	ColumnDate         = "Date"
	ColumnUSCPI        = "US_CPI"
	ColumnIndiaCPI     = "India_CPI"
	ColumnExchangeRate = "Exchange_Rate_INR_USD"
)

// YoYPeriod is the fixed record offset used for year-over-year changes.
// Offsets are by record count, not calendar distance, so the input is
// assumed to be monthly-spaced with no gaps.
const YoYPeriod = 12

// Observation is a single monthly record: two CPI index levels and the
// INR/USD exchange rate for that month.
type Observation struct {
	Date         time.Time `json:"date"`
	USCPI        float64   `json:"us_cpi"`
	IndiaCPI     float64   `json:"india_cpi"`
	ExchangeRate float64   `json:"exchange_rate_inr_usd"`
}

// Dataset is a sequence of observations sorted ascending by date.
type Dataset []Observation

// DateRange is an inclusive calendar filter.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls within the range, inclusive on both ends.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates returns the date column.
func (ds Dataset) Dates() []time.Time {
	out := make([]time.Time, len(ds))
	for i, o := range ds {
		out[i] = o.Date
	}
	return out
}

// USCPISeries returns the US CPI column.
func (ds Dataset) USCPISeries() []float64 {
	out := make([]float64, len(ds))
	for i, o := range ds {
		out[i] = o.USCPI
	}
	return out
}

// IndiaCPISeries returns the India CPI column.
func (ds Dataset) IndiaCPISeries() []float64 {
	out := make([]float64, len(ds))
	for i, o := range ds {
		out[i] = o.IndiaCPI
	}
	return out
}

// ExchangeRateSeries returns the exchange rate column.
func (ds Dataset) ExchangeRateSeries() []float64 {
	out := make([]float64, len(ds))
	for i, o := range ds {
		out[i] = o.ExchangeRate
	}
	return out
}

// Bounds returns the first and last dates of the dataset.
// Ok is false when the dataset is empty.
func (ds Dataset) Bounds() (min, max time.Time, ok bool) {
	if len(ds) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return ds[0].Date, ds[len(ds)-1].Date, true
}

// DerivedRow is an observation enriched with the computed columns the
// dashboard views consume. YoY values are nil for the first YoYPeriod
// records of the filtered range.
type DerivedRow struct {
	Observation
	USInflationYoY        *float64 `json:"us_inflation_yoy"`
	IndiaInflationYoY     *float64 `json:"india_inflation_yoy"`
	USCPINormalized       float64  `json:"us_cpi_normalized"`
	IndiaCPINormalized    float64  `json:"india_cpi_normalized"`
	ExchangeRateNormalized float64 `json:"exchange_rate_normalized"`
	PPPImplied            float64  `json:"ppp_implied"`
	PPPDeviation          float64  `json:"ppp_deviation"`
}

// DerivedTable is the fully enriched filtered dataset.
type DerivedTable []DerivedRow

// Summary holds the scalar metrics shown in the dashboard header row.
// All values are percentages over the filtered range, first to last.
type Summary struct {
	USInflation           float64 `json:"us_cumulative_inflation"`
	IndiaInflation        float64 `json:"india_cumulative_inflation"`
	ExchangeChange        float64 `json:"exchange_rate_change"`
	InflationDifferential float64 `json:"inflation_differential"`
}

// FormattedSummary is the display form of Summary: two decimal places
// with a percent suffix.
type FormattedSummary struct {
	USInflation           string `json:"us_cumulative_inflation"`
	IndiaInflation        string `json:"india_cumulative_inflation"`
	ExchangeChange        string `json:"exchange_rate_change"`
	InflationDifferential string `json:"inflation_differential"`
}

// ExchangeStats summarizes the exchange rate column over the filtered range.
type ExchangeStats struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// CorrelationMatrix is the pairwise Pearson correlation of the three raw
// series. Values[i][j] correlates Labels[i] against Labels[j].
type CorrelationMatrix struct {
	Labels [3]string     `json:"labels"`
	Values [3][3]float64 `json:"values"`
}

// Trendline is an ordinary-least-squares fit y = Alpha + Beta*x.
type Trendline struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}
