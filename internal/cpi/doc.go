// Package cpi implements the metrics pipeline behind the US–India CPI
// comparison dashboard: inclusive date-range filtering of a monthly table
// and the derived columns and summary statistics the views consume.
//
// Every operation is a pure, synchronous computation over an in-memory
// dataset. Each view of the data is a function of (Dataset, DateRange);
// nothing is cached or mutated incrementally. Failures are explicit:
// an empty filtered range yields EmptyRangeError and a zero divisor
// yields DivisionByZeroError carrying the offending column, index and
// date, rather than NaN propagating silently into the output.
package cpi
