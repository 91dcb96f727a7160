package cpi

import (
	"fmt"
	"time"
)

// EmptyRangeError indicates that a date-range filter matched zero records.
// Every derived computation that indexes the first record fails with this
// instead of an unrelated arithmetic error.
type EmptyRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *EmptyRangeError) Error() string {
	if e.Start.IsZero() && e.End.IsZero() {
		return "no records in selected range"
	}
	return fmt.Sprintf("no records between %s and %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// DivisionByZeroError indicates that a series value used as a divisor is
// zero. Column, Index and Date locate the offending record.
type DivisionByZeroError struct {
	Column string
	Index  int
	Date   time.Time
}

func (e *DivisionByZeroError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("division by zero: %s is 0 at index %d", e.Column, e.Index)
	}
	return fmt.Sprintf("division by zero: %s is 0 at index %d (%s)",
		e.Column, e.Index, e.Date.Format("2006-01-02"))
}

// ZeroVarianceError indicates a series is constant over the filtered range,
// so its Pearson correlation is undefined.
type ZeroVarianceError struct {
	Column string
}

func (e *ZeroVarianceError) Error() string {
	return fmt.Sprintf("correlation undefined: %s has zero variance over the selected range", e.Column)
}
