// Package dataprocessing parses the monthly CPI and exchange rate table
// from CSV input.
//
// The parser locates the Date, US_CPI, India_CPI and Exchange_Rate_INR_USD
// columns by header name, so column order and extra columns do not matter.
// Header matching is case-insensitive and tolerates a UTF-8 BOM. Rows are
// validated strictly: a missing column, an unparseable date, or a
// non-numeric value fails the whole parse with a MalformedInputError that
// reports the offending line and column.
//
// Basic usage:
//
//	f, err := os.Open("cpi.csv")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	ds, err := dataprocessing.ParseCSV(f)
//	if err != nil {
//	    var malformed *dataprocessing.MalformedInputError
//	    if errors.As(err, &malformed) {
//	        log.Printf("bad input at line %d: %s", malformed.Line, malformed.Reason)
//	    }
//	    return err
//	}
//
// The returned dataset is sorted by date ascending regardless of input
// order.
package dataprocessing
