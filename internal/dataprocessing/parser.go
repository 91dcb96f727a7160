package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"cpipulse/internal/cpi"
)

// MalformedInputError indicates the uploaded table is missing a required
// column or a value could not be coerced to its expected type. Line is
// 1-based and counts the header row; it is 0 for header-level problems.
type MalformedInputError struct {
	Line   int
	Column string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed input: %s: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed input at line %d, column %s: %s", e.Line, e.Column, e.Reason)
}

// columnIndices holds the positions of the required columns in the header.
type columnIndices struct {
	dateCol     int
	usCol       int
	indiaCol    int
	exchangeCol int
}

// Date layouts accepted in the Date column, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/2006",
	"01/02/2006",
	"Jan-2006",
	"Jan 2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseCSV reads a CSV with the dashboard input contract
// (Date, US_CPI, India_CPI, Exchange_Rate_INR_USD) and returns a dataset
// sorted ascending by date. A malformed row is an error, not a skip:
// failures surface to the caller instead of degrading into NaN output.
func ParseCSV(r io.Reader) (cpi.Dataset, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	// Strip UTF-8 BOM so header matching sees clean column names.
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, &MalformedInputError{Column: "csv", Reason: err.Error()}
	}

	if len(records) < 2 {
		return nil, &MalformedInputError{Column: "csv", Reason: "no data rows"}
	}

	columns, err := findColumnIndices(records[0])
	if err != nil {
		return nil, err
	}

	slog.Debug("parsed CSV header",
		slog.Int("date_col", columns.dateCol),
		slog.Int("us_cpi_col", columns.usCol),
		slog.Int("india_cpi_col", columns.indiaCol),
		slog.Int("exchange_rate_col", columns.exchangeCol))

	ds := make(cpi.Dataset, 0, len(records)-1)
	for i, record := range records[1:] {
		line := i + 2 // 1-based, counting the header
		obs, err := parseRecord(record, columns, line)
		if err != nil {
			return nil, err
		}
		ds = append(ds, obs)
	}

	sort.Slice(ds, func(i, j int) bool { return ds[i].Date.Before(ds[j].Date) })
	return ds, nil
}

// findColumnIndices maps the required columns to their header positions.
func findColumnIndices(header []string) (columnIndices, error) {
	columns := columnIndices{dateCol: -1, usCol: -1, indiaCol: -1, exchangeCol: -1}

	for i, col := range header {
		clean := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		switch strings.ToLower(clean) {
		case "date":
			columns.dateCol = i
		case "us_cpi", "us cpi":
			columns.usCol = i
		case "india_cpi", "india cpi":
			columns.indiaCol = i
		case "exchange_rate_inr_usd", "exchange_rate", "exchange rate":
			columns.exchangeCol = i
		}
	}

	var missing []string
	if columns.dateCol == -1 {
		missing = append(missing, cpi.ColumnDate)
	}
	if columns.usCol == -1 {
		missing = append(missing, cpi.ColumnUSCPI)
	}
	if columns.indiaCol == -1 {
		missing = append(missing, cpi.ColumnIndiaCPI)
	}
	if columns.exchangeCol == -1 {
		missing = append(missing, cpi.ColumnExchangeRate)
	}
	if len(missing) > 0 {
		return columns, &MalformedInputError{
			Column: strings.Join(missing, ", "),
			Reason: "required column not found",
		}
	}
	return columns, nil
}

// parseRecord coerces one CSV row into an observation.
func parseRecord(record []string, columns columnIndices, line int) (cpi.Observation, error) {
	maxCol := columns.dateCol
	for _, c := range []int{columns.usCol, columns.indiaCol, columns.exchangeCol} {
		if c > maxCol {
			maxCol = c
		}
	}
	if len(record) <= maxCol {
		return cpi.Observation{}, &MalformedInputError{
			Line:   line,
			Column: "csv",
			Reason: fmt.Sprintf("expected at least %d columns, got %d", maxCol+1, len(record)),
		}
	}

	date, err := parseDate(strings.TrimSpace(record[columns.dateCol]))
	if err != nil {
		return cpi.Observation{}, &MalformedInputError{Line: line, Column: cpi.ColumnDate, Reason: err.Error()}
	}

	us, err := parseValue(record[columns.usCol], cpi.ColumnUSCPI, line)
	if err != nil {
		return cpi.Observation{}, err
	}
	india, err := parseValue(record[columns.indiaCol], cpi.ColumnIndiaCPI, line)
	if err != nil {
		return cpi.Observation{}, err
	}
	fx, err := parseValue(record[columns.exchangeCol], cpi.ColumnExchangeRate, line)
	if err != nil {
		return cpi.Observation{}, err
	}

	return cpi.Observation{Date: date, USCPI: us, IndiaCPI: india, ExchangeRate: fx}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseValue(s, column string, line int) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return 0, &MalformedInputError{Line: line, Column: column, Reason: "empty value"}
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, &MalformedInputError{Line: line, Column: column, Reason: fmt.Sprintf("not numeric: %q", s)}
	}
	return v, nil
}
