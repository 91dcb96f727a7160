// Package exporter writes CPI comparison tables to CSV and XLSX files.
//
// CSVWriter streams a derived table to any io.Writer, optionally prefixed
// with a UTF-8 BOM for Excel compatibility. Download filenames follow the
// cpi_comparison_YYYYMMDD.csv convention.
//
// WorkbookWriter produces an XLSX workbook with a Data sheet holding the
// full derived table and a Summary sheet holding the headline metrics.
package exporter
