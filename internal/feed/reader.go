// Package feed reads supplier datafeed files (CSV and Excel) into raw rows
// and detects which configured supplier a file belongs to.
package feed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/etecplus/datafeeds/pkg/types"
)

// ErrNoTabularData is returned when a file yields no usable header row.
var ErrNoTabularData = errors.New("no tabular data found")

// csvDelimiters are tried in order; the first that yields more than one
// column wins. Supplier feeds ship with all three.
var csvDelimiters = []rune{',', ';', '\t'}

// ReadFile reads a feed file into raw rows, choosing the parser from the
// file extension (.csv, .xlsx, .xls).
func ReadFile(path string) ([]domain.RawRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed file: %w", err)
	}
	return Read(filepath.Base(path), data)
}

// Read parses feed content by file name extension.
func Read(name string, data []byte) ([]domain.RawRow, error) {
	records, err := readTable(name, data)
	if err != nil {
		return nil, err
	}
	return toRows(records), nil
}

// Header returns only the trimmed header row of a feed file. Used when a
// file serves as a column template rather than a data source.
func Header(name string, data []byte) ([]string, error) {
	records, err := readTable(name, data)
	if err != nil {
		return nil, err
	}
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return header, nil
}

func readTable(name string, data []byte) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls":
		return readExcel(bytes.NewReader(data))
	default:
		return readCSV(data)
	}
}

// readCSV sniffs the delimiter by re-parsing with each candidate until the
// header splits into more than one column.
func readCSV(data []byte) ([][]string, error) {
	for _, delim := range csvDelimiters {
		records, err := parseCSV(data, delim)
		if err != nil {
			continue
		}
		if len(records) > 0 && len(records[0]) > 1 {
			return records, nil
		}
	}
	return nil, ErrNoTabularData
}

func parseCSV(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoTabularData
	}
	return records, nil
}

func readExcel(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoTabularData
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrNoTabularData
	}
	return records, nil
}

// toRows converts header-plus-records into raw rows. Short records leave
// trailing columns empty; extra cells beyond the header are dropped.
func toRows(records [][]string) []domain.RawRow {
	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = strings.TrimSpace(record[i])
			} else {
				values[col] = ""
			}
		}
		rows = append(rows, domain.RawRow{Columns: header, Values: values})
	}
	return rows
}
