package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Delimiter rune     // Field delimiter (default: ',')
	Columns   []string // Columns to keep (default: all)
	SkipRows  int      // Number of rows to skip before the header
	Numeric   bool     // Parse numeric-looking fields into number cells (default: true)
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Delimiter: ',',
		Numeric:   true,
	}
}

// LoadCSV loads a table from a CSV file with a header row.
func LoadCSV(filename string, opts *CSVOptions) (*Table, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a table from an io.Reader.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header row", ErrNoData)
	}
	if err != nil {
		return nil, err
	}

	records := [][]string{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return fromRecords(header, records, opts.Columns, opts.Numeric)
}

// fromRecords builds a table from a header and string records. Short records
// are padded with missing cells.
func fromRecords(header []string, records [][]string, keep []string, numeric bool) (*Table, error) {
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.Trim(h, "\""))
	}

	selected := make([]int, 0, len(names))
	if len(keep) == 0 {
		for i := range names {
			selected = append(selected, i)
		}
	} else {
		for _, k := range keep {
			idx := -1
			for i, n := range names {
				if n == k {
					idx = i
					break
				}
			}
			if idx < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, k)
			}
			selected = append(selected, idx)
		}
	}

	columns := make([]string, len(selected))
	for j, i := range selected {
		columns[j] = names[i]
	}
	t, err := New(columns...)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if isBlank(record) {
			continue
		}
		row := make([]Value, len(selected))
		for j, i := range selected {
			if i >= len(record) {
				continue
			}
			row[j] = parseCell(record[i], numeric)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func parseCell(field string, numeric bool) Value {
	s := strings.TrimSpace(strings.Trim(field, "\""))
	if isMissingText(s) {
		return Null()
	}
	if numeric {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Num(f)
		}
	}
	return Str(s)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// SaveCSV writes the table as CSV with a header row. Missing cells are empty.
func SaveCSV(t *Table, w io.Writer) error {
	if t == nil {
		return errors.New("nil table")
	}
	bw := bufio.NewWriter(w)
	writer := csv.NewWriter(bw)

	if err := writer.Write(t.columns); err != nil {
		return err
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = v.Text()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// SaveCSVFile writes the table to a CSV file.
func SaveCSVFile(t *Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := SaveCSV(t, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
