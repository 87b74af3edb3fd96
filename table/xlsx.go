package table

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX loads a table from a worksheet of an Excel workbook. The first row
// of the sheet is the header. An empty sheet name selects the first sheet.
func LoadXLSX(filename, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

// LoadXLSXFromReader loads a table from a workbook read from r.
func LoadXLSXFromReader(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel workbook: %w", err)
	}
	defer f.Close()

	return readSheet(f, sheet)
}

func readSheet(f *excelize.File, sheet string) (*Table, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrNoData)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrNoData, sheet)
	}

	return fromRecords(rows[0], rows[1:], nil, true)
}
