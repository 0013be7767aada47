package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// GridFromXLSX reads the first sheet of an XLSX workbook into a cell grid
// suitable for ParseGrid. Cell values come back as the displayed strings,
// so localized number formatting survives into the grid.
func GridFromXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ValidationError{Reason: "workbook contains no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// ParseXLSX is a convenience producer combining GridFromXLSX and ParseGrid.
func ParseXLSX(r io.Reader) (*ParseResult, error) {
	grid, err := GridFromXLSX(r)
	if err != nil {
		return nil, err
	}
	return ParseGrid(grid)
}
