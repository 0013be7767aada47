package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GridFromHTML extracts the largest table of an HTML export (accounting
// software commonly emits trial balances as .xls files that are really
// HTML) into a cell grid suitable for ParseGrid.
func GridFromHTML(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html document: %w", err)
	}

	var best [][]string
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var grid [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []string
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				row = append(row, strings.TrimSpace(cell.Text()))
			})
			if len(row) > 0 {
				grid = append(grid, row)
			}
		})
		if len(grid) > len(best) {
			best = grid
		}
	})

	if len(best) == 0 {
		return nil, &ValidationError{Reason: "no tables found in html document"}
	}
	return best, nil
}

// ParseHTML is a convenience producer combining GridFromHTML and ParseGrid.
func ParseHTML(r io.Reader) (*ParseResult, error) {
	grid, err := GridFromHTML(r)
	if err != nil {
		return nil, err
	}
	return ParseGrid(grid)
}
