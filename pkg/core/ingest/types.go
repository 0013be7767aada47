// Package ingest turns raw document extractions (spreadsheet grids, text
// blobs, HTML exports) into parsed chart-of-accounts rows. All producers
// emit the same ParsedAccount contract so downstream normalization has
// exactly one consumer-facing shape.
package ingest

import "fmt"

// ParsedAccount is a single recognized account row from any producer.
// Code keeps the raw code including a dotted sub-account suffix
// (e.g. "600.01"); merging into parents happens in the ledger layer.
type ParsedAccount struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	DebitBalance  float64 `json:"debit_balance"`
	CreditBalance float64 `json:"credit_balance"`
}

// ParseResult is the outcome of one document ingestion.
type ParseResult struct {
	Accounts       []ParsedAccount `json:"accounts"`
	DetectedFormat string          `json:"detected_format"`
	TotalRows      int             `json:"total_rows"`
	Warnings       []string        `json:"warnings"`
}

// ValidationError is a hard ingestion failure: the document produced no
// usable data at all. Nothing is persisted when this is returned.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed: %s", e.Reason)
}

// Detected format tags.
const (
	FormatTabular      = "tabular"
	FormatTabularFixed = "tabular_assumed_order"
	FormatTextLines    = "text_lines"
)
