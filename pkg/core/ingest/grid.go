package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// accountCodePattern matches a 3-digit chart-of-accounts code with an
// optional dotted sub-account suffix ("600", "600.01").
var accountCodePattern = regexp.MustCompile(`^\d{3}(\.\d{1,2})?$`)

// IsAccountCode reports whether s is a valid account code.
func IsAccountCode(s string) bool {
	return accountCodePattern.MatchString(s)
}

// columnMap holds detected column indices, -1 when a column is absent.
type columnMap struct {
	Code          int
	Name          int
	Debit         int
	Credit        int
	DebitBalance  int
	CreditBalance int
}

// Header token variants per column, matched case-insensitively as
// substrings. Balance variants are checked before plain debit/credit
// because "borç bakiye" contains "borç".
var (
	codeVariants          = []string{"hesap kodu", "hesap no", "account code", "kod", "code"}
	nameVariants          = []string{"hesap adı", "hesap adi", "account name", "açıklama", "aciklama", "description", "name"}
	debitBalanceVariants  = []string{"borç bakiye", "borc bakiye", "debit balance"}
	creditBalanceVariants = []string{"alacak bakiye", "credit balance"}
	debitVariants         = []string{"borç", "borc", "debit"}
	creditVariants        = []string{"alacak", "credit"}
)

func matchesAny(token string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(token, v) {
			return true
		}
	}
	return false
}

// detectColumns scans the first rows of the grid for a header row (first
// row with more than 3 populated cells) and maps its tokens to columns.
// Returns the column map, the index of the first data row, and whether
// detection succeeded.
func detectColumns(grid [][]string) (columnMap, int, bool) {
	cols := columnMap{Code: -1, Name: -1, Debit: -1, Credit: -1, DebitBalance: -1, CreditBalance: -1}

	limit := len(grid)
	if limit > 10 {
		limit = 10
	}
	for r := 0; r < limit; r++ {
		populated := 0
		for _, cell := range grid[r] {
			if strings.TrimSpace(cell) != "" {
				populated++
			}
		}
		if populated <= 3 {
			continue
		}

		for c, cell := range grid[r] {
			token := strings.ToLower(strings.TrimSpace(cell))
			if token == "" {
				continue
			}
			switch {
			case cols.DebitBalance == -1 && matchesAny(token, debitBalanceVariants):
				cols.DebitBalance = c
			case cols.CreditBalance == -1 && matchesAny(token, creditBalanceVariants):
				cols.CreditBalance = c
			case cols.Debit == -1 && matchesAny(token, debitVariants):
				cols.Debit = c
			case cols.Credit == -1 && matchesAny(token, creditVariants):
				cols.Credit = c
			case cols.Code == -1 && matchesAny(token, codeVariants):
				cols.Code = c
			case cols.Name == -1 && matchesAny(token, nameVariants):
				cols.Name = c
			}
		}

		// A usable header resolves at least the code and debit columns.
		if cols.Code >= 0 && cols.Debit >= 0 {
			return cols, r + 1, true
		}
		// Header-looking row that didn't resolve; keep scanning.
		cols = columnMap{Code: -1, Name: -1, Debit: -1, Credit: -1, DebitBalance: -1, CreditBalance: -1}
	}
	return cols, 0, false
}

// assumedColumns is the fixed fallback order used when header detection
// fails: code, name, debit, credit, debit balance, credit balance.
func assumedColumns() columnMap {
	return columnMap{Code: 0, Name: 1, Debit: 2, Credit: 3, DebitBalance: 4, CreditBalance: 5}
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseGrid parses a 2-D grid of raw cell values (extracted from a
// spreadsheet or similar tabular source) into account rows.
//
// Header-detection ambiguity is never fatal: when no header resolves, the
// fixed assumed column order is used and a warning is attached. Rows whose
// leading token is not a 3-digit account code are silently skipped — those
// are typically subtotal or blank rows. The only hard failure is a grid
// that yields zero recognized accounts.
func ParseGrid(grid [][]string) (*ParseResult, error) {
	result := &ParseResult{DetectedFormat: FormatTabular, TotalRows: len(grid)}

	cols, dataStart, detected := detectColumns(grid)
	if !detected {
		cols = assumedColumns()
		dataStart = 0
		result.DetectedFormat = FormatTabularFixed
		result.Warnings = append(result.Warnings,
			"header row not detected, assuming column order code/name/debit/credit/debit balance/credit balance")
	}

	hasBalanceCols := cols.DebitBalance >= 0 && cols.CreditBalance >= 0

	for r := dataStart; r < len(grid); r++ {
		row := grid[r]
		code := cellAt(row, cols.Code)
		if !accountCodePattern.MatchString(code) {
			continue
		}

		acct := ParsedAccount{
			Code:   code,
			Name:   cellAt(row, cols.Name),
			Debit:  ParseLocalizedNumber(cellAt(row, cols.Debit)),
			Credit: ParseLocalizedNumber(cellAt(row, cols.Credit)),
		}
		if hasBalanceCols {
			acct.DebitBalance = ParseLocalizedNumber(cellAt(row, cols.DebitBalance))
			acct.CreditBalance = ParseLocalizedNumber(cellAt(row, cols.CreditBalance))
		} else {
			acct.DebitBalance, acct.CreditBalance = deriveBalances(acct.Debit, acct.Credit)
		}
		result.Accounts = append(result.Accounts, acct)
	}

	if len(result.Accounts) == 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("no account rows recognized in %d grid rows", len(grid))}
	}
	return result, nil
}

// deriveBalances computes net balances when the source document carries
// only activity columns: the larger side wins, the other side nets to 0.
func deriveBalances(debit, credit float64) (debitBalance, creditBalance float64) {
	if debit > credit {
		return debit - credit, 0
	}
	return 0, credit - debit
}
