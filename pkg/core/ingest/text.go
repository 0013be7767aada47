package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// accountLinePattern anchors a text line that starts with an account code.
var accountLinePattern = regexp.MustCompile(`^(\d{3}(?:\.\d{1,2})?)\s+(.*)$`)

// numericTokenPattern recognizes localized numeric tokens on a line.
var numericTokenPattern = regexp.MustCompile(`^-?[\d.,]+$`)

// ParseText is the line-oriented producer for non-tabular extractions
// (PDF text layers, OCR output). A line is an account line iff it starts
// with a 3-digit code; the remaining numeric tokens are assigned
// positionally:
//
//	2 numbers -> debit, credit (balances derived)
//	4 numbers -> debit, credit, debit balance, credit balance
//
// Lines with any other numeric shape keep whatever prefix assignment
// applies; the name is the non-numeric text between code and numbers.
func ParseText(blob string) (*ParseResult, error) {
	lines := strings.Split(blob, "\n")
	result := &ParseResult{DetectedFormat: FormatTextLines, TotalRows: len(lines)}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		m := accountLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		code := m[1]
		rest := strings.Fields(m[2])

		var nameParts []string
		var numbers []float64
		for _, tok := range rest {
			if numericTokenPattern.MatchString(tok) && tok != "-" {
				numbers = append(numbers, ParseLocalizedNumber(tok))
			} else if len(numbers) == 0 {
				// Name tokens only count before the first number.
				nameParts = append(nameParts, tok)
			}
		}

		acct := ParsedAccount{Code: code, Name: strings.Join(nameParts, " ")}
		switch {
		case len(numbers) >= 4:
			acct.Debit, acct.Credit = numbers[0], numbers[1]
			acct.DebitBalance, acct.CreditBalance = numbers[2], numbers[3]
		case len(numbers) >= 2:
			acct.Debit, acct.Credit = numbers[0], numbers[1]
			acct.DebitBalance, acct.CreditBalance = deriveBalances(acct.Debit, acct.Credit)
		case len(numbers) == 1:
			acct.Debit = numbers[0]
			acct.DebitBalance, acct.CreditBalance = deriveBalances(acct.Debit, 0)
		}
		result.Accounts = append(result.Accounts, acct)
	}

	if len(result.Accounts) == 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("no account lines recognized in %d text lines", len(lines))}
	}
	return result, nil
}
