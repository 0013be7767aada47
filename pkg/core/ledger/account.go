// Package ledger models the numbered chart of accounts: account records
// with dotted sub-accounts, period trial balances, and the static
// code-to-statement-field mapping used by statement assembly.
package ledger

import (
	"sort"
	"strings"
)

// AccountRecord is one parent account in a trial balance. A parent's
// aggregate activity always equals the elementwise sum over its
// sub-accounts plus any rows reported directly at the parent code.
type AccountRecord struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Debit         float64         `json:"debit"`
	Credit        float64         `json:"credit"`
	DebitBalance  float64         `json:"debit_balance"`
	CreditBalance float64         `json:"credit_balance"`
	SubAccounts   []AccountRecord `json:"sub_accounts,omitempty"`
}

// TrialBalance is a period snapshot of every account's activity and
// resulting balance, keyed by 3-digit parent code. A re-upload replaces
// the whole snapshot; once approved it is immutable until explicitly
// unlocked at the storage layer.
type TrialBalance struct {
	Year       int                       `json:"year"`
	Month      int                       `json:"month,omitempty"` // 0 means full-year
	Accounts   map[string]*AccountRecord `json:"accounts"`
	IsApproved bool                      `json:"is_approved"`
}

// ParentCode strips a dotted sub-account suffix: "600.01" -> "600".
func ParentCode(code string) string {
	if i := strings.IndexByte(code, '.'); i >= 0 {
		return code[:i]
	}
	return code
}

// IsSubAccount reports whether the code carries a dotted suffix.
func IsSubAccount(code string) bool {
	return strings.IndexByte(code, '.') >= 0
}

// Codes returns the parent codes present in the trial balance in
// ascending order. Handy for deterministic iteration in reports/tests.
func (tb *TrialBalance) Codes() []string {
	codes := make([]string, 0, len(tb.Accounts))
	for code := range tb.Accounts {
		codes = append(codes, code)
	}
	// Codes are fixed-width 3-digit strings, so lexicographic order is
	// numeric order.
	sort.Strings(codes)
	return codes
}
