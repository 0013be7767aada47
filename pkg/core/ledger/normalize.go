package ledger

import (
	"finstat_engine/pkg/core/ingest"
)

// BuildTrialBalance collapses parsed account rows into a trial balance
// keyed by 3-digit parent code. Dotted sub-account rows ("600.01") are
// kept under their parent and their activity accumulates into the
// parent's aggregate; multiple rows sharing the same parent code
// accumulate elementwise.
func BuildTrialBalance(accounts []ingest.ParsedAccount, year, month int) *TrialBalance {
	tb := &TrialBalance{
		Year:     year,
		Month:    month,
		Accounts: make(map[string]*AccountRecord),
	}

	for _, row := range accounts {
		parent := ParentCode(row.Code)
		rec, ok := tb.Accounts[parent]
		if !ok {
			rec = &AccountRecord{Code: parent}
			tb.Accounts[parent] = rec
		}

		if IsSubAccount(row.Code) {
			rec.SubAccounts = append(rec.SubAccounts, AccountRecord{
				Code:          row.Code,
				Name:          row.Name,
				Debit:         row.Debit,
				Credit:        row.Credit,
				DebitBalance:  row.DebitBalance,
				CreditBalance: row.CreditBalance,
			})
		} else if rec.Name == "" {
			rec.Name = row.Name
		}

		rec.Debit += row.Debit
		rec.Credit += row.Credit
		rec.DebitBalance += row.DebitBalance
		rec.CreditBalance += row.CreditBalance
	}

	return tb
}

// SignedBalance returns the value an account contributes to its
// statement section: debit balance for assets, credit balance for
// liabilities and equity, negated for contra accounts.
func SignedBalance(rec *AccountRecord, mapping FieldMapping) float64 {
	// A contra account's balance sits on the opposite side of its group
	// (accumulated depreciation is a credit inside assets, unpaid capital
	// a debit inside equity), so it reads the other column and subtracts.
	switch mapping.Sect {
	case SectionAsset:
		if mapping.Contra {
			return -rec.CreditBalance
		}
		return rec.DebitBalance
	case SectionLiability, SectionEquity:
		if mapping.Contra {
			return -rec.DebitBalance
		}
		return rec.CreditBalance
	case SectionIncome:
		// Income codes net the two sides; sales carry credit balances,
		// expense codes debit balances.
		return rec.CreditBalance - rec.DebitBalance
	}
	return 0
}
