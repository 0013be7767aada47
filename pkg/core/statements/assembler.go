package statements

import (
	"fmt"
	"math"

	"finstat_engine/pkg/core/ledger"
)

// BalanceTolerance is one unit of currency: the two sides of the balance
// sheet may disagree by strictly less than this before an imbalance
// warning is raised. Rounding in localized source documents makes an
// exact-zero check useless in practice.
const BalanceTolerance = 1.0

// AssemblyResult bundles both statements with the non-fatal
// reconciliation warnings collected while producing them. An out-of-
// balance sheet is still returned and may still be approved by a user
// who accepts the discrepancy.
type AssemblyResult struct {
	BalanceSheet    *BalanceSheetSnapshot
	IncomeStatement *IncomeStatementSnapshot
	Warnings        []string
}

// Assemble produces the balance sheet and income statement for one trial
// balance against the given chart mapping.
func Assemble(tb *ledger.TrialBalance, mapping ledger.ChartMapping, source Source) *AssemblyResult {
	result := &AssemblyResult{
		BalanceSheet: &BalanceSheetSnapshot{
			Year:   tb.Year,
			Fields: make(map[string]float64),
			Source: source,
		},
		IncomeStatement: &IncomeStatementSnapshot{
			Year:   tb.Year,
			Fields: make(map[string]float64),
			Source: source,
		},
	}

	bs := result.BalanceSheet
	is := result.IncomeStatement
	assetSeen, liabilitySeen := false, false

	for _, code := range tb.Codes() {
		rec := tb.Accounts[code]
		m, ok := mapping.Lookup(code)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("account %s (%s) has no statement mapping and was skipped", code, rec.Name))
			continue
		}

		value := ledger.SignedBalance(rec, m)

		switch m.Sect {
		case ledger.SectionAsset:
			bs.Fields[m.Field] += value
			bs.TotalAssets += value
			assetSeen = true
		case ledger.SectionLiability, ledger.SectionEquity:
			bs.Fields[m.Field] += value
			bs.TotalLiabilitiesAndEquity += value
			liabilitySeen = true
		case ledger.SectionIncome:
			is.Fields[m.Field] += value
			applyIncomeRole(is, m.Role, rec)
		}
	}

	if !assetSeen {
		result.Warnings = append(result.Warnings, "no asset accounts found in trial balance")
	}
	if !liabilitySeen {
		result.Warnings = append(result.Warnings, "no liability or equity accounts found in trial balance")
	}

	bs.IsBalanced = IsBalanced(bs.TotalAssets, bs.TotalLiabilitiesAndEquity)
	if !bs.IsBalanced {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"balance sheet out of balance by %.2f (assets %.2f vs liabilities+equity %.2f)",
			bs.TotalAssets-bs.TotalLiabilitiesAndEquity, bs.TotalAssets, bs.TotalLiabilitiesAndEquity))
	}

	finalizeIncomeStatement(is)
	return result
}

// IsBalanced applies the double-entry invariant with the one-unit
// tolerance: |a-b| < 1.
func IsBalanced(totalAssets, totalLiabilitiesAndEquity float64) bool {
	return math.Abs(totalAssets-totalLiabilitiesAndEquity) < BalanceTolerance
}

// applyIncomeRole accumulates one income-range account into the
// waterfall buckets. Sales codes carry credit balances, every deduction
// and expense role a debit balance; both are accumulated as positive
// magnitudes and the waterfall subtracts.
func applyIncomeRole(is *IncomeStatementSnapshot, role string, rec *ledger.AccountRecord) {
	creditNet := rec.CreditBalance - rec.DebitBalance
	debitNet := rec.DebitBalance - rec.CreditBalance

	switch role {
	case "sales":
		is.GrossSales += creditNet
	case "sales_deduction":
		is.SalesDeductions += debitNet
	case "cost_of_sales":
		is.CostOfSales += debitNet
	case "operating_expense":
		is.OperatingExpenses += debitNet
	case "other_income":
		is.OtherIncome += creditNet
	case "other_expense":
		is.OtherExpenses += debitNet
	}
}

func finalizeIncomeStatement(is *IncomeStatementSnapshot) {
	is.NetSales = is.GrossSales - is.SalesDeductions
	is.GrossProfit = is.NetSales - is.CostOfSales
	is.OperatingProfit = is.GrossProfit - is.OperatingExpenses
	is.NetProfit = is.OperatingProfit + is.OtherIncome - is.OtherExpenses
}
