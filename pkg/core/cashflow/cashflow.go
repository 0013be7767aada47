// Package cashflow derives an indirect-method cash flow statement from
// balance-sheet deltas and the income statement, and reconciles it
// against the independently tracked cash balances.
package cashflow

import (
	"fmt"
	"math"

	"finstat_engine/pkg/core/statements"
)

// DefaultTolerance mirrors the balance-sheet tolerance: one unit of
// currency absorbs rounding noise in the cash equation.
const DefaultTolerance = 1.0

// LineItem is one labeled amount inside a section.
type LineItem struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Section groups line items with their sum.
type Section struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

func (s *Section) add(label string, amount float64) {
	if amount == 0 {
		return
	}
	s.Items = append(s.Items, LineItem{Label: label, Amount: amount})
	s.Total += amount
}

// Statement is the derived cash flow statement for one period.
type Statement struct {
	Operating           Section  `json:"operating"`
	Investing           Section  `json:"investing"`
	Financing           Section  `json:"financing"`
	NetCashChange       float64  `json:"net_cash_change"`
	OpeningCash         float64  `json:"opening_cash"`
	ClosingCash         float64  `json:"closing_cash"`
	ExpectedClosingCash float64  `json:"expected_closing_cash"`
	Difference          float64  `json:"difference"`
	IsBalanced          bool     `json:"is_balanced"`
	Warnings            []string `json:"warnings,omitempty"`
}

// Inputs feeds one derivation. LeasingPayments has no balance-sheet
// field of its own and is supplied by the caller when known.
type Inputs struct {
	Current         *statements.BalanceSheetSnapshot
	Prior           *statements.BalanceSheetSnapshot
	Income          *statements.IncomeStatementSnapshot
	Depreciation    float64
	LeasingPayments float64
	Tolerance       float64 // 0 means DefaultTolerance
}

// cashFields are the balance-sheet fields counted as cash.
var cashFields = []string{"cash_on_hand", "banks", "cheques_received"}

func field(s *statements.BalanceSheetSnapshot, name string) float64 {
	if s == nil || s.Fields == nil {
		return 0
	}
	return s.Fields[name]
}

// delta is current minus prior for one field.
func delta(in Inputs, name string) float64 {
	return field(in.Current, name) - field(in.Prior, name)
}

func cashTotal(s *statements.BalanceSheetSnapshot) float64 {
	var total float64
	for _, f := range cashFields {
		total += field(s, f)
	}
	return total
}

// Derive builds the indirect-method statement.
//
// Working-capital signs: an increase in an asset (receivables,
// inventory, net VAT position) is a cash use, an increase in a payable a
// cash source. A non-zero closing difference is an "equation mismatch"
// warning attributed to uncategorized transactions or missing prior-year
// data, never a fatal error.
func Derive(in Inputs) (*Statement, error) {
	if in.Current == nil || in.Income == nil {
		return nil, fmt.Errorf("current balance sheet and income statement are required")
	}
	tolerance := in.Tolerance
	if tolerance == 0 {
		tolerance = DefaultTolerance
	}

	st := &Statement{}
	if in.Prior == nil {
		st.Warnings = append(st.Warnings, "no prior-year balance sheet; working-capital deltas treated as first-year balances")
	}

	// Operating: net profit plus the non-cash depreciation addback, then
	// working-capital movements.
	op := &st.Operating
	op.add("net profit", in.Income.NetProfit)
	op.add("depreciation addback", in.Depreciation)
	op.add("change in trade receivables", -delta(in, "trade_receivables"))
	op.add("change in notes receivable", -delta(in, "notes_receivable"))
	op.add("change in inventory", -delta(in, "inventory"))
	op.add("change in trade payables", delta(in, "trade_payables"))
	op.add("change in personnel payables", delta(in, "personnel_payables"))
	op.add("change in taxes payable", delta(in, "taxes_payable"))
	op.add("change in social security payable", delta(in, "social_security_payable"))

	netVATDelta := delta(in, "deferred_vat") + delta(in, "deductible_vat") - delta(in, "vat_payable")
	op.add("change in net VAT position", -netVATDelta)

	// Investing: capital expenditure per gross fixed-asset category.
	inv := &st.Investing
	for _, capex := range []struct{ label, fieldName string }{
		{"vehicle purchases", "vehicles"},
		{"machinery and equipment purchases", "machinery_equipment"},
		{"fixture purchases", "fixtures"},
	} {
		inv.add(capex.label, -delta(in, capex.fieldName))
	}

	// Financing: net loan movement split into proceeds/repayments, lease
	// payments, partner account movement, capital increases.
	fin := &st.Financing
	loanDelta := delta(in, "bank_loans") + delta(in, "long_term_bank_loans")
	if loanDelta >= 0 {
		fin.add("loan proceeds", loanDelta)
	} else {
		fin.add("loan repayments", loanDelta)
	}
	fin.add("leasing payments", -in.LeasingPayments)

	partnerDelta := delta(in, "due_to_partners")
	if partnerDelta >= 0 {
		fin.add("partner deposits", partnerDelta)
	} else {
		fin.add("partner withdrawals", partnerDelta)
	}
	fin.add("capital increase", delta(in, "paid_in_capital"))

	st.NetCashChange = st.Operating.Total + st.Investing.Total + st.Financing.Total
	st.OpeningCash = cashTotal(in.Prior)
	st.ClosingCash = cashTotal(in.Current)
	st.ExpectedClosingCash = st.OpeningCash + st.NetCashChange
	st.Difference = st.ClosingCash - st.ExpectedClosingCash
	st.IsBalanced = math.Abs(st.Difference) < tolerance

	if !st.IsBalanced {
		st.Warnings = append(st.Warnings, fmt.Sprintf(
			"cash flow equation mismatch of %.2f (expected closing %.2f, actual %.2f); likely uncategorized transactions or missing prior-year data",
			st.Difference, st.ExpectedClosingCash, st.ClosingCash))
	}
	return st, nil
}
