package statements

import (
	"strings"
	"testing"

	"finstat_engine/pkg/core/ledger"
)

func balancedTrialBalance() *ledger.TrialBalance {
	return &ledger.TrialBalance{
		Year: 2024,
		Accounts: map[string]*ledger.AccountRecord{
			"100": {Code: "100", Name: "Cash", DebitBalance: 4000},
			"120": {Code: "120", Name: "Receivables", DebitBalance: 6000},
			"257": {Code: "257", Name: "Accum. depreciation", CreditBalance: 1000},
			"320": {Code: "320", Name: "Trade payables", CreditBalance: 3000},
			"500": {Code: "500", Name: "Capital", CreditBalance: 6000},
		},
	}
}

func TestAssembleBalancedSheet(t *testing.T) {
	result := Assemble(balancedTrialBalance(), ledger.DefaultChartMapping(), SourceFileUpload)

	bs := result.BalanceSheet
	// Assets: 4000 + 6000 - 1000 (contra) = 9000
	if bs.TotalAssets != 9000 {
		t.Errorf("expected total assets 9000, got %f", bs.TotalAssets)
	}
	if bs.TotalLiabilitiesAndEquity != 9000 {
		t.Errorf("expected total L+E 9000, got %f", bs.TotalLiabilitiesAndEquity)
	}
	if !bs.IsBalanced {
		t.Error("expected balanced sheet")
	}
	if bs.Fields["accumulated_depreciation"] != -1000 {
		t.Errorf("contra field should carry its negative contribution, got %f", bs.Fields["accumulated_depreciation"])
	}
	for _, w := range result.Warnings {
		if strings.Contains(w, "out of balance") {
			t.Errorf("unexpected imbalance warning: %s", w)
		}
	}
}

func TestAssembleImbalanceIsWarningNotError(t *testing.T) {
	tb := balancedTrialBalance()
	tb.Accounts["100"].DebitBalance += 50 // force imbalance beyond tolerance

	result := Assemble(tb, ledger.DefaultChartMapping(), SourceFileUpload)

	if result.BalanceSheet.IsBalanced {
		t.Error("expected imbalance")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "out of balance") {
			found = true
		}
	}
	if !found {
		t.Error("expected an out-of-balance warning attached to the result")
	}
	// The statement is still produced and approvable.
	result.BalanceSheet.Approve()
	if !result.BalanceSheet.Locked {
		t.Error("imbalanced statement must still be approvable")
	}
}

func TestIsBalancedTolerance(t *testing.T) {
	cases := []struct {
		a, b float64
		want bool
	}{
		{1000, 1000, true},
		{1000, 1000.99, true},
		{1000, 1001, false},
		{1000, 999.01, true},
		{1000, 998.99, false},
	}
	for _, c := range cases {
		if got := IsBalanced(c.a, c.b); got != c.want {
			t.Errorf("IsBalanced(%f, %f) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestAssembleIncomeWaterfall(t *testing.T) {
	tb := &ledger.TrialBalance{
		Year: 2024,
		Accounts: map[string]*ledger.AccountRecord{
			"600": {Code: "600", CreditBalance: 100000},
			"601": {Code: "601", CreditBalance: 20000},
			"610": {Code: "610", DebitBalance: 5000},
			"620": {Code: "620", DebitBalance: 40000},
			"632": {Code: "632", DebitBalance: 25000},
			"642": {Code: "642", CreditBalance: 1000},
			"660": {Code: "660", DebitBalance: 3000},
		},
	}

	result := Assemble(tb, ledger.DefaultChartMapping(), SourceManual)
	is := result.IncomeStatement

	if is.GrossSales != 120000 {
		t.Errorf("gross sales: got %f", is.GrossSales)
	}
	if is.NetSales != 115000 {
		t.Errorf("net sales: got %f", is.NetSales)
	}
	if is.GrossProfit != 75000 {
		t.Errorf("gross profit: got %f", is.GrossProfit)
	}
	if is.OperatingProfit != 50000 {
		t.Errorf("operating profit: got %f", is.OperatingProfit)
	}
	if is.NetProfit != 48000 {
		t.Errorf("net profit: got %f", is.NetProfit)
	}
}

func TestLockSemantics(t *testing.T) {
	bs := &BalanceSheetSnapshot{Year: 2024, Fields: map[string]float64{"cash_on_hand": 100}}

	if err := bs.SetField("cash_on_hand", 200); err != nil {
		t.Fatalf("unlocked snapshot should accept edits: %v", err)
	}

	bs.Approve()
	if err := bs.SetField("cash_on_hand", 300); err == nil {
		t.Error("locked snapshot must reject edits")
	}
	if bs.Fields["cash_on_hand"] != 200 {
		t.Error("locked snapshot value must not change")
	}

	bs.Unlock()
	if err := bs.SetField("cash_on_hand", 300); err != nil {
		t.Errorf("unlock must make the snapshot editable again: %v", err)
	}
}

func TestChooseBalanceSheetPrecedence(t *testing.T) {
	locked := &BalanceSheetSnapshot{Year: 2024, TotalAssets: 1000, Locked: true}
	recomputed := &BalanceSheetSnapshot{Year: 2024, TotalAssets: 1234}

	if got := ChooseBalanceSheet(locked, recomputed, true); got != locked {
		t.Error("preferLocked must pick the locked snapshot")
	}
	if got := ChooseBalanceSheet(locked, recomputed, false); got != recomputed {
		t.Error("without preferLocked the recomputed snapshot wins")
	}

	// An unlocked "locked" candidate never wins.
	unlocked := &BalanceSheetSnapshot{Year: 2024}
	if got := ChooseBalanceSheet(unlocked, recomputed, true); got != recomputed {
		t.Error("an unlocked snapshot has no precedence")
	}
}

func TestAssembleMissingSections(t *testing.T) {
	tb := &ledger.TrialBalance{
		Year:     2024,
		Accounts: map[string]*ledger.AccountRecord{"600": {Code: "600", CreditBalance: 1}},
	}
	result := Assemble(tb, ledger.DefaultChartMapping(), SourceFileUpload)

	var sawAsset, sawLiability bool
	for _, w := range result.Warnings {
		if strings.Contains(w, "no asset accounts") {
			sawAsset = true
		}
		if strings.Contains(w, "no liability") {
			sawLiability = true
		}
	}
	if !sawAsset || !sawLiability {
		t.Errorf("expected missing-section warnings, got %v", result.Warnings)
	}
}
