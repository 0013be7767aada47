package ledger

import (
	"math"
	"testing"

	"finstat_engine/pkg/core/ingest"
)

func TestBuildTrialBalanceMergesSubAccounts(t *testing.T) {
	rows := []ingest.ParsedAccount{
		{Code: "600.01", Name: "Domestic A", Credit: 7000, CreditBalance: 7000},
		{Code: "600.02", Name: "Domestic B", Credit: 3000, CreditBalance: 3000},
		{Code: "100", Name: "Cash", Debit: 5000, Credit: 1000, DebitBalance: 4000},
	}

	tb := BuildTrialBalance(rows, 2024, 0)

	if len(tb.Accounts) != 2 {
		t.Fatalf("expected 2 parent accounts, got %d", len(tb.Accounts))
	}

	sales := tb.Accounts["600"]
	if sales == nil {
		t.Fatal("parent 600 missing")
	}
	if sales.Credit != 10000 {
		t.Errorf("expected parent credit 10000, got %f", sales.Credit)
	}
	if len(sales.SubAccounts) != 2 {
		t.Fatalf("expected 2 sub-accounts, got %d", len(sales.SubAccounts))
	}

	// Parent aggregate equals the sum over sub-accounts.
	var subCredit, subCreditBalance float64
	for _, sub := range sales.SubAccounts {
		subCredit += sub.Credit
		subCreditBalance += sub.CreditBalance
	}
	if math.Abs(sales.Credit-subCredit) > 1e-9 {
		t.Errorf("parent credit %f != sub-account sum %f", sales.Credit, subCredit)
	}
	if math.Abs(sales.CreditBalance-subCreditBalance) > 1e-9 {
		t.Errorf("parent credit balance %f != sub-account sum %f", sales.CreditBalance, subCreditBalance)
	}
}

func TestBuildTrialBalanceAccumulatesDuplicateParents(t *testing.T) {
	rows := []ingest.ParsedAccount{
		{Code: "320", Name: "Suppliers", Credit: 2000, CreditBalance: 2000},
		{Code: "320", Name: "Suppliers", Credit: 500, CreditBalance: 500},
	}

	tb := BuildTrialBalance(rows, 2024, 6)
	if tb.Accounts["320"].CreditBalance != 2500 {
		t.Errorf("expected accumulated 2500, got %f", tb.Accounts["320"].CreditBalance)
	}
	if tb.Month != 6 {
		t.Errorf("expected month 6, got %d", tb.Month)
	}
}

func TestSignedBalanceContraAccounts(t *testing.T) {
	mapping := DefaultChartMapping()

	// Accumulated depreciation: credit balance inside the asset range,
	// must subtract from total assets.
	accumDep := &AccountRecord{Code: "257", CreditBalance: 1500}
	m, _ := mapping.Lookup("257")
	if got := SignedBalance(accumDep, m); got != -1500 {
		t.Errorf("expected -1500 for contra asset, got %f", got)
	}

	// Unpaid capital: debit balance inside equity, must subtract.
	unpaid := &AccountRecord{Code: "501", DebitBalance: 800}
	m, _ = mapping.Lookup("501")
	if got := SignedBalance(unpaid, m); got != -800 {
		t.Errorf("expected -800 for contra equity, got %f", got)
	}

	// Plain asset.
	cash := &AccountRecord{Code: "100", DebitBalance: 4000}
	m, _ = mapping.Lookup("100")
	if got := SignedBalance(cash, m); got != 4000 {
		t.Errorf("expected 4000, got %f", got)
	}
}

func TestLookupRangeFallback(t *testing.T) {
	mapping := DefaultChartMapping()

	m, ok := mapping.Lookup("159")
	if !ok || m.Sect != SectionAsset {
		t.Errorf("expected asset fallback for 159, got %+v ok=%v", m, ok)
	}
	m, ok = mapping.Lookup("369")
	if !ok || m.Sect != SectionLiability {
		t.Errorf("expected liability fallback for 369, got %+v ok=%v", m, ok)
	}
	if _, ok := mapping.Lookup("999"); ok {
		t.Error("expected no mapping for 999")
	}
}

func TestApplyYAMLOverlay(t *testing.T) {
	mapping := DefaultChartMapping()
	overlay := []byte(`
"650":
  field: fx_losses
  section: income
  role: other_expense
"259":
  field: advances_for_fixed_assets
  section: asset
"258":
  field: construction_in_progress
  section: asset
  contra: true
`)
	if err := mapping.ApplyYAMLOverlay(overlay); err != nil {
		t.Fatalf("overlay failed: %v", err)
	}

	if m := mapping["650"]; m.Field != "fx_losses" || m.Role != "other_expense" {
		t.Errorf("new entry not applied: %+v", m)
	}
	if !mapping["258"].Contra {
		t.Error("overlay should be able to flip contra status on existing codes")
	}
}

func TestApplyYAMLOverlayRejectsGarbage(t *testing.T) {
	mapping := DefaultChartMapping()
	if err := mapping.ApplyYAMLOverlay([]byte("{{not yaml")); err == nil {
		t.Error("expected parse error")
	}
}
