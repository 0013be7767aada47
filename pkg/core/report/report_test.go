package report

import (
	"strings"
	"testing"

	"finstat_engine/pkg/core/cashflow"
	"finstat_engine/pkg/core/statements"
)

func TestRenderFullReport(t *testing.T) {
	r := &ReconciliationReport{
		CompanyName: "Acme Yazılım A.Ş.",
		Period:      "2024-12",
		BalanceSheet: &statements.BalanceSheetSnapshot{
			TotalAssets:               100000,
			TotalLiabilitiesAndEquity: 100000,
			IsBalanced:                true,
			Source:                    statements.SourceFileUpload,
		},
		IncomeStatement: &statements.IncomeStatementSnapshot{
			NetSales:        115000,
			GrossProfit:     40000,
			OperatingProfit: 15000,
			NetProfit:       13000,
		},
		CashFlow: &cashflow.Statement{
			NetCashChange: 6500,
			ClosingCash:   16500,
			IsBalanced:    true,
		},
	}

	doc, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"# Financial Reconciliation: Acme Yazılım A.Ş.",
		"## Balance Sheet",
		"## Income Statement",
		"## Cash Flow (Indirect Method)",
		"115000.00",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(doc, "## Warnings") {
		t.Error("no warnings section expected for a clean period")
	}
}

func TestRenderFlagsImbalanceAndWarnings(t *testing.T) {
	r := &ReconciliationReport{
		CompanyName: "Acme",
		Period:      "2024-12",
		BalanceSheet: &statements.BalanceSheetSnapshot{
			TotalAssets:               100000,
			TotalLiabilitiesAndEquity: 98000,
			IsBalanced:                false,
		},
		CashFlow: &cashflow.Statement{
			Difference: 500,
			Warnings:   []string{"cash flow equation mismatch: difference 500.00"},
		},
	}

	doc, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "Imbalance of 2000.00") {
		t.Error("imbalance callout missing")
	}
	if !strings.Contains(doc, "## Warnings") {
		t.Error("warnings section missing")
	}
}

func TestRenderSkipsNilSections(t *testing.T) {
	r := &ReconciliationReport{CompanyName: "Acme", Period: "2024-01"}
	doc, err := r.Render()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "## Balance Sheet") {
		t.Error("nil balance sheet must be skipped")
	}
}
