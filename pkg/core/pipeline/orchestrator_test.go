package pipeline

import (
	"context"
	"strings"
	"testing"

	"finstat_engine/pkg/core/extract"
)

type stubProvider struct {
	response string
	calls    int
}

func (s *stubProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.response, nil
}

func TestProcessDocumentTextFlow(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil, nil)

	doc := strings.Join([]string{
		"100 KASA 25.000,00 15.000,00 10.000,00 0,00",
		"500 SERMAYE 0,00 10.000,00 0,00 10.000,00",
		"600 YURTİÇİ SATIŞLAR 0,00 120.000,00 0,00 120.000,00",
		"620 SATILAN TİCARİ MALLAR MALİYETİ 75.000,00 0,00 75.000,00 0,00",
	}, "\n")

	result, err := o.ProcessDocument(context.Background(), "user-1", 2024, 12, []byte(doc), FormatText, nil)
	if err != nil {
		t.Fatal(err)
	}

	if result.TrialBalance == nil || len(result.TrialBalance.Accounts) != 4 {
		t.Fatalf("expected 4 accounts in trial balance, got %+v", result.TrialBalance)
	}
	if result.BalanceSheet == nil || result.BalanceSheet.TotalAssets != 10000 {
		t.Errorf("balance sheet assets: got %+v", result.BalanceSheet)
	}
	if result.IncomeStatement.NetSales != 120000 {
		t.Errorf("net sales: got %f", result.IncomeStatement.NetSales)
	}
	if result.CashFlow == nil {
		t.Fatal("cash flow must be derived")
	}
	// No prior year supplied.
	if len(result.Warnings) == 0 {
		t.Error("expected a missing-prior-year warning")
	}
}

func TestProcessDocumentFreeFormUsesExtractor(t *testing.T) {
	provider := &stubProvider{response: `[
		{"code":"100","name":"KASA","debit":5000,"credit":1000,"debit_balance":4000,"credit_balance":0},
		{"code":"500","name":"SERMAYE","debit":0,"credit":4000,"debit_balance":0,"credit_balance":4000}
	]`}
	o := NewOrchestrator(extract.NewExtractor(provider), nil, nil, nil)

	result, err := o.ProcessDocument(context.Background(), "user-1", 2024, 12, []byte("scanned mizan text"), FormatFreeForm, nil)
	if err != nil {
		t.Fatal(err)
	}
	if provider.calls != 1 {
		t.Errorf("expected one model call, got %d", provider.calls)
	}
	if result.FromCache {
		t.Error("no cache configured, result cannot come from cache")
	}
	if !result.BalanceSheet.IsBalanced {
		t.Errorf("expected balanced sheet, got assets %f vs %f",
			result.BalanceSheet.TotalAssets, result.BalanceSheet.TotalLiabilitiesAndEquity)
	}
}

func TestProcessDocumentRejectsUnknownFormat(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil, nil)
	if _, err := o.ProcessDocument(context.Background(), "u", 2024, 1, []byte("x"), "pdf", nil); err == nil {
		t.Error("expected unsupported-format error")
	}
}

func TestProcessDocumentFreeFormWithoutExtractor(t *testing.T) {
	o := NewOrchestrator(nil, nil, nil, nil)
	if _, err := o.ProcessDocument(context.Background(), "u", 2024, 1, []byte("x"), FormatFreeForm, nil); err == nil {
		t.Error("expected error when no extractor is configured")
	}
}
