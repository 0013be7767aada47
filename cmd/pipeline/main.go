package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"finstat_engine/pkg/core/captable"
	"finstat_engine/pkg/core/cashflow"
	"finstat_engine/pkg/core/depreciation"
	"finstat_engine/pkg/core/extract"
	"finstat_engine/pkg/core/ingest"
	"finstat_engine/pkg/core/ledger"
	"finstat_engine/pkg/core/llm"
	"finstat_engine/pkg/core/pipeline"
	"finstat_engine/pkg/core/report"
	"finstat_engine/pkg/core/scenario"
	"finstat_engine/pkg/core/sensitivity"
	"finstat_engine/pkg/core/statements"
	"finstat_engine/pkg/core/store"
)

// Demo trial balances for two consecutive year-ends, in the tabular
// layout accounting software exports (Turkish headers, localized numbers).
var currentYearGrid = [][]string{
	{"Hesap Kodu", "Hesap Adı", "Borç", "Alacak", "Borç Bakiye", "Alacak Bakiye"},
	{"100", "KASA", "25.000,00", "15.000,00", "10.000,00", "0,00"},
	{"102", "BANKALAR", "80.000,00", "73.500,00", "6.500,00", "0,00"},
	{"120", "ALICILAR", "45.000,00", "30.000,00", "15.000,00", "0,00"},
	{"153", "TİCARİ MALLAR", "32.000,00", "20.000,00", "12.000,00", "0,00"},
	{"254", "TAŞITLAR", "30.000,00", "0,00", "30.000,00", "0,00"},
	{"257", "BİRİKMİŞ AMORTİSMANLAR", "0,00", "6.000,00", "0,00", "6.000,00"},
	{"320", "SATICILAR", "18.000,00", "28.000,00", "0,00", "10.000,00"},
	{"300", "BANKA KREDİLERİ", "0,00", "12.000,00", "0,00", "12.000,00"},
	{"500", "SERMAYE", "0,00", "40.000,00", "0,00", "40.000,00"},
	{"590", "DÖNEM NET KARI", "0,00", "5.500,00", "0,00", "5.500,00"},
	{"600", "YURTİÇİ SATIŞLAR", "0,00", "120.000,00", "0,00", "120.000,00"},
	{"610", "SATIŞTAN İADELER", "5.000,00", "0,00", "5.000,00", "0,00"},
	{"620", "SATILAN TİCARİ MALLAR MALİYETİ", "75.000,00", "0,00", "75.000,00", "0,00"},
	{"632", "GENEL YÖNETİM GİDERLERİ", "28.000,00", "0,00", "28.000,00", "0,00"},
}

var priorYearGrid = [][]string{
	{"Hesap Kodu", "Hesap Adı", "Borç", "Alacak", "Borç Bakiye", "Alacak Bakiye"},
	{"100", "KASA", "18.000,00", "12.000,00", "6.000,00", "0,00"},
	{"102", "BANKALAR", "60.000,00", "56.000,00", "4.000,00", "0,00"},
	{"120", "ALICILAR", "38.000,00", "26.000,00", "12.000,00", "0,00"},
	{"153", "TİCARİ MALLAR", "28.000,00", "18.000,00", "10.000,00", "0,00"},
	{"254", "TAŞITLAR", "27.000,00", "0,00", "27.000,00", "0,00"},
	{"257", "BİRİKMİŞ AMORTİSMANLAR", "0,00", "3.000,00", "0,00", "3.000,00"},
	{"320", "SATICILAR", "14.000,00", "22.000,00", "0,00", "8.000,00"},
	{"300", "BANKA KREDİLERİ", "0,00", "11.000,00", "0,00", "11.000,00"},
	{"500", "SERMAYE", "0,00", "40.000,00", "0,00", "40.000,00"},
}

func assemblePeriod(grid [][]string, year, month int, mapping ledger.ChartMapping) *statements.AssemblyResult {
	parsed, err := ingest.ParseGrid(grid)
	if err != nil {
		log.Fatalf("Ingestion failed for %d-%02d: %v", year, month, err)
	}
	for _, w := range parsed.Warnings {
		fmt.Printf("   ⚠️  %s\n", w)
	}
	tb := ledger.BuildTrialBalance(parsed.Accounts, year, month)
	return statements.Assemble(tb, mapping, statements.SourceFileUpload)
}

func main() {
	// Load environment variables
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	fmt.Println("🚀 Financial Statement Engine Pipeline Starting...")

	mapping := ledger.DefaultChartMapping()

	// 1. Ingest and assemble both periods
	fmt.Println("📂 Parsing trial balances (2023-12, 2024-12)...")
	prior := assemblePeriod(priorYearGrid, 2023, 12, mapping)
	current := assemblePeriod(currentYearGrid, 2024, 12, mapping)

	// 1b. Free-form extraction through the Gemini-backed orchestrator,
	// skipped when no API key is configured.
	if os.Getenv("GEMINI_API_KEY") != "" {
		fmt.Println("🤖 Extracting free-form document via Gemini...")
		extractor := extract.NewExtractor(extract.NewLLMAdapter(&llm.GeminiProvider{}))
		cache := store.NewExtractionCache(nil, "")
		orch := pipeline.NewOrchestrator(extractor, cache, nil, nil)

		freeForm := []byte("Mizan özeti: 100 KASA borç bakiyesi 10.000,00; " +
			"500 SERMAYE alacak bakiyesi 10.000,00.")
		res, err := orch.ProcessDocument(context.Background(), "demo-user", 2024, 12,
			freeForm, pipeline.FormatFreeForm, prior.BalanceSheet)
		if err != nil {
			log.Fatalf("Free-form extraction failed: %v", err)
		}
		fmt.Printf("   Extracted %d accounts (cached: %v, %.0fms)\n",
			len(res.TrialBalance.Accounts), res.FromCache, float64(res.Elapsed.Milliseconds()))
	} else {
		fmt.Println("⏭️  GEMINI_API_KEY not set, skipping free-form extraction demo.")
	}

	// 2. Depreciation on the vehicle fleet
	purchase := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	dep := depreciation.Calculate(depreciation.Asset{
		Value:           30000,
		PurchaseDate:    &purchase,
		UsefulLifeYears: 5,
		Method:          depreciation.MethodStraightLine,
	}, asOf)

	// 3. Indirect-method cash flow
	cf, err := cashflow.Derive(cashflow.Inputs{
		Current:      current.BalanceSheet,
		Prior:        prior.BalanceSheet,
		Income:       current.IncomeStatement,
		Depreciation: dep.AnnualDepreciation,
	})
	if err != nil {
		log.Fatalf("Cash flow derivation failed: %v", err)
	}

	// 4. Forward scenario
	sc := scenario.NewScenario("base plan", 2024, 2025)
	var revenue, payroll, capex scenario.ProjectionItem
	revenue.Category = "product sales"
	revenue.BaseAmount = current.IncomeStatement.NetSales
	revenue.DistributeEvenly(160000)
	payroll.Category = "payroll and opex"
	payroll.DistributeEvenly(120000)
	capex.Category = "fleet expansion"
	capex.SetQuarter(1, 50000)
	sc.Revenues = append(sc.Revenues, revenue)
	sc.Expenses = append(sc.Expenses, payroll)
	sc.Investments = append(sc.Investments, capex)

	capital := scenario.AnalyzeCapitalRequirement(sc.QuarterlyNetFlows())
	projections := scenario.ProjectYears(2025, sc.TotalRevenue(), sc.TotalExpenses(), 0.6, 5, 5)

	// 5. Sensitivity
	adjustment := sensitivity.AdjustMultiple(5, 0.6, 0.1)
	drivers := map[string]float64{
		"revenue":  sc.TotalRevenue(),
		"multiple": adjustment.AdjustedMultiple,
	}
	tornado := sensitivity.AnalyzeTornado(drivers, func(d map[string]float64) float64 {
		return d["revenue"] * d["multiple"]
	})
	matrix := sensitivity.Matrix{
		Bear: sensitivity.Outcome{Revenue: sc.TotalRevenue() * 0.6, Valuation: drivers["revenue"] * drivers["multiple"] * 0.6},
		Base: sensitivity.Outcome{Revenue: sc.TotalRevenue(), Valuation: drivers["revenue"] * drivers["multiple"]},
		Bull: sensitivity.Outcome{Revenue: sc.TotalRevenue() * 1.5, Valuation: drivers["revenue"] * drivers["multiple"] * 1.5},
	}
	matrix.ApplyDefaultProbabilities()

	// 6. Cap table after the planned round
	table := &captable.Table{}
	if err := table.AddHolder("founders", 80000, captable.TypeCommon); err != nil {
		log.Fatalf("Cap table setup failed: %v", err)
	}
	if err := table.AddHolder("employee options", 10000, captable.TypeOptions); err != nil {
		log.Fatalf("Cap table setup failed: %v", err)
	}
	if err := table.AddHolder("angels", 10000, captable.TypeSAFE); err != nil {
		log.Fatalf("Cap table setup failed: %v", err)
	}
	if err := table.ApplyFutureRound(captable.FutureRoundAssumption{
		Round:            "seed",
		DilutionPct:      20,
		InvestmentAmount: capital.RequiredInvestment,
	}); err != nil {
		log.Fatalf("Cap table update failed: %v", err)
	}

	// 7. REPORT
	fmt.Println("\n################################################################################")
	fmt.Println("                  FINANCIAL STATEMENT ENGINE - PERIOD REPORT")
	fmt.Println("                         Period: 2024-12 (FY2024)")
	fmt.Println("################################################################################")

	bs := current.BalanceSheet
	is := current.IncomeStatement
	fmt.Println("\n[1] RECONCILIATION")
	fmt.Printf("Total Assets:          %12.2f\n", bs.TotalAssets)
	fmt.Printf("Liabilities + Equity:  %12.2f\n", bs.TotalLiabilitiesAndEquity)
	fmt.Printf("Balanced:              %v\n", bs.IsBalanced)
	fmt.Printf("Net Sales:             %12.2f\n", is.NetSales)
	fmt.Printf("Net Profit:            %12.2f\n", is.NetProfit)

	fmt.Println("\n[2] CASH FLOW (INDIRECT)")
	fmt.Printf("Operating:             %12.2f\n", cf.Operating.Total)
	fmt.Printf("Investing:             %12.2f\n", cf.Investing.Total)
	fmt.Printf("Financing:             %12.2f\n", cf.Financing.Total)
	fmt.Printf("Net Change:            %12.2f  (ties out: %v)\n", cf.NetCashChange, cf.IsBalanced)

	fmt.Println("\n[3] CAPITAL REQUIREMENT")
	if capital.IsSelfSustaining {
		fmt.Println("Self-sustaining: no external capital needed this year.")
	} else {
		fmt.Printf("Worst Quarter:         Q%d (trough %.0f)\n", capital.WorstQuarter, capital.MinCumulativeCash)
		fmt.Printf("Required Investment:   %12.2f\n", capital.RequiredInvestment)
		fmt.Printf("Runway:                %d months\n", capital.RunwayMonths)
	}

	fmt.Println("\n[4] VALUATION SENSITIVITY")
	fmt.Printf("Adjusted Multiple:     %.2fx (%s)\n", adjustment.AdjustedMultiple, adjustment.Reason)
	fmt.Printf("%-12s | %15s | %15s\n", "Driver", "Low (-10%)", "High (+10%)")
	fmt.Println(strings.Repeat("-", 50))
	for _, r := range tornado {
		fmt.Printf("%-12s | %15.0f | %15.0f\n", r.Driver, r.ValuationAtLow, r.ValuationAtHigh)
	}
	fmt.Printf("Expected Valuation:    %12.0f (bear/base/bull weighted)\n", matrix.ExpectedValuation())

	fmt.Println("\n[5] CAP TABLE AFTER SEED ROUND")
	for _, e := range table.Entries {
		fmt.Printf("%-18s %10.0f shares  %6.2f%%  (%s)\n", e.Holder, e.Shares, e.Percentage, e.Type)
	}

	// 8. Markdown report document
	doc := &report.ReconciliationReport{
		CompanyName:     "Demo Company",
		Period:          "2024-12",
		GeneratedAt:     time.Now(),
		BalanceSheet:    current.BalanceSheet,
		IncomeStatement: current.IncomeStatement,
		CashFlow:        cf,
		Projections:     projections,
		Warnings:        current.Warnings,
	}
	if _, err := doc.Render(); err != nil {
		log.Fatalf("Report rendering failed: %v", err)
	}

	fmt.Println("\n[Done] Reconciliation Complete.")
}
