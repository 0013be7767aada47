// Package report renders reconciliation results as a Markdown document.
package report

import (
	"fmt"
	"strings"
	"time"

	"finstat_engine/pkg/core/cashflow"
	"finstat_engine/pkg/core/scenario"
	"finstat_engine/pkg/core/statements"
	"finstat_engine/pkg/core/utils"
)

// ReconciliationReport collects everything one reporting period produced.
// Nil sections are skipped when rendering.
type ReconciliationReport struct {
	CompanyName string
	Period      string // e.g. "2024-12"
	GeneratedAt time.Time

	BalanceSheet    *statements.BalanceSheetSnapshot
	IncomeStatement *statements.IncomeStatementSnapshot
	CashFlow        *cashflow.Statement
	Projections     []scenario.YearProjection
	Warnings        []string
}

// Render produces the Markdown document and validates it parses.
func (r *ReconciliationReport) Render() (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial Reconciliation: %s\n\n", r.CompanyName)
	fmt.Fprintf(&b, "Period: %s  \n", r.Period)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	}
	b.WriteString("\n")

	if r.BalanceSheet != nil {
		r.writeBalanceSheet(&b)
	}
	if r.IncomeStatement != nil {
		r.writeIncomeStatement(&b)
	}
	if r.CashFlow != nil {
		r.writeCashFlow(&b)
	}
	if len(r.Projections) > 0 {
		r.writeProjections(&b)
	}
	r.writeWarnings(&b)

	doc := utils.CleanMarkdown(b.String())
	if !utils.ValidateMarkdown(doc) {
		return "", fmt.Errorf("rendered report is not valid markdown")
	}
	return doc, nil
}

func (r *ReconciliationReport) writeBalanceSheet(b *strings.Builder) {
	bs := r.BalanceSheet
	b.WriteString("## Balance Sheet\n\n")
	fmt.Fprintf(b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Total assets | %.2f |\n", bs.TotalAssets)
	fmt.Fprintf(b, "| Total liabilities and equity | %.2f |\n", bs.TotalLiabilitiesAndEquity)
	fmt.Fprintf(b, "| Balanced | %v |\n", bs.IsBalanced)
	fmt.Fprintf(b, "| Source | %s |\n", bs.Source)
	if !bs.IsBalanced {
		diff := bs.TotalAssets - bs.TotalLiabilitiesAndEquity
		fmt.Fprintf(b, "\n**Imbalance of %.2f** between assets and liabilities+equity.\n", diff)
	}
	b.WriteString("\n")
}

func (r *ReconciliationReport) writeIncomeStatement(b *strings.Builder) {
	is := r.IncomeStatement
	b.WriteString("## Income Statement\n\n")
	fmt.Fprintf(b, "| Line | Value |\n|---|---|\n")
	fmt.Fprintf(b, "| Net sales | %.2f |\n", is.NetSales)
	fmt.Fprintf(b, "| Gross profit | %.2f |\n", is.GrossProfit)
	fmt.Fprintf(b, "| Operating profit | %.2f |\n", is.OperatingProfit)
	fmt.Fprintf(b, "| Net profit | %.2f |\n", is.NetProfit)
	b.WriteString("\n")
}

func (r *ReconciliationReport) writeCashFlow(b *strings.Builder) {
	cf := r.CashFlow
	b.WriteString("## Cash Flow (Indirect Method)\n\n")
	fmt.Fprintf(b, "| Section | Total |\n|---|---|\n")
	fmt.Fprintf(b, "| Operating | %.2f |\n", cf.Operating.Total)
	fmt.Fprintf(b, "| Investing | %.2f |\n", cf.Investing.Total)
	fmt.Fprintf(b, "| Financing | %.2f |\n", cf.Financing.Total)
	fmt.Fprintf(b, "| Net change | %.2f |\n", cf.NetCashChange)
	fmt.Fprintf(b, "| Closing cash | %.2f |\n", cf.ClosingCash)
	if !cf.IsBalanced {
		fmt.Fprintf(b, "\n**Cash flow equation mismatch of %.2f**; derived closing cash does not tie to the balance sheet.\n", cf.Difference)
	}
	b.WriteString("\n")
}

func (r *ReconciliationReport) writeProjections(b *strings.Builder) {
	b.WriteString("## Projections\n\n")
	b.WriteString("| Year | Revenue | Expenses | Profit | Valuation |\n|---|---|---|---|---|\n")
	for _, p := range r.Projections {
		fmt.Fprintf(b, "| %d | %.0f | %.0f | %.0f | %.0f |\n",
			p.Year, p.Revenue, p.Expenses, p.Profit, p.CompanyValuation)
	}
	b.WriteString("\n")
}

func (r *ReconciliationReport) writeWarnings(b *strings.Builder) {
	all := append([]string{}, r.Warnings...)
	if r.CashFlow != nil {
		all = append(all, r.CashFlow.Warnings...)
	}
	if len(all) == 0 {
		return
	}
	b.WriteString("## Warnings\n\n")
	for _, w := range all {
		fmt.Fprintf(b, "- %s\n", w)
	}
	b.WriteString("\n")
}
