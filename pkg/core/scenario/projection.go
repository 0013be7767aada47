// Package scenario builds forward-looking projections: quarterly revenue
// and expense plans, decaying-growth multi-year forecasts, capital-need
// analysis and investor return metrics.
package scenario

import (
	"math"

	"github.com/google/uuid"
)

// ProjectionItem is one projected revenue/expense/investment category.
// The yearly total is always the sum of the four quarters; it is derived
// on read and never stored independently, so no mutation can desynchronize
// it.
type ProjectionItem struct {
	Category   string  `json:"category"`
	BaseAmount float64 `json:"base_amount"`
	Q1         float64 `json:"q1"`
	Q2         float64 `json:"q2"`
	Q3         float64 `json:"q3"`
	Q4         float64 `json:"q4"`
	IsNew      bool    `json:"is_new"`
}

// Total returns the derived yearly total.
func (p *ProjectionItem) Total() float64 {
	return p.Q1 + p.Q2 + p.Q3 + p.Q4
}

// SetQuarter updates one quarter (1-4). Out-of-range quarters are
// ignored.
func (p *ProjectionItem) SetQuarter(quarter int, amount float64) {
	switch quarter {
	case 1:
		p.Q1 = amount
	case 2:
		p.Q2 = amount
	case 3:
		p.Q3 = amount
	case 4:
		p.Q4 = amount
	}
}

// GrowthPct is the growth of the projected total over the base amount.
// A zero base with a positive total reads as 100% growth.
func (p *ProjectionItem) GrowthPct() float64 {
	total := p.Total()
	if p.BaseAmount > 0 {
		return (total - p.BaseAmount) / p.BaseAmount * 100
	}
	if total > 0 {
		return 100
	}
	return 0
}

// DistributeEvenly splits a yearly total across the quarters so the four
// values sum exactly to the input: Q1-Q3 take the rounded quarter, Q4
// absorbs the rounding remainder.
func (p *ProjectionItem) DistributeEvenly(total float64) {
	perQuarter := math.Round(total / 4)
	p.Q1, p.Q2, p.Q3 = perQuarter, perQuarter, perQuarter
	p.Q4 = total - 3*perQuarter
}

// SimulationScenario is one named projection with its item lists.
type SimulationScenario struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	BaseYear    int              `json:"base_year"`
	TargetYear  int              `json:"target_year"`
	Revenues    []ProjectionItem `json:"revenues"`
	Expenses    []ProjectionItem `json:"expenses"`
	Investments []ProjectionItem `json:"investments"`
}

// NewScenario creates an empty scenario with a fresh identifier.
func NewScenario(name string, baseYear, targetYear int) *SimulationScenario {
	return &SimulationScenario{
		ID:         uuid.New().String(),
		Name:       name,
		BaseYear:   baseYear,
		TargetYear: targetYear,
	}
}

func sumTotals(items []ProjectionItem) float64 {
	var total float64
	for i := range items {
		total += items[i].Total()
	}
	return total
}

// TotalRevenue sums the derived totals of all revenue items.
func (s *SimulationScenario) TotalRevenue() float64 { return sumTotals(s.Revenues) }

// TotalExpenses sums the derived totals of all expense items.
func (s *SimulationScenario) TotalExpenses() float64 { return sumTotals(s.Expenses) }

// TotalInvestments sums the derived totals of all investment items.
func (s *SimulationScenario) TotalInvestments() float64 { return sumTotals(s.Investments) }

// QuarterlyNetFlows nets revenue against expenses and investments per
// quarter, feeding the capital-need walk.
func (s *SimulationScenario) QuarterlyNetFlows() [4]float64 {
	var flows [4]float64
	addQuarters := func(items []ProjectionItem, sign float64) {
		for i := range items {
			flows[0] += sign * items[i].Q1
			flows[1] += sign * items[i].Q2
			flows[2] += sign * items[i].Q3
			flows[3] += sign * items[i].Q4
		}
	}
	addQuarters(s.Revenues, 1)
	addQuarters(s.Expenses, -1)
	addQuarters(s.Investments, -1)
	return flows
}
