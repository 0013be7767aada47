package scenario

import "math"

// YearProjection is one year of the multi-year forward projection.
type YearProjection struct {
	Year             int     `json:"year"`
	Revenue          float64 `json:"revenue"`
	Expenses         float64 `json:"expenses"`
	Profit           float64 `json:"profit"`
	CumulativeProfit float64 `json:"cumulative_profit"`
	CompanyValuation float64 `json:"company_valuation"`
}

// growthDecay dampens the nominal growth rate for later years. The 0.4
// floor is an explicit business rule (growth never decays below 40% of
// nominal), not an artifact of compounding.
func growthDecay(yearIndex int) float64 {
	return math.Max(0.4, 1-float64(yearIndex)*0.1)
}

// ProjectYears builds a multi-year projection from the first projected
// year. Each subsequent year applies the decayed growth rate to revenue
// and half of it to expenses:
//
//	revenue_i  = revenue_{i-1}  * (1 + growthRate*decay(i))
//	expenses_i = expenses_{i-1} * (1 + growthRate*0.5*decay(i))
//	valuation_i = revenue_i * sectorMultiple
func ProjectYears(baseYear int, year1Revenue, year1Expenses, growthRate, sectorMultiple float64, years int) []YearProjection {
	if years <= 0 {
		return nil
	}

	projections := make([]YearProjection, 0, years)
	revenue := year1Revenue
	expenses := year1Expenses
	var cumulative float64

	for i := 0; i < years; i++ {
		if i > 0 {
			decay := growthDecay(i)
			revenue *= 1 + growthRate*decay
			expenses *= 1 + growthRate*0.5*decay
		}
		profit := revenue - expenses
		cumulative += profit
		projections = append(projections, YearProjection{
			Year:             baseYear + i,
			Revenue:          revenue,
			Expenses:         expenses,
			Profit:           profit,
			CumulativeProfit: cumulative,
			CompanyValuation: revenue * sectorMultiple,
		})
	}
	return projections
}

// CapitalRequirement is the "death valley" analysis over one projected
// year of quarterly net cash flows.
type CapitalRequirement struct {
	MinCumulativeCash  float64 `json:"min_cumulative_cash"`
	WorstQuarter       int     `json:"worst_quarter"` // 1-4, 0 when never negative
	RequiredInvestment float64 `json:"required_investment"`
	MonthlyBurn        float64 `json:"monthly_burn"`
	RunwayMonths       int     `json:"runway_months"` // -1 when self-sustaining
	IsSelfSustaining   bool    `json:"is_self_sustaining"`
}

// safetyMargin pads the deepest cash trough by 20%.
const safetyMargin = 1.2

// AnalyzeCapitalRequirement walks the quarterly flows accumulating a
// running total, tracks the deepest trough and sizes the required
// investment from it with a 20% safety margin. Monthly burn exists only
// when the full year is net-negative.
func AnalyzeCapitalRequirement(flows [4]float64) CapitalRequirement {
	result := CapitalRequirement{RunwayMonths: -1, IsSelfSustaining: true}

	var running, annual float64
	for q, flow := range flows {
		running += flow
		annual += flow
		if running < result.MinCumulativeCash {
			result.MinCumulativeCash = running
			result.WorstQuarter = q + 1
		}
	}

	if result.MinCumulativeCash < 0 {
		result.RequiredInvestment = math.Abs(result.MinCumulativeCash) * safetyMargin
	}
	if annual < 0 {
		result.MonthlyBurn = math.Abs(annual) / 12
	}
	if result.MonthlyBurn > 0 {
		result.RunwayMonths = int(math.Ceil(math.Abs(result.MinCumulativeCash) / result.MonthlyBurn))
		result.IsSelfSustaining = false
	}
	return result
}

// ExitMetrics carries investor-side return figures for one exit year.
type ExitMetrics struct {
	PostMoneyValuation float64 `json:"post_money_valuation"`
	InvestorShare      float64 `json:"investor_share"`
	MOIC               float64 `json:"moic"`
}

// PostMoneyValuation derives the implied post-money from the round
// terms: investment / equity fraction.
func PostMoneyValuation(investmentAmount, equityPercentage float64) float64 {
	if equityPercentage <= 0 {
		return 0
	}
	return investmentAmount / (equityPercentage / 100)
}

// ExitMetricsForYear computes the investor's share of the projected
// company valuation in one year and the resulting multiple on invested
// capital.
func ExitMetricsForYear(projection YearProjection, investmentAmount, equityPercentage float64) ExitMetrics {
	share := projection.CompanyValuation * equityPercentage / 100
	m := ExitMetrics{
		PostMoneyValuation: PostMoneyValuation(investmentAmount, equityPercentage),
		InvestorShare:      share,
	}
	if investmentAmount > 0 {
		m.MOIC = share / investmentAmount
	}
	return m
}

// BreakEvenYear returns the first projected year with non-negative
// cumulative profit, or nil when the horizon never breaks even.
func BreakEvenYear(projections []YearProjection) *int {
	for _, p := range projections {
		if p.CumulativeProfit >= 0 {
			year := p.Year
			return &year
		}
	}
	return nil
}
