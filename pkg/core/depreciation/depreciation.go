// Package depreciation computes straight-line asset depreciation with
// stub-period allocation, plus portfolio-level aggregation.
package depreciation

import (
	"math"
	"time"
)

// Method selects the depreciation method.
type Method string

const (
	MethodStraightLine Method = "straight_line"
	// MethodDecliningBalance is currently an explicit alias of
	// straight-line. Open question with the domain owner whether this is
	// an intentional simplification; do not silently change it.
	MethodDecliningBalance Method = "declining_balance"
)

// avgDaysPerMonth is the fixed average-month divisor used for stub
// periods. Month counting is deliberately not calendar-accurate.
const avgDaysPerMonth = 30.44

// Asset describes one depreciable fixed asset.
type Asset struct {
	Value           float64    `json:"value"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	UsefulLifeYears int        `json:"useful_life_years"`
	Method          Method     `json:"method"`
}

// Result is the depreciation state of an asset as of a date.
type Result struct {
	AnnualDepreciation      float64 `json:"annual_depreciation"`
	AccumulatedDepreciation float64 `json:"accumulated_depreciation"`
	NetBookValue            float64 `json:"net_book_value"`
	MonthsUsed              int     `json:"months_used"`
	YearsUsed               int     `json:"years_used"`
	IsFullyDepreciated      bool    `json:"is_fully_depreciated"`
}

// Calculate computes straight-line depreciation for one asset.
//
// Guards: a nil purchase date, non-positive value, non-positive useful
// life, or a purchase after asOf all return the identity zero result
// (net book value = asset value, nothing accumulated). These are part of
// the function contract, not errors.
//
//	monthsUsed       = floor(elapsedDays / 30.44)
//	annual           = value / usefulLifeYears
//	effectiveMonths  = min(monthsUsed, usefulLifeYears*12)
//	accumulated      = (annual/12) * effectiveMonths
//	netBookValue     = max(0, value - accumulated)
func Calculate(asset Asset, asOf time.Time) Result {
	identity := Result{NetBookValue: asset.Value}
	if asset.PurchaseDate == nil || asset.Value <= 0 || asset.UsefulLifeYears <= 0 {
		return identity
	}
	if asset.PurchaseDate.After(asOf) {
		return identity
	}

	elapsedDays := asOf.Sub(*asset.PurchaseDate).Hours() / 24
	monthsUsed := int(math.Floor(elapsedDays / avgDaysPerMonth))

	annual := asset.Value / float64(asset.UsefulLifeYears)
	lifeMonths := asset.UsefulLifeYears * 12

	effectiveMonths := monthsUsed
	if effectiveMonths > lifeMonths {
		effectiveMonths = lifeMonths
	}

	accumulated := (annual / 12) * float64(effectiveMonths)
	netBookValue := math.Max(0, asset.Value-accumulated)

	return Result{
		AnnualDepreciation:      annual,
		AccumulatedDepreciation: accumulated,
		NetBookValue:            netBookValue,
		MonthsUsed:              monthsUsed,
		YearsUsed:               monthsUsed / 12,
		IsFullyDepreciated:      monthsUsed >= lifeMonths,
	}
}

// CalculateTotal aggregates depreciation over an asset portfolio. Totals
// sum elementwise; MonthsUsed/YearsUsed report the maximum across assets
// (display only); the portfolio is fully depreciated only when every
// asset individually is.
func CalculateTotal(assets []Asset, asOf time.Time) Result {
	if len(assets) == 0 {
		return Result{}
	}

	total := Result{IsFullyDepreciated: true}
	for _, asset := range assets {
		r := Calculate(asset, asOf)
		total.AnnualDepreciation += r.AnnualDepreciation
		total.AccumulatedDepreciation += r.AccumulatedDepreciation
		total.NetBookValue += r.NetBookValue
		if r.MonthsUsed > total.MonthsUsed {
			total.MonthsUsed = r.MonthsUsed
		}
		if r.YearsUsed > total.YearsUsed {
			total.YearsUsed = r.YearsUsed
		}
		if !r.IsFullyDepreciated {
			total.IsFullyDepreciated = false
		}
	}
	return total
}
