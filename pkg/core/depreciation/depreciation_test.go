package depreciation

import (
	"math"
	"testing"
	"time"
)

func date(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestGuardsReturnIdentity(t *testing.T) {
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		asset Asset
	}{
		{"nil purchase date", Asset{Value: 1000, UsefulLifeYears: 5}},
		{"zero value", Asset{Value: 0, PurchaseDate: date(2022, 1, 1), UsefulLifeYears: 5}},
		{"negative value", Asset{Value: -50, PurchaseDate: date(2022, 1, 1), UsefulLifeYears: 5}},
		{"zero life", Asset{Value: 1000, PurchaseDate: date(2022, 1, 1), UsefulLifeYears: 0}},
		{"future purchase", Asset{Value: 1000, PurchaseDate: date(2030, 1, 1), UsefulLifeYears: 5}},
	}

	for _, c := range cases {
		r := Calculate(c.asset, asOf)
		if r.AnnualDepreciation != 0 || r.AccumulatedDepreciation != 0 {
			t.Errorf("%s: expected zero depreciation, got %+v", c.name, r)
		}
		if r.NetBookValue != c.asset.Value {
			t.Errorf("%s: net book value must equal asset value, got %f", c.name, r.NetBookValue)
		}
		if r.MonthsUsed != 0 || r.IsFullyDepreciated {
			t.Errorf("%s: expected untouched asset, got %+v", c.name, r)
		}
	}
}

func TestStraightLineStubPeriod(t *testing.T) {
	// 3,459,470 over 5 years = 691,894/year. Two elapsed years lands at
	// 23-24 average months and 1.3-1.4M accumulated.
	asset := Asset{Value: 3459470, PurchaseDate: date(2022, 1, 1), UsefulLifeYears: 5}
	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r := Calculate(asset, asOf)

	if math.Abs(r.AnnualDepreciation-691894) > 0.01 {
		t.Errorf("annual: expected 691894, got %f", r.AnnualDepreciation)
	}
	if r.MonthsUsed < 23 || r.MonthsUsed > 24 {
		t.Errorf("months used: expected 23..24, got %d", r.MonthsUsed)
	}
	if r.AccumulatedDepreciation <= 1300000 || r.AccumulatedDepreciation >= 1400000 {
		t.Errorf("accumulated: expected in (1.3M, 1.4M), got %f", r.AccumulatedDepreciation)
	}
	if r.IsFullyDepreciated {
		t.Error("5-year asset is not fully depreciated after 2 years")
	}
	if math.Abs(r.NetBookValue-(asset.Value-r.AccumulatedDepreciation)) > 0.01 {
		t.Errorf("net book value inconsistent: %f", r.NetBookValue)
	}
}

func TestDepreciationMonotonicityAndCap(t *testing.T) {
	asset := Asset{Value: 120000, PurchaseDate: date(2020, 6, 15), UsefulLifeYears: 4}

	var prev float64
	for year := 2020; year <= 2030; year++ {
		asOf := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
		r := Calculate(asset, asOf)
		if r.AccumulatedDepreciation < prev {
			t.Errorf("accumulated depreciation decreased at %d: %f < %f", year, r.AccumulatedDepreciation, prev)
		}
		if r.AccumulatedDepreciation > asset.Value+0.01 {
			t.Errorf("accumulated depreciation exceeded asset value at %d: %f", year, r.AccumulatedDepreciation)
		}
		prev = r.AccumulatedDepreciation
	}

	// Well past useful life: fully depreciated, book value zero.
	r := Calculate(asset, time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC))
	if !r.IsFullyDepreciated {
		t.Error("expected fully depreciated")
	}
	if r.NetBookValue != 0 {
		t.Errorf("expected zero book value, got %f", r.NetBookValue)
	}
}

func TestDecliningBalanceIsStraightLineAlias(t *testing.T) {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	sl := Calculate(Asset{Value: 50000, PurchaseDate: date(2022, 3, 1), UsefulLifeYears: 5, Method: MethodStraightLine}, asOf)
	db := Calculate(Asset{Value: 50000, PurchaseDate: date(2022, 3, 1), UsefulLifeYears: 5, Method: MethodDecliningBalance}, asOf)

	if sl != db {
		t.Errorf("declining balance must currently match straight-line: %+v vs %+v", sl, db)
	}
}

func TestCalculateTotalPortfolio(t *testing.T) {
	asOf := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assets := []Asset{
		{Value: 24000, PurchaseDate: date(2020, 1, 1), UsefulLifeYears: 2}, // fully depreciated
		{Value: 60000, PurchaseDate: date(2024, 1, 1), UsefulLifeYears: 5}, // one year in
	}

	total := CalculateTotal(assets, asOf)

	if total.IsFullyDepreciated {
		t.Error("portfolio with one active asset is not fully depreciated")
	}
	// 24000/2 + 60000/5
	if math.Abs(total.AnnualDepreciation-24000) > 0.01 {
		t.Errorf("annual total: got %f", total.AnnualDepreciation)
	}
	// Max months across assets, not a sum: the 2020 asset has ~60 months.
	if total.MonthsUsed < 59 || total.MonthsUsed > 61 {
		t.Errorf("months used should be portfolio max, got %d", total.MonthsUsed)
	}

	// Both fully depreciated.
	later := CalculateTotal(assets, time.Date(2035, 1, 1, 0, 0, 0, 0, time.UTC))
	if !later.IsFullyDepreciated {
		t.Error("expected fully depreciated portfolio")
	}

	if got := CalculateTotal(nil, asOf); got.IsFullyDepreciated {
		t.Error("empty portfolio must not report fully depreciated")
	}
}
