// Package sensitivity ranks valuation drivers (tornado analysis), weighs
// bear/base/bull scenario outcomes and adjusts sector valuation
// multiples by the Rule of 40.
package sensitivity

import (
	"math"
	"sort"
)

// ValuationFunc computes a valuation from a full set of named drivers.
// Implementations must be pure: tornado analysis calls it repeatedly
// with perturbed copies.
type ValuationFunc func(drivers map[string]float64) float64

// TornadoResult is one driver's impact on valuation under a fixed
// relative perturbation.
type TornadoResult struct {
	Driver          string  `json:"driver"`
	ValuationAtLow  float64 `json:"valuation_at_low"`
	ValuationAtHigh float64 `json:"valuation_at_high"`
	Swing           float64 `json:"swing"`
}

// defaultPerturbation perturbs each driver by ±10% of nominal.
const defaultPerturbation = 0.10

// AnalyzeTornado recomputes the valuation at -10% and +10% of each
// driver's nominal value, holding all other drivers fixed, and returns
// the results sorted by descending absolute swing.
func AnalyzeTornado(drivers map[string]float64, valuate ValuationFunc) []TornadoResult {
	results := make([]TornadoResult, 0, len(drivers))

	for name, nominal := range drivers {
		perturbed := make(map[string]float64, len(drivers))
		for k, v := range drivers {
			perturbed[k] = v
		}

		perturbed[name] = nominal * (1 - defaultPerturbation)
		low := valuate(perturbed)
		perturbed[name] = nominal * (1 + defaultPerturbation)
		high := valuate(perturbed)

		results = append(results, TornadoResult{
			Driver:          name,
			ValuationAtLow:  low,
			ValuationAtHigh: high,
			Swing:           high - low,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		si, sj := math.Abs(results[i].Swing), math.Abs(results[j].Swing)
		if si != sj {
			return si > sj
		}
		return results[i].Driver < results[j].Driver // stable order for ties
	})
	return results
}
