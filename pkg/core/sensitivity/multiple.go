package sensitivity

import "fmt"

// MultipleAdjustment is the Rule-of-40 adjusted valuation multiple with
// a human-readable justification.
type MultipleAdjustment struct {
	BaseMultiple     float64 `json:"base_multiple"`
	AdjustedMultiple float64 `json:"adjusted_multiple"`
	Score            float64 `json:"score"`
	Reason           string  `json:"reason"`
}

// AdjustMultiple applies a Rule-of-40 correction to a sector base
// multiple. The composite score is growth plus profit margin, both in
// percentage points; the adjustment is a monotonic step function of the
// score (higher score, higher premium).
//
//	score >= 80  ->  +50% premium
//	score >= 60  ->  +30%
//	score >= 40  ->  +15%  (the classic "Rule of 40" pass mark)
//	score >= 20  ->  no adjustment
//	score >=  0  ->  -15% discount
//	score <   0  ->  -30% discount
func AdjustMultiple(baseMultiple, growthRate, profitMargin float64) MultipleAdjustment {
	score := growthRate*100 + profitMargin*100

	var factor float64
	var label string
	switch {
	case score >= 80:
		factor, label = 1.5, "exceptional growth-profitability balance"
	case score >= 60:
		factor, label = 1.3, "well above the Rule of 40 threshold"
	case score >= 40:
		factor, label = 1.15, "meets the Rule of 40 threshold"
	case score >= 20:
		factor, label = 1.0, "below the Rule of 40 threshold, no premium"
	case score >= 0:
		factor, label = 0.85, "weak growth-profitability balance"
	default:
		factor, label = 0.7, "negative combined growth and margin"
	}

	return MultipleAdjustment{
		BaseMultiple:     baseMultiple,
		AdjustedMultiple: baseMultiple * factor,
		Score:            score,
		Reason:           fmt.Sprintf("Rule of 40 score %.1f: %s", score, label),
	}
}
