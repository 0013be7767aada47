package sensitivity

// Outcome is one scenario leg of the bear/base/bull matrix.
type Outcome struct {
	Revenue      float64 `json:"revenue"`
	Valuation    float64 `json:"valuation"`
	MOIC         float64 `json:"moic"`
	RunwayMonths int     `json:"runway_months"`
	Probability  float64 `json:"probability"`
}

// Matrix is the probability-weighted scenario matrix.
type Matrix struct {
	Bear Outcome `json:"bear"`
	Base Outcome `json:"base"`
	Bull Outcome `json:"bull"`
}

// Default scenario probabilities, summing to 1.
const (
	DefaultBearProbability = 0.25
	DefaultBaseProbability = 0.50
	DefaultBullProbability = 0.25
)

// ApplyDefaultProbabilities fills in the 0.25/0.50/0.25 split when the
// caller supplied no probabilities at all.
func (m *Matrix) ApplyDefaultProbabilities() {
	if m.Bear.Probability == 0 && m.Base.Probability == 0 && m.Bull.Probability == 0 {
		m.Bear.Probability = DefaultBearProbability
		m.Base.Probability = DefaultBaseProbability
		m.Bull.Probability = DefaultBullProbability
	}
}

// ExpectedValuation is the probability-weighted valuation across legs.
func (m *Matrix) ExpectedValuation() float64 {
	return m.Bear.Valuation*m.Bear.Probability +
		m.Base.Valuation*m.Base.Probability +
		m.Bull.Valuation*m.Bull.Probability
}

// Upside is the valuation gap from base to bull.
func (m *Matrix) Upside() float64 { return m.Bull.Valuation - m.Base.Valuation }

// Downside is the valuation gap from bear to base.
func (m *Matrix) Downside() float64 { return m.Base.Valuation - m.Bear.Valuation }

// ProbabilitySum is the total probability mass; callers warn when it
// strays from 1.
func (m *Matrix) ProbabilitySum() float64 {
	return m.Bear.Probability + m.Base.Probability + m.Bull.Probability
}
