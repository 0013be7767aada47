// Package captable tracks equity ownership across funding rounds.
// Percentages are always derived from share counts; they are recomputed
// after every mutation and never accepted as authoritative input.
package captable

import "fmt"

// HolderType classifies a cap-table entry.
type HolderType string

const (
	TypeCommon    HolderType = "common"
	TypePreferred HolderType = "preferred"
	TypeOptions   HolderType = "options"
	TypeSAFE      HolderType = "safe"
)

// Entry is one holder's position. Percentage is a pure function of
// shares over total shares.
type Entry struct {
	Holder     string     `json:"holder"`
	Shares     float64    `json:"shares"`
	Percentage float64    `json:"percentage"`
	Type       HolderType `json:"type"`
}

// FutureRoundAssumption models a planned round as flat dilution of all
// existing holders.
type FutureRoundAssumption struct {
	Round            string  `json:"round"`
	DilutionPct      float64 `json:"dilution_pct"`
	InvestmentAmount float64 `json:"investment_amount,omitempty"`
}

// Table is the cap table.
type Table struct {
	Entries []Entry `json:"entries"`
}

// TotalShares sums all share counts.
func (t *Table) TotalShares() float64 {
	var total float64
	for i := range t.Entries {
		total += t.Entries[i].Shares
	}
	return total
}

// recomputePercentages rederives every entry's percentage from the
// current share totals. Runs after every mutation.
func (t *Table) recomputePercentages() {
	total := t.TotalShares()
	for i := range t.Entries {
		if total > 0 {
			t.Entries[i].Percentage = t.Entries[i].Shares / total * 100
		} else {
			t.Entries[i].Percentage = 0
		}
	}
}

// AddHolder appends a holder and recomputes every entry's percentage
// against the new total, including the new entry's own.
func (t *Table) AddHolder(holder string, shares float64, holderType HolderType) error {
	if shares <= 0 {
		return fmt.Errorf("holder %q: shares must be positive, got %f", holder, shares)
	}
	t.Entries = append(t.Entries, Entry{Holder: holder, Shares: shares, Type: holderType})
	t.recomputePercentages()
	return nil
}

// RemoveHolder drops a holder and recomputes the remaining percentages.
func (t *Table) RemoveHolder(holder string) error {
	for i := range t.Entries {
		if t.Entries[i].Holder == holder {
			t.Entries = append(t.Entries[:i], t.Entries[i+1:]...)
			t.recomputePercentages()
			return nil
		}
	}
	return fmt.Errorf("holder %q not found", holder)
}

// PricePerShare derives the share price from a pre-money valuation.
func (t *Table) PricePerShare(preMoneyValuation float64) float64 {
	total := t.TotalShares()
	if total <= 0 {
		return 0
	}
	return preMoneyValuation / total
}

// ApplyFutureRound issues new shares to the incoming round so existing
// holders are diluted by exactly the assumed percentage, then recomputes
// all percentages.
func (t *Table) ApplyFutureRound(assumption FutureRoundAssumption) error {
	if assumption.DilutionPct <= 0 || assumption.DilutionPct >= 100 {
		return fmt.Errorf("round %q: dilution must be in (0, 100), got %f", assumption.Round, assumption.DilutionPct)
	}
	existing := t.TotalShares()
	if existing <= 0 {
		return fmt.Errorf("round %q: cannot dilute an empty cap table", assumption.Round)
	}

	// newShares / (existing + newShares) == dilutionPct/100
	fraction := assumption.DilutionPct / 100
	newShares := existing * fraction / (1 - fraction)

	t.Entries = append(t.Entries, Entry{
		Holder: assumption.Round,
		Shares: newShares,
		Type:   TypePreferred,
	})
	t.recomputePercentages()
	return nil
}
