// Package statements assembles canonical balance-sheet and
// income-statement snapshots from a normalized trial balance and owns
// their lock/approve lifecycle.
package statements

import "fmt"

// Source tags where a snapshot's numbers came from.
type Source string

const (
	SourceManual     Source = "manual"
	SourceFileUpload Source = "file_upload"
)

// BalanceSheetSnapshot is a year-scoped mapping of canonical field names
// to amounts plus independently summed section totals. Once Locked, it is
// authoritative for every report consumer regardless of newer
// transactional data; consumers opt into that rule explicitly via
// ChooseBalanceSheet.
type BalanceSheetSnapshot struct {
	Year                      int                `json:"year"`
	Fields                    map[string]float64 `json:"fields"`
	TotalAssets               float64            `json:"total_assets"`
	TotalLiabilitiesAndEquity float64            `json:"total_liabilities_and_equity"`
	IsBalanced                bool               `json:"is_balanced"`
	Source                    Source             `json:"source"`
	Locked                    bool               `json:"is_locked"`
}

// IncomeStatementSnapshot carries the income waterfall for one year.
type IncomeStatementSnapshot struct {
	Year              int                `json:"year"`
	Fields            map[string]float64 `json:"fields"`
	GrossSales        float64            `json:"gross_sales"`
	SalesDeductions   float64            `json:"sales_deductions"`
	NetSales          float64            `json:"net_sales"`
	CostOfSales       float64            `json:"cost_of_sales"`
	GrossProfit       float64            `json:"gross_profit"`
	OperatingExpenses float64            `json:"operating_expenses"`
	OperatingProfit   float64            `json:"operating_profit"`
	OtherIncome       float64            `json:"other_income"`
	OtherExpenses     float64            `json:"other_expenses"`
	NetProfit         float64            `json:"net_profit"`
	Source            Source             `json:"source"`
	Locked            bool               `json:"is_locked"`
}

// ErrLocked is returned when a mutation touches a locked snapshot.
var ErrLocked = fmt.Errorf("snapshot is locked; unlock it before editing")

// Approve locks the snapshot. Locking is terminal until Unlock.
func (s *BalanceSheetSnapshot) Approve() { s.Locked = true }

// Unlock lifts the lock, making the snapshot editable again.
func (s *BalanceSheetSnapshot) Unlock() { s.Locked = false }

// SetField updates one field value; refreshing the derived totals is the
// caller's responsibility. Locked snapshots reject edits.
func (s *BalanceSheetSnapshot) SetField(name string, value float64) error {
	if s.Locked {
		return ErrLocked
	}
	if s.Fields == nil {
		s.Fields = make(map[string]float64)
	}
	s.Fields[name] = value
	return nil
}

// Approve locks the snapshot. Locking is terminal until Unlock.
func (s *IncomeStatementSnapshot) Approve() { s.Locked = true }

// Unlock lifts the lock.
func (s *IncomeStatementSnapshot) Unlock() { s.Locked = false }

// SetField updates one field value. Locked snapshots reject edits.
func (s *IncomeStatementSnapshot) SetField(name string, value float64) error {
	if s.Locked {
		return ErrLocked
	}
	if s.Fields == nil {
		s.Fields = make(map[string]float64)
	}
	s.Fields[name] = value
	return nil
}

// ChooseBalanceSheet applies the "locked data wins" precedence rule as an
// explicit parameter rather than ambient state: when preferLocked is set
// and a locked snapshot exists, it wins over the recomputed one.
func ChooseBalanceSheet(locked, recomputed *BalanceSheetSnapshot, preferLocked bool) *BalanceSheetSnapshot {
	if preferLocked && locked != nil && locked.Locked {
		return locked
	}
	return recomputed
}

// ChooseIncomeStatement is the income-statement variant of the
// precedence rule.
func ChooseIncomeStatement(locked, recomputed *IncomeStatementSnapshot, preferLocked bool) *IncomeStatementSnapshot {
	if preferLocked && locked != nil && locked.Locked {
		return locked
	}
	return recomputed
}
