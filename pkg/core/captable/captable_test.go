package captable

import (
	"math"
	"testing"
)

func percentageSum(t *Table) float64 {
	var sum float64
	for i := range t.Entries {
		sum += t.Entries[i].Percentage
	}
	return sum
}

func TestAddHolderRecomputesEveryPercentage(t *testing.T) {
	table := &Table{}
	if err := table.AddHolder("founders", 8000, TypeCommon); err != nil {
		t.Fatal(err)
	}
	if table.Entries[0].Percentage != 100 {
		t.Errorf("single holder owns 100%%, got %f", table.Entries[0].Percentage)
	}

	if err := table.AddHolder("seed investors", 2000, TypePreferred); err != nil {
		t.Fatal(err)
	}
	if table.Entries[0].Percentage != 80 {
		t.Errorf("founders diluted to 80%%, got %f", table.Entries[0].Percentage)
	}
	if table.Entries[1].Percentage != 20 {
		t.Errorf("new entry gets its derived share too, got %f", table.Entries[1].Percentage)
	}
}

func TestRemoveHolderRecomputes(t *testing.T) {
	table := &Table{}
	table.AddHolder("founders", 6000, TypeCommon)
	table.AddHolder("esop", 1000, TypeOptions)
	table.AddHolder("angel", 3000, TypeSAFE)

	if err := table.RemoveHolder("angel"); err != nil {
		t.Fatal(err)
	}
	if len(table.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(table.Entries))
	}
	if math.Abs(table.Entries[0].Percentage-6000.0/7000*100) > 1e-9 {
		t.Errorf("founders percentage after removal: got %f", table.Entries[0].Percentage)
	}

	if err := table.RemoveHolder("nobody"); err == nil {
		t.Error("expected error for unknown holder")
	}
}

func TestPercentageClosure(t *testing.T) {
	table := &Table{}
	table.AddHolder("a", 1234, TypeCommon)
	table.AddHolder("b", 5678, TypePreferred)
	table.AddHolder("c", 91011, TypeOptions)
	table.RemoveHolder("b")
	table.AddHolder("d", 31415, TypeSAFE)

	if sum := percentageSum(table); math.Abs(sum-100) > 1e-9 {
		t.Errorf("percentages must sum to 100, got %f", sum)
	}
}

func TestPricePerShare(t *testing.T) {
	table := &Table{}
	table.AddHolder("founders", 10000, TypeCommon)

	if got := table.PricePerShare(5000000); got != 500 {
		t.Errorf("price per share: got %f", got)
	}
	if got := (&Table{}).PricePerShare(5000000); got != 0 {
		t.Errorf("empty table has no share price, got %f", got)
	}
}

func TestApplyFutureRound(t *testing.T) {
	table := &Table{}
	table.AddHolder("founders", 8000, TypeCommon)
	table.AddHolder("seed", 2000, TypePreferred)

	err := table.ApplyFutureRound(FutureRoundAssumption{Round: "series A", DilutionPct: 20, InvestmentAmount: 3000000})
	if err != nil {
		t.Fatal(err)
	}

	// Existing holders diluted by exactly 20%.
	if math.Abs(table.Entries[0].Percentage-64) > 1e-9 {
		t.Errorf("founders: expected 64%%, got %f", table.Entries[0].Percentage)
	}
	if math.Abs(table.Entries[2].Percentage-20) > 1e-9 {
		t.Errorf("series A: expected 20%%, got %f", table.Entries[2].Percentage)
	}
	if sum := percentageSum(table); math.Abs(sum-100) > 1e-9 {
		t.Errorf("closure after round: got %f", sum)
	}

	if err := table.ApplyFutureRound(FutureRoundAssumption{Round: "bad", DilutionPct: 100}); err == nil {
		t.Error("expected dilution bounds error")
	}
}

func TestAddHolderRejectsNonPositiveShares(t *testing.T) {
	table := &Table{}
	if err := table.AddHolder("ghost", 0, TypeCommon); err == nil {
		t.Error("expected error for zero shares")
	}
}
