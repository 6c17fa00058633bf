package lendbook

import (
	"reflect"
	"testing"
)

func TestScoreBorrower_NoHistory(t *testing.T) {
	got := ScoreBorrower("alice", nil, day("2025-06-01"))
	if got.Score != baselineScore {
		t.Errorf("Score = %d, want %d for a new borrower", got.Score, baselineScore)
	}
	if len(got.Factors) != 1 || got.Factors[0].Impact != Neutral {
		t.Errorf("Factors = %v, want a single neutral factor", got.Factors)
	}
	if len(got.History) != 0 {
		t.Errorf("History = %v, want empty", got.History)
	}
}

func TestScoreBorrower_CompletedOnDueDate(t *testing.T) {
	// One completed loan, last repayment exactly on its due date:
	// baseline 60 + 8, and no other factor.
	loan := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-02-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(500), Date: day("2025-02-01")},
	}
	loan.Completed = true

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-06-01"))
	if got.Score != 68 {
		t.Errorf("Score = %d, want 68", got.Score)
	}
	if len(got.Factors) != 1 {
		t.Errorf("Factors = %v, want exactly one", got.Factors)
	}
	if got.Factors[0].Impact != Positive {
		t.Errorf("Factor impact = %v, want positive", got.Factors[0].Impact)
	}
}

func TestScoreBorrower_CompletedLate(t *testing.T) {
	loan := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-02-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(500), Date: day("2025-03-01")},
	}
	loan.Completed = true

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-06-01"))
	// +3 completed late, -3 one late repayment.
	if got.Score != 60 {
		t.Errorf("Score = %d, want 60", got.Score)
	}
}

func TestScoreBorrower_ManualClose(t *testing.T) {
	loan := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-02-01")
	loan.Closed = true
	loan.Completed = true

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-06-01"))
	if got.Score != baselineScore+manualCloseBonus {
		t.Errorf("Score = %d, want %d", got.Score, baselineScore+manualCloseBonus)
	}
}

func TestScoreBorrower_OverdueDecay(t *testing.T) {
	testCases := []struct {
		name string
		asOf string
		want int
	}{
		// Penalty is 15 flat plus one point per started 3 days late.
		{"overdue 3 days", "2025-02-04", 60 - 15 - 1},
		{"overdue 12 days", "2025-02-13", 60 - 15 - 4},
		{"decay capped at 20", "2026-02-01", 60 - 15 - 20 - 10}, // chronic -10 past 30 days
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loan := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-02-01")
			got := ScoreBorrower("alice", []*Loan{loan}, day(tc.asOf))
			if got.Score != tc.want {
				t.Errorf("Score = %d, want %d", got.Score, tc.want)
			}
		})
	}
}

func TestScoreBorrower_PunctualityRatio(t *testing.T) {
	// Three on-time repayments out of three: ratio 1.0 earns the bonus.
	loan := newTestLoan(1000, 0, CadenceNone, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(100), Date: day("2025-02-01")},
		{ID: "p2", Amount: NO(100), Date: day("2025-03-01")},
		{ID: "p3", Amount: NO(100), Date: day("2025-04-01")},
	}

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-05-01"))
	if got.Score != baselineScore+punctualBonus {
		t.Errorf("Score = %d, want %d", got.Score, baselineScore+punctualBonus)
	}
}

func TestScoreBorrower_LatePenaltyCapped(t *testing.T) {
	// Ten late repayments: 10x3 = 30, capped at 25. The punctuality ratio
	// is 0 which adds the poor-punctuality penalty.
	loan := newTestLoan(10000, 0, CadenceNone, "2025-01-01", "2025-02-01")
	for i := 0; i < 10; i++ {
		loan.Repayments = append(loan.Repayments, Repayment{
			ID: "p", Amount: NO(10), Date: day("2025-03-01").Add(i),
		})
	}
	loan.Completed = true // avoid the overdue penalties in this test

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-06-01"))
	// Completed loans do not count as fragmented.
	want := baselineScore + completedLateBonus - punctualPenalty - latePenaltyCap
	if got.Score != want {
		t.Errorf("Score = %d, want %d", got.Score, want)
	}
}

func TestScoreBorrower_Fragmentation(t *testing.T) {
	loan := newTestLoan(10000, 0, CadenceNone, "2025-01-01", "2026-01-01")
	for i := 0; i < 6; i++ {
		loan.Repayments = append(loan.Repayments, Repayment{
			ID: "p", Amount: NO(10), Date: day("2025-02-01").Add(i),
		})
	}

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-03-01"))
	// All repayments on time: +10 punctuality, -5 fragmentation.
	want := baselineScore + punctualBonus - fragmentPenalty
	if got.Score != want {
		t.Errorf("Score = %d, want %d", got.Score, want)
	}
}

func TestScoreBorrower_VolumeBonus(t *testing.T) {
	var loans []*Loan
	for i := 0; i < 4; i++ {
		l := newTestLoan(100, 0, CadenceNone, "2025-01-01", "2025-06-01")
		l.ID = string(rune('A' + i))
		l.Repayments = []Repayment{
			{ID: "p1", Amount: NO(100), Date: day("2025-02-01").Add(i)},
		}
		l.Completed = true
		loans = append(loans, l)
	}

	got := ScoreBorrower("alice", loans, day("2025-07-01"))
	// 4x completed on time +8, punctuality +10, volume +5, settlement +5:
	// 112, clamped to the ceiling.
	if got.Score != maxScore {
		t.Errorf("Score = %d, want %d", got.Score, maxScore)
	}
	if len(got.Factors) != maxFactors {
		t.Errorf("len(Factors) = %d, want capped at %d", len(got.Factors), maxFactors)
	}
}

func TestScoreBorrower_SettlementMalus(t *testing.T) {
	// Large borrowings barely repaid, with an overdue loan.
	overdue := newTestLoan(2000, 0, CadenceNone, "2025-01-01", "2025-02-01")
	other := newTestLoan(500, 0, CadenceNone, "2025-01-05", "2026-01-01")
	other.ID = "L2"
	other.Repayments = []Repayment{
		{ID: "p1", Amount: NO(100), Date: day("2025-01-20")},
	}

	got := ScoreBorrower("alice", []*Loan{overdue, other}, day("2025-02-10"))
	// Overdue 9 days: -15 -3; settlement ratio 100/2500 = 0.04: -10.
	want := baselineScore - overduePenalty - 3 - settlementMalus
	if got.Score != want {
		t.Errorf("Score = %d, want %d", got.Score, want)
	}
}

func TestScoreBorrower_ClampedToRange(t *testing.T) {
	// Pile up penalties far below the floor.
	var loans []*Loan
	for i := 0; i < 8; i++ {
		l := newTestLoan(2000, 0, CadenceNone, "2024-01-01", "2024-02-01")
		l.ID = string(rune('A' + i))
		loans = append(loans, l)
	}
	got := ScoreBorrower("alice", loans, day("2025-06-01"))
	if got.Score != minScore {
		t.Errorf("Score = %d, want clamped to %d", got.Score, minScore)
	}
}

func TestScoreBorrower_Idempotent(t *testing.T) {
	loan := newTestLoan(500, 2, CadenceMonthly, "2025-01-01", "2025-03-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(200), Date: day("2025-02-01")},
		{ID: "p2", Amount: NO(100), Date: day("2025-04-01")},
	}
	loans := []*Loan{loan}
	on := day("2025-05-01")

	first := ScoreBorrower("alice", loans, on)
	second := ScoreBorrower("alice", loans, on)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ScoreBorrower is not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestScoreBorrower_HistoryMostRecentFirst(t *testing.T) {
	loan := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-03-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(100), Date: day("2025-02-01")},
		{ID: "p2", Amount: NO(100), Date: day("2025-04-01")},
	}

	got := ScoreBorrower("alice", []*Loan{loan}, day("2025-05-01"))
	if len(got.History) != 3 {
		t.Fatalf("len(History) = %d, want 3", len(got.History))
	}
	for i := 1; i < len(got.History); i++ {
		if got.History[i].Date.After(got.History[i-1].Date) {
			t.Errorf("History not sorted most recent first: %v", got.History)
		}
	}
	if got.History[0].Status != StatusLate {
		t.Errorf("latest event status = %q, want %q", got.History[0].Status, StatusLate)
	}
}

func TestScoreBorrower_IgnoresOtherOwners(t *testing.T) {
	mine := newTestLoan(500, 0, CadenceNone, "2025-01-01", "2025-02-01")
	mine.Repayments = []Repayment{{ID: "p1", Amount: NO(500), Date: day("2025-02-01")}}
	mine.Completed = true
	other := newTestLoan(9000, 0, CadenceNone, "2024-01-01", "2024-02-01")
	other.ID = "L2"
	other.OwnerID = "bob"

	got := ScoreBorrower("alice", []*Loan{mine, other}, day("2025-06-01"))
	if got.Score != 68 {
		t.Errorf("Score = %d, want 68: bob's overdue loan must not count", got.Score)
	}
}
