package lendbook

import (
	"math"
	"testing"
)

func TestTotalPayableAndBalance(t *testing.T) {
	loan := newTestLoan(1000, 5, CadenceNone, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(300), Date: day("2025-02-01")},
	}

	on := day("2025-03-01")
	total := loan.TotalPayable(on).AsFloat()
	if math.Abs(total-1050) > 1e-9 {
		t.Errorf("TotalPayable() = %v, want 1050", total)
	}
	balance := loan.Balance(on).AsFloat()
	if math.Abs(balance-750) > 1e-9 {
		t.Errorf("Balance() = %v, want 750", balance)
	}
}

func TestBalance_FlooredAtZero(t *testing.T) {
	loan := newTestLoan(100, 0, CadenceNone, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(500), Date: day("2025-02-01")},
	}
	if got := loan.Balance(day("2025-03-01")); !got.IsZero() {
		t.Errorf("Balance() = %v, want 0 on overpaid loan", got)
	}
}

func TestRefresh_CompletionTolerance(t *testing.T) {
	testCases := []struct {
		name          string
		paid          float64
		wantCompleted bool
	}{
		{"fully paid", 100, true},
		{"within tolerance", 99.6, true},
		{"at tolerance", 99.5, true},
		{"below tolerance", 99.4, false},
		{"nothing paid", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loan := newTestLoan(100, 0, CadenceNone, "2025-01-01", "2025-06-01")
			if tc.paid > 0 {
				loan.Repayments = []Repayment{
					{ID: "p1", Amount: NO(tc.paid), Date: day("2025-02-01")},
				}
			}
			loan.refresh(day("2025-03-01"))
			if loan.Completed != tc.wantCompleted {
				t.Errorf("Completed = %v, want %v with %v paid", loan.Completed, tc.wantCompleted, tc.paid)
			}
		})
	}
}

func TestRefresh_ClosedOverridesArithmetic(t *testing.T) {
	loan := newTestLoan(100, 0, CadenceNone, "2025-01-01", "2025-06-01")
	loan.Closed = true
	loan.refresh(day("2025-03-01"))
	if !loan.Completed {
		t.Error("Completed = false, want true on a manually closed loan")
	}
}

func TestPaidAmount_IsSumOfRepayments(t *testing.T) {
	loan := newTestLoan(100, 0, CadenceNone, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(10), Date: day("2025-01-05")},
		{ID: "p2", Amount: NO(20), Date: day("2025-01-06")},
		{ID: "p3", Amount: NO(30.5), Date: day("2025-01-07")},
	}
	got := loan.PaidAmount().AsFloat()
	if math.Abs(got-60.5) > 1e-9 {
		t.Errorf("PaidAmount() = %v, want 60.5", got)
	}
}
