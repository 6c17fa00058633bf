package lendbook

import (
	"math"
	"testing"
)

// newTestLoan creates a plain declining-balance loan for accrual tests.
func newTestLoan(principal float64, rate Percent, cadence Cadence, start, due string) *Loan {
	return &Loan{
		ID:        "L1",
		OwnerID:   "alice",
		Principal: NO(principal),
		Start:     day(start),
		Due:       day(due),
		Rate:      rate,
		Cadence:   cadence,
	}
}

func TestAccruedInterest_ZeroRate(t *testing.T) {
	for _, cadence := range []Cadence{CadenceNone, CadenceDaily, CadenceMonthly, CadenceYearly} {
		t.Run(cadence.String(), func(t *testing.T) {
			loan := newTestLoan(1000, 0, cadence, "2025-01-01", "2025-06-01")
			got := loan.AccruedInterest(day("2026-01-01"))
			if !got.IsZero() {
				t.Errorf("AccruedInterest() = %v, want 0 for zero rate", got)
			}
		})
	}
}

func TestAccruedInterest_ZeroPrincipal(t *testing.T) {
	loan := newTestLoan(0, 5, CadenceMonthly, "2025-01-01", "2025-06-01")
	if got := loan.AccruedInterest(day("2026-01-01")); !got.IsZero() {
		t.Errorf("AccruedInterest() = %v, want 0 for zero principal", got)
	}
}

func TestAccruedInterest_FlatIsTimeInvariant(t *testing.T) {
	loan := newTestLoan(1000, 5, CadenceNone, "2025-01-01", "2025-06-01")

	want := 50.0 // 1000 x 5% one-time charge
	for _, on := range []string{"2025-01-02", "2025-06-01", "2030-01-01"} {
		got := loan.AccruedInterest(day(on)).AsFloat()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("AccruedInterest(%s) = %v, want %v", on, got, want)
		}
	}
}

func TestAccruedInterest_MonthlyScenario(t *testing.T) {
	// principal=1000, rate=5, cadence=monthly, start=Jan 1, evaluated
	// Mar 1: 59 days of accrual, 1000 x 0.05 x (59 / 30.4375).
	loan := newTestLoan(1000, 5, CadenceMonthly, "2025-01-01", "2025-06-01")

	got := loan.AccruedInterest(day("2025-03-01")).AsFloat()
	want := 1000 * 0.05 * (59 / 30.4375)
	if math.Abs(got-want) > 0.01 {
		t.Errorf("AccruedInterest() = %v, want %v", got, want)
	}
}

func TestAccruedInterest_DecliningBalance(t *testing.T) {
	// Daily cadence at 1%: 10 days on 1000, then a 400 repayment, then
	// 10 days on the remaining 600.
	loan := newTestLoan(1000, 1, CadenceDaily, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(400), Date: day("2025-01-11")},
	}

	got := loan.AccruedInterest(day("2025-01-21")).AsFloat()
	want := 1000*0.01*10 + 600*0.01*10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AccruedInterest() = %v, want %v", got, want)
	}
}

func TestAccruedInterest_MonotonicInAsOf(t *testing.T) {
	loan := newTestLoan(1000, 2, CadenceDaily, "2025-01-01", "2025-02-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(300), Date: day("2025-01-10")},
		{ID: "p2", Amount: NO(300), Date: day("2025-02-15")},
	}

	prev := 0.0
	for on := day("2025-01-02"); on.Before(day("2025-04-01")); on = on.Add(7) {
		got := loan.AccruedInterest(on).AsFloat()
		if got < prev {
			t.Fatalf("AccruedInterest(%s) = %v, decreased from %v", on, got, prev)
		}
		prev = got
	}
}

func TestAccruedInterest_Waiver(t *testing.T) {
	testCases := []struct {
		name       string
		repayments []Repayment
		asOf       string
		wantZero   bool
	}{
		{
			name:     "not yet overdue accrues nothing",
			asOf:     "2025-05-31",
			wantZero: true,
		},
		{
			name: "fully repaid before due stays waived long after",
			repayments: []Repayment{
				{ID: "p1", Amount: NO(1000), Date: day("2025-04-01")},
			},
			asOf:     "2030-01-01",
			wantZero: true,
		},
		{
			name: "partially repaid by due accrues once overdue",
			repayments: []Repayment{
				{ID: "p1", Amount: NO(500), Date: day("2025-04-01")},
			},
			asOf:     "2025-07-01",
			wantZero: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loan := newTestLoan(1000, 5, CadenceMonthly, "2025-01-01", "2025-06-01")
			loan.WaiverIfPaidByDue = true
			loan.Repayments = tc.repayments

			got := loan.AccruedInterest(day(tc.asOf))
			if gotZero := got.IsZero(); gotZero != tc.wantZero {
				t.Errorf("AccruedInterest() = %v, wantZero=%v", got, tc.wantZero)
			}
		})
	}
}

func TestAccruedInterest_FrozenAtCompletion(t *testing.T) {
	loan := newTestLoan(1000, 1, CadenceDaily, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(1100), Date: day("2025-01-11")},
	}
	loan.Completed = true

	// 10 days of accrual on 1000, whatever the evaluation instant.
	want := 1000 * 0.01 * 10
	for _, on := range []string{"2025-02-01", "2030-01-01"} {
		got := loan.AccruedInterest(day(on)).AsFloat()
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("AccruedInterest(%s) = %v, want %v (frozen)", on, got, want)
		}
	}
}

func TestAccruedInterest_IgnoresFutureAndPrestartRepayments(t *testing.T) {
	loan := newTestLoan(1000, 1, CadenceDaily, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		// Dated before the loan start: folded in without accrual.
		{ID: "p0", Amount: NO(200), Date: day("2024-12-25")},
		// Dated after asOf: ignored entirely.
		{ID: "p9", Amount: NO(500), Date: day("2025-03-01")},
	}

	// 10 days on the folded-in balance of 800.
	got := loan.AccruedInterest(day("2025-01-11")).AsFloat()
	want := 800 * 0.01 * 10
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AccruedInterest() = %v, want %v", got, want)
	}
}

func TestAccruedInterest_FlooredAtZero(t *testing.T) {
	// Overpaid immediately: the balance goes negative, interest must not.
	loan := newTestLoan(100, 10, CadenceDaily, "2025-01-01", "2025-06-01")
	loan.Repayments = []Repayment{
		{ID: "p1", Amount: NO(500), Date: day("2025-01-01")},
	}
	got := loan.AccruedInterest(day("2025-02-01"))
	if got.IsNegative() {
		t.Errorf("AccruedInterest() = %v, want >= 0", got)
	}
}
