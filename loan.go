package lendbook

import (
	"slices"
)

// Repayment is one dated, partial-or-full payment applied to a single loan.
// It is exclusively owned by its Loan.
type Repayment struct {
	ID     string
	Amount Money
	Date   Date
}

// Loan is one advance of principal to a borrower, with its own due date and
// interest terms. Loans sharing the same OwnerID belong to the same
// borrower; the borrower itself is not a stored entity, only a grouping.
type Loan struct {
	ID      string
	OwnerID string
	Memo    string

	Principal Money
	Start     Date
	Due       Date
	Rate      Percent
	Cadence   Cadence

	// WaiverIfPaidByDue waives all interest when the principal is fully
	// repaid on or before the due date.
	WaiverIfPaidByDue bool

	// Closed marks a loan manually settled by the lender, regardless of the
	// repayment arithmetic.
	Closed bool

	// Completed is derived: it holds whenever the paid amount covers the
	// total payable within the completion tolerance. It is re-evaluated
	// after every mutation and is reversible.
	Completed bool

	Repayments []Repayment
}

// PaidAmount returns the sum of all repayment amounts. It is always
// computed from the repayment list, never stored independently.
func (l *Loan) PaidAmount() Money {
	total := M(0, l.Principal.Currency())
	for _, r := range l.Repayments {
		total = total.Add(r.Amount)
	}
	return total
}

// lastRepaymentDate returns the date of the latest repayment, or the zero
// Date when the loan has none.
func (l *Loan) lastRepaymentDate() Date {
	var last Date
	for _, r := range l.Repayments {
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return last
}

// repaymentsByDate returns the repayments in ascending date order. Same-day
// repayments keep their list order.
func (l *Loan) repaymentsByDate() []Repayment {
	sorted := slices.Clone(l.Repayments)
	slices.SortStableFunc(sorted, func(a, b Repayment) int {
		return a.Date.Sub(b.Date)
	})
	return sorted
}

// repaidByDue returns the sum of repayments dated on or before the due date.
func (l *Loan) repaidByDue() Money {
	total := M(0, l.Principal.Currency())
	for _, r := range l.Repayments {
		if !r.Date.After(l.Due) {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// onTime reports whether a repayment on the given date counts as on-time
// for this loan. A loan without a due date never classifies as late.
func (l *Loan) onTime(on Date) bool {
	return l.Due.IsZero() || !on.After(l.Due)
}

// overdue reports whether the loan is actively overdue at the evaluation
// instant: not completed and past its due date.
func (l *Loan) overdue(asOf Date) bool {
	return !l.Completed && !l.Due.IsZero() && asOf.After(l.Due)
}

// Clone returns a deep copy of the loan, safe to mutate independently.
func (l *Loan) Clone() *Loan {
	dup := *l
	dup.Repayments = slices.Clone(l.Repayments)
	return &dup
}
