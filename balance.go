package lendbook

import "github.com/shopspring/decimal"

// completionTolerance absorbs rounding drift when deciding whether a loan
// is fully repaid: a loan is complete once the paid amount is within this
// many currency units of the total payable.
var completionTolerance = decimal.NewFromFloat(0.5)

// TotalPayable returns the amount the borrower owes in total on this loan:
// principal plus interest accrued as of the given date.
func (l *Loan) TotalPayable(asOf Date) Money {
	return l.Principal.Add(l.AccruedInterest(asOf))
}

// Balance returns the amount still owed on the loan as of the given date,
// floored at zero so an overpaid loan never reads as a negative debt.
func (l *Loan) Balance(asOf Date) Money {
	b := l.TotalPayable(asOf).Sub(l.PaidAmount())
	if b.IsNegative() {
		return M(0, b.Currency())
	}
	return b
}

// refresh re-derives the Completed flag from the repayment arithmetic. It
// must run after every mutation of the principal, the due date, or the
// repayment list, so that PaidAmount, TotalPayable, and Completed are only
// ever observed together, as one consistent unit.
//
// The completion predicate is evaluated at the last repayment date (or
// asOf when the loan has none), which is also the instant interest freezes
// at once the loan completes. Completion is reversible: dropping a
// repayment can revert it.
func (l *Loan) refresh(asOf Date) {
	if l.Closed {
		l.Completed = true
		return
	}
	on := l.lastRepaymentDate()
	if on.IsZero() {
		on = asOf
	}
	// Clear the flag first so AccruedInterest does not freeze on the
	// previous completion state while re-evaluating.
	l.Completed = false
	threshold := l.TotalPayable(on).Sub(M(completionTolerance, l.Principal.Currency()))
	l.Completed = l.PaidAmount().GreaterThanOrEqual(threshold)
}
