package lendbook

import (
	"github.com/shopspring/decimal"
)

// AccruedInterest computes the interest owed on the loan as of the given
// date.
//
// For a completed loan the evaluation instant is pinned to its last
// repayment date: interest is frozen at completion, not at call time. A
// zero asOf defaults to today.
//
// The function is total: malformed terms (zero dates, nonpositive rate or
// principal) contribute zero rather than failing, so that one corrupt
// record cannot block computation over a whole book.
func (l *Loan) AccruedInterest(asOf Date) Money {
	zero := M(0, l.Principal.Currency())

	if l.Completed {
		if last := l.lastRepaymentDate(); !last.IsZero() {
			asOf = last
		}
	}
	if asOf.IsZero() {
		asOf = Today()
	}

	if l.Rate <= 0 || !l.Principal.IsPositive() {
		return zero
	}

	if l.WaiverIfPaidByDue && !l.Due.IsZero() {
		// A waived loan accrues nothing until it becomes overdue.
		if !asOf.After(l.Due) {
			return zero
		}
		// And nothing ever, once on-time repayments cover the principal.
		if l.repaidByDue().GreaterThanOrEqual(l.Principal) {
			return zero
		}
	}

	if l.Cadence == CadenceNone {
		// One-time flat charge, invariant over time.
		return l.Principal.mul(l.Rate.fraction())
	}

	return l.decliningBalanceInterest(asOf)
}

// decliningBalanceInterest walks the repayments in ascending date order,
// accruing simple interest on the outstanding balance over each inter-event
// interval, then reducing the balance by the repayment amount.
func (l *Loan) decliningBalanceInterest(asOf Date) Money {
	rate := l.Rate.fraction()
	period := l.Cadence.periodDays()

	balance := l.Principal
	cursor := l.Start
	if cursor.IsZero() || cursor.After(asOf) {
		// A missing or future start date yields no accrual interval.
		cursor = asOf
	}

	interest := decimal.Zero
	for _, r := range l.repaymentsByDate() {
		if r.Date.After(asOf) {
			// Repayments beyond the evaluation instant do not exist yet.
			break
		}
		if r.Date.After(cursor) {
			if balance.IsPositive() {
				days := decimal.NewFromInt(int64(r.Date.Sub(cursor)))
				interest = interest.Add(balance.value.Mul(rate).Mul(days).Div(period))
			}
			cursor = r.Date
		}
		// Repayments dated at or before the cursor (malformed ordering,
		// or before the loan start) are folded in without accrual.
		balance = balance.Sub(r.Amount)
	}

	if balance.IsPositive() && asOf.After(cursor) {
		days := decimal.NewFromInt(int64(asOf.Sub(cursor)))
		interest = interest.Add(balance.value.Mul(rate).Mul(days).Div(period))
	}

	if interest.IsNegative() {
		return M(0, l.Principal.Currency())
	}
	return M(interest, l.Principal.Currency())
}
