package lendbook

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// allocationDust is the smallest remaining balance worth allocating to.
// Anything at or below it is treated as already settled.
var allocationDust = decimal.NewFromFloat(0.01)

// Allocation is the result of distributing one lump-sum payment across a
// borrower's loans: the share applied per loan ID, and the loan set with
// the touched loans updated. Untouched loans are returned unchanged.
type Allocation struct {
	Applied map[string]Money
	Loans   []*Loan
}

// Allocate distributes a single payment of the given amount made by the
// borrower on the given date across that borrower's outstanding loans.
//
// The oldest debt is served first: not-yet-completed loans in ascending
// start date order, each receiving at most its remaining balance. Should
// funds remain once every candidate is satisfied, the entire leftover is
// credited to the single candidate with the most recent start date, so the
// borrower's oldest debts can never end up over-settled.
//
// For every loan receiving a nonzero share, one new repayment dated on is
// appended and the loan's completion state re-derived. The repayment IDs
// are derived from the loan ID and position, so the whole operation is
// deterministic for identical inputs: the applied shares always sum to
// exactly the paid amount.
func Allocate(ownerID string, loans []*Loan, amount Money, on Date) Allocation {
	if on.IsZero() {
		on = Today()
	}

	var candidates []*Loan
	for _, l := range loans {
		if l.OwnerID == ownerID && !l.Completed {
			candidates = append(candidates, l)
		}
	}
	// Oldest debt first. Ties break on ID to keep the order deterministic.
	slices.SortStableFunc(candidates, func(a, b *Loan) int {
		if d := a.Start.Sub(b.Start); d != 0 {
			return d
		}
		return strings.Compare(a.ID, b.ID)
	})

	applied := make(map[string]Money)
	pool := amount

	for _, l := range candidates {
		if !pool.IsPositive() {
			break
		}
		remaining := l.Balance(on)
		if remaining.value.LessThanOrEqual(allocationDust) {
			continue
		}
		share := pool.Min(remaining)
		applied[l.ID] = share
		pool = pool.Sub(share)
	}

	if pool.IsPositive() {
		if last := mostRecent(candidates, loans, ownerID); last != nil {
			applied[last.ID] = applied[last.ID].Add(pool)
		}
	}

	updated := make([]*Loan, len(loans))
	for i, l := range loans {
		share, ok := applied[l.ID]
		if !ok || share.IsZero() {
			updated[i] = l
			continue
		}
		dup := l.Clone()
		dup.Repayments = append(dup.Repayments, Repayment{
			ID:     nextRepaymentID(dup),
			Amount: share,
			Date:   on,
		})
		dup.refresh(on)
		updated[i] = dup
	}

	return Allocation{Applied: applied, Loans: updated}
}

// nextRepaymentID derives the identifier for a repayment minted by the
// waterfall: the first free "<loanID>-<n>" slot. Scanning instead of
// counting keeps the scheme collision-free after repayment deletions, and
// deterministic for identical inputs.
func nextRepaymentID(l *Loan) string {
	used := make(map[string]bool, len(l.Repayments))
	for _, r := range l.Repayments {
		used[r.ID] = true
	}
	for n := len(l.Repayments) + 1; ; n++ {
		id := fmt.Sprintf("%s-%d", l.ID, n)
		if !used[id] {
			return id
		}
	}
}

// mostRecent picks the overflow target: the most recently started
// candidate, falling back to the borrower's most recently started loan when
// every loan is already completed, so the paid amount is never dropped.
func mostRecent(candidates, loans []*Loan, ownerID string) *Loan {
	pool := candidates
	if len(pool) == 0 {
		for _, l := range loans {
			if l.OwnerID == ownerID {
				pool = append(pool, l)
			}
		}
	}
	var last *Loan
	for _, l := range pool {
		if last == nil || l.Start.After(last.Start) {
			last = l
		}
	}
	return last
}
