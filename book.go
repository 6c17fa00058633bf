package lendbook

import (
	"fmt"
	"iter"
	"slices"
	"sort"
)

// Book represents the whole lending record: an ordered list of commands
// from which the loans and their state are derived.
//
// In a Book transactions are always in chronological order. Materialized
// views (Loans, BorrowerLoans) are computed on demand by replaying the
// record, so paid amounts, totals, and completion flags are always derived
// together from the same snapshot and can never drift.
type Book struct {
	transactions []Transaction
	currency     string // display currency for materialized amounts
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{transactions: make([]Transaction, 0)}
}

// SetCurrency sets the display currency used for materialized amounts.
// Amounts in the book itself are dimensionless.
func (b *Book) SetCurrency(currency string) { b.currency = currency }

// Currency returns the display currency of the book.
func (b *Book) Currency() string { return b.currency }

// Transactions returns the chronologically ordered commands of the book.
func (b *Book) Transactions() []Transaction { return b.transactions }

// stableSort sorts transactions by date, preserving the append order of
// same-day commands.
func (b *Book) stableSort() {
	sort.SliceStable(b.transactions, func(i, j int) bool {
		return b.transactions[i].When().Before(b.transactions[j].When())
	})
}

// hasLoan reports whether a lend command with the given loan ID exists.
func (b *Book) hasLoan(id string) bool {
	for _, tx := range b.transactions {
		if l, ok := tx.(Lend); ok && l.ID == id {
			return true
		}
	}
	return false
}

// Validate checks a transaction for correctness and applies quick fixes
// where applicable (e.g., minting a missing identifier). It returns the
// validated (and potentially modified) transaction or an error detailing
// any validation failures.
func (b *Book) Validate(tx Transaction) (Transaction, error) {
	var err error
	switch v := tx.(type) {
	case Lend:
		err = v.Validate(b)
		tx = v
	case Repay:
		err = v.Validate(b)
		tx = v
	case Amend:
		err = v.Validate(b)
		tx = v
	case DropRepayment:
		err = v.Validate(b)
		tx = v
	case Close:
		err = v.Validate(b)
		tx = v
	default:
		return tx, fmt.Errorf("unsupported transaction type for validation: %T", tx)
	}
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return tx, nil
}

// Append validates and records transactions into the book, keeping the
// chronological order.
func (b *Book) Append(txs ...Transaction) error {
	for _, tx := range txs {
		validated, err := b.Validate(tx)
		if err != nil {
			return err
		}
		b.transactions = append(b.transactions, validated)
	}
	b.stableSort()
	return nil
}

// Loans materializes every loan of the book as of the given date, by
// replaying the record in order. Each returned loan carries its repayments
// and a freshly derived completion state; mutating the copies does not
// touch the book.
func (b *Book) Loans(asOf Date) []*Loan {
	if asOf.IsZero() {
		asOf = Today()
	}
	index := make(map[string]*Loan)
	var loans []*Loan

	for _, tx := range b.transactions {
		switch v := tx.(type) {
		case Lend:
			l := &Loan{
				ID:                v.ID,
				OwnerID:           v.Owner,
				Memo:              v.Memo,
				Principal:         M(v.Principal, b.currency),
				Start:             v.Date,
				Due:               v.Due,
				Rate:              v.Rate,
				Cadence:           v.Cadence,
				WaiverIfPaidByDue: v.Waiver,
			}
			index[l.ID] = l
			loans = append(loans, l)
		case Repay:
			l, ok := index[v.Loan]
			if !ok {
				continue // repayment against an unknown loan, skip the term
			}
			l.Repayments = append(l.Repayments, Repayment{
				ID:     v.ID,
				Amount: M(v.Amount, b.currency),
				Date:   v.Date,
			})
		case Amend:
			l, ok := index[v.Loan]
			if !ok {
				continue
			}
			if v.Principal != nil {
				l.Principal = M(*v.Principal, b.currency)
			}
			if !v.Due.IsZero() {
				l.Due = v.Due
			}
		case DropRepayment:
			l, ok := index[v.Loan]
			if !ok {
				continue
			}
			l.Repayments = slices.DeleteFunc(l.Repayments, func(r Repayment) bool {
				return r.ID == v.Repayment
			})
		case Close:
			if l, ok := index[v.Loan]; ok {
				l.Closed = true
			}
		}
	}

	// One atomic derivation pass: paid amount, total payable, and the
	// completion flag come from the same snapshot.
	for _, l := range loans {
		l.refresh(asOf)
	}
	return loans
}

// Loan materializes a single loan by ID, or nil if unknown.
func (b *Book) Loan(id string, asOf Date) *Loan {
	for _, l := range b.Loans(asOf) {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// BorrowerLoans materializes the loans of a single borrower.
func (b *Book) BorrowerLoans(ownerID string, asOf Date) []*Loan {
	var owned []*Loan
	for _, l := range b.Loans(asOf) {
		if l.OwnerID == ownerID {
			owned = append(owned, l)
		}
	}
	return owned
}

// Borrowers iterates over the distinct borrower identifiers of the book,
// in lexical order.
func (b *Book) Borrowers() iter.Seq[string] {
	seen := make(map[string]bool)
	var owners []string
	for _, tx := range b.transactions {
		if l, ok := tx.(Lend); ok && !seen[l.Owner] {
			seen[l.Owner] = true
			owners = append(owners, l.Owner)
		}
	}
	sort.Strings(owners)
	return slices.Values(owners)
}

// Score derives the trust score of a borrower as of the given date.
func (b *Book) Score(ownerID string, asOf Date) ScoreResult {
	return ScoreBorrower(ownerID, b.Loans(asOf), asOf)
}

// Pay distributes a lump-sum payment from a borrower across that
// borrower's outstanding loans and records the resulting repayments in the
// book. It returns the allocation for reporting.
func (b *Book) Pay(ownerID string, amount Money, on Date) (Allocation, error) {
	if on.IsZero() {
		on = Today()
	}
	alloc := Allocate(ownerID, b.Loans(on), amount, on)
	for _, l := range alloc.Loans {
		share, ok := alloc.Applied[l.ID]
		if !ok || share.IsZero() {
			continue
		}
		// The allocation derived a deterministic repayment ID; reuse it.
		last := l.Repayments[len(l.Repayments)-1]
		if err := b.Append(NewRepay(on, "", l.ID, last.ID, share)); err != nil {
			return alloc, err
		}
	}
	return alloc, nil
}
