package renderer

import "github.com/etnz/lendbook"

// Statement is the view model for one borrower's detailed statement: every
// loan with its accrual, repayments, and remaining balance.
type Statement struct {
	Borrower         string
	AsOf             string
	Loans            []LoanStatement
	TotalOutstanding string
}

// LoanStatement holds one loan section, display-ready.
type LoanStatement struct {
	Ref          string
	Memo         string
	Start        string
	Due          string
	Rate         string
	Cadence      string
	State        string
	Principal    string
	Interest     string
	TotalPayable string
	Paid         string
	Balance      string
	Repayments   []RepaymentLine
}

// RepaymentLine holds one repayment row, display-ready.
type RepaymentLine struct {
	ID     string
	Date   string
	Amount string
}

// NewStatement builds the statement view model for a single borrower.
func NewStatement(ownerID string, loans []*lendbook.Loan, asOf lendbook.Date) *Statement {
	s := &Statement{Borrower: ownerID, AsOf: asOf.String()}

	var total lendbook.Money
	for _, l := range loans {
		ls := LoanStatement{
			Ref:          l.ID,
			Memo:         l.Memo,
			Start:        l.Start.String(),
			Rate:         l.Rate.String(),
			Cadence:      l.Cadence.String(),
			State:        loanState(l, asOf),
			Principal:    l.Principal.String(),
			Interest:     l.AccruedInterest(asOf).String(),
			TotalPayable: l.TotalPayable(asOf).String(),
			Paid:         l.PaidAmount().String(),
			Balance:      l.Balance(asOf).String(),
		}
		if !l.Due.IsZero() {
			ls.Due = l.Due.String()
		}
		for _, r := range l.Repayments {
			ls.Repayments = append(ls.Repayments, RepaymentLine{
				ID:     r.ID,
				Date:   r.Date.String(),
				Amount: r.Amount.String(),
			})
		}
		if !l.Completed {
			total = total.Add(l.Balance(asOf))
		}
		s.Loans = append(s.Loans, ls)
	}
	s.TotalOutstanding = total.String()
	return s
}

// loanState names the display state of a loan.
func loanState(l *lendbook.Loan, asOf lendbook.Date) string {
	switch {
	case l.Completed:
		return "completed"
	case !l.Due.IsZero() && asOf.After(l.Due):
		return "overdue"
	default:
		return "active"
	}
}
