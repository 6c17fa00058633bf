package renderer

import "github.com/etnz/lendbook"

// Summary is the view model for the whole-book overview: one row per
// borrower with outstanding totals and the current trust score.
type Summary struct {
	AsOf             string
	Rows             []SummaryRow
	TotalOutstanding string
}

// SummaryRow holds one borrower line, display-ready.
type SummaryRow struct {
	Borrower    string
	Open        int
	Completed   int
	Overdue     int
	Outstanding string
	Score       int
}

// NewSummary builds the overview view model from the book.
func NewSummary(b *lendbook.Book, asOf lendbook.Date) *Summary {
	s := &Summary{AsOf: asOf.String()}

	var total lendbook.Money
	for owner := range b.Borrowers() {
		row := SummaryRow{Borrower: owner}
		var outstanding lendbook.Money
		for _, l := range b.BorrowerLoans(owner, asOf) {
			if l.Completed {
				row.Completed++
				continue
			}
			row.Open++
			if l.Balance(asOf).IsPositive() && asOf.After(l.Due) && !l.Due.IsZero() {
				row.Overdue++
			}
			outstanding = outstanding.Add(l.Balance(asOf))
		}
		row.Outstanding = outstanding.String()
		row.Score = b.Score(owner, asOf).Score
		total = total.Add(outstanding)
		s.Rows = append(s.Rows, row)
	}
	s.TotalOutstanding = total.String()
	return s
}
