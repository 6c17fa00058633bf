package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/lendbook"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx lendbook.Transaction) string {
	switch v := tx.(type) {
	case lendbook.Lend:
		return fmt.Sprintf("Lent %s to %s (loan %s)", v.Principal, v.Owner, v.ID)
	case lendbook.Repay:
		return fmt.Sprintf("Repaid %s on loan %s", v.Amount, v.Loan)
	case lendbook.Amend:
		if v.Principal != nil {
			return fmt.Sprintf("Amended loan %s principal to %s", v.Loan, v.Principal)
		}
		return fmt.Sprintf("Amended loan %s due date to %s", v.Loan, v.Due)
	case lendbook.DropRepayment:
		return fmt.Sprintf("Dropped repayment %s from loan %s", v.Repayment, v.Loan)
	case lendbook.Close:
		return fmt.Sprintf("Closed loan %s", v.Loan)
	default:
		return string(tx.What())
	}
}

// Transactions renders the transaction list as a markdown table.
func Transactions(txs []lendbook.Transaction) string {
	var b strings.Builder
	b.WriteString("| Date | Detail |\n")
	b.WriteString("|------|--------|\n")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s |\n", tx.When(), Transaction(tx))
	}
	return b.String()
}
