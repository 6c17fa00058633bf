package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lendbook"
	"github.com/google/subcommands"
)

// --- Lend Command ---

type lendCmd struct {
	date    string
	id      string
	owner   string
	amount  float64
	rate    float64
	cadence string
	due     string
	waive   bool
	memo    string
}

func (*lendCmd) Name() string     { return "lend" }
func (*lendCmd) Synopsis() string { return "record money lent to a borrower" }
func (*lendCmd) Usage() string {
	return `plb lend -o <borrower> -a <amount> [-r <rate> -c <cadence>] [-due <date>] [-waive] [-m <memo>]

  Opens a new loan. The rate is a percentage; the cadence is one of
  flat (default), daily, monthly, or yearly. With -waive, all interest is
  forgiven if the principal is fully repaid by the due date.
`
}

func (c *lendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Loan start date (YYYY-MM-DD)")
	f.StringVar(&c.id, "id", "", "Loan identifier, generated when empty")
	f.StringVar(&c.owner, "o", "", "Borrower identifier")
	f.Float64Var(&c.amount, "a", 0, "Principal amount")
	f.Float64Var(&c.rate, "r", 0, "Interest rate in percent")
	f.StringVar(&c.cadence, "c", "", "Interest cadence (flat, daily, monthly, yearly)")
	f.StringVar(&c.due, "due", "", "Due date (YYYY-MM-DD)")
	f.BoolVar(&c.waive, "waive", false, "Waive all interest if fully repaid by the due date")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the loan")
}

func (c *lendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var due lendbook.Date
	if c.due != "" {
		due, err = lendbook.ParseDate(c.due)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	cadence, err := lendbook.ParseCadence(c.cadence)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing cadence: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := lendbook.NewLend(day, c.memo, c.id, c.owner,
		lendbook.M(c.amount, *currency), lendbook.Percent(c.rate), cadence, due, c.waive)
	return appendTransaction(tx)
}

// --- Repay Command ---

type repayCmd struct {
	date   string
	loan   string
	id     string
	amount float64
	memo   string
}

func (*repayCmd) Name() string     { return "repay" }
func (*repayCmd) Synopsis() string { return "record a repayment on a single loan" }
func (*repayCmd) Usage() string {
	return `plb repay -loan <loan> -a <amount> [-d <date>] [-m <memo>]

  Records one repayment against a loan. To split a lump sum across all of
  a borrower's loans, use 'plb pay' instead.
`
}

func (c *repayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Repayment date (YYYY-MM-DD)")
	f.StringVar(&c.loan, "loan", "", "Loan identifier")
	f.StringVar(&c.id, "id", "", "Repayment identifier, generated when empty")
	f.Float64Var(&c.amount, "a", 0, "Amount repaid")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the repayment")
}

func (c *repayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := lendbook.NewRepay(day, c.memo, c.loan, c.id, lendbook.M(c.amount, *currency))
	return appendTransaction(tx)
}

// --- Amend Command ---

type amendCmd struct {
	date      string
	loan      string
	principal float64
	due       string
	memo      string
}

func (*amendCmd) Name() string     { return "amend" }
func (*amendCmd) Synopsis() string { return "edit a loan's principal or due date" }
func (*amendCmd) Usage() string {
	return `plb amend -loan <loan> [-a <principal>] [-due <date>] [-m <memo>]

  Edits a loan after the fact. Balances and completion are re-derived, so
  lowering the principal can complete a loan and raising it can reopen one.
`
}

func (c *amendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Amendment date (YYYY-MM-DD)")
	f.StringVar(&c.loan, "loan", "", "Loan identifier")
	f.Float64Var(&c.principal, "a", -1, "New principal amount, unchanged when omitted")
	f.StringVar(&c.due, "due", "", "New due date (YYYY-MM-DD), unchanged when omitted")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the amendment")
}

func (c *amendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	var due lendbook.Date
	if c.due != "" {
		due, err = lendbook.ParseDate(c.due)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing due date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tx := lendbook.NewAmend(day, c.memo, c.loan, lendbook.M(c.principal, *currency), due)
	return appendTransaction(tx)
}

// --- Drop Command ---

type dropCmd struct {
	date      string
	loan      string
	repayment string
	memo      string
}

func (*dropCmd) Name() string     { return "drop" }
func (*dropCmd) Synopsis() string { return "delete a repayment from a loan" }
func (*dropCmd) Usage() string {
	return `plb drop -loan <loan> -id <repayment> [-m <memo>]

  Deletes a repayment, for example when a transfer bounced. Dropping a
  repayment can turn a completed loan back into an active one.
`
}

func (c *dropCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Date of the correction (YYYY-MM-DD)")
	f.StringVar(&c.loan, "loan", "", "Loan identifier")
	f.StringVar(&c.repayment, "id", "", "Repayment identifier to delete")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the correction")
}

func (c *dropCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" || c.repayment == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := lendbook.NewDropRepayment(day, c.memo, c.loan, c.repayment)
	return appendTransaction(tx)
}

// --- Close Command ---

type closeCmd struct {
	date string
	loan string
	memo string
}

func (*closeCmd) Name() string     { return "close" }
func (*closeCmd) Synopsis() string { return "mark a loan settled by hand" }
func (*closeCmd) Usage() string {
	return `plb close -loan <loan> [-m <memo>]

  Marks a loan settled regardless of the arithmetic. Use it for forgiven
  debts or money settled outside the book.
`
}

func (c *closeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Settlement date (YYYY-MM-DD)")
	f.StringVar(&c.loan, "loan", "", "Loan identifier")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the settlement")
}

func (c *closeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loan == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	tx := lendbook.NewClose(day, c.memo, c.loan)
	return appendTransaction(tx)
}
