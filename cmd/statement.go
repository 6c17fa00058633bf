package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lendbook"
	"github.com/etnz/lendbook/renderer"
	"github.com/google/subcommands"
)

type statementCmd struct {
	date  string
	owner string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display a borrower's detailed statement" }
func (*statementCmd) Usage() string {
	return `plb statement -o <borrower> [-d <date>]

  Details every loan of the borrower: principal, accrued interest, total
  payable, paid amount, remaining balance, and the repayment history.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Evaluation date (YYYY-MM-DD)")
	f.StringVar(&c.owner, "o", "", "Borrower identifier")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	loans := book.BorrowerLoans(c.owner, on)
	if len(loans) == 0 {
		fmt.Fprintf(os.Stderr, "No loans found for borrower %q.\n", c.owner)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderStatement(renderer.NewStatement(c.owner, loans, on)))

	return subcommands.ExitSuccess
}
