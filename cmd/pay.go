package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/lendbook"
	"github.com/google/subcommands"
)

type payCmd struct {
	date   string
	owner  string
	amount float64
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "split a lump-sum payment across a borrower's loans" }
func (*payCmd) Usage() string {
	return `plb pay -o <borrower> -a <amount> [-d <date>]

  Distributes a payment across the borrower's outstanding loans, oldest
  first. Any surplus beyond all balances is recorded against the most
  recently started loan as an overpayment. Each applied share is recorded
  as a regular repay command in the book.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Payment date (YYYY-MM-DD)")
	f.StringVar(&c.owner, "o", "", "Borrower identifier")
	f.Float64Var(&c.amount, "a", 0, "Amount paid")
}

func (c *payCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.owner == "" || c.amount <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, err := lendbook.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	alloc, err := book.Pay(c.owner, lendbook.M(c.amount, *currency), day)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(alloc.Applied) == 0 {
		fmt.Fprintf(os.Stderr, "No loans found for borrower %q, nothing recorded.\n", c.owner)
		return subcommands.ExitFailure
	}

	if err := SaveBook(book); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Payment of %s from %s on %s\n\n", lendbook.M(c.amount, *currency), c.owner, day)
	b.WriteString("| Loan | Applied |\n")
	b.WriteString("|------|--------:|\n")
	for _, l := range alloc.Loans {
		share, ok := alloc.Applied[l.ID]
		if !ok || share.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", l.ID, share)
	}
	printMarkdown(b.String())

	return subcommands.ExitSuccess
}
