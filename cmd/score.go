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

type scoreCmd struct {
	date  string
	owner string
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "display a borrower's trust score" }
func (*scoreCmd) Usage() string {
	return `plb score -o <borrower> [-d <date>]

  Rates the borrower's repayment reliability on a 1..100 scale, with
  ranked factors explaining the score and the full lending history.
`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", lendbook.Today().String(), "Evaluation date (YYYY-MM-DD)")
	f.StringVar(&c.owner, "o", "", "Borrower identifier")
}

func (c *scoreCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	card := renderer.NewScoreCard(c.owner, book.Score(c.owner, on), on)
	printMarkdown(renderer.RenderScoreCard(card))

	return subcommands.ExitSuccess
}
