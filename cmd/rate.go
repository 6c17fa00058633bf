package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/lendbook"
	"github.com/google/subcommands"
)

type rateCmd struct{}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "display the current benchmark interest rate" }
func (*rateCmd) Usage() string {
	return `plb rate

  Fetches the central-bank main refinancing rate as a reference point for
  choosing a fair rate on a new loan.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rate, err := lendbook.BenchmarkRate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching benchmark rate: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(fmt.Sprintf("Current ECB main refinancing rate: **%s**\n", rate))

	return subcommands.ExitSuccess
}
