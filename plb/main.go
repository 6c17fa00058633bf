// Command plb manages a personal lending book from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/lendbook/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion exits the process when invoked by the shell.
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion declares the command tree for shell completion. Install it
// with "COMP_INSTALL=1 plb".
func completion() {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	root := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"book-file": predict.Files("*.jsonl"),
			"currency":  predict.Set{"EUR", "USD", "GBP", "CHF"},
		},
	}
	root.Complete("plb")
}
