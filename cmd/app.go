// Package cmd implements the CLI application to manage a personal
// lending book.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/lendbook"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application, in display order.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&lendCmd{},
	&repayCmd{},
	&payCmd{},
	&amendCmd{},
	&dropCmd{},
	&closeCmd{},
	&scoreCmd{},
	&summaryCmd{},
	&statementCmd{},
	&txCmd{},
	&fmtCmd{},
	&rateCmd{},
	&topicCmd{},
	&assistCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables.

var bookFile = flag.String("book-file", envOr("PLB_BOOK", "book.jsonl"), "Path to the book file containing commands (JSONL format)")
var currency = flag.String("currency", envOr("PLB_CURRENCY", ""), "Display currency for amounts (ISO 4217 code, e.g. EUR)")

// envOr returns the environment variable value, or def when unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DecodeBook decodes the book from the app book file. A missing file is an
// empty book, so every command works on a fresh directory.
func DecodeBook() (*lendbook.Book, error) {
	f, err := os.Open(*bookFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b := lendbook.NewBook()
			b.SetCurrency(*currency)
			return b, nil
		}
		return nil, fmt.Errorf("could not open book file %q: %w", *bookFile, err)
	}
	defer f.Close()

	b, err := lendbook.DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode book file %q: %w", *bookFile, err)
	}
	b.SetCurrency(*currency)
	return b, nil
}

// SaveBook rewrites the whole book file in canonical form.
func SaveBook(b *lendbook.Book) error {
	f, err := os.Create(*bookFile)
	if err != nil {
		return fmt.Errorf("could not create book file %q: %w", *bookFile, err)
	}
	defer f.Close()
	return lendbook.EncodeBook(f, b)
}

// appendTransaction validates a transaction against the current book and
// appends it to the app book file.
func appendTransaction(tx lendbook.Transaction) subcommands.ExitStatus {
	book, err := DecodeBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	validated, err := book.Validate(tx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*bookFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening book file %q: %v\n", *bookFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := lendbook.EncodeTransaction(f, validated); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to book file %q: %v\n", *bookFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s to %s\n", validated.What(), *bookFile)
	return subcommands.ExitSuccess
}
