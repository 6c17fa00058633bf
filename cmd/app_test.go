package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/lendbook"
	"github.com/google/subcommands"
)

// useTempBook points the app at a fresh book file for the duration of the test.
func useTempBook(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "book.jsonl")
	old := *bookFile
	*bookFile = file
	t.Cleanup(func() { *bookFile = old })
	return file
}

func TestDecodeBook_MissingFileIsEmptyBook(t *testing.T) {
	useTempBook(t)
	b, err := DecodeBook()
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}
	if len(b.Transactions()) != 0 {
		t.Errorf("expected empty book, got %d transactions", len(b.Transactions()))
	}
}

func TestAppendTransaction_RoundTrip(t *testing.T) {
	useTempBook(t)

	lend := lendbook.NewLend(lendbook.MustParse("2025-01-01"), "lunch", "L1", "alice",
		lendbook.M(100, ""), 0, lendbook.CadenceNone, lendbook.Date{}, false)
	if got := appendTransaction(lend); got != subcommands.ExitSuccess {
		t.Fatalf("appendTransaction(lend) = %v, want success", got)
	}
	repay := lendbook.NewRepay(lendbook.MustParse("2025-01-10"), "", "L1", "p1", lendbook.M(40, ""))
	if got := appendTransaction(repay); got != subcommands.ExitSuccess {
		t.Fatalf("appendTransaction(repay) = %v, want success", got)
	}

	b, err := DecodeBook()
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}
	if len(b.Transactions()) != 2 {
		t.Fatalf("decoded %d transactions, want 2", len(b.Transactions()))
	}
	l := b.Loan("L1", lendbook.MustParse("2025-02-01"))
	if l == nil {
		t.Fatal("Loan(L1) = nil")
	}
	if got := l.PaidAmount().AsFloat(); got != 40 {
		t.Errorf("PaidAmount() = %v, want 40", got)
	}
}

func TestAppendTransaction_RejectsInvalid(t *testing.T) {
	useTempBook(t)

	// Repaying a loan that does not exist must not touch the file.
	repay := lendbook.NewRepay(lendbook.MustParse("2025-01-10"), "", "nope", "p1", lendbook.M(40, ""))
	if got := appendTransaction(repay); got != subcommands.ExitFailure {
		t.Fatalf("appendTransaction(bad repay) = %v, want failure", got)
	}
	if _, err := os.Stat(*bookFile); err == nil {
		t.Error("book file was created for a rejected transaction")
	}
}

func TestSaveBook_CanonicalForm(t *testing.T) {
	file := useTempBook(t)

	// Write commands out of order with a junk line in between.
	raw := strings.Join([]string{
		`{"command":"repay","date":"2025-01-10","loan":"L1","id":"p1","amount":40}`,
		`garbage`,
		`{"command":"lend","date":"2025-01-01","id":"L1","owner":"alice","principal":100}`,
	}, "\n")
	if err := os.WriteFile(file, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := DecodeBook()
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}
	if err := SaveBook(b); err != nil {
		t.Fatalf("SaveBook() failed: %v", err)
	}

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 2 {
		t.Fatalf("canonical book has %d lines, want 2:\n%s", len(lines), content)
	}
	if !strings.Contains(lines[0], `"command":"lend"`) {
		t.Errorf("first line is not the lend command: %s", lines[0])
	}
}
