package lendbook

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeBook_RoundTrip(t *testing.T) {
	b := setupBook(t)
	if err := b.Append(
		NewAmend(day("2025-02-01"), "extended", "L2", NO(-1), day("2025-09-01")),
		NewDropRepayment(day("2025-02-02"), "", "L1", "p1"),
		NewClose(day("2025-02-03"), "forgiven", "L3"),
	); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeBook(&buf, b); err != nil {
		t.Fatalf("EncodeBook() failed: %v", err)
	}

	got, err := DecodeBook(&buf)
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}

	want := b.Transactions()
	txs := got.Transactions()
	if len(txs) != len(want) {
		t.Fatalf("decoded %d transactions, want %d", len(txs), len(want))
	}
	for i := range want {
		if !want[i].Equal(txs[i]) {
			t.Errorf("transaction %d differs after round trip:\nwant %v\ngot  %v", i, want[i], txs[i])
		}
	}
}

func TestEncodeTransaction_CanonicalForm(t *testing.T) {
	// Field order is fixed and zero-valued optional fields are omitted, so
	// the book file diffs cleanly under version control.
	var buf bytes.Buffer
	lend := NewLend(day("2025-01-01"), "lunch", "L1", "alice", NO(100), 5, CadenceMonthly, day("2025-06-01"), true)
	if err := EncodeTransaction(&buf, lend); err != nil {
		t.Fatalf("EncodeTransaction() failed: %v", err)
	}
	want := `{"command":"lend","date":"2025-01-01","memo":"lunch","id":"L1","owner":"alice","principal":100,"rate":5,"cadence":"monthly","due":"2025-06-01","waiver":true}` + "\n"
	if buf.String() != want {
		t.Errorf("EncodeTransaction() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	flat := NewLend(day("2025-01-01"), "", "L2", "bob", NO(50), 0, CadenceNone, Date{}, false)
	if err := EncodeTransaction(&buf, flat); err != nil {
		t.Fatalf("EncodeTransaction() failed: %v", err)
	}
	want = `{"command":"lend","date":"2025-01-01","id":"L2","owner":"bob","principal":50}` + "\n"
	if buf.String() != want {
		t.Errorf("EncodeTransaction() = %q, want %q", buf.String(), want)
	}
}

func TestDecodeBook_SkipsMalformedLines(t *testing.T) {
	in := strings.Join([]string{
		`{"command":"lend","date":"2025-01-01","id":"L1","owner":"alice","principal":100}`,
		`this is not json`,
		`{"command":"teleport","date":"2025-01-02"}`,
		``,
		`{"command":"repay","date":"2025-01-10","loan":"L1","id":"p1","amount":40}`,
	}, "\n")

	b, err := DecodeBook(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}
	if got := len(b.Transactions()); got != 2 {
		t.Fatalf("decoded %d transactions, want 2 (bad lines skipped)", got)
	}
	l1 := b.Loan("L1", day("2025-02-01"))
	if l1 == nil {
		t.Fatal("Loan(L1) = nil")
	}
	if got := l1.PaidAmount().AsFloat(); got != 40 {
		t.Errorf("L1 PaidAmount() = %v, want 40", got)
	}
}

func TestDecodeBook_SortsChronologically(t *testing.T) {
	in := strings.Join([]string{
		`{"command":"repay","date":"2025-01-10","loan":"L1","id":"p1","amount":40}`,
		`{"command":"lend","date":"2025-01-01","id":"L1","owner":"alice","principal":100}`,
	}, "\n")

	b, err := DecodeBook(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBook() failed: %v", err)
	}
	if got := b.Transactions()[0].What(); got != CmdLend {
		t.Errorf("first transaction = %s, want %s", got, CmdLend)
	}
}
