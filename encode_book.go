package lendbook

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeBook decodes commands from a stream of JSONL data, one command per
// line, and returns a sorted Book.
//
// A malformed line is skipped with a warning rather than failing the whole
// decode: one corrupt record must never block the book.
func DecodeBook(r io.Reader) (*Book, error) {
	book := NewBook()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Command CommandType `json:"command"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			log.Printf("warning: skipping unreadable line %q: %v", string(lineBytes), err)
			continue
		}

		var decodedTx Transaction
		var err error

		switch identifier.Command {
		case CmdLend:
			var tx Lend
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdRepay:
			var tx Repay
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdAmend:
			var tx Amend
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdDropRepayment:
			var tx DropRepayment
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case CmdClose:
			var tx Close
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		default:
			log.Printf("warning: skipping unknown command %q", identifier.Command)
			continue
		}
		if err != nil {
			log.Printf("warning: skipping malformed %s command %q: %v", identifier.Command, string(lineBytes), err)
			continue
		}
		book.transactions = append(book.transactions, decodedTx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read book: %w", err)
	}

	book.stableSort()
	return book, nil
}

// encodeTx marshals a single transaction into its canonical JSON line.
func encodeTx(tx Transaction) ([]byte, error) {
	m, ok := tx.(json.Marshaler)
	if !ok {
		return nil, fmt.Errorf("transaction %T is not marshalable", tx)
	}
	return m.MarshalJSON()
}

// EncodeTransaction appends the JSONL encoding of a single transaction to
// the writer.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	line, err := encodeTx(tx)
	if err != nil {
		return fmt.Errorf("could not encode %s transaction: %w", tx.What(), err)
	}
	if _, err := w.Write(line); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// EncodeBook writes the whole book in canonical JSONL form: one command
// per line, in chronological order.
func EncodeBook(w io.Writer, b *Book) error {
	for _, tx := range b.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
