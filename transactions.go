package lendbook

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommandType is a typed string for identifying book commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdLend          CommandType = "lend"
	CmdRepay         CommandType = "repay"
	CmdAmend         CommandType = "amend"
	CmdDropRepayment CommandType = "drop-repayment"
	CmdClose         CommandType = "close"
)

// Transaction defines the common interface for all types of commands that
// can be recorded in the book.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "lend", "repay").
	When() Date        // When returns the date on which the transaction occurred.
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"`        // Command specifies the type of transaction (e.g., "lend", "repay").
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction, which is used to identify the type of transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// Validate checks the base command fields. It sets the date to today if it's zero.
// It's meant to be embedded in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
}

// equalTx compares two transactions through their canonical JSON form.
func equalTx(a, b Transaction) bool {
	ja, erra := encodeTx(a)
	jb, errb := encodeTx(b)
	return erra == nil && errb == nil && bytes.Equal(ja, jb)
}

// Lend opens a new loan: an advance of principal to a borrower. The
// transaction date is the loan's start date.
type Lend struct {
	baseCmd
	ID        string          // loan identifier, unique in the book
	Owner     string          // borrower grouping key
	Principal decimal.Decimal // amount advanced
	Rate      Percent         // interest rate, percent
	Cadence   Cadence         // interest compounding cadence
	Due       Date            // repayment due date
	Waiver    bool            // waive interest if fully repaid by the due date
}

// NewLend creates a new Lend transaction.
func NewLend(on Date, memo, id, owner string, principal Money, rate Percent, cadence Cadence, due Date, waiver bool) Lend {
	return Lend{
		baseCmd:   baseCmd{Command: CmdLend, Date: on, Memo: memo},
		ID:        id,
		Owner:     owner,
		Principal: principal.value,
		Rate:      rate,
		Cadence:   cadence,
		Due:       due,
		Waiver:    waiver,
	}
}

// Validate checks the lend command and applies quick fixes: a missing loan
// ID is minted, a zero date becomes today.
func (t *Lend) Validate(b *Book) error {
	t.baseCmd.Validate()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Owner == "" {
		return errors.New("borrower is missing")
	}
	if t.Principal.IsNegative() {
		return fmt.Errorf("negative principal %s", t.Principal)
	}
	if t.Rate < 0 {
		return fmt.Errorf("negative interest rate %s", t.Rate)
	}
	if b.hasLoan(t.ID) {
		return fmt.Errorf("loan %q already exists", t.ID)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Lend.
func (t Lend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("id", t.ID)
	w.Append("owner", t.Owner)
	w.Append("principal", t.Principal)
	w.Optional("rate", float64(t.Rate))
	w.Optional("cadence", t.Cadence)
	if !t.Due.IsZero() {
		w.Append("due", t.Due)
	}
	w.Optional("waiver", t.Waiver)
	return w.MarshalJSON()
}

func (t Lend) Equal(o Transaction) bool { return equalTx(t, o) }

// Repay records one repayment against a single loan.
type Repay struct {
	baseCmd
	Loan   string          // loan identifier
	ID     string          // repayment identifier, unique within the loan
	Amount decimal.Decimal // amount repaid
}

// NewRepay creates a new Repay transaction.
func NewRepay(on Date, memo, loan, id string, amount Money) Repay {
	return Repay{
		baseCmd: baseCmd{Command: CmdRepay, Date: on, Memo: memo},
		Loan:    loan,
		ID:      id,
		Amount:  amount.value,
	}
}

// Validate checks the repay command. A missing repayment ID is minted.
func (t *Repay) Validate(b *Book) error {
	t.baseCmd.Validate()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if !b.hasLoan(t.Loan) {
		return fmt.Errorf("loan %q not found in book", t.Loan)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("repayment amount must be positive, got %s", t.Amount)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Repay.
func (t Repay) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("loan", t.Loan)
	w.Append("id", t.ID)
	w.Append("amount", t.Amount)
	return w.MarshalJSON()
}

func (t Repay) Equal(o Transaction) bool { return equalTx(t, o) }

// Amend edits a loan's principal and/or due date. A nil Principal leaves
// the principal unchanged; a zero Due leaves the due date unchanged.
type Amend struct {
	baseCmd
	Loan      string
	Principal *decimal.Decimal
	Due       Date
}

// NewAmend creates a new Amend transaction. Pass a negative principal to
// leave the principal unchanged.
func NewAmend(on Date, memo, loan string, principal Money, due Date) Amend {
	a := Amend{
		baseCmd: baseCmd{Command: CmdAmend, Date: on, Memo: memo},
		Loan:    loan,
		Due:     due,
	}
	if !principal.IsNegative() {
		v := principal.value
		a.Principal = &v
	}
	return a
}

// Validate checks the amend command.
func (t *Amend) Validate(b *Book) error {
	t.baseCmd.Validate()
	if !b.hasLoan(t.Loan) {
		return fmt.Errorf("loan %q not found in book", t.Loan)
	}
	if t.Principal == nil && t.Due.IsZero() {
		return errors.New("amend changes nothing: set a principal or a due date")
	}
	if t.Principal != nil && t.Principal.IsNegative() {
		return fmt.Errorf("negative principal %s", t.Principal)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Amend.
func (t Amend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("loan", t.Loan)
	if t.Principal != nil {
		w.Append("principal", t.Principal)
	}
	if !t.Due.IsZero() {
		w.Append("due", t.Due)
	}
	return w.MarshalJSON()
}

func (t Amend) Equal(o Transaction) bool { return equalTx(t, o) }

// DropRepayment deletes a repayment from a loan. The loan's paid amount and
// completion state are re-derived on the next materialization, so dropping
// a repayment can revert a completed loan to active.
type DropRepayment struct {
	baseCmd
	Loan      string
	Repayment string
}

// NewDropRepayment creates a new DropRepayment transaction.
func NewDropRepayment(on Date, memo, loan, repayment string) DropRepayment {
	return DropRepayment{
		baseCmd:   baseCmd{Command: CmdDropRepayment, Date: on, Memo: memo},
		Loan:      loan,
		Repayment: repayment,
	}
}

// Validate checks the drop-repayment command.
func (t *DropRepayment) Validate(b *Book) error {
	t.baseCmd.Validate()
	if !b.hasLoan(t.Loan) {
		return fmt.Errorf("loan %q not found in book", t.Loan)
	}
	if t.Repayment == "" {
		return errors.New("repayment identifier is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for DropRepayment.
func (t DropRepayment) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("loan", t.Loan)
	w.Append("repayment", t.Repayment)
	return w.MarshalJSON()
}

func (t DropRepayment) Equal(o Transaction) bool { return equalTx(t, o) }

// Close marks a loan settled by hand, regardless of the repayment
// arithmetic. It is the manual override for debts forgiven or settled
// outside the book.
type Close struct {
	baseCmd
	Loan string
}

// NewClose creates a new Close transaction.
func NewClose(on Date, memo, loan string) Close {
	return Close{
		baseCmd: baseCmd{Command: CmdClose, Date: on, Memo: memo},
		Loan:    loan,
	}
}

// Validate checks the close command.
func (t *Close) Validate(b *Book) error {
	t.baseCmd.Validate()
	if !b.hasLoan(t.Loan) {
		return fmt.Errorf("loan %q not found in book", t.Loan)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Close.
func (t Close) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("loan", t.Loan)
	return w.MarshalJSON()
}

func (t Close) Equal(o Transaction) bool { return equalTx(t, o) }
