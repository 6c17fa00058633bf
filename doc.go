// Package lendbook provides the core logic for a personal peer-lending
// ledger. It is designed to be local-first, auditable, and extensible,
// ensuring users have full control and transparency over the money they
// lend and the repayments they receive.
//
// The core functionalities include:
//   - Book Management: Recording loans, repayments, amendments, and
//     settlements in an immutable, chronological record.
//   - Interest Accrual: Computing the interest owed on a loan at any point
//     in time, on a flat or declining-balance basis, with an optional
//     waiver for loans repaid by their due date.
//   - Balance Resolution: Combining principal, accrued interest, and
//     repayments into a current balance and completion status.
//   - Trust Scoring: Deriving a 1-100 reliability score for a borrower
//     from their full loan and repayment history, with ranked explanatory
//     factors and a chronological event history.
//   - Payment Allocation: Deterministically distributing a single lump-sum
//     payment across a borrower's outstanding loans, oldest debt first.
//   - Data Persistence: Handling the encoding and decoding of the book to
//     and from a human-readable, version-controllable format (JSONL).
//
// This package serves as the foundational logic for the `plb` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package lendbook
