// Package minibank keeps the accounts and the transaction log of a small
// retail bank, and persists them as two flat-file tables.
//
// The package is made of two parts:
//   - The Ledger: accounts protected by a 4-digit PIN, and an append-only log
//     of deposits, withdrawals and transfers. Money is exact decimal, never
//     floating point.
//   - The Store: loads a Ledger from, and saves it to, `accounts.csv` and
//     `transactions.csv` in a data directory. Decoding is lenient with
//     malformed lines and reports what it skipped.
//
// This package serves as the foundational logic for the `mb` command-line
// tool.
package minibank
