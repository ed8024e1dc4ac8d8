package minibank

import (
	"fmt"

	"github.com/etnz/minibank/date"
)

// Kind is a typed string identifying what a transaction did to its account.
type Kind string

// Kinds of transactions, as written in the transactions table.
const (
	KindDeposit     Kind = "DEPOSIT"
	KindWithdraw    Kind = "WITHDRAW"
	KindTransferIn  Kind = "TRANSFER_IN"
	KindTransferOut Kind = "TRANSFER_OUT"
)

// ParseKind parses a kind as written in the transactions table.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindDeposit, KindWithdraw, KindTransferIn, KindTransferOut:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Credit reports whether this kind adds money to its account.
func (k Kind) Credit() bool { return k == KindDeposit || k == KindTransferIn }

// TxID identifies a transaction in the whole log.
type TxID int64

// Transaction is an immutable entry in the ledger log.
//
// A transfer records two transactions, one per affected account.
type Transaction struct {
	ID          TxID
	Account     AccountID
	Kind        Kind
	Amount      Money
	Date        date.Stamp
	Description string
}

// What returns the kind of the transaction.
func (tx Transaction) What() Kind { return tx.Kind }

// When returns the stamp at which the transaction was recorded.
func (tx Transaction) When() date.Stamp { return tx.Date }

// Equal reports whether both transactions record the same thing.
func (tx Transaction) Equal(o Transaction) bool {
	return tx.ID == o.ID &&
		tx.Account == o.Account &&
		tx.Kind == o.Kind &&
		tx.Amount.Equal(o.Amount) &&
		tx.Date.Equal(o.Date) &&
		tx.Description == o.Description
}

// AcceptAll is a filter that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByAccount returns a filter that accepts transactions owned by id.
func ByAccount(id AccountID) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Account == id }
}

// ByKind returns a filter that accepts transactions of any of the given kinds.
func ByKind(kinds ...Kind) func(Transaction) bool {
	return func(tx Transaction) bool {
		for _, k := range kinds {
			if tx.Kind == k {
				return true
			}
		}
		return false
	}
}
