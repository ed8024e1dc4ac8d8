package minibank

import "errors"

// Errors returned by ledger operations and by the file store.
// Operations wrap them with context; test them with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAuthorizationFailed = errors.New("authorization failed")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrPersistenceRead     = errors.New("cannot read ledger table")
	ErrPersistenceWrite    = errors.New("cannot write ledger table")
)
