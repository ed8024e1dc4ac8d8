package minibank

import (
	"testing"

	"github.com/etnz/minibank/date"
	"github.com/google/go-cmp/cmp"
)

// INR is a helper for test to create rupees from const
func INR(v float64) Money { return M(v, "INR") }

// compare makes go-cmp understand the ledger value types.
var compare = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b date.Stamp) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Account) bool { return a.Equal(b) }),
}

// fixedClock makes a ledger record every transaction at the same stamp.
func fixedClock(l *Ledger, stamp string) {
	on := date.MustParse(stamp)
	l.now = func() date.Stamp { return on }
}

// mustCreate creates an account or fails the test.
func mustCreate(t *testing.T, l *Ledger, name, pin string) Account {
	t.Helper()
	a, err := l.CreateAccount(name, pin)
	if err != nil {
		t.Fatalf("CreateAccount(%q, %q) unexpected error: %v", name, pin, err)
	}
	return a
}

// balance returns the balance of an account or fails the test.
func balance(t *testing.T, l *Ledger, id AccountID) Money {
	t.Helper()
	a, ok := l.Account(id)
	if !ok {
		t.Fatalf("Account(%v) not found", id)
	}
	return a.Balance
}

// txLog returns a copy of the whole transaction log.
func txLog(l *Ledger) []Transaction {
	var txs []Transaction
	for _, tx := range l.Transactions() {
		txs = append(txs, tx)
	}
	return txs
}
