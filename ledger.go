package minibank

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/minibank/date"
)

// Ledger holds every account and the full transaction log of a bank.
//
// A Ledger is not safe for concurrent use: operations are meant to be called
// one at a time by a single shell.
type Ledger struct {
	currency     string
	accounts     map[AccountID]*Account
	transactions []Transaction // in insertion, hence id, order
	nextAccount  AccountID
	nextTx       TxID
	now          func() date.Stamp
}

// NewLedger creates an empty ledger keeping money in DefaultCurrency.
func NewLedger() *Ledger { return NewLedgerIn(DefaultCurrency) }

// NewLedgerIn creates an empty ledger keeping money in the given currency.
func NewLedgerIn(currency string) *Ledger {
	return &Ledger{
		currency:     currency,
		accounts:     make(map[AccountID]*Account),
		transactions: make([]Transaction, 0),
		nextAccount:  FirstAccountID,
		nextTx:       1,
		now:          date.Now,
	}
}

// Currency returns the currency code of the ledger.
func (l *Ledger) Currency() string { return l.currency }

// NextAccountID returns the number the next created account will get.
func (l *Ledger) NextAccountID() AccountID { return l.nextAccount }

// NextTxID returns the id the next recorded transaction will get.
func (l *Ledger) NextTxID() TxID { return l.nextTx }

// Len returns the number of transactions in the log.
func (l *Ledger) Len() int { return len(l.transactions) }

// CreateAccount opens an account with a zero balance.
func (l *Ledger) CreateAccount(name, pin string) (Account, error) {
	form := accountForm{Name: name, Pin: pin}
	if err := form.Validate(); err != nil {
		return Account{}, err
	}
	id := l.nextAccount
	l.nextAccount++
	a := &Account{ID: id, Name: form.Name, Balance: M(0, l.currency), pin: form.Pin}
	l.accounts[id] = a
	return *a, nil
}

// Account returns a snapshot of the account, without authorization.
func (l *Ledger) Account(id AccountID) (Account, bool) {
	a, ok := l.accounts[id]
	if !ok {
		return Account{}, false
	}
	return *a, true
}

// Accounts returns an iterator over all accounts in number order.
func (l *Ledger) Accounts() iter.Seq[Account] {
	return func(yield func(Account) bool) {
		for _, id := range slices.Sorted(maps.Keys(l.accounts)) {
			if !yield(*l.accounts[id]) {
				return
			}
		}
	}
}

// Deposit credits amount to the account. No PIN is required to give money.
func (l *Ledger) Deposit(id AccountID, amount Money) (Account, error) {
	a, ok := l.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: %v", ErrAccountNotFound, id)
	}
	amount, err := l.checkAmount(amount)
	if err != nil {
		return Account{}, err
	}
	a.Balance = a.Balance.Add(amount)
	l.record(id, KindDeposit, amount, "Deposit")
	return *a, nil
}

// Withdraw debits amount from the account after checking its PIN.
func (l *Ledger) Withdraw(id AccountID, pin string, amount Money) (Account, error) {
	a, err := l.authorize(id, pin)
	if err != nil {
		return Account{}, err
	}
	amount, err = l.checkAmount(amount)
	if err != nil {
		return Account{}, err
	}
	if amount.GreaterThan(a.Balance) {
		return Account{}, fmt.Errorf("%w: current balance %v", ErrInsufficientFunds, a.Balance)
	}
	a.Balance = a.Balance.Sub(amount)
	l.record(id, KindWithdraw, amount, "Withdrawal")
	return *a, nil
}

// Transfer moves amount from one account to another and returns the sender
// snapshot. The sender PIN is checked; the recipient may be the sender itself,
// in which case balances are unchanged but both transactions are recorded.
func (l *Ledger) Transfer(from AccountID, pin string, to AccountID, amount Money) (Account, error) {
	sender, err := l.authorize(from, pin)
	if err != nil {
		return Account{}, err
	}
	recipient, ok := l.accounts[to]
	if !ok {
		return Account{}, fmt.Errorf("%w: recipient %v", ErrAccountNotFound, to)
	}
	amount, err = l.checkAmount(amount)
	if err != nil {
		return Account{}, err
	}
	if amount.GreaterThan(sender.Balance) {
		return Account{}, fmt.Errorf("%w: current balance %v", ErrInsufficientFunds, sender.Balance)
	}

	// Nothing can fail past this point.
	sender.Balance = sender.Balance.Sub(amount)
	recipient.Balance = recipient.Balance.Add(amount)
	l.record(from, KindTransferOut, amount, fmt.Sprintf("Transfer to %v", to))
	l.record(to, KindTransferIn, amount, fmt.Sprintf("Transfer from %v", from))
	return *sender, nil
}

// Authorize checks that the account exists and that pin is its PIN.
// Both failures are reported as ErrAuthorizationFailed.
func (l *Ledger) Authorize(id AccountID, pin string) error {
	_, err := l.authorize(id, pin)
	return err
}

func (l *Ledger) authorize(id AccountID, pin string) (*Account, error) {
	a, ok := l.accounts[id]
	if !ok || a.pin != pin {
		return nil, fmt.Errorf("%w: account %v", ErrAuthorizationFailed, id)
	}
	return a, nil
}

// ViewBalance returns a snapshot of the account after checking its PIN.
func (l *Ledger) ViewBalance(id AccountID, pin string) (Account, error) {
	a, err := l.authorize(id, pin)
	if err != nil {
		return Account{}, err
	}
	return *a, nil
}

// ViewHistory returns the account's transactions, most recent first, after
// checking its PIN.
func (l *Ledger) ViewHistory(id AccountID, pin string) ([]Transaction, error) {
	if _, err := l.authorize(id, pin); err != nil {
		return nil, err
	}
	var history []Transaction
	for _, tx := range l.Transactions(ByAccount(id)) {
		history = append(history, tx)
	}
	slices.Reverse(history)
	return history, nil
}

// Transactions returns an iterator that yields each transaction accepted by
// any of the filters, in log order. With no filter, all transactions are yielded.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	if len(filters) == 0 {
		filters = append(filters, AcceptAll)
	}
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := false
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// checkAmount validates a user amount and brings it into the ledger currency.
func (l *Ledger) checkAmount(amount Money) (Money, error) {
	if amount.Currency() != "" && amount.Currency() != l.currency {
		return Money{}, fmt.Errorf("%w: %s amount in a %s ledger", ErrInvalidAmount, amount.Currency(), l.currency)
	}
	amount = amount.in(l.currency)
	if !amount.IsPositive() {
		return Money{}, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	if !amount.isCents() {
		return Money{}, fmt.Errorf("%w: %v has too many decimals", ErrInvalidAmount, amount.Decimal())
	}
	return amount, nil
}

// record appends a transaction to the log.
func (l *Ledger) record(id AccountID, kind Kind, amount Money, desc string) Transaction {
	tx := Transaction{
		ID:          l.nextTx,
		Account:     id,
		Kind:        kind,
		Amount:      amount,
		Date:        l.now(),
		Description: desc,
	}
	l.nextTx++
	l.transactions = append(l.transactions, tx)
	return tx
}

// restoreAccount puts a loaded account in the ledger and moves the account
// counter past it.
func (l *Ledger) restoreAccount(a Account) {
	a.Balance = a.Balance.in(l.currency)
	l.accounts[a.ID] = &a
	if a.ID >= l.nextAccount {
		l.nextAccount = a.ID + 1
	}
}

// restoreTransaction appends a loaded transaction to the log and moves the
// transaction counter past it.
func (l *Ledger) restoreTransaction(tx Transaction) {
	tx.Amount = tx.Amount.in(l.currency)
	l.transactions = append(l.transactions, tx)
	if tx.ID >= l.nextTx {
		l.nextTx = tx.ID + 1
	}
}

// stableSort sorts the log by transaction id. The sort is stable, so duplicated
// ids read from a table keep their file order.
func (l *Ledger) stableSort() {
	slices.SortStableFunc(l.transactions, func(a, b Transaction) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
