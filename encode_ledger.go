package minibank

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/etnz/minibank/date"
	"github.com/shopspring/decimal"
)

// Table headers, written as the first line of each table.
const (
	AccountsHeader     = "accNumber,name,pin,balance"
	TransactionsHeader = "id,accNumber,type,amount,date,description"
)

const (
	separator         = ","
	accountFields     = 4
	transactionFields = 6
)

// Report describes what a decoder did with a table.
type Report struct {
	Loaded  int   // number of records added to the ledger
	Skipped []int // line numbers of records with too few fields
}

// DecodeAccounts reads an accounts table from r into l.
//
// The first line is the header and is ignored. Lines with too few fields are
// skipped, fields past the fourth are ignored. A field that cannot be parsed stops the decoding: the
// accounts read so far stay in l and the error wraps ErrPersistenceRead.
func DecodeAccounts(r io.Reader, l *Ledger) (Report, error) {
	return decodeTable(r, accountFields, func(fields []string) error {
		n, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account number %q: %w", fields[0], err)
		}
		balance, err := decimal.NewFromString(fields[3])
		if err != nil {
			return fmt.Errorf("invalid balance %q: %w", fields[3], err)
		}
		l.restoreAccount(Account{
			ID:      AccountID(n),
			Name:    fields[1],
			pin:     fields[2],
			Balance: M(balance, l.currency),
		})
		return nil
	})
}

// DecodeTransactions reads a transactions table from r into l.
//
// It follows the same rules as DecodeAccounts. Once decoded, the log is
// ordered by transaction id.
func DecodeTransactions(r io.Reader, l *Ledger) (Report, error) {
	defer l.stableSort()
	return decodeTable(r, transactionFields, func(fields []string) error {
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid transaction id %q: %w", fields[0], err)
		}
		acc, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account number %q: %w", fields[1], err)
		}
		kind, err := ParseKind(fields[2])
		if err != nil {
			return err
		}
		amount, err := decimal.NewFromString(fields[3])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", fields[3], err)
		}
		on, err := date.Parse(fields[4])
		if err != nil {
			return err
		}
		l.restoreTransaction(Transaction{
			ID:          TxID(id),
			Account:     AccountID(acc),
			Kind:        kind,
			Amount:      M(amount, l.currency),
			Date:        on,
			Description: fields[5],
		})
		return nil
	})
}

// decodeTable reads a table line by line and calls record for each line with
// at least arity fields. Extra trailing fields are ignored.
func decodeTable(r io.Reader, arity int, record func(fields []string) error) (Report, error) {
	var report Report
	reader := bufio.NewReader(r)
	line := 0
	for done := false; !done; {
		text, err := reader.ReadString('\n')
		switch {
		case err == io.EOF:
			done = true
		case err != nil:
			return report, fmt.Errorf("%w: error reading from input: %w", ErrPersistenceRead, err)
		}
		if text == "" {
			continue
		}
		line++
		text = strings.TrimRight(text, "\r\n")
		if line == 1 || text == "" {
			continue // header or blank line
		}
		fields := strings.Split(text, separator)
		if len(fields) < arity {
			report.Skipped = append(report.Skipped, line)
			continue
		}
		if err := record(fields[:arity]); err != nil {
			return report, fmt.Errorf("%w: line %d: %w", ErrPersistenceRead, line, err)
		}
		report.Loaded++
	}
	return report, nil
}

// EncodeAccounts writes the accounts table of l to w, one line per account in
// number order. Balances are written with all their digits.
func EncodeAccounts(w io.Writer, l *Ledger) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, AccountsHeader)
	for a := range l.Accounts() {
		fmt.Fprintln(bw, strings.Join([]string{
			a.ID.String(),
			escape(a.Name),
			a.pin,
			a.Balance.Decimal().String(),
		}, separator))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write accounts: %w", err)
	}
	return nil
}

// EncodeTransactions writes the transactions table of l to w, in log order.
func EncodeTransactions(w io.Writer, l *Ledger) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, TransactionsHeader)
	for _, tx := range l.Transactions() {
		fmt.Fprintln(bw, strings.Join([]string{
			strconv.FormatInt(int64(tx.ID), 10),
			tx.Account.String(),
			string(tx.Kind),
			tx.Amount.Decimal().String(),
			tx.Date.String(),
			escape(tx.Description),
		}, separator))
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write transactions: %w", err)
	}
	return nil
}

// escape keeps free text on one line with no separator. It is lossy.
var escape = strings.NewReplacer(separator, " ", "\n", " ", "\r", " ").Replace
