package minibank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jsonObjectWriter builds a JSON object keeping fields in the order they are
// appended. Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a key-value pair, the value is marshaled with json.Marshal.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Optional is like Append but skips zero values.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON wraps the appended fields in braces.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')
	return final, nil
}

// MarshalJSON writes the amount as a bare number, with all its digits.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value)
}

// MarshalJSON implements json.Marshaler. The PIN is never written.
func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("accNumber", a.ID)
	w.Append("name", a.Name)
	w.Append("balance", a.Balance)
	return w.MarshalJSON()
}

// MarshalJSON implements json.Marshaler.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", tx.ID)
	w.Append("accNumber", tx.Account)
	w.Append("type", tx.Kind)
	w.Append("amount", tx.Amount)
	w.Append("date", tx.Date)
	w.Optional("description", tx.Description)
	return w.MarshalJSON()
}

// MarshalJSON exports the whole ledger, without PINs, for querying.
func (l *Ledger) MarshalJSON() ([]byte, error) {
	accounts := make([]Account, 0, len(l.accounts))
	for a := range l.Accounts() {
		accounts = append(accounts, a)
	}
	var w jsonObjectWriter
	w.Append("currency", l.currency)
	w.Append("nextAccNumber", l.nextAccount)
	w.Append("nextId", l.nextTx)
	w.Append("accounts", accounts)
	w.Append("transactions", l.transactions)
	return w.MarshalJSON()
}
