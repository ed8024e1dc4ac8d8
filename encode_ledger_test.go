package minibank

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/etnz/minibank/date"
	"github.com/google/go-cmp/cmp"
)

func TestDecodeAccounts(t *testing.T) {
	table := `accNumber,name,pin,balance
1001001000,Alice,1234,300.0
1001001003,Bob,5678,0.1

1001001001,too short
1001001002,missing field,0000
`
	l := NewLedger()
	report, err := DecodeAccounts(strings.NewReader(table), l)
	if err != nil {
		t.Fatalf("DecodeAccounts() unexpected error: %v", err)
	}
	if report.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2", report.Loaded)
	}
	if diff := cmp.Diff([]int{5, 6}, report.Skipped); diff != "" {
		t.Errorf("Skipped mismatch (-want +got):\n%s", diff)
	}

	want := []Account{
		{ID: 1001001000, Name: "Alice", Balance: INR(300), pin: "1234"},
		{ID: 1001001003, Name: "Bob", Balance: INR(0.1), pin: "5678"},
	}
	var got []Account
	for a := range l.Accounts() {
		got = append(got, a)
	}
	if diff := cmp.Diff(want, got, compare); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}
	if l.NextAccountID() != 1001001004 {
		t.Errorf("NextAccountID() = %v, want 1001001004", l.NextAccountID())
	}
}

func TestDecodeAccounts_ExtraFieldsAreIgnored(t *testing.T) {
	table := `accNumber,name,pin,balance,opened
1001001000,Alice,1234,300,2025-08-01
1001001001,Bob,5678,fields,here
`
	l := NewLedger()
	report, err := DecodeAccounts(strings.NewReader(table), l)
	if !errors.Is(err, ErrPersistenceRead) {
		t.Fatalf("DecodeAccounts() error = %v, want %v", err, ErrPersistenceRead)
	}
	if report.Loaded != 1 || len(report.Skipped) != 0 {
		t.Errorf("report = %+v, want 1 loaded none skipped", report)
	}
	want := Account{ID: 1001001000, Name: "Alice", Balance: INR(300), pin: "1234"}
	got, ok := l.Account(1001001000)
	if !ok {
		t.Fatal("Account(1001001000) not found")
	}
	if diff := cmp.Diff(want, got, compare); diff != "" {
		t.Errorf("account mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTransactions_ExtraFieldsAreIgnored(t *testing.T) {
	table := TransactionsHeader + ",channel\n" +
		"1,1001001000,DEPOSIT,500,2025-08-01 10:00:00,Deposit,atm\n"
	l := NewLedger()
	if _, err := DecodeTransactions(strings.NewReader(table), l); err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	want := []Transaction{
		{ID: 1, Account: 1001001000, Kind: KindDeposit, Amount: INR(500), Date: date.MustParse("2025-08-01 10:00:00"), Description: "Deposit"},
	}
	if diff := cmp.Diff(want, txLog(l), compare); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeAccounts_LastLineWithoutNewline(t *testing.T) {
	table := "accNumber,name,pin,balance\r\n1001001000,Alice,1234,300\r\n1001001001,Bob,5678,7"
	l := NewLedger()
	report, err := DecodeAccounts(strings.NewReader(table), l)
	if err != nil {
		t.Fatalf("DecodeAccounts() unexpected error: %v", err)
	}
	if report.Loaded != 2 {
		t.Errorf("Loaded = %d, want 2", report.Loaded)
	}
	if !balance(t, l, 1001001001).Equal(INR(7)) {
		t.Errorf("balance = %v, want ₹7.00", balance(t, l, 1001001001))
	}
}

func TestDecodeAccounts_CounterNeverBelowBase(t *testing.T) {
	l := NewLedger()
	table := "accNumber,name,pin,balance\n42,Old,1234,1\n"
	if _, err := DecodeAccounts(strings.NewReader(table), l); err != nil {
		t.Fatal(err)
	}
	if l.NextAccountID() != FirstAccountID {
		t.Errorf("NextAccountID() = %v, want %v", l.NextAccountID(), FirstAccountID)
	}
}

func TestDecodeAccounts_BadNumberStopsTheTable(t *testing.T) {
	table := `accNumber,name,pin,balance
1001001000,Alice,1234,300
1001001001,Bob,5678,lots
1001001002,Carol,0000,10
`
	l := NewLedger()
	report, err := DecodeAccounts(strings.NewReader(table), l)
	if !errors.Is(err, ErrPersistenceRead) {
		t.Fatalf("DecodeAccounts() error = %v, want %v", err, ErrPersistenceRead)
	}
	if report.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", report.Loaded)
	}
	if _, ok := l.Account(1001001000); !ok {
		t.Error("account read before the error was dropped")
	}
	if _, ok := l.Account(1001001002); ok {
		t.Error("account after the error was read")
	}
	if l.NextAccountID() != 1001001001 {
		t.Errorf("NextAccountID() = %v, want 1001001001", l.NextAccountID())
	}
}

func TestDecodeTransactions(t *testing.T) {
	table := `id,accNumber,type,amount,date,description
2,1001001000,TRANSFER_OUT,200.0,2025-08-01 10:00:05,Transfer to 1001001001
1,1001001000,DEPOSIT,500.0,2025-08-01 10:00:00,Deposit
3,1001001001,TRANSFER_IN,200.0,2025-08-01 10:00:05,Transfer from 1001001000
4,1001001001,WITHDRAW,1,2025-08-01 10:00:09
`
	l := NewLedger()
	report, err := DecodeTransactions(strings.NewReader(table), l)
	if err != nil {
		t.Fatalf("DecodeTransactions() unexpected error: %v", err)
	}
	if report.Loaded != 3 || len(report.Skipped) != 1 {
		t.Errorf("report = %+v, want 3 loaded 1 skipped", report)
	}
	want := []Transaction{
		{ID: 1, Account: 1001001000, Kind: KindDeposit, Amount: INR(500), Date: date.MustParse("2025-08-01 10:00:00"), Description: "Deposit"},
		{ID: 2, Account: 1001001000, Kind: KindTransferOut, Amount: INR(200), Date: date.MustParse("2025-08-01 10:00:05"), Description: "Transfer to 1001001001"},
		{ID: 3, Account: 1001001001, Kind: KindTransferIn, Amount: INR(200), Date: date.MustParse("2025-08-01 10:00:05"), Description: "Transfer from 1001001000"},
	}
	if diff := cmp.Diff(want, txLog(l), compare); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if l.NextTxID() != 4 {
		t.Errorf("NextTxID() = %v, want 4", l.NextTxID())
	}
}

func TestDecodeTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name string
		row  string
	}{
		{name: "bad id", row: "x,1001001000,DEPOSIT,1,2025-08-01 10:00:00,Deposit"},
		{name: "bad account", row: "2,acc,DEPOSIT,1,2025-08-01 10:00:00,Deposit"},
		{name: "bad kind", row: "2,1001001000,GIFT,1,2025-08-01 10:00:00,Deposit"},
		{name: "bad amount", row: "2,1001001000,DEPOSIT,1.2.3,2025-08-01 10:00:00,Deposit"},
		{name: "bad date", row: "2,1001001000,DEPOSIT,1,01/08/2025,Deposit"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table := TransactionsHeader + "\n" +
				"1,1001001000,DEPOSIT,1,2025-08-01 10:00:00,Deposit\n" +
				tc.row + "\n" +
				"3,1001001000,DEPOSIT,1,2025-08-01 10:00:00,Deposit\n"
			l := NewLedger()
			_, err := DecodeTransactions(strings.NewReader(table), l)
			if !errors.Is(err, ErrPersistenceRead) {
				t.Fatalf("DecodeTransactions() error = %v, want %v", err, ErrPersistenceRead)
			}
			if l.Len() != 1 {
				t.Errorf("Len() = %d, want 1", l.Len())
			}
		})
	}
}

func TestEncodeAccounts(t *testing.T) {
	l := NewLedger()
	a := mustCreate(t, l, "Doe, John", "1234")
	mustCreate(t, l, "Jane", "0007")
	if _, err := l.Deposit(a.ID, INR(1234.5)); err != nil {
		t.Fatal(err)
	}

	var b bytes.Buffer
	if err := EncodeAccounts(&b, l); err != nil {
		t.Fatalf("EncodeAccounts() unexpected error: %v", err)
	}
	want := `accNumber,name,pin,balance
1001001000,Doe  John,1234,1234.5
1001001001,Jane,0007,0
`
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("EncodeAccounts() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTransactions(t *testing.T) {
	l := NewLedger()
	fixedClock(l, "2025-08-01 10:00:00")
	a := mustCreate(t, l, "Alice", "1234")
	b := mustCreate(t, l, "Bob", "5678")
	l.Deposit(a.ID, INR(500))
	l.Transfer(a.ID, "1234", b.ID, INR(0.25))

	var buf bytes.Buffer
	if err := EncodeTransactions(&buf, l); err != nil {
		t.Fatalf("EncodeTransactions() unexpected error: %v", err)
	}
	want := `id,accNumber,type,amount,date,description
1,1001001000,DEPOSIT,500,2025-08-01 10:00:00,Deposit
2,1001001000,TRANSFER_OUT,0.25,2025-08-01 10:00:00,Transfer to 1001001001
3,1001001001,TRANSFER_IN,0.25,2025-08-01 10:00:00,Transfer from 1001001000
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeTransactions() mismatch (-want +got):\n%s", diff)
	}
}

func TestEscape(t *testing.T) {
	testCases := map[string]string{
		"plain":        "plain",
		"a,b":          "a b",
		",,":           "  ",
		"two\nlines":   "two lines",
		"windows\r\nx": "windows  x",
	}
	for in, want := range testCases {
		if got := escape(in); got != want {
			t.Errorf("escape(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestEncodeDecodeRoundTrip checks that writing then reading the tables gives
// back an equivalent ledger.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	l := NewLedger()
	fixedClock(l, "2025-08-01 10:00:00")
	a := mustCreate(t, l, "Alice, the first", "1234")
	b := mustCreate(t, l, "Bob", "5678")
	l.Deposit(a.ID, INR(500))
	l.Deposit(b.ID, INR(0.07))
	l.Transfer(a.ID, "1234", b.ID, INR(123.45))
	l.Withdraw(b.ID, "5678", INR(3))

	var accounts, transactions bytes.Buffer
	if err := EncodeAccounts(&accounts, l); err != nil {
		t.Fatal(err)
	}
	if err := EncodeTransactions(&transactions, l); err != nil {
		t.Fatal(err)
	}

	got := NewLedger()
	if _, err := DecodeAccounts(&accounts, got); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeTransactions(&transactions, got); err != nil {
		t.Fatal(err)
	}

	var wantAccounts, gotAccounts []Account
	for a := range l.Accounts() {
		a.Name = escape(a.Name)
		wantAccounts = append(wantAccounts, a)
	}
	for a := range got.Accounts() {
		gotAccounts = append(gotAccounts, a)
	}
	if diff := cmp.Diff(wantAccounts, gotAccounts, compare); diff != "" {
		t.Errorf("accounts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(txLog(l), txLog(got), compare); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	if got.NextAccountID() != l.NextAccountID() || got.NextTxID() != l.NextTxID() {
		t.Errorf("counters = %v/%v, want %v/%v", got.NextAccountID(), got.NextTxID(), l.NextAccountID(), l.NextTxID())
	}
}
