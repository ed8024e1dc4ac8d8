package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/minibank"
	"github.com/etnz/minibank/renderer"
	"github.com/google/subcommands"
)

type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "run the interactive banking console" }
func (*shellCmd) Usage() string {
	return `mb shell

  Runs the interactive console. The ledger is loaded once at start and saved
  only when leaving with "Save & Exit". Leaving any other way, for instance
  with Ctrl-D, discards the session.
`
}

func (c *shellCmd) SetFlags(f *flag.FlagSet) {}

func (c *shellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: ledger partially loaded, saving will only keep what was read: %v\n", err)
	}
	sh := newConsole(l, stdin, stdout)
	if !sh.Run() {
		return subcommands.ExitSuccess
	}
	if err := s.Save(l); err != nil {
		fmt.Fprintf(stderr, "Error: could not save ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, "Data saved. Exiting...")
	return subcommands.ExitSuccess
}

// console is the numbered menu loop over a ledger.
type console struct {
	l   *minibank.Ledger
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(l *minibank.Ledger, in io.Reader, out io.Writer) *console {
	return &console{l: l, in: bufio.NewScanner(in), out: out}
}

// Run serves the menu until the user picks "Save & Exit", in which case it
// returns true, or until the input ends.
func (c *console) Run() bool {
	fmt.Fprintln(c.out, "=== MiniBank Console ===")
	for {
		c.printMenu()
		choice, ok := c.readLine()
		if !ok {
			fmt.Fprintln(c.out, "\nEnd of input. Exiting without saving.")
			return false
		}
		switch choice {
		case "1":
			c.createAccount()
		case "2":
			c.deposit()
		case "3":
			c.withdraw()
		case "4":
			c.transfer()
		case "5":
			c.viewBalance()
		case "6":
			c.viewHistory()
		case "7":
			return true
		default:
			fmt.Fprintln(c.out, "Invalid option. Try again.")
		}
	}
}

func (c *console) printMenu() {
	fmt.Fprint(c.out, `
Select an option:
1. Create Account
2. Deposit
3. Withdraw
4. Transfer
5. View Balance
6. View Transaction History
7. Save & Exit
> `)
}

func (c *console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *console) prompt(msg string) (string, bool) {
	fmt.Fprint(c.out, msg)
	return c.readLine()
}

func (c *console) createAccount() {
	name, ok := c.prompt("Enter full name: ")
	if !ok {
		return
	}
	if name == "" {
		fmt.Fprintln(c.out, "Name cannot be empty.")
		return
	}
	for {
		pin, ok := c.prompt("Choose 4-digit PIN: ")
		if !ok {
			return
		}
		a, err := c.l.CreateAccount(name, pin)
		if errors.Is(err, minibank.ErrInvalidInput) {
			fmt.Fprintln(c.out, "PIN must be exactly 4 digits.")
			continue
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Account created! Account Number: %v\n", a.ID)
		return
	}
}

// promptAccount reads an account number and checks that the account exists.
func (c *console) promptAccount(msg string) (minibank.AccountID, bool) {
	s, ok := c.prompt(msg)
	if !ok {
		return 0, false
	}
	id, err := minibank.ParseAccountID(s)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid account number.")
		return 0, false
	}
	if _, ok := c.l.Account(id); !ok {
		fmt.Fprintln(c.out, "Account not found.")
		return 0, false
	}
	return id, true
}

// promptAccountWithPin reads an account number then its PIN.
func (c *console) promptAccountWithPin(msg string) (minibank.AccountID, string, bool) {
	id, ok := c.promptAccount(msg)
	if !ok {
		return 0, "", false
	}
	pin, ok := c.prompt("Enter PIN: ")
	if !ok {
		return 0, "", false
	}
	if err := c.l.Authorize(id, pin); err != nil {
		fmt.Fprintln(c.out, "Incorrect PIN.")
		return 0, "", false
	}
	return id, pin, true
}

func (c *console) promptAmount(msg string) (minibank.Money, bool) {
	s, ok := c.prompt(msg)
	if !ok {
		return minibank.Money{}, false
	}
	amount, err := minibank.ParseMoney(s, c.l.Currency())
	if err != nil {
		fmt.Fprintln(c.out, "Invalid amount.")
		return minibank.Money{}, false
	}
	if !amount.IsPositive() {
		fmt.Fprintln(c.out, "Amount must be positive.")
		return minibank.Money{}, false
	}
	return amount, true
}

// fail prints an operation error the way the console words them.
func (c *console) fail(id minibank.AccountID, err error) {
	switch {
	case errors.Is(err, minibank.ErrInsufficientFunds):
		a, _ := c.l.Account(id)
		fmt.Fprintf(c.out, "Insufficient funds. Current balance: %v\n", a.Balance)
	case errors.Is(err, minibank.ErrInvalidAmount):
		fmt.Fprintln(c.out, "Invalid amount.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func (c *console) deposit() {
	id, ok := c.promptAccount("Enter account number to deposit to: ")
	if !ok {
		return
	}
	amount, ok := c.promptAmount("Enter amount to deposit: ")
	if !ok {
		return
	}
	a, err := c.l.Deposit(id, amount)
	if err != nil {
		c.fail(id, err)
		return
	}
	fmt.Fprintf(c.out, "Deposited %v to %v. New balance: %v\n", amount, a.ID, a.Balance)
}

func (c *console) withdraw() {
	id, pin, ok := c.promptAccountWithPin("Enter account number to withdraw from: ")
	if !ok {
		return
	}
	amount, ok := c.promptAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}
	a, err := c.l.Withdraw(id, pin, amount)
	if err != nil {
		c.fail(id, err)
		return
	}
	fmt.Fprintf(c.out, "Withdrew %v. New balance: %v\n", amount, a.Balance)
}

func (c *console) transfer() {
	from, pin, ok := c.promptAccountWithPin("Enter your account number (from): ")
	if !ok {
		return
	}
	s, ok := c.prompt("Enter recipient account number (to): ")
	if !ok {
		return
	}
	to, err := minibank.ParseAccountID(s)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid account number.")
		return
	}
	if _, ok := c.l.Account(to); !ok {
		fmt.Fprintln(c.out, "Recipient account not found.")
		return
	}
	amount, ok := c.promptAmount("Enter amount to transfer: ")
	if !ok {
		return
	}
	a, err := c.l.Transfer(from, pin, to, amount)
	if err != nil {
		c.fail(from, err)
		return
	}
	fmt.Fprintf(c.out, "Transferred %v to %v\n", amount, to)
	fmt.Fprintf(c.out, "Your new balance: %v\n", a.Balance)
}

func (c *console) viewBalance() {
	id, pin, ok := c.promptAccountWithPin("Enter account number to view balance: ")
	if !ok {
		return
	}
	a, err := c.l.ViewBalance(id, pin)
	if err != nil {
		c.fail(id, err)
		return
	}
	fmt.Fprintf(c.out, "Account: %v | Name: %s | Balance: %v\n", a.ID, a.Name, a.Balance)
}

func (c *console) viewHistory() {
	id, pin, ok := c.promptAccountWithPin("Enter account number to view transactions: ")
	if !ok {
		return
	}
	history, err := c.l.ViewHistory(id, pin)
	if err != nil {
		c.fail(id, err)
		return
	}
	fmt.Fprintf(c.out, "\nTransactions for %v (most recent first):\n", id)
	fmt.Fprint(c.out, renderer.HistoryMarkdown(history))
}
