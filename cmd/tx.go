package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/minibank"
	"github.com/google/subcommands"
)

type depositCmd struct {
	account accountFlag
	amount  string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit money into an account" }
func (*depositCmd) Usage() string {
	return `mb deposit -a <account> -amount <amount>

  Credits an account. No PIN is needed to deposit.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.account, "a", "account number")
	f.StringVar(&c.amount, "amount", "", "amount to deposit, e.g. 500 or 12.50")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !required(flagSet{"a", c.account.set}, flagSet{"amount", c.amount != ""}) {
		return subcommands.ExitUsageError
	}
	amount, ok := parseAmount(c.amount)
	if !ok {
		return subcommands.ExitUsageError
	}
	return update(func(l *minibank.Ledger) (string, error) {
		a, err := l.Deposit(c.account.id, amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deposited %v to %v. New balance: %v\n", amount, a.ID, a.Balance), nil
	})
}

type withdrawCmd struct {
	account accountFlag
	pin     string
	amount  string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw money from an account" }
func (*withdrawCmd) Usage() string {
	return `mb withdraw -a <account> -pin <pin> -amount <amount>

  Debits an account after checking its PIN. The balance cannot go below zero.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.account, "a", "account number")
	f.StringVar(&c.pin, "pin", "", "PIN of the account")
	f.StringVar(&c.amount, "amount", "", "amount to withdraw")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !required(flagSet{"a", c.account.set}, flagSet{"amount", c.amount != ""}) {
		return subcommands.ExitUsageError
	}
	amount, ok := parseAmount(c.amount)
	if !ok {
		return subcommands.ExitUsageError
	}
	return update(func(l *minibank.Ledger) (string, error) {
		a, err := l.Withdraw(c.account.id, c.pin, amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Withdrew %v. New balance: %v\n", amount, a.Balance), nil
	})
}

type transferCmd struct {
	from   accountFlag
	to     accountFlag
	pin    string
	amount string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "transfer money between accounts" }
func (*transferCmd) Usage() string {
	return `mb transfer -a <from> -pin <pin> -to <to> -amount <amount>

  Moves money from one account to another. Only the sender PIN is needed.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.from, "a", "sender account number")
	f.StringVar(&c.pin, "pin", "", "PIN of the sender account")
	f.Var(&c.to, "to", "recipient account number")
	f.StringVar(&c.amount, "amount", "", "amount to transfer")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !required(flagSet{"a", c.from.set}, flagSet{"to", c.to.set}, flagSet{"amount", c.amount != ""}) {
		return subcommands.ExitUsageError
	}
	amount, ok := parseAmount(c.amount)
	if !ok {
		return subcommands.ExitUsageError
	}
	return update(func(l *minibank.Ledger) (string, error) {
		a, err := l.Transfer(c.from.id, c.pin, c.to.id, amount)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Transferred %v to %v\nYour new balance: %v\n", amount, c.to.id, a.Balance), nil
	})
}
