package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/minibank"
	"github.com/google/subcommands"
)

type createCmd struct {
	name string
	pin  string
}

func (*createCmd) Name() string     { return "create" }
func (*createCmd) Synopsis() string { return "open a new account" }
func (*createCmd) Usage() string {
	return `mb create -name <full name> -pin <4 digits>

  Opens an account with a zero balance and prints its number.
`
}

func (c *createCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "full name of the account holder")
	f.StringVar(&c.pin, "pin", "", "4-digit PIN protecting the account")
}

func (c *createCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return update(func(l *minibank.Ledger) (string, error) {
		a, err := l.CreateAccount(c.name, c.pin)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Account created! Account Number: %v\n", a.ID), nil
	})
}
