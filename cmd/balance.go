package cmd

import (
	"context"
	"flag"

	"github.com/etnz/minibank"
	"github.com/etnz/minibank/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct {
	account accountFlag
	pin     string
}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "show the balance of an account" }
func (*balanceCmd) Usage() string {
	return `mb balance -a <account> -pin <pin>

  Shows the account holder and balance after checking the PIN.
`
}

func (c *balanceCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.account, "a", "account number")
	f.StringVar(&c.pin, "pin", "", "PIN of the account")
}

func (c *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !required(flagSet{"a", c.account.set}) {
		return subcommands.ExitUsageError
	}
	return view(func(l *minibank.Ledger) error {
		a, err := l.ViewBalance(c.account.id, c.pin)
		if err != nil {
			return err
		}
		printMarkdown(renderer.RenderBalance(a))
		return nil
	})
}
