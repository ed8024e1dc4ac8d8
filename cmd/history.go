package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/minibank"
	"github.com/etnz/minibank/renderer"
	"github.com/google/subcommands"
)

type historyCmd struct {
	account accountFlag
	pin     string
	html    string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the transactions of an account" }
func (*historyCmd) Usage() string {
	return `mb history -a <account> -pin <pin> [-html <file>]

  Lists the transactions of an account, most recent first, after checking the
  PIN. With -html, the statement is written to an HTML file instead.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.account, "a", "account number")
	f.StringVar(&c.pin, "pin", "", "PIN of the account")
	f.StringVar(&c.html, "html", "", "write the statement as HTML to this file")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !required(flagSet{"a", c.account.set}) {
		return subcommands.ExitUsageError
	}
	return view(func(l *minibank.Ledger) error {
		history, err := l.ViewHistory(c.account.id, c.pin)
		if err != nil {
			return err
		}
		a, _ := l.Account(c.account.id)
		statement := renderer.RenderStatement(a, history)
		if c.html == "" {
			printMarkdown(statement)
			return nil
		}
		page, err := renderer.HTML(fmt.Sprintf("Statement of account %v", a.ID), statement)
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			return fmt.Errorf("could not write statement: %w", err)
		}
		fmt.Fprintf(stdout, "Statement written to %s\n", c.html)
		return nil
	})
}
