package cmd

import (
	"fmt"

	"github.com/etnz/minibank"
	"github.com/google/subcommands"
)

// accountFlag is a flag.Value holding an account number.
type accountFlag struct {
	id  minibank.AccountID
	set bool
}

func (a *accountFlag) String() string {
	if a == nil || !a.set {
		return ""
	}
	return a.id.String()
}

func (a *accountFlag) Set(s string) error {
	id, err := minibank.ParseAccountID(s)
	if err != nil {
		return err
	}
	a.id, a.set = id, true
	return nil
}

// flagSet pairs a flag name with whether it was given.
type flagSet struct {
	name string
	set  bool
}

// required reports missing flags on stderr, in order. It returns false if any
// is missing.
func required(flags ...flagSet) bool {
	ok := true
	for _, f := range flags {
		if !f.set {
			fmt.Fprintf(stderr, "Error: -%s is required\n", f.name)
			ok = false
		}
	}
	return ok
}

// parseAmount parses an amount flag in the ledger currency.
func parseAmount(s string) (minibank.Money, bool) {
	amount, err := minibank.ParseMoney(s, Currency())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return minibank.Money{}, false
	}
	return amount, true
}

// update loads the ledger, applies op, saves the ledger and prints op's
// message. Nothing is saved if the ledger could not be fully loaded or if op
// fails.
func update(op func(*minibank.Ledger) (string, error)) subcommands.ExitStatus {
	s, l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	msg, err := op(l)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := s.Save(l); err != nil {
		fmt.Fprintf(stderr, "Error: could not save ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprint(stdout, msg)
	return subcommands.ExitSuccess
}

// view loads the ledger and applies op. A partially loaded ledger is only
// reported as a warning.
func view(op func(*minibank.Ledger) error) subcommands.ExitStatus {
	_, l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: ledger partially loaded: %v\n", err)
	}
	if err := op(l); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
