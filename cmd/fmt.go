package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/minibank"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	check bool
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the ledger tables into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `mb fmt [-check]

  Reads both tables and writes them back in canonical form: transactions in
  id order, amounts with all their digits, lines with a wrong number of
  fields dropped. Tables that cannot be fully read are left untouched.

  With -check, nothing is written and the command fails if a table is not
  in canonical form.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.check, "check", false, "only report tables that are not formatted")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, l, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	accounts, transactions := s.Paths()
	var unformatted []string
	for _, t := range []struct {
		path   string
		encode func(io.Writer, *minibank.Ledger) error
	}{
		{accounts, minibank.EncodeAccounts},
		{transactions, minibank.EncodeTransactions},
	} {
		ok, err := formatted(t.path, l, t.encode)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if !ok {
			unformatted = append(unformatted, t.path)
		}
	}

	if c.check {
		for _, path := range unformatted {
			fmt.Fprintf(stdout, "%s is not formatted\n", path)
		}
		if len(unformatted) > 0 {
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	if len(unformatted) == 0 {
		return subcommands.ExitSuccess
	}
	if err := s.Save(l); err != nil {
		fmt.Fprintf(stderr, "Error: could not save ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, path := range unformatted {
		fmt.Fprintf(stdout, "Formatted %s\n", path)
	}
	return subcommands.ExitSuccess
}

// formatted reports whether the file at path is exactly what encode writes for l.
func formatted(path string, l *minibank.Ledger, encode func(io.Writer, *minibank.Ledger) error) (bool, error) {
	current, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("could not read %q: %w", path, err)
	}
	var canonical bytes.Buffer
	if err := encode(&canonical, l); err != nil {
		return false, err
	}
	return bytes.Equal(current, canonical.Bytes()), nil
}
