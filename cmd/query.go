package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/minibank"
	"github.com/google/subcommands"
)

type queryCmd struct {
	query string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the ledger with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `mb query -q <jsonpath>

  Evaluates a JSONPath expression on the JSON view of the ledger and prints
  the result as JSON. PINs are not part of the view.

  Examples:
    mb query -q '$.accounts[*].name'
    mb query -q '$.transactions[?(@.type=="DEPOSIT")].amount'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "$", "JSONPath expression")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return view(func(l *minibank.Ledger) error {
		result, err := query(l, c.query)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(result))
		return nil
	})
}

// query evaluates path on the JSON view of l and returns the result as indented JSON.
func query(l *minibank.Ledger, path string) ([]byte, error) {
	content, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("could not encode ledger: %w", err)
	}
	var doc any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("could not decode ledger view: %w", err)
	}
	value, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", path, err)
	}
	return json.MarshalIndent(value, "", "  ")
}
