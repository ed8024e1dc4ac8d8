package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/minibank"
	md "github.com/nao1215/markdown"
)

// HistoryMarkdown renders transactions as a markdown table, in the given order.
func HistoryMarkdown(history []minibank.Transaction) string {
	if len(history) == 0 {
		return "No transactions yet.\n"
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"ID", "Type", "Amount", "Date", "Description"},
		Rows:   [][]string{},
	}
	for _, tx := range history {
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(int64(tx.ID), 10),
			string(tx.Kind),
			signed(tx),
			tx.Date.String(),
			escapeMarkdown(tx.Description),
		})
	}
	doc.Table(table)

	return doc.String()
}

// signed formats the amount with the sign of its effect on the account.
func signed(tx minibank.Transaction) string {
	if tx.Kind.Credit() {
		return "+" + tx.Amount.String()
	}
	return "-" + tx.Amount.String()
}
