// Package renderer turns ledger snapshots into markdown and HTML documents.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/minibank"
)

//go:embed templates/*.md
var templates embed.FS

// escapeMarkdown keeps user text literal in markdown.
var escapeMarkdown = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"~", `\~`,
).Replace

var funcs = template.FuncMap{
	"md": escapeMarkdown,
}

// RenderBalance renders an account snapshot to a markdown string.
func RenderBalance(a minibank.Account) string {
	partials := map[string]string{
		"account_title": "templates/account_title.md",
	}
	return renderTemplate("balance", "templates/balance.md", partials, a)
}

// statement is the data of the statement template.
type statement struct {
	minibank.Account
	History string // markdown table, most recent first
}

// RenderStatement renders an account snapshot followed by its history.
//
// history is expected most recent first, as returned by Ledger.ViewHistory.
func RenderStatement(a minibank.Account, history []minibank.Transaction) string {
	partials := map[string]string{
		"account_title": "templates/account_title.md",
	}
	return renderTemplate("statement", "templates/statement.md", partials, statement{
		Account: a,
		History: HistoryMarkdown(history),
	})
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
