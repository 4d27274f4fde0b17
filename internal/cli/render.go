package cli

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/mmynk/gatherings/internal/calculator"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Local().Format("Jan 2, 2006 15:04") },
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"status": func(s calculator.BalanceStatus) string {
		switch s {
		case calculator.StatusIsOwedMoney:
			return "is owed"
		case calculator.StatusOwesMoney:
			return "owes"
		default:
			return "settled"
		}
	},
}).ParseFS(templatesFS, "templates/*.md"))

// printMarkdown renders md for the terminal, or writes it verbatim in plain mode.
func (a *App) printMarkdown(md string) {
	if a.Plain {
		fmt.Fprint(a.Out, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(a.Out, md)
		return
	}
	fmt.Fprint(a.Out, out)
}

func (a *App) printTemplate(name string, data any) error {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	a.printMarkdown(sb.String())
	return nil
}
