package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/gerunddev/draftbridge/internal/convert"
	"github.com/gerunddev/draftbridge/internal/state"
	"github.com/gerunddev/draftbridge/internal/styles"
	"github.com/gerunddev/draftbridge/internal/tui"
)

// StatusCmd lists tracked drafts
type StatusCmd struct {
	Browse bool `short:"b" help:"Browse drafts interactively and preview their changes"`
}

func (c *StatusCmd) Run(app *App) error {
	st, err := app.loadState()
	if err != nil {
		return err
	}

	entries := st.Entries()
	if len(entries) == 0 {
		app.println(styles.DimStyle.Render("No drafts yet. Run 'draftbridge publish --file FILE' to create one."))
		return nil
	}

	rows := app.draftRows(st, entries)
	if c.Browse && app.Interactive {
		return app.browse(st, rows)
	}

	app.println(styles.TitleStyle.Render("Drafts") + styles.DimStyle.Render(" ("+humanize.Comma(int64(len(entries)))+")"))
	app.println()

	for _, r := range rows {
		marker := styles.SuccessStyle.Render("✓")
		note := ""
		switch r.Status {
		case "missing":
			marker = styles.ErrorStyle.Render("✗")
			note = styles.ErrorStyle.Render(" (source missing)")
		case "changed":
			marker = styles.WarningStyle.Render("●")
			note = styles.WarningStyle.Render(" (changed since draft)")
		}

		app.printf("%s %s%s\n", marker, styles.HighlightStyle.Render(r.Title), note)
		app.printf("  %s\n", styles.LinkStyle.Render(r.URL))
		app.printf("  %s\n", styles.DimStyle.Render(r.Path+" · drafted "+r.Age))
	}
	return nil
}

func (a *App) draftRows(st *state.State, entries []state.Entry) []tui.DraftRow {
	rows := make([]tui.DraftRow, 0, len(entries))
	for _, e := range entries {
		status := "drafted"
		changed, err := st.HasChanged(e.Path)
		switch {
		case err != nil:
			status = "missing"
		case changed:
			status = "changed"
		}

		rows = append(rows, tui.DraftRow{
			Path:   e.Path,
			Title:  e.Title,
			URL:    e.DraftURL,
			Age:    humanize.RelTime(e.DraftedAt, a.now(), "ago", "from now"),
			Status: status,
		})
	}
	return rows
}

func (a *App) browse(st *state.State, rows []tui.DraftRow) error {
	diffFunc := func(path string) (string, error) {
		prev := st.Get(path)
		if prev == nil {
			return "", fmt.Errorf("not drafted yet: %s", path)
		}
		_, article, err := a.loadArticle(path, convert.Overrides{Title: prev.Title})
		if err != nil {
			return "", err
		}
		return a.bodyDiff(path, prev, article, false), nil
	}

	p := tea.NewProgram(tui.InitBrowseModel(rows, diffFunc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
