package commands

import (
	"fmt"
	"path/filepath"

	"github.com/gerunddev/draftbridge/internal/config"
	"github.com/gerunddev/draftbridge/internal/convert"
	"github.com/gerunddev/draftbridge/internal/diff"
	"github.com/gerunddev/draftbridge/internal/state"
	"github.com/gerunddev/draftbridge/internal/styles"
)

// DiffCmd shows how a file's body changed since its last draft
type DiffCmd struct {
	File     string `short:"f" required:"" help:"Path to Markdown file"`
	Title    string `short:"t" help:"Override title (defaults to the drafted title)"`
	Subtitle string `short:"s" help:"Override subtitle"`
	Plain    bool   `help:"Print the unified diff without rendering"`
}

func (c *DiffCmd) Run(app *App) error {
	path, err := config.ExpandPath(c.File)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	st, err := app.loadState()
	if err != nil {
		return err
	}

	prev := st.Get(path)
	if prev == nil {
		app.println(styles.DimStyle.Render("Not drafted yet: " + path))
		return nil
	}

	// A draft made with --title from a file without a heading still converts
	o := convert.Overrides{Title: prev.Title, Subtitle: c.Subtitle}
	if c.Title != "" {
		o.Title = c.Title
	}
	_, article, err := app.loadArticle(path, o)
	if err != nil {
		return err
	}

	out := app.bodyDiff(path, prev, article, c.Plain)
	if out == "" {
		app.println(styles.SuccessStyle.Render("✓ No changes since last draft"))
		return nil
	}
	app.printf("%s", out)
	return nil
}

// bodyDiff compares the drafted body with the current conversion
func (a *App) bodyDiff(path string, prev *state.DraftState, article *convert.Article, plain bool) string {
	name := filepath.Base(path)
	if plain {
		return diff.Unified(prev.Body, article.Body, name)
	}
	return diff.Generate(prev.Body, article.Body, name, a.Config.WordWrap)
}
