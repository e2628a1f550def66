package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/draftbridge/internal/convert"
	"github.com/gerunddev/draftbridge/internal/styles"
)

// PreviewCmd shows what a draft would contain without sending it
type PreviewCmd struct {
	File     string `short:"f" required:"" help:"Path to Markdown file"`
	Title    string `short:"t" help:"Override title"`
	Subtitle string `short:"s" help:"Override subtitle"`
	Format   string `enum:"text,json,yaml" default:"text" help:"Output format (text, json, yaml)"`
	Render   bool   `help:"Render the body as Markdown in the terminal"`
}

// draftPreview is the dumped form of a converted article
type draftPreview struct {
	Title    string       `json:"title" yaml:"title"`
	Subtitle string       `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Body     convert.Node `json:"body" yaml:"body"`
}

func (c *PreviewCmd) Run(app *App) error {
	_, article, err := app.loadArticle(c.File, convert.Overrides{Title: c.Title, Subtitle: c.Subtitle})
	if err != nil {
		return err
	}

	switch c.Format {
	case "json":
		data, err := json.MarshalIndent(draftPreview{article.Title, article.Subtitle, article.Doc}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		app.println(string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(draftPreview{article.Title, article.Subtitle, article.Doc})
		if err != nil {
			return fmt.Errorf("failed to marshal preview: %w", err)
		}
		app.printf("%s", data)
		return nil
	}

	app.printPreview(article)
	if c.Render {
		app.println(renderMarkdown(article.Body, app.Config.WordWrap))
	}
	return nil
}

// printPreview is the dry-run summary of an article
func (a *App) printPreview(article *convert.Article) {
	stats := article.Stats()
	limit := a.Config.PreviewChars

	a.println(styles.TitleStyle.Render("DRY RUN - Preview of Substack draft"))
	a.println()
	a.println(styles.LabelStyle.Render("Title:") + " " + article.Title)
	a.println(styles.LabelStyle.Render("Subtitle:") + " " + article.Subtitle)
	a.println()
	a.println(styles.LabelStyle.Render("Words:") + " " + humanize.Comma(int64(stats.Words)))
	a.println(styles.LabelStyle.Render("Read time:") + " " + fmt.Sprintf("%d min", stats.ReadMinutes))
	a.println(styles.LabelStyle.Render("Blocks:") + " " + humanize.Comma(int64(stats.Blocks)))
	a.println()
	a.println(styles.DimStyle.Render(fmt.Sprintf("Body preview (first %d chars):", limit)))
	a.println(styles.PreviewStyle.Render(truncate(article.Body, limit)))
	a.println()
	a.println(styles.WarningStyle.Render("[DRY RUN - No draft created]"))
}

// truncate cuts s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), " \n") + "..."
}

func renderMarkdown(body string, wrap int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return body
	}

	rendered, err := renderer.Render(body)
	if err != nil {
		return body
	}
	return rendered
}
