package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/gerunddev/draftbridge/internal/config"
	"github.com/gerunddev/draftbridge/internal/convert"
	"github.com/gerunddev/draftbridge/internal/state"
	"github.com/gerunddev/draftbridge/internal/styles"
	"github.com/gerunddev/draftbridge/internal/substack"
	"github.com/gerunddev/draftbridge/internal/tui"
)

var errCanceled = errors.New("canceled")

// PublishCmd converts a Markdown file and creates a Substack draft from it
type PublishCmd struct {
	File     string `short:"f" required:"" help:"Path to Markdown file"`
	Title    string `short:"t" help:"Override title"`
	Subtitle string `short:"s" help:"Override subtitle"`
	DryRun   bool   `help:"Show preview without creating draft"`
	Force    bool   `help:"Create a draft even if the file is unchanged since its last draft"`
}

func (c *PublishCmd) Run(ctx context.Context, app *App) error {
	path, article, err := app.loadArticle(c.File, convert.Overrides{Title: c.Title, Subtitle: c.Subtitle})
	if err != nil {
		return err
	}

	if c.DryRun {
		app.printPreview(article)
		return nil
	}

	creds, err := config.LoadCredentials(app.Getenv)
	if err != nil {
		app.printSetupHints(err)
		return err
	}

	var st *state.State
	if app.Config.TrackState {
		if st, err = app.loadState(); err != nil {
			return err
		}
		if skip, err := app.unchanged(st, path, c.Force); err != nil || skip {
			return err
		}
	}

	log := app.Log.WithRun(uuid.NewString())

	app.printf("Creating draft: %s\n", styles.HighlightStyle.Render(article.Title))
	app.printf("Subtitle: %s\n", article.Subtitle)
	app.printf("Content blocks: %d\n", len(article.Blocks))

	var result *tui.PublishResult
	if app.Interactive {
		result, err = app.publishWithSpinner(ctx, creds, article)
	} else {
		result, err = app.createDraft(ctx, creds, article, func(string) {})
	}
	if err != nil {
		log.PublishFailed(path, err)
		return fmt.Errorf("failed to create draft: %w", err)
	}
	log.DraftCreated(path, result.DraftID, result.DraftURL, result.Duration)

	app.println()
	app.println(styles.SuccessStyle.Render("SUCCESS! Draft created."))
	app.println()
	app.println("Draft URL: " + styles.LinkStyle.Render(result.DraftURL))
	app.println()
	app.println("Next steps:")
	app.println("1. Open the link above")
	app.println("2. Add any images")
	app.println("3. Preview and publish when ready")

	if st == nil {
		return nil
	}

	entry := state.DraftState{
		DraftID:   result.DraftID,
		DraftURL:  result.DraftURL,
		Title:     article.Title,
		DraftedAt: app.now(),
		Body:      article.Body,
	}
	if err := st.Record(path, entry); err != nil {
		log.StateError("record", err)
		return fmt.Errorf("draft created but state not recorded: %w", err)
	}
	if err := st.Save(app.StatePath); err != nil {
		log.StateError("save", err)
		return fmt.Errorf("draft created but state not saved: %w", err)
	}
	return nil
}

// unchanged reports whether the draft should be skipped because the file has
// not changed since it was last drafted
func (a *App) unchanged(st *state.State, path string, force bool) (bool, error) {
	prev := st.Get(path)
	if prev == nil {
		return false, nil
	}
	if force {
		a.Log.Debug("forcing new draft", "file", path, "previous", prev.DraftID)
		return false, nil
	}

	changed, err := st.HasChanged(path)
	if err != nil {
		return false, fmt.Errorf("failed to check for changes: %w", err)
	}
	if changed {
		return false, nil
	}

	a.Log.DraftSkipped(path, "unchanged since last draft")
	a.println(styles.WarningStyle.Render("Unchanged since last draft: ") + prev.DraftURL)
	a.println(styles.DimStyle.Render("  Use --force to create another draft"))
	return true, nil
}

// createDraft authenticates, resolves the author and sends the draft.
// status receives progress lines.
func (a *App) createDraft(ctx context.Context, creds *config.Credentials, article *convert.Article, status func(string)) (*tui.PublishResult, error) {
	start := time.Now()

	client, err := substack.NewClient(ctx, creds, a.ClientOptions...)
	if err != nil {
		return nil, err
	}

	status("Fetching account...")
	userID, err := client.UserID(ctx)
	if err != nil {
		return nil, err
	}

	status("Creating draft...")
	id, err := client.CreateDraft(ctx, substack.Draft{
		Title:    article.Title,
		Subtitle: article.Subtitle,
		Body:     article.Doc,
		AuthorID: userID,
		Audience: a.Config.Audience,
	})
	if err != nil {
		return nil, err
	}

	return &tui.PublishResult{
		DraftID:  id,
		DraftURL: client.DraftURL(id),
		Duration: time.Since(start),
	}, nil
}

func (a *App) publishWithSpinner(ctx context.Context, creds *config.Credentials, article *convert.Article) (*tui.PublishResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(tui.InitPublishModel(article.Title), tea.WithOutput(os.Stderr))

	go func() {
		result, err := a.createDraft(ctx, creds, article, func(s string) {
			p.Send(tui.StatusMsg(s))
		})
		p.Send(tui.PublishMsg{Result: result, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("spinner failed: %w", err)
	}

	m := final.(tui.PublishModel)
	if m.Canceled() {
		return nil, errCanceled
	}
	return m.Result()
}

// Hints printed when credentials are missing
func (a *App) printSetupHints(err error) {
	a.println(styles.ErrorStyle.Render("ERROR: " + err.Error()))
	if errors.Is(err, config.ErrMissingPublicationURL) {
		a.println("\nAdd to ~/.zshrc:")
		a.printf("  export %s=\"https://yourpub.substack.com\"\n", config.EnvPublicationURL)
		return
	}
	a.println("\nOption 1 - Cookie auth (recommended):")
	a.printf("  export %s=\"substack.sid=your_cookie_value\"\n", config.EnvCookie)
	a.println("\nOption 2 - Password auth:")
	a.printf("  export %s=\"your-email\"\n", config.EnvEmail)
	a.printf("  export %s=\"your-password\"\n", config.EnvPassword)
	a.println("\nThen run: source ~/.zshrc")
}
