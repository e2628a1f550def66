package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gerunddev/draftbridge/internal/config"
	"github.com/gerunddev/draftbridge/internal/convert"
	"github.com/gerunddev/draftbridge/internal/logger"
	"github.com/gerunddev/draftbridge/internal/state"
	"github.com/gerunddev/draftbridge/internal/substack"
)

// App is the environment every command runs in
type App struct {
	Out    io.Writer
	Getenv func(string) string
	Config *config.Config
	Log    *logger.Logger

	// StatePath is where drafted articles are tracked
	StatePath string

	// Interactive shows the spinner while a draft is created
	Interactive bool

	ClientOptions []substack.Option
	Now           func() time.Time
}

// NewApp builds an App around the loaded config
func NewApp(cfg *config.Config, log *logger.Logger) *App {
	return &App{
		Out:       os.Stdout,
		Getenv:    os.Getenv,
		Config:    cfg,
		Log:       log,
		StatePath: config.StateFilePath(),
		Now:       time.Now,
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}

// loadArticle reads and converts a Markdown file. The returned path is absolute
// with ~ expanded.
func (a *App) loadArticle(file string, o convert.Overrides) (string, *convert.Article, error) {
	path, err := config.ExpandPath(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to expand path: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %s", path)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	article, err := convert.Convert(string(raw), o)
	if err != nil {
		if errors.Is(err, convert.ErrMissingTitle) {
			return "", nil, fmt.Errorf("%w: use --title to specify", err)
		}
		return "", nil, err
	}

	stats := article.Stats()
	a.Log.ConversionCompleted(path, article.Title, stats.Blocks, stats.Words)
	return path, article, nil
}

func (a *App) loadState() (*state.State, error) {
	st, err := state.Load(a.StatePath)
	if err != nil {
		a.Log.StateError("load", err)
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return st, nil
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}
