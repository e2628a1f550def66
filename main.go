package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/gerunddev/draftbridge/internal/commands"
	"github.com/gerunddev/draftbridge/internal/config"
	"github.com/gerunddev/draftbridge/internal/logger"
	"github.com/gerunddev/draftbridge/internal/styles"
)

const version = "0.1.0"

var cli struct {
	Verbose bool `short:"v" help:"Log debug output to stderr instead of the log file"`

	Publish commands.PublishCmd `cmd:"" help:"Convert a Markdown file and create a Substack draft"`
	Preview commands.PreviewCmd `cmd:"" help:"Show the converted draft without sending it"`
	Auth    commands.AuthCmd    `cmd:"" help:"Check credentials and test authentication"`
	Status  commands.StatusCmd  `cmd:"" help:"List drafted articles"`
	Diff    commands.DiffCmd    `cmd:"" help:"Show body changes since the last draft"`
	Log     commands.LogCmd     `cmd:"" help:"Show recent activity from the log file"`
	Version versionCmd          `cmd:"" help:"Show version information"`
}

type versionCmd struct{}

func (versionCmd) Run() error {
	fmt.Printf("draftbridge v%s\n", version)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	kctx := kong.Parse(&cli,
		kong.Name("draftbridge"),
		kong.Description(fmt.Sprintf(`Turn Markdown articles into Substack drafts

Configuration:
  Config file: %s
  State file:  %s`, config.ConfigPath(), config.StateFilePath())),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ Failed to load config: "+err.Error()))
		return 1
	}

	var lg *logger.Logger
	switch {
	case cli.Verbose:
		lg = logger.NewWithLevel(os.Stderr, log.DebugLevel)
	case cfg.LogFile != "":
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile)
		if err == nil {
			defer cleanup()
			lg = l
		} else {
			lg = logger.Discard()
		}
	default:
		lg = logger.Discard()
	}
	lg.ConfigLoaded(config.ConfigPath(), cfg.Audience)

	app := commands.NewApp(cfg, lg)
	app.Interactive = isatty.IsTerminal(os.Stderr.Fd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(app); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		return 1
	}
	return 0
}
