package commands

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ParseLogFile reads the last N lines from the log file and finds the most
// recent draft and how many drafts those lines record. maxLines below one
// selects nothing.
func ParseLogFile(logPath string, maxLines int) ([]string, time.Time, int) {
	if maxLines < 1 {
		return nil, time.Time{}, 0
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		return []string{"Unable to read log file"}, time.Time{}, 0
	}

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")

	startIdx := 0
	if len(lines) > maxLines {
		startIdx = len(lines) - maxLines
	}
	recentLines := lines[startIdx:]

	var lastDraft time.Time
	drafts := 0

	for i := len(recentLines) - 1; i >= 0; i-- {
		line := recentLines[i]
		if !strings.Contains(line, "draft created") {
			continue
		}
		drafts++

		// Format: 2026-10-17 14:11:57 INFO draft created file=...
		if lastDraft.IsZero() && len(line) > 19 {
			if t, err := time.ParseInLocation(time.DateTime, line[:19], time.Local); err == nil {
				lastDraft = t
			}
		}
	}

	return recentLines, lastDraft, drafts
}

// LogCmd prints recent activity from the log file
type LogCmd struct {
	Lines int `short:"n" default:"20" help:"Number of log lines to show"`
}

func (c *LogCmd) Run(app *App) error {
	if app.Config.LogFile == "" {
		return fmt.Errorf("log_file is not configured")
	}
	if c.Lines < 1 {
		return fmt.Errorf("-n must be positive, got %d", c.Lines)
	}

	lines, lastDraft, drafts := ParseLogFile(app.Config.LogFile, c.Lines)
	for _, line := range lines {
		app.println(line)
	}

	app.println()
	if lastDraft.IsZero() {
		app.println("No drafts in the last " + fmt.Sprint(c.Lines) + " lines")
		return nil
	}
	app.printf("%d draft(s), last at %s\n", drafts, lastDraft.Format(time.DateTime))
	return nil
}
