package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.DebugLevel)

	l.ConversionCompleted("post.md", "Title", 4, 120)
	l.DraftCreated("post.md", 42, "https://pub.substack.com/publish/post/42", 1500*time.Millisecond)
	l.DraftSkipped("post.md", "unchanged")
	l.PublishFailed("post.md", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{
		"conversion completed",
		"blocks=4",
		"draft created",
		"draft_id=42",
		"duration=1.5s",
		"draft skipped",
		"reason=unchanged",
		"publish failed",
		"error=boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestAuthChecked(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.AuthChecked("cookie", 7, nil)
	l.AuthChecked("password", 0, errors.New("captcha required"))

	out := buf.String()
	if !strings.Contains(out, "authenticated") || !strings.Contains(out, "user_id=7") {
		t.Errorf("expected success entry, got:\n%s", out)
	}
	if !strings.Contains(out, "authentication failed") {
		t.Errorf("expected failure entry, got:\n%s", out)
	}
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf).WithRun("run-123")

	l.DraftSkipped("a.md", "forced off")
	l.Info("hello")

	if got := strings.Count(buf.String(), "run=run-123"); got != 1 {
		t.Errorf("expected run field on info entry only once (debug filtered), got %d:\n%s", got, buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "draftbridge.log")

	l, cleanup, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	l.Info("written")
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic
	Discard().Error("nothing to see", "error", errors.New("x"))
}
