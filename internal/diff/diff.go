package diff

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns the unified diff between two article bodies, or "" if
// they are equal
func Unified(oldBody, newBody, name string) string {
	if oldBody == newBody {
		return ""
	}
	oldBody = withTrailingNewline(oldBody)
	newBody = withTrailingNewline(newBody)

	edits := myers.ComputeEdits(span.URIFromPath(name), oldBody, newBody)
	return fmt.Sprint(gotextdiff.ToUnified(name+" (drafted)", name, oldBody, edits))
}

// Generate renders the body changes since the last draft for the terminal.
// Falls back to the plain fenced diff if glamour cannot render it.
func Generate(oldBody, newBody, name string, wrap int) string {
	unified := Unified(oldBody, newBody, name)
	if unified == "" {
		return ""
	}

	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}

	return rendered
}

func withTrailingNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
