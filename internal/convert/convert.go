// Package convert turns a Markdown article into the editor document tree used
// for drafts: frontmatter and title extraction, block parsing, inline marks,
// table rendering and final node assembly.
//
// Conversion never fails on malformed Markdown. Constructs that don't parse
// degrade to paragraphs or literal text, and an unterminated code fence closes
// at end of input. The only error is ErrMissingTitle.
package convert

import (
	"errors"
	"strings"
)

// ErrMissingTitle is returned when no title was supplied and none could be
// found in the frontmatter or the body
var ErrMissingTitle = errors.New("could not determine title")

const wordsPerMinute = 200

// Overrides takes precedence over anything found in the document
type Overrides struct {
	Title    string
	Subtitle string
}

// Article is the result of converting one Markdown document
type Article struct {
	Title       string
	Subtitle    string
	Frontmatter Frontmatter
	Body        string
	Blocks      []Block
	Doc         Node
}

// Stats summarizes an article for previews
type Stats struct {
	Words       int
	ReadMinutes int
	Blocks      int
}

// Convert runs the full pipeline over raw Markdown.
// Title and subtitle come from the overrides, then the frontmatter, then the
// body headings.
func Convert(raw string, o Overrides) (*Article, error) {
	fm, body := ParseFrontmatter(raw)
	title, subtitle, rest := ExtractTitleSubtitle(body)

	title = firstNonEmpty(o.Title, fm.Get("title"), title)
	subtitle = firstNonEmpty(o.Subtitle, fm.Get("subtitle"), subtitle)
	if title == "" {
		return nil, ErrMissingTitle
	}

	blocks := ParseBlocks(rest)
	return &Article{
		Title:       title,
		Subtitle:    subtitle,
		Frontmatter: fm,
		Body:        rest,
		Blocks:      blocks,
		Doc:         Assemble(blocks),
	}, nil
}

// Stats counts words in the body and estimates the read time
func (a *Article) Stats() Stats {
	words := len(strings.Fields(a.Body))
	return Stats{
		Words:       words,
		ReadMinutes: max(1, words/wordsPerMinute),
		Blocks:      len(a.Blocks),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
