package convert

import (
	"strings"
)

// Frontmatter holds the key/value pairs from a leading --- block
type Frontmatter map[string]string

const (
	frontmatterDelim = "---"
	noteMarker       = "**Note:**"
)

// ParseFrontmatter splits raw into its frontmatter and body.
// Without an opening and a closing delimiter the whole input is body.
func ParseFrontmatter(raw string) (Frontmatter, string) {
	fm := Frontmatter{}
	lines := strings.Split(raw, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterDelim {
		return fm, raw
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelim {
			end = i
			break
		}
	}
	if end == -1 {
		return fm, raw
	}

	for _, line := range lines[1:end] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fm[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	body := strings.Join(lines[end+1:], "\n")
	return fm, strings.TrimSpace(body)
}

// ExtractTitleSubtitle finds the first level-1 heading and the line that
// follows it, returning the rest of the body after them.
//
// Blank lines, note lines and horizontal rules are skipped while scanning.
// The subtitle is the next level-2 heading, or failing that the next line of
// text, used verbatim. Text before the title is not part of the rest.
// When there is no title, title is "" and rest is the whole body.
func ExtractTitleSubtitle(body string) (title, subtitle, rest string) {
	lines := strings.Split(body, "\n")
	restStart := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, noteMarker) {
			continue
		}

		if title == "" && strings.HasPrefix(trimmed, "# ") {
			title = strings.TrimSpace(trimmed[2:])
			restStart = i + 1
			continue
		}

		if trimmed == frontmatterDelim {
			continue
		}

		if title != "" {
			if strings.HasPrefix(trimmed, "## ") {
				subtitle = strings.TrimSpace(trimmed[3:])
			} else {
				subtitle = trimmed
			}
			restStart = i + 1
			break
		}
	}

	rest = strings.TrimSpace(strings.Join(lines[restStart:], "\n"))
	return title, subtitle, rest
}

// Get returns the trimmed value for key, or "" when absent
func (fm Frontmatter) Get(key string) string {
	return strings.TrimSpace(fm[key])
}
