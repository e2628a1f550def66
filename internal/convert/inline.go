package convert

import (
	"regexp"
	"strings"
)

// MarkType identifies an inline annotation on a span
type MarkType string

const (
	MarkStrong MarkType = "strong"
	MarkEm     MarkType = "em"
	MarkCode   MarkType = "code"
	MarkLink   MarkType = "link"
)

// Mark is a single inline annotation. Href is only set for links.
type Mark struct {
	Type MarkType
	Href string
}

// Span is a run of text sharing the same marks
type Span struct {
	Text  string
	Marks []Mark
}

// Inline is the formatted content of a block: either plain text (Spans is nil)
// or an ordered sequence of spans.
type Inline struct {
	Text  string
	Spans []Span
}

// Plain builds plain inline content
func Plain(text string) Inline {
	return Inline{Text: text}
}

// IsPlain reports whether the content carries no spans
func (in Inline) IsPlain() bool {
	return in.Spans == nil
}

// PlainText concatenates the text of every span, ignoring marks
func (in Inline) PlainText() string {
	if in.IsPlain() {
		return in.Text
	}
	var b strings.Builder
	for _, s := range in.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Precedence is the alternation order: bold, italic, code, link.
// Go's regexp is leftmost-first for alternations, so the first pattern that
// matches at a position wins.
var inlinePattern = regexp.MustCompile("\\*\\*(.+?)\\*\\*|\\*(.+?)\\*|`(.+?)`|\\[([^\\]]+)\\]\\(([^)]+)\\)")

const inlineTriggers = "*_`["

// FormatInline splits text into plain runs and marked spans
func FormatInline(text string) Inline {
	if !strings.ContainsAny(text, inlineTriggers) {
		return Plain(text)
	}

	var spans []Span
	pos := 0
	for _, m := range inlinePattern.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > pos {
			spans = append(spans, Span{Text: text[pos:m[0]]})
		}
		spans = append(spans, spanFromMatch(text, m))
		pos = m[1]
	}
	if pos < len(text) {
		spans = append(spans, Span{Text: text[pos:]})
	}

	if len(spans) == 1 && len(spans[0].Marks) == 0 {
		return Plain(spans[0].Text)
	}
	if len(spans) == 0 {
		return Plain(text)
	}
	return Inline{Spans: spans}
}

// spanFromMatch maps submatch groups to a marked span. Group pairs in m:
// 1 strong, 2 em, 3 code, 4+5 link text and href.
func spanFromMatch(text string, m []int) Span {
	group := func(n int) (string, bool) {
		if m[2*n] < 0 {
			return "", false
		}
		return text[m[2*n]:m[2*n+1]], true
	}

	if s, ok := group(1); ok {
		return Span{Text: s, Marks: []Mark{{Type: MarkStrong}}}
	}
	if s, ok := group(2); ok {
		return Span{Text: s, Marks: []Mark{{Type: MarkEm}}}
	}
	if s, ok := group(3); ok {
		return Span{Text: s, Marks: []Mark{{Type: MarkCode}}}
	}
	label, _ := group(4)
	href, _ := group(5)
	return Span{Text: label, Marks: []Mark{{Type: MarkLink, Href: href}}}
}
