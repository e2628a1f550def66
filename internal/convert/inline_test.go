package convert

import (
	"reflect"
	"testing"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Inline
	}{
		{
			name:     "plain text fast path",
			input:    "Just some words",
			expected: Plain("Just some words"),
		},
		{
			name:     "empty",
			input:    "",
			expected: Plain(""),
		},
		{
			name:     "underscore triggers scan but stays plain",
			input:    "snake_case_name",
			expected: Plain("snake_case_name"),
		},
		{
			name:  "bold only",
			input: "**bold**",
			expected: Inline{Spans: []Span{
				{Text: "bold", Marks: []Mark{{Type: MarkStrong}}},
			}},
		},
		{
			name:  "all four marks",
			input: "**bold** and *italic* and `code` and [link](http://x)",
			expected: Inline{Spans: []Span{
				{Text: "bold", Marks: []Mark{{Type: MarkStrong}}},
				{Text: " and "},
				{Text: "italic", Marks: []Mark{{Type: MarkEm}}},
				{Text: " and "},
				{Text: "code", Marks: []Mark{{Type: MarkCode}}},
				{Text: " and "},
				{Text: "link", Marks: []Mark{{Type: MarkLink, Href: "http://x"}}},
			}},
		},
		{
			name:  "leading and trailing plain text",
			input: "see `go test` now",
			expected: Inline{Spans: []Span{
				{Text: "see "},
				{Text: "go test", Marks: []Mark{{Type: MarkCode}}},
				{Text: " now"},
			}},
		},
		{
			name:     "unbalanced emphasis stays literal",
			input:    "5 * 3 = 15",
			expected: Plain("5 * 3 = 15"),
		},
		{
			name:     "unclosed link stays literal",
			input:    "[not a link](",
			expected: Plain("[not a link]("),
		},
		{
			name:  "bold containing italic is not nested",
			input: "**a *b* c**",
			expected: Inline{Spans: []Span{
				{Text: "a *b* c", Marks: []Mark{{Type: MarkStrong}}},
			}},
		},
		{
			name:  "code span opening first keeps its asterisk",
			input: "`a*b` and *c*",
			expected: Inline{Spans: []Span{
				{Text: "a*b", Marks: []Mark{{Type: MarkCode}}},
				{Text: " and "},
				{Text: "c", Marks: []Mark{{Type: MarkEm}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := FormatInline(tt.input)
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("FormatInline(%q) = %#v, want %#v", tt.input, actual, tt.expected)
			}
		})
	}
}

// Three adjacent asterisks are ambiguous. The leftmost match wins and the
// bold pattern has no closing pair, so italic takes "*bold" at position 0.
func TestFormatInlineAdjacentAsterisks(t *testing.T) {
	actual := FormatInline("**bold*italic*")
	expected := Inline{Spans: []Span{
		{Text: "*bold", Marks: []Mark{{Type: MarkEm}}},
		{Text: "italic*"},
	}}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("FormatInline(%q) = %#v, want %#v", "**bold*italic*", actual, expected)
	}
}

func TestFormatInlinePlainTextRoundTrip(t *testing.T) {
	inputs := []string{
		"plain words only",
		"a [b] c",
		"**strong** tail",
		"mixed `code` and [l](u) here",
		"*one* and *two*",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			plain := FormatInline(input).PlainText()
			again := FormatInline(plain)
			if !again.IsPlain() {
				t.Fatalf("FormatInline(%q) should be plain, got %#v", plain, again)
			}
			if again.PlainText() != plain {
				t.Errorf("FormatInline(%q).PlainText() = %q, want %q", plain, again.PlainText(), plain)
			}
		})
	}
}

func TestInlinePlainText(t *testing.T) {
	in := Inline{Spans: []Span{
		{Text: "a"},
		{Text: "b", Marks: []Mark{{Type: MarkStrong}}},
		{Text: "c"},
	}}
	if got := in.PlainText(); got != "abc" {
		t.Errorf("PlainText() = %q, want %q", got, "abc")
	}
	if in.IsPlain() {
		t.Error("IsPlain() = true for span content")
	}
}
