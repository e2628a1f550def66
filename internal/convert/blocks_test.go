package convert

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseBlocksKinds(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []BlockKind
	}{
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
		{
			name:     "blank lines only",
			input:    "\n  \n\n",
			expected: nil,
		},
		{
			name:     "horizontal rules",
			input:    "---\n***\n___",
			expected: []BlockKind{HorizontalRule, HorizontalRule, HorizontalRule},
		},
		{
			name:     "heading then paragraph",
			input:    "## Section\nSome text",
			expected: []BlockKind{Heading, Paragraph},
		},
		{
			name:     "seven hashes is a paragraph",
			input:    "####### too deep",
			expected: []BlockKind{Paragraph},
		},
		{
			name:     "table with separator",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			expected: []BlockKind{CodeBlock},
		},
		{
			name:     "table without separator degrades to paragraph",
			input:    "| a | b |\n| 1 | 2 |",
			expected: []BlockKind{Paragraph},
		},
		{
			name:     "paragraph stops at list",
			input:    "intro line\n- one\n- two",
			expected: []BlockKind{Paragraph, BulletList},
		},
		{
			name:     "bullet then ordered list",
			input:    "- a\n* b\n+ c\n1. one\n2. two",
			expected: []BlockKind{BulletList, OrderedList},
		},
		{
			name:     "task items are paragraphs",
			input:    "- one\n- [ ] todo\n- [x] done\n- two",
			expected: []BlockKind{BulletList, Paragraph, Paragraph, BulletList},
		},
		{
			name:     "blockquote then paragraph",
			input:    "> quoted\n> more\n\nafter",
			expected: []BlockKind{Blockquote, Paragraph},
		},
		{
			name:     "hashtag does not end a paragraph",
			input:    "first line\n#hashtag continues",
			expected: []BlockKind{Paragraph},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actual []BlockKind
			for _, b := range ParseBlocks(tt.input) {
				actual = append(actual, b.Kind)
			}
			if !reflect.DeepEqual(actual, tt.expected) {
				t.Errorf("ParseBlocks(%q) kinds = %v, want %v", tt.input, actual, tt.expected)
			}
		})
	}
}

func TestParseBlocksHeading(t *testing.T) {
	blocks := ParseBlocks("### Deep *dive*")
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	b := blocks[0]
	if b.Kind != Heading || b.Level != 3 {
		t.Errorf("got kind %v level %d, want heading level 3", b.Kind, b.Level)
	}
	expected := Inline{Spans: []Span{
		{Text: "Deep "},
		{Text: "dive", Marks: []Mark{{Type: MarkEm}}},
	}}
	if !reflect.DeepEqual(b.Content, expected) {
		t.Errorf("heading content = %#v, want %#v", b.Content, expected)
	}
}

func TestParseBlocksCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		language string
		code     string
		blocks   int
	}{
		{
			name:     "with language",
			input:    "```go\nfunc main() {\n\tfmt.Println(\"**hi**\")\n}\n```\nafter",
			language: "go",
			code:     "func main() {\n\tfmt.Println(\"**hi**\")\n}",
			blocks:   2,
		},
		{
			name:     "default language keeps blank lines",
			input:    "```\n  indented\n\n# not a heading\n```",
			language: "text",
			code:     "  indented\n\n# not a heading",
			blocks:   1,
		},
		{
			name:     "unterminated fence closes at end of input",
			input:    "```sh\necho one\necho two",
			language: "sh",
			code:     "echo one\necho two",
			blocks:   1,
		},
		{
			name:     "empty fence",
			input:    "```\n```",
			language: "text",
			code:     "",
			blocks:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := ParseBlocks(tt.input)
			if len(blocks) != tt.blocks {
				t.Fatalf("expected %d blocks, got %d", tt.blocks, len(blocks))
			}
			b := blocks[0]
			if b.Kind != CodeBlock {
				t.Fatalf("kind = %v, want codeBlock", b.Kind)
			}
			if b.Language != tt.language {
				t.Errorf("language = %q, want %q", b.Language, tt.language)
			}
			if b.Code != tt.code {
				t.Errorf("code = %q, want %q", b.Code, tt.code)
			}
		})
	}
}

func TestParseBlocksJoinsLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "paragraph lines",
			input:    "one\n  two  \nthree",
			expected: "one two three",
		},
		{
			name:     "blockquote lines",
			input:    "> to be\n> or not",
			expected: "to be or not",
		},
		{
			name:     "task prefix is normalised",
			input:    "* [X] shipped",
			expected: "[x] shipped",
		},
		{
			name:     "unchecked task without space after bullet",
			input:    "-[ ] later",
			expected: "[ ] later",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := ParseBlocks(tt.input)
			if len(blocks) != 1 {
				t.Fatalf("expected 1 block, got %d", len(blocks))
			}
			if got := blocks[0].Content.PlainText(); got != tt.expected {
				t.Errorf("content = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseBlocksListItems(t *testing.T) {
	blocks := ParseBlocks("1. first\n2.  **second**\n10. tenth")
	if len(blocks) != 1 || blocks[0].Kind != OrderedList {
		t.Fatalf("expected one ordered list, got %+v", blocks)
	}

	expected := []Inline{
		Plain("first"),
		{Spans: []Span{{Text: "second", Marks: []Mark{{Type: MarkStrong}}}}},
		Plain("tenth"),
	}
	if !reflect.DeepEqual(blocks[0].Items, expected) {
		t.Errorf("items = %#v, want %#v", blocks[0].Items, expected)
	}
}

// Every non-blank line must belong to exactly one block, and blocks must
// appear in source order.
func TestParseBlocksCoversEveryLine(t *testing.T) {
	inputs := []string{
		"",
		"para\n\n# Head\ntext\n- a\n- b\n\n> q\n---\n1. x",
		"```\ncode\n\n```\n| a | b |\n|---|---|\n| 1 | 2 |\nafter table",
		"| a |\n| b |\n- [ ] t\n- x\n```unterminated\nmore",
		"   \n***\n\n\n## h\n\n",
	}

	for _, input := range inputs {
		lines := strings.Split(input, "\n")
		owner := make([]int, len(lines))
		for i := range owner {
			owner[i] = -1
		}

		prevEnd := 0
		for bi, b := range ParseBlocks(input) {
			if b.Start < prevEnd || b.End <= b.Start {
				t.Fatalf("block %d range [%d,%d) out of order after %d in %q", bi, b.Start, b.End, prevEnd, input)
			}
			prevEnd = b.End
			for l := b.Start; l < b.End; l++ {
				if owner[l] != -1 {
					t.Fatalf("line %d claimed by blocks %d and %d in %q", l, owner[l], bi, input)
				}
				owner[l] = bi
			}
		}

		for l, line := range lines {
			if strings.TrimSpace(line) != "" && owner[l] == -1 {
				t.Errorf("line %d %q not assigned to any block in %q", l, line, input)
			}
		}
	}
}

func TestStartsNewBlock(t *testing.T) {
	tests := []struct {
		lines    []string
		expected bool
	}{
		{[]string{""}, true},
		{[]string{"## h"}, true},
		{[]string{"```"}, true},
		{[]string{"> q"}, true},
		{[]string{"- item"}, true},
		{[]string{"3. item"}, true},
		{[]string{"___"}, true},
		{[]string{"| a |", "|---|"}, true},
		{[]string{"| a |", "| b |"}, false},
		{[]string{"plain"}, false},
		{[]string{"#tag"}, false},
	}

	for _, tt := range tests {
		if actual := startsNewBlock(cursor{lines: tt.lines}); actual != tt.expected {
			t.Errorf("startsNewBlock(%q) = %v, want %v", tt.lines, actual, tt.expected)
		}
	}
}

func TestBlockKindString(t *testing.T) {
	if got := OrderedList.String(); got != "orderedList" {
		t.Errorf("OrderedList.String() = %q, want %q", got, "orderedList")
	}
	if got := BlockKind(99).String(); got != "unknown" {
		t.Errorf("BlockKind(99).String() = %q, want %q", got, "unknown")
	}
}
