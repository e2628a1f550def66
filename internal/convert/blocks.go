package convert

import (
	"regexp"
	"strings"
)

// BlockKind tags the variant held by a Block
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading
	HorizontalRule
	CodeBlock
	Blockquote
	BulletList
	OrderedList
)

var blockKindNames = [...]string{
	Paragraph:      "paragraph",
	Heading:        "heading",
	HorizontalRule: "horizontalRule",
	CodeBlock:      "codeBlock",
	Blockquote:     "blockquote",
	BulletList:     "bulletList",
	OrderedList:    "orderedList",
}

func (k BlockKind) String() string {
	if int(k) < len(blockKindNames) {
		return blockKindNames[k]
	}
	return "unknown"
}

// Block is one top-level structural unit of the article body.
//
// Which fields are meaningful depends on Kind: Level for headings, Language
// and Code for code blocks, Items for lists, Content for everything else
// except horizontal rules. Start and End are the half-open range of source
// lines the block was built from.
type Block struct {
	Kind     BlockKind
	Level    int
	Language string
	Code     string
	Content  Inline
	Items    []Inline

	Start int
	End   int
}

var (
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletLine  = regexp.MustCompile(`^[-*+]\s`)
	bulletMark  = regexp.MustCompile(`^[-*+]\s+`)
	orderedLine = regexp.MustCompile(`^\d+\.\s`)
	orderedMark = regexp.MustCompile(`^\d+\.\s+`)
	taskLine    = regexp.MustCompile(`^[-*]\s*\[([ xX])\]\s*(.+)$`)
)

const fence = "```"

// cursor is the parser state: the body lines and the index of the next
// unconsumed line. Recognizers take a cursor and return the advanced one.
type cursor struct {
	lines []string
	pos   int
}

func (c cursor) done() bool {
	return c.pos >= len(c.lines)
}

// current returns the trimmed line under the cursor
func (c cursor) current() string {
	return strings.TrimSpace(c.lines[c.pos])
}

func (c cursor) advance(n int) cursor {
	c.pos += n
	return c
}

// blockRule pairs the start check for a block construct with its reader.
// read is only called after starts returned true.
type blockRule struct {
	starts func(c cursor) bool
	read   func(c cursor) (Block, cursor)
}

// blockRules in dispatch order. Paragraph is the fallback and is not listed.
var blockRules = []blockRule{
	{startsRule, readRule},
	{startsHeading, readHeading},
	{startsCodeFence, readCodeFence},
	{startsBlockquote, readBlockquote},
	{startsTaskItem, readTaskItem},
	{startsBulletList, readBulletList},
	{startsOrderedList, readOrderedList},
	{startsTable, readTable},
}

// ParseBlocks scans the body line by line and returns its blocks in source order
func ParseBlocks(body string) []Block {
	if body == "" {
		return nil
	}

	var blocks []Block
	c := cursor{lines: strings.Split(body, "\n")}
	for !c.done() {
		if c.current() == "" {
			c = c.advance(1)
			continue
		}
		b, next := readBlock(c)
		b.Start, b.End = c.pos, next.pos
		blocks = append(blocks, b)
		c = next
	}
	return blocks
}

func readBlock(c cursor) (Block, cursor) {
	for _, rule := range blockRules {
		if rule.starts(c) {
			return rule.read(c)
		}
	}
	return readParagraph(c)
}

// startsNewBlock reports whether the line under the cursor ends a running
// paragraph: a blank line or the start of any other block construct
func startsNewBlock(c cursor) bool {
	if c.current() == "" {
		return true
	}
	for _, rule := range blockRules {
		if rule.starts(c) {
			return true
		}
	}
	return false
}

func isRule(trimmed string) bool {
	return trimmed == "---" || trimmed == "***" || trimmed == "___"
}

func startsRule(c cursor) bool {
	return isRule(c.current())
}

func readRule(c cursor) (Block, cursor) {
	return Block{Kind: HorizontalRule}, c.advance(1)
}

func startsHeading(c cursor) bool {
	return headingLine.MatchString(c.current())
}

func readHeading(c cursor) (Block, cursor) {
	m := headingLine.FindStringSubmatch(c.current())
	return Block{
		Kind:    Heading,
		Level:   len(m[1]),
		Content: FormatInline(m[2]),
	}, c.advance(1)
}

func startsCodeFence(c cursor) bool {
	return strings.HasPrefix(c.current(), fence)
}

// readCodeFence consumes lines verbatim up to the closing fence. A missing
// closing fence ends the block at end of input.
func readCodeFence(c cursor) (Block, cursor) {
	lang := strings.TrimSpace(c.current()[len(fence):])
	if lang == "" {
		lang = "text"
	}

	var code []string
	c = c.advance(1)
	for !c.done() && !strings.HasPrefix(c.current(), fence) {
		code = append(code, c.lines[c.pos])
		c = c.advance(1)
	}
	if !c.done() {
		c = c.advance(1)
	}

	return Block{
		Kind:     CodeBlock,
		Language: lang,
		Code:     strings.Join(code, "\n"),
	}, c
}

func startsBlockquote(c cursor) bool {
	return strings.HasPrefix(c.current(), "> ")
}

func readBlockquote(c cursor) (Block, cursor) {
	var quoted []string
	for !c.done() && startsBlockquote(c) {
		quoted = append(quoted, c.current()[2:])
		c = c.advance(1)
	}
	return Block{
		Kind:    Blockquote,
		Content: FormatInline(strings.Join(quoted, " ")),
	}, c
}

func startsTaskItem(c cursor) bool {
	return taskLine.MatchString(c.current())
}

// readTaskItem renders a checkbox item as a paragraph with a literal prefix
func readTaskItem(c cursor) (Block, cursor) {
	m := taskLine.FindStringSubmatch(c.current())
	prefix := "[ ] "
	if strings.EqualFold(m[1], "x") {
		prefix = "[x] "
	}
	return Block{
		Kind:    Paragraph,
		Content: FormatInline(prefix + m[2]),
	}, c.advance(1)
}

func startsBulletList(c cursor) bool {
	return bulletLine.MatchString(c.current())
}

func readBulletList(c cursor) (Block, cursor) {
	return readList(c, BulletList, startsBulletList, bulletMark)
}

func startsOrderedList(c cursor) bool {
	return orderedLine.MatchString(c.current())
}

func readOrderedList(c cursor) (Block, cursor) {
	return readList(c, OrderedList, startsOrderedList, orderedMark)
}

// readList collects consecutive item lines, one item per line. A task item
// ends the list so it is rendered on its own.
func readList(c cursor, kind BlockKind, isItem func(cursor) bool, marker *regexp.Regexp) (Block, cursor) {
	var items []Inline
	for !c.done() && isItem(c) && (len(items) == 0 || !startsTaskItem(c)) {
		items = append(items, FormatInline(marker.ReplaceAllString(c.current(), "")))
		c = c.advance(1)
	}
	return Block{Kind: kind, Items: items}, c
}

// startsTable requires a separator row right after a header containing a pipe
func startsTable(c cursor) bool {
	return strings.Contains(c.current(), "|") &&
		c.pos+1 < len(c.lines) &&
		isTableSeparator(c.lines[c.pos+1])
}

func readTable(c cursor) (Block, cursor) {
	start := c.pos
	for !c.done() && strings.Contains(c.lines[c.pos], "|") {
		c = c.advance(1)
	}
	return normalizeTable(c.lines[start:c.pos]), c
}

func readParagraph(c cursor) (Block, cursor) {
	start := c.pos
	c = c.advance(1)
	for !c.done() && !startsNewBlock(c) {
		c = c.advance(1)
	}
	return Block{
		Kind:    Paragraph,
		Content: FormatInline(joinTrimmed(c.lines[start:c.pos])),
	}, c
}

// joinTrimmed trims each line and joins them with single spaces
func joinTrimmed(lines []string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimSpace(l)
	}
	return strings.Join(trimmed, " ")
}
