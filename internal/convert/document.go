package convert

// Node types of the editor document schema
const (
	NodeDoc            = "doc"
	NodeParagraph      = "paragraph"
	NodeHeading        = "heading"
	NodeText           = "text"
	NodeCodeBlock      = "codeBlock"
	NodeBlockquote     = "blockquote"
	NodeBulletList     = "bulletList"
	NodeOrderedList    = "orderedList"
	NodeListItem       = "listItem"
	NodeHorizontalRule = "horizontalRule"
)

// Node is one element of the editor document tree
type Node struct {
	Type    string     `json:"type" yaml:"type"`
	Attrs   *NodeAttrs `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Content []Node     `json:"content,omitempty" yaml:"content,omitempty"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
	Marks   []NodeMark `json:"marks,omitempty" yaml:"marks,omitempty"`
}

// NodeAttrs carries the attributes used by headings and code blocks
type NodeAttrs struct {
	Level    int    `json:"level,omitempty" yaml:"level,omitempty"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// NodeMark is a mark attached to a text node
type NodeMark struct {
	Type  string     `json:"type" yaml:"type"`
	Attrs *MarkAttrs `json:"attrs,omitempty" yaml:"attrs,omitempty"`
}

// MarkAttrs carries the link target of a link mark
type MarkAttrs struct {
	Href string `json:"href" yaml:"href"`
}

// Assemble maps blocks to the document tree, one top-level node per block
func Assemble(blocks []Block) Node {
	doc := Node{Type: NodeDoc}
	for _, b := range blocks {
		doc.Content = append(doc.Content, blockNode(b))
	}
	return doc
}

func blockNode(b Block) Node {
	switch b.Kind {
	case Heading:
		return Node{
			Type:    NodeHeading,
			Attrs:   &NodeAttrs{Level: b.Level},
			Content: textNodes(b.Content),
		}
	case HorizontalRule:
		return Node{Type: NodeHorizontalRule}
	case CodeBlock:
		// empty text nodes are omitted, so an empty fence has no content
		return Node{
			Type:    NodeCodeBlock,
			Attrs:   &NodeAttrs{Language: b.Language},
			Content: textNodes(Plain(b.Code)),
		}
	case Blockquote:
		return Node{
			Type:    NodeBlockquote,
			Content: []Node{paragraphNode(b.Content)},
		}
	case BulletList:
		return listNode(NodeBulletList, b.Items)
	case OrderedList:
		return listNode(NodeOrderedList, b.Items)
	default:
		return paragraphNode(b.Content)
	}
}

func paragraphNode(in Inline) Node {
	return Node{Type: NodeParagraph, Content: textNodes(in)}
}

func listNode(listType string, items []Inline) Node {
	list := Node{Type: listType}
	for _, item := range items {
		list.Content = append(list.Content, Node{
			Type:    NodeListItem,
			Content: []Node{paragraphNode(item)},
		})
	}
	return list
}

// textNodes converts inline content to text nodes. Empty runs are dropped
// since the schema does not allow empty text nodes.
func textNodes(in Inline) []Node {
	if in.IsPlain() {
		if in.Text == "" {
			return nil
		}
		return []Node{{Type: NodeText, Text: in.Text}}
	}

	nodes := make([]Node, 0, len(in.Spans))
	for _, s := range in.Spans {
		if s.Text == "" {
			continue
		}
		node := Node{Type: NodeText, Text: s.Text}
		for _, m := range s.Marks {
			node.Marks = append(node.Marks, markNode(m))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func markNode(m Mark) NodeMark {
	nm := NodeMark{Type: string(m.Type)}
	if m.Type == MarkLink {
		nm.Attrs = &MarkAttrs{Href: m.Href}
	}
	return nm
}
