package msgfmt

import "strings"

type renderedKind uint8

const (
	renderedEscaped renderedKind = iota
	renderedRaw
	renderedSeq
)

// RenderedNode is the evaluator's output tree. Escaped text is entity
// escaped during HTML serialization; raw markup is emitted verbatim. The
// tag travels with every fragment so escaping state can never be silently
// lost or applied twice. A RenderedNode passed back in as a render argument
// is trusted and inserted without re-escaping.
type RenderedNode struct {
	kind     renderedKind
	text     string
	children []*RenderedNode
}

// EscapedText wraps untrusted text that must be entity escaped on HTML
// output.
func EscapedText(text string) *RenderedNode {
	return &RenderedNode{kind: renderedEscaped, text: text}
}

// RawMarkup wraps markup that is emitted verbatim on HTML output. Use it
// only for content produced by a safe renderer, never for caller input.
func RawMarkup(markup string) *RenderedNode {
	return &RenderedNode{kind: renderedRaw, text: markup}
}

// sequence composes children in order, flattening nested sequences.
func sequence(children ...*RenderedNode) *RenderedNode {
	flat := make([]*RenderedNode, 0, len(children))
	for _, child := range children {
		if child == nil {
			continue
		}
		if child.kind == renderedSeq {
			flat = append(flat, child.children...)
			continue
		}
		flat = append(flat, child)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &RenderedNode{kind: renderedSeq, children: flat}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var htmlUnescaper = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// HTML flattens the tree into markup. Escaped runs have &, <, > and "
// entity escaped exactly once; raw runs pass through untouched.
func (n *RenderedNode) HTML() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *RenderedNode) writeHTML(b *strings.Builder) {
	switch n.kind {
	case renderedEscaped:
		b.WriteString(htmlEscaper.Replace(n.text))
	case renderedRaw:
		b.WriteString(n.text)
	case renderedSeq:
		for _, child := range n.children {
			child.writeHTML(b)
		}
	}
}

// Text flattens the tree into plain text. Escaped runs are emitted as-is;
// raw markup is stripped to its textual content, so a link reduces to its
// display text.
func (n *RenderedNode) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *RenderedNode) writeText(b *strings.Builder) {
	switch n.kind {
	case renderedEscaped:
		b.WriteString(n.text)
	case renderedRaw:
		b.WriteString(htmlUnescaper.Replace(stripTags(n.text)))
	case renderedSeq:
		for _, child := range n.children {
			child.writeText(b)
		}
	}
}

// stripTags removes <...> spans from markup. It does not attempt to
// validate the markup; an unclosed tag swallows the remainder.
func stripTags(markup string) string {
	if !strings.ContainsRune(markup, '<') {
		return markup
	}
	var b strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
