package msgfmt

// Node is a single vertex in a parsed message tree.
type Node interface {
	node()
}

// LiteralNode holds verbatim template text. Escaping is deferred to
// evaluation so the same tree can serve HTML and plain text output.
type LiteralNode struct {
	Text string
}

// ParamNode references the Nth call argument, 1-based ($1, $2, ...).
type ParamNode struct {
	Index int
}

// TemplateNode is a {{NAME:a|b|...}} invocation. Name keeps the author's
// spelling; matching against known constructs is case insensitive.
type TemplateNode struct {
	Name string
	Args []Node
}

// LinkNode covers [[target|display]] wiki links and [url display] external
// links. HasPipe records that a pipe was present even when the display side
// is empty, which the evaluator reports as a parse error instead of
// guessing a label. Pos is the offset of the construct in the raw input.
type LinkNode struct {
	Target   Node
	Display  Node
	External bool
	HasPipe  bool
	Pos      int
}

// ConcatNode is ordered sequential composition of child nodes.
type ConcatNode struct {
	Children []Node
}

func (LiteralNode) node()  {}
func (ParamNode) node()    {}
func (TemplateNode) node() {}
func (LinkNode) node()     {}
func (ConcatNode) node()   {}

// emptyNode reports whether the node renders to no text at all.
func emptyNode(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case LiteralNode:
		return v.Text == ""
	case ConcatNode:
		for _, child := range v.Children {
			if !emptyNode(child) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
