package msgfmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

var externalLinkPattern = regexp.MustCompile(`(?i)^(?:[a-z][a-z0-9+.-]*:)?//`)

// Parse turns a raw message template into a Node. Parsing is total: the
// worst a malformed template produces is a LiteralNode carrying a
// positioned diagnostic, so one broken translation can never abort a page
// render. The diagnostic offset is the index of the first unconsumed or
// invalid character.
func Parse(key, raw string) Node {
	p := &parser{input: raw}
	node, perr := p.sequence(nil)
	if perr == nil && p.pos < len(p.input) {
		perr = &parseError{pos: p.pos}
	}
	if perr != nil {
		return LiteralNode{Text: fmt.Sprintf("%s: Parse error at position %d in input: %s", key, perr.pos, raw)}
	}
	return node
}

type parseError struct {
	pos int
}

type parser struct {
	input string
	pos   int
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

func (p *parser) atAny(terminators []string) bool {
	for _, t := range terminators {
		if strings.HasPrefix(p.rest(), t) {
			return true
		}
	}
	return false
}

// sequence consumes literal runs and constructs until one of the
// terminators (left unconsumed) or end of input. Characters that do not
// open a valid construct pass through as literal text.
func (p *parser) sequence(terminators []string) (Node, *parseError) {
	var children []Node
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			children = append(children, LiteralNode{Text: literal.String()})
			literal.Reset()
		}
	}

	for p.pos < len(p.input) {
		if p.atAny(terminators) {
			break
		}

		rest := p.rest()
		switch {
		case strings.HasPrefix(rest, "{{"):
			node, perr := p.template()
			if perr != nil {
				return nil, perr
			}
			flush()
			children = append(children, node)
		case strings.HasPrefix(rest, "[["):
			node, perr := p.internalLink()
			if perr != nil {
				return nil, perr
			}
			flush()
			children = append(children, node)
		case rest[0] == '[' && externalLinkPattern.MatchString(rest[1:]):
			node, perr := p.externalLink()
			if perr != nil {
				return nil, perr
			}
			flush()
			children = append(children, node)
		case rest[0] == '$':
			if node, ok := p.param(); ok {
				flush()
				children = append(children, node)
			} else {
				literal.WriteByte('$')
				p.pos++
			}
		default:
			r, size := utf8.DecodeRuneInString(rest)
			literal.WriteRune(r)
			p.pos += size
		}
	}

	flush()

	switch len(children) {
	case 0:
		return LiteralNode{}, nil
	case 1:
		return children[0], nil
	default:
		return ConcatNode{Children: children}, nil
	}
}

// param consumes $N at the current position. A dollar not followed by
// digits is not a parameter and stays literal.
func (p *parser) param() (Node, bool) {
	start := p.pos + 1
	end := start
	for end < len(p.input) && p.input[end] >= '0' && p.input[end] <= '9' {
		end++
	}
	if end == start {
		return nil, false
	}

	index, err := strconv.Atoi(p.input[start:end])
	if err != nil {
		return nil, false
	}
	p.pos = end
	return ParamNode{Index: index}, true
}

// template consumes {{NAME}} or {{NAME:arg|arg|...}}.
func (p *parser) template() (Node, *parseError) {
	p.pos += 2

	nameStart := p.pos
	for p.pos < len(p.input) && !strings.ContainsRune(":|{}[]", rune(p.input[p.pos])) {
		p.pos++
	}

	name := strings.TrimSpace(p.input[nameStart:p.pos])
	if name == "" {
		return nil, &parseError{pos: p.pos}
	}

	if strings.HasPrefix(p.rest(), "}}") {
		p.pos += 2
		return TemplateNode{Name: name}, nil
	}

	if p.pos >= len(p.input) || p.input[p.pos] != ':' {
		return nil, &parseError{pos: p.pos}
	}
	p.pos++

	var args []Node
	for {
		arg, perr := p.sequence([]string{"|", "}}"})
		if perr != nil {
			return nil, perr
		}
		args = append(args, arg)

		switch {
		case strings.HasPrefix(p.rest(), "|"):
			p.pos++
		case strings.HasPrefix(p.rest(), "}}"):
			p.pos += 2
			return TemplateNode{Name: name, Args: args}, nil
		default:
			return nil, &parseError{pos: p.pos}
		}
	}
}

// internalLink consumes [[target]] or [[target|display]]. Only the first
// pipe splits target from display; later pipes are display text.
func (p *parser) internalLink() (Node, *parseError) {
	start := p.pos
	p.pos += 2

	target, perr := p.sequence([]string{"|", "]]"})
	if perr != nil {
		return nil, perr
	}
	if emptyNode(target) {
		return nil, &parseError{pos: p.pos}
	}

	switch {
	case strings.HasPrefix(p.rest(), "]]"):
		p.pos += 2
		return LinkNode{Target: target, Pos: start}, nil
	case strings.HasPrefix(p.rest(), "|"):
		p.pos++
		display, perr := p.sequence([]string{"]]"})
		if perr != nil {
			return nil, perr
		}
		if !strings.HasPrefix(p.rest(), "]]") {
			return nil, &parseError{pos: p.pos}
		}
		p.pos += 2
		return LinkNode{Target: target, Display: display, HasPipe: true, Pos: start}, nil
	default:
		return nil, &parseError{pos: p.pos}
	}
}

// externalLink consumes [url] or [url display text].
func (p *parser) externalLink() (Node, *parseError) {
	start := p.pos
	p.pos++

	urlStart := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == ']' {
			break
		}
		p.pos++
	}
	url := p.input[urlStart:p.pos]

	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}

	display, perr := p.sequence([]string{"]"})
	if perr != nil {
		return nil, perr
	}
	if !strings.HasPrefix(p.rest(), "]") {
		return nil, &parseError{pos: p.pos}
	}
	p.pos++

	node := LinkNode{Target: LiteralNode{Text: url}, External: true, Pos: start}
	if !emptyNode(display) {
		node.Display = display
	}
	return node, nil
}

// Cache memoizes parsed trees keyed by message identity and raw text, so a
// hot reloaded template never serves a stale tree.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Node
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]Node)}
}

// Parse returns the memoized tree for key/raw, parsing on first use.
func (c *Cache) Parse(key, raw string) Node {
	id := key + "\x00" + raw

	c.mu.RLock()
	node, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		return node
	}

	node = Parse(key, raw)

	c.mu.Lock()
	c.entries[id] = node
	c.mu.Unlock()
	return node
}

// Reset drops every cached tree.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]Node)
	c.mu.Unlock()
}

// Len reports the number of cached trees.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
