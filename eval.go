package msgfmt

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Gendered lets caller-supplied argument objects expose a grammatical
// gender consumed by {{GENDER:...}}. "male" and "female" select the first
// two forms; anything else is neutral.
type Gendered interface {
	Gender() string
}

// Nested message lookups stop at this depth so a self-referencing
// translation degrades to a placeholder instead of recursing forever.
const maxNestingDepth = 20

type evaluator struct {
	key          string
	raw          string
	args         []any
	profile      *LanguageProfile
	lookup       func(key string) (string, bool)
	parse        func(key, raw string) Node
	resolveTitle TitleResolver
	siteName     string
	depth        int
}

func (e *evaluator) eval(node Node) *RenderedNode {
	switch n := node.(type) {
	case LiteralNode:
		return EscapedText(n.Text)
	case ParamNode:
		return e.evalParam(n)
	case TemplateNode:
		return e.evalTemplate(n)
	case LinkNode:
		return e.evalLink(n)
	case ConcatNode:
		children := make([]*RenderedNode, 0, len(n.Children))
		for _, child := range n.Children {
			children = append(children, e.eval(child))
		}
		return sequence(children...)
	default:
		return EscapedText("")
	}
}

// textOf evaluates a node and flattens it to plain text, for constructs
// that consume values rather than compose output (counts, case names,
// lookup keys).
func (e *evaluator) textOf(node Node) string {
	return e.eval(node).Text()
}

// evalParam substitutes the referenced argument. An index past the
// argument list leaves the $N token visible, enabling partial
// substitution; a RenderedNode argument is trusted and passes through
// unescaped.
func (e *evaluator) evalParam(n ParamNode) *RenderedNode {
	if n.Index < 1 || n.Index > len(e.args) {
		return EscapedText("$" + strconv.Itoa(n.Index))
	}
	return argValue(e.args[n.Index-1])
}

func argValue(arg any) *RenderedNode {
	switch v := arg.(type) {
	case *RenderedNode:
		return v
	case string:
		return EscapedText(v)
	case int:
		return EscapedText(strconv.Itoa(v))
	case int64:
		return EscapedText(strconv.FormatInt(v, 10))
	case float64:
		return EscapedText(strconv.FormatFloat(v, 'f', -1, 64))
	case fmt.Stringer:
		return EscapedText(v.String())
	default:
		return EscapedText(fmt.Sprintf("%v", v))
	}
}

func (e *evaluator) evalTemplate(n TemplateNode) *RenderedNode {
	switch strings.ToUpper(n.Name) {
	case "PLURAL":
		return e.evalPlural(n.Args)
	case "GENDER":
		return e.evalGender(n.Args)
	case "GRAMMAR":
		return e.evalGrammar(n.Args)
	case "FORMATNUM":
		return e.evalFormatNum(n.Args)
	case "INT":
		return e.evalInt(n.Args)
	case "SITENAME":
		return EscapedText(e.siteName)
	default:
		return e.evalNestedTemplate(n)
	}
}

// evalPlural selects a message form by the count's plural category. A
// count that does not coerce to a number, or a category with no matching
// form, falls back to the last supplied form.
func (e *evaluator) evalPlural(args []Node) *RenderedNode {
	if len(args) < 2 {
		return EscapedText("")
	}
	forms := args[1:]

	index := len(forms) - 1
	countText := strings.TrimSpace(e.textOf(args[0]))
	if n, err := strconv.ParseFloat(e.profile.ParseNumber(countText), 64); err == nil {
		index = e.profile.PluralIndex(n)
		if index >= len(forms) {
			index = len(forms) - 1
		}
	}
	return e.eval(forms[index])
}

// evalGender selects male/female/neutral forms. With no forms at all the
// construct collapses to empty output.
func (e *evaluator) evalGender(args []Node) *RenderedNode {
	if len(args) < 2 {
		return EscapedText("")
	}
	forms := args[1:]

	var index int
	switch e.genderOf(args[0]) {
	case "male":
		index = 0
	case "female":
		index = 1
	default:
		index = 2
	}
	if index >= len(forms) {
		index = len(forms) - 1
	}
	return e.eval(forms[index])
}

// genderOf prefers the gender capability of the referenced argument object
// over the literal text of the first argument.
func (e *evaluator) genderOf(arg Node) string {
	if param, ok := arg.(ParamNode); ok && param.Index >= 1 && param.Index <= len(e.args) {
		if gendered, ok := e.args[param.Index-1].(Gendered); ok {
			return strings.ToLower(strings.TrimSpace(gendered.Gender()))
		}
	}
	return strings.ToLower(strings.TrimSpace(e.textOf(arg)))
}

// evalGrammar applies a grammatical case transform; unknown cases leave
// the word unchanged.
func (e *evaluator) evalGrammar(args []Node) *RenderedNode {
	if len(args) == 0 {
		return EscapedText("")
	}
	if len(args) == 1 {
		return e.eval(args[0])
	}

	grammarCase := strings.TrimSpace(e.textOf(args[0]))
	word := e.textOf(args[1])
	return EscapedText(e.profile.GrammarCase(word, grammarCase))
}

// evalFormatNum formats a canonical number in locale numerals, or with the
// "R" flag parses a locale numeral back to canonical form. Non-numeric
// input passes through unchanged.
func (e *evaluator) evalFormatNum(args []Node) *RenderedNode {
	if len(args) == 0 {
		return EscapedText("")
	}

	value := strings.TrimSpace(e.textOf(args[0]))
	if len(args) > 1 && strings.TrimSpace(e.textOf(args[1])) == "R" {
		return EscapedText(e.profile.ParseNumber(value))
	}
	return EscapedText(e.profile.FormatNumber(value))
}

// evalInt resolves {{int:key}}: a static nested message lookup evaluated
// with no arguments of its own.
func (e *evaluator) evalInt(args []Node) *RenderedNode {
	if len(args) == 0 {
		return EscapedText("")
	}

	key := strings.TrimSpace(e.textOf(args[0]))
	raw, ok := e.lookup(key)
	if !ok {
		return missingPlaceholder(key)
	}
	return e.evalNested(key, raw, nil)
}

// evalNestedTemplate handles unrecognized template names: when the name
// resolves to a message key the message is rendered with the call's
// evaluated arguments (escaping state preserved); otherwise a visible
// placeholder is emitted.
func (e *evaluator) evalNestedTemplate(n TemplateNode) *RenderedNode {
	key := strings.TrimSpace(n.Name)
	raw, ok := e.lookup(key)
	if !ok {
		return missingPlaceholder(key)
	}

	nestedArgs := make([]any, len(n.Args))
	for i, arg := range n.Args {
		nestedArgs[i] = e.eval(arg)
	}
	return e.evalNested(key, raw, nestedArgs)
}

func (e *evaluator) evalNested(key, raw string, args []any) *RenderedNode {
	if e.depth+1 > maxNestingDepth {
		return missingPlaceholder(key)
	}

	nested := *e
	nested.key = key
	nested.raw = raw
	nested.args = args
	nested.depth = e.depth + 1
	return nested.eval(e.parse(key, raw))
}

func missingPlaceholder(key string) *RenderedNode {
	return EscapedText("[" + strings.ToLower(key) + "]")
}

// evalLink renders internal and external links as anchors. The pipe-trick
// form [[Target|]] is rejected with a parse error because display-text
// inference needs title normalization the engine does not own.
func (e *evaluator) evalLink(n LinkNode) *RenderedNode {
	if !n.External && n.HasPipe && emptyNode(n.Display) {
		return EscapedText(fmt.Sprintf("%s: Parse error at position %d in input: %s", e.key, n.Pos, e.raw))
	}

	display := n.Display
	if display == nil || emptyNode(display) {
		display = n.Target
	}

	var href string
	switch {
	case n.External:
		href = e.textOf(n.Target)
	case e.resolveTitle != nil:
		href = e.resolveTitle(e.textOf(n.Target))
	default:
		href = defaultTitleResolver(e.textOf(n.Target))
	}

	return sequence(
		RawMarkup(`<a href="`+htmlEscaper.Replace(href)+`">`),
		e.eval(display),
		RawMarkup("</a>"),
	)
}

func defaultTitleResolver(page string) string {
	return "/wiki/" + url.PathEscape(strings.ReplaceAll(page, " ", "_"))
}
