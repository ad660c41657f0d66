// Package msgfmt renders localized message templates written in a compact
// wiki-style mini-language.
//
// A message template mixes literal text with positional parameters,
// template calls and links:
//
//	"You have {{PLURAL:$1|one message|$1 messages}}"
//	"{{GENDER:$2|He|She|They}} edited [[User talk:$2|your talk page]]"
//	"Read the [https://example.org/faq FAQ] on {{SITENAME}}"
//
// Rendering resolves a key against a Store of raw templates, parses the
// template (parse trees are cached), evaluates the tree against the call
// arguments and a per-locale LanguageProfile, and serializes the result as
// HTML or plain text.
//
// Plain string arguments are always HTML-escaped on output. A
// *RenderedNode produced by an earlier render pass is trusted and inserted
// verbatim, so composed renders never double-escape. Malformed templates,
// missing messages and bad numeric input all degrade to visible
// placeholder text; the render call itself only fails on API misuse.
//
// Per-locale behavior — plural category selection, grammatical case
// tables, digit transliteration and number separators — is data carried by
// LanguageProfile values, looked up through a ProfileRegistry that caches
// one profile per locale code.
package msgfmt
