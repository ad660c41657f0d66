package msgfmt

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// normalizeLocale canonicalizes a locale identifier: whitespace trimmed,
// underscores mapped to hyphens, lowercased language with original region
// casing left to the caller's data.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

func normalizeLocales(locales []string) []string {
	if len(locales) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(locales))
	result := make([]string, 0, len(locales))
	for _, locale := range locales {
		normalized := normalizeLocale(locale)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}

// localeParentChain derives the parent locales for a code, closest first,
// preferring BCP 47 semantics and degrading to tag truncation when the code
// does not parse.
func localeParentChain(locale string) []string {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{normalized: {}}

	appendParent := func(code string) {
		if code == "" || code == "und" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		chain = append(chain, code)
	}

	if tag, err := language.Parse(normalized); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			appendParent(parent.String())
		}
	}

	for current := normalized; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		appendParent(current)
	}

	return chain
}
