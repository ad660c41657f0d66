package msgfmt

import (
	"context"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"
)

// PluralCategory is a CLDR plural bucket.
type PluralCategory string

const (
	PluralZero  PluralCategory = "zero"
	PluralOne   PluralCategory = "one"
	PluralTwo   PluralCategory = "two"
	PluralFew   PluralCategory = "few"
	PluralMany  PluralCategory = "many"
	PluralOther PluralCategory = "other"
)

// PluralOperator compares a numeric operand against rule data.
type PluralOperator string

const (
	OperatorEquals    PluralOperator = "equals"
	OperatorNotEquals PluralOperator = "not_equals"
	OperatorIn        PluralOperator = "in"
	OperatorNotIn     PluralOperator = "not_in"
	OperatorWithin    PluralOperator = "within"
	OperatorNotWithin PluralOperator = "not_within"
)

// PluralRange is an inclusive numeric interval.
type PluralRange struct {
	Start float64
	End   float64
}

// PluralCondition is one comparison. Operand "n" is the absolute value of
// the count and "i" its integer part; Mod, when positive, applies modulo
// before the comparison.
type PluralCondition struct {
	Operand  string
	Mod      int
	Operator PluralOperator
	Values   []float64
	Ranges   []PluralRange
}

// PluralRule selects a category when any of its condition groups matches.
// Conditions inside a group are AND-ed, groups are OR-ed. A rule with no
// groups always matches; the trailing "other" rule uses that form.
type PluralRule struct {
	Category PluralCategory
	Groups   [][]PluralCondition
}

func (r PluralRule) matches(n float64) bool {
	if len(r.Groups) == 0 {
		return true
	}
	for _, group := range r.Groups {
		matched := true
		for _, cond := range group {
			if !cond.matches(n) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func (c PluralCondition) matches(n float64) bool {
	value := math.Abs(n)
	if c.Operand == "i" {
		value = math.Trunc(value)
	}
	if c.Mod > 0 {
		value = math.Mod(value, float64(c.Mod))
	}

	switch c.Operator {
	case OperatorEquals, OperatorIn:
		for _, v := range c.Values {
			if value == v {
				return true
			}
		}
		return false
	case OperatorNotEquals, OperatorNotIn:
		for _, v := range c.Values {
			if value == v {
				return false
			}
		}
		return true
	case OperatorWithin:
		for _, r := range c.Ranges {
			if value >= r.Start && value <= r.End {
				return true
			}
		}
		return false
	case OperatorNotWithin:
		for _, r := range c.Ranges {
			if value >= r.Start && value <= r.End {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LanguageProfile is the per-locale capability record consulted during
// evaluation: ordered plural rules, a grammar-case table and the numeral
// spec. Profiles are data, not code; a new locale is a new table entry.
// Profiles are immutable once published by a registry.
type LanguageProfile struct {
	Locale string
	Name   string
	Parent string

	// Rules are ordered; PLURAL forms are matched by rule position. Empty
	// rules fall back to English-like one/other selection.
	Rules []PluralRule

	// Grammar maps case name to word-to-inflected-form substitutions.
	Grammar map[string]map[string]string

	Numerals NumeralSpec
}

// PluralIndex returns the position of the first matching plural rule. The
// caller maps the index onto the supplied message forms.
func (p *LanguageProfile) PluralIndex(n float64) int {
	if p == nil || len(p.Rules) == 0 {
		if math.Abs(n) == 1 {
			return 0
		}
		return 1
	}
	for i, rule := range p.Rules {
		if rule.matches(n) {
			return i
		}
	}
	return len(p.Rules) - 1
}

// Categories returns the ordered plural categories for the locale.
func (p *LanguageProfile) Categories() []PluralCategory {
	if p == nil || len(p.Rules) == 0 {
		return []PluralCategory{PluralOne, PluralOther}
	}
	out := make([]PluralCategory, len(p.Rules))
	for i, rule := range p.Rules {
		out[i] = rule.Category
	}
	return out
}

// GrammarCase transforms word under the named grammatical case. A case or
// word the locale does not define returns the word unchanged.
func (p *LanguageProfile) GrammarCase(word, grammarCase string) string {
	if p == nil || len(p.Grammar) == 0 {
		return word
	}
	forms, ok := p.Grammar[grammarCase]
	if !ok {
		return word
	}
	if inflected, ok := forms[word]; ok && inflected != "" {
		return inflected
	}
	return word
}

// FormatNumber renders a canonical number in the locale's numerals.
func (p *LanguageProfile) FormatNumber(canonical string) string {
	if p == nil {
		return canonical
	}
	return p.Numerals.Format(canonical)
}

// ParseNumber converts a locale-formatted numeral back to canonical form.
func (p *LanguageProfile) ParseNumber(localized string) string {
	if p == nil {
		return localized
	}
	return p.Numerals.Parse(localized)
}

// ProfileSource supplies profiles for locales the registry does not know
// yet, typically hydrated from bundled data files or a remote locale
// service. Fetch must honor ctx cancellation and return ctx.Err() when
// interrupted.
type ProfileSource interface {
	Fetch(ctx context.Context, locale string) (*LanguageProfile, error)
}

// ProfileSourceFunc adapts a bare function to ProfileSource.
type ProfileSourceFunc func(ctx context.Context, locale string) (*LanguageProfile, error)

func (fn ProfileSourceFunc) Fetch(ctx context.Context, locale string) (*LanguageProfile, error) {
	return fn(ctx, locale)
}

// ProfileRegistry caches one LanguageProfile per locale code for the
// process lifetime. First access is deduplicated with singleflight so
// concurrent callers construct the profile exactly once; a failed or
// cancelled fetch leaves the key unpopulated and a later call retries.
type ProfileRegistry struct {
	mu       sync.RWMutex
	profiles map[string]*LanguageProfile
	group    singleflight.Group
	source   ProfileSource
	resolver FallbackResolver
}

type ProfileRegistryOption func(*ProfileRegistry)

// WithProfileSource wires the asynchronous locale-data collaborator.
func WithProfileSource(source ProfileSource) ProfileRegistryOption {
	return func(r *ProfileRegistry) {
		r.source = source
	}
}

// WithProfileRegistryResolver sets the fallback chain resolver used when a
// locale has no profile of its own.
func WithProfileRegistryResolver(resolver FallbackResolver) ProfileRegistryOption {
	return func(r *ProfileRegistry) {
		r.resolver = resolver
	}
}

// WithProfile pre-registers a profile, bypassing source fetches for its
// locale.
func WithProfile(profile *LanguageProfile) ProfileRegistryOption {
	return func(r *ProfileRegistry) {
		if profile == nil || profile.Locale == "" {
			return
		}
		r.profiles[normalizeLocale(profile.Locale)] = profile
	}
}

// NewProfileRegistry builds a registry seeded with the built-in locale
// table.
func NewProfileRegistry(opts ...ProfileRegistryOption) *ProfileRegistry {
	registry := &ProfileRegistry{
		profiles: make(map[string]*LanguageProfile),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(registry)
	}
	return registry
}

// Profile resolves the capability record for a locale. Resolution order:
// cached or pre-registered profiles, the built-in table, the configured
// source, then fallback and parent locales, and finally the English-like
// default. The returned profile is always usable; the error reports a
// source fetch failure so the caller may retry later.
func (r *ProfileRegistry) Profile(ctx context.Context, locale string) (*LanguageProfile, error) {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return DefaultProfile(), nil
	}

	r.mu.RLock()
	cached, ok := r.profiles[normalized]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := r.group.Do(normalized, func() (any, error) {
		if builtin, ok := builtinProfiles[normalized]; ok {
			r.store(normalized, builtin)
			return builtin, nil
		}

		if r.source != nil {
			profile, err := r.source.Fetch(ctx, normalized)
			if err == nil && profile != nil {
				r.store(normalized, profile)
				return profile, nil
			}
			if err != nil && ctx.Err() != nil {
				// Cancelled fetch: surface the error without caching so the
				// next caller retries with a fresh context.
				return nil, err
			}
		}

		if fallback := r.fallbackProfile(normalized); fallback != nil {
			r.store(normalized, fallback)
			return fallback, nil
		}

		fallback := DefaultProfile()
		r.store(normalized, fallback)
		return fallback, nil
	})
	if err != nil {
		return DefaultProfile(), err
	}
	return result.(*LanguageProfile), nil
}

func (r *ProfileRegistry) store(locale string, profile *LanguageProfile) {
	r.mu.Lock()
	r.profiles[locale] = profile
	r.mu.Unlock()
}

func (r *ProfileRegistry) fallbackProfile(locale string) *LanguageProfile {
	candidates := localeParentChain(locale)
	if r.resolver != nil {
		for _, fallback := range r.resolver.Resolve(locale) {
			candidates = append(candidates, fallback)
			candidates = append(candidates, localeParentChain(fallback)...)
		}
	}

	for _, candidate := range candidates {
		r.mu.RLock()
		cached, ok := r.profiles[candidate]
		r.mu.RUnlock()
		if ok {
			return cached
		}
		if builtin, ok := builtinProfiles[candidate]; ok {
			return builtin
		}
	}
	return nil
}

// Reset drops every cached profile. Pre-registered profiles are dropped
// too; intended for tests.
func (r *ProfileRegistry) Reset() {
	r.mu.Lock()
	r.profiles = make(map[string]*LanguageProfile)
	r.mu.Unlock()
}

// Locales lists the locale codes with resident profiles, sorted.
func (r *ProfileRegistry) Locales() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.profiles))
	for locale := range r.profiles {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}
