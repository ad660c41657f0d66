package msgfmt

import (
	"context"
	"errors"
	"testing"
)

func builtinProfile(t *testing.T, locale string) *LanguageProfile {
	t.Helper()
	profile, ok := builtinProfiles[locale]
	if !ok {
		t.Fatalf("no built-in profile for %q", locale)
	}
	return profile
}

func TestPluralIndex(t *testing.T) {
	tests := []struct {
		locale string
		n      float64
		want   int
	}{
		{locale: "en", n: 1, want: 0},
		{locale: "en", n: -1, want: 0},
		{locale: "en", n: 0, want: 1},
		{locale: "en", n: 2, want: 1},
		{locale: "en", n: 1.5, want: 1},

		{locale: "fr", n: 0, want: 0},
		{locale: "fr", n: 1, want: 0},
		{locale: "fr", n: 2, want: 1},

		{locale: "ru", n: 1, want: 0},
		{locale: "ru", n: 21, want: 0},
		{locale: "ru", n: 11, want: 2},
		{locale: "ru", n: 2, want: 1},
		{locale: "ru", n: 24, want: 1},
		{locale: "ru", n: 12, want: 2},
		{locale: "ru", n: 5, want: 2},
		{locale: "ru", n: 100, want: 2},

		{locale: "he", n: 2, want: 1},
		{locale: "he", n: 3, want: 2},

		{locale: "ar", n: 0, want: 0},
		{locale: "ar", n: 1, want: 1},
		{locale: "ar", n: 2, want: 2},
		{locale: "ar", n: 3, want: 3},
		{locale: "ar", n: 10, want: 3},
		{locale: "ar", n: 103, want: 3},
		{locale: "ar", n: 11, want: 4},
		{locale: "ar", n: 99, want: 4},
		{locale: "ar", n: 100, want: 5},

		{locale: "fa", n: 0, want: 0},
		{locale: "fa", n: 1, want: 0},
		{locale: "fa", n: 2, want: 1},
	}

	for _, tc := range tests {
		profile := builtinProfile(t, tc.locale)
		if got := profile.PluralIndex(tc.n); got != tc.want {
			t.Fatalf("%s: PluralIndex(%v) = %d, want %d", tc.locale, tc.n, got, tc.want)
		}
	}
}

func TestPluralIndexNilProfile(t *testing.T) {
	var p *LanguageProfile
	if got := p.PluralIndex(1); got != 0 {
		t.Fatalf("PluralIndex(1) = %d, want 0", got)
	}
	if got := p.PluralIndex(5); got != 1 {
		t.Fatalf("PluralIndex(5) = %d, want 1", got)
	}
}

func TestCategories(t *testing.T) {
	got := builtinProfile(t, "ar").Categories()
	want := []PluralCategory{PluralZero, PluralOne, PluralTwo, PluralFew, PluralMany, PluralOther}
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGrammarCase(t *testing.T) {
	ru := builtinProfile(t, "ru")

	tests := []struct {
		word        string
		grammarCase string
		want        string
	}{
		{word: "Википедия", grammarCase: "genitive", want: "Википедии"},
		{word: "Википедия", grammarCase: "prepositional", want: "Википедии"},
		{word: "Википедия", grammarCase: "dative", want: "Википедия"},
		{word: "Рувики", grammarCase: "genitive", want: "Рувики"},
	}

	for _, tc := range tests {
		if got := ru.GrammarCase(tc.word, tc.grammarCase); got != tc.want {
			t.Fatalf("GrammarCase(%q, %q) = %q, want %q", tc.word, tc.grammarCase, got, tc.want)
		}
	}

	en := builtinProfile(t, "en")
	if got := en.GrammarCase("Wikipedia", "genitive"); got != "Wikipedia" {
		t.Fatalf("locale without grammar table changed the word: %q", got)
	}
}

func TestProfileRegistryBuiltins(t *testing.T) {
	registry := NewProfileRegistry()
	ctx := context.Background()

	profile, err := registry.Profile(ctx, "es")
	if err != nil {
		t.Fatalf("Profile(es): %v", err)
	}
	if profile.Locale != "es" || profile.Numerals.DecimalSep != "," {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	unknown, err := registry.Profile(ctx, "zz")
	if err != nil {
		t.Fatalf("Profile(zz): %v", err)
	}
	if unknown.Locale != "en" {
		t.Fatalf("unknown locale resolved to %q, want English default", unknown.Locale)
	}
}

func TestProfileRegistrySourceCachesSuccess(t *testing.T) {
	calls := 0
	source := ProfileSourceFunc(func(ctx context.Context, locale string) (*LanguageProfile, error) {
		calls++
		return &LanguageProfile{Locale: locale, Name: "Klingon"}, nil
	})

	registry := NewProfileRegistry(WithProfileSource(source))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		profile, err := registry.Profile(ctx, "tlh")
		if err != nil {
			t.Fatalf("Profile: %v", err)
		}
		if profile.Name != "Klingon" {
			t.Fatalf("profile = %+v", profile)
		}
	}
	if calls != 1 {
		t.Fatalf("source fetched %d times, want 1", calls)
	}
}

func TestProfileRegistryCancelledFetchRetries(t *testing.T) {
	calls := 0
	source := ProfileSourceFunc(func(ctx context.Context, locale string) (*LanguageProfile, error) {
		calls++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &LanguageProfile{Locale: locale, Name: "Volapük"}, nil
	})

	registry := NewProfileRegistry(WithProfileSource(source))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	profile, err := registry.Profile(cancelled, "vo")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if profile == nil || profile.Locale != "en" {
		t.Fatalf("cancelled fetch should fall back to the default profile, got %+v", profile)
	}

	// The failure is not cached; a fresh context fetches for real.
	profile, err = registry.Profile(context.Background(), "vo")
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if profile.Name != "Volapük" {
		t.Fatalf("retry profile = %+v", profile)
	}
	if calls != 2 {
		t.Fatalf("source fetched %d times, want 2", calls)
	}
}

func TestProfileRegistryParentFallback(t *testing.T) {
	registry := NewProfileRegistry()

	profile, err := registry.Profile(context.Background(), "es-MX")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Locale != "es" {
		t.Fatalf("es-MX resolved to %q, want parent es", profile.Locale)
	}
}

func TestProfileRegistryResolverFallback(t *testing.T) {
	resolver := NewStaticFallbackResolver()
	resolver.Set("xx", "ru")

	registry := NewProfileRegistry(WithProfileRegistryResolver(resolver))

	profile, err := registry.Profile(context.Background(), "xx")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.Locale != "ru" {
		t.Fatalf("xx resolved to %q, want fallback ru", profile.Locale)
	}
}

func TestProfileRegistryResetAndLocales(t *testing.T) {
	registry := NewProfileRegistry(WithProfile(&LanguageProfile{Locale: "eo", Name: "Esperanto"}))
	ctx := context.Background()

	if _, err := registry.Profile(ctx, "eo"); err != nil {
		t.Fatalf("Profile(eo): %v", err)
	}
	if _, err := registry.Profile(ctx, "ru"); err != nil {
		t.Fatalf("Profile(ru): %v", err)
	}

	locales := registry.Locales()
	if len(locales) != 2 || locales[0] != "eo" || locales[1] != "ru" {
		t.Fatalf("Locales = %v", locales)
	}

	registry.Reset()
	if got := registry.Locales(); len(got) != 0 {
		t.Fatalf("Locales after Reset = %v", got)
	}
}
