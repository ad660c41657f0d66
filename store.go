package msgfmt

import "sort"

// Translations maps locale code to message catalogs.
type Translations map[string]*LocaleCatalog

// LocaleCatalog holds the raw message templates for one locale. Templates
// stay unparsed here; the engine parses on demand and caches the trees.
type LocaleCatalog struct {
	Locale   Locale
	Messages map[string]string
}

// Locale metadata attached to a catalog.
type Locale struct {
	Code   string
	Name   string
	Parent string
}

// Store exposes read only access to raw message templates. Writes happen
// outside the engine; a Store implementation may hot-reload between calls
// but each Get must return a consistent snapshot value.
type Store interface {
	// Get returns the raw template for locale/key and ok=false if missing.
	Get(locale, key string) (string, bool)
	// Locales returns the list of locales known to the store.
	Locales() []string
}

// Loader retrieves the translations used to seed a Store.
type Loader interface {
	Load() (Translations, error)
}

// LoaderFunc adapts a bare function to Loader.
type LoaderFunc func() (Translations, error)

func (fn LoaderFunc) Load() (Translations, error) {
	return fn()
}

// StaticStore is an in memory store, read only after construction.
type StaticStore struct {
	translations Translations
	locales      []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot from the given translations.
func NewStaticStore(data Translations) *StaticStore {
	if len(data) == 0 {
		return &StaticStore{translations: make(Translations)}
	}

	translations := make(Translations, len(data))
	locales := make([]string, 0, len(data))

	for locale, catalog := range data {
		if catalog == nil {
			continue
		}
		clone := &LocaleCatalog{Locale: catalog.Locale}
		if clone.Locale.Code == "" {
			clone.Locale.Code = locale
		}
		if len(catalog.Messages) > 0 {
			clone.Messages = make(map[string]string, len(catalog.Messages))
			for key, template := range catalog.Messages {
				clone.Messages[key] = template
			}
		}

		translations[locale] = clone
		locales = append(locales, locale)
	}

	// make locales deterministic
	sort.Strings(locales)

	return &StaticStore{
		translations: translations,
		locales:      locales,
	}
}

// NewStaticStoreFromLoader hydrates a StaticStore using the provided loader.
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}

	translations, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewStaticStore(translations), nil
}

// Get returns the raw template for locale/key.
func (s *StaticStore) Get(locale, key string) (string, bool) {
	if s == nil {
		return "", false
	}

	catalog, ok := s.translations[locale]
	if !ok || catalog == nil || catalog.Messages == nil {
		return "", false
	}

	template, ok := catalog.Messages[key]
	return template, ok
}

// Locales returns a slice with all locale codes.
func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}
