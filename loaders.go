package msgfmt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileLoader reads message bundles from JSON, YAML or TOML files. Every
// file maps locale code to a catalog of key/template pairs; nested tables
// are flattened with "." separators so TOML-style grouped bundles and flat
// JSON bundles load into the same shape.
type FileLoader struct {
	paths []string
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

func (l *FileLoader) Load() (Translations, error) {
	if l == nil || len(l.paths) == 0 {
		return nil, errors.New("msgfmt: no loader paths configured")
	}

	buckets := make(map[string]map[string]string)

	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("msgfmt: read %s: %w", path, err)
		}

		src, err := decodeBundle(path, data)
		if err != nil {
			return nil, fmt.Errorf("msgfmt: decode %s: %w", path, err)
		}

		for locale, catalog := range src {
			target := buckets[locale]
			if target == nil {
				target = make(map[string]string, len(catalog))
				buckets[locale] = target
			}
			for key, template := range catalog {
				target[key] = template
			}
		}
	}

	catalogs := make(Translations, len(buckets))
	for locale, messages := range buckets {
		catalogs[locale] = &LocaleCatalog{
			Locale:   Locale{Code: locale},
			Messages: messages,
		}
	}
	return catalogs, nil
}

func decodeBundle(path string, data []byte) (map[string]map[string]string, error) {
	var raw map[string]any

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	result := make(map[string]map[string]string, len(raw))
	for locale, payload := range raw {
		if locale == "" {
			return nil, errors.New("empty locale code")
		}
		catalog, ok := payload.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("locale %s: expected a table of messages, got %T", locale, payload)
		}

		flat := make(map[string]string, len(catalog))
		if err := flattenMessages("", catalog, flat); err != nil {
			return nil, fmt.Errorf("locale %s: %w", locale, err)
		}
		result[locale] = flat
	}
	return result, nil
}

func flattenMessages(prefix string, src map[string]any, dst map[string]string) error {
	for key, value := range src {
		if key == "" {
			return errors.New("empty message key")
		}
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			dst[full] = v
		case map[string]any:
			if err := flattenMessages(full, v, dst); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%s: expected string or table, got %T", full, value)
		}
	}
	return nil
}

// Profile data files make per-locale behavior a data concern: digit tables,
// separators, ordered plural conditions and grammar-case substitutions.

type rawProfileFile struct {
	Locales map[string]rawProfile `json:"locales" yaml:"locales"`
}

type rawProfile struct {
	Name       string                         `json:"name" yaml:"name"`
	Parent     string                         `json:"parent" yaml:"parent"`
	Digits     string                         `json:"digits" yaml:"digits"`
	DecimalSep string                         `json:"decimal_sep" yaml:"decimal_sep"`
	GroupSep   string                         `json:"group_sep" yaml:"group_sep"`
	Cardinal   map[string][]rawConditionGroup `json:"cardinal" yaml:"cardinal"`
	Grammar    map[string]map[string]string   `json:"grammar" yaml:"grammar"`
}

type rawConditionGroup []rawCondition

type rawCondition struct {
	Operand  string     `json:"operand" yaml:"operand"`
	Mod      int        `json:"mod" yaml:"mod"`
	Operator string     `json:"operator" yaml:"operator"`
	Values   []float64  `json:"values" yaml:"values"`
	Ranges   []rawRange `json:"ranges" yaml:"ranges"`
}

type rawRange struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

// FileProfileSource hydrates LanguageProfiles from JSON or YAML data files.
// Files load lazily on first Fetch and are cached for the source lifetime.
type FileProfileSource struct {
	mu       sync.Mutex
	paths    []string
	profiles map[string]*LanguageProfile
	loaded   bool
}

var _ ProfileSource = &FileProfileSource{}

func NewFileProfileSource(paths ...string) *FileProfileSource {
	return &FileProfileSource{paths: append([]string(nil), paths...)}
}

// Fetch implements ProfileSource.
func (s *FileProfileSource) Fetch(ctx context.Context, locale string) (*LanguageProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		profiles, err := s.loadAll()
		if err != nil {
			return nil, err
		}
		s.profiles = profiles
		s.loaded = true
	}

	profile, ok := s.profiles[normalizeLocale(locale)]
	if !ok {
		return nil, fmt.Errorf("msgfmt: no profile data for locale %q", locale)
	}
	return profile, nil
}

func (s *FileProfileSource) loadAll() (map[string]*LanguageProfile, error) {
	profiles := make(map[string]*LanguageProfile)

	for _, path := range s.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("msgfmt: read profile data %s: %w", path, err)
		}

		var file rawProfileFile
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".json":
			err = json.Unmarshal(data, &file)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &file)
		default:
			err = fmt.Errorf("unsupported extension %s", ext)
		}
		if err != nil {
			return nil, fmt.Errorf("msgfmt: decode profile data %s: %w", path, err)
		}

		for locale, raw := range file.Locales {
			profile, err := buildProfile(locale, raw)
			if err != nil {
				return nil, fmt.Errorf("msgfmt: profile %s in %s: %w", locale, path, err)
			}
			profiles[normalizeLocale(locale)] = profile
		}
	}

	return profiles, nil
}

func buildProfile(locale string, raw rawProfile) (*LanguageProfile, error) {
	profile := &LanguageProfile{
		Locale: normalizeLocale(locale),
		Name:   raw.Name,
		Parent: raw.Parent,
		Numerals: NumeralSpec{
			Digits:     raw.Digits,
			DecimalSep: raw.DecimalSep,
			GroupSep:   raw.GroupSep,
		},
	}

	if len(raw.Grammar) > 0 {
		profile.Grammar = make(map[string]map[string]string, len(raw.Grammar))
		for grammarCase, forms := range raw.Grammar {
			copied := make(map[string]string, len(forms))
			for word, inflected := range forms {
				copied[word] = inflected
			}
			profile.Grammar[grammarCase] = copied
		}
	}

	if len(raw.Cardinal) > 0 {
		rules, err := buildPluralRules(raw.Cardinal)
		if err != nil {
			return nil, err
		}
		profile.Rules = rules
	}

	return profile, nil
}

func buildPluralRules(cardinal map[string][]rawConditionGroup) ([]PluralRule, error) {
	names := make([]string, 0, len(cardinal))
	for name := range cardinal {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return pluralCategoryOrder(names[i]) < pluralCategoryOrder(names[j])
	})

	rules := make([]PluralRule, 0, len(names)+1)
	hasOther := false

	for _, name := range names {
		category, err := parsePluralCategory(name)
		if err != nil {
			return nil, err
		}
		if category == PluralOther {
			hasOther = true
		}

		var groups [][]PluralCondition
		for _, rawGroup := range cardinal[name] {
			if len(rawGroup) == 0 {
				continue
			}
			group := make([]PluralCondition, 0, len(rawGroup))
			for _, rc := range rawGroup {
				operator, err := parsePluralOperator(rc.Operator)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", name, err)
				}
				cond := PluralCondition{
					Operand:  rc.Operand,
					Mod:      rc.Mod,
					Operator: operator,
				}
				if len(rc.Values) > 0 {
					cond.Values = append([]float64(nil), rc.Values...)
				}
				for _, r := range rc.Ranges {
					cond.Ranges = append(cond.Ranges, PluralRange{Start: r.Start, End: r.End})
				}
				group = append(group, cond)
			}
			if len(group) > 0 {
				groups = append(groups, group)
			}
		}

		rules = append(rules, PluralRule{Category: category, Groups: groups})
	}

	if !hasOther {
		rules = append(rules, PluralRule{Category: PluralOther})
	}
	return rules, nil
}

func parsePluralCategory(raw string) (PluralCategory, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "zero":
		return PluralZero, nil
	case "one":
		return PluralOne, nil
	case "two":
		return PluralTwo, nil
	case "few":
		return PluralFew, nil
	case "many":
		return PluralMany, nil
	case "other":
		return PluralOther, nil
	default:
		return "", fmt.Errorf("unknown plural category %q", raw)
	}
}

func parsePluralOperator(raw string) (PluralOperator, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(OperatorEquals), "=":
		return OperatorEquals, nil
	case string(OperatorNotEquals), "!=":
		return OperatorNotEquals, nil
	case string(OperatorIn):
		return OperatorIn, nil
	case string(OperatorNotIn):
		return OperatorNotIn, nil
	case string(OperatorWithin):
		return OperatorWithin, nil
	case string(OperatorNotWithin):
		return OperatorNotWithin, nil
	default:
		return "", fmt.Errorf("unknown condition operator %q", raw)
	}
}

func pluralCategoryOrder(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "zero":
		return 0
	case "one":
		return 1
	case "two":
		return 2
	case "few":
		return 3
	case "many":
		return 4
	case "other":
		return 5
	default:
		return 99
	}
}
