package msgfmt

import "sync"

// FallbackResolver resolves fallback locale chains.
type FallbackResolver interface {
	Resolve(locale string) []string
}

// StaticFallbackResolver keeps explicit chains keyed by locale. Safe for
// concurrent use.
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = &StaticFallbackResolver{}

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the fallback chain for a locale. The locale itself and
// duplicates are dropped from the chain.
func (s *StaticFallbackResolver) Set(locale string, fallbacks ...string) {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return
	}

	seen := map[string]struct{}{normalized: {}}
	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		candidate := normalizeLocale(fallback)
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		chain = append(chain, candidate)
	}

	s.mu.Lock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	s.chains[normalized] = chain
	s.mu.Unlock()
}

func (s *StaticFallbackResolver) Resolve(locale string) []string {
	if s == nil {
		return nil
	}

	s.mu.RLock()
	chain, ok := s.chains[normalizeLocale(locale)]
	s.mu.RUnlock()
	if !ok || len(chain) == 0 {
		return nil
	}

	out := make([]string, len(chain))
	copy(out, chain)
	return out
}
