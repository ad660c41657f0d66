package msgfmt

// Config captures renderer setup: store, locale data, collaborators.
type Config struct {
	DefaultLocale string
	Loader        Loader
	Store         Store
	Resolver      FallbackResolver
	ProfileSource ProfileSource
	TitleResolver TitleResolver
	SiteName      string
	Hooks         []RenderHook

	profileRegistry *ProfileRegistry
	cache           *Cache
}

// Option mutates Config during construction.
type Option func(*Config) error

// NewConfig builds Config via supplied options.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Store == nil {
		if cfg.Loader != nil {
			store, err := NewStaticStoreFromLoader(cfg.Loader)
			if err != nil {
				return nil, err
			}
			cfg.Store = store
		} else {
			cfg.Store = NewStaticStore(nil)
		}
	}

	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}

	return cfg, nil
}

// WithDefaultLocale sets the locale used when the caller passes none and
// as the last lookup fallback.
func WithDefaultLocale(locale string) Option {
	return func(c *Config) error {
		c.DefaultLocale = locale
		return nil
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Config) error {
		c.Loader = loader
		return nil
	}
}

func WithStore(store Store) Option {
	return func(c *Config) error {
		c.Store = store
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback registers an explicit fallback chain for one locale.
func WithFallback(locale string, fallbacks ...string) Option {
	return func(c *Config) error {
		if locale == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(locale, fallbacks...)
		return nil
	}
}

// WithLanguageData wires a source for locale profiles outside the built-in
// table.
func WithLanguageData(source ProfileSource) Option {
	return func(c *Config) error {
		c.ProfileSource = source
		c.profileRegistry = nil
		return nil
	}
}

func WithTitleResolver(resolver TitleResolver) Option {
	return func(c *Config) error {
		c.TitleResolver = resolver
		return nil
	}
}

func WithSiteName(name string) Option {
	return func(c *Config) error {
		c.SiteName = name
		return nil
	}
}

func WithRenderHooks(hooks ...RenderHook) Option {
	return func(c *Config) error {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			c.Hooks = append(c.Hooks, hook)
		}
		return nil
	}
}

// BuildRenderer assembles the configured renderer.
func (cfg *Config) BuildRenderer() (*Renderer, error) {
	if cfg == nil {
		return NewRenderer(nil), nil
	}

	opts := []RendererOption{
		WithRendererDefaultLocale(cfg.DefaultLocale),
		WithRendererFallbackResolver(cfg.Resolver),
		WithRendererProfiles(cfg.ProfileRegistry()),
		WithRendererCache(cfg.Cache()),
		WithRendererTitleResolver(cfg.TitleResolver),
		WithRendererSiteName(cfg.SiteName),
	}
	if len(cfg.Hooks) > 0 {
		opts = append(opts, WithRendererHooks(cfg.Hooks...))
	}

	return NewRenderer(cfg.Store, opts...), nil
}

// ProfileRegistry returns the lazily constructed per-locale profile cache.
func (cfg *Config) ProfileRegistry() *ProfileRegistry {
	if cfg == nil {
		return nil
	}
	if cfg.profileRegistry == nil {
		cfg.profileRegistry = NewProfileRegistry(
			WithProfileRegistryResolver(cfg.Resolver),
			WithProfileSource(cfg.ProfileSource),
		)
	}
	return cfg.profileRegistry
}

// Cache returns the shared parsed-tree cache.
func (cfg *Config) Cache() *Cache {
	if cfg == nil {
		return nil
	}
	if cfg.cache == nil {
		cfg.cache = NewCache()
	}
	return cfg.cache
}
