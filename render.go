package msgfmt

import "context"

// TitleResolver maps an internal page name to a URL. Title normalization
// lives with this collaborator, not the engine.
type TitleResolver func(page string) string

// OutputFormat selects the serialization applied by Render.
type OutputFormat int

const (
	FormatHTML OutputFormat = iota
	FormatText
)

// RenderOptions is the options-object form of the render call. When used
// it must be the only variadic argument; combining it with positional
// arguments indicates a caller bug and fails with ErrArgsWithOptions.
type RenderOptions struct {
	Format OutputFormat
	Args   []any
}

// Renderer is the render entry point: message lookup with locale fallback,
// parse (cached), evaluation against arguments and a language profile, and
// serialization. The pipeline itself is pure; the renderer only reads from
// its collaborators.
type Renderer struct {
	store         Store
	profiles      *ProfileRegistry
	cache         *Cache
	resolver      FallbackResolver
	titles        TitleResolver
	siteName      string
	defaultLocale string
	hooks         []RenderHook
}

type RendererOption func(*Renderer)

func WithRendererDefaultLocale(locale string) RendererOption {
	return func(r *Renderer) {
		r.defaultLocale = normalizeLocale(locale)
	}
}

func WithRendererProfiles(registry *ProfileRegistry) RendererOption {
	return func(r *Renderer) {
		r.profiles = registry
	}
}

func WithRendererFallbackResolver(resolver FallbackResolver) RendererOption {
	return func(r *Renderer) {
		r.resolver = resolver
	}
}

func WithRendererTitleResolver(resolver TitleResolver) RendererOption {
	return func(r *Renderer) {
		r.titles = resolver
	}
}

func WithRendererSiteName(name string) RendererOption {
	return func(r *Renderer) {
		r.siteName = name
	}
}

// WithRendererCache injects a parsed-tree cache, letting callers share or
// clear it explicitly.
func WithRendererCache(cache *Cache) RendererOption {
	return func(r *Renderer) {
		r.cache = cache
	}
}

func WithRendererHooks(hooks ...RenderHook) RendererOption {
	return func(r *Renderer) {
		for _, hook := range hooks {
			if hook == nil {
				continue
			}
			r.hooks = append(r.hooks, hook)
		}
	}
}

// NewRenderer builds a renderer over the given store.
func NewRenderer(store Store, opts ...RendererOption) *Renderer {
	if store == nil {
		store = NewStaticStore(nil)
	}

	r := &Renderer{
		store:         store,
		defaultLocale: "en",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.profiles == nil {
		r.profiles = NewProfileRegistry(WithProfileRegistryResolver(r.resolver))
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	return r
}

// Render resolves and serializes a message. The output is HTML unless a
// RenderOptions argument requests plain text. Every render-path failure
// degrades to a visible placeholder inside the output; the only returned
// error is the args/options API misuse.
func (r *Renderer) Render(ctx context.Context, locale, key string, args ...any) (string, error) {
	list, opts, err := splitArgs(args)
	if err != nil {
		return "", err
	}

	node := r.renderNode(ctx, locale, key, list)
	if opts != nil && opts.Format == FormatText {
		return node.Text(), nil
	}
	return node.HTML(), nil
}

// RenderText resolves a message and serializes it as plain text: markup is
// stripped and links reduce to their display text.
func (r *Renderer) RenderText(ctx context.Context, locale, key string, args ...any) (string, error) {
	list, _, err := splitArgs(args)
	if err != nil {
		return "", err
	}
	return r.renderNode(ctx, locale, key, list).Text(), nil
}

// RenderNode resolves a message and returns the escaped output tree. The
// tree can be passed back in as a trusted argument of a later render
// without double escaping.
func (r *Renderer) RenderNode(ctx context.Context, locale, key string, args ...any) (*RenderedNode, error) {
	list, _, err := splitArgs(args)
	if err != nil {
		return nil, err
	}
	return r.renderNode(ctx, locale, key, list), nil
}

func splitArgs(args []any) ([]any, *RenderOptions, error) {
	var opts *RenderOptions
	for _, arg := range args {
		switch v := arg.(type) {
		case *RenderOptions:
			opts = v
		case RenderOptions:
			o := v
			opts = &o
		}
	}

	if opts == nil {
		return args, nil, nil
	}
	if len(args) > 1 {
		return nil, nil, ErrArgsWithOptions
	}
	return opts.Args, opts, nil
}

func (r *Renderer) renderNode(ctx context.Context, locale, key string, args []any) *RenderedNode {
	locale = normalizeLocale(locale)
	if locale == "" {
		locale = r.defaultLocale
	}

	hctx := &RenderHookContext{Locale: locale, Key: key, Args: args}
	for _, hook := range r.hooks {
		hook.BeforeRender(hctx)
	}
	locale, key, args = hctx.Locale, hctx.Key, hctx.Args

	var node *RenderedNode
	raw, messageLocale, ok := r.lookupMessage(locale, key)
	if !ok {
		hctx.Err = ErrMissingMessage
		node = missingPlaceholder(key)
	} else {
		profile, err := r.profiles.Profile(ctx, messageLocale)
		if err != nil {
			hctx.Err = err
		}

		ev := &evaluator{
			key:     key,
			raw:     raw,
			args:    args,
			profile: profile,
			lookup: func(nested string) (string, bool) {
				template, _, found := r.lookupMessage(locale, nested)
				return template, found
			},
			parse:        r.cache.Parse,
			resolveTitle: r.titles,
			siteName:     r.siteName,
		}
		node = ev.eval(r.cache.Parse(key, raw))
	}

	hctx.Result = node
	for _, hook := range r.hooks {
		hook.AfterRender(hctx)
	}
	if hctx.Result != nil {
		node = hctx.Result
	}
	return node
}

// lookupMessage walks the locale, its parents, configured fallbacks and
// finally the default locale, returning the first catalog hit.
func (r *Renderer) lookupMessage(locale, key string) (string, string, bool) {
	for _, candidate := range r.candidateLocales(locale) {
		if raw, ok := r.store.Get(candidate, key); ok {
			return raw, candidate, true
		}
	}
	return "", "", false
}

func (r *Renderer) candidateLocales(locale string) []string {
	seen := make(map[string]struct{}, 4)
	candidates := make([]string, 0, 4)

	add := func(code string) {
		if code == "" {
			return
		}
		if _, ok := seen[code]; ok {
			return
		}
		seen[code] = struct{}{}
		candidates = append(candidates, code)
	}

	add(locale)
	for _, parent := range localeParentChain(locale) {
		add(parent)
	}
	if r.resolver != nil {
		for _, fallback := range r.resolver.Resolve(locale) {
			add(fallback)
			for _, parent := range localeParentChain(fallback) {
				add(parent)
			}
		}
	}
	add(r.defaultLocale)

	return candidates
}
