package msgfmt

import "go.uber.org/zap"

// RenderHook observes and may adjust a render call. Before runs ahead of
// message lookup and can rewrite locale, key or args; After sees the
// output tree and any degradation error.
type RenderHook interface {
	BeforeRender(ctx *RenderHookContext)
	AfterRender(ctx *RenderHookContext)
}

// RenderHookContext carries the render call state through the hook chain.
type RenderHookContext struct {
	Locale string
	Key    string
	Args   []any

	// Result is the output tree, set before After hooks run. A hook may
	// replace it.
	Result *RenderedNode

	// Err reports a degraded render: a missing message or a failed
	// profile fetch. The render still produced usable output.
	Err error
}

// RenderHookFuncs adapts bare functions to RenderHook.
type RenderHookFuncs struct {
	Before func(ctx *RenderHookContext)
	After  func(ctx *RenderHookContext)
}

func (h RenderHookFuncs) BeforeRender(ctx *RenderHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h RenderHookFuncs) AfterRender(ctx *RenderHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// LoggingHook reports render outcomes to a zap logger: degraded renders at
// warn, successful ones at debug.
func LoggingHook(logger *zap.Logger) RenderHook {
	return RenderHookFuncs{
		After: func(ctx *RenderHookContext) {
			if logger == nil {
				return
			}
			if ctx.Err != nil {
				logger.Warn("message render degraded",
					zap.String("locale", ctx.Locale),
					zap.String("key", ctx.Key),
					zap.Error(ctx.Err),
				)
				return
			}
			logger.Debug("message rendered",
				zap.String("locale", ctx.Locale),
				zap.String("key", ctx.Key),
			)
		},
	}
}
