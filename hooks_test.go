package msgfmt

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRenderHooksRewriteAndObserve(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newCatalog("en", map[string]string{
			"greet":       "Hello, $1!",
			"greet.loud":  "HELLO, $1!",
			"other.greet": "Hi, $1!",
		}),
	})

	var afterErr error
	hook := RenderHookFuncs{
		Before: func(ctx *RenderHookContext) {
			// Route every greet call to the loud variant.
			if ctx.Key == "greet" {
				ctx.Key = "greet.loud"
			}
		},
		After: func(ctx *RenderHookContext) {
			afterErr = ctx.Err
		},
	}

	r := NewRenderer(store, WithRendererHooks(hook))
	ctx := context.Background()

	got, err := r.Render(ctx, "en", "greet", "Ana")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "HELLO, Ana!" {
		t.Fatalf("Render = %q", got)
	}
	if afterErr != nil {
		t.Fatalf("after hook saw error %v", afterErr)
	}

	if _, err := r.Render(ctx, "en", "absent"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !errors.Is(afterErr, ErrMissingMessage) {
		t.Fatalf("after hook err = %v, want ErrMissingMessage", afterErr)
	}
}

func TestRenderHookReplacesResult(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newCatalog("en", map[string]string{"greet": "Hello, $1!"}),
	})

	hook := RenderHookFuncs{
		After: func(ctx *RenderHookContext) {
			ctx.Result = EscapedText("redacted")
		},
	}

	r := NewRenderer(store, WithRendererHooks(hook))

	got, err := r.Render(context.Background(), "en", "greet", "Ana")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "redacted" {
		t.Fatalf("Render = %q", got)
	}
}

func TestRenderHooksRunInOrder(t *testing.T) {
	store := NewStaticStore(Translations{
		"en": newCatalog("en", map[string]string{"greet": "hi"}),
	})

	var order []string
	mk := func(name string) RenderHook {
		return RenderHookFuncs{
			Before: func(*RenderHookContext) { order = append(order, name+".before") },
			After:  func(*RenderHookContext) { order = append(order, name+".after") },
		}
	}

	r := NewRenderer(store, WithRendererHooks(mk("a"), mk("b")))
	if _, err := r.Render(context.Background(), "en", "greet"); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []string{"a.before", "b.before", "a.after", "b.after"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestLoggingHook(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	store := NewStaticStore(Translations{
		"en": newCatalog("en", map[string]string{"greet": "hi"}),
	})
	r := NewRenderer(store, WithRendererHooks(LoggingHook(logger)))
	ctx := context.Background()

	if _, err := r.Render(ctx, "en", "greet"); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := r.Render(ctx, "en", "absent"); err != nil {
		t.Fatalf("Render: %v", err)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel || entries[0].Message != "message rendered" {
		t.Fatalf("first entry = %v", entries[0].Entry)
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "message render degraded" {
		t.Fatalf("second entry = %v", entries[1].Entry)
	}
	fields := entries[1].ContextMap()
	if fields["key"] != "absent" {
		t.Fatalf("warn fields = %v", fields)
	}
}
