package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	msgfmt "github.com/goliatone/go-msgfmt"
)

type pathFlag struct {
	items []string
}

func (f *pathFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *pathFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	var bundles pathFlag
	var profiles pathFlag

	flag.Var(&bundles, "bundle", "message bundle file (json/yaml/toml), repeatable")
	flag.Var(&profiles, "profile", "language profile data file (json/yaml), repeatable")
	locale := flag.String("locale", "en", "locale to render in")
	defaultLocale := flag.String("default-locale", "en", "fallback locale")
	key := flag.String("key", "", "message key to render")
	siteName := flag.String("site", "", "value for {{SITENAME}}")
	asText := flag.Bool("text", false, "emit plain text instead of HTML")
	flag.Parse()

	if *key == "" {
		fmt.Fprintln(os.Stderr, "msgfmt-render: -key is required")
		os.Exit(2)
	}
	if len(bundles.items) == 0 {
		fmt.Fprintln(os.Stderr, "msgfmt-render: at least one -bundle is required")
		os.Exit(2)
	}

	opts := []msgfmt.Option{
		msgfmt.WithDefaultLocale(*defaultLocale),
		msgfmt.WithLoader(msgfmt.NewFileLoader(bundles.items...)),
		msgfmt.WithSiteName(*siteName),
	}
	if len(profiles.items) > 0 {
		opts = append(opts, msgfmt.WithLanguageData(msgfmt.NewFileProfileSource(profiles.items...)))
	}

	cfg, err := msgfmt.NewConfig(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "msgfmt-render: %v\n", err)
		os.Exit(1)
	}

	renderer, err := cfg.BuildRenderer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "msgfmt-render: %v\n", err)
		os.Exit(1)
	}

	args := make([]any, 0, flag.NArg())
	for _, arg := range flag.Args() {
		args = append(args, arg)
	}

	render := renderer.Render
	if *asText {
		render = renderer.RenderText
	}

	out, err := render(context.Background(), *locale, *key, args...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "msgfmt-render: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}
