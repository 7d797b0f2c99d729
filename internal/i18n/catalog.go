// Package i18n loads the dashboard's message catalogs and formats labels,
// weights and dates for a negotiated language.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog must cover.
const BaseLocale = "ru-RU"

//go:embed locales/*.yaml
var localesFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale and the x/text catalog built from them.
type Bundle struct {
	locales map[string]map[string]string
	tags    []language.Tag
	matcher language.Matcher
	cat     *catalog.Builder
}

// Load reads the embedded locale files.
func Load() (*Bundle, error) {
	return LoadFromFS(localesFS)
}

// LoadFromFS reads locales/*.yaml from fsys, checks every locale covers the
// base locale's keys and builds the message catalog.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{locales: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		if want := strings.TrimSuffix(strings.TrimPrefix(path, "locales/"), ".yaml"); locale != want {
			return nil, fmt.Errorf("catalog %s: locale %q must match file name %q", path, locale, want)
		}
		if _, dup := b.locales[locale]; dup {
			return nil, fmt.Errorf("catalog %s: locale %q defined twice", path, locale)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}
		b.locales[locale] = file.Messages
	}

	base, ok := b.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, messages := range b.locales {
		for key := range base {
			if _, ok := messages[key]; !ok {
				return nil, fmt.Errorf("locale %s: missing key %q", locale, key)
			}
		}
	}

	if err := b.build(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) build() error {
	baseTag := language.MustParse(BaseLocale)
	b.cat = catalog.NewBuilder(catalog.Fallback(baseTag))
	b.tags = []language.Tag{baseTag}

	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		if locale != BaseLocale {
			b.tags = append(b.tags, tag)
		}
		for key, value := range b.locales[locale] {
			if err := b.cat.SetString(tag, key, value); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
		if err := registerPlurals(b.cat, tag); err != nil {
			return fmt.Errorf("register plurals for %s: %w", locale, err)
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return nil
}

// Locales returns the loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Tags returns the supported tags, base locale first.
func (b *Bundle) Tags() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Message returns the raw catalog entry for key, falling back to the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if messages, ok := b.locales[locale]; ok {
		if v, ok := messages[key]; ok {
			return v, true
		}
	}
	v, ok := b.locales[BaseLocale][key]
	return v, ok
}

// Keys returns the base locale's message keys, sorted.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.locales[BaseLocale]))
	for k := range b.locales[BaseLocale] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match returns the best supported tag for the preferred tags, and whether
// the match is better than a guess.
func (b *Bundle) Match(preferred ...language.Tag) (language.Tag, bool) {
	if len(preferred) == 0 {
		return b.tags[0], false
	}
	_, idx, conf := b.matcher.Match(preferred...)
	return b.tags[idx], conf >= language.High
}

// Printer returns an x/text printer backed by this bundle's catalog.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.cat))
}

// LanguageName returns a locale's self-name for the language switcher.
func (b *Bundle) LanguageName(locale string) string {
	if v, ok := b.locales[locale]["lang.name"]; ok {
		return v
	}
	return locale
}
