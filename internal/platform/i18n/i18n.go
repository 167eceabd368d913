// Package i18n loads the UI and report message catalogs and picks a language
// per request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// LangParam is the query/form parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "lang"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every loaded locale.
type Bundle struct {
	builder  *catalog.Builder
	tags     []language.Tag
	matcher  language.Matcher
	fallback language.Tag
	keys     map[language.Tag]map[string]struct{}
}

// Load reads the embedded catalogs. defaultLang must be one of them.
func Load(defaultLang string) (*Bundle, error) {
	return LoadFromFS(embeddedLocales, defaultLang)
}

// LoadFromFS reads locales/*.yaml from fsys.
func LoadFromFS(fsys fs.FS, defaultLang string) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: glob: %w", ErrCatalog, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no locale files", ErrCatalog)
	}
	sort.Strings(paths)

	b := &Bundle{
		builder: catalog.NewBuilder(),
		keys:    map[language.Tag]map[string]struct{}{},
	}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %w", ErrCatalog, path, err)
		}
		var f catalogFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: parse %s: %w", ErrCatalog, path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(f.Locale))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: locale %q: %w", ErrCatalog, path, f.Locale, err)
		}
		if _, dup := b.keys[tag]; dup {
			return nil, fmt.Errorf("%w: %s: locale %s defined twice", ErrCatalog, path, tag)
		}
		b.keys[tag] = make(map[string]struct{}, len(f.Messages))
		for key, msg := range f.Messages {
			if err := b.builder.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("%w: %s: %s: %w", ErrCatalog, path, key, err)
			}
			b.keys[tag][key] = struct{}{}
		}
		b.tags = append(b.tags, tag)
	}

	fallback, err := language.Parse(defaultLang)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultLang)
	}
	if _, ok := b.keys[fallback]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDefault, fallback)
	}
	b.fallback = fallback
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Supported returns the loaded languages.
func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Default is the language used when nothing matches.
func (b *Bundle) Default() language.Tag {
	return b.fallback
}

// Has reports whether key is defined for tag.
func (b *Bundle) Has(tag language.Tag, key string) bool {
	_, ok := b.keys[tag][key]
	return ok
}

// Printer returns a printer bound to the bundle's catalog.
func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// Match returns the best supported language for a list of BCP 47 tags or an
// Accept-Language value. ok is false when nothing usable was given.
func (b *Bundle) Match(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return b.fallback, false
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return b.fallback, false
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.fallback, false
	}
	return b.tags[idx], true
}

// Resolve picks the language for r: ?lang, then the lang cookie, then
// Accept-Language, then the default. persist is true when the choice came
// from the query and should be stored in a cookie.
func (b *Bundle) Resolve(r *http.Request) (tag language.Tag, persist bool) {
	if r == nil {
		return b.fallback, false
	}
	if tag, ok := b.Match(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := b.Match(c.Value); ok {
			return tag, false
		}
	}
	if tag, ok := b.Match(r.Header.Get("Accept-Language")); ok {
		return tag, false
	}
	return b.fallback, false
}

// SetCookie persists tag on the response.
func SetCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
