package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "pasika_lang"
)

// ResolveTag picks the language for a request: lang query parameter, then
// cookie, then Accept-Language, then fallback. The bool reports whether the
// query parameter selected it and should be persisted as a cookie.
func (b *Bundle) ResolveTag(r *http.Request, fallback language.Tag) (language.Tag, bool) {
	if r == nil {
		return fallback, false
	}

	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			if matched, ok := b.Match(tag); ok {
				return matched, true
			}
		}
	}

	if c, err := r.Cookie(LangCookieName); err == nil {
		if tag, err := language.Parse(c.Value); err == nil {
			if matched, ok := b.Match(tag); ok {
				return matched, false
			}
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			if matched, ok := b.Match(tags...); ok {
				return matched, false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
