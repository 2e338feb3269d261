package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"imagestudio/internal/catalog"
)

type localeContextKey struct{}

var LocaleKey = localeContextKey{}

// supported is ordered to match supportedLangs.
var (
	supported      = []language.Tag{language.English, language.Chinese}
	supportedLangs = []catalog.Language{catalog.LanguageEnglish, catalog.LanguageChinese}
	matcher        = language.NewMatcher(supported)
)

// I18N stores the request language in the context. Precedence: ?lang=,
// X-Locale, Accept-Language, then fallback.
func I18N(fallback catalog.Language) func(http.Handler) http.Handler {
	if fallback == "" {
		fallback = catalog.LanguageEnglish
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := detectLocale(r, fallback)
			w.Header().Set("Content-Language", string(lang))
			ctx := context.WithValue(r.Context(), LocaleKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback catalog.Language) catalog.Language {
	if v := strings.TrimSpace(r.URL.Query().Get("lang")); v != "" {
		if lang, ok := matchLocale(v); ok {
			return lang
		}
	}
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		if lang, ok := matchLocale(v); ok {
			return lang
		}
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		if lang, ok := matchLocale(v); ok {
			return lang
		}
	}
	return fallback
}

// matchLocale maps a tag or an Accept-Language list onto a supported
// language.
func matchLocale(v string) (catalog.Language, bool) {
	tags, _, err := language.ParseAcceptLanguage(v)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(supportedLangs) {
		return "", false
	}
	return supportedLangs[idx], true
}

func LocaleFromContext(ctx context.Context) catalog.Language {
	if v, ok := ctx.Value(LocaleKey).(catalog.Language); ok {
		return v
	}
	return catalog.LanguageEnglish
}
