package i18n

import (
	"context"
	"net/http"
	"time"
)

// LangParam and LangCookie carry an explicit language choice.
const (
	LangParam  = "lang"
	LangCookie = "lang"
)

type catalogContextKey struct{}

// WithCatalog stores the negotiated catalog in context.
func WithCatalog(ctx context.Context, cat *Catalog) context.Context {
	return context.WithValue(ctx, catalogContextKey{}, cat)
}

// FromContext returns the negotiated catalog, or nil when the middleware did
// not run.
func FromContext(ctx context.Context) *Catalog {
	cat, _ := ctx.Value(catalogContextKey{}).(*Catalog)
	return cat
}

// Middleware negotiates the request language from the lang query parameter,
// the lang cookie and Accept-Language, in that order. An explicit lang
// parameter is remembered in the cookie.
func (b *Bundle) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var cookie string
		if c, err := r.Cookie(LangCookie); err == nil {
			cookie = c.Value
		}
		param := r.URL.Query().Get(LangParam)
		cat := b.Match(param, cookie, r.Header.Get("Accept-Language"))
		if param != "" {
			if picked, ok := b.Lookup(param); ok {
				http.SetCookie(w, &http.Cookie{
					Name:     LangCookie,
					Value:    picked.Lang(),
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
		}
		w.Header().Set("Content-Language", cat.Lang())
		next.ServeHTTP(w, r.WithContext(WithCatalog(r.Context(), cat)))
	})
}
