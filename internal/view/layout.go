package view

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/odyssey-erp/bizdesk/internal/i18n"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// NavEntry is a sidebar link before translation.
type NavEntry struct {
	Path     string
	LabelKey string
}

// NavItem is a rendered sidebar link.
type NavItem struct {
	Path   string
	Label  string
	Active bool
}

// LanguageLink switches the page to another catalog.
type LanguageLink struct {
	Code   string
	Name   string
	URL    string
	Active bool
}

// Layout fills the request scoped parts of TemplateData.
type Layout struct {
	CSRF   *shared.CSRFManager
	Bundle *i18n.Bundle
	Nav    []NavEntry
}

// Data builds TemplateData for r. The title is a translation key.
func (l *Layout) Data(r *http.Request, titleKey string, data any) TemplateData {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	td := TemplateData{CurrentPath: r.URL.Path, Data: data}
	if l != nil && l.CSRF != nil && sess != nil {
		td.CSRFToken, _ = l.CSRF.EnsureToken(ctx, sess)
	}
	if sess != nil {
		td.Flash = sess.PopFlash()
	}

	cat := i18n.FromContext(ctx)
	if cat == nil && l != nil && l.Bundle != nil {
		cat = l.Bundle.Default()
	}
	td.Catalog = cat
	if cat != nil {
		td.Lang = cat.Lang()
	}
	td.Title = td.T(titleKey)

	if l == nil {
		return td
	}
	for _, entry := range l.Nav {
		td.Nav = append(td.Nav, NavItem{
			Path:   entry.Path,
			Label:  td.T(entry.LabelKey),
			Active: isActive(r.URL.Path, entry.Path),
		})
	}
	if l.Bundle != nil {
		for _, c := range l.Bundle.Languages() {
			q := cloneQuery(r.URL.Query())
			q.Set(i18n.LangParam, c.Lang())
			u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
			td.Languages = append(td.Languages, LanguageLink{Code: c.Lang(), Name: c.Name, URL: u.String(), Active: c.Lang() == td.Lang})
		}
	}
	return td
}

func isActive(current, path string) bool {
	if path == "/" {
		return current == "/"
	}
	return current == path || strings.HasPrefix(current, strings.TrimRight(path, "/")+"/")
}

func cloneQuery(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}
