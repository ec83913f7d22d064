package rbac

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/odyssey-erp/bizdesk/internal/shared"
)

// Middleware guards routes with the permissions of the session user.
type Middleware struct {
	Service PermissionSource
	Logger  *slog.Logger
	// Disabled lets every request through. Local development only.
	Disabled bool
}

type permSet map[string]struct{}

func newPermSet(perms []string) permSet {
	set := make(permSet, len(perms))
	for _, p := range perms {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}

func (s permSet) any(required permSet) bool {
	for p := range required {
		if _, ok := s[p]; ok {
			return true
		}
	}
	return false
}

func (s permSet) all(required permSet) bool {
	for p := range required {
		if _, ok := s[p]; !ok {
			return false
		}
	}
	return true
}

// RequireAny lets the request through when the user holds one of perms.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	return m.guard(newPermSet(perms), permSet.any)
}

// RequireAll lets the request through when the user holds every perm.
func (m Middleware) RequireAll(perms ...string) func(http.Handler) http.Handler {
	return m.guard(newPermSet(perms), permSet.all)
}

func (m Middleware) guard(required permSet, allowed func(granted, required permSet) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.Disabled || len(required) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			userID, ok := m.currentUserID(r)
			if !ok {
				forbidden(w)
				return
			}
			var granted []string
			if m.Service != nil {
				var err error
				if granted, err = m.Service.EffectivePermissions(r.Context(), userID); err != nil {
					m.log().Error("rbac load permissions", slog.Int64("user", userID), slog.Any("error", err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}
			if !allowed(newPermSet(granted), required) {
				m.log().Debug("rbac denied", slog.Int64("user", userID), slog.String("path", r.URL.Path))
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) currentUserID(r *http.Request) (int64, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return 0, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.log().Warn("rbac malformed user id", slog.String("value", raw))
		return 0, false
	}
	return id, true
}

func (m Middleware) log() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

func forbidden(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
