package rbac

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/internal/datatable"
	"github.com/odyssey-erp/bizdesk/internal/listing"
	"github.com/odyssey-erp/bizdesk/internal/shared"
)

type staticSource map[int64][]string

func (s staticSource) EffectivePermissions(_ context.Context, userID int64) ([]string, error) {
	if userID == 500 {
		return nil, errors.New("db down")
	}
	return s[userID], nil
}

func (s staticSource) ListPermissions(context.Context) ([]Permission, error) {
	return []Permission{{ID: 1, Name: "expenses.view", Description: "View expenses", Roles: 2}}, nil
}

func withUser(r *http.Request, user string) *http.Request {
	sess := &shared.Session{ID: "sid"}
	if user != "" {
		sess.SetUser(user)
	}
	return r.WithContext(shared.ContextWithSession(r.Context(), sess))
}

func serve(mw func(http.Handler) http.Handler, r *http.Request) int {
	rec := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, r)
	return rec.Code
}

func TestRequireAny(t *testing.T) {
	m := Middleware{Service: staticSource{42: {"Expenses.View"}}}
	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)

	assert.Equal(t, http.StatusNoContent, serve(m.RequireAny("expenses.view", "expenses.edit"), withUser(req, "42")))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireAny("suppliers.view"), withUser(req, "42")))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireAny("expenses.view"), withUser(req, "")))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireAny("expenses.view"), req))
	assert.Equal(t, http.StatusInternalServerError, serve(m.RequireAny("expenses.view"), withUser(req, "500")))
}

func TestRequireAll(t *testing.T) {
	m := Middleware{Service: staticSource{7: {"expenses.view", "expenses.edit"}, 8: {"expenses.view"}}}
	req := httptest.NewRequest(http.MethodPost, "/expenses/actions/1/delete", nil)

	assert.Equal(t, http.StatusNoContent, serve(m.RequireAll("expenses.view", "expenses.edit"), withUser(req, "7")))
	assert.Equal(t, http.StatusForbidden, serve(m.RequireAll("expenses.view", "expenses.edit"), withUser(req, "8")))
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	m := Middleware{Disabled: true}
	req := httptest.NewRequest(http.MethodGet, "/expenses", nil)
	assert.Equal(t, http.StatusNoContent, serve(m.RequireAll("expenses.view"), req))
}

func TestPermissionsResourceIsReadOnly(t *testing.T) {
	res := PermissionsResource(staticSource{}, listing.Deps{FormsBaseURL: "https://forms.example"})
	_, err := listing.NewRegistry(res)
	require.NoError(t, err)
	assert.Equal(t, []datatable.ActionKind{datatable.ActionInfo}, res.Actions.Kinds())

	rows, err := res.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0].RowID())
}
