package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/bizdesk/web"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load(web.Locales, "i18n", "en")
	require.NoError(t, err)
	return b
}

func TestLoadEmbeddedCatalogs(t *testing.T) {
	b := loadBundle(t)
	require.Len(t, b.Languages(), 2)
	assert.Equal(t, "en", b.Default().Lang())

	id, ok := b.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "Pengeluaran", id.T("expenses.title"))
	assert.Equal(t, "Tidak ada hasil.", id.Table().NoResults)
	assert.Equal(t, "Memuat...", id.Table().Loading)
	assert.Equal(t, "missing.key", id.T("missing.key"))
}

func TestCatalogFallsBackToDefault(t *testing.T) {
	fsys := fstest.MapFS{
		"i18n/en.yaml": {Data: []byte("lang: en\nmessages:\n  a:\n    b: Hello\n    c: World\n")},
		"i18n/fr.yaml": {Data: []byte("lang: fr\ntable:\n  noResults: Aucun résultat.\nmessages:\n  a:\n    b: Bonjour\n")},
	}
	b, err := Load(fsys, "i18n", "en")
	require.NoError(t, err)

	fr, ok := b.Lookup("fr")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", fr.T("a.b"))
	assert.Equal(t, "World", fr.T("a.c"))
	assert.True(t, fr.Has("a.c"))
	assert.Equal(t, "Aucun résultat.", fr.Table().NoResults)
	assert.Equal(t, "Go to next page", fr.Table().Pagination.NextPage)
}

func TestLoadRejectsEmptyDir(t *testing.T) {
	_, err := Load(fstest.MapFS{"i18n/readme.txt": {Data: []byte("x")}}, "i18n", "en")
	assert.ErrorIs(t, err, ErrNoCatalogs)
}

func TestMatchOrder(t *testing.T) {
	b := loadBundle(t)
	assert.Equal(t, "id", b.Match("", "id", "en-US").Lang())
	assert.Equal(t, "id", b.Match("", "", "id-ID,en;q=0.5").Lang())
	assert.Equal(t, "en", b.Match("xx-invalid", "", "").Lang())
	assert.Equal(t, "en", b.Match("ja").Lang())
}

func TestMiddlewareNegotiatesAndRemembers(t *testing.T) {
	b := loadBundle(t)
	var got *Catalog
	h := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/expenses?lang=id", nil)
	req.Header.Set("Accept-Language", "en")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.NotNil(t, got)
	assert.Equal(t, "id", got.Lang())
	assert.Equal(t, "id", rr.Header().Get("Content-Language"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LangCookie, cookies[0].Name)

	req = httptest.NewRequest(http.MethodGet, "/expenses", nil)
	req.AddCookie(&http.Cookie{Name: LangCookie, Value: "id"})
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "id", got.Lang())
	assert.Empty(t, rr.Result().Cookies())
}

func TestPrinterGroupsNumbers(t *testing.T) {
	b := loadBundle(t)
	id, _ := b.Lookup("id")
	assert.Equal(t, "1.234,50", id.Printer().Sprintf("%.2f", 1234.5))
	assert.Equal(t, "1,234.50", b.Default().Printer().Sprintf("%.2f", 1234.5))
}
