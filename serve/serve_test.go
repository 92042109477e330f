package serve

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/swdunlop/page-go/page"
)

// newRouter returns a router that logs JSON lines into logs.
func newRouter(logs *bytes.Buffer, injects ...Inject) chi.Router {
	log := zerolog.New(logs)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
		})
	})
	r.Use(Middleware(injects...))
	return r
}

func homePage(r *http.Request) (*page.Document, error) {
	doc := page.New(`Home`, page.Charset(`ISO-8859-1`), page.WithoutDefaultLibraries())
	doc.AppendContent(`<p>Hi</p>`)
	doc.AddScript(`/a.js`)
	return doc, nil
}

func TestHandler(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs, func(z zerolog.Context) zerolog.Context { return z.Str(`site`, `test`) })
	r.Method(`GET`, `/`, Handler(homePage))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`GET`, `/`, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `text/html; charset=ISO-8859-1`, rec.Header().Get(`Content-Type`))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get(`Content-Length`))
	doc, _ := homePage(nil)
	assert.Equal(t, doc.Render(), rec.Body.String())

	entry := gjson.Parse(logs.String())
	assert.Equal(t, `info`, entry.Get(`level`).String())
	assert.Equal(t, `GET`, entry.Get(`method`).String())
	assert.Equal(t, `/`, entry.Get(`path`).String())
	assert.Equal(t, `test`, entry.Get(`site`).String())
	assert.Equal(t, `Home`, entry.Get(`title`).String())
	assert.Equal(t, int64(200), entry.Get(`status`).Int())
	assert.Equal(t, int64(rec.Body.Len()), entry.Get(`wrote`).Int())
	assert.True(t, entry.Get(`took`).Exists())
}

func TestHandlerHead(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)
	r.Method(`HEAD`, `/`, Handler(homePage))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`HEAD`, `/`, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, rec.Body.Len())
	assert.NotEmpty(t, rec.Header().Get(`Content-Length`))
}

func TestHandlerBuildError(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)
	r.Method(`GET`, `/`, Handler(func(r *http.Request) (*page.Document, error) {
		return nil, errors.New(`no such page`)
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`GET`, `/`, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), `no such page`)
	assert.Contains(t, logs.String(), `no such page`)
}

func TestMiddlewareRecovers(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)
	r.Get(`/boom`, func(w http.ResponseWriter, r *http.Request) {
		panic(`boom`)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`GET`, `/boom`, nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entry := gjson.Parse(logs.String())
	assert.Equal(t, `panic`, entry.Get(`level`).String())
	assert.Equal(t, `boom`, entry.Get(`panic`).String())
	assert.True(t, entry.Get(`stack`).IsArray())
}

func TestMiddlewareWarnsOnClientError(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)
	// chi only runs middleware for unmatched paths once the router has a route.
	r.Method(`GET`, `/`, Handler(homePage))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`GET`, `/missing`, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	entry := gjson.Parse(logs.String())
	assert.Equal(t, `warn`, entry.Get(`level`).String())
	assert.Equal(t, int64(404), entry.Get(`status`).Int())
	assert.False(t, entry.Get(`title`).Exists())
}

func TestWriteWithoutCharset(t *testing.T) {
	var logs bytes.Buffer
	r := newRouter(&logs)
	r.Method(`GET`, `/`, Handler(func(r *http.Request) (*page.Document, error) {
		return page.New(`bare`, page.Charset(``), page.WithoutDefaultLibraries()), nil
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(`GET`, `/`, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `text/html`, rec.Header().Get(`Content-Type`))
}
