// Package serve delivers page Documents over HTTP, logging requests with zerolog and recovering from panics.
package serve

import (
	"net/http"
	"strconv"

	"github.com/swdunlop/page-go"
	"github.com/swdunlop/page-go/page"
)

// A Builder builds the Document for a request.  Documents are not safe for concurrent use, so a Builder must return
// a new Document for every call.
type Builder func(r *http.Request) (*page.Document, error)

// Handler returns a handler that builds a Document for each request and writes it with Write.  If the Builder fails,
// the error is logged and the client receives a 500 without details.
func Handler(build Builder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := build(r)
		if err != nil {
			Log(r.Context()).Error().Err(err).Msg(`could not build page`)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		Write(w, r, http.StatusOK, doc)
	})
}

// Write renders the Document and writes it as the response with the provided status.  The Content-Type declares the
// Document's charset, if it has one.  Write errors are logged, since the response is already underway.
func Write(w http.ResponseWriter, r *http.Request, status int, doc *page.Document) {
	p := html.Append(make([]byte, 0, 16384), doc)
	h := w.Header()
	if charset := doc.Charset(); charset != `` {
		h.Set(`Content-Type`, `text/html; charset=`+charset)
	} else {
		h.Set(`Content-Type`, `text/html`)
	}
	h.Set(`Content-Length`, strconv.Itoa(len(p)))
	noteTitle(r.Context(), doc.Title())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, err := w.Write(p)
	if err != nil {
		Log(r.Context()).Warn().Err(err).Msg(``)
	}
}
