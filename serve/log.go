package serve

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// An Inject extends a request's log context, for example with a request ID.
type Inject func(zerolog.Context) zerolog.Context

// Middleware logs each request once it completes and recovers from panics in the handlers it wraps, answering them
// with 500 if nothing has been written yet.  The request context carries a logger, see Log, with these fields:
//
//   - remote_addr: the remote address of the request
//   - method: the HTTP method of the request
//   - path: the path of the request
//
// Fields logged after the request completes:
//
//   - status: the HTTP status code of the response
//   - wrote: the number of bytes written to the response
//   - took: the number of milliseconds the request took to process
//   - title: the title of the page written by Write, if any
//   - panic: the panic message, if the request panicked
//   - stack: the stack trace, if the request panicked, as a list of function:line strings
func Middleware(injects ...Inject) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			log := requestLogger(r, injects...)
			info := &requestInfo{}
			ctx := log.WithContext(r.Context())
			ctx = context.WithValue(ctx, requestInfoKey{}, info)
			defer logResponse(log, ww, info, start)
			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}

// Log returns the logger for the request's context, which Middleware populates.  Without Middleware, this is
// zerolog's default context logger.
func Log(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

func requestLogger(r *http.Request, injects ...Inject) *zerolog.Logger {
	z := zerolog.Ctx(r.Context()).With().
		Str(`remote_addr`, r.RemoteAddr).
		Str(`method`, r.Method).
		Str(`path`, r.URL.Path)
	for _, inject := range injects {
		z = inject(z)
	}
	log := z.Logger()
	return &log
}

// requestInfo collects details about the response that handlers know and the middleware does not.
type requestInfo struct {
	title string
}

type requestInfoKey struct{}

func noteTitle(ctx context.Context, title string) {
	if info, ok := ctx.Value(requestInfoKey{}).(*requestInfo); ok {
		info.title = title
	}
}

func logResponse(log *zerolog.Logger, ww middleware.WrapResponseWriter, info *requestInfo, start time.Time) {
	var evt *zerolog.Event
	if e := recover(); e != nil {
		if e == http.ErrAbortHandler {
			panic(e) // rethrow, http will handle it.
		}
		evt = logRecovery(log, e)
		if ww.Status() == 0 {
			http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		evt = evt.Int(`status`, ww.Status())
	} else {
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK // nothing was written, so net/http will answer 200.
		}
		switch {
		case status >= 500:
			evt = log.Error()
		case status >= 400:
			evt = log.Warn()
		default:
			evt = log.Info()
		}
		evt = evt.Int(`status`, status)
	}
	if info.title != `` {
		evt = evt.Str(`title`, info.title)
	}
	evt.Int(`wrote`, ww.BytesWritten()).
		Int64(`took`, time.Since(start).Milliseconds()).
		Msg(``)
}

func logRecovery(log *zerolog.Logger, e any) *zerolog.Event {
	evt := log.WithLevel(zerolog.PanicLevel)
	evt = addStackTrace(evt, 4)
	return evt.Str(`panic`, fmt.Sprint(e))
}

func addStackTrace(evt *zerolog.Event, skip int) *zerolog.Event {
	var calls [64]uintptr
	n := runtime.Callers(skip+1, calls[:])
	stack := make([]string, 0, n)
	for _, pc := range calls[:n] {
		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}
		_, line := fn.FileLine(pc)
		stack = append(stack, fmt.Sprintf(`%v:%v`, fn.Name(), line))
	}
	return evt.Strs(`stack`, stack)
}
