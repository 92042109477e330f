package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/swdunlop/page-go/page"
	"github.com/swdunlop/page-go/serve"
)

type serveCmd struct {
	Input         string `arg:"" help:"Page description to serve"`
	Addr          string `default:"localhost:8181" env:"PAGEGEN_ADDR" help:"Address to listen on"`
	Path          string `default:"/" help:"Path to serve the page at"`
	Reload        bool   `help:"Reload the page in the browser when the description changes or the server restarts"`
	NoDefaultLibs bool   `name:"no-default-libs" help:"Omit jQuery, Bootstrap and Font Awesome"`
	EmitTitle     bool   `name:"emit-title" help:"Emit a <title> tag in the head"`
}

// shutdownTimeout bounds how long Run waits for requests in flight once its context is done.
const shutdownTimeout = 5 * time.Second

// Run serves until ctx is done, then shuts the server down.
func (cmd *serveCmd) Run(ctx context.Context) error {
	ctx = log.Logger.WithContext(ctx)
	srv := &http.Server{
		Addr:    cmd.Addr,
		Handler: cmd.router(ctx),
		// requests share ctx, so held open reload streams end when it is done.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errs := make(chan error, 1)
	go func() { errs <- srv.ListenAndServe() }()
	log.Info().Str(`addr`, cmd.Addr).Str(`path`, cmd.Path).Str(`input`, cmd.Input).Bool(`reload`, cmd.Reload).Msg(`serving page`)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg(`shutting down`)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serr := <-errs; err == nil && !errors.Is(serr, http.ErrServerClosed) {
		err = serr
	}
	return err
}

// router mounts the page, and the reloader if enabled; the reloader watches the input until ctx is done.
func (cmd *serveCmd) router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(serve.Middleware())

	var reloader *serve.Reloader
	if cmd.Reload {
		reloader = serve.NewReloader(`/.pagegen/reload`)
		r.Method(`GET`, reloader.Path(), reloader)
		go func() {
			err := reloader.Watch(ctx, cmd.Input)
			if err != nil {
				log.Warn().Err(err).Msg(`live reload disabled`)
			}
		}()
	}

	pageHandler := serve.Handler(func(r *http.Request) (*page.Document, error) {
		doc, err := readPage(cmd.Input, cmd.options()...)
		if err != nil {
			return nil, err
		}
		if reloader != nil {
			doc.AppendCDNScript(reloader.Script())
		}
		return doc, nil
	})
	r.Method(`GET`, cmd.Path, pageHandler)
	r.Method(`HEAD`, cmd.Path, pageHandler)
	return r
}

func (cmd *serveCmd) options() []page.Option {
	render := renderCmd{NoDefaultLibs: cmd.NoDefaultLibs, EmitTitle: cmd.EmitTitle}
	return render.options()
}
