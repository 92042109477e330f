package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// NewReloader returns a Reloader whose event stream is served at path.  Pages that include its Script reload when
// Reload is called, and when the event stream reconnects after the server restarts.
func NewReloader(path string) *Reloader {
	js, err := json.Marshal(path)
	if err != nil {
		panic(err)
	}
	return &Reloader{
		path:    path,
		script:  beforePath + string(js) + afterPath,
		clients: make(map[chan struct{}]struct{}),
	}
}

// A Reloader tells connected pages to reload using Server Sent Events (SSE).
type Reloader struct {
	path   string
	script string

	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

// Path returns the path where the Reloader should be mounted.
func (rl *Reloader) Path() string { return rl.path }

// Script returns the markup pages need to follow the Reloader, suitable for page.Document.AppendCDNScript.
func (rl *Reloader) Script() string { return rl.script }

// Reload tells every connected page to reload.
func (rl *Reloader) Reload() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ch := range rl.clients {
		select {
		case ch <- struct{}{}:
		default: // a reload is already pending for this client.
		}
	}
}

// ServeHTTP implements http.Handler by holding an SSE connection open until the client goes away, sending a reload
// event each time Reload is called.
func (rl *Reloader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, `streaming unsupported`, http.StatusInternalServerError)
		return
	}
	h := w.Header()
	h.Set(`Content-Type`, `text/event-stream`)
	h.Set(`Cache-Control`, `no-cache`)
	h.Set(`Connection`, `keep-alive`)

	ch := make(chan struct{}, 1)
	rl.mu.Lock()
	rl.clients[ch] = struct{}{}
	rl.mu.Unlock()
	defer func() {
		rl.mu.Lock()
		delete(rl.clients, ch)
		rl.mu.Unlock()
	}()

	_, err := w.Write([]byte("event: connected\ndata: \n\n"))
	if err != nil {
		return
	}
	flusher.Flush()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ch:
			_, err = w.Write([]byte("event: reload\ndata: \n\n"))
			if err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Watch calls Reload whenever one of the files is written, created or renamed, until the context is cancelled.
// Directories are watched rather than files, so editors that replace files on save are followed.
func (rl *Reloader) Watch(ctx context.Context, files ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf(`watching for changes: %w`, err)
	}
	defer watcher.Close()

	watched := make(map[string]struct{}, len(files))
	for _, file := range files {
		file, err = filepath.Abs(file)
		if err != nil {
			return err
		}
		watched[file] = struct{}{}
		err = watcher.Add(filepath.Dir(file))
		if err != nil {
			return fmt.Errorf(`watching %v: %w`, file, err)
		}
	}

	log := Log(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, ok := watched[evt.Name]; !ok {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			log.Debug().Str(`file`, evt.Name).Str(`op`, evt.Op.String()).Msg(`reloading pages`)
			rl.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg(`watching for changes`)
		}
	}
}

const (
	beforePath = `<script>(function(){
	if (window.pageReloader != undefined) return;
	const sse = new EventSource(`

	afterPath = `);
	let connected = null;
	window.pageReloader = sse;
	sse.addEventListener('reload', function(){ window.location.reload(); });
	sse.addEventListener('open', function(){
		if (connected === false) { window.location.reload(); return; }
		connected = true;
	});
	sse.addEventListener('error', function(){
		if (connected === true) connected = false;
	});
})()</script>`
)
