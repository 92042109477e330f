package serve

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloaderScript(t *testing.T) {
	rl := NewReloader(`/reload`)
	assert.Equal(t, `/reload`, rl.Path())
	assert.Contains(t, rl.Script(), `new EventSource("/reload")`)
	assert.True(t, strings.HasPrefix(rl.Script(), `<script>`))
	assert.True(t, strings.HasSuffix(rl.Script(), `</script>`))
}

// nextEvent reads lines until it finds an SSE event name.
func nextEvent(t *testing.T, rd *bufio.Reader) string {
	t.Helper()
	for {
		line, err := rd.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), `event: `); ok {
			return name
		}
	}
}

func connect(t *testing.T, rl *Reloader) *bufio.Reader {
	t.Helper()
	srv := httptest.NewServer(rl)
	t.Cleanup(srv.Close)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	req, err := http.NewRequestWithContext(ctx, `GET`, srv.URL, nil)
	require.NoError(t, err)
	rsp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { rsp.Body.Close() })
	require.Equal(t, `text/event-stream`, rsp.Header.Get(`Content-Type`))
	rd := bufio.NewReader(rsp.Body)
	require.Equal(t, `connected`, nextEvent(t, rd))
	return rd
}

func TestReloaderReload(t *testing.T) {
	rl := NewReloader(`/reload`)
	rd := connect(t, rl)
	rl.Reload()
	assert.Equal(t, `reload`, nextEvent(t, rd))
	rl.Reload()
	assert.Equal(t, `reload`, nextEvent(t, rd))
}

func TestReloaderWatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, `page.json`)
	require.NoError(t, os.WriteFile(file, []byte(`{}`), 0o644))

	rl := NewReloader(`/reload`)
	rd := connect(t, rl)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.Watch(ctx, file) }()

	// the watcher may not be registered yet, so keep touching the file until a reload arrives.
	events := make(chan string, 1)
	go func() {
		for {
			line, err := rd.ReadString('\n')
			if err != nil {
				return
			}
			if name, ok := strings.CutPrefix(strings.TrimSpace(line), `event: `); ok {
				events <- name
				return
			}
		}
	}()
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	timeout := time.After(5 * time.Second)
wait:
	for {
		select {
		case evt := <-events:
			assert.Equal(t, `reload`, evt)
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(file, []byte(`{"title":"x"}`), 0o644))
		case <-timeout:
			t.Fatal(`no reload event after writing the watched file`)
		}
	}

	cancel()
	assert.NoError(t, <-done)
}
