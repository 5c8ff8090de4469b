package site

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, liveReload bool) (*Server, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body><main id=\"app\"></main></body></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sections.json"), []byte(`{"sections":[]}`), 0o644))

	s := NewServer(ServerConfig{Dir: dir, LiveReload: liveReload}, nil)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerRoutes(t *testing.T) {
	_, ts := newTestServer(t, false)

	status, body := get(t, ts.URL+"/healthz")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"status":"ok"}`, body)

	status, body = get(t, ts.URL+"/api/sections")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"sections":[]}`, body)

	status, body = get(t, ts.URL+"/style.css")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "body{}", body)

	status, body = get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, "/livereload")
}

func TestServerInjectsLiveReload(t *testing.T) {
	_, ts := newTestServer(t, true)

	status, body := get(t, ts.URL+"/index.html")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "/livereload")
	require.True(t, strings.Index(body, "/livereload") < strings.Index(body, "</body>"))
}

func TestServerMissingIndex(t *testing.T) {
	s := NewServer(ServerConfig{Dir: t.TempDir()}, nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	status, _ := get(t, ts.URL+"/")
	require.Equal(t, http.StatusNotFound, status)
}

func TestLiveReloadBroadcast(t *testing.T) {
	s, ts := newTestServer(t, true)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, s.Reload())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "reload", string(msg))

	require.NoError(t, s.Shutdown(context.Background()))
	require.Equal(t, 0, s.hub.count())
}

func TestWatchDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sections.yml")
	require.NoError(t, os.WriteFile(path, []byte("sections: []\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, nil, 100*time.Millisecond, nil, func() { changes <- struct{}{} })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("sections: []\n# edit\n"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case <-changes:
		t.Fatal("burst of writes should coalesce into one notification")
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatchIgnoresListedFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	content := filepath.Join(dir, "sections.yml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{dir}, []string{dbPath}, 50*time.Millisecond, nil, func() { changes <- struct{}{} })
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o644))
	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal"), 0o644))

	select {
	case <-changes:
		t.Fatal("writes to an ignored file should not trigger a rebuild")
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(content, []byte("sections: []\n"), 0o644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestIgnored(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "history.db")
	tests := []struct {
		name string
		want bool
	}{
		{db, true},
		{db + "-journal", true},
		{filepath.Join(dir, "history.dbx"), false},
		{filepath.Join(dir, "sections.yml"), false},
	}
	for _, tt := range tests {
		if got := ignored(tt.name, []string{db}); got != tt.want {
			t.Errorf("ignored(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
