package devserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/bundler"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const indexTemplate = `<!DOCTYPE html><html><head><title>App</title></head><body><app-root></app-root></body></html>`

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return log
}

func newProject(t *testing.T, liveReload bool) *domain.Project {
	t.Helper()
	root := t.TempDir()
	out := filepath.Join(root, "dist")
	require.NoError(t, os.MkdirAll(out, domain.DirPerm))
	for name, content := range map[string]string{
		domain.IndexHTMLFile: indexTemplate,
		"main.ABC123.js":     "console.log('main');",
		"favicon.ico":        "icon",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(out, name), []byte(content), domain.FilePerm))
	}
	return &domain.Project{
		Name:  "app",
		Root:  root,
		Build: domain.BuildOptions{OutputPath: "dist"},
		Serve: domain.ServeOptions{Host: "127.0.0.1", Port: 4200, LiveReload: liveReload},
	}
}

func get(t *testing.T, s *Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, string(body)
}

func TestServer_StaticFiles(t *testing.T) {
	p := newProject(t, true)
	s, err := New(quietLogger(t), p, "// client", []string{filepath.Join(p.OutputDir(), "main.ABC123.js")})
	require.NoError(t, err)

	resp, body := get(t, s, "/main.ABC123.js")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "console.log('main');", body)
	assert.Equal(t, ImmutableCacheControl, resp.Header.Get("Cache-Control"))

	resp, body = get(t, s, "/favicon.ico")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "icon", body)
	assert.Empty(t, resp.Header.Get("Cache-Control"))
}

func TestServer_IndexFallback(t *testing.T) {
	p := newProject(t, true)
	s, err := New(quietLogger(t), p, "// client", nil)
	require.NoError(t, err)

	want := `<!DOCTYPE html><html><head><title>App</title></head><body><app-root></app-root><script src="` + ClientPath + `"></script></body></html>`
	for _, path := range []string{"/", "/index.html", "/dashboard/settings", "/missing.js"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, s, path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Equal(t, want, body)
		})
	}
}

func TestServer_WithoutLiveReload(t *testing.T) {
	p := newProject(t, false)
	s, err := New(quietLogger(t), p, "", nil)
	require.NoError(t, err)

	_, body := get(t, s, "/")
	assert.Equal(t, indexTemplate, body)

	resp, body := get(t, s, ClientPath)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, indexTemplate, body)
}

func TestServer_ServesClient(t *testing.T) {
	s, err := New(quietLogger(t), newProject(t, true), "console.log('reload');", nil)
	require.NoError(t, err)

	resp, body := get(t, s, ClientPath)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")
	assert.Equal(t, "console.log('reload');", body)
}

func TestServer_SocketRequiresUpgrade(t *testing.T) {
	s, err := New(quietLogger(t), newProject(t, true), "", nil)
	require.NoError(t, err)

	resp, _ := get(t, s, SocketPath)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestServer_OnRebuild(t *testing.T) {
	p := newProject(t, false)
	out := p.OutputDir()
	s, err := New(quietLogger(t), p, "", []string{filepath.Join(out, "main.ABC123.js")})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(out, "main.DEF456.js"), []byte("next"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(out, domain.IndexHTMLFile), []byte("<p>rebuilt</p>"), domain.FilePerm))

	require.NoError(t, s.OnRebuild([]string{filepath.Join(out, "main.DEF456.js")}))

	resp, _ := get(t, s, "/main.ABC123.js")
	assert.Empty(t, resp.Header.Get("Cache-Control"))
	resp, _ = get(t, s, "/main.DEF456.js")
	assert.Equal(t, ImmutableCacheControl, resp.Header.Get("Cache-Control"))
	_, body := get(t, s, "/")
	assert.Equal(t, "<p>rebuilt</p>", body)
}

func TestNew_MissingIndex(t *testing.T) {
	p := newProject(t, true)
	require.NoError(t, os.Remove(filepath.Join(p.OutputDir(), domain.IndexHTMLFile)))

	_, err := New(quietLogger(t), p, "", nil)

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrIndexHTMLFailed.Error())
}

func TestServer_ReloadsConnectedBrowsers(t *testing.T) {
	p := newProject(t, true)
	s, err := New(quietLogger(t), p, "", nil)
	require.NoError(t, err)

	var lc net.ListenConfig
	ln, err := lc.Listen(t.Context(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	conn, resp, err := fastws.DefaultDialer.Dial("ws://"+ln.Addr().String()+SocketPath, nil)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	defer func() { _ = conn.Close() }()

	require.Eventually(t, func() bool { return s.hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, s.OnRebuild(nil))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, fastws.TextMessage, kind)
	assert.JSONEq(t, `{"action":"reload"}`, string(msg))

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, s.hub.Len())
}

func TestServer_OpenWhenIdle(t *testing.T) {
	tests := []struct {
		name     string
		clients  int
		wantOpen bool
	}{
		{name: "no browser connected", clients: 0, wantOpen: true},
		{name: "browser reconnected", clients: 1, wantOpen: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synctest.Test(t, func(t *testing.T) {
				s := &Server{
					logger: quietLogger(t),
					hub:    NewHub(quietLogger(t)),
					addr:   "127.0.0.1:4200",
				}
				for range tt.clients {
					s.hub.add(newClient(&fakeSocket{}))
				}

				var opened []string
				s.openURL = func(url string) error {
					opened = append(opened, url)
					return nil
				}

				go s.openWhenIdle(t.Context())

				time.Sleep(3*ReconnectPollInterval - time.Millisecond)
				synctest.Wait()
				assert.Empty(t, opened)

				time.Sleep(time.Millisecond)
				synctest.Wait()
				if tt.wantOpen {
					assert.Equal(t, []string{"http://127.0.0.1:4200"}, opened)
				} else {
					assert.Empty(t, opened)
				}
			})
		})
	}
}

func TestBundleClient(t *testing.T) {
	target, ok := bundler.ParseTarget("es2020")
	require.True(t, ok)

	code, err := BundleClient(target)

	require.NoError(t, err)
	assert.Contains(t, code, SocketPath)
	assert.Contains(t, code, "location.reload()")
	assert.False(t, strings.Contains(code, "NGBUILD_WEBSOCKET_PATH"))
}

type fakeSocket struct {
	written [][]byte
	closed  bool
}

func (f *fakeSocket) WriteMessage(_ int, data []byte) error {
	f.written = append(f.written, data)
	return nil
}

func (f *fakeSocket) Close() error {
	f.closed = true
	return nil
}
