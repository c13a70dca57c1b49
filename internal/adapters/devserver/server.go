// Package devserver serves build output over HTTP and reloads connected
// browsers after every rebuild.
package devserver

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/browser"
	"go.trai.ch/ngbuild/internal/adapters/htmldoc"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// ClientPath serves the live reload client script.
	ClientPath = "/__web-dev-server__websocket-client.js"
	// SocketPath accepts live reload websocket connections.
	SocketPath = "/__web-dev-server__web-socket"
	// ReconnectPollInterval is how often a disconnected client retries.
	ReconnectPollInterval = time.Second
	// ImmutableCacheControl is sent for outputs whose names carry a content hash.
	ImmutableCacheControl = "public, max-age=3153600, immutable"
)

var _ ports.DevServer = (*Server)(nil)

// Server implements ports.DevServer on fiber.
type Server struct {
	logger  ports.Logger
	hub     *Hub
	app     *fiber.App
	rootDir string
	addr    string
	opts    domain.ServeOptions
	client  string

	// openURL opens the browser. Replaced in tests.
	openURL func(url string) error

	mu        sync.RWMutex
	immutable map[string]struct{}
	index     []byte
}

// New creates a Server for the output of project. client is the compiled live
// reload script and is only served when live reload is on.
func New(logger ports.Logger, project *domain.Project, client string, immutable []string) (*Server, error) {
	s := &Server{
		logger:  logger,
		hub:     NewHub(logger),
		rootDir: project.OutputDir(),
		addr:    net.JoinHostPort(project.Serve.Host, strconv.Itoa(project.Serve.Port)),
		opts:    project.Serve,
		client:  client,
		openURL: browser.OpenURL,
	}
	if err := s.OnRebuild(immutable); err != nil {
		return nil, err
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "ngbuild",
		DisableStartupMessage: true,
	})
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	if s.opts.LiveReload {
		s.app.Get(ClientPath, s.serveClient)
		s.app.Get(SocketPath, func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return fiber.ErrUpgradeRequired
			}
			return c.Next()
		}, websocket.New(s.hub.Serve))
	}

	s.app.Static("/", s.rootDir, fiber.Static{
		CacheDuration: -1,
		// Directories and index.html fall through to the index route.
		Next: func(c *fiber.Ctx) bool {
			p := c.Path()
			return strings.HasSuffix(p, "/") || p == "/"+domain.IndexHTMLFile
		},
		ModifyResponse: func(c *fiber.Ctx) error {
			if s.isImmutable(c.Path()) {
				c.Set(fiber.HeaderCacheControl, ImmutableCacheControl)
			}
			return nil
		},
	})

	// Everything else is an application route.
	s.app.Get("/*", s.serveIndex)
}

func (s *Server) serveClient(c *fiber.Ctx) error {
	c.Type("js")
	return c.SendString(s.client)
}

func (s *Server) serveIndex(c *fiber.Ctx) error {
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()

	c.Type("html")
	return c.Send(index)
}

func (s *Server) isImmutable(urlPath string) bool {
	abs := filepath.Join(s.rootDir, filepath.FromSlash(urlPath))

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.immutable[abs]
	return ok
}

// Start listens on the configured address until ctx is cancelled or Close is
// called.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrServerStartFailed.Error()), "address", s.addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled or Close is called.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listener(ln)
	}()

	s.logger.Info("Started dev server at " + s.URL())
	if s.opts.Open {
		go s.openWhenIdle(ctx)
	}

	select {
	case <-ctx.Done():
		if err := s.Close(); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return zerr.With(zerr.Wrap(err, domain.ErrServerStartFailed.Error()), "address", s.addr)
		}
		return nil
	}
}

// openWhenIdle gives browsers left open by an earlier run time to reconnect
// and only opens a new one when none did.
func (s *Server) openWhenIdle(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(3 * ReconnectPollInterval):
	}
	if s.hub.Len() > 0 {
		return
	}
	if err := s.openURL(s.URL()); err != nil {
		s.logger.Warn("could not open browser: " + err.Error())
	}
}

// OnRebuild replaces the immutable output set, reloads index.html and tells
// every connected browser to reload.
func (s *Server) OnRebuild(immutable []string) error {
	index, err := s.readIndex()
	if err != nil {
		return err
	}

	set := make(map[string]struct{}, len(immutable))
	for _, p := range immutable {
		set[filepath.Clean(p)] = struct{}{}
	}

	s.mu.Lock()
	s.immutable = set
	s.index = index
	s.mu.Unlock()

	if s.opts.LiveReload {
		s.hub.Reload()
	}
	return nil
}

func (s *Server) readIndex() ([]byte, error) {
	path := filepath.Join(s.rootDir, domain.IndexHTMLFile)
	//nolint:gosec // The path is the configured output directory.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error()), "path", path)
	}
	if !s.opts.LiveReload {
		return data, nil
	}

	doc, err := htmldoc.Parse(data)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrIndexHTMLFailed.Error()), "path", path)
	}
	doc.AppendScript(ClientPath, "")
	return doc.Render()
}

// URL returns the address browsers should open.
func (s *Server) URL() string {
	return "http://" + s.addr
}

// Close disconnects every browser and stops the server.
func (s *Server) Close() error {
	s.hub.Close()
	return s.app.Shutdown()
}
