// Package sass compiles Sass stylesheets with the embedded Dart Sass protocol.
package sass

import (
	"context"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/bep/godartsass/v2"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultBinary is the Dart Sass executable looked up in $PATH.
const DefaultBinary = "sass"

var _ ports.StyleCompiler = (*Compiler)(nil)

// Compiler implements ports.StyleCompiler. The Dart Sass process is started on
// the first Sass compilation and shared by all later ones.
type Compiler struct {
	logger ports.Logger
	binary string

	mu         sync.Mutex
	transpiler *godartsass.Transpiler
}

// NewCompiler creates a Compiler running binary.
func NewCompiler(logger ports.Logger, binary string) *Compiler {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Compiler{logger: logger, binary: binary}
}

// Compile compiles req to CSS. Plain CSS is returned unchanged.
func (c *Compiler) Compile(ctx context.Context, req ports.StyleRequest) (string, error) {
	if req.Syntax == ports.SyntaxCSS {
		return req.Source, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t, err := c.start()
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStyleCompileFailed.Error()), "path", req.Path)
	}

	res, err := t.Execute(godartsass.Args{
		Source:       req.Source,
		URL:          fileURL(req.Path),
		SourceSyntax: sourceSyntax(req.Syntax),
		OutputStyle:  godartsass.OutputStyleExpanded,
		IncludePaths: req.IncludePaths,
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrStyleCompileFailed.Error()), "path", req.Path)
	}
	return res.CSS, nil
}

// Close shuts the Dart Sass process down, if it was started.
func (c *Compiler) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler == nil {
		return nil
	}
	t := c.transpiler
	c.transpiler = nil
	if t.IsShutDown() {
		return nil
	}
	return t.Close()
}

func (c *Compiler) start() (*godartsass.Transpiler, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transpiler != nil && !c.transpiler.IsShutDown() {
		return c.transpiler, nil
	}

	t, err := godartsass.Start(godartsass.Options{
		DartSassEmbeddedFilename: c.binary,
		LogEventHandler: func(e godartsass.LogEvent) {
			if e.Type == godartsass.LogEventTypeDebug {
				c.logger.Debug(e.Message)
				return
			}
			c.logger.Warn(e.Message)
		},
	})
	if err != nil {
		return nil, zerr.With(err, "binary", c.binary)
	}
	c.transpiler = t
	return t, nil
}

func sourceSyntax(s ports.StyleSyntax) godartsass.SourceSyntax {
	switch s {
	case ports.SyntaxSass:
		return godartsass.SourceSyntaxSASS
	case ports.SyntaxCSS:
		return godartsass.SourceSyntaxCSS
	default:
		return godartsass.SourceSyntaxSCSS
	}
}

// fileURL turns an absolute path into the file URL Dart Sass resolves
// relative imports against.
func fileURL(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// SyntaxFor returns the syntax implied by a stylesheet extension.
func SyntaxFor(path string) ports.StyleSyntax {
	switch filepath.Ext(path) {
	case ".sass":
		return ports.SyntaxSass
	case ".scss":
		return ports.SyntaxSCSS
	default:
		return ports.SyntaxCSS
	}
}
