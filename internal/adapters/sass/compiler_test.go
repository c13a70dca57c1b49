package sass_test

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/adapters/sass"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newCompiler(t *testing.T, binary string) *sass.Compiler {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	c := sass.NewCompiler(log, binary)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCompiler_PlainCSSPassesThrough(t *testing.T) {
	c := newCompiler(t, "ngbuild-missing-sass")

	css, err := c.Compile(t.Context(), ports.StyleRequest{Source: ".a{color:red}", Syntax: ports.SyntaxCSS})

	require.NoError(t, err)
	assert.Equal(t, ".a{color:red}", css)
}

func TestCompiler_MissingBinary(t *testing.T) {
	c := newCompiler(t, "ngbuild-missing-sass")

	_, err := c.Compile(t.Context(), ports.StyleRequest{Source: "$c: red; .a { color: $c; }", Path: "/app/a.scss"})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrStyleCompileFailed.Error())
}

func TestCompiler_Compile(t *testing.T) {
	if _, err := exec.LookPath(sass.DefaultBinary); err != nil {
		t.Skip("dart sass is not installed")
	}
	c := newCompiler(t, sass.DefaultBinary)

	css, err := c.Compile(t.Context(), ports.StyleRequest{
		Source: "$c: red;\n.a { .b { color: $c; } }\n",
		Path:   filepath.Join(t.TempDir(), "a.scss"),
		Syntax: ports.SyntaxSCSS,
	})

	require.NoError(t, err)
	assert.Equal(t, ".a .b {\n  color: red;\n}", strings.TrimSpace(css))
}

func TestSyntaxFor(t *testing.T) {
	assert.Equal(t, ports.SyntaxSCSS, sass.SyntaxFor("a.scss"))
	assert.Equal(t, ports.SyntaxSass, sass.SyntaxFor("a.sass"))
	assert.Equal(t, ports.SyntaxCSS, sass.SyntaxFor("a.css"))
}
