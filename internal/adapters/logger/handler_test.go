package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/ngbuild/internal/adapters/logger"
)

func TestPrettyHandler_Handle_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "info level", level: slog.LevelInfo, msg: "Build started", goldenName: "handler_info"},
		{name: "warn level", level: slog.LevelWarn, msg: "untyped constructor parameter", goldenName: "handler_warn"},
		{name: "error level", level: slog.LevelError, msg: "Build failed", goldenName: "handler_error"},
		{name: "debug level filtered", level: slog.LevelDebug, msg: "transformed a.ts", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			lg.Log(t.Context(), tt.level, tt.msg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil)).With("project", "my-app").WithGroup("build")

	lg.Info("Build succeeded", "errors", 0, "warnings", 2)

	g := goldie.New(t)
	g.Assert(t, "handler_attrs", buf.Bytes())
}

func TestPrettyHandler_MultilineMessage(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))

	lg.Error("[ERROR] Could not resolve \"./missing\"\n\n    src/main.ts:1:7:\n      1 │ import './missing';\n\n")

	g := goldie.New(t)
	g.Assert(t, "handler_multiline", buf.Bytes())
}

func TestPrettyHandler_QuotesAttrValues(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewPrettyHandler(buf, nil))

	lg.Warn("style include path missing", "path", "src/my styles", "count", 1)

	assert.Equal(t, "! style include path missing path=\"src/my styles\" count=1\n", buf.String())
}
