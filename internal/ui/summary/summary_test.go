package summary_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ngbuild/internal/core/ports"
	"go.trai.ch/ngbuild/internal/ui/summary"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "0 bytes"},
		{n: 999, want: "999 bytes"},
		{n: 1000, want: "1.00 kB"},
		{n: 12340, want: "12.34 kB"},
		{n: 2_500_000, want: "2.50 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, summary.FormatSize(tt.n))
		})
	}
}

func TestRender(t *testing.T) {
	out := summary.Render([]ports.OutputFile{
		{Name: "polyfills.BBBB.js", Bytes: 300},
		{Name: "main.AAAA.js", Bytes: 12340},
		{Name: "styles.CCCC.css", Bytes: 200},
	})

	assert.Contains(t, out, "Output file")
	assert.Contains(t, out, "12.34 kB")
	assert.Contains(t, out, "3 files")
	assert.Contains(t, out, "12.84 kB")

	main := strings.Index(out, "main.AAAA.js")
	polyfills := strings.Index(out, "polyfills.BBBB.js")
	styles := strings.Index(out, "styles.CCCC.css")
	assert.Less(t, main, polyfills)
	assert.Less(t, polyfills, styles)
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, summary.Render(nil))
}
