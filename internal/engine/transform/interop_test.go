package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/ngbuild/internal/engine/transform"
)

func TestDynamicImportInterop_Collect(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "package import",
			src:  "const m = import('foo');\n",
			want: "const m = import('foo').then((m) => ({ ...m.default, ...m }));\n",
		},
		{
			name: "existing continuation is preserved",
			src:  "import('foo').then((x) => x.bar);\n",
			want: "import('foo').then((m) => ({ ...m.default, ...m })).then((x) => x.bar);\n",
		},
		{
			name: "template literal package import",
			src:  "import(`foo/${name}`);\n",
			want: "import(`foo/${name}`).then((m) => ({ ...m.default, ...m }));\n",
		},
		{
			name: "relative import",
			src:  "import('./foo');\n",
			want: "import('./foo');\n",
		},
		{
			name: "relative template literal import",
			src:  "import(`./foo`);\n",
			want: "import(`./foo`);\n",
		},
		{
			name: "non literal specifier",
			src:  "import(name);\n",
			want: "import(name);\n",
		},
		{
			name: "eager import is left to the eager transform",
			src:  "import(/* webpackMode: 'eager' */ 'foo');\n",
			want: "import(/* webpackMode: 'eager' */ 'foo');\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := apply(t, "a.ts", tt.src, transform.DynamicImportInterop{})
			assert.Equal(t, tt.want, out.Code)
		})
	}
}
