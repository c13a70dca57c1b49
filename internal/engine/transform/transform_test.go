package transform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/engine/transform"
)

// apply runs the given transforms over src and fails the test on error.
func apply(t *testing.T, path, src string, transforms ...transform.Transform) *transform.Output {
	t.Helper()
	out, err := transform.Apply(t.Context(), path, []byte(src), transforms)
	require.NoError(t, err)
	return out
}

func allTransforms() []transform.Transform {
	return []transform.Transform{
		transform.AngularDI{},
		transform.InlineResources{Suffix: domain.ResourceSuffix},
		transform.EagerImports{},
		transform.DynamicImportInterop{},
		transform.WorkerURL{Suffix: domain.WorkerSuffix},
	}
}

func TestApply_Golden(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
	}{
		{name: "component with every transform", fixture: "component.ts"},
		{name: "tsx file", fixture: "widget.tsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", tt.fixture))
			require.NoError(t, err)

			transforms := transform.Matching(src, allTransforms())
			out, err := transform.Apply(t.Context(), tt.fixture, src, transforms)
			require.NoError(t, err)
			assert.True(t, out.Changed)

			g := goldie.New(t)
			g.Assert(t, tt.fixture, []byte(out.Code))
		})
	}
}

func TestApply_ReportsAppliedTransforms(t *testing.T) {
	src := "@Injectable()\nclass A {\n  constructor(foo: Foo) {}\n  load() { return import('./lazy'); }\n}\n"

	out := apply(t, "a.ts", src, transform.AngularDI{}, transform.DynamicImportInterop{})

	assert.Equal(t, []string{"angular-di"}, out.Applied)
}

func TestApply_NoTransforms(t *testing.T) {
	src := "export const a = 1;\n"

	out := apply(t, "a.ts", src)

	assert.Equal(t, src, out.Code)
	assert.False(t, out.Changed)
	assert.Empty(t, out.Applied)
}

func TestMatching(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "plain module",
			src:  "export const a = 1;",
			want: nil,
		},
		{
			name: "component",
			src:  "@Component({ templateUrl: './a.html' }) class A {}",
			want: []string{"angular-di", "inline-component-resources"},
		},
		{
			name: "eager import",
			src:  "import(/* webpackMode: 'eager' */ 'zone.js');",
			want: []string{"webpack-eager-mode", "dynamic-import-interop"},
		},
		{
			name: "worker",
			src:  "new Worker(new URL('./w', import.meta.url));",
			want: []string{"new-worker-url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for _, tr := range transform.Matching([]byte(tt.src), allTransforms()) {
				names = append(names, tr.Name())
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
