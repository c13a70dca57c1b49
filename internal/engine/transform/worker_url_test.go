package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/ngbuild/internal/engine/transform"
)

func TestWorkerURL_Collect(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "shared worker",
			src:  "new SharedWorker(new URL('./w', import.meta.url));\n",
			want: "new SharedWorker(require('./w?worker-url'));\n",
		},
		{
			name: "worker with options",
			src:  "const w = new Worker(new URL('./app.worker', import.meta.url), { type: 'module' });\n",
			want: "const w = new Worker(require('./app.worker?worker-url'), { type: 'module' });\n",
		},
		{
			name: "url outside a worker",
			src:  "const u = new URL('./w', import.meta.url);\nnew Worker(u);\n",
			want: "const u = new URL('./w', import.meta.url);\nnew Worker(u);\n",
		},
		{
			name: "url in a later argument",
			src:  "new Worker(script, { name: new URL('./w', import.meta.url).href });\nnew Worker(opts, new URL('./w', import.meta.url));\n",
			want: "new Worker(script, { name: new URL('./w', import.meta.url).href });\nnew Worker(opts, new URL('./w', import.meta.url));\n",
		},
		{
			name: "no arguments",
			src:  "new Worker();\nconst u = new URL('./w', import.meta.url);\n",
			want: "new Worker();\nconst u = new URL('./w', import.meta.url);\n",
		},
		{
			name: "other base url",
			src:  "new Worker(new URL('./w', location.href));\n",
			want: "new Worker(new URL('./w', location.href));\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := apply(t, "a.ts", tt.src, transform.WorkerURL{Suffix: domain.WorkerSuffix})
			assert.Equal(t, tt.want, out.Code)
		})
	}
}

func TestWorkerURL_ComputedPathFails(t *testing.T) {
	src := "new Worker(new URL(path, import.meta.url));\n"

	_, err := transform.Apply(t.Context(), "a.ts", []byte(src),
		[]transform.Transform{transform.WorkerURL{Suffix: domain.WorkerSuffix}})

	require.ErrorIs(t, err, domain.ErrTransformFailed)
}

func TestWorkerURL_ShouldApply(t *testing.T) {
	tr := transform.WorkerURL{}
	assert.True(t, tr.ShouldApply([]byte("new Worker(new URL('./w', import.meta.url))")))
	assert.False(t, tr.ShouldApply([]byte("new URL('./w', import.meta.url)")))
	assert.False(t, tr.ShouldApply([]byte("new Worker('./w.js')")))
}
