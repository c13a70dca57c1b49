package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/ngbuild/internal/core/domain"
)

func TestApplyEdits(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		edits []Edit
		want  string
	}{
		{
			name: "no edits",
			src:  "abc",
			want: "abc",
		},
		{
			name:  "unordered edits",
			src:   "abcdef",
			edits: []Edit{{Start: 4, End: 5, Text: "E"}, {Start: 0, End: 1, Text: "A"}},
			want:  "AbcdEf",
		},
		{
			name: "insertions keep recording order and precede a replacement",
			src:  "import('x')",
			edits: []Edit{
				{Start: 0, End: 0, Text: "Promise.resolve("},
				{Start: 0, End: 6, Text: "require"},
				{Start: 11, End: 11, Text: ")"},
			},
			want: "Promise.resolve(require('x'))",
		},
		{
			name:  "removal",
			src:   "@Inject(A) foo",
			edits: []Edit{{Start: 0, End: 11}},
			want:  "foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applyEdits([]byte(tt.src), tt.edits)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEdits_Overlap(t *testing.T) {
	_, err := applyEdits([]byte("abcdef"), []Edit{{Start: 0, End: 3, Text: "x"}, {Start: 2, End: 4, Text: "y"}})
	require.ErrorIs(t, err, domain.ErrConflictingEdits)
}
