package transform

import (
	"slices"
	"strings"

	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Edit replaces the source bytes [Start, End) with Text.
// Start == End is an insertion.
type Edit struct {
	Start int
	End   int
	Text  string
}

// applyEdits splices edits into src in one pass.
// Insertions at the same offset keep the order in which they were recorded and
// precede a replacement starting there. Overlapping replacements are rejected.
func applyEdits(src []byte, edits []Edit) (string, error) {
	if len(edits) == 0 {
		return string(src), nil
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return a.End - b.End
	})

	var b strings.Builder
	b.Grow(len(src) + 128)

	pos := 0
	for _, e := range sorted {
		if e.Start < pos {
			err := zerr.Wrap(domain.ErrConflictingEdits, "edits overlap")
			return "", zerr.With(zerr.With(err, "start", e.Start), "previous_end", pos)
		}
		b.Write(src[pos:e.Start])
		b.WriteString(e.Text)
		pos = e.End
	}
	b.Write(src[pos:])

	return b.String(), nil
}
