// Package transform implements the source rewrites ngbuild applies to
// TypeScript files before handing them to esbuild.
//
// Every file is parsed once. Each matching Transform walks the shared,
// read-only syntax tree and records Edits; the edits of all transforms are
// then spliced into the source in a single pass.
package transform

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"go.trai.ch/ngbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// Transform rewrites one syntactic pattern.
type Transform interface {
	// Name identifies the transform in logs and traces.
	Name() string
	// ShouldApply is a cheap textual check run before parsing.
	ShouldApply(src []byte) bool
	// Collect records the edits for f. It must not retain f.
	Collect(f *File) error
}

// File is one parsed source file shared by the transforms of a pass.
type File struct {
	Path string
	Src  []byte
	Root *sitter.Node

	edits    []Edit
	warnings []domain.Diagnostic
}

// Text returns the source text of n.
func (f *File) Text(n *sitter.Node) string {
	return n.Content(f.Src)
}

// Replace records a replacement of n with text.
func (f *File) Replace(n *sitter.Node, text string) {
	f.edits = append(f.edits, Edit{Start: int(n.StartByte()), End: int(n.EndByte()), Text: text})
}

// Insert records an insertion of text at offset.
func (f *File) Insert(offset uint32, text string) {
	f.edits = append(f.edits, Edit{Start: int(offset), End: int(offset), Text: text})
}

// Remove records the removal of the bytes [start, end).
func (f *File) Remove(start, end uint32) {
	if end > start {
		f.edits = append(f.edits, Edit{Start: int(start), End: int(end)})
	}
}

// RemoveWithSpace removes n and the spaces or tabs that follow it on the same
// line. When n is alone on its line the whole line goes, indentation and line
// break included.
func (f *File) RemoveWithSpace(n *sitter.Node) {
	start, end := n.StartByte(), n.EndByte()
	for int(end) < len(f.Src) && isBlank(f.Src[end]) {
		end++
	}

	lineStart := start
	for lineStart > 0 && isBlank(f.Src[lineStart-1]) {
		lineStart--
	}
	atLineStart := lineStart == 0 || f.Src[lineStart-1] == '\n'
	if atLineStart && (int(end) == len(f.Src) || f.Src[end] == '\n') {
		start = lineStart
		if int(end) < len(f.Src) {
			end++
		}
	}
	f.Remove(start, end)
}

// Warn records a warning located at n.
func (f *File) Warn(n *sitter.Node, format string, args ...any) {
	f.warnings = append(f.warnings, f.diagnostic(n, fmt.Sprintf(format, args...)))
}

// Errorf returns a transform error located at n.
func (f *File) Errorf(n *sitter.Node, format string, args ...any) error {
	d := f.diagnostic(n, fmt.Sprintf(format, args...))
	err := zerr.Wrap(domain.ErrTransformFailed, d.Text)
	err = zerr.With(err, "file", d.File)
	err = zerr.With(err, "line", d.Line)
	return zerr.With(err, "column", d.Column)
}

func (f *File) diagnostic(n *sitter.Node, text string) domain.Diagnostic {
	p := n.StartPoint()
	return domain.Diagnostic{
		Text:     text,
		File:     f.Path,
		Line:     int(p.Row) + 1,
		Column:   int(p.Column),
		LineText: lineAt(f.Src, int(n.StartByte())),
	}
}

func lineAt(src []byte, offset int) string {
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := bytes.IndexByte(src[offset:], '\n')
	if end < 0 {
		return string(src[start:])
	}
	return string(src[start : offset+end])
}

// Output is the result of applying transforms to one file.
type Output struct {
	Code     string
	Changed  bool
	Applied  []string
	Warnings []domain.Diagnostic
}

// Matching returns the transforms whose ShouldApply accepts src, in order.
func Matching(src []byte, transforms []Transform) []Transform {
	var out []Transform
	for _, t := range transforms {
		if t.ShouldApply(src) {
			out = append(out, t)
		}
	}
	return out
}

// Apply parses src once and runs transforms over it.
// Callers are expected to have filtered transforms with Matching; Apply does
// not re-check ShouldApply.
func Apply(ctx context.Context, path string, src []byte, transforms []Transform) (*Output, error) {
	if len(transforms) == 0 {
		return &Output{Code: string(src)}, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(languageFor(path))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrParseFailed.Error()), "path", path)
	}
	defer tree.Close()

	f := &File{Path: path, Src: src, Root: tree.RootNode()}
	applied := make([]string, 0, len(transforms))
	for _, t := range transforms {
		before := len(f.edits)
		if err := t.Collect(f); err != nil {
			return nil, zerr.With(err, "transform", t.Name())
		}
		if len(f.edits) > before {
			applied = append(applied, t.Name())
		}
	}

	if len(f.edits) == 0 {
		return &Output{Code: string(src), Warnings: f.warnings}, nil
	}

	code, err := applyEdits(src, f.edits)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &Output{
		Code:     code,
		Changed:  true,
		Applied:  applied,
		Warnings: f.warnings,
	}, nil
}

func languageFor(path string) *sitter.Language {
	if strings.EqualFold(filepath.Ext(path), ".tsx") {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}
