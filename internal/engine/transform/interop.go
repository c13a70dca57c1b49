package transform

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const interopContinuation = ".then((m) => ({ ...m.default, ...m }))"

// DynamicImportInterop merges the default export of dynamically imported
// packages into the module namespace, so that CommonJS packages expose their
// members the same way they do under webpack.
//
//	import('foo')  ->  import('foo').then((m) => ({ ...m.default, ...m }))
//
// Relative imports are left alone.
type DynamicImportInterop struct{}

// Name implements Transform.
func (DynamicImportInterop) Name() string { return "dynamic-import-interop" }

// ShouldApply implements Transform.
func (DynamicImportInterop) ShouldApply(src []byte) bool {
	return bytes.Contains(src, []byte("import("))
}

// Collect implements Transform.
func (DynamicImportInterop) Collect(f *File) error {
	walk(f.Root, func(n *sitter.Node) bool {
		if !isDynamicImport(n) || isEagerImport(n, f.Src) || inTypePosition(n) {
			return true
		}
		spec, ok := leadingText(firstNamed(n.ChildByFieldName("arguments")), f.Src)
		if !ok || strings.HasPrefix(spec, ".") {
			return true
		}
		f.Insert(n.EndByte(), interopContinuation)
		return true
	})
	return nil
}
