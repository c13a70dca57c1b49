package transform

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const eagerModeMarker = "webpackMode: 'eager'"

// EagerImports turns dynamic imports marked with a webpackMode: 'eager'
// comment into synchronous requires that still return a promise, so the
// imported module lands in the importing chunk.
//
//	import(/* webpackMode: 'eager' */ 'x')  ->  Promise.resolve(require(/* webpackMode: 'eager' */ 'x'))
type EagerImports struct{}

// Name implements Transform.
func (EagerImports) Name() string { return "webpack-eager-mode" }

// ShouldApply implements Transform.
func (EagerImports) ShouldApply(src []byte) bool {
	return bytes.Contains(src, []byte(eagerModeMarker))
}

// Collect implements Transform.
func (EagerImports) Collect(f *File) error {
	walk(f.Root, func(n *sitter.Node) bool {
		if isDynamicImport(n) && isEagerImport(n, f.Src) {
			fn := n.ChildByFieldName("function")
			f.Insert(n.StartByte(), "Promise.resolve(")
			f.Replace(fn, "require")
			f.Insert(n.EndByte(), ")")
		}
		return true
	})
	return nil
}

// isDynamicImport reports whether n is an import(...) call.
func isDynamicImport(n *sitter.Node) bool {
	if n.Type() != "call_expression" {
		return false
	}
	fn := n.ChildByFieldName("function")
	return fn != nil && fn.Type() == "import"
}

// isEagerImport reports whether the import call carries the eager marker in a
// comment before its string or template literal argument.
func isEagerImport(call *sitter.Node, src []byte) bool {
	arguments := call.ChildByFieldName("arguments")
	if arguments == nil {
		return false
	}
	for i := 0; i < int(arguments.NamedChildCount()); i++ {
		c := arguments.NamedChild(i)
		switch c.Type() {
		case "comment":
			if strings.Contains(c.Content(src), eagerModeMarker) {
				next := c.NextNamedSibling()
				for next != nil && next.Type() == "comment" {
					next = next.NextNamedSibling()
				}
				return next != nil && (next.Type() == "string" || next.Type() == "template_string")
			}
		default:
			return false
		}
	}
	return false
}
