package transform

import (
	"bytes"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"
)

// WorkerURL replaces worker entry point URLs with requires carrying Suffix, so
// the bundler can build the worker separately and substitute its output file.
//
//	new Worker(new URL('./w', import.meta.url))  ->  new Worker(require('./w?worker-url'))
type WorkerURL struct {
	Suffix string
}

// Name implements Transform.
func (WorkerURL) Name() string { return "new-worker-url" }

// ShouldApply implements Transform.
func (WorkerURL) ShouldApply(src []byte) bool {
	return bytes.Contains(src, []byte("new URL")) &&
		bytes.Contains(src, []byte("import.meta.url")) &&
		(bytes.Contains(src, []byte("new Worker")) || bytes.Contains(src, []byte("new SharedWorker")))
}

// Collect implements Transform.
func (t WorkerURL) Collect(f *File) error {
	var err error
	walk(f.Root, func(n *sitter.Node) bool {
		if err != nil {
			return false
		}
		if !isWorkerConstruction(n, f.Src) {
			return true
		}
		// Only the script URL is rewritten; later arguments are worker options.
		a := args(n.ChildByFieldName("arguments"))
		if len(a) == 0 || !isImportMetaURL(a[0], f.Src) {
			return true
		}
		path := args(a[0].ChildByFieldName("arguments"))[0]
		lit, ok := stringValue(path, f.Src)
		if !ok {
			err = f.Errorf(path, "worker URL must be a string literal")
			return false
		}
		f.Replace(a[0], "require("+quote(lit+t.Suffix)+")")
		return true
	})
	return err
}

func isWorkerConstruction(n *sitter.Node, src []byte) bool {
	if n.Type() != "new_expression" {
		return false
	}
	ctor := n.ChildByFieldName("constructor")
	if ctor == nil || ctor.Type() != "identifier" {
		return false
	}
	name := ctor.Content(src)
	return name == "Worker" || name == "SharedWorker"
}

// isImportMetaURL matches new URL(x, import.meta.url).
func isImportMetaURL(n *sitter.Node, src []byte) bool {
	if n.Type() != "new_expression" {
		return false
	}
	ctor := n.ChildByFieldName("constructor")
	if ctor == nil || ctor.Content(src) != "URL" {
		return false
	}
	a := args(n.ChildByFieldName("arguments"))
	return len(a) == 2 && stripSpace(a[1].Content(src)) == "import.meta.url"
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
