package transform

import (
	"bytes"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// InlineResources rewrites the templateUrl and styleUrls of @Component
// decorators into require calls of the referenced files carrying Suffix, so the
// bundler loads them as inlined resources.
//
//	templateUrl: './a.html'  ->  template: require('./a.html?ng-template')
//	styleUrls: ['./a.scss']  ->  styles: [require('./a.scss?ng-template').default]
type InlineResources struct {
	Suffix string
}

// Name implements Transform.
func (InlineResources) Name() string { return "inline-component-resources" }

// ShouldApply implements Transform. It also matches styleUrl and styleUrls.
func (InlineResources) ShouldApply(src []byte) bool {
	return bytes.Contains(src, []byte("templateUrl")) || bytes.Contains(src, []byte("styleUrl"))
}

// Collect implements Transform.
func (t InlineResources) Collect(f *File) error {
	var err error
	walk(f.Root, func(n *sitter.Node) bool {
		if err != nil {
			return false
		}
		if !isClass(n) {
			return true
		}
		for _, d := range classDecorators(n) {
			dec, ok := callDecorator(d, f.Src)
			if !ok || dec.name != "Component" || len(dec.args) == 0 || dec.args[0].Type() != "object" {
				continue
			}
			if err = t.rewrite(f, dec.args[0]); err != nil {
				return false
			}
		}
		return true
	})
	return err
}

func (t InlineResources) rewrite(f *File, obj *sitter.Node) error {
	var (
		styles    *sitter.Node
		styleRefs []*sitter.Node
		requires  []string
	)

	for _, pair := range childrenOfType(obj, "pair") {
		value := pair.ChildByFieldName("value")
		switch propertyName(pair, f.Src) {
		case "templateUrl":
			url, ok := stringValue(value, f.Src)
			if !ok {
				return f.Errorf(value, "templateUrl must be a string literal")
			}
			f.Replace(pair, "template: require("+quote(t.resource(url))+")")
		case "styleUrl":
			url, ok := stringValue(value, f.Src)
			if !ok {
				return f.Errorf(value, "styleUrl must be a string literal")
			}
			styleRefs = append(styleRefs, pair)
			requires = append(requires, t.styleRequire(url))
		case "styleUrls":
			if value.Type() != "array" {
				return f.Errorf(value, "styleUrls must be an array literal")
			}
			for _, el := range args(value) {
				url, ok := stringValue(el, f.Src)
				if !ok {
					return f.Errorf(el, "styleUrls entries must be string literals")
				}
				requires = append(requires, t.styleRequire(url))
			}
			styleRefs = append(styleRefs, pair)
		case "styles":
			styles = pair
		}
	}

	if len(styleRefs) == 0 {
		return nil
	}
	joined := strings.Join(requires, ", ")

	if styles == nil {
		f.Replace(styleRefs[0], "styles: ["+joined+"]")
		for _, ref := range styleRefs[1:] {
			removePair(f, ref)
		}
		return nil
	}

	value := styles.ChildByFieldName("value")
	switch value.Type() {
	case "array":
		open := value.Child(0)
		if len(args(value)) > 0 && joined != "" {
			joined += ", "
		}
		f.Insert(open.EndByte(), joined)
	case "string", "template_string":
		if joined != "" {
			joined += ", "
		}
		f.Replace(value, "["+joined+f.Text(value)+"]")
	default:
		return f.Errorf(value, "styles must be a string or an array literal when combined with styleUrls")
	}
	for _, ref := range styleRefs {
		removePair(f, ref)
	}
	return nil
}

func (t InlineResources) resource(url string) string {
	if !strings.HasPrefix(url, ".") {
		url = "./" + url
	}
	return url + t.Suffix
}

func (t InlineResources) styleRequire(url string) string {
	return "require(" + quote(t.resource(url)) + ").default"
}

// removePair removes an object property together with its separating comma.
// A property written on its own line is removed with the whole line.
func removePair(f *File, pair *sitter.Node) {
	next := pair.NextSibling()
	if next == nil || next.Type() != "," {
		if prev := pair.PrevSibling(); prev != nil && prev.Type() == "," {
			f.Remove(prev.StartByte(), pair.EndByte())
			return
		}
		f.Remove(pair.StartByte(), pair.EndByte())
		return
	}

	start, end := pair.StartByte(), next.EndByte()
	for int(end) < len(f.Src) && isBlank(f.Src[end]) {
		end++
	}
	lineStart := start
	for lineStart > 0 && isBlank(f.Src[lineStart-1]) {
		lineStart--
	}
	if int(end) < len(f.Src) && f.Src[end] == '\n' && (lineStart == 0 || f.Src[lineStart-1] == '\n') {
		start, end = lineStart, end+1
	}
	f.Remove(start, end)
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
