package transform

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// walk visits n and its descendants in source order.
// Children are skipped when visit returns false.
func walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// args returns the argument expressions of an arguments node, skipping comments.
func args(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() != "comment" {
			out = append(out, c)
		}
	}
	return out
}

// childrenOfType returns the direct children of n with the given node type.
func childrenOfType(n *sitter.Node, typ string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			out = append(out, c)
		}
	}
	return out
}

// firstNamed returns the first named non-comment child of n.
func firstNamed(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() != "comment" {
			return c
		}
	}
	return nil
}

// decorator is a decorator in call form, e.g. @Inject(TOKEN).
type decorator struct {
	node *sitter.Node
	name string
	args []*sitter.Node
}

// callDecorator returns the decorator when d is an identifier call such as @Name(...).
func callDecorator(d *sitter.Node, src []byte) (decorator, bool) {
	call := firstNamed(d)
	if call == nil || call.Type() != "call_expression" {
		return decorator{}, false
	}
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" {
		return decorator{}, false
	}
	return decorator{
		node: d,
		name: fn.Content(src),
		args: args(call.ChildByFieldName("arguments")),
	}, true
}

// classDecorators returns the decorators of a class node.
// Decorators written before `export` belong to the enclosing export statement.
func classDecorators(class *sitter.Node) []*sitter.Node {
	decs := childrenOfType(class, "decorator")
	if parent := class.Parent(); parent != nil && parent.Type() == "export_statement" {
		decs = append(childrenOfType(parent, "decorator"), decs...)
	}
	return decs
}

// isClass reports whether n declares a class.
func isClass(n *sitter.Node) bool {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration", "class":
		return true
	}
	return false
}

// stringValue returns the value of a string literal or a template literal
// without substitutions.
func stringValue(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return unescape(raw[1 : len(raw)-1]), true
	case "template_string":
		if len(childrenOfType(n, "template_substitution")) > 0 {
			return "", false
		}
		raw := n.Content(src)
		if len(raw) < 2 {
			return "", false
		}
		return raw[1 : len(raw)-1], true
	}
	return "", false
}

// leadingText returns the literal prefix of a string or template literal,
// up to the first substitution.
func leadingText(n *sitter.Node, src []byte) (string, bool) {
	if n == nil {
		return "", false
	}
	if n.Type() != "template_string" {
		return stringValue(n, src)
	}
	end := n.EndByte() - 1
	if subs := childrenOfType(n, "template_substitution"); len(subs) > 0 {
		end = subs[0].StartByte()
	}
	return string(src[n.StartByte()+1 : end]), true
}

// propertyName returns the key of an object pair when it is an identifier or string.
func propertyName(pair *sitter.Node, src []byte) string {
	key := pair.ChildByFieldName("key")
	if key == nil {
		return ""
	}
	switch key.Type() {
	case "property_identifier":
		return key.Content(src)
	case "string":
		v, _ := stringValue(key, src)
		return v
	}
	return ""
}

// memberName returns the declared name of a class member.
func memberName(member *sitter.Node, src []byte) string {
	if name := member.ChildByFieldName("name"); name != nil {
		return name.Content(src)
	}
	if name := firstNamedOfType(member, "property_identifier"); name != nil {
		return name.Content(src)
	}
	return ""
}

func firstNamedOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

// inTypePosition reports whether n sits inside a type annotation, where
// `import('x')` denotes a type rather than a runtime call.
func inTypePosition(n *sitter.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch p.Type() {
		case "type_annotation", "type_alias_declaration", "type_arguments", "type_query",
			"interface_declaration", "lookup_type", "generic_type":
			return true
		case "statement_block", "program", "class_body":
			return false
		}
	}
	return false
}

// quote renders s as a single-quoted JavaScript string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// unescape resolves the escapes that can appear in module specifiers.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
