package transform

import (
	"bytes"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// injectables are the class decorators that make Angular read constructor metadata.
var injectables = []string{"Component", "Directive", "Pipe", "Injectable", "NgModule"}

// parameterDecorators are the Angular constructor parameter decorators.
var parameterDecorators = []string{"Attribute", "Host", "Inject", "Optional", "Self", "SkipSelf"}

var boxedPrimitives = map[string]string{
	"string":  "String",
	"number":  "Number",
	"boolean": "Boolean",
	"object":  "Object",
	"symbol":  "Symbol",
	"bigint":  "BigInt",
}

// AngularDI adds a static ctorParameters member to injectable classes so that
// the JIT compiler can resolve constructor dependencies without emitted
// decorator metadata.
//
//	@Injectable()
//	class MyService {
//	  constructor(@Optional() private foo: Foo) {}
//	}
//
// becomes
//
//	@Injectable()
//	class MyService { static ctorParameters = () => [{ type: Foo, decorators: [{ type: Optional }] }];
//	  constructor(private foo: Foo) {}
//	}
type AngularDI struct{}

// Name implements Transform.
func (AngularDI) Name() string { return "angular-di" }

// ShouldApply implements Transform.
func (AngularDI) ShouldApply(src []byte) bool {
	for _, name := range injectables {
		if bytes.Contains(src, []byte("@"+name)) {
			return true
		}
	}
	return false
}

// Collect implements Transform.
func (AngularDI) Collect(f *File) error {
	var err error
	walk(f.Root, func(n *sitter.Node) bool {
		if err != nil {
			return false
		}
		if isClass(n) && isInjectable(n, f.Src) {
			err = annotateClass(f, n)
		}
		return true
	})
	return err
}

func isInjectable(class *sitter.Node, src []byte) bool {
	for _, d := range classDecorators(class) {
		if dec, ok := callDecorator(d, src); ok && slices.Contains(injectables, dec.name) {
			return true
		}
	}
	return false
}

func annotateClass(f *File, class *sitter.Node) error {
	body := class.ChildByFieldName("body")
	if body == nil || body.ChildCount() == 0 {
		return nil
	}

	var ctor *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch memberName(member, f.Src) {
		case "ctorParameters":
			return nil
		case "constructor":
			if member.Type() == "method_definition" {
				ctor = member
			}
		}
	}
	if ctor == nil {
		return nil
	}

	var params []*sitter.Node
	for _, p := range args(ctor.ChildByFieldName("parameters")) {
		if p.Type() == "required_parameter" || p.Type() == "optional_parameter" {
			params = append(params, p)
		}
	}
	if len(params) == 0 {
		return nil
	}

	descriptors := make([]string, 0, len(params))
	for _, p := range params {
		d, err := describeParameter(f, p)
		if err != nil {
			return err
		}
		descriptors = append(descriptors, d)
	}

	f.Insert(body.Child(0).EndByte(), " static ctorParameters = () => ["+strings.Join(descriptors, ", ")+"];")
	return nil
}

// describeParameter renders the descriptor of one constructor parameter and
// removes its Angular decorators from the constructor.
func describeParameter(f *File, param *sitter.Node) (string, error) {
	pattern := param.ChildByFieldName("pattern")
	if pattern == nil || pattern.Type() != "identifier" {
		return "", f.Errorf(param, "unsupported constructor parameter %q in injectable class", f.Text(param))
	}

	var (
		token     string
		attribute bool
		aux       []string
		angular   bool
	)
	for _, d := range childrenOfType(param, "decorator") {
		dec, ok := callDecorator(d, f.Src)
		if !ok || !slices.Contains(parameterDecorators, dec.name) {
			continue
		}
		angular = true
		f.RemoveWithSpace(d)

		if dec.name == "Inject" {
			if len(dec.args) == 0 {
				return "", f.Errorf(d, "@Inject() requires a token")
			}
			token = f.Text(dec.args[0])
			continue
		}
		if dec.name == "Attribute" {
			attribute = true
		}
		aux = append(aux, auxDescriptor(f, dec))
	}

	typ := token
	switch {
	case typ != "":
	case attribute:
		typ = "String"
	default:
		typ = annotatedType(f, param.ChildByFieldName("type"))
	}
	if typ == "" {
		typ = "undefined"
		if !angular {
			f.Warn(param, "cannot resolve the injection type of constructor parameter %q", f.Text(pattern))
		}
	}

	if len(aux) == 0 {
		return "{ type: " + typ + " }", nil
	}
	return "{ type: " + typ + ", decorators: [" + strings.Join(aux, ", ") + "] }", nil
}

func auxDescriptor(f *File, dec decorator) string {
	if len(dec.args) == 0 {
		return "{ type: " + dec.name + " }"
	}
	texts := make([]string, len(dec.args))
	for i, a := range dec.args {
		texts[i] = f.Text(a)
	}
	return "{ type: " + dec.name + ", args: [" + strings.Join(texts, ", ") + "] }"
}

// annotatedType returns the runtime value named by a type annotation, or ""
// when the annotation does not name one.
func annotatedType(f *File, annotation *sitter.Node) string {
	if annotation == nil {
		return ""
	}
	return runtimeType(f, firstNamed(annotation))
}

func runtimeType(f *File, t *sitter.Node) string {
	if t == nil {
		return ""
	}
	switch t.Type() {
	case "type_identifier", "nested_type_identifier":
		return f.Text(t)
	case "generic_type":
		return runtimeType(f, t.ChildByFieldName("name"))
	case "predefined_type":
		return boxedPrimitives[f.Text(t)]
	case "parenthesized_type":
		return runtimeType(f, firstNamed(t))
	case "union_type":
		// Foo | null and Foo | undefined resolve to Foo.
		var named []*sitter.Node
		for i := 0; i < int(t.NamedChildCount()); i++ {
			c := t.NamedChild(i)
			switch f.Text(c) {
			case "null", "undefined":
				continue
			}
			named = append(named, c)
		}
		if len(named) == 1 {
			return runtimeType(f, named[0])
		}
	}
	return ""
}
