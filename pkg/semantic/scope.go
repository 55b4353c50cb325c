package semantic

import "github.com/yaklabco/enumcmp/pkg/syntax"

type scope struct {
	vars   map[string]binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]binding), parent: parent}
}

func (s *scope) declare(name string, b binding) {
	if name != "" {
		s.vars[name] = b
	}
}

func (s *scope) lookup(name string) (binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.vars[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// scopeNodes open a new local scope.
	scopeNodes = map[string]bool{
		"method_declaration":              true,
		"constructor_declaration":         true,
		"destructor_declaration":          true,
		"operator_declaration":            true,
		"conversion_operator_declaration": true,
		"accessor_declaration":            true,
		"local_function_statement":        true,
		"lambda_expression":               true,
		"anonymous_method_expression":     true,
		"block":                           true,
		"for_statement":                   true,
		"for_each_statement":              true,
		"using_statement":                 true,
		"fixed_statement":                 true,
		"catch_clause":                    true,
		"switch_section":                  true,
		"switch_expression_arm":           true,
	}

	// declaringFields label identifiers that name something rather than refer to it.
	declaringFields = map[string]bool{
		"name":    true,
		"type":    true,
		"returns": true,
	}
)

// bind walks the tree once, maintaining lexical scopes, and records for every
// identifier that refers to a variable the variable's binding.
func (r *Resolver) bind(n *syntax.Node, s *scope, owner *typeDecl) {
	if n == nil {
		return
	}

	if _, isDecl := declCategories[n.Grammar]; isDecl {
		if n.Grammar == "enum_declaration" || n.Grammar == "delegate_declaration" {
			return
		}
		if decl := r.declFor(n); decl != nil {
			owner = decl
			s = newScope(s)
			for name, b := range decl.inheritedFields() {
				s.declare(name, b)
			}
		}
	} else if scopeNodes[n.Grammar] {
		s = newScope(s)
	}

	switch n.Grammar {
	case "parameter":
		if name := n.ChildByField("name"); name != nil {
			t, ok := r.typeFromSyntax(n.ChildByField("type"))
			s.declare(name.Value, binding{t: t, known: ok})
		}
		return
	case "variable_declaration":
		r.bindVariables(n, s, owner)
		return
	case "declaration_expression", "declaration_pattern", "catch_declaration":
		r.bindDeclaration(n, s)
		return
	case "for_each_statement":
		r.bindForEach(n, s, owner)
		return
	case "lambda_expression":
		// A lone untyped parameter is a bare identifier.
		if p := n.ChildByField("parameters"); p != nil && p.Kind == syntax.NodeIdentifier {
			s.declare(p.Value, binding{})
		}
	case "this_expression", "this":
		if owner != nil {
			r.this[n] = owner.typ()
		}
		return
	case "base_expression":
		if owner != nil {
			if t, ok := owner.baseClass(); ok {
				r.this[n] = t
			}
		}
		return
	}

	switch n.Kind {
	case syntax.NodeIdentifier:
		if declaringFields[n.Field] {
			return
		}
		if b, ok := s.lookup(n.Value); ok {
			r.vars[n] = b
		}
		return
	case syntax.NodeInvocation:
		if owner != nil {
			r.owners[n] = owner
		}
	}

	for _, c := range n.Children {
		r.bind(c, s, owner)
	}
}

func (r *Resolver) bindVariables(n *syntax.Node, s *scope, owner *typeDecl) {
	typeNode := n.ChildByField("type")
	implicit := isImplicitType(typeNode)
	declared, declaredOK := r.typeFromSyntax(typeNode)

	for _, d := range n.Children {
		if d.Grammar != "variable_declarator" {
			continue
		}
		name := declaratorName(d)
		value := declaratorValue(d)

		// The initializer is bound before the name comes into scope.
		for _, c := range d.Children {
			if c != name {
				r.bind(c, s, owner)
			}
		}

		if name == nil {
			continue
		}
		b := binding{t: declared, known: declaredOK}
		if implicit {
			b.t, b.known = r.TypeOf(value)
		}
		s.declare(name.Value, b)
	}
}

func (r *Resolver) bindDeclaration(n *syntax.Node, s *scope) {
	name := n.ChildByField("name")
	if name == nil || name.Kind != syntax.NodeIdentifier {
		return
	}
	t, ok := r.typeFromSyntax(n.ChildByField("type"))
	s.declare(name.Value, binding{t: t, known: ok})
}

func (r *Resolver) bindForEach(n *syntax.Node, s *scope, owner *typeDecl) {
	left := n.ChildByField("left")
	for _, c := range n.Children {
		if c == left || c.Field == "type" {
			continue
		}
		if c.Field == "body" && left != nil && left.Kind == syntax.NodeIdentifier {
			t, ok := r.typeFromSyntax(n.ChildByField("type"))
			s.declare(left.Value, binding{t: t, known: ok})
		}
		r.bind(c, s, owner)
	}
}

func isImplicitType(n *syntax.Node) bool {
	if n == nil {
		return false
	}
	return n.Grammar == "implicit_type" || (n.Kind == syntax.NodeIdentifier && n.Value == "var")
}
