package semantic

import (
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// typeDecl is a type declared in the unit.
type typeDecl struct {
	name     string
	category Category
	node     *syntax.Node

	// members holds enum member names; nil for non-enums.
	members map[string]bool

	// fields holds field and property types by name.
	fields map[string]binding

	// methods holds method signatures by name.
	methods map[string][]Signature

	// bases are the base types declared in the unit, in base_list order.
	bases []*typeDecl
}

func (d *typeDecl) typ() Type {
	return Type{Name: d.name, Category: d.category}
}

// binding is a variable's declared type. known is false for variables whose
// type could not be resolved; they still shadow type names.
type binding struct {
	t     Type
	known bool
}

//nolint:gochecknoglobals // Read-only lookup table.
var declCategories = map[string]Category{
	"enum_declaration":          CategoryEnum,
	"class_declaration":         CategoryClass,
	"struct_declaration":        CategoryStruct,
	"record_declaration":        CategoryClass,
	"record_struct_declaration": CategoryStruct,
	"interface_declaration":     CategoryInterface,
	"delegate_declaration":      CategoryDelegate,
}

// collectDecls registers every type declared in the unit, then their members,
// so member types may refer to types declared later in the file.
func (r *Resolver) collectDecls(root *syntax.Node) {
	var decls []*typeDecl

	isDecl := func(n *syntax.Node) bool {
		_, ok := declCategories[n.Grammar]
		return ok
	}
	for _, n := range syntax.FindAll(root, isDecl) {
		category := declCategories[n.Grammar]
		name := n.ChildByField("name")
		if name == nil || name.Value == "" {
			continue
		}
		if n.Grammar == "record_declaration" && r.declaresRecordStruct(n, name) {
			category = CategoryStruct
		}
		decl := &typeDecl{
			name:     name.Value,
			category: category,
			node:     n,
			fields:   make(map[string]binding),
			methods:  make(map[string][]Signature),
		}
		r.types[decl.name] = decl
		decls = append(decls, decl)
	}

	for _, decl := range decls {
		r.collectBases(decl)
		r.collectMembers(decl)
	}
}

// collectBases links decl to the base types of its base_list that are
// declared in the unit. Types declared elsewhere contribute nothing.
func (r *Resolver) collectBases(decl *typeDecl) {
	for _, c := range decl.node.Children {
		if c.Grammar != "base_list" {
			continue
		}
		for _, b := range c.Children {
			if b.Grammar == "primary_constructor_base_type" {
				b = b.ChildByField("type")
			}
			if b == nil || b.Grammar == "argument_list" {
				continue
			}
			t, ok := r.typeFromSyntax(b)
			if !ok {
				continue
			}
			if base := r.types[t.Name]; base != nil && base != decl {
				decl.bases = append(decl.bases, base)
			}
		}
	}
}

// field looks name up on decl, then on its bases depth first.
func (d *typeDecl) field(name string) (binding, bool) {
	return d.fieldSeen(name, make(map[*typeDecl]bool))
}

func (d *typeDecl) fieldSeen(name string, seen map[*typeDecl]bool) (binding, bool) {
	if seen[d] {
		return binding{}, false
	}
	seen[d] = true
	if b, ok := d.fields[name]; ok {
		return b, true
	}
	for _, base := range d.bases {
		if b, ok := base.fieldSeen(name, seen); ok {
			return b, true
		}
	}
	return binding{}, false
}

// inheritedFields returns the fields visible in decl's body, with nearer
// declarations hiding those of bases.
func (d *typeDecl) inheritedFields() map[string]binding {
	out := make(map[string]binding)
	seen := make(map[*typeDecl]bool)
	var visit func(*typeDecl)
	visit = func(t *typeDecl) {
		if seen[t] {
			return
		}
		seen[t] = true
		for _, base := range t.bases {
			visit(base)
		}
		for name, b := range t.fields {
			out[name] = b
		}
	}
	visit(d)
	return out
}

// baseClass returns the first class among decl's bases, the type "base"
// refers to.
func (d *typeDecl) baseClass() (Type, bool) {
	for _, base := range d.bases {
		if base.category == CategoryClass {
			return base.typ(), true
		}
	}
	return Type{}, false
}

// declaresRecordStruct reports whether a record declaration reads "record struct".
func (r *Resolver) declaresRecordStruct(n, name *syntax.Node) bool {
	if !n.Span.Valid(len(r.unit.Content)) || name.Span.Start > n.Span.End || name.Span.Start < n.Span.Start {
		return false
	}
	head := r.unit.Content[n.Span.Start:name.Span.Start]
	return containsWord(head, "struct")
}

func (r *Resolver) collectMembers(decl *typeDecl) {
	if decl.category == CategoryEnum {
		decl.members = make(map[string]bool)
		body := decl.node.ChildByField("body")
		if body == nil {
			return
		}
		for _, m := range body.Children {
			if m.Grammar != "enum_member_declaration" {
				continue
			}
			if name := m.ChildByField("name"); name != nil {
				decl.members[name.Value] = true
			}
		}
		return
	}

	// Positional record parameters become properties.
	if params := decl.node.ChildByField("parameters"); params != nil {
		for _, p := range params.Children {
			if p.Grammar != "parameter" {
				continue
			}
			if name := p.ChildByField("name"); name != nil {
				t, ok := r.typeFromSyntax(p.ChildByField("type"))
				decl.fields[name.Value] = binding{t: t, known: ok}
			}
		}
	}

	body := decl.node.ChildByField("body")
	if body == nil {
		return
	}
	for _, m := range body.Children {
		switch m.Grammar {
		case "field_declaration", "event_field_declaration":
			for _, c := range m.Children {
				if c.Grammar == "variable_declaration" {
					r.collectVariables(c, decl.fields)
				}
			}
		case "property_declaration":
			if name := m.ChildByField("name"); name != nil {
				t, ok := r.typeFromSyntax(m.ChildByField("type"))
				decl.fields[name.Value] = binding{t: t, known: ok}
			}
		case "method_declaration":
			name := m.ChildByField("name")
			if name == nil {
				continue
			}
			decl.methods[name.Value] = append(decl.methods[name.Value], r.methodSignature(m, name.Value))
		}
	}
}

// collectVariables records explicitly typed declarators of a variable_declaration.
func (r *Resolver) collectVariables(n *syntax.Node, into map[string]binding) {
	t, ok := r.typeFromSyntax(n.ChildByField("type"))
	for _, d := range n.Children {
		if d.Grammar != "variable_declarator" {
			continue
		}
		if name := declaratorName(d); name != nil {
			into[name.Value] = binding{t: t, known: ok}
		}
	}
}

func (r *Resolver) methodSignature(m *syntax.Node, name string) Signature {
	returns := m.ChildByField("returns")
	if returns == nil {
		returns = m.ChildByField("type")
	}
	ret, _ := r.typeFromSyntax(returns)

	sig := Signature{Name: name, Return: ret}
	if params := m.ChildByField("parameters"); params != nil {
		for _, p := range params.Children {
			if p.Grammar != "parameter" {
				continue
			}
			pt, _ := r.typeFromSyntax(p.ChildByField("type"))
			sig.Params = append(sig.Params, pt)
		}
	}
	return sig
}

// declaratorName returns the identifier a variable_declarator introduces.
func declaratorName(d *syntax.Node) *syntax.Node {
	if name := d.ChildByField("name"); name != nil && name.Kind == syntax.NodeIdentifier {
		return name
	}
	if first := d.Child(0); first != nil && first.Kind == syntax.NodeIdentifier {
		return first
	}
	return nil
}

// declaratorValue returns the initializer expression of a variable_declarator.
func declaratorValue(d *syntax.Node) *syntax.Node {
	name := declaratorName(d)
	var value *syntax.Node
	for _, c := range d.Children {
		if c == name || c.Grammar == "bracketed_argument_list" {
			continue
		}
		value = c
	}
	if value != nil && value.Grammar == "equals_value_clause" {
		return value.Expression()
	}
	return value
}

func containsWord(b []byte, word string) bool {
	for i := 0; i+len(word) <= len(b); i++ {
		if string(b[i:i+len(word)]) != word {
			continue
		}
		before := i == 0 || !isIdentByte(b[i-1])
		after := i+len(word) == len(b) || !isIdentByte(b[i+len(word)])
		if before && after {
			return true
		}
	}
	return false
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
