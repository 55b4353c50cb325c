package semantic

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// Options tunes resolution.
type Options struct {
	// KnownEnums are additional enumeration type names treated as enums
	// without a declaration in the unit.
	KnownEnums []string

	// AssumeUnknownEnums treats "T.Member" as an enum constant when T is a
	// capitalised name that resolves to nothing else.
	AssumeUnknownEnums bool
}

// Resolver answers static type questions about one unit.
//
// A Resolver is built once per unit and is not safe for concurrent use.
type Resolver struct {
	unit       *syntax.Unit
	opts       Options
	knownEnums map[string]bool

	types  map[string]*typeDecl
	vars   map[*syntax.Node]binding
	this   map[*syntax.Node]Type // types of this and base expressions
	owners map[*syntax.Node]*typeDecl
	memo   map[*syntax.Node]binding
}

// NewResolver analyses unit and returns a resolver for its nodes.
func NewResolver(unit *syntax.Unit, opts Options) *Resolver {
	r := &Resolver{
		unit:       unit,
		opts:       opts,
		knownEnums: make(map[string]bool, len(WellKnownEnums)+len(opts.KnownEnums)),
		types:      make(map[string]*typeDecl),
		vars:       make(map[*syntax.Node]binding),
		this:       make(map[*syntax.Node]Type),
		owners:     make(map[*syntax.Node]*typeDecl),
		memo:       make(map[*syntax.Node]binding),
	}
	for _, name := range WellKnownEnums {
		r.knownEnums[name] = true
	}
	for _, name := range opts.KnownEnums {
		r.knownEnums[simpleName(name)] = true
	}

	if unit != nil && unit.Root != nil {
		r.collectDecls(unit.Root)
		r.bind(unit.Root, newScope(nil), nil)
	}
	return r
}

// TypeOf returns the static type of an expression node.
func (r *Resolver) TypeOf(n *syntax.Node) (Type, bool) {
	if n == nil {
		return Type{}, false
	}
	if b, ok := r.memo[n]; ok {
		return b.t, b.known
	}
	t, ok := r.typeOf(n)
	r.memo[n] = binding{t: t, known: ok}
	return t, ok
}

// ResolveCall returns the signature an invocation binds to.
func (r *Resolver) ResolveCall(call *syntax.Node) (Signature, bool) {
	if !call.Is(syntax.NodeInvocation) {
		return Signature{}, false
	}
	args, ok := call.Arguments()
	if !ok {
		return Signature{}, false
	}

	callee := call.Callee()
	if callee == nil {
		return Signature{}, false
	}
	switch callee.Kind {
	case syntax.NodeMemberAccess:
		recv := callee.Receiver()
		if t, isType := r.typeReference(recv); isType {
			return r.resolveStatic(t, callee.Value, args)
		}
		rt, ok := r.TypeOf(recv)
		if !ok {
			return Signature{}, false
		}
		return r.resolveInstance(rt, callee.Value, args)
	case syntax.NodeIdentifier:
		if _, isVar := r.vars[callee]; isVar {
			return Signature{}, false
		}
		owner := r.owners[call]
		if owner == nil {
			return Signature{}, false
		}
		return r.resolveInstance(owner.typ(), callee.Value, args)
	default:
		return Signature{}, false
	}
}

// argType is an argument's static type when known.
type argType struct {
	t  Type
	ok bool
}

func (r *Resolver) argTypes(args []*syntax.Node) []argType {
	out := make([]argType, len(args))
	for i, a := range args {
		out[i].t, out[i].ok = r.TypeOf(a)
	}
	return out
}

func (r *Resolver) resolveInstance(recv Type, name string, args []*syntax.Node) (Signature, bool) {
	if decl := r.types[recv.Name]; decl != nil && decl.category != CategoryEnum {
		if sig, ok := pickOverload(decl.methods[name], r.argTypes(args)); ok {
			return sig, true
		}
		if len(decl.methods[name]) > 0 {
			// Declared overloads exist but none fits: do not fall back to Object's.
			return Signature{}, false
		}
	}

	if recv.Special == SpecialString {
		if sig, ok := stringMethod(name, r.argTypes(args)); ok {
			return sig, true
		}
		if name == "Equals" {
			return Signature{}, false
		}
	}

	return objectMethod(recv, name, len(args))
}

func (r *Resolver) resolveStatic(t Type, name string, args []*syntax.Node) (Signature, bool) {
	if decl := r.types[t.Name]; decl != nil {
		if sig, ok := pickOverload(decl.methods[name], r.argTypes(args)); ok {
			sig.Static = true
			return sig, true
		}
	}
	return staticObjectMethod(name, len(args))
}

// pickOverload chooses among same-named methods by arity, then by exact
// argument types. Ambiguity resolves to nothing.
func pickOverload(cands []Signature, args []argType) (Signature, bool) {
	var byArity []Signature
	for _, c := range cands {
		if len(c.Params) == len(args) {
			byArity = append(byArity, c)
		}
	}
	switch len(byArity) {
	case 0:
		return Signature{}, false
	case 1:
		return byArity[0], true
	}

	for _, c := range byArity {
		exact := true
		for i, p := range c.Params {
			if !args[i].ok || !p.Same(args[i].t) {
				exact = false
				break
			}
		}
		if exact {
			return c, true
		}
	}
	return Signature{}, false
}

func (r *Resolver) typeOf(n *syntax.Node) (Type, bool) {
	switch n.Kind {
	case syntax.NodeParenthesized:
		return r.TypeOf(n.Expression())
	case syntax.NodeIdentifier:
		if b, ok := r.vars[n]; ok {
			return b.t, b.known
		}
		return Type{}, false
	case syntax.NodeMemberAccess:
		return r.memberType(n)
	case syntax.NodeInvocation:
		sig, ok := r.ResolveCall(n)
		if !ok || sig.Return.Name == "" {
			return Type{}, false
		}
		return sig.Return, true
	case syntax.NodeBinary:
		return r.binaryType(n)
	}

	switch n.Grammar {
	case "string_literal", "verbatim_string_literal", "raw_string_literal", "interpolated_string_expression":
		return typeString, true
	case "boolean_literal", "is_expression", "is_pattern_expression":
		return typeBoolean, true
	case "character_literal":
		return predefinedTypes["char"], true
	case "integer_literal":
		return integerLiteralType(n.Value), true
	case "real_literal":
		return realLiteralType(n.Value), true
	case "object_creation_expression", "cast_expression", "default_expression":
		return r.typeFromSyntax(n.ChildByField("type"))
	case "as_expression":
		return r.typeFromSyntax(n.ChildByField("right"))
	case "typeof_expression":
		return typeType, true
	case "this_expression", "this", "base_expression":
		t, ok := r.this[n]
		return t, ok
	case "checked_expression":
		return r.TypeOf(n.Expression())
	case "postfix_unary_expression":
		return r.TypeOf(n.Child(0))
	case "prefix_unary_expression":
		if r.startsWith(n, "!") {
			return typeBoolean, true
		}
		return r.TypeOf(n.Expression())
	case "conditional_expression":
		a, aok := r.TypeOf(n.ChildByField("consequence"))
		b, bok := r.TypeOf(n.ChildByField("alternative"))
		if aok && bok && a.Same(b) {
			return a, true
		}
	}
	return Type{}, false
}

func (r *Resolver) memberType(n *syntax.Node) (Type, bool) {
	recv := n.Receiver()
	name := n.Value

	if t, isType := r.typeReference(recv); isType {
		decl := r.types[t.Name]
		if t.IsEnum() {
			if decl != nil && !decl.members[name] {
				return Type{}, false
			}
			return t, true
		}
		if decl != nil {
			if b, ok := decl.field(name); ok {
				return b.t, b.known
			}
		}
		return Type{}, false
	}

	rt, ok := r.TypeOf(recv)
	if !ok {
		return Type{}, false
	}
	if decl := r.types[rt.Name]; decl != nil {
		if b, ok := decl.field(name); ok {
			return b.t, b.known
		}
	}
	if rt.Special == SpecialString && name == "Length" {
		return typeInt32, true
	}
	return Type{}, false
}

func (r *Resolver) binaryType(n *syntax.Node) (Type, bool) {
	switch n.Value {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return typeBoolean, true
	case "&", "|", "^":
		lt, lok := r.TypeOf(n.Left())
		rt, rok := r.TypeOf(n.Right())
		if lok && rok && lt.Same(rt) && (lt.IsEnum() || lt.Special == SpecialBoolean) {
			return lt, true
		}
	case "+":
		lt, lok := r.TypeOf(n.Left())
		rt, rok := r.TypeOf(n.Right())
		if (lok && lt.Special == SpecialString) || (rok && rt.Special == SpecialString) {
			return typeString, true
		}
		if lok && rok && lt.Same(rt) && lt.Special == SpecialInt32 {
			return lt, true
		}
	case "??":
		rt, rok := r.TypeOf(n.Right())
		if rok && !rt.IsNullable() {
			return rt, true
		}
	}
	return Type{}, false
}

// typeReference reports whether n names a type rather than a value, and which.
func (r *Resolver) typeReference(n *syntax.Node) (Type, bool) {
	if n == nil {
		return Type{}, false
	}

	switch n.Kind {
	case syntax.NodeIdentifier:
		if _, isVar := r.vars[n]; isVar {
			return Type{}, false
		}
		if t, ok := r.lookupTypeName(n.Value); ok {
			return t, true
		}
		if r.opts.AssumeUnknownEnums && startsUpper(n.Value) {
			return Type{Name: n.Value, Category: CategoryEnum}, true
		}
		return Type{}, false
	case syntax.NodeMemberAccess:
		if !r.namespaceLike(n.Receiver()) {
			if _, ok := r.typeReference(n.Receiver()); !ok {
				return Type{}, false
			}
		}
		return r.lookupTypeName(n.Value)
	}

	switch n.Grammar {
	case "predefined_type", "qualified_name", "generic_name", "alias_qualified_name":
		return r.typeFromSyntax(n)
	}
	return Type{}, false
}

// namespaceLike reports whether n could be a namespace path: identifiers and
// dotted chains of identifiers that resolve to neither a variable nor a type.
func (r *Resolver) namespaceLike(n *syntax.Node) bool {
	switch {
	case n == nil:
		return false
	case n.Kind == syntax.NodeIdentifier:
		if _, isVar := r.vars[n]; isVar {
			return false
		}
		_, isType := r.lookupTypeName(n.Value)
		return !isType
	case n.Kind == syntax.NodeMemberAccess:
		if _, isType := r.lookupTypeName(n.Value); isType {
			return false
		}
		return r.namespaceLike(n.Receiver())
	case n.Grammar == "alias_qualified_name":
		return true
	}
	return false
}

// lookupTypeName resolves a simple type name.
func (r *Resolver) lookupTypeName(name string) (Type, bool) {
	name = simpleName(name)
	if decl, ok := r.types[name]; ok {
		return decl.typ(), true
	}
	if r.knownEnums[name] {
		return Type{Name: name, Category: CategoryEnum}, true
	}
	if t, ok := frameworkTypes[name]; ok {
		return t, true
	}
	return Type{}, false
}

// typeFromSyntax resolves a type written in source.
func (r *Resolver) typeFromSyntax(n *syntax.Node) (Type, bool) {
	if n == nil || isImplicitType(n) {
		return Type{}, false
	}

	switch n.Grammar {
	case "predefined_type":
		t, ok := predefinedTypes[n.Value]
		return t, ok
	case "identifier":
		return r.lookupTypeName(n.Value)
	case "qualified_name", "alias_qualified_name":
		return r.typeFromSyntax(n.ChildByField("name"))
	case "nullable_type":
		inner, ok := r.typeFromSyntax(n.Child(0))
		if !ok {
			return Type{Name: "Nullable?", Category: CategoryStruct}, true
		}
		if inner.Category == CategoryClass || inner.Category == CategoryInterface {
			// Nullable reference annotation: same type.
			return inner, true
		}
		return nullableOf(inner), true
	case "array_type":
		return typeArray, true
	}
	return Type{}, false
}

func (r *Resolver) startsWith(n *syntax.Node, prefix string) bool {
	if r.unit == nil || !n.Span.Valid(len(r.unit.Content)) {
		return false
	}
	return strings.HasPrefix(string(r.unit.Content[n.Span.Start:n.Span.End]), prefix)
}

func startsUpper(s string) bool {
	c, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(c)
}

func integerLiteralType(text string) Type {
	lower := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lower, "ul") || strings.HasSuffix(lower, "lu"):
		return predefinedTypes["ulong"]
	case strings.HasSuffix(lower, "l"):
		return predefinedTypes["long"]
	case strings.HasSuffix(lower, "u"):
		return predefinedTypes["uint"]
	default:
		return typeInt32
	}
}

func realLiteralType(text string) Type {
	lower := strings.ToLower(text)
	switch {
	case strings.HasSuffix(lower, "f"):
		return predefinedTypes["float"]
	case strings.HasSuffix(lower, "m"):
		return predefinedTypes["decimal"]
	default:
		return predefinedTypes["double"]
	}
}

// declFor returns the declaration registered for a type declaration node.
func (r *Resolver) declFor(n *syntax.Node) *typeDecl {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	if decl := r.types[name.Value]; decl != nil && decl.node == n {
		return decl
	}
	return nil
}
