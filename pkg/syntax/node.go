package syntax

// NodeKind classifies a syntax node by the role the analyzer cares about.
// Everything the analyzer does not inspect structurally is NodeOther; the
// concrete grammar production is still available through Node.Grammar.
type NodeKind uint8

const (
	NodeOther NodeKind = iota
	NodeUnit
	NodeInvocation
	NodeMemberAccess
	NodeIdentifier
	NodeArgumentList
	NodeArgument
	NodeBinary
	NodeParenthesized
	NodeLiteral
	NodeError
)

var nodeKindNames = [...]string{
	NodeOther:         "Other",
	NodeUnit:          "Unit",
	NodeInvocation:    "Invocation",
	NodeMemberAccess:  "MemberAccess",
	NodeIdentifier:    "Identifier",
	NodeArgumentList:  "ArgumentList",
	NodeArgument:      "Argument",
	NodeBinary:        "Binary",
	NodeParenthesized: "Parenthesized",
	NodeLiteral:       "Literal",
	NodeError:         "Error",
}

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is an immutable syntax tree node.
//
// Nodes do not point at their parent, so a subtree can appear in more than one
// tree: rewrites build a new spine and reuse untouched subtrees by reference.
// Callers must treat every field as read-only once the node is part of a tree.
type Node struct {
	// Kind is the analyzer-level classification.
	Kind NodeKind

	// Grammar is the production name reported by the parser (e.g. "invocation_expression").
	// Synthetic nodes carry the production they stand for.
	Grammar string

	// Field is the grammar field under which this node hangs off its parent, if any.
	Field string

	// Span is the node's byte range in the source it was parsed from.
	// A synthetic node carries the span of the node it replaces.
	Span Span

	// Value holds identifier names, operator tokens, and leaf text.
	// For NodeMemberAccess it is the member name; for NodeBinary the operator.
	Value string

	// Synthetic is true for nodes created by a rewrite rather than by the parser.
	Synthetic bool

	// Children are the named children in source order.
	Children []*Node
}

// NewNode creates a parsed (non-synthetic) node.
func NewNode(kind NodeKind, grammar string, span Span, children ...*Node) *Node {
	return &Node{
		Kind:     kind,
		Grammar:  grammar,
		Span:     span,
		Children: children,
	}
}

// NewBinary creates a synthetic binary expression "left op right" that takes
// the place of the node at span. The operands are reused as-is.
func NewBinary(op string, left, right *Node, span Span) *Node {
	return &Node{
		Kind:      NodeBinary,
		Grammar:   "binary_expression",
		Span:      span,
		Value:     op,
		Synthetic: true,
		Children:  []*Node{left, right},
	}
}

// NewParenthesized creates a synthetic "(inner)" node occupying inner's span.
func NewParenthesized(inner *Node) *Node {
	return &Node{
		Kind:      NodeParenthesized,
		Grammar:   "parenthesized_expression",
		Span:      inner.Span,
		Synthetic: true,
		Children:  []*Node{inner},
	}
}

// WithChildren returns a shallow copy of n with the given children.
func (n *Node) WithChildren(children []*Node) *Node {
	cp := *n
	cp.Children = children
	return &cp
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildByField returns the first child labelled with the given grammar field.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// Is reports whether n is non-nil and of kind k.
func (n *Node) Is(k NodeKind) bool {
	return n != nil && n.Kind == k
}

// Callee returns the invoked expression of a NodeInvocation.
func (n *Node) Callee() *Node {
	if !n.Is(NodeInvocation) {
		return nil
	}
	if c := n.ChildByField("function"); c != nil {
		return c
	}
	return n.Child(0)
}

// Arguments returns the argument expressions of a NodeInvocation, unwrapped
// from their NodeArgument containers. ok is false when the invocation has no
// argument list.
func (n *Node) Arguments() ([]*Node, bool) {
	if !n.Is(NodeInvocation) {
		return nil, false
	}
	var list *Node
	for _, c := range n.Children {
		if c.Kind == NodeArgumentList {
			list = c
			break
		}
	}
	if list == nil {
		return nil, false
	}
	args := make([]*Node, 0, len(list.Children))
	for _, a := range list.Children {
		if a.Kind != NodeArgument {
			continue
		}
		args = append(args, a.Expression())
	}
	return args, true
}

// Receiver returns the object expression of a NodeMemberAccess, or nil when
// the access has none. The member name is never a receiver.
func (n *Node) Receiver() *Node {
	if !n.Is(NodeMemberAccess) {
		return nil
	}
	return n.ChildByField("expression")
}

// Expression returns the wrapped expression of a NodeArgument or
// NodeParenthesized: its last child.
func (n *Node) Expression() *Node {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Left returns the left operand of a NodeBinary.
func (n *Node) Left() *Node {
	if !n.Is(NodeBinary) {
		return nil
	}
	if n.Synthetic {
		return n.Child(0)
	}
	if c := n.ChildByField("left"); c != nil {
		return c
	}
	return n.Child(0)
}

// Right returns the right operand of a NodeBinary.
func (n *Node) Right() *Node {
	if !n.Is(NodeBinary) {
		return nil
	}
	if n.Synthetic {
		return n.Child(1)
	}
	if c := n.ChildByField("right"); c != nil {
		return c
	}
	return n.Child(len(n.Children) - 1)
}
