package syntax

import "slices"

// Ref is a back-reference to a node that survives tree rebuilding: the
// child-index path from the root plus the node's span and kind. Span and kind
// are checked on resolution so a path that now points somewhere else is not
// mistaken for the original node.
type Ref struct {
	Path []int
	Span Span
	Kind NodeKind
}

// NewRef creates a reference to the node at path. The path is copied.
func NewRef(path []int, n *Node) Ref {
	return Ref{
		Path: slices.Clone(path),
		Span: n.Span,
		Kind: n.Kind,
	}
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.Path == nil && r.Span == (Span{}) && r.Kind == NodeOther
}

// Locate resolves ref in the tree rooted at root and returns the node and its
// parent. The path is tried first; when it no longer leads to a node with the
// recorded span and kind, the innermost node of that kind covering exactly the
// recorded span is used instead.
func Locate(root *Node, ref Ref) (*Node, *Node, bool) {
	if root == nil {
		return nil, nil, false
	}

	if n, parent, ok := followPath(root, ref.Path); ok && n.Span == ref.Span && n.Kind == ref.Kind {
		return n, parent, true
	}

	var found, foundParent *Node
	_ = WalkPath(root, func(c Cursor) error {
		if !c.Node.Span.Contains(ref.Span) {
			return nil
		}
		if c.Node.Kind == ref.Kind && c.Node.Span == ref.Span {
			// Pre-order: later matches are nested deeper.
			found, foundParent = c.Node, c.Parent
		}
		return nil
	})

	return found, foundParent, found != nil
}

func followPath(root *Node, path []int) (*Node, *Node, bool) {
	if path == nil {
		return nil, nil, false
	}
	var parent *Node
	n := root
	for _, idx := range path {
		child := n.Child(idx)
		if child == nil {
			return nil, nil, false
		}
		parent, n = n, child
	}
	return n, parent, true
}
