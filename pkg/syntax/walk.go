package syntax

import "errors"

// ErrStopWalk can be returned from a WalkFunc to end a walk early without error.
var ErrStopWalk = errors.New("stop walk")

// WalkFunc is called for every node visited by Walk.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// Walk performs a pre-order traversal starting at root.
// ErrStopWalk ends the walk and is not returned to the caller.
func Walk(root *Node, walkFunc WalkFunc) error {
	err := walk(root, walkFunc)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walk(n *Node, walkFunc WalkFunc) error {
	if n == nil {
		return nil
	}
	if err := walkFunc(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walk(c, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// Cursor describes a node's position during WalkPath.
type Cursor struct {
	// Node is the visited node.
	Node *Node

	// Parent is the immediate parent, nil for the root.
	Parent *Node

	// Path is the child-index path from the root. It is reused between
	// callbacks; copy it to retain it.
	Path []int
}

// WalkPathFunc is called for every node visited by WalkPath.
type WalkPathFunc func(c Cursor) error

// WalkPath is Walk with parent and child-index path tracking.
func WalkPath(root *Node, fn WalkPathFunc) error {
	path := make([]int, 0, 32)
	err := walkPath(root, nil, path, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walkPath(n, parent *Node, path []int, fn WalkPathFunc) error {
	if n == nil {
		return nil
	}
	if err := fn(Cursor{Node: n, Parent: parent, Path: path}); err != nil {
		return err
	}
	for i, c := range n.Children {
		if err := walkPath(c, n, append(path, i), fn); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns every node for which match is true, in pre-order.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var out []*Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			out = append(out, n)
		}
		return nil
	})
	return out
}

// FindFirst returns the first node in pre-order for which match is true.
func FindFirst(root *Node, match func(*Node) bool) *Node {
	var found *Node
	_ = Walk(root, func(n *Node) error {
		if match(n) {
			found = n
			return ErrStopWalk
		}
		return nil
	})
	return found
}
