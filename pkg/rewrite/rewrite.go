// Package rewrite applies batches of structural replacements to immutable
// syntax trees.
package rewrite

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

var (
	// ErrOverlap is returned when two edits target overlapping or nested nodes.
	ErrOverlap = errors.New("overlapping rewrite targets")

	// ErrTargetNotFound is returned when an edit's target is not in the tree.
	ErrTargetNotFound = errors.New("rewrite target not in tree")

	// ErrNilEdit is returned for an edit with a nil target or replacement.
	ErrNilEdit = errors.New("nil rewrite target or replacement")
)

// Edit replaces Target, identified by pointer, with Replacement.
type Edit struct {
	Target      *syntax.Node
	Replacement *syntax.Node
}

// Sort orders edits by target position.
func Sort(edits []Edit) {
	slices.SortStableFunc(edits, func(a, b Edit) int {
		if c := cmp.Compare(a.Target.Span.Start, b.Target.Span.Start); c != 0 {
			return c
		}
		// Enclosing targets sort before the targets they contain.
		return cmp.Compare(b.Target.Span.End, a.Target.Span.End)
	})
}

// Validate checks that edits are well formed and pairwise non-overlapping.
// Edits that repeat the same target with the same replacement are allowed.
func Validate(edits []Edit) error {
	for i, e := range edits {
		if e.Target == nil || e.Replacement == nil {
			return fmt.Errorf("edit %d: %w", i, ErrNilEdit)
		}
	}

	sorted := slices.Clone(edits)
	Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Target == cur.Target && prev.Replacement == cur.Replacement {
			continue
		}
		if prev.Target.Span.Overlaps(cur.Target.Span) {
			return fmt.Errorf("%w: %s and %s", ErrOverlap, prev.Target.Span, cur.Target.Span)
		}
	}
	return nil
}

// Outermost splits edits into those whose target is not inside another
// edit's target, and the nested remainder.
func Outermost(edits []Edit) ([]Edit, []Edit) {
	sorted := slices.Clone(edits)
	Sort(sorted)

	var kept, nested []Edit
	var last *syntax.Node
	for _, e := range sorted {
		if last != nil && e.Target != last && last.Span.Contains(e.Target.Span) {
			nested = append(nested, e)
			continue
		}
		if last != nil && e.Target == last {
			continue
		}
		kept = append(kept, e)
		last = e.Target
	}
	return kept, nested
}

// ReplaceAll returns a new tree in which every edit's target is replaced.
//
// The input tree is not modified. Subtrees that contain no target are shared
// with the input; only the ancestors of targets are copied. All edits are
// applied in a single traversal.
func ReplaceAll(root *syntax.Node, edits []Edit) (*syntax.Node, error) {
	if len(edits) == 0 {
		return root, nil
	}
	if err := Validate(edits); err != nil {
		return nil, err
	}

	replacements := make(map[*syntax.Node]*syntax.Node, len(edits))
	spans := make([]syntax.Span, 0, len(edits))
	for _, e := range edits {
		replacements[e.Target] = e.Replacement
		spans = append(spans, e.Target.Span)
	}

	r := &replacer{replacements: replacements, spans: spans, found: make(map[*syntax.Node]bool, len(edits))}
	out := r.rebuild(root)

	if len(r.found) != len(replacements) {
		for target := range replacements {
			if !r.found[target] {
				return nil, fmt.Errorf("%w: %s %s", ErrTargetNotFound, target.Kind, target.Span)
			}
		}
	}
	return out, nil
}

type replacer struct {
	replacements map[*syntax.Node]*syntax.Node
	spans        []syntax.Span
	found        map[*syntax.Node]bool
}

func (r *replacer) rebuild(n *syntax.Node) *syntax.Node {
	if n == nil {
		return nil
	}
	if rep, ok := r.replacements[n]; ok {
		r.found[n] = true
		return rep
	}
	if !r.mayContainTarget(n) {
		return n
	}

	var children []*syntax.Node
	for i, c := range n.Children {
		nc := r.rebuild(c)
		if nc == c && children == nil {
			continue
		}
		if children == nil {
			children = make([]*syntax.Node, len(n.Children))
			copy(children, n.Children[:i])
		}
		children[i] = nc
	}
	if children == nil {
		return n
	}
	return n.WithChildren(children)
}

// mayContainTarget prunes subtrees whose span cannot hold any target.
// Synthetic subtrees are always searched because their spans describe the
// text they replaced, not their contents.
func (r *replacer) mayContainTarget(n *syntax.Node) bool {
	if n.Synthetic {
		return true
	}
	for _, s := range r.spans {
		if n.Span.Contains(s) {
			return true
		}
	}
	return false
}
