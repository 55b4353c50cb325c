package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/rewrite"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// src: "a(b); c(d);"
const src = "a(b); c(d);"

func leaf(kind syntax.NodeKind, start, end int, value string) *syntax.Node {
	return &syntax.Node{Kind: kind, Grammar: "identifier", Span: syntax.Span{Start: start, End: end}, Value: value}
}

func call(start int, name, arg string) *syntax.Node {
	callee := leaf(syntax.NodeIdentifier, start, start+1, name)
	argument := syntax.NewNode(syntax.NodeArgument, "argument", syntax.Span{Start: start + 2, End: start + 3},
		leaf(syntax.NodeIdentifier, start+2, start+3, arg))
	list := syntax.NewNode(syntax.NodeArgumentList, "argument_list", syntax.Span{Start: start + 1, End: start + 4}, argument)
	return syntax.NewNode(syntax.NodeInvocation, "invocation_expression", syntax.Span{Start: start, End: start + 4}, callee, list)
}

func buildTree() (root, first, second *syntax.Node) {
	first = call(0, "a", "b")
	second = call(6, "c", "d")
	s1 := syntax.NewNode(syntax.NodeOther, "expression_statement", syntax.Span{Start: 0, End: 5}, first)
	s2 := syntax.NewNode(syntax.NodeOther, "expression_statement", syntax.Span{Start: 6, End: 11}, second)
	root = syntax.NewNode(syntax.NodeUnit, "compilation_unit", syntax.Span{Start: 0, End: 11}, s1, s2)
	return root, first, second
}

func eq(target *syntax.Node) *syntax.Node {
	args, _ := target.Arguments()
	return syntax.NewBinary("==", target.Callee(), args[0], target.Span)
}

func TestReplaceAll_SinglePassMultipleTargets(t *testing.T) {
	t.Parallel()

	root, first, second := buildTree()
	out, err := rewrite.ReplaceAll(root, []rewrite.Edit{
		{Target: second, Replacement: eq(second)},
		{Target: first, Replacement: eq(first)},
	})
	require.NoError(t, err)

	assert.Equal(t, "a == b; c == d;", string(syntax.Render([]byte(src), out)))
	assert.Equal(t, src, string(syntax.Render([]byte(src), root)), "input tree must be unchanged")
}

func TestReplaceAll_SharesUntouchedSubtrees(t *testing.T) {
	t.Parallel()

	root, first, _ := buildTree()
	out, err := rewrite.ReplaceAll(root, []rewrite.Edit{{Target: first, Replacement: eq(first)}})
	require.NoError(t, err)

	assert.NotSame(t, root, out)
	assert.NotSame(t, root.Child(0), out.Child(0))
	assert.Same(t, root.Child(1), out.Child(1))
}

func TestReplaceAll_NoEdits(t *testing.T) {
	t.Parallel()

	root, _, _ := buildTree()
	out, err := rewrite.ReplaceAll(root, nil)
	require.NoError(t, err)
	assert.Same(t, root, out)
}

func TestReplaceAll_Errors(t *testing.T) {
	t.Parallel()

	root, first, _ := buildTree()
	foreign := call(0, "x", "y")
	inner := first.Callee()

	tests := []struct {
		name  string
		edits []rewrite.Edit
		want  error
	}{
		{
			name:  "nested targets",
			edits: []rewrite.Edit{{Target: first, Replacement: eq(first)}, {Target: inner, Replacement: inner}},
			want:  rewrite.ErrOverlap,
		},
		{
			name:  "same target twice",
			edits: []rewrite.Edit{{Target: first, Replacement: eq(first)}, {Target: first, Replacement: eq(first)}},
			want:  rewrite.ErrOverlap,
		},
		{
			name:  "target not in tree",
			edits: []rewrite.Edit{{Target: foreign, Replacement: eq(foreign)}},
			want:  rewrite.ErrTargetNotFound,
		},
		{
			name:  "nil replacement",
			edits: []rewrite.Edit{{Target: first}},
			want:  rewrite.ErrNilEdit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := rewrite.ReplaceAll(root, tt.edits)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReplaceAll_IdenticalEditCollapses(t *testing.T) {
	t.Parallel()

	root, first, _ := buildTree()
	rep := eq(first)
	out, err := rewrite.ReplaceAll(root, []rewrite.Edit{{Target: first, Replacement: rep}, {Target: first, Replacement: rep}})
	require.NoError(t, err)
	assert.Equal(t, "a == b; c(d);", string(syntax.Render([]byte(src), out)))
}

func TestOutermost(t *testing.T) {
	t.Parallel()

	_, first, second := buildTree()
	inner := first.Callee()

	kept, nested := rewrite.Outermost([]rewrite.Edit{
		{Target: second, Replacement: second},
		{Target: inner, Replacement: inner},
		{Target: first, Replacement: first},
	})

	require.Len(t, kept, 2)
	assert.Same(t, first, kept[0].Target)
	assert.Same(t, second, kept[1].Target)
	require.Len(t, nested, 1)
	assert.Same(t, inner, nested[0].Target)
}
