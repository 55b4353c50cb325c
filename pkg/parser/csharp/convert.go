package csharp

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

//nolint:gochecknoglobals // Read-only lookup table.
var kinds = map[string]syntax.NodeKind{
	"compilation_unit":         syntax.NodeUnit,
	"invocation_expression":    syntax.NodeInvocation,
	"member_access_expression": syntax.NodeMemberAccess,
	"identifier":               syntax.NodeIdentifier,
	"argument_list":            syntax.NodeArgumentList,
	"argument":                 syntax.NodeArgument,
	"binary_expression":        syntax.NodeBinary,
	"parenthesized_expression": syntax.NodeParenthesized,
	"string_literal":           syntax.NodeLiteral,
	"verbatim_string_literal":  syntax.NodeLiteral,
	"raw_string_literal":       syntax.NodeLiteral,
	"integer_literal":          syntax.NodeLiteral,
	"real_literal":             syntax.NodeLiteral,
	"boolean_literal":          syntax.NodeLiteral,
	"character_literal":        syntax.NodeLiteral,
	"null_literal":             syntax.NodeLiteral,
	"ERROR":                    syntax.NodeError,
}

// keywordExpressions are anonymous grammar tokens that stand for a value.
// They get a node of their own so member accesses keep their receiver.
//
//nolint:gochecknoglobals // Read-only lookup table.
var keywordExpressions = map[string]string{
	"this": "this_expression",
	"base": "base_expression",
}

// converter maps tree-sitter nodes onto syntax nodes. Only named children and
// keyword expressions are kept; other anonymous tokens and comments stay in
// the source gaps between them. Tree-sitter offsets are relative to src[base:].
type converter struct {
	src  []byte
	base int
}

func (c *converter) convert(n *sitter.Node, field string) *syntax.Node {
	grammar := n.Kind()
	kind, ok := kinds[grammar]
	if !ok {
		kind = syntax.NodeOther
	}
	if n.IsError() || n.IsMissing() {
		kind = syntax.NodeError
	}

	out := &syntax.Node{
		Kind:    kind,
		Grammar: grammar,
		Field:   field,
		Span:    c.span(n),
	}

	cursor := n.Walk()
	defer cursor.Close()

	if cursor.GotoFirstChild() {
		for {
			child := cursor.Node()
			childField := cursor.FieldName()
			switch {
			case child.IsNamed() && !child.IsExtra():
				out.Children = append(out.Children, c.convert(child, childField))
			case keywordExpressions[child.Kind()] != "":
				out.Children = append(out.Children, c.keyword(child, childField))
			case childField == "operator" && out.Value == "":
				out.Value = c.text(child)
			}
			if !cursor.GotoNextSibling() {
				break
			}
		}
	}

	switch kind {
	case syntax.NodeMemberAccess:
		if name := out.ChildByField("name"); name != nil {
			out.Value = c.spanText(name.Span)
		}
	case syntax.NodeIdentifier, syntax.NodeLiteral:
		out.Value = c.text(n)
	default:
		if len(out.Children) == 0 && out.Value == "" && kind != syntax.NodeError {
			out.Value = c.text(n)
		}
	}

	return out
}

func (c *converter) keyword(n *sitter.Node, field string) *syntax.Node {
	return &syntax.Node{
		Kind:    syntax.NodeOther,
		Grammar: keywordExpressions[n.Kind()],
		Field:   field,
		Span:    c.span(n),
		Value:   c.text(n),
	}
}

func (c *converter) span(n *sitter.Node) syntax.Span {
	return syntax.Span{Start: c.base + int(n.StartByte()), End: c.base + int(n.EndByte())}
}

func (c *converter) text(n *sitter.Node) string {
	return c.spanText(c.span(n))
}

func (c *converter) spanText(s syntax.Span) string {
	if !s.Valid(len(c.src)) {
		return ""
	}
	return string(c.src[s.Start:s.End])
}
