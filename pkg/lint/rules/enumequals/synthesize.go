package enumequals

import (
	"errors"
	"fmt"

	"github.com/yaklabco/enumcmp/pkg/semantic"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// ErrOperandMismatch means the argument is known to be of another type than
// the enum receiver, so "==" would not compile or would compare differently.
var ErrOperandMismatch = errors.New("argument type does not match enum receiver")

const precEquality = 9

//nolint:gochecknoglobals // Read-only lookup table.
var binaryPrecedence = map[string]int{
	"*":   13,
	"/":   13,
	"%":   13,
	"+":   12,
	"-":   12,
	"<<":  11,
	">>":  11,
	">>>": 11,
	"<":   10,
	">":   10,
	"<=":  10,
	">=":  10,
	"==":  precEquality,
	"!=":  precEquality,
	"&":   8,
	"^":   7,
	"|":   6,
	"&&":  5,
	"||":  4,
	"??":  3,
}

// Operand expressions that bind looser than "==" and need parentheses on the right.
//
//nolint:gochecknoglobals // Read-only lookup table.
var looseOperands = map[string]bool{
	"conditional_expression": true,
	"assignment_expression":  true,
	"lambda_expression":      true,
	"query_expression":       true,
}

// Contexts that bind tighter than "==" and would capture one of its operands.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tightContexts = map[string]bool{
	"prefix_unary_expression":       true,
	"postfix_unary_expression":      true,
	"cast_expression":               true,
	"element_access_expression":     true,
	"conditional_access_expression": true,
	"is_expression":                 true,
	"is_pattern_expression":         true,
	"as_expression":                 true,
	"switch_expression":             true,
	"with_expression":               true,
	"range_expression":              true,
}

// Synthesize builds the "receiver == argument" node that replaces site.Call.
// Receiver and argument are reused by pointer.
func Synthesize(site CallSite) (*syntax.Node, error) {
	if site.Call == nil || site.Receiver == nil || site.Argument == nil {
		return nil, ErrStaleTarget
	}
	if site.ArgumentKnown && !compatible(site.ReceiverType, site.ArgumentType) {
		return nil, fmt.Errorf("%w: %s compared with %s", ErrOperandMismatch, site.ReceiverType, site.ArgumentType)
	}

	right := site.Argument
	if bindsLooserThanEquality(right) {
		right = syntax.NewParenthesized(right)
	}

	eq := syntax.NewBinary("==", site.Receiver, right, site.Call.Span)
	if capturesOperand(site.Parent, site.Call) {
		return syntax.NewParenthesized(eq), nil
	}
	return eq, nil
}

// compatible accepts the enum itself and its nullable form.
func compatible(enum, arg semantic.Type) bool {
	return enum.Same(arg) || arg.Name == enum.Name+"?"
}

func bindsLooserThanEquality(n *syntax.Node) bool {
	if n.Is(syntax.NodeBinary) {
		prec, ok := binaryPrecedence[n.Value]
		return ok && prec <= precEquality
	}
	return looseOperands[n.Grammar]
}

// capturesOperand reports whether an unparenthesized "a == b" in place of
// call would be split apart by parent.
func capturesOperand(parent, call *syntax.Node) bool {
	if parent == nil {
		return false
	}
	switch parent.Kind {
	case syntax.NodeMemberAccess, syntax.NodeInvocation:
		return true
	case syntax.NodeBinary:
		prec, ok := binaryPrecedence[parent.Value]
		if !ok {
			return false
		}
		if prec > precEquality {
			return true
		}
		return prec == precEquality && parent.Right() == call
	}
	return tightContexts[parent.Grammar]
}
