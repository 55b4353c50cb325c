package enumequals

import (
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/semantic"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

const equalsMethod = "Equals"

// CallSite is one "r.Equals(a)" invocation that binds to Equals(object) on
// an enum receiver. It references nodes of the tree it was matched in.
type CallSite struct {
	// Call is the invocation node.
	Call *syntax.Node

	// Access is the "r.Equals" member access.
	Access *syntax.Node

	// Receiver is r.
	Receiver *syntax.Node

	// Argument is a, unwrapped from its argument node.
	Argument *syntax.Node

	// Parent is the node Call hangs off. Nil at the root.
	Parent *syntax.Node

	// Ref relocates Call in a later tree.
	Ref syntax.Ref

	// ReceiverType is the enum type of r.
	ReceiverType semantic.Type

	// ArgumentType is the static type of a when ArgumentKnown.
	ArgumentType  semantic.Type
	ArgumentKnown bool

	// Signature is the resolved Equals overload.
	Signature semantic.Signature
}

// Span returns the span of the invocation.
func (s CallSite) Span() syntax.Span {
	return s.Call.Span
}

// Match reports whether n is an enum Equals(object) call.
//
// Structural checks run first so that type facts are only requested for
// calls named Equals with a single argument. Missing facts never match.
func Match(n *syntax.Node, facts lint.TypeFacts) (CallSite, bool) {
	access, recv, arg, ok := callShape(n)
	if !ok || facts == nil {
		return CallSite{}, false
	}

	sig, ok := facts.ResolveCall(n)
	if !ok || !sig.IsObjectEquals() {
		return CallSite{}, false
	}

	recvType, ok := facts.TypeOf(recv)
	if !ok || !recvType.IsEnum() || recvType.IsNullable() {
		return CallSite{}, false
	}

	site := CallSite{
		Call:         n,
		Access:       access,
		Receiver:     recv,
		Argument:     arg,
		ReceiverType: recvType,
		Signature:    sig,
	}
	site.ArgumentType, site.ArgumentKnown = facts.TypeOf(arg)
	return site, true
}

// callShape checks for "receiver.Equals(argument)" with exactly one argument.
func callShape(n *syntax.Node) (access, recv, arg *syntax.Node, ok bool) {
	if !n.Is(syntax.NodeInvocation) {
		return nil, nil, nil, false
	}

	access = n.Callee()
	if !access.Is(syntax.NodeMemberAccess) || access.Value != equalsMethod {
		return nil, nil, nil, false
	}
	recv = access.Receiver()
	if recv == nil {
		return nil, nil, nil, false
	}

	args, ok := n.Arguments()
	if !ok || len(args) != 1 || args[0] == nil {
		return nil, nil, nil, false
	}
	return access, recv, args[0], true
}

// Find returns every matching call under root in pre-order.
func Find(root *syntax.Node, facts lint.TypeFacts) []CallSite {
	var sites []CallSite
	_ = syntax.WalkPath(root, func(c syntax.Cursor) error {
		site, ok := Match(c.Node, facts)
		if !ok {
			return nil
		}
		site.Parent = c.Parent
		site.Ref = syntax.NewRef(c.Path, c.Node)
		sites = append(sites, site)
		return nil
	})
	return sites
}
