package lint

import (
	"context"

	"github.com/yaklabco/enumcmp/pkg/semantic"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// TypeFacts answers static type questions about the nodes of one unit.
// Both methods report ok=false when the answer is unknown; rules must treat
// unknown as "does not match".
type TypeFacts interface {
	// TypeOf returns the static type of an expression node.
	TypeOf(n *syntax.Node) (semantic.Type, bool)

	// ResolveCall returns the method signature an invocation node binds to.
	ResolveCall(call *syntax.Node) (semantic.Signature, bool)
}

// FactsProvider builds TypeFacts for a parsed unit.
type FactsProvider interface {
	Facts(ctx context.Context, unit *syntax.Unit) (TypeFacts, error)
}

// FactsFunc adapts a function to FactsProvider.
type FactsFunc func(ctx context.Context, unit *syntax.Unit) (TypeFacts, error)

// Facts implements FactsProvider.
func (f FactsFunc) Facts(ctx context.Context, unit *syntax.Unit) (TypeFacts, error) {
	return f(ctx, unit)
}

// SemanticFacts returns a FactsProvider backed by a semantic.Provider.
func SemanticFacts(p *semantic.Provider) FactsProvider {
	return FactsFunc(func(ctx context.Context, unit *syntax.Unit) (TypeFacts, error) {
		r, err := p.Resolve(ctx, unit)
		if err != nil {
			return nil, err
		}
		return r, nil
	})
}

// noFacts knows nothing. It is used when an engine has no provider.
type noFacts struct{}

func (noFacts) TypeOf(*syntax.Node) (semantic.Type, bool)           { return semantic.Type{}, false }
func (noFacts) ResolveCall(*syntax.Node) (semantic.Signature, bool) { return semantic.Signature{}, false }
