package semantic

import (
	"context"
	"fmt"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// Provider builds a Resolver per unit with shared options.
// It holds no per-unit state and is safe for concurrent use.
type Provider struct {
	opts Options
}

// NewProvider creates a provider.
func NewProvider(opts Options) *Provider {
	return &Provider{opts: opts}
}

// Options returns the provider's resolution options.
func (p *Provider) Options() Options {
	return p.opts
}

// Resolve analyses unit.
func (p *Provider) Resolve(ctx context.Context, unit *syntax.Unit) (*Resolver, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("resolve %s: %w", unitPath(unit), ctx.Err())
	default:
	}
	if unit == nil {
		return nil, fmt.Errorf("resolve: %w", ErrNilUnit)
	}
	return NewResolver(unit, p.opts), nil
}

func unitPath(u *syntax.Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.Path
}
