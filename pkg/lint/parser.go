package lint

import (
	"context"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// Parser parses source content into a syntax.Unit.
//
// Implementations must be deterministic for a given (path, content) pair and
// must not mutate content or perform I/O. A parse that recovers from syntax
// errors returns a unit with HasErrors set, not an error.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*syntax.Unit, error)
}
