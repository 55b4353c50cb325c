// Package csharp parses C# source into syntax trees using tree-sitter.
package csharp

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	csharpgrammar "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// ErrNoTree is returned when tree-sitter produces no tree for the input.
var ErrNoTree = errors.New("tree-sitter returned no tree")

//nolint:gochecknoglobals // Read-only byte sequence.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser converts C# source into syntax.Units.
// A new tree-sitter parser is created per call, so Parser is safe for
// concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse parses content. Syntax errors do not fail the parse: the affected
// regions become NodeError nodes and the unit's HasErrors flag is set.
// A leading UTF-8 byte order mark is left outside the root node.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Unit, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("parse %s: %w", path, ctx.Err())
	default:
	}

	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(sitter.NewLanguage(csharpgrammar.Language())); err != nil {
		return nil, fmt.Errorf("parse %s: set language: %w", path, err)
	}

	base := 0
	if bytes.HasPrefix(content, utf8BOM) {
		base = len(utf8BOM)
	}

	tree := parser.Parse(content[base:], nil)
	if tree == nil {
		return nil, fmt.Errorf("parse %s: %w", path, ErrNoTree)
	}
	defer tree.Close()

	root := tree.RootNode()
	conv := converter{src: content, base: base}
	unit := syntax.NewUnit(path, content, conv.convert(root, ""))
	unit.HasErrors = root.HasError()

	return unit, nil
}
