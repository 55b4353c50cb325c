package csharp

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// FuzzParse checks that any input parses without panicking and renders back
// byte for byte.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"class C {}",
		"enum Mode { Off, On }",
		"class C { bool M(Mode m) => m.Equals(Mode.On); }",
		"class C { void M() { var x = StringSplitOptions.None; var y = x.Equals(x); } }",
		"class C { void M() { if (!(a.Equals(b))) {} } }",
		"class C {\r\n  // comment\r\n  int x = 1;\r\n}\r\n",
		"class C { void M() { var x = ; } }",
		"/* unterminated",
		"\"string",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	p := New()

	f.Fuzz(func(t *testing.T, data []byte) {
		unit, err := p.Parse(context.Background(), "fuzz.cs", data)
		if err != nil {
			return
		}

		if got := syntax.Render(unit.Content, unit.Root); !bytes.Equal(got, data) {
			t.Errorf("render mismatch for %q: got %q", data, got)
		}

		_ = syntax.Walk(unit.Root, func(n *syntax.Node) error {
			if !n.Span.Valid(len(data)) {
				t.Errorf("node %s has invalid span %s", n.Grammar, n.Span)
			}
			return nil
		})
	})
}
