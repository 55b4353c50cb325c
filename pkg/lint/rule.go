// Package lint provides the rule engine, diagnostics, and registry for enumcmp.
package lint

import (
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/fix"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// Diagnostic represents a single issue found in a unit.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "enum-compared-by-equals").
	RuleName string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// Span is the byte range of the offending node.
	Span syntax.Span

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column number where the issue ends.
	EndColumn int

	// Target refers back to the offending node so a fixer can find it again.
	Target syntax.Ref

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits previews the fix as byte edits (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "EnumComparedByEqualsAnalyzer").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// Category returns the rule's category (e.g., "Performance").
	Category() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule.
	Tags() []string

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must:
	//   - Return diagnostics in source order.
	//   - Respect context cancellation.
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}

// Fixer is implemented by rules that rewrite the syntax tree to fix their
// diagnostics.
type Fixer interface {
	Rule

	// FixTitle is the short description of the fix shown to users.
	FixTitle() string

	// FixAll fixes every diagnostic it can in one pass over ctx.Root and
	// returns the new tree. Diagnostics that cannot be fixed are reported in
	// FixResult.Skipped; an error means the batch as a whole failed.
	FixAll(ctx *RuleContext, diags []Diagnostic) (*FixResult, error)
}

// FixResult is the outcome of a batch fix.
type FixResult struct {
	// Root is the rewritten tree. It equals the input root when nothing applied.
	Root *syntax.Node

	// Applied lists the diagnostics whose fix is reflected in Root.
	Applied []Diagnostic

	// Skipped lists the diagnostics that were not fixed and why.
	Skipped []SkippedFix
}

// SkippedFix records a diagnostic whose fix was not applied.
type SkippedFix struct {
	Diagnostic Diagnostic
	Err        error
}
