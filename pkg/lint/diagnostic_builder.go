package lint

import (
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/fix"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic for node, positioned using unit.
func NewDiagnostic(ruleID string, unit *syntax.Unit, node *syntax.Node, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:  ruleID,
			Message: message,
		},
	}
	if unit != nil {
		b.diag.FilePath = unit.Path
	}
	if node != nil {
		b.At(unit, node.Span)
	}
	return b
}

// At positions the diagnostic at span.
func (b *DiagnosticBuilder) At(unit *syntax.Unit, span syntax.Span) *DiagnosticBuilder {
	b.diag.Span = span
	if unit == nil {
		return b
	}
	b.diag.StartLine, b.diag.StartColumn = unit.LineAt(span.Start)
	b.diag.EndLine, b.diag.EndColumn = unit.LineAt(span.End)
	return b
}

// WithRegistry fills in the rule name from reg.
func (b *DiagnosticBuilder) WithRegistry(reg *Registry) *DiagnosticBuilder {
	if reg == nil {
		return b
	}
	if rule, ok := reg.GetByID(b.diag.RuleID); ok {
		b.diag.RuleName = rule.Name()
	}
	return b
}

// WithTarget records a back-reference to the offending node.
func (b *DiagnosticBuilder) WithTarget(ref syntax.Ref) *DiagnosticBuilder {
	b.diag.Target = ref
	return b
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithEdit adds a single fix preview edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
