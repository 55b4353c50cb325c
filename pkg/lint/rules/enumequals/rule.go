// Package enumequals implements the EnumComparedByEqualsAnalyzer rule.
//
// The rule reports calls of the form r.Equals(a) where r is an enum and the
// call binds to Equals(object). Such calls box both operands and dispatch
// virtually; the rule's fix rewrites them to r == a.
package enumequals

import (
	"fmt"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/fix"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

const (
	// RuleID is the diagnostic identifier.
	RuleID = "EnumComparedByEqualsAnalyzer"

	// RuleName is the rule's human-friendly name.
	RuleName = "enum-compared-by-equals"

	// Category groups the rule with other performance rules.
	Category = "Performance"

	fixTitle = "Replace with op_eq"
)

// Rule reports enum Equals(object) calls and fixes them.
type Rule struct {
	lint.BaseRule
}

// NewRule creates the rule.
func NewRule() *Rule {
	return &Rule{
		BaseRule: lint.NewBaseRule(
			RuleID,
			RuleName,
			"Enum compared by Equals",
			Category,
			[]string{"enum", "equality", "boxing"},
			true,
		),
	}
}

// DefaultSeverity returns error: the fix is always expected to be applied.
func (r *Rule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// FixTitle returns the title of the rule's code fix.
func (r *Rule) FixTitle() string {
	return fixTitle
}

// Apply reports every matching call in traversal order.
func (r *Rule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}
	if ctx.Cancelled() {
		return nil, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
	}

	sites := Find(ctx.Root, ctx.Facts)
	if len(sites) == 0 {
		return nil, nil
	}

	diags := make([]lint.Diagnostic, 0, len(sites))
	for _, site := range sites {
		diags = append(diags, r.diagnose(ctx, site))
	}
	return diags, nil
}

func (r *Rule) diagnose(ctx *lint.RuleContext, site CallSite) lint.Diagnostic {
	builder := lint.NewDiagnostic(r.ID(), ctx.File, site.Call,
		fmt.Sprintf("Replace '%s' with '=='", ctx.File.Text(site.Access))).
		WithRegistry(ctx.Registry).
		WithTarget(site.Ref).
		WithSeverity(r.DefaultSeverity())

	replacement, err := Synthesize(site)
	if err != nil {
		// Reported without a fix.
		return builder.
			WithSuggestion(fmt.Sprintf("Compare against a %s value with '=='", site.ReceiverType)).
			Build()
	}

	text := ctx.File.Text(replacement)
	span := site.Span()
	return builder.
		WithSuggestion(fmt.Sprintf("Use '%s'", text)).
		WithEdit(fix.Replace(span.Start, span.End, text)).
		Build()
}
