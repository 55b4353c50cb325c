package lint

import "github.com/yaklabco/enumcmp/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
type BaseRule struct {
	id       string
	name     string
	desc     string
	category string
	tags     []string
	fixable  bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc, category string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		category: category,
		tags:     tags,
		fixable:  fixable,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns a detailed description of what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Category returns the rule's category.
func (r *BaseRule) Category() string {
	return r.category
}

// DefaultEnabled returns true; override to change.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns warning; override to change.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Apply returns no diagnostics; concrete rules override it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
