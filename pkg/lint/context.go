package lint

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// ErrSpanOutOfBounds is returned when a diagnostic's span does not address
// bytes of the unit it is applied to.
var ErrSpanOutOfBounds = errors.New("diagnostic span outside unit")

// RuleContext provides all context needed by a rule to analyze or fix a unit.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per rule invocation.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed unit.
	File *syntax.Unit

	// Root is the tree to analyze or rewrite. It starts as File.Root and is
	// replaced by the result of earlier fixes within the same pass.
	Root *syntax.Node

	// Facts answers type questions about File's nodes.
	Facts TypeFacts

	// Config is the resolved configuration.
	Config *config.Config

	// RuleConfig is the rule-specific configuration (may be nil).
	RuleConfig *config.RuleConfig

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry
}

// NewRuleContext creates a RuleContext for the given unit and configuration.
func NewRuleContext(
	ctx context.Context,
	file *syntax.Unit,
	facts TypeFacts,
	cfg *config.Config,
	ruleCfg *config.RuleConfig,
) *RuleContext {
	var root *syntax.Node
	if file != nil {
		root = file.Root
	}
	if facts == nil {
		facts = noFacts{}
	}

	return &RuleContext{
		Ctx:        ctx,
		File:       file,
		Root:       root,
		Facts:      facts,
		Config:     cfg,
		RuleConfig: ruleCfg,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// CheckSpan verifies that a diagnostic addresses bytes of this unit.
func (rc *RuleContext) CheckSpan(d Diagnostic) error {
	if rc.File == nil || !rc.File.InBounds(d.Span) || d.Span.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrSpanOutOfBounds, d.Span)
	}
	return nil
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.RuleConfig == nil || rc.RuleConfig.Options == nil {
		return defaultValue
	}
	if v, ok := rc.RuleConfig.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// YAML decodes sequences as []any.
	if items, ok := v.([]any); ok {
		result := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
