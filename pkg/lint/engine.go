package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/enumcmp/internal/logging"
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/fix"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Unit is the parsed file.
	Unit *syntax.Unit

	// Facts are the type facts the rules ran against.
	Facts TypeFacts

	// Diagnostics contains all issues found, grouped by rule in rule order.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted preview edits of the auto-fixable
	// diagnostics. Empty when --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains preview edits dropped due to conflicts.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any preview edits were dropped.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// FixOutcome is the result of one fix pass over a unit.
type FixOutcome struct {
	// Root is the rewritten tree.
	Root *syntax.Node

	// Content is Root rendered to source. Nil when nothing was applied.
	Content []byte

	// Applied lists the fixed diagnostics.
	Applied []Diagnostic

	// Skipped lists the diagnostics that could not be fixed.
	Skipped []SkippedFix

	// RuleErrors contains batch failures by rule ID.
	RuleErrors map[string]error
}

// Engine coordinates parsing, type resolution, rule execution, and fixing.
type Engine struct {
	// Parser parses source files into units.
	Parser Parser

	// Facts builds type facts for parsed units. May be nil.
	Facts FactsProvider

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine.
func NewEngine(parser Parser, facts FactsProvider, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Facts:    facts,
		Registry: registry,
	}
}

// LintFile parses and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	unit, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return e.LintUnit(ctx, unit, cfg)
}

// LintUnit lints an already parsed unit.
func (e *Engine) LintUnit(ctx context.Context, unit *syntax.Unit, cfg *config.Config) (*FileResult, error) {
	logger := logging.FromContext(ctx)

	var facts TypeFacts
	if e.Facts != nil {
		var err error
		facts, err = e.Facts.Facts(ctx, unit)
		if err != nil {
			return nil, fmt.Errorf("type facts: %w", err)
		}
	}

	result := &FileResult{
		Unit:       unit,
		Facts:      facts,
		RuleErrors: make(map[string]error),
	}

	var allEdits []fix.TextEdit

	for _, rr := range ResolveRules(e.Registry, cfg) {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, unit, facts, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			logger.Debug("rule failed", logging.FieldRule, rr.Rule.ID(), logging.FieldPath, unit.Path, logging.FieldError, err)
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = unit.Path
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
			if rr.AutoFix && len(diags[i].FixEdits) > 0 {
				allEdits = append(allEdits, diags[i].FixEdits...)
			}
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, len(unit.Content))
		if err != nil {
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	logger.Debug("linted unit",
		logging.FieldPath, unit.Path,
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldParseErrors, unit.HasErrors,
	)

	return result, nil
}

// Fix runs every auto-fixing rule's batch fixer over the diagnostics in
// result, threading the rewritten tree from one rule to the next.
func (e *Engine) Fix(ctx context.Context, result *FileResult, cfg *config.Config) (*FixOutcome, error) {
	if result == nil || result.Unit == nil {
		return &FixOutcome{}, nil
	}

	outcome := &FixOutcome{
		Root:       result.Unit.Root,
		RuleErrors: make(map[string]error),
	}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if !rr.AutoFix {
			continue
		}
		fixer, ok := rr.Rule.(Fixer)
		if !ok {
			continue
		}

		diags := diagnosticsFor(result.Diagnostics, rr.Rule.ID())
		if len(diags) == 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("fixing cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, result.Unit, result.Facts, cfg, rr.Config)
		ruleCtx.Root = outcome.Root
		ruleCtx.Registry = e.Registry

		fr, err := fixer.FixAll(ruleCtx, diags)
		if err != nil {
			outcome.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		outcome.Root = fr.Root
		outcome.Applied = append(outcome.Applied, fr.Applied...)
		outcome.Skipped = append(outcome.Skipped, fr.Skipped...)
	}

	if len(outcome.Applied) > 0 {
		outcome.Content = syntax.Render(result.Unit.Content, outcome.Root)
	}

	return outcome, nil
}

func diagnosticsFor(diags []Diagnostic, ruleID string) []Diagnostic {
	var out []Diagnostic
	for i := range diags {
		if diags[i].RuleID == ruleID {
			out = append(out, diags[i])
		}
	}
	return out
}
