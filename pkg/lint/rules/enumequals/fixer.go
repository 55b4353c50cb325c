package enumequals

import (
	"errors"
	"fmt"

	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/rewrite"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

// ErrStaleTarget means a diagnostic no longer points at a matching call.
var ErrStaleTarget = errors.New("fix target no longer matches")

// FixAll rewrites the calls named by diags in one structural pass over
// ctx.Root. Diagnostics that cannot be fixed are reported in the result's
// Skipped list and never stop the rest of the batch. Calls nested inside
// another fixed call are skipped with rewrite.ErrOverlap; a later pass over
// the re-parsed output picks them up.
func (r *Rule) FixAll(ctx *lint.RuleContext, diags []lint.Diagnostic) (*lint.FixResult, error) {
	result := &lint.FixResult{Root: ctx.Root}
	if ctx.Root == nil || len(diags) == 0 {
		return result, nil
	}

	var edits []rewrite.Edit
	owners := make(map[*syntax.Node][]lint.Diagnostic, len(diags))

	for _, d := range diags {
		if d.RuleID != "" && d.RuleID != r.ID() {
			continue
		}
		edit, err := r.prepare(ctx, d)
		if err != nil {
			result.Skipped = append(result.Skipped, lint.SkippedFix{Diagnostic: d, Err: err})
			continue
		}
		if _, dup := owners[edit.Target]; !dup {
			edits = append(edits, edit)
		}
		owners[edit.Target] = append(owners[edit.Target], d)
	}

	kept, nested := rewrite.Outermost(edits)
	for _, e := range nested {
		for _, d := range owners[e.Target] {
			result.Skipped = append(result.Skipped, lint.SkippedFix{Diagnostic: d, Err: rewrite.ErrOverlap})
		}
	}
	if len(kept) == 0 {
		return result, nil
	}

	root, err := rewrite.ReplaceAll(ctx.Root, kept)
	if err != nil {
		return nil, fmt.Errorf("apply %s fixes: %w", r.ID(), err)
	}

	result.Root = root
	for _, e := range kept {
		result.Applied = append(result.Applied, owners[e.Target]...)
	}
	return result, nil
}

// FixOne rewrites the single call named by d and returns the new root.
// A span outside the unit is a caller error and is returned as
// lint.ErrSpanOutOfBounds.
func (r *Rule) FixOne(ctx *lint.RuleContext, d lint.Diagnostic) (*syntax.Node, error) {
	edit, err := r.prepare(ctx, d)
	if err != nil {
		return nil, err
	}
	root, err := rewrite.ReplaceAll(ctx.Root, []rewrite.Edit{edit})
	if err != nil {
		return nil, fmt.Errorf("apply %s fix: %w", r.ID(), err)
	}
	return root, nil
}

// prepare relocates d's call in ctx.Root, re-checks it, and builds its edit.
func (r *Rule) prepare(ctx *lint.RuleContext, d lint.Diagnostic) (rewrite.Edit, error) {
	if err := ctx.CheckSpan(d); err != nil {
		return rewrite.Edit{}, err
	}

	ref := d.Target
	if ref.IsZero() {
		ref = syntax.Ref{Span: d.Span, Kind: syntax.NodeInvocation}
	}
	call, parent, ok := syntax.Locate(ctx.Root, ref)
	if !ok || call.Span != d.Span {
		return rewrite.Edit{}, fmt.Errorf("%w: %s", ErrStaleTarget, d.Span)
	}

	site, ok := Match(call, ctx.Facts)
	if !ok {
		return rewrite.Edit{}, fmt.Errorf("%w: %s", ErrStaleTarget, d.Span)
	}
	site.Parent = parent

	replacement, err := Synthesize(site)
	if err != nil {
		return rewrite.Edit{}, err
	}
	return rewrite.Edit{Target: call, Replacement: replacement}, nil
}
