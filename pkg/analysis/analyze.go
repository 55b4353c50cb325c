// Package analysis aggregates a runner.Result into a Report shared by the
// machine-readable and summary renderers.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// ToolName identifies reports produced by this module.
const ToolName = "enumcmp"

// makeRelativePath converts an absolute path to a slash-separated path
// relative to workDir. If workDir is empty or conversion fails, returns the
// original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(relPath)
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	ruleMap   map[string]*RuleAnalysis
	fileMap   map[string]*FileAnalysis
	ruleFiles map[string]map[string]bool
	fileRules map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		ruleMap:   make(map[string]*RuleAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		ruleFiles: make(map[string]map[string]bool),
		fileRules: make(map[string]map[string]bool),
	}
}

func normalizeSeverity(sev config.Severity) config.Severity {
	if sev == "" {
		return config.SeverityWarning
	}
	return sev
}

func incrementSeverityCounts(severity config.Severity, totals *Totals, fa *FileAnalysis) {
	switch severity {
	case config.SeverityError:
		totals.Errors++
		fa.Errors++
	case config.SeverityWarning:
		totals.Warnings++
		fa.Warnings++
	case config.SeverityInfo:
		totals.Infos++
		fa.Infos++
	}
}

func incrementRuleSeverity(severity config.Severity, ra *RuleAnalysis) {
	switch severity {
	case config.SeverityError:
		ra.Errors++
	case config.SeverityWarning:
		ra.Warnings++
	case config.SeverityInfo:
		ra.Infos++
	}
}

func (ctx *analysisContext) fileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) ruleAnalysis(ruleID, ruleName string) *RuleAnalysis {
	if _, ok := ctx.ruleMap[ruleID]; !ok {
		ctx.ruleMap[ruleID] = &RuleAnalysis{
			RuleID:   ruleID,
			RuleName: ruleName,
		}
		ctx.ruleFiles[ruleID] = make(map[string]bool)
	}
	return ctx.ruleMap[ruleID]
}

func newDiagnosticEntry(path string, severity config.Severity, diag *lint.Diagnostic, opts Options) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:    path,
		Rule:        config.FormatRuleID(opts.RuleFormat, diag.RuleID, diag.RuleName),
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(severity),
		Message:     diag.Message,
		Offset:      diag.Span.Start,
		Length:      diag.Span.Len(),
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     diag.HasFix(),
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

func (ctx *analysisContext) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(ctx.ruleMap))
	for ruleID, ra := range ctx.ruleMap {
		for f := range ctx.ruleFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortRuleAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for r := range ctx.fileRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report in a single pass over the
// diagnostics.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Tool:      ToolName,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	report.Totals.FilesErrored = result.Stats.FilesErrored
	report.Totals.FilesGenerated = result.Stats.FilesGenerated
	report.Totals.FilesModified = result.Stats.FilesModified
	report.Totals.Fixed = result.Stats.DiagnosticsFixed

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		entry := FileEntry{
			Path:        displayPath,
			Diagnostics: make([]DiagnosticEntry, 0),
			Generated:   file.Generated,
		}
		if file.Error != nil {
			entry.Error = file.Error.Error()
		}

		if pr := file.Result; pr != nil {
			report.Totals.Files++
			entry.Modified = pr.Written || pr.Modified
			if pr.Skipped {
				entry.SkipReason = pr.SkipReason
			}
		}

		if file.Result != nil && file.Result.FileResult != nil {
			if len(file.Result.Diagnostics) > 0 {
				report.Totals.FilesWithIssues++
			}
			fa := ctx.fileAnalysis(displayPath)

			for i := range file.Result.Diagnostics {
				diag := &file.Result.Diagnostics[i]
				report.Totals.Issues++
				severity := normalizeSeverity(diag.Severity)
				fixable := diag.HasFix()

				incrementSeverityCounts(severity, &report.Totals, fa)
				if fixable {
					report.Totals.Fixable++
				}

				fa.Issues++
				ctx.fileRules[displayPath][diag.RuleID] = true

				ra := ctx.ruleAnalysis(diag.RuleID, diag.RuleName)
				ra.Issues++
				incrementRuleSeverity(severity, ra)
				if fixable {
					ra.Fixable = true
				}
				ctx.ruleFiles[diag.RuleID][displayPath] = true

				entry.Diagnostics = append(entry.Diagnostics, newDiagnosticEntry(displayPath, severity, diag, opts))
			}
		}

		if opts.IncludeFiles {
			report.Files = append(report.Files, entry)
		}
	}

	if opts.IncludeByRule {
		report.ByRule = ctx.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

func sortRuleAnalysis(rules []RuleAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(rules, func(left, right RuleAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.RuleID, right.RuleID)
		case SortBySeverity:
			// Errors first, then warnings, then infos (always descending by severity)
			result := cmp.Compare(right.Errors, left.Errors)
			if result == 0 {
				result = cmp.Compare(right.Warnings, left.Warnings)
			}
			if result == 0 {
				result = cmp.Compare(right.Issues, left.Issues)
			}
			if result == 0 {
				result = cmp.Compare(left.RuleID, right.RuleID)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(left.Issues, right.Issues)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.RuleID, right.RuleID)
			}
			return result
		}
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		switch sortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(left.Path, right.Path)
		case SortBySeverity:
			// Errors first, then warnings, then infos (always descending by severity)
			result := cmp.Compare(right.Errors, left.Errors)
			if result == 0 {
				result = cmp.Compare(right.Warnings, left.Warnings)
			}
			if result == 0 {
				result = cmp.Compare(right.Issues, left.Issues)
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		default: // SortByCount
			result := cmp.Compare(left.Issues, right.Issues)
			if desc {
				result = -result
			}
			if result == 0 {
				result = cmp.Compare(left.Path, right.Path)
			}
			return result
		}
	})
}
