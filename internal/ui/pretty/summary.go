package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/enumcmp/pkg/analysis"
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 issues (3 errors) in 2 files, 3 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var extras []string
	if stats.FilesGenerated > 0 {
		extras = append(extras, s.Dim.Render(fmt.Sprintf("%d generated %s skipped",
			stats.FilesGenerated, plural(stats.FilesGenerated, wordFile, wordFiles))))
	}
	if stats.FilesErrored > 0 {
		extras = append(extras, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}
	if stats.DiagnosticsFixed > 0 {
		extras = append(extras, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, wordFile, wordFiles))))
	}

	if stats.DiagnosticsTotal == 0 {
		parts := append([]string{
			s.Success.Render("No issues found") +
				s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles))),
		}, extras...)
		return strings.Join(parts, ", ") + "\n"
	}

	var severityParts []string
	if n := stats.DiagnosticsBySeverity[config.SeverityError]; n > 0 {
		severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error", "errors"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityWarning]; n > 0 {
		severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning", "warnings"))))
	}
	if n := stats.DiagnosticsBySeverity[config.SeverityInfo]; n > 0 {
		severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(severityParts) > 0 {
		head += " (" + strings.Join(severityParts, ", ") + ")"
	}
	head += fmt.Sprintf(" in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, wordFile, wordFiles))

	parts := []string{head}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	parts = append(parts, extras...)

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats report totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " + s.SummaryValue.Render(strconv.Itoa(totals.Files)) + "\n")
	if totals.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " + s.Failure.Render(strconv.Itoa(totals.FilesWithIssues)) + "\n")
	}
	if totals.FilesModified > 0 {
		builder.WriteString("  Files modified:    " + s.Success.Render(strconv.Itoa(totals.FilesModified)) + "\n")
	}
	if totals.FilesGenerated > 0 {
		builder.WriteString("  Generated skipped: " + s.Dim.Render(strconv.Itoa(totals.FilesGenerated)) + "\n")
	}
	if totals.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " + s.Failure.Render(strconv.Itoa(totals.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " + s.SummaryValue.Render(strconv.Itoa(totals.Issues)) + "\n")
	if totals.Errors > 0 {
		builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(totals.Errors)) + "\n")
	}
	if totals.Warnings > 0 {
		builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(totals.Warnings)) + "\n")
	}
	if totals.Infos > 0 {
		builder.WriteString("    Info:            " + s.Info.Render(strconv.Itoa(totals.Infos)) + "\n")
	}
	if totals.Fixable > 0 {
		builder.WriteString("    Fixable:         " + s.Success.Render(strconv.Itoa(totals.Fixable)) + "\n")
	}
	if totals.Fixed > 0 {
		builder.WriteString("  Fixed:             " + s.Success.Render(strconv.Itoa(totals.Fixed)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case totals.Errors > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
