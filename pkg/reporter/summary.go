package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yaklabco/enumcmp/internal/ui/pretty"
	"github.com/yaklabco/enumcmp/pkg/analysis"
)

const (
	maxRuleNameLength = 40
	maxFilePathLength = 60
	fixableMark       = "yes"
)

// SummaryRenderer prints per-file and per-rule counts followed by the totals
// block. Diagnostics themselves are not listed.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer. Files come first: with a single rule the file
// table is the informative one.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if !report.Totals.HasIssues() {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		fmt.Fprint(r.out, r.styles.FormatSummary(report.Totals))
		return nil
	}

	if len(report.ByFile) > 0 {
		r.section("Files Summary", r.fileTable(report.ByFile))
	}
	if len(report.ByRule) > 0 {
		r.section("Rules Summary", r.ruleTable(report.ByRule))
	}
	fmt.Fprint(r.out, r.styles.FormatSummary(report.Totals))

	return nil
}

func (r *SummaryRenderer) section(title string, tbl *table.Table) {
	fmt.Fprintln(r.out, r.styles.Bold.Render(title))
	fmt.Fprintln(r.out, tbl.Render())
	fmt.Fprintln(r.out)
}

// countRow is the severity breakdown shared by both tables. The first cell is
// the label, the rest are right-aligned counts.
type countRow struct {
	label                   string
	issues                  int
	errors, warnings, infos int
	extra                   []string
}

func (c countRow) cells() []string {
	cells := []string{
		c.label,
		strconv.Itoa(c.issues),
		strconv.Itoa(c.errors),
		strconv.Itoa(c.warnings),
		strconv.Itoa(c.infos),
	}
	return append(cells, c.extra...)
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) *table.Table {
	rows := make([]countRow, 0, len(files))
	for _, file := range files {
		rows = append(rows, countRow{
			label:    truncateLeft(file.Path, maxFilePathLength),
			issues:   file.Issues,
			errors:   file.Errors,
			warnings: file.Warnings,
			infos:    file.Infos,
		})
	}
	return r.newTable([]string{"File", "Issues", "Errors", "Warnings", "Info"}, rows)
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) *table.Table {
	rows := make([]countRow, 0, len(rules))
	for _, rule := range rules {
		label := rule.RuleName
		if label == "" {
			label = rule.RuleID
		}
		fixable := ""
		if rule.Fixable {
			fixable = fixableMark
		}
		rows = append(rows, countRow{
			label:    truncateRight(label, maxRuleNameLength),
			issues:   rule.Issues,
			errors:   rule.Errors,
			warnings: rule.Warnings,
			infos:    rule.Infos,
			extra:    []string{fixable},
		})
	}
	return r.newTable([]string{"Rule", "Issues", "Errors", "Warnings", "Info", "Fixable"}, rows)
}

// newTable lays out rows with lipgloss. The label column takes the row's
// severity color; count columns are right-aligned.
func (r *SummaryRenderer) newTable(headers []string, rows []countRow) *table.Table {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, row.cells())
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.styles.TableBorder).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cell
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			switch {
			case row == table.HeaderRow:
				return style.Inherit(r.styles.TableHeader)
			case col == 0 && row < len(rows):
				sev := rows[row]
				return style.Inherit(r.styles.RowStyle(sev.errors, sev.warnings, sev.infos))
			default:
				return style
			}
		})
}

// truncateLeft keeps the end of s, where a path keeps its file name.
func truncateLeft(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return "…" + string(runes[len(runes)-limit+1:])
}

func truncateRight(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
