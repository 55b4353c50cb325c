package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/enumcmp/internal/ui/pretty"
	"github.com/yaklabco/enumcmp/pkg/fix"
	"github.com/yaklabco/enumcmp/pkg/runner"
)

// DiffReporter prints the rewrites a dry run would make as git-style unified
// diffs, one per changed file, followed by a diffstat line.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// diffStat accumulates the totals of the closing line.
type diffStat struct {
	files, additions, deletions int
}

// Report implements Reporter. The count is the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var stat diffStat
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render("error: "+file.Error.Error()),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		d := file.Result.Diff
		stat.files++
		stat.additions += d.Additions
		stat.deletions += d.Deletions
		r.writeDiff(d)
	}

	if stat.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.out, r.formatStat(stat))
	}

	return stat.files, nil
}

// writeDiff prints one file's diff with its headers rewritten to the display
// path.
func (r *DiffReporter) writeDiff(d *fix.Diff) {
	display := relativePath(d.Path, r.opts.WorkingDir)
	if relabeled := fix.GenerateDiff(display, d.Original, d.Modified); relabeled != nil {
		d = relabeled
	}

	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", display, display)))
	for _, line := range strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n") {
		fmt.Fprintln(r.out, r.lineStyle(line).Render(line))
	}
	fmt.Fprintln(r.out)
}

func (r *DiffReporter) lineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "@@"):
		return r.styles.DiffHunk
	case strings.HasPrefix(line, "+"):
		return r.styles.DiffAdd
	case strings.HasPrefix(line, "-"):
		return r.styles.DiffRemove
	default:
		return r.styles.DiffContext
	}
}

// formatStat renders "N files changed, A insertions(+), D deletions(-)".
func (r *DiffReporter) formatStat(stat diffStat) string {
	parts := []string{countNoun(stat.files, "file") + " changed"}
	if stat.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(countNoun(stat.additions, "insertion")+"(+)"))
	}
	if stat.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(countNoun(stat.deletions, "deletion")+"(-)"))
	}
	return strings.Join(parts, ", ")
}

func countNoun(n int, noun string) string {
	if n != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// relativePath shows path relative to workDir, or to the process directory
// when workDir is empty. Paths more than two levels above it are shown by
// base name.
func relativePath(path, workDir string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	if workDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		workDir = cwd
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
