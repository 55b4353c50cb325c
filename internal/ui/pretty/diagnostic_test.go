package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/enumcmp/internal/ui/pretty"
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

func enumDiag() *lint.Diagnostic {
	return &lint.Diagnostic{
		RuleID:      "EnumComparedByEqualsAnalyzer",
		RuleName:    "enum-compared-by-equals",
		Message:     "Replace 'x.Equals' with '=='",
		Severity:    config.SeverityError,
		FilePath:    "src/C.cs",
		StartLine:   8,
		StartColumn: 17,
		EndLine:     8,
		EndColumn:   50,
	}
}

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatDiagnostic(enumDiag(), false, "")

	assert.Contains(t, result, "src/C.cs:8:17")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "Replace 'x.Equals' with '=='")
	assert.Contains(t, result, "(enum-compared-by-equals)")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	source := "        var y = x.Equals(StringSplitOptions.None);"
	result := styles.FormatDiagnostic(enumDiag(), true, source)

	lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "        "+source, lines[1])
	assert.Equal(t, "        "+strings.Repeat(" ", 16)+strings.Repeat("^", 33), lines[2])
}

func TestFormatDiagnostic_WithSuggestion(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := enumDiag()
	diag.Suggestion = "Use 'x == StringSplitOptions.None'"

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "Suggestion:")
	assert.Contains(t, result, "Use 'x == StringSplitOptions.None'")
}

func TestFormatSeverity_AllLevels(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		severity config.Severity
		expected string
	}{
		{config.SeverityError, "error"},
		{config.SeverityWarning, "warning"},
		{config.SeverityInfo, "info"},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			assert.Equal(t, tt.expected, styles.FormatSeverity(tt.severity))
		})
	}
}

func TestFormatSourceContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name      string
		line      string
		column    int
		width     int
		wantCaret string
	}{
		{name: "single caret", line: "x.Equals(y)", column: 1, width: 1, wantCaret: "^"},
		{name: "underline", line: "x.Equals(y)", column: 1, width: 11, wantCaret: "^^^^^^^^^^^"},
		{name: "clamped to line end", line: "a x.Equals(y)", column: 3, width: 99, wantCaret: "  ^^^^^^^^^^^"},
		{name: "tabs expanded", line: "\t\tx.Equals(y)", column: 3, width: 1, wantCaret: "        ^"},
		{name: "zero column", line: "x.Equals(y)", column: 0, width: 1, wantCaret: ""},
		{name: "past end", line: "x", column: 9, width: 1, wantCaret: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := styles.FormatSourceContext(tt.line, tt.column, tt.width)
			lines := strings.Split(strings.TrimSuffix(result, "\n"), "\n")

			assert.Equal(t, "        "+strings.ReplaceAll(tt.line, "\t", "    "), lines[0])
			if tt.wantCaret == "" {
				assert.Len(t, lines, 1)
				return
			}
			assert.Len(t, lines, 2)
			assert.Equal(t, "        "+tt.wantCaret, lines[1])
		})
	}
}

func TestFormatFileHeader(t *testing.T) {
	styles := pretty.NewStyles(false)

	assert.Equal(t, "src/C.cs (5 issues)", styles.FormatFileHeader("src/C.cs", 5))
	assert.Equal(t, "src/C.cs (1 issue)", styles.FormatFileHeader("src/C.cs", 1))
	assert.Equal(t, "src/C.cs", styles.FormatFileHeader("src/C.cs", 0))
}

func TestFormatDiagnostic_WithRuleFormat(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		format   config.RuleFormat
		contains string
		excludes string
	}{
		{config.RuleFormatName, "(enum-compared-by-equals)", "(EnumComparedByEqualsAnalyzer)"},
		{config.RuleFormatID, "(EnumComparedByEqualsAnalyzer)", "(enum-compared-by-equals)"},
		{config.RuleFormatCombined, "(EnumComparedByEqualsAnalyzer/enum-compared-by-equals)", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			result := styles.FormatDiagnosticWithFormat(enumDiag(), false, "", tt.format)
			assert.Contains(t, result, tt.contains)
			if tt.excludes != "" {
				assert.NotContains(t, result, tt.excludes)
			}
		})
	}
}
