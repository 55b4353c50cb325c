package configloader

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/lint/rules/enumequals"
)

func testRegistry() *lint.Registry {
	reg := lint.NewRegistry()
	enumequals.Register(reg)
	return reg
}

func convert(t *testing.T, name, content string) *MigrationResult {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	writeFile(t, path, content)

	result, err := ConvertAnalyzerConfig(path, testRegistry())
	if err != nil {
		t.Fatalf("ConvertAnalyzerConfig() error = %v", err)
	}
	return result
}

func ruleSetting(t *testing.T, result *MigrationResult) (bool, string) {
	t.Helper()

	rule, ok := result.Config.Rules[ruleID]
	if !ok {
		t.Fatalf("%s not imported; warnings: %v", ruleID, result.Warnings)
	}
	if rule.Enabled == nil {
		t.Fatal("expected Enabled to be set")
	}
	severity := ""
	if rule.Severity != nil {
		severity = *rule.Severity
	}
	return *rule.Enabled, severity
}

func TestConvertAnalyzerConfig_Severities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value        string
		wantEnabled  bool
		wantSeverity string
	}{
		{"error", true, "error"},
		{"warning", true, "warning"},
		{"suggestion", true, "info"},
		{"silent", false, ""},
		{"none", false, ""},
		{"Warning", true, "warning"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			result := convert(t, ".editorconfig",
				"root = true\n\n[*.cs]\ndotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = "+tt.value+"\n")

			enabled, severity := ruleSetting(t, result)
			if enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", enabled, tt.wantEnabled)
			}
			if severity != tt.wantSeverity {
				t.Errorf("severity = %q, want %q", severity, tt.wantSeverity)
			}
			if !slices.Equal(result.Imported, []string{ruleID}) {
				t.Errorf("imported = %v", result.Imported)
			}
		})
	}
}

func TestConvertAnalyzerConfig_Precedence(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", `root = true

[*.{cs,vb}]
dotnet_diagnostic.enumcomparedbyequalsanalyzer.severity = suggestion
dotnet_analyzer_diagnostic.category-Performance.severity = error
dotnet_analyzer_diagnostic.severity = none
`)

	enabled, severity := ruleSetting(t, result)
	if !enabled || severity != "info" {
		t.Errorf("expected the rule ID key to win, got enabled=%v severity=%q", enabled, severity)
	}
}

func TestConvertAnalyzerConfig_CategoryAndAll(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", "[*]\ndotnet_analyzer_diagnostic.category-performance.severity = warning\n")
	if _, severity := ruleSetting(t, result); severity != "warning" {
		t.Errorf("expected category severity, got %q", severity)
	}

	result = convert(t, ".editorconfig", "[*]\ndotnet_analyzer_diagnostic.severity = error\n")
	if _, severity := ruleSetting(t, result); severity != "error" {
		t.Errorf("expected all-analyzers severity, got %q", severity)
	}
}

func TestConvertAnalyzerConfig_LaterSectionWins(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", `[*.cs]
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = error

[**.cs]
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = warning
`)

	if _, severity := ruleSetting(t, result); severity != "warning" {
		t.Errorf("expected later section to win, got %q", severity)
	}
}

func TestConvertAnalyzerConfig_IgnoresOtherSections(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", `root = true
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = error

[*.vb]
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = none

[*.cs]
dotnet_diagnostic.CA1822.severity = none
indent_style = space
`)

	if len(result.Config.Rules) != 0 {
		t.Errorf("expected nothing imported, got %v", result.Config.Rules)
	}
	if len(result.Imported) != 0 {
		t.Errorf("expected nothing imported, got %v", result.Imported)
	}
}

func TestConvertAnalyzerConfig_GlobalConfig(t *testing.T) {
	t.Parallel()

	result := convert(t, ".globalconfig", `is_global = true
global_level = 100

# enum comparisons
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = warning
`)

	if _, severity := ruleSetting(t, result); severity != "warning" {
		t.Errorf("expected global section to apply, got %q", severity)
	}
}

func TestConvertAnalyzerConfig_Warnings(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", `[src/**.cs]
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = loud
not a setting
`)

	if _, ok := result.Config.Rules[ruleID]; ok {
		t.Error("expected the unknown severity to be skipped")
	}

	want := []string{
		"section [src/**.cs] is limited to part of the tree",
		`unknown severity "loud"`,
		"line 3: expected key = value",
	}
	for _, fragment := range want {
		found := slices.ContainsFunc(result.Warnings, func(w string) bool {
			return strings.Contains(w, fragment)
		})
		if !found {
			t.Errorf("expected warning containing %q, got %v", fragment, result.Warnings)
		}
	}
}

func TestConvertAnalyzerConfig_DefaultSkipped(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", "[*.cs]\ndotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = default\n")
	if len(result.Imported) != 0 {
		t.Errorf("expected default to leave the rule unset, got %v", result.Imported)
	}
}

func TestConvertAnalyzerConfig_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ConvertAnalyzerConfig(filepath.Join(t.TempDir(), ".editorconfig"), testRegistry())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMentionsRegisteredRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    bool
	}{
		{"rule id", ".editorconfig", "[*.cs]\ndotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = none\n", true},
		{"rule alias", ".editorconfig", "[*.cs]\ndotnet_diagnostic.enum-equals.severity = none\n", true},
		{"category", ".editorconfig", "[*.cs]\ndotnet_analyzer_diagnostic.category-Performance.severity = warning\n", true},
		{"all analyzers only", ".editorconfig", "[*.cs]\ndotnet_analyzer_diagnostic.severity = warning\n", false},
		{"other analyzer", ".editorconfig", "[*.cs]\ndotnet_diagnostic.CA1822.severity = none\n", false},
		{"global config", ".globalconfig", "is_global = true\ndotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = error\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.file)
			writeFile(t, path, tt.content)

			if got := MentionsRegisteredRule(path); got != tt.want {
				t.Errorf("MentionsRegisteredRule() = %v, want %v", got, tt.want)
			}
		})
	}

	if MentionsRegisteredRule(filepath.Join(t.TempDir(), "missing")) {
		t.Error("expected false for a missing file")
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	t.Parallel()

	result := convert(t, ".editorconfig", "[*.cs]\ndotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = warning\n")

	out := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := WriteConfig(result.Config, out, GenerateMigrationHeader("/repo/.editorconfig")); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(content), "# enumcmp configuration\n# Imported from: .editorconfig\n") {
		t.Errorf("unexpected header:\n%s", content)
	}

	loaded, err := config.FromYAML(content)
	if err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	rule := loaded.Rules[ruleID]
	if rule.Severity == nil || *rule.Severity != "warning" {
		t.Errorf("expected severity to survive the round trip, got %+v", rule)
	}
}

func TestGetTagRules(t *testing.T) {
	t.Parallel()

	reg := testRegistry()

	for _, key := range []string{"performance", "Performance", "enum", "boxing"} {
		if got := GetTagRules(reg, key); !slices.Equal(got, []string{ruleID}) {
			t.Errorf("GetTagRules(%q) = %v", key, got)
		}
	}
	if IsTag(reg, "style") {
		t.Error("expected style not to be a tag")
	}
	if got := GetAliasesForRule(reg, ruleID); !slices.Equal(got, []string{"enum-compared-by-equals", "enum-equals"}) {
		t.Errorf("GetAliasesForRule() = %v", got)
	}
}
