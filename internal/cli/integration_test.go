package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/internal/cli"
	"github.com/yaklabco/enumcmp/pkg/fsutil"
)

// enumEqualsSource compares an enum with Equals on line 5.
const enumEqualsSource = `enum Mode { Off, On }

class C
{
    bool M(Mode m) => m.Equals(Mode.On);
}
`

const enumEqualsFixed = `enum Mode { Off, On }

class C
{
    bool M(Mode m) => m == Mode.On;
}
`

// externalEnumSource uses an enum declared in another assembly.
const externalEnumSource = `class C
{
    bool M()
    {
        var c = Color.Red;
        return c.Equals(Color.Green);
    }
}
`

// writeSource writes content to a fresh Program.cs and returns its path.
func writeSource(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Program.cs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeConfig writes an explicit config so no project config is picked up.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".enumcmp.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// run executes the root command and returns stdout and the command error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	tests := []struct {
		name           string
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			name:           "format name shows rule name only",
			ruleFormat:     "name",
			wantContains:   []string{"(enum-compared-by-equals)"},
			wantNotContain: []string{"EnumComparedByEqualsAnalyzer"},
		},
		{
			name:           "format id shows rule ID only",
			ruleFormat:     "id",
			wantContains:   []string{"(EnumComparedByEqualsAnalyzer)"},
			wantNotContain: []string{"enum-compared-by-equals"},
		},
		{
			name:         "format combined shows both ID and name",
			ruleFormat:   "combined",
			wantContains: []string{"(EnumComparedByEqualsAnalyzer/enum-compared-by-equals)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output, err := run(t,
				"lint",
				"--config", writeConfig(t, "ignore: []\n"),
				"--rule-format", tt.ruleFormat,
				"--no-context",
				"--color", "never",
				srcFile,
			)
			require.ErrorIs(t, err, cli.ErrLintIssuesFound)

			assert.Contains(t, output, "Replace 'm.Equals' with '=='")
			for _, want := range tt.wantContains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestIntegration_ConfigRuleKeys(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	// Every spelling of the rule key disables it.
	for _, key := range []string{"EnumComparedByEqualsAnalyzer", "enum-compared-by-equals", "enum-equals"} {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			cfg := writeConfig(t, "rules:\n  "+key+":\n    enabled: false\n")
			output, err := run(t, "lint", "--config", cfg, "--color", "never", srcFile)
			require.NoError(t, err)
			assert.NotContains(t, output, "enum-compared-by-equals")
		})
	}
}

func TestIntegration_WarningSeverityAndStrict(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)
	cfg := writeConfig(t, "rules:\n  enum-equals:\n    severity: warning\n")

	output, err := run(t, "lint", "--config", cfg, "--color", "never", srcFile)
	require.NoError(t, err, "warnings alone do not fail the run")
	assert.Contains(t, output, "warning")

	_, err = run(t, "lint", "--config", cfg, "--color", "never", "--strict", srcFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_DisableByFlag(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)
	cfg := writeConfig(t, "ignore: []\n")

	for _, key := range []string{"EnumComparedByEqualsAnalyzer", "enum-equals"} {
		output, err := run(t, "lint", "--config", cfg, "--color", "never", "--disable", key, srcFile)
		require.NoError(t, err, key)
		assert.NotContains(t, output, "Replace 'm.Equals'", key)
	}
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	output, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--format", "json",
		srcFile,
	)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &report), output)
	assert.Equal(t, "enumcmp", report["tool"])
	assert.Contains(t, output, `"ruleId": "EnumComparedByEqualsAnalyzer"`)
	assert.Contains(t, output, `"rule": "enum-compared-by-equals"`)
	assert.Contains(t, output, `"newText": "m == Mode.On"`)
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	output, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--format", "sarif",
		srcFile,
	)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, output, `"name": "enumcmp"`)
	assert.Contains(t, output, `"ruleId": "EnumComparedByEqualsAnalyzer"`)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	output, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--format", "summary",
		"--color", "never",
		srcFile,
	)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "enum-compared-by-equals")
}

func TestIntegration_SummaryFormatNoIssues(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsFixed)

	output, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--format", "summary",
		"--color", "never",
		srcFile,
	)
	require.NoError(t, err)
	assert.Contains(t, output, "No issues found")
}

func TestIntegration_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	output, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--fix", "--dry-run",
		"--format", "diff",
		"--color", "never",
		srcFile,
	)
	require.NoError(t, err)
	assert.Contains(t, output, "-    bool M(Mode m) => m.Equals(Mode.On);")
	assert.Contains(t, output, "+    bool M(Mode m) => m == Mode.On;")

	content, err := os.ReadFile(srcFile)
	require.NoError(t, err)
	assert.Equal(t, enumEqualsSource, string(content), "dry run must not write")
	assert.False(t, fsutil.BackupExists(srcFile, fsutil.BackupModeSidecar))
}

func TestIntegration_FixThenRestore(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)
	cfg := writeConfig(t, "backups:\n  enabled: true\n  mode: sidecar\n")

	_, err := run(t, "lint", "--config", cfg, "--fix", "--color", "never", srcFile)
	require.NoError(t, err)

	content, err := os.ReadFile(srcFile)
	require.NoError(t, err)
	assert.Equal(t, enumEqualsFixed, string(content))
	require.True(t, fsutil.BackupExists(srcFile, fsutil.BackupModeSidecar))

	// A second run finds nothing left to fix.
	_, err = run(t, "lint", "--config", cfg, "--color", "never", srcFile)
	require.NoError(t, err)

	_, err = run(t, "restore", "--dry-run", filepath.Dir(srcFile))
	require.NoError(t, err)
	assert.True(t, fsutil.BackupExists(srcFile, fsutil.BackupModeSidecar), "dry run keeps the backup")

	_, err = run(t, "restore", filepath.Dir(srcFile))
	require.NoError(t, err)

	content, err = os.ReadFile(srcFile)
	require.NoError(t, err)
	assert.Equal(t, enumEqualsSource, string(content))
	assert.False(t, fsutil.BackupExists(srcFile, fsutil.BackupModeSidecar))
}

func TestIntegration_FixNoBackups(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	_, err := run(t,
		"lint",
		"--config", writeConfig(t, "ignore: []\n"),
		"--fix", "--no-backups",
		"--color", "never",
		srcFile,
	)
	require.NoError(t, err)

	content, err := os.ReadFile(srcFile)
	require.NoError(t, err)
	assert.Equal(t, enumEqualsFixed, string(content))
	assert.False(t, fsutil.BackupExists(srcFile, fsutil.BackupModeSidecar))
}

func TestIntegration_KnownEnums(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, externalEnumSource)
	cfg := writeConfig(t, "ignore: []\n")

	output, err := run(t, "lint", "--config", cfg, "--color", "never", srcFile)
	require.NoError(t, err, "an unknown type is not assumed to be an enum")
	assert.NotContains(t, output, "c.Equals")

	output, err = run(t,
		"lint", "--config", cfg, "--color", "never",
		"--known-enums", "Acme.Paint.Color",
		srcFile,
	)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Contains(t, output, "Replace 'c.Equals' with '=='")

	cfg = writeConfig(t, "semantic:\n  known_enums:\n    - Acme.Paint.Color\n")
	_, err = run(t, "lint", "--config", cfg, "--color", "never", srcFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_GeneratedFilesSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	generated := "// <auto-generated/>\n" + enumEqualsSource
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Api.cs"), []byte(generated), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Form1.Designer.cs"), []byte(enumEqualsSource), 0644))

	cfg := writeConfig(t, "ignore: []\n")

	_, err := run(t, "lint", "--config", cfg, "--color", "never", dir)
	require.NoError(t, err)

	_, err = run(t, "lint", "--config", cfg, "--color", "never", "--include-generated", dir)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	srcFile := writeSource(t, enumEqualsSource)

	_, err := run(t, "lint", "--config", writeConfig(t, "ignore: []\n"), "--format", "table", srcFile)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_RulesCommandJSON(t *testing.T) {
	t.Parallel()

	output, err := run(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &rules))
	require.Len(t, rules, 1)
	assert.Equal(t, "EnumComparedByEqualsAnalyzer", rules[0]["id"])
	assert.Equal(t, "Performance", rules[0]["category"])
}

func TestIntegration_InitWithPack(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "ci.yml")

	_, err := run(t, "init", "--pack", "advisory", "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), `# Generated from the "advisory" pack.`)
	assert.Contains(t, string(content), "severity: warning")
	assert.Contains(t, string(content), "auto_fix: false")

	_, err = run(t, "init", "--output", out)
	require.Error(t, err, "existing file is kept without --force")

	_, err = run(t, "init", "--output", out, "--force")
	require.NoError(t, err)

	_, err = run(t, "init", "--pack", "strictest", "--output", out, "--force")
	require.Error(t, err)

	// The generated file loads as a lint config.
	srcFile := writeSource(t, enumEqualsSource)
	_, err = run(t, "lint", "--config", out, "--color", "never", srcFile)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
}

func TestIntegration_MigrateEditorConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	editorConfig := filepath.Join(dir, ".editorconfig")
	require.NoError(t, os.WriteFile(editorConfig, []byte(`root = true

[*.cs]
dotnet_diagnostic.EnumComparedByEqualsAnalyzer.severity = suggestion
dotnet_diagnostic.CA1822.severity = none
`), 0644))

	out := filepath.Join(dir, ".enumcmp.yml")
	_, err := run(t, "migrate", editorConfig, "--output", out)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Imported from: .editorconfig")
	assert.Contains(t, string(content), "EnumComparedByEqualsAnalyzer:")
	assert.Contains(t, string(content), "severity: info")
	assert.NotContains(t, string(content), "CA1822")

	_, err = run(t, "migrate", editorConfig, "--output", out)
	require.Error(t, err, "existing output is kept without --force")

	// Info diagnostics do not fail the run.
	srcFile := writeSource(t, enumEqualsSource)
	output, err := run(t, "lint", "--config", out, "--color", "never", srcFile)
	require.NoError(t, err)
	assert.Contains(t, output, "info")
}
