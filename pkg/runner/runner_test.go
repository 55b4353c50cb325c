package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/lint/rules/enumequals"
	"github.com/yaklabco/enumcmp/pkg/parser/csharp"
	"github.com/yaklabco/enumcmp/pkg/runner"
	"github.com/yaklabco/enumcmp/pkg/semantic"
)

const (
	flagged = `enum Mode { Off, On }

class A
{
    bool M(Mode m) => m.Equals(Mode.On);
}
`
	flaggedFixed = `enum Mode { Off, On }

class A
{
    bool M(Mode m) => m == Mode.On;
}
`
	clean = `class B
{
    bool M(string s) => s.Equals("x");
}
`
	generatedHeader = `// <auto-generated>
//     This code was generated by a tool.
// </auto-generated>
enum Mode { Off, On }

class G
{
    bool M(Mode m) => m.Equals(Mode.On);
}
`
)

func newRunner() *runner.Runner {
	registry := lint.NewRegistry()
	enumequals.Register(registry)
	engine := lint.NewEngine(csharp.New(), lint.SemanticFacts(semantic.NewProvider(semantic.Options{})), registry)
	return runner.New(lint.NewPipeline(engine))
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := lint.NewPipeline(lint.NewEngine(csharp.New(), nil, lint.NewRegistry()))
	assert.Same(t, pipeline, runner.New(pipeline).Pipeline)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Lint(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"A.cs": flagged,
		"B.cs": clean,
	})

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Jobs:       2,
		Config:     config.NewConfig(),
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Equal(t, filepath.Join(dir, "A.cs"), result.Files[0].Path)
	assert.Equal(t, filepath.Join(dir, "B.cs"), result.Files[1].Path)

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesWithIssues)
	assert.Equal(t, 1, stats.DiagnosticsTotal)
	assert.Equal(t, 1, stats.DiagnosticsFixable)
	assert.Equal(t, 1, stats.DiagnosticsBySeverity[config.SeverityError])
	assert.Zero(t, stats.FilesModified)
	assert.True(t, result.HasFailures())
	assert.False(t, result.HasWarnings())
	assert.False(t, result.HasErrors())

	diag := result.Files[0].Result.Diagnostics[0]
	assert.Equal(t, enumequals.RuleID, diag.RuleID)
	assert.Equal(t, 5, diag.StartLine)
	assert.Equal(t, 23, diag.StartColumn)

	got, err := os.ReadFile(filepath.Join(dir, "A.cs"))
	require.NoError(t, err)
	assert.Equal(t, flagged, string(got), "lint-only run must not write")
}

func TestRunner_Run_Fix(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"A.cs": flagged,
		"B.cs": clean,
	})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.NoBackups = true

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesModified)
	assert.Equal(t, 1, result.Stats.DiagnosticsFixed)
	assert.Zero(t, result.Stats.DiagnosticsTotal, "diagnostics reflect the final pass")

	got, err := os.ReadFile(filepath.Join(dir, "A.cs"))
	require.NoError(t, err)
	assert.Equal(t, flaggedFixed, string(got))

	got, err = os.ReadFile(filepath.Join(dir, "B.cs"))
	require.NoError(t, err)
	assert.Equal(t, clean, string(got))
}

func TestRunner_Run_DryRun(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"A.cs": flagged})

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.DryRun = true

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	pr := result.Files[0].Result
	require.NotNil(t, pr.Diff)
	assert.False(t, pr.Written)
	assert.Equal(t, 1, result.Stats.FilesModified)

	got, err := os.ReadFile(filepath.Join(dir, "A.cs"))
	require.NoError(t, err)
	assert.Equal(t, flagged, string(got))
}

func TestRunner_Run_GeneratedHeader(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"A.cs":      flagged,
		"Client.cs": generatedHeader,
	})

	t.Run("skipped by default", func(t *testing.T) {
		t.Parallel()

		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir: dir,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)

		require.Len(t, result.Files, 2)
		assert.True(t, result.Files[1].Generated)
		assert.Nil(t, result.Files[1].Result)
		assert.Equal(t, 1, result.Stats.FilesGenerated)
		assert.Equal(t, 1, result.Stats.FilesProcessed)
		assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	})

	t.Run("included on request", func(t *testing.T) {
		t.Parallel()

		result, err := newRunner().Run(context.Background(), runner.Options{
			WorkingDir:       dir,
			IncludeGenerated: true,
			Config:           config.NewConfig(),
		})
		require.NoError(t, err)

		assert.Zero(t, result.Stats.FilesGenerated)
		assert.Equal(t, 2, result.Stats.DiagnosticsTotal)
	})

	t.Run("explicit file is linted", func(t *testing.T) {
		t.Parallel()

		result, err := newRunner().Run(context.Background(), runner.Options{
			Paths:      []string{"Client.cs"},
			WorkingDir: dir,
			Config:     config.NewConfig(),
		})
		require.NoError(t, err)

		assert.Zero(t, result.Stats.FilesGenerated)
		assert.Equal(t, 1, result.Stats.DiagnosticsTotal)
	})
}

func TestRunner_Run_DisabledRule(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"A.cs": flagged})

	cfg := config.NewConfig()
	cfg.DisableRules = []string{"enum-equals"}

	result, err := newRunner().Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.False(t, result.HasIssues())
}

func TestRunner_Run_Cancelled(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"A.cs": flagged})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newRunner().Run(ctx, runner.Options{
		WorkingDir: dir,
		Config:     config.NewConfig(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasFailures())
	assert.False(t, result.HasWarnings())
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasErrors())
}
