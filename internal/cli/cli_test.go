package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/internal/cli"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "enumcmp" {
		t.Errorf("expected Use to be 'enumcmp', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	expectedSubcommands := []string{"lint", "rules", "init", "migrate", "restore", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestLintCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	expectedFlags := []string{
		"fix",
		"dry-run",
		"format",
		"jobs",
		"ignore",
		"include",
		"enable",
		"disable",
		"fix-rules",
		"no-backups",
		"known-enums",
		"assume-unknown-enums",
		"include-generated",
		"follow-symlinks",
		"strict",
		"no-context",
		"compact",
		"rule-format",
	}

	for _, flagName := range expectedFlags {
		flag := lintCmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected flag %q to exist on lint command", flagName)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, flagName := range []string{"debug", "config", "color"} {
		flag := cmd.PersistentFlags().Lookup(flagName)
		if flag == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.Contains(t, got, "enumcmp")
	assert.Contains(t, got, "version=1.2.3")
	assert.Contains(t, got, "commit=abc123")
	assert.Contains(t, got, "built=2024-01-01")
}

func TestLintCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	lintCmd, _, err := cmd.Find([]string{"lint"})
	if err != nil {
		t.Fatalf("lint command not found: %v", err)
	}

	err = lintCmd.Args(lintCmd, []string{"Program.cs", "Shared.cs", "src/"})
	if err != nil {
		t.Errorf("lint command should accept arbitrary args, got error: %v", err)
	}
}

func TestMigrateCommandAcceptsOneInput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	migrateCmd, _, err := cmd.Find([]string{"migrate"})
	require.NoError(t, err)

	require.NoError(t, migrateCmd.Args(migrateCmd, []string{".editorconfig"}))
	assert.Error(t, migrateCmd.Args(migrateCmd, []string{".editorconfig", ".globalconfig"}))
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"lint", "--help", "--color", "never"})

	require.NoError(t, cmd.Execute())

	help := out.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "enumcmp lint [paths...]")
	assert.Contains(t, help, "--known-enums strings")
	assert.Contains(t, help, "Global Flags:")
	assert.Contains(t, help, "(default text)")

	for _, line := range strings.Split(help, "\n") {
		assert.NotContains(t, line, "\x1b[", "help must be plain when stdout is not a terminal")
	}
}
