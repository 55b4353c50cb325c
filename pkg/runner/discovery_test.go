package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/runner"
)

// writeTree creates files under a fresh temp dir and returns the dir.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	}
	return dir
}

func abs(dir string, names ...string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = filepath.Join(dir, filepath.FromSlash(name))
	}
	return out
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"Program.cs":                        "class Program {}",
		"src/Models/Mode.cs":                "enum Mode { Off, On }",
		"src/Models/README.md":              "# models",
		"src/App.csproj":                    "<Project />",
		"src/bin/Debug/Program.cs":          "class Program {}",
		"src/obj/Debug/App.AssemblyInfo.cs": "class X {}",
		".git/hooks/x.cs":                   "class X {}",
		"src/.hidden.cs":                    "class X {}",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, abs(dir, "Program.cs", "src/Models/Mode.cs"), files)
}

func TestDiscover_GeneratedNames(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"Form1.cs":          "class Form1 {}",
		"Form1.Designer.cs": "partial class Form1 {}",
		"Json.g.cs":         "class Json {}",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "Form1.cs"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, IncludeGenerated: true})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "Form1.Designer.cs", "Form1.cs", "Json.g.cs"), files)
}

func TestDiscover_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"Form1.Designer.cs": "partial class Form1 {}",
		"notes.txt":         "x",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"Form1.Designer.cs", "notes.txt"},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "Form1.Designer.cs"), files)
}

func TestDiscover_Globs(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"src/A.cs":               "class A {}",
		"src/Migrations/M1.cs":   "class M1 {}",
		"Migrations/M0.cs":       "class M0 {}",
		"tests/ATests.cs":        "class ATests {}",
		"tests/Data/Fixtures.cs": "class F {}",
	}

	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{
			name: "no filters",
			want: []string{"Migrations/M0.cs", "src/A.cs", "src/Migrations/M1.cs", "tests/ATests.cs", "tests/Data/Fixtures.cs"},
		},
		{
			name:    "double star directory anywhere",
			exclude: []string{"**/Migrations/**"},
			want:    []string{"src/A.cs", "tests/ATests.cs", "tests/Data/Fixtures.cs"},
		},
		{
			name:    "directory prefix",
			exclude: []string{"tests/**"},
			want:    []string{"Migrations/M0.cs", "src/A.cs", "src/Migrations/M1.cs"},
		},
		{
			name:    "base name pattern",
			exclude: []string{"*Tests.cs"},
			want:    []string{"Migrations/M0.cs", "src/A.cs", "src/Migrations/M1.cs", "tests/Data/Fixtures.cs"},
		},
		{
			name:    "include restricts",
			include: []string{"src/**"},
			want:    []string{"src/A.cs", "src/Migrations/M1.cs"},
		},
		{
			name:    "exclude wins over include",
			include: []string{"src/**"},
			exclude: []string{"**/Migrations/**"},
			want:    []string{"src/A.cs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := writeTree(t, tree)
			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				IncludeGlobs: tt.include,
				ExcludeGlobs: tt.exclude,
			})
			require.NoError(t, err)
			assert.Equal(t, abs(dir, tt.want...), files)
		})
	}
}

func TestDiscover_InvalidGlob(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{"A.cs": "class A {}"})

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	assert.ErrorContains(t, err, "invalid glob")
}

func TestDiscover_Extensions(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"A.cs":   "class A {}",
		"B.CSX":  "var b = 1;",
		"C.cake": "Task(\"x\");",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".csx"},
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "B.CSX"), files)
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, map[string]string{
		"src/A.cs": "class A {}",
		"src/B.cs": "class B {}",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"src", "src/B.cs", "."},
		WorkingDir: dir,
	})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "src/A.cs", "src/B.cs"), files)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	target := writeTree(t, map[string]string{"Shared/S.cs": "class S {}"})
	dir := writeTree(t, map[string]string{"A.cs": "class A {}"})
	if err := os.Symlink(filepath.Join(target, "Shared"), filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "A.cs"), files)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "A.cs"), filepath.Join(target, "Shared", "S.cs")}, files)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Discover(context.Background(), runner.Options{
			Paths:      []string{"nope"},
			WorkingDir: t.TempDir(),
		})
		assert.Error(t, err)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
