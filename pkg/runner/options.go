// Package runner discovers C# sources and lints them concurrently.
package runner

import "github.com/yaklabco/enumcmp/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified files or directories to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// glob patterns. If empty, the process working directory is used.
	WorkingDir string

	// Extensions overrides C# detection with an explicit list of file
	// extensions (lowercase, with leading dot). Empty means "whatever enry
	// classifies as C#".
	Extensions []string

	// IncludeGlobs restricts discovered files to those matching at least one
	// pattern, relative to WorkingDir. Empty means no restriction.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories. These merge ignore
	// rules from config and CLI (--ignore).
	ExcludeGlobs []string

	// IncludeGenerated lints tool-generated sources (*.g.cs, *.Designer.cs,
	// files with an <auto-generated> header) found while walking directories.
	IncludeGenerated bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs caps the number of files processed at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
