package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/yaklabco/enumcmp/pkg/langdetect"
)

// candidate is a discovered file. Explicit files were named on the command
// line and bypass the generated-code filter.
type candidate struct {
	Path     string
	Explicit bool
}

// discovery carries the compiled state for one Discover call.
type discovery struct {
	workDir    string
	extensions []string
	include    *matcher
	exclude    *matcher
	opts       Options
}

// Discover finds C# files matching opts. It returns a deterministically sorted
// list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	found, err := discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.Path
	}
	return paths, nil
}

func discover(ctx context.Context, opts Options) ([]candidate, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discovery{
		workDir:    workDir,
		extensions: lowerAll(opts.Extensions),
		include:    include,
		exclude:    exclude,
		opts:       opts,
	}

	seen := make(map[string]int)
	var files []candidate
	add := func(c candidate) {
		if idx, ok := seen[c.Path]; ok {
			files[idx].Explicit = files[idx].Explicit || c.Explicit
			return
		}
		seen[c.Path] = len(files)
		files = append(files, c)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.matchesFile(absPath) {
				add(candidate{Path: absPath, Explicit: true})
			}
			continue
		}

		walked, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range walked {
			add(candidate{Path: f})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func (d *discovery) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(relPath)
}

// walk returns the C# files under root. Hidden entries, vendored and MSBuild
// output directories, excluded directories and generated file names are skipped.
func (d *discovery) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := d.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") ||
				langdetect.IsVendored(relPath+"/") ||
				d.exclude.match(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable symlink targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target: WalkDir does not follow a symlinked root.
				sub, err := d.walk(ctx, realPath)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if !d.opts.IncludeGenerated && langdetect.IsGenerated(path, nil) {
			return nil
		}

		if d.matchesFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// matchesFile applies the language, exclude and include filters.
func (d *discovery) matchesFile(path string) bool {
	if len(d.extensions) > 0 {
		if !slices.Contains(d.extensions, strings.ToLower(filepath.Ext(path))) {
			return false
		}
	} else if !langdetect.IsCSharp(path) {
		return false
	}

	relPath := d.rel(path)
	if d.exclude.match(relPath) {
		return false
	}
	if !d.include.empty() && !d.include.match(relPath) {
		return false
	}
	return true
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
