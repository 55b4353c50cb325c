package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/enumcmp/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/enumcmp/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.enumcmp.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string

	// AnalyzerConfig is a detected .editorconfig or .globalconfig file that
	// configures the rule's severity for the .NET build.
	AnalyzerConfig string
}

// projectConfigFiles are the config file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".enumcmp.yml",
	".enumcmp.yaml",
	"enumcmp.yml",
	"enumcmp.yaml",
}

// analyzerConfigFiles are the .NET analyzer config files we import severities from.
//
//nolint:gochecknoglobals // Read-only lookup table.
var analyzerConfigFiles = []string{
	".globalconfig",
	".editorconfig",
}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// appDirName is the directory name used under system and user config roots.
const appDirName = "enumcmp"

// DiscoverPaths finds configuration files in standard locations.
// It searches for:
//   - System config at /etc/enumcmp/config.{yaml,yml}
//   - User config at $XDG_CONFIG_HOME/enumcmp/config.{yaml,yml}
//   - Project config by searching upward from workDir for .enumcmp.{yaml,yml}
//   - An analyzer config in workDir that mentions a registered rule
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{}

	paths.System = findSystemConfig()
	paths.User = findUserConfig()

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig

	paths.AnalyzerConfig = findAnalyzerConfig(workDir)

	return paths, nil
}

// findSystemConfig returns the path to the system-wide config file, if it exists.
func findSystemConfig() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return findConfigInDir(filepath.Join(programData, appDirName))
	}

	return findConfigInDir(filepath.Join("/etc", appDirName))
}

// findUserConfig returns the path to the user-level config file, if it exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return findConfigInDir(filepath.Join(configHome, appDirName))
}

// findConfigInDir looks for config files in the given directory.
// Returns the path to the first found file, or empty string if none.
func findConfigInDir(dir string) string {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range projectConfigFiles {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}

		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// findAnalyzerConfig returns the first analyzer config in dir that mentions
// a registered rule, or "" if none does.
func findAnalyzerConfig(dir string) string {
	for _, name := range analyzerConfigFiles {
		path := filepath.Join(dir, name)
		if fileExists(path) && MentionsRegisteredRule(path) {
			return path
		}
	}
	return ""
}

// FindAnalyzerConfig is the exported version of the analyzer config search.
func FindAnalyzerConfig(dir string) string {
	return findAnalyzerConfig(dir)
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		path := filepath.Join(dir, marker)
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsGlobalConfig reports whether path is a .globalconfig file, which has no
// section headers and applies to every file of the project.
func IsGlobalConfig(path string) bool {
	return filepath.Base(path) == ".globalconfig"
}

// IsEditorConfig reports whether path is an .editorconfig file.
func IsEditorConfig(path string) bool {
	return filepath.Base(path) == ".editorconfig"
}
