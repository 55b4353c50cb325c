// Package langdetect classifies candidate source files. It uses go-enry to
// recognise C# sources by extension and to spot vendored and machine-generated
// files, and adds the generated-code conventions of the .NET toolchain that
// enry does not know about.
package langdetect

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LanguageCSharp is enry's name for C#.
const LanguageCSharp = "C#"

// headerScanLimit bounds how far into a file the generated-code marker is searched.
const headerScanLimit = 2048

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// generatedSuffixes are file name endings the .NET tools use for generated code.
	generatedSuffixes = []string{
		".designer.cs",
		".generated.cs",
		".g.cs",
		".g.i.cs",
		".assemblyinfo.cs",
		".assemblyattributes.cs",
	}

	// buildDirs hold MSBuild output and intermediate files.
	buildDirs = map[string]bool{
		"bin": true,
		"obj": true,
	}

	generatedMarkers = [][]byte{
		[]byte("<auto-generated"),
		[]byte("<autogenerated"),
	}
)

// Class is the classification of one file.
type Class struct {
	// Language is enry's language name, or "" when unknown.
	Language string

	// Generated is true for tool-generated sources.
	Generated bool

	// Vendored is true for third-party or build output paths.
	Vendored bool
}

// Analyzable reports whether the file should be linted by default.
func (c Class) Analyzable() bool {
	return c.Language == LanguageCSharp && !c.Generated && !c.Vendored
}

// IsCSharp reports whether path has a C# extension. It looks at the name only.
// .cs is shared with Smalltalk, so every candidate is checked.
func IsCSharp(path string) bool {
	return slices.Contains(enry.GetLanguagesByExtension(path, nil, nil), LanguageCSharp)
}

// IsVendored reports whether path lies in a vendored dependency tree or an
// MSBuild output directory.
func IsVendored(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, part := range strings.Split(slashed, "/") {
		if buildDirs[strings.ToLower(part)] {
			return true
		}
	}
	return enry.IsVendor(slashed)
}

// IsGenerated reports whether a C# file was produced by a tool. content may be
// nil, in which case only the name is considered.
func IsGenerated(path string, content []byte) bool {
	lower := strings.ToLower(filepath.Base(path))
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	if len(content) == 0 {
		return false
	}

	head := content
	if len(head) > headerScanLimit {
		head = head[:headerScanLimit]
	}
	head = bytes.ToLower(head)
	for _, marker := range generatedMarkers {
		if bytes.Contains(head, marker) {
			return true
		}
	}
	return enry.IsGenerated(path, content)
}

// Classify classifies path. content may be nil when only the name is known.
func Classify(path string, content []byte) Class {
	var lang string
	if IsCSharp(path) {
		lang = LanguageCSharp
	} else {
		lang, _ = enry.GetLanguageByExtension(path)
	}
	return Class{
		Language:  lang,
		Generated: IsGenerated(path, content),
		Vendored:  IsVendored(path),
	}
}
