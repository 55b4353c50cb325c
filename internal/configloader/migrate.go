package configloader

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

// Analyzer config keys, lower-cased.
const (
	diagnosticKeyPrefix = "dotnet_diagnostic."
	analyzerKeyPrefix   = "dotnet_analyzer_diagnostic."
	categoryKeyPrefix   = "category-"
	severityKeySuffix   = ".severity"
)

// Precedence of analyzer config keys, lowest first. A rule ID key beats a
// category key, which beats the key for all analyzers.
const (
	precedenceAll = iota + 1
	precedenceCategory
	precedenceRule
)

// sampleSourceName is matched against section globs to decide whether a
// section applies to C# sources.
const sampleSourceName = "file.cs"

// MigrationResult contains the result of importing an analyzer config.
type MigrationResult struct {
	// Config is the converted configuration. Only Rules is populated.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the analyzer config.
	SourcePath string

	// Imported lists the IDs of the rules whose settings were imported.
	Imported []string
}

// severityEntry is one analyzer config key that sets a severity.
type severityEntry struct {
	line       int
	key        string
	value      string
	precedence int
	ruleIDs    []string
}

// ConvertAnalyzerConfig reads the dotnet_diagnostic and
// dotnet_analyzer_diagnostic severities of an .editorconfig or .globalconfig
// and converts the ones that apply to registered rules. Keys for other
// analyzers are ignored.
func ConvertAnalyzerConfig(path string, registry *lint.Registry) (*MigrationResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	result := &MigrationResult{
		SourcePath: path,
		Config:     config.NewConfig(),
	}

	entries, err := parseAnalyzerConfig(content, IsGlobalConfig(path), registry, result)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	// Highest precedence wins; among equals the later line wins.
	best := make(map[string]severityEntry)
	for _, entry := range entries {
		for _, id := range entry.ruleIDs {
			if prev, ok := best[id]; ok && prev.precedence > entry.precedence {
				continue
			}
			best[id] = entry
		}
	}

	for _, id := range registry.IDs() {
		entry, ok := best[id]
		if !ok {
			continue
		}
		ruleCfg, ok := convertSeverity(entry, result)
		if !ok {
			continue
		}
		result.Config.Rules[id] = ruleCfg
		result.Imported = append(result.Imported, id)
	}

	return result, nil
}

// parseAnalyzerConfig scans content for severity keys that apply to C#
// sources and to at least one registered rule.
func parseAnalyzerConfig(
	content []byte,
	global bool,
	registry *lint.Registry,
	result *MigrationResult,
) ([]severityEntry, error) {
	var entries []severityEntry

	// A .globalconfig applies before any section; an .editorconfig preamble
	// only holds root = true.
	applies := global

	scanner := bufio.NewScanner(bytes.NewReader(content))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			applies = sectionAppliesToCSharp(line[1:len(line)-1], lineNum, result)
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("line %d: expected key = value; skipping", lineNum))
			continue
		}
		if !applies {
			continue
		}

		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))

		precedence, ruleIDs := resolveSeverityKey(registry, key)
		if precedence == 0 || len(ruleIDs) == 0 {
			continue
		}
		entries = append(entries, severityEntry{
			line:       lineNum,
			key:        key,
			value:      value,
			precedence: precedence,
			ruleIDs:    ruleIDs,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return entries, nil
}

// resolveSeverityKey returns the precedence of a severity key and the IDs
// of the registered rules it configures. A zero precedence means the key
// does not set a severity.
func resolveSeverityKey(registry *lint.Registry, key string) (int, []string) {
	if !strings.HasSuffix(key, severityKeySuffix) {
		return 0, nil
	}

	switch {
	case strings.HasPrefix(key, diagnosticKeyPrefix):
		ruleKey := strings.TrimSuffix(strings.TrimPrefix(key, diagnosticKeyPrefix), severityKeySuffix)
		if id := NormalizeRuleID(registry, ruleKey); id != "" {
			return precedenceRule, []string{id}
		}
		return precedenceRule, nil

	case key == analyzerKeyPrefix+"severity":
		return precedenceAll, registry.IDs()

	case strings.HasPrefix(key, analyzerKeyPrefix+categoryKeyPrefix):
		category := strings.TrimSuffix(strings.TrimPrefix(key, analyzerKeyPrefix+categoryKeyPrefix), severityKeySuffix)
		return precedenceCategory, GetTagRules(registry, category)
	}

	return 0, nil
}

// sectionAppliesToCSharp reports whether an .editorconfig section glob
// selects C# sources. Path globs are matched on their last segment, so they
// are imported for the whole tree with a warning.
func sectionAppliesToCSharp(section string, lineNum int, result *MigrationResult) bool {
	pattern := strings.TrimPrefix(section, "/")
	scoped := strings.Contains(pattern, "/")
	if scoped {
		pattern = pattern[strings.LastIndex(pattern, "/")+1:]
	}

	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("line %d: invalid section [%s]: %v; skipping", lineNum, section, err))
		return false
	}
	if !matcher.Match(sampleSourceName) {
		return false
	}

	if scoped {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("line %d: section [%s] is limited to part of the tree; its settings apply to all files", lineNum, section))
	}
	return true
}

// convertSeverity turns a severity entry into a rule configuration.
func convertSeverity(entry severityEntry, result *MigrationResult) (config.RuleConfig, bool) {
	value := entry.value
	if value == "default" {
		return config.RuleConfig{}, false
	}

	mapped, ok := dotnetSeverities[value]
	if !ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("line %d: unknown severity %q for %s; skipping", entry.line, value, entry.key))
		return config.RuleConfig{}, false
	}

	enabled := mapped.enabled
	ruleCfg := config.RuleConfig{Enabled: &enabled}
	if mapped.severity != "" {
		severity := string(mapped.severity)
		ruleCfg.Severity = &severity
	}
	return ruleCfg, true
}

// MentionsRegisteredRule reports whether the analyzer config at path sets a
// severity that applies to a rule in the default registry.
func MentionsRegisteredRule(path string) bool {
	content, err := os.ReadFile(path)
	if err != nil {
		return false
	}

	scratch := &MigrationResult{}
	entries, err := parseAnalyzerConfig(content, IsGlobalConfig(path), lint.DefaultRegistry, scratch)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.precedence > precedenceAll {
			return true
		}
	}
	return false
}

// GenerateMigrationHeader returns a header comment for imported configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# enumcmp configuration
# Imported from: %s
# See: https://github.com/yaklabco/enumcmp
`, filepath.Base(sourcePath))
}
