package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
)

// dotnetSeverities maps .NET analyzer severities to rule settings. A nil
// severity with enabled false turns the rule off.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dotnetSeverities = map[string]struct {
	severity config.Severity
	enabled  bool
}{
	"error":      {config.SeverityError, true},
	"warning":    {config.SeverityWarning, true},
	"suggestion": {config.SeverityInfo, true},
	"silent":     {"", false},
	"none":       {"", false},
}

// NormalizeRuleID converts a rule ID, name or alias to its canonical rule ID
// using registry. Rule IDs are matched case-insensitively, as the .NET tools
// do. Returns "" if the key is not recognized.
func NormalizeRuleID(registry *lint.Registry, key string) string {
	if id, _, ok := registry.Resolve(key); ok {
		return id
	}
	for _, id := range registry.IDs() {
		if strings.EqualFold(id, key) {
			return id
		}
	}
	return ""
}

// IsTag reports whether key names a tag or category of a registered rule.
func IsTag(registry *lint.Registry, key string) bool {
	return len(GetTagRules(registry, key)) > 0
}

// GetTagRules returns the IDs of the rules tagged key or belonging to the
// category key, compared case-insensitively.
func GetTagRules(registry *lint.Registry, key string) []string {
	var ids []string
	for _, rule := range registry.Rules() {
		if strings.EqualFold(rule.Category(), key) ||
			slices.ContainsFunc(rule.Tags(), func(tag string) bool { return strings.EqualFold(tag, key) }) {
			ids = append(ids, rule.ID())
		}
	}
	return ids
}

// GetAliasesForRule returns the name of a rule followed by its other accepted spellings.
func GetAliasesForRule(registry *lint.Registry, ruleID string) []string {
	rule, ok := registry.GetByID(ruleID)
	if !ok {
		return nil
	}
	aliases := []string{rule.Name()}
	for _, alias := range registry.Aliases(ruleID) {
		if alias != rule.Name() {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}
