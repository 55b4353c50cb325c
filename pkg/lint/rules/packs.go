package rules

import (
	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint/rules/enumequals"
)

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments used as starting points for .enumcmp.yml.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "default", "advisory").
	Name string

	// Description explains the purpose of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// DefaultPack reports enum Equals calls as errors and lets --fix rewrite them.
func DefaultPack() Pack {
	return Pack{
		Name:        "default",
		Description: "Report enum Equals calls as errors and fix them with --fix",
		Rules: map[string]config.RuleConfig{
			enumequals.RuleID: rule(true, config.SeverityError, true),
		},
	}
}

// AdvisoryPack reports without rewriting, for codebases adopting the rule.
func AdvisoryPack() Pack {
	return Pack{
		Name:        "advisory",
		Description: "Report enum Equals calls as warnings without fixing them",
		Rules: map[string]config.RuleConfig{
			enumequals.RuleID: rule(true, config.SeverityWarning, false),
		},
	}
}

// OffPack disables the rule.
func OffPack() Pack {
	return Pack{
		Name:        "off",
		Description: "Disable all rules",
		Rules: map[string]config.RuleConfig{
			enumequals.RuleID: rule(false, config.SeverityError, false),
		},
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		DefaultPack(),
		AdvisoryPack(),
		OffPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

func rule(enabled bool, sev config.Severity, autoFix bool) config.RuleConfig {
	severity := string(sev)
	return config.RuleConfig{
		Enabled:  &enabled,
		Severity: &severity,
		AutoFix:  &autoFix,
	}
}
