package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string

	// Rules seeds the rules block, keyed by rule ID. When empty, every
	// registered rule is written with its defaults.
	Rules map[string]RuleConfig

	// PackName is recorded in the header when Rules came from a pack.
	PackName string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Category    string
	Enabled     bool
	Severity    Severity
	Tags        []string
	CanFix      bool
}

// RuleInfoProvider returns information about the registered rules.
// It decouples template generation from the lint package.
type RuleInfoProvider func() []RuleInfo

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions, rules RuleInfoProvider) ([]byte, error) {
	var infos []RuleInfo
	if rules != nil {
		infos = rules()
	}
	slices.SortFunc(infos, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	if opts.Format == "json" {
		return templateJSON(opts, infos)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	if opts.PackName != "" {
		fmt.Fprintf(&buf, "# Generated from the %q pack.\n", opts.PackName)
	}
	buf.WriteString(`
# File patterns to ignore (glob patterns)
ignore:
  - "**/bin/**"
  - "**/obj/**"
  - "**/*.g.cs"
  - "**/*.Designer.cs"

# Backup configuration for --fix
backups:
  enabled: true
  mode: sidecar

# Type resolution
semantic:
  # Enum types declared in other files or assemblies.
  known_enums: []
  #   - MyCompany.Shared.Status
  # Treat Type.Member on unknown capitalised types as an enum constant.
  assume_unknown_enums: false

# Rule-specific configuration
rules:
`)

	for _, info := range infos {
		rc := ruleDefaults(info, opts.Rules)

		fmt.Fprintf(&buf, "\n  # %s: %s\n", info.ID, info.Name)
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(info.Description, commentWrapWidth))
		if info.Category != "" {
			fmt.Fprintf(&buf, "  # Category: %s\n", info.Category)
		}
		if info.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", info.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", *rc.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", *rc.Severity)
		if rc.AutoFix != nil {
			fmt.Fprintf(&buf, "    auto_fix: %t\n", *rc.AutoFix)
		}
	}

	// The template must stay loadable.
	var parsed Config
	if err := yaml.Unmarshal(buf.Bytes(), &parsed); err != nil {
		return nil, fmt.Errorf("generated template is invalid: %w", err)
	}

	return buf.Bytes(), nil
}

func ruleDefaults(info RuleInfo, seed map[string]RuleConfig) RuleConfig {
	enabled := info.Enabled
	severity := string(info.Severity)
	rc := RuleConfig{Enabled: &enabled, Severity: &severity}

	if s, ok := seed[info.ID]; ok {
		if s.Enabled != nil {
			rc.Enabled = s.Enabled
		}
		if s.Severity != nil {
			rc.Severity = s.Severity
		}
		rc.AutoFix = s.AutoFix
	}
	return rc
}

func templateJSON(opts TemplateOptions, infos []RuleInfo) ([]byte, error) {
	rules := make(map[string]any, len(infos))
	for _, info := range infos {
		rc := ruleDefaults(info, opts.Rules)
		entry := map[string]any{
			"enabled":  *rc.Enabled,
			"severity": *rc.Severity,
		}
		if rc.AutoFix != nil {
			entry["auto_fix"] = *rc.AutoFix
		}
		rules[info.ID] = entry
	}

	cfg := map[string]any{
		"ignore": []string{"**/bin/**", "**/obj/**", "**/*.g.cs", "**/*.Designer.cs"},
		"backups": map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		},
		"semantic": map[string]any{
			"known_enums":          []string{},
			"assume_unknown_enums": false,
		},
		"rules": rules,
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return "# enumcmp configuration\n# See: https://github.com/yaklabco/enumcmp\n"
}
