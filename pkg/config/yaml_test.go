package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies rules and slices", func(t *testing.T) {
		t.Parallel()

		enabled := true
		severity := "error"
		original := &config.Config{
			Rules: map[string]config.RuleConfig{
				"EnumComparedByEqualsAnalyzer": {Enabled: &enabled, Severity: &severity},
			},
			Ignore:   []string{"**/obj/**"},
			Semantic: config.SemanticConfig{KnownEnums: []string{"Status"}, AssumeUnknownEnums: true},
			Fix:      true,
			Jobs:     4,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original, clone)

		newSeverity := "warning"
		clone.Rules["EnumComparedByEqualsAnalyzer"] = config.RuleConfig{Severity: &newSeverity}
		clone.Ignore[0] = "changed"
		clone.Semantic.KnownEnums[0] = "Other"
		*clone.Rules["EnumComparedByEqualsAnalyzer"].Severity = "info"

		assert.Equal(t, "error", *original.Rules["EnumComparedByEqualsAnalyzer"].Severity)
		assert.Equal(t, "**/obj/**", original.Ignore[0])
		assert.Equal(t, "Status", original.Semantic.KnownEnums[0])
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Semantic.KnownEnums = []string{"Status"}
	cfg.Fix = true

	data, err := cfg.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "known_enums:")
	assert.Contains(t, string(data), "- Status")
	assert.NotContains(t, string(data), "fix:")

	withHeader, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Contains(t, string(withHeader), "# header\n\n")
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
ignore:
  - "**/obj/**"
semantic:
  known_enums: [Status, Shared.Color]
  assume_unknown_enums: true
rules:
  enum-compared-by-equals:
    severity: warning
    auto_fix: false
`)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"**/obj/**"}, cfg.Ignore)
	assert.Equal(t, []string{"Status", "Shared.Color"}, cfg.Semantic.KnownEnums)
	assert.True(t, cfg.Semantic.AssumeUnknownEnums)

	rc, ok := cfg.Rules["enum-compared-by-equals"]
	require.True(t, ok)
	assert.Equal(t, "warning", *rc.Severity)
	assert.False(t, *rc.AutoFix)

	_, err = config.FromYAML([]byte("rules: [unclosed"))
	require.Error(t, err)

	empty, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.NotNil(t, empty.Rules)
}
