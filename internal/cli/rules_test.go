package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/lint"
	_ "github.com/yaklabco/enumcmp/pkg/lint/rules"
)

func TestRulesCommand_RuleFormatFlag(t *testing.T) {
	cmd := newRulesCommand()
	flag := cmd.Flags().Lookup("rule-format")
	assert.NotNil(t, flag)
}

func TestOutputRulesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, outputRulesJSON(&buf, lint.DefaultRegistry, lint.DefaultRegistry.Rules()))

	var infos []ruleInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &infos))
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, "EnumComparedByEqualsAnalyzer", info.ID)
	assert.Equal(t, "enum-compared-by-equals", info.Name)
	assert.Equal(t, []string{"enum-equals"}, info.Aliases)
	assert.Equal(t, "Performance", info.Category)
	assert.Equal(t, "Replace with op_eq", info.FixTitle)
	assert.True(t, info.Fixable)
	assert.True(t, info.Enabled)
}

func TestRegisteredRuleInfo(t *testing.T) {
	infos := registeredRuleInfo()
	require.Len(t, infos, 1)
	assert.Equal(t, "EnumComparedByEqualsAnalyzer", infos[0].ID)
	assert.True(t, infos[0].CanFix)
	assert.Contains(t, infos[0].Tags, "enum")
}
