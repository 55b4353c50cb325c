package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/enumcmp/pkg/config"
	"github.com/yaklabco/enumcmp/pkg/lint"
	"github.com/yaklabco/enumcmp/pkg/syntax"
)

func testUnit(content string) *syntax.Unit {
	root := syntax.NewNode(syntax.NodeUnit, "compilation_unit", syntax.Span{End: len(content)})
	return syntax.NewUnit("test.cs", []byte(content), root)
}

func TestNewRuleContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	unit := testUnit("class A {}")
	cfg := config.NewConfig()
	ruleCfg := &config.RuleConfig{}

	rc := lint.NewRuleContext(ctx, unit, nil, cfg, ruleCfg)

	assert.Equal(t, ctx, rc.Ctx)
	assert.Same(t, unit, rc.File)
	assert.Same(t, unit.Root, rc.Root)
	assert.Same(t, cfg, rc.Config)
	assert.Same(t, ruleCfg, rc.RuleConfig)
	assert.Nil(t, rc.Registry)
}

func TestNewRuleContext_NilFacts(t *testing.T) {
	t.Parallel()

	unit := testUnit("class A {}")
	rc := lint.NewRuleContext(context.Background(), unit, nil, nil, nil)

	require.NotNil(t, rc.Facts, "nil facts are replaced by a provider that knows nothing")

	_, ok := rc.Facts.TypeOf(unit.Root)
	assert.False(t, ok)
	_, ok = rc.Facts.ResolveCall(unit.Root)
	assert.False(t, ok)
}

func TestNewRuleContext_NilFile(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil, nil)

	assert.Nil(t, rc.File)
	assert.Nil(t, rc.Root)
}

func TestRuleContext_Cancelled(t *testing.T) {
	t.Parallel()

	t.Run("not cancelled", func(t *testing.T) {
		t.Parallel()

		rc := lint.NewRuleContext(context.Background(), testUnit(""), nil, nil, nil)
		assert.False(t, rc.Cancelled())
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rc := lint.NewRuleContext(ctx, testUnit(""), nil, nil, nil)
		assert.True(t, rc.Cancelled())
	})
}

func TestRuleContext_CheckSpan(t *testing.T) {
	t.Parallel()

	unit := testUnit("0123456789")

	tests := []struct {
		name    string
		span    syntax.Span
		wantErr bool
	}{
		{name: "inside", span: syntax.Span{Start: 2, End: 5}},
		{name: "whole unit", span: syntax.Span{Start: 0, End: 10}},
		{name: "past end", span: syntax.Span{Start: 8, End: 11}, wantErr: true},
		{name: "negative start", span: syntax.Span{Start: -1, End: 3}, wantErr: true},
		{name: "empty", span: syntax.Span{Start: 4, End: 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), unit, nil, nil, nil)
			err := rc.CheckSpan(lint.Diagnostic{Span: tt.span})
			if tt.wantErr {
				assert.ErrorIs(t, err, lint.ErrSpanOutOfBounds)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRuleContext_CheckSpan_NilFile(t *testing.T) {
	t.Parallel()

	rc := lint.NewRuleContext(context.Background(), nil, nil, nil, nil)
	err := rc.CheckSpan(lint.Diagnostic{Span: syntax.Span{Start: 0, End: 1}})
	assert.ErrorIs(t, err, lint.ErrSpanOutOfBounds)
}

func TestRuleContext_Option(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		ruleConfig   *config.RuleConfig
		key          string
		defaultValue any
		want         any
	}{
		{
			name:         "nil rule config returns default",
			ruleConfig:   nil,
			key:          "any",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "nil options returns default",
			ruleConfig:   &config.RuleConfig{},
			key:          "any",
			defaultValue: 42,
			want:         42,
		},
		{
			name: "missing key returns default",
			ruleConfig: &config.RuleConfig{
				Options: map[string]any{"other": true},
			},
			key:          "any",
			defaultValue: false,
			want:         false,
		},
		{
			name: "present key returns value",
			ruleConfig: &config.RuleConfig{
				Options: map[string]any{"known_enums": "Color"},
			},
			key:          "known_enums",
			defaultValue: "",
			want:         "Color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil, nil, tt.ruleConfig)
			assert.Equal(t, tt.want, rc.Option(tt.key, tt.defaultValue))
		})
	}
}

func TestRuleContext_OptionBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		options      map[string]any
		defaultValue bool
		want         bool
	}{
		{name: "missing", options: nil, defaultValue: true, want: true},
		{name: "true", options: map[string]any{"flag": true}, defaultValue: false, want: true},
		{name: "false", options: map[string]any{"flag": false}, defaultValue: true, want: false},
		{name: "wrong type", options: map[string]any{"flag": "yes"}, defaultValue: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil, nil, &config.RuleConfig{Options: tt.options})
			assert.Equal(t, tt.want, rc.OptionBool("flag", tt.defaultValue))
		})
	}
}

func TestRuleContext_OptionStringSlice(t *testing.T) {
	t.Parallel()

	def := []string{"fallback"}

	tests := []struct {
		name    string
		options map[string]any
		want    []string
	}{
		{name: "missing", options: nil, want: def},
		{name: "string slice", options: map[string]any{"names": []string{"A", "B"}}, want: []string{"A", "B"}},
		{name: "yaml sequence", options: map[string]any{"names": []any{"A", 3, "B"}}, want: []string{"A", "B"}},
		{name: "yaml sequence without strings", options: map[string]any{"names": []any{1, 2}}, want: def},
		{name: "wrong type", options: map[string]any{"names": "A"}, want: def},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := lint.NewRuleContext(context.Background(), nil, nil, nil, &config.RuleConfig{Options: tt.options})
			assert.Equal(t, tt.want, rc.OptionStringSlice("names", def))
		})
	}
}
