package enumequals

import "github.com/yaklabco/enumcmp/pkg/lint"

// Register adds the rule to registry, with its short alias.
func Register(registry *lint.Registry) {
	registry.Register(NewRule())
	registry.RegisterAlias("enum-equals", RuleID)
}
