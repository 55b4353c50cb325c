// Package rules wires the built-in rules into a lint.Registry.
//
// # Rules
//
//   - EnumComparedByEqualsAnalyzer: enum-compared-by-equals - Enum compared
//     by Equals(object) instead of ==. Fixable. Alias: enum-equals.
//
// # Packs
//
// Packs are configuration presets written by "enumcmp init --pack":
//
//   - default: the rule as an error with its fix enabled
//   - advisory: the rule as a warning, report only
//   - off: the rule disabled
//
// Use PackByName or Packs to access pack definitions programmatically.
package rules
