// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldInput      = "input"
	FieldOutput     = "output"

	// Run options.
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldKnownEnums = "known_enums"

	// Rule listing.
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldAliases     = "aliases"

	// Per-unit analysis.
	FieldRule        = "rule"
	FieldDiagnostics = "diagnostics"
	FieldParseErrors = "parse_errors"
	FieldPass        = "pass"
	FieldApplied     = "applied"
	FieldSkipped     = "skipped"
	FieldReason      = "reason"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldFilesModified    = "files_modified"
	FieldFilesRestored    = "files_restored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
