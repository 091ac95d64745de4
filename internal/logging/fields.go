// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldConfig     = "config"
	FieldWorkingDir = "working_dir"

	// Run fields.
	FieldCheck  = "check"
	FieldMarker = "marker"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Statistics fields.
	FieldFilesDiscovered   = "files_discovered"
	FieldFilesProcessed    = "files_processed"
	FieldFilesWithWarnings = "files_with_warnings"
	FieldFilesFixed        = "files_fixed"
	FieldWarnings          = "warnings"
	FieldSuppressed        = "suppressed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Check metadata fields.
	FieldName        = "name"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
