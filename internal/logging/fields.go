package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldFormat     = "format"
	FieldJobs       = "jobs"
	FieldMaxNesting = "max_nesting"
	FieldInline     = "inline"
	FieldRules      = "rules"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldTokensTotal     = "tokens_total"
	FieldLists           = "definition_lists"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldEnabled     = "enabled"
	FieldInterrupts  = "interrupts"
	FieldDescription = "description"
)
