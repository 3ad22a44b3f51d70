package logging

// Field names shared by log calls across the CLI and libraries.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldOutput = "output"
	FieldFormat = "format"
	FieldSource = "source"

	FieldBytes  = "bytes"
	FieldEvents = "events"
	FieldNodes  = "nodes"
	FieldOffset = "offset"
	FieldFiles  = "files"
	FieldJobs   = "jobs"

	FieldVault = "vault"
	FieldNotes = "notes"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
