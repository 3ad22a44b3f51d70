package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures a Printer.
type Options struct {
	// Writer receives the output. Defaults to os.Stdout.
	Writer io.Writer

	Format Format

	// Query is a jq filter applied to structured output. A query turns
	// text output into JSON.
	Query string

	// Color is "auto", "always" or "never" and only affects text output.
	Color string
}

// DefaultOptions returns text output to stdout with automatic color.
func DefaultOptions() Options {
	return Options{
		Writer: os.Stdout,
		Format: FormatText,
		Color:  "auto",
	}
}
