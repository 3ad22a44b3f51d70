// Package runner parses many Markdown files concurrently and gathers
// per-file and aggregate statistics.
package runner

import goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"

// Options controls discovery and processing of a batch of files.
type Options struct {
	// Paths are files or directories to process. Empty means the
	// working directory.
	Paths []string

	// WorkingDir resolves relative Paths and glob patterns. Empty means
	// the process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as Markdown.
	// Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovered files to those matching at least
	// one pattern. Empty includes everything.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of workers. 0 or negative means runtime.NumCPU().
	Jobs int

	// Lexer produces the event stream for each file. Nil uses the
	// default GFM lexer.
	Lexer *goldmarklexer.Lexer

	// KeepNodes retains each file's tree in its outcome.
	KeepNodes bool
}

// DefaultExtensions returns the Markdown extensions used when none are set.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) lexer() *goldmarklexer.Lexer {
	if o.Lexer == nil {
		return goldmarklexer.New()
	}
	return o.Lexer
}
