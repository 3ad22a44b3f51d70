package runner

import (
	"github.com/yaklabco/basalt/pkg/mdast"
	"github.com/yaklabco/basalt/pkg/textcount"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	Path string `json:"path" yaml:"path"`

	// Bytes is the size of the file content.
	Bytes int `json:"bytes" yaml:"bytes"`

	Counts    textcount.Counts `json:"counts" yaml:"counts"`
	Kinds     map[string]int   `json:"kinds" yaml:"kinds"`
	Languages map[string]int   `json:"languages,omitempty" yaml:"languages,omitempty"`

	// Nodes is set only when Options.KeepNodes is true.
	Nodes []mdast.Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`

	// Error is set when the file could not be read or parsed; Failure
	// carries its message into encoded output.
	Error   error  `json:"-" yaml:"-"`
	Failure string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Stats aggregates every successful outcome of a run.
type Stats struct {
	FilesDiscovered int `json:"files_discovered" yaml:"files_discovered"`
	FilesProcessed  int `json:"files_processed" yaml:"files_processed"`
	FilesErrored    int `json:"files_errored" yaml:"files_errored"`

	Bytes     int              `json:"bytes" yaml:"bytes"`
	Counts    textcount.Counts `json:"counts" yaml:"counts"`
	Kinds     map[string]int   `json:"kinds" yaml:"kinds"`
	Languages map[string]int   `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// Result is the overall outcome of a run, with files in path order.
type Result struct {
	Files []FileOutcome `json:"files" yaml:"files"`
	Stats Stats         `json:"stats" yaml:"stats"`
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// NewResult aggregates outcomes that were produced outside Run, keeping
// their order.
func NewResult(outcomes ...FileOutcome) *Result {
	r := &Result{Stats: newStats()}
	r.Stats.FilesDiscovered = len(outcomes)
	for _, o := range outcomes {
		r.accumulate(o)
	}
	return r
}

func newStats() Stats {
	return Stats{
		Kinds:     make(map[string]int),
		Languages: make(map[string]int),
	}
}

// kindCounts converts node counts to string keys for encoding.
func kindCounts(counts map[mdast.NodeKind]int) map[string]int {
	out := make(map[string]int, len(counts))
	for kind, n := range counts {
		out[kind.String()] = n
	}
	return out
}

func (r *Result) accumulate(outcome FileOutcome) {
	if outcome.Error != nil {
		outcome.Failure = outcome.Error.Error()
	}
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Bytes += outcome.Bytes
	r.Stats.Counts.Words += outcome.Counts.Words
	r.Stats.Counts.Chars += outcome.Counts.Chars
	addCounts(r.Stats.Kinds, outcome.Kinds)
	addCounts(r.Stats.Languages, outcome.Languages)
}

func addCounts(dst, src map[string]int) {
	for k, n := range src {
		dst[k] += n
	}
}
