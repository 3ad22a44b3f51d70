package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/langdetect"
	"github.com/yaklabco/basalt/pkg/markdown"
	"github.com/yaklabco/basalt/pkg/mdast"
	goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"
	"github.com/yaklabco/basalt/pkg/textcount"
)

// Run discovers files under opts.Paths and processes them with a pool of
// workers. Outcomes are returned in path order regardless of which worker
// finished first. A file that fails is recorded in its outcome and does
// not stop the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs)

	p := &processor{lexer: opts.lexer(), keepTree: opts.KeepNodes}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.work(ctx, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

type processor struct {
	lexer    *goldmarklexer.Lexer
	keepTree bool
}

func (p *processor) work(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		fileCtx := logging.WithFields(ctx, logging.FieldPath, path)
		outcome := p.process(fileCtx, path)
		if outcome.Error != nil {
			logging.FromContext(fileCtx).Warn("file failed", logging.FieldError, outcome.Error)
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// process reads, parses and measures a single file.
func (p *processor) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, _, err := fsutil.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	events, err := p.lexer.Events(ctx, content)
	if err != nil {
		outcome.Error = fmt.Errorf("parse %s: %w", path, err)
		return outcome
	}
	outcome = Measure(path, content, markdown.Build(events))
	if !p.keepTree {
		outcome.Nodes = nil
	}

	return outcome
}

// Measure computes the outcome for an already parsed document. The
// returned outcome keeps nodes.
func Measure(path string, content []byte, nodes []mdast.Node) FileOutcome {
	return FileOutcome{
		Path:      path,
		Bytes:     len(content),
		Counts:    textcount.Count(string(content)),
		Kinds:     kindCounts(mdast.Count(nodes)),
		Languages: langdetect.Languages(nodes),
		Nodes:     nodes,
	}
}
