package runner_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/mdast"
	goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"
	"github.com/yaklabco/basalt/pkg/runner"
)

func TestRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.md": "# Title\n\nHello world.\n",
		"b.md": "```go\nx := 1\n```\n\n- one\n- [x] two\n",
	})

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 4})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)
	assert.False(t, result.HasErrors())

	a, b := result.Files[0], result.Files[1]
	assert.Equal(t, filepath.Join(dir, "a.md"), a.Path)
	assert.Equal(t, filepath.Join(dir, "b.md"), b.Path)

	assert.Equal(t, map[string]int{"Heading": 1, "Paragraph": 1}, a.Kinds)
	assert.Equal(t, 3, a.Counts.Words)
	assert.Empty(t, a.Nodes)

	assert.Equal(t, map[string]int{"List": 1, "Item": 1, "TaskListItem": 1, "CodeBlock": 1}, b.Kinds)
	assert.Equal(t, map[string]int{"go": 1}, b.Languages)

	stats := result.Stats
	assert.Equal(t, 2, stats.FilesDiscovered)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 0, stats.FilesErrored)
	assert.Equal(t, a.Bytes+b.Bytes, stats.Bytes)
	assert.Equal(t, a.Counts.Words+b.Counts.Words, stats.Counts.Words)
	assert.Equal(t, 1, stats.Kinds["Heading"])
	assert.Equal(t, 1, stats.Kinds["List"])
	assert.Equal(t, map[string]int{"go": 1}, stats.Languages)
}

func TestRunKeepNodes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "---\ntitle: x\n---\n# Title\n"})

	lexer := goldmarklexer.New(goldmarklexer.WithFrontMatter(true))
	result, err := runner.Run(context.Background(), runner.Options{
		WorkingDir: dir,
		Lexer:      lexer,
		KeepNodes:  true,
	})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	nodes := result.Files[0].Nodes
	require.Len(t, nodes, 1)
	assert.Equal(t, mdast.NodeHeading, nodes[0].Kind())
	assert.Equal(t, "Title", nodes[0].Text().String())
	assert.Equal(t, 17, nodes[0].SourceRange.Start)
}

func TestRunEmpty(t *testing.T) {
	t.Parallel()

	result, err := runner.Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.md": "# A\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMeasureAndNewResult(t *testing.T) {
	t.Parallel()

	content := []byte("# Hi\n\n    SELECT 1;\n")
	nodes := []mdast.Node{
		mdast.NewNode(&mdast.Heading{Level: mdast.H1, Text: mdast.NewText("Hi")}, mdast.Range(0, 5)),
		mdast.NewNode(&mdast.CodeBlock{Text: mdast.NewText("SELECT 1;\n")}, mdast.Range(6, 20)),
	}

	outcome := runner.Measure("-", content, nodes)
	assert.Equal(t, len(content), outcome.Bytes)
	assert.Equal(t, map[string]int{"Heading": 1, "CodeBlock": 1}, outcome.Kinds)
	assert.Equal(t, map[string]int{"sql": 1}, outcome.Languages)
	assert.Len(t, outcome.Nodes, 2)

	result := runner.NewResult(outcome, runner.FileOutcome{Path: "bad.md", Error: assert.AnError})
	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasErrors())
	assert.Equal(t, assert.AnError.Error(), result.Files[1].Failure)
	assert.Equal(t, outcome.Counts, result.Stats.Counts)
}
