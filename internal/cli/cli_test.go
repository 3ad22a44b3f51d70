package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/internal/configloader"
	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/tasks"
	"github.com/yaklabco/basalt/pkg/vault"
)

const note = "# Title\n\nHello *world*.\n\n## Part\n\n- [ ] write\n- [x] ship\n\n```go\nx := 1\n```\n"

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with a config file that disables color.
// The CLI sets the default logger, so these tests do not run in parallel.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "basalt.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("render:\n  color: never\n"), 0o644))

	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-02"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeNote(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeNote(t, note)

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{
			name: "query kinds",
			args: []string{"parse", path, "-q", "[.[].kind]"},
			want: `["Heading","Paragraph","Heading","List","CodeBlock"]` + "\n",
		},
		{
			name: "query heading text",
			args: []string{"parse", path, "-f", "json", "-q", ".[0].text[0].content"},
			want: "\"Title\"\n",
		},
		{
			name:  "stdin",
			args:  []string{"parse", "-", "-q", "length"},
			stdin: "one\n\ntwo\n",
			want:  "2\n",
		},
		{
			name: "yaml query",
			args: []string{"parse", path, "-f", "yaml", "-q", ".[4].lang"},
			want: "go\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.stdin, tt.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestParseCommand_Text(t *testing.T) {
	path := writeNote(t, note)

	res := execute(t, "", "parse", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `Heading(H1) 0..8 "Title"`)
	assert.Contains(t, res.stdout, `Heading(H2) 25..33 "Part"`)
	assert.Contains(t, res.stdout, "CodeBlock(go)")
	assert.Contains(t, res.stdout, "\n  TaskListItem(checked)")
}

func TestParseCommand_OutputFile(t *testing.T) {
	path := writeNote(t, note)
	out := filepath.Join(t.TempDir(), "tree.json")

	res := execute(t, "", "parse", path, "-f", "json", "-o", out)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n"))
	assert.Contains(t, string(data), `"kind": "Heading"`)
}

func TestEventsCommand(t *testing.T) {
	path := writeNote(t, "- [x] done\n")

	res := execute(t, "", "events", path, "-q", `[.[] | select(.kind == "TaskListMarker") | .checked]`)
	require.NoError(t, res.err)
	assert.Equal(t, "[true]\n", res.stdout)

	res = execute(t, "", "events", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Start List")
	assert.Contains(t, res.stdout, `Text "done"`)
}

func TestOutlineCommand(t *testing.T) {
	path := writeNote(t, "# A\n\n## B\n\ntext\n\n# C\n")

	res := execute(t, "", "outline", path)
	require.NoError(t, res.err)
	assert.Equal(t, "H1 A #a\n  H2 B #b\nH1 C #c\n", res.stdout)

	res = execute(t, "", "outline", path, "--flat", "-q", "[.[].title]")
	require.NoError(t, res.err)
	assert.Equal(t, `["A","B","C"]`+"\n", res.stdout)

	empty := writeNote(t, "just text\n")
	res = execute(t, "", "outline", empty)
	require.NoError(t, res.err)
	assert.Equal(t, "No headings.\n", res.stdout)
}

func TestRenderCommand(t *testing.T) {
	path := writeNote(t, note)

	res := execute(t, "", "render", path, "--width", "40")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "TITLE")
	assert.Contains(t, res.stdout, "x := 1")
	for _, line := range strings.Split(res.stdout, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestLocateCommand(t *testing.T) {
	path := writeNote(t, note)

	res := execute(t, "", "locate", path, "--line", "7", "--col", "3", "-q", "[.line, .section.title, [.nodes[].kind]]")
	require.NoError(t, res.err)
	assert.Equal(t, `[7,"Part",["List","TaskListItem"]]`+"\n", res.stdout)

	res = execute(t, "", "locate", path, "--offset", "2")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "position: 1:3 (offset 2)")
	assert.Contains(t, res.stdout, "section: Title #title")
}

func TestLocateCommand_UsageErrors(t *testing.T) {
	path := writeNote(t, note)

	tests := []struct {
		name string
		args []string
	}{
		{"no cursor", []string{"locate", path}},
		{"both cursors", []string{"locate", path, "--offset", "1", "--line", "1"}},
		{"line out of range", []string{"locate", path, "--line", "99"}},
		{"offset out of range", []string{"locate", path, "--offset", "10000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, ExitInvalidUsage, ExitCode(res.err))
		})
	}
}

func TestStatsCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("# One\n\ntwo three\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skip"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip", "b.md"), []byte("four\n"), 0o644))

	res := execute(t, "", "stats", dir, "-q", "[.stats.files_processed, .stats.counts.words]")
	require.NoError(t, res.err)
	assert.Equal(t, "[2,4]\n", res.stdout)

	res = execute(t, "", "stats", dir, "--exclude", "skip/**", "-q", ".stats.files_processed")
	require.NoError(t, res.err)
	assert.Equal(t, "1\n", res.stdout)

	res = execute(t, "hello there\n", "stats", "-", "-q", ".files[0].counts.words")
	require.NoError(t, res.err)
	assert.Equal(t, "2\n", res.stdout)
}

func TestTasksCommand(t *testing.T) {
	path := writeNote(t, note)

	res := execute(t, "", "tasks", path, "-q", "[.[] | [.line, .done]]")
	require.NoError(t, res.err)
	assert.Equal(t, "[[7,false],[8,true]]\n", res.stdout)

	res = execute(t, "", "tasks", path, "--open", "-q", "[.[].text]")
	require.NoError(t, res.err)
	assert.Equal(t, `["write"]`+"\n", res.stdout)

	res = execute(t, "", "tasks", path, "--toggle", "7")
	require.NoError(t, res.err)
	assert.Equal(t, fmt.Sprintf("%s:7 checked\n", path), res.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(note, "- [ ] write", "- [x] write", 1), string(data))

	toggled := string(data)
	res = execute(t, "", "tasks", path, "--toggle", "8,7,8", "--dry-run")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\n-- [x] write\n")
	assert.Contains(t, res.stdout, "\n+- [ ] write\n")
	assert.Contains(t, res.stdout, "\n-- [x] ship\n")
	assert.Contains(t, res.stdout, "\n+- [ ] ship\n")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, toggled, string(data), "dry run must not save")

	res = execute(t, "", "tasks", path, "--toggle", "1")
	require.ErrorIs(t, res.err, tasks.ErrNoTask)
	assert.Equal(t, ExitInvalidUsage, ExitCode(res.err))
}

func writeRegistry(t *testing.T) (string, string) {
	t.Helper()

	root := t.TempDir()
	notes := filepath.Join(root, "Notes")
	require.NoError(t, os.MkdirAll(notes, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "b.md"), []byte("b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(notes, "a.md"), []byte("a\n"), 0o644))

	registry := fmt.Sprintf(`{"vaults":{"abc":{"path":%q,"ts":10,"open":true}}}`, notes)
	configDir := filepath.Join(root, "obsidian")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, vault.ConfigFile), []byte(registry), 0o644))
	return configDir, notes
}

func TestVaultCommands(t *testing.T) {
	configDir, notes := writeRegistry(t)

	res := execute(t, "", "vaults", "--obsidian-dir", configDir, "-q", "[.[] | [.name, .path, .open]]")
	require.NoError(t, res.err)
	assert.Equal(t, fmt.Sprintf("[[\"Notes\",%q,true]]\n", notes), res.stdout)

	res = execute(t, "", "notes", "--obsidian-dir", configDir, "-q", "[.[].name]")
	require.NoError(t, res.err)
	assert.Equal(t, `["a","b"]`+"\n", res.stdout)

	res = execute(t, "", "notes", "Missing", "--obsidian-dir", configDir)
	require.ErrorIs(t, res.err, vault.ErrVaultNotFound)
	assert.Equal(t, ExitInvalidUsage, ExitCode(res.err))
}

func TestConfigCommands(t *testing.T) {
	res := execute(t, "", "config", "show", "-q", "[.render.color, .parser.flavor]")
	require.NoError(t, res.err)
	assert.Equal(t, `["never","gfm"]`+"\n", res.stdout)

	res = execute(t, "", "config", "show")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "# basalt configuration merged from:\n#   "))
	assert.Contains(t, res.stdout, "color: never")

	res = execute(t, "", "config", "env", "-q", `any(.[]; .name == "BASALT_WIDTH")`)
	require.NoError(t, res.err)
	assert.Equal(t, "true\n", res.stdout)

	res = execute(t, "", "config", "paths", "-q", ".explicit | endswith(\"basalt.yml\")")
	require.NoError(t, res.err)
	assert.Equal(t, "true\n", res.stdout)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".basalt.yml")

	res := execute(t, "", "config", "init", path)
	require.NoError(t, res.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flavor: gfm")

	res = execute(t, "", "config", "init", path)
	require.ErrorIs(t, res.err, fsutil.ErrConflict)
	assert.Equal(t, ExitIOError, ExitCode(res.err))

	res = execute(t, "", "config", "init", path, "--force")
	require.NoError(t, res.err)
}

func TestVersionCommand(t *testing.T) {
	res := execute(t, "", "version", "-f", "json")
	require.NoError(t, res.err)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","date":"2026-01-02"}`, res.stdout)

	res = execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "version=1.2.3")
}

func TestCommandErrors(t *testing.T) {
	path := writeNote(t, note)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing file", []string{"parse", filepath.Join(t.TempDir(), "nope.md")}, ExitIOError},
		{"directory", []string{"parse", t.TempDir()}, ExitIOError},
		{"bad format", []string{"parse", path, "-f", "xml"}, ExitInvalidUsage},
		{"bad query", []string{"parse", path, "-q", ".["}, ExitInvalidUsage},
		{"bad flag", []string{"parse", path, "--nope"}, ExitInvalidUsage},
		{"missing arg", []string{"parse"}, ExitInvalidUsage},
		{"bad sort", []string{"notes", "--sort", "size"}, ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, "", tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.want, ExitCode(res.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitError},
		{"usage", usageError{errors.New("bad")}, ExitInvalidUsage},
		{"wrapped usage", fmt.Errorf("ctx: %w", usageError{errors.New("bad")}), ExitInvalidUsage},
		{"config", fmt.Errorf("load: %w", configloader.ErrInvalidConfig), ExitConfigError},
		{"not found", fmt.Errorf("read: %w", fsutil.ErrNotFound), ExitIOError},
		{"conflict", fsutil.ErrConflict, ExitIOError},
		{"no obsidian", vault.ErrNoConfigDir, ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestColorFlag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "never", colorFlag([]string{"parse", "--color=never", "x.md"}))
	assert.Equal(t, "always", colorFlag([]string{"--color", "always", "parse"}))
	assert.Equal(t, "auto", colorFlag([]string{"parse", "x.md"}))
}
