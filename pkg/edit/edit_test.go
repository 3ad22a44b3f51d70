package edit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/edit"
	"github.com/yaklabco/basalt/pkg/mdast"
)

func TestApply(t *testing.T) {
	t.Parallel()

	const content = "- [ ] one\n- [ ] two\n"

	tests := []struct {
		name  string
		edits []edit.Edit
		want  string
	}{
		{
			name: "no edits",
			want: content,
		},
		{
			name:  "single replace",
			edits: []edit.Edit{edit.Replace(mdast.Range(3, 4), "x")},
			want:  "- [x] one\n- [ ] two\n",
		},
		{
			name: "unordered edits",
			edits: []edit.Edit{
				edit.Replace(mdast.Range(13, 14), "x"),
				edit.Replace(mdast.Range(3, 4), "x"),
			},
			want: "- [x] one\n- [x] two\n",
		},
		{
			name: "insert and replace at one offset",
			edits: []edit.Edit{
				edit.Insert(6, "new "),
				edit.Replace(mdast.Range(6, 9), "first"),
			},
			want: "- [ ] new first\n- [ ] two\n",
		},
		{
			name:  "append",
			edits: []edit.Edit{edit.Insert(len(content), "- [ ] three\n")},
			want:  content + "- [ ] three\n",
		},
		{
			name:  "delete",
			edits: []edit.Edit{edit.Replace(mdast.Range(0, 10), "")},
			want:  "- [ ] two\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := []byte(content)
			got, err := edit.Apply(src, tt.edits...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, content, string(src), "input must not change")
		})
	}
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	content := []byte("hello world\n")

	tests := []struct {
		name  string
		edits []edit.Edit
		want  error
	}{
		{"negative start", []edit.Edit{edit.Replace(mdast.Range(-1, 2), "")}, edit.ErrOutOfRange},
		{"past end", []edit.Edit{edit.Replace(mdast.Range(5, 50), "")}, edit.ErrOutOfRange},
		{"inverted", []edit.Edit{edit.Replace(mdast.SourceRange{Start: 4, End: 2}, "")}, edit.ErrOutOfRange},
		{
			"overlap",
			[]edit.Edit{edit.Replace(mdast.Range(0, 5), "hi"), edit.Replace(mdast.Range(3, 8), "")},
			edit.ErrOverlap,
		},
		{
			"same range twice",
			[]edit.Edit{edit.Replace(mdast.Range(0, 5), "a"), edit.Replace(mdast.Range(0, 5), "b")},
			edit.ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := edit.Apply(content, tt.edits...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()

	before := []byte("# Todo\n\n- [ ] one\n- [ ] two\n")
	after := []byte("# Todo\n\n- [x] one\n- [ ] two\n")

	diff := edit.Diff("notes/todo.md", before, after)
	assert.Contains(t, diff, "--- a/notes/todo.md\n+++ b/notes/todo.md\n")
	assert.Contains(t, diff, "\n-- [ ] one\n")
	assert.Contains(t, diff, "\n+- [x] one\n")
	assert.Contains(t, diff, "\n - [ ] two\n")

	assert.Empty(t, edit.Diff("todo.md", before, before))
}
