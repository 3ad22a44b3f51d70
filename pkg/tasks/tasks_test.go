package tasks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/edit"
	"github.com/yaklabco/basalt/pkg/markdown"
	"github.com/yaklabco/basalt/pkg/mdast"
	"github.com/yaklabco/basalt/pkg/tasks"
)

const todo = "# Todo\n\n- [ ] write\n- [x] ship\n  - [ ] nested\n\n> - [ ] quoted\n"

func parse(source string) (*mdast.Source, []mdast.Node) {
	return mdast.NewSource([]byte(source)), markdown.Parse(source)
}

func TestList(t *testing.T) {
	t.Parallel()

	src, nodes := parse(todo)
	got := tasks.List(src, nodes)

	type summary struct {
		Text string
		Done bool
		Line int
	}
	var sums []summary
	for _, task := range got {
		sums = append(sums, summary{task.Text, task.Done, task.Line})
	}

	assert.Equal(t, []summary{
		{"write", false, 3},
		{"ship", true, 4},
		{"nested", false, 5},
		{"quoted", false, 7},
	}, sums)
}

func TestToggle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     int
		wantDone bool
		want     string
	}{
		{
			name:     "check",
			line:     3,
			wantDone: true,
			want:     "# Todo\n\n- [x] write\n- [x] ship\n  - [ ] nested\n\n> - [ ] quoted\n",
		},
		{
			name:     "uncheck",
			line:     4,
			wantDone: false,
			want:     "# Todo\n\n- [ ] write\n- [ ] ship\n  - [ ] nested\n\n> - [ ] quoted\n",
		},
		{
			name:     "nested item",
			line:     5,
			wantDone: true,
			want:     "# Todo\n\n- [ ] write\n- [x] ship\n  - [x] nested\n\n> - [ ] quoted\n",
		},
		{
			name:     "inside quote",
			line:     7,
			wantDone: true,
			want:     "# Todo\n\n- [ ] write\n- [x] ship\n  - [ ] nested\n\n> - [x] quoted\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, nodes := parse(todo)
			out, done, err := tasks.Toggle(src, nodes, tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDone, done)
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, todo, string(src.Content), "source must not change")
		})
	}
}

func TestToggleNoTask(t *testing.T) {
	t.Parallel()

	src, nodes := parse(todo)
	for _, line := range []int{1, 2, 6, 99} {
		_, _, err := tasks.Toggle(src, nodes, line)
		require.ErrorIs(t, err, tasks.ErrNoTask, "line %d", line)
	}
}

func TestOnLine(t *testing.T) {
	t.Parallel()

	src, nodes := parse(todo)
	task, ok := tasks.OnLine(src, nodes, 4)
	require.True(t, ok)
	assert.Equal(t, "ship", task.Text)
	assert.True(t, task.Done)

	_, ok = tasks.OnLine(src, nodes, 1)
	assert.False(t, ok)
}

func TestToggleEdit(t *testing.T) {
	t.Parallel()

	src, nodes := parse(todo)

	check, done, err := tasks.ToggleEdit(src, nodes, 3)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, edit.Replace(mdast.Range(11, 12), "x"), check)

	uncheck, done, err := tasks.ToggleEdit(src, nodes, 4)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, edit.Replace(mdast.Range(23, 24), " "), uncheck)

	out, err := edit.Apply(src.Content, uncheck, check)
	require.NoError(t, err)
	assert.Equal(t, "# Todo\n\n- [x] write\n- [ ] ship\n  - [ ] nested\n\n> - [ ] quoted\n", string(out))
}
