package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// buildTestTree mirrors:
//
//	# Title
//
//	> quote
//	> - a
//	> - b
func buildTestTree() []mdast.Node {
	return []mdast.Node{
		mdast.NewNode(&mdast.Heading{Level: mdast.H1, Text: mdast.NewText("Title")}, mdast.Range(0, 8)),
		mdast.NewNode(&mdast.BlockQuote{Nodes: []mdast.Node{
			mdast.NewNode(&mdast.Paragraph{Text: mdast.NewText("quote")}, mdast.Range(11, 17)),
			mdast.NewNode(&mdast.List{Kind: mdast.Unordered(), Nodes: []mdast.Node{
				mdast.NewNode(&mdast.Item{Text: mdast.NewText("a")}, mdast.Range(19, 23)),
				mdast.NewNode(&mdast.Item{Text: mdast.NewText("b")}, mdast.Range(25, 29)),
			}}, mdast.Range(19, 29)),
		}}, mdast.Range(9, 29)),
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var visited []string
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node, depth int) error {
		visited = append(visited, n.Kind().String()+string(rune('0'+depth)))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"Heading0", "BlockQuote0", "Paragraph1", "List1", "Item2", "Item2"}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node, _ int) error {
		count++
		if n.Kind() == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 3, count)
}

func TestFindByKind(t *testing.T) {
	t.Parallel()

	items := mdast.FindByKind(buildTestTree(), mdast.NodeItem)
	require.Len(t, items, 2)
	assert.Equal(t, "b", items[1].Text().String())

	first := mdast.FindFirst(buildTestTree(), func(n *mdast.Node) bool {
		return n.Kind() == mdast.NodeList
	})
	require.NotNil(t, first)
	assert.Equal(t, mdast.Range(19, 29), first.SourceRange)

	assert.Nil(t, mdast.FindFirst(buildTestTree(), func(n *mdast.Node) bool {
		return n.Kind() == mdast.NodeCodeBlock
	}))
}

func TestNodeAt(t *testing.T) {
	t.Parallel()

	nodes := buildTestTree()

	path := mdast.NodeAt(nodes, 26)
	require.Len(t, path, 3)
	assert.Equal(t, mdast.NodeBlockQuote, path[0].Kind())
	assert.Equal(t, mdast.NodeList, path[1].Kind())
	assert.Equal(t, "b", path[2].Text().String())

	assert.Len(t, mdast.NodeAt(nodes, 3), 1)
	assert.Empty(t, mdast.NodeAt(nodes, 8))
	assert.Empty(t, mdast.NodeAt(nodes, 100))
}

func TestCount(t *testing.T) {
	t.Parallel()

	counts := mdast.Count(buildTestTree())
	assert.Equal(t, 2, counts[mdast.NodeItem])
	assert.Equal(t, 1, counts[mdast.NodeBlockQuote])
	assert.Zero(t, counts[mdast.NodeCodeBlock])
}
