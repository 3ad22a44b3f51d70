package mdast

// WalkFunc is the function signature for Walk callbacks. depth is 0 for
// top-level nodes. Return a non-nil error to stop the walk.
type WalkFunc func(n *Node, depth int) error

// Walk performs a pre-order traversal of nodes and their descendants.
// If walkFunc returns a non-nil error, the walk stops immediately and
// returns that error.
func Walk(nodes []Node, walkFunc WalkFunc) error {
	return walk(nodes, 0, walkFunc)
}

func walk(nodes []Node, depth int, walkFunc WalkFunc) error {
	for i := range nodes {
		node := &nodes[i]
		if err := walkFunc(node, depth); err != nil {
			return err
		}
		if err := walk(node.Children(), depth+1, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(nodes []Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck // the callback never fails
	Walk(nodes, func(node *Node, _ int) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(nodes []Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck // errStopWalk is expected and intentionally ignored
	Walk(nodes, func(node *Node, _ int) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(nodes []Node, kind NodeKind) []*Node {
	return FindAll(nodes, func(n *Node) bool {
		return n.Kind() == kind
	})
}

// NodeAt returns the chain of nodes whose ranges contain offset, from the
// outermost to the innermost. It returns nil when no top-level node
// contains the offset.
func NodeAt(nodes []Node, offset int) []*Node {
	var path []*Node
	for {
		var next *Node
		for i := range nodes {
			if nodes[i].SourceRange.Contains(offset) {
				next = &nodes[i]
				break
			}
		}
		if next == nil {
			return path
		}
		path = append(path, next)
		nodes = next.Children()
	}
}

// Count returns the number of nodes of each kind.
func Count(nodes []Node) map[NodeKind]int {
	counts := make(map[NodeKind]int)

	//nolint:errcheck // the callback never fails
	Walk(nodes, func(node *Node, _ int) error {
		counts[node.Kind()]++
		return nil
	})

	return counts
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
