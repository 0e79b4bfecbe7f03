package dag

import (
	"errors"
	"slices"
	"strings"
)

// ErrGraphHasCycle is returned by [TopoSort] when a cycle is detected.
// Cycles are detected using depth-first search with white/gray/black
// coloring. The concrete error is a [*CycleError] naming the cycle; use
// errors.Is to test for this sentinel.
var ErrGraphHasCycle = errors.New("graph contains a cycle")

// ChildrenFunc returns the IDs a node points to. In a dataflow graph these
// are the node's downstream consumers. An error aborts the sort and is
// returned unchanged by [TopoSort].
type ChildrenFunc func(id string) ([]string, error)

// CycleError reports a directed cycle found during sorting.
// Path lists the nodes on the cycle in edge order and repeats the first
// node at the end, e.g. [a b c a].
type CycleError struct {
	Path []string
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrGraphHasCycle.Error()
	}
	return ErrGraphHasCycle.Error() + ": " + strings.Join(e.Path, " -> ")
}

// Unwrap returns [ErrGraphHasCycle].
func (e *CycleError) Unwrap() error { return ErrGraphHasCycle }

// TopoSort orders ids so that every node comes before all of its children.
//
// The sort is a classic three-color depth-first search. A node is appended
// to the post-order only after all of its children have been appended; the
// post-order is reversed before returning, so producers precede consumers.
// Roots are taken in the order of ids, and children in the order the
// ChildrenFunc returns them, which makes the result deterministic for a
// fixed input.
//
// On a cycle TopoSort returns nil and a [*CycleError]; no partial ordering is
// produced. Children that are not in ids are still visited and appear in the
// result. Runs in O(V+E).
func TopoSort(ids []string, children ChildrenFunc) ([]string, error) {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(ids))
	ordered := make([]string, 0, len(ids))
	var stack []string

	var visit func(id string) error
	visit = func(id string) error {
		color[id] = gray
		stack = append(stack, id)

		kids, err := children(id)
		if err != nil {
			return err
		}
		for _, child := range kids {
			switch color[child] {
			case white:
				if err := visit(child); err != nil {
					return err
				}
			case gray:
				return &CycleError{Path: cyclePath(stack, child)}
			}
		}

		stack = stack[:len(stack)-1]
		color[id] = black
		ordered = append(ordered, id)
		return nil
	}

	for _, id := range ids {
		if color[id] != white {
			continue
		}
		if err := visit(id); err != nil {
			return nil, err
		}
	}

	slices.Reverse(ordered)
	return ordered, nil
}

// Levels assigns each node in a topological order its longest distance
// from a source: sources get 0, and every child sits at least one level
// below each of its parents. Nodes on the same level are independent of
// each other. order must be a valid topological order, such as the result
// of [TopoSort].
func Levels(order []string, children func(id string) []string) map[string]int {
	level := make(map[string]int, len(order))
	for _, id := range order {
		if _, ok := level[id]; !ok {
			level[id] = 0
		}
		for _, child := range children(id) {
			if l := level[id] + 1; l > level[child] {
				level[child] = l
			}
		}
	}
	return level
}

func cyclePath(stack []string, back string) []string {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == back {
			path := make([]string, 0, len(stack)-i+1)
			path = append(path, stack[i:]...)
			return append(path, back)
		}
	}
	return []string{back, back}
}
