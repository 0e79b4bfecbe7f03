// Package dag provides the topological sorter used to schedule dataflow
// evaluation.
//
// # Overview
//
// The sorter works on an abstract graph: a list of node IDs plus a
// [ChildrenFunc] that returns, for any ID, the IDs it points to. In a
// dataflow graph the children of a node are its downstream consumers, so a
// valid order lists every producer before any consumer that reads from it.
//
// # Basic Usage
//
//	edges := map[string][]string{"load": {"scale"}, "scale": {"print"}}
//	order, err := dag.TopoSort([]string{"print", "scale", "load"},
//	    func(id string) ([]string, error) { return edges[id], nil })
//	// order == [load scale print]
//
// # Cycles
//
// [TopoSort] uses depth-first search with white/gray/black coloring. Meeting
// a gray node means the current DFS path loops back on itself; the whole sort
// is aborted and a [*CycleError] describing the loop is returned. The error
// wraps [ErrGraphHasCycle]. No partial ordering is ever returned.
//
// [Levels] groups a topological order into independent layers.
//
// # Determinism
//
// For a fixed ID order and a fixed children order the result is fixed. Ties
// between independent subgraphs are broken by root order; callers must not
// rely on the relative order of mutually independent nodes.
//
// # Concurrency
//
// The functions in this package hold no shared state and may be called from
// multiple goroutines, provided the ChildrenFunc is itself safe.
package dag
