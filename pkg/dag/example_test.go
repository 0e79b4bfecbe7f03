package dag_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/stackflow/pkg/dag"
)

func ExampleTopoSort() {
	// load feeds scale, scale feeds print
	edges := map[string][]string{
		"load":  {"scale"},
		"scale": {"print"},
	}
	order, err := dag.TopoSort([]string{"print", "scale", "load"}, func(id string) ([]string, error) {
		return edges[id], nil
	})
	fmt.Println(order, err)
	// Output:
	// [load scale print] <nil>
}

func ExampleTopoSort_cycle() {
	edges := map[string][]string{"a": {"b"}, "b": {"a"}}
	_, err := dag.TopoSort([]string{"a", "b"}, func(id string) ([]string, error) {
		return edges[id], nil
	})
	fmt.Println(errors.Is(err, dag.ErrGraphHasCycle))
	fmt.Println(err)
	// Output:
	// true
	// graph contains a cycle: a -> b -> a
}

func ExampleLevels() {
	edges := map[string][]string{"a": {"b", "c"}, "b": {"c"}}
	children := func(id string) []string { return edges[id] }

	order := []string{"a", "b", "c"}
	levels := dag.Levels(order, children)
	fmt.Println(levels["a"], levels["b"], levels["c"])
	// Output:
	// 0 1 2
}
