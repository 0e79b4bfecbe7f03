package dag

import (
	"errors"
	"slices"
	"testing"
)

// adjacency turns an edge map into a ChildrenFunc.
func adjacency(edges map[string][]string) ChildrenFunc {
	return func(id string) ([]string, error) { return edges[id], nil }
}

func TestTopoSort_Empty(t *testing.T) {
	order, err := TopoSort(nil, adjacency(nil))
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}
	if len(order) != 0 {
		t.Errorf("TopoSort() = %v, want empty", order)
	}
}

func TestTopoSort_Chain(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"c"}}

	order, err := TopoSort([]string{"c", "b", "a"}, adjacency(edges))
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}

	want := []string{"a", "b", "c"}
	if !slices.Equal(order, want) {
		t.Errorf("TopoSort() = %v, want %v", order, want)
	}
}

func TestTopoSort_RespectsEveryEdge(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges map[string][]string
	}{
		{
			name:  "diamond",
			ids:   []string{"d", "c", "b", "a"},
			edges: map[string][]string{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}},
		},
		{
			name:  "fan in",
			ids:   []string{"sink", "x", "y", "z"},
			edges: map[string][]string{"x": {"sink"}, "y": {"sink"}, "z": {"sink"}},
		},
		{
			name:  "disconnected",
			ids:   []string{"a", "b", "c", "d"},
			edges: map[string][]string{"a": {"b"}, "c": {"d"}},
		},
		{
			name:  "long edge",
			ids:   []string{"e", "a", "d", "b", "c"},
			edges: map[string][]string{"a": {"b", "e"}, "b": {"c"}, "c": {"d"}, "d": {"e"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := TopoSort(tt.ids, adjacency(tt.edges))
			if err != nil {
				t.Fatalf("TopoSort() error = %v", err)
			}
			if len(order) != len(tt.ids) {
				t.Fatalf("len(TopoSort()) = %d, want %d", len(order), len(tt.ids))
			}
			pos := make(map[string]int, len(order))
			for i, id := range order {
				pos[id] = i
			}
			for from, tos := range tt.edges {
				for _, to := range tos {
					if pos[from] >= pos[to] {
						t.Errorf("%s at %d not before %s at %d in %v", from, pos[from], to, pos[to], order)
					}
				}
			}
		})
	}
}

func TestTopoSort_Deterministic(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	edges := map[string][]string{"a": {"c"}, "b": {"c"}, "c": {"d"}}

	first, err := TopoSort(ids, adjacency(edges))
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}
	for range 10 {
		again, _ := TopoSort(ids, adjacency(edges))
		if !slices.Equal(first, again) {
			t.Fatalf("TopoSort() = %v, then %v", first, again)
		}
	}
}

func TestTopoSort_Cycles(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		edges    map[string][]string
		wantPath []string
	}{
		{
			name:     "self loop",
			ids:      []string{"a"},
			edges:    map[string][]string{"a": {"a"}},
			wantPath: []string{"a", "a"},
		},
		{
			name:     "two nodes",
			ids:      []string{"a", "b"},
			edges:    map[string][]string{"a": {"b"}, "b": {"a"}},
			wantPath: []string{"a", "b", "a"},
		},
		{
			name:     "triangle behind a tail",
			ids:      []string{"root", "a", "b", "c"},
			edges:    map[string][]string{"root": {"a"}, "a": {"b"}, "b": {"c"}, "c": {"a"}},
			wantPath: []string{"a", "b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := TopoSort(tt.ids, adjacency(tt.edges))
			if order != nil {
				t.Errorf("TopoSort() = %v, want nil", order)
			}
			if !errors.Is(err, ErrGraphHasCycle) {
				t.Fatalf("TopoSort() error = %v, want ErrGraphHasCycle", err)
			}
			var ce *CycleError
			if !errors.As(err, &ce) {
				t.Fatalf("TopoSort() error = %T, want *CycleError", err)
			}
			if !slices.Equal(ce.Path, tt.wantPath) {
				t.Errorf("Path = %v, want %v", ce.Path, tt.wantPath)
			}
		})
	}
}

func TestTopoSort_ChildrenError(t *testing.T) {
	boom := errors.New("lookup failed")
	_, err := TopoSort([]string{"a"}, func(id string) ([]string, error) {
		if id == "b" {
			return nil, boom
		}
		return []string{"b"}, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("TopoSort() error = %v, want %v", err, boom)
	}
}

func TestCycleError_Message(t *testing.T) {
	err := &CycleError{Path: []string{"a", "b", "a"}}
	want := "graph contains a cycle: a -> b -> a"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if (&CycleError{}).Error() != ErrGraphHasCycle.Error() {
		t.Errorf("empty CycleError message = %q", (&CycleError{}).Error())
	}
}

func TestLevels(t *testing.T) {
	edges := map[string][]string{"a": {"b", "d"}, "b": {"c"}, "c": {"d"}, "x": nil}
	children := func(id string) []string { return edges[id] }

	order, err := TopoSort([]string{"a", "b", "c", "d", "x"}, adjacency(edges))
	if err != nil {
		t.Fatalf("TopoSort() error = %v", err)
	}
	got := Levels(order, children)

	want := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3, "x": 0}
	for id, l := range want {
		if got[id] != l {
			t.Errorf("Levels()[%s] = %d, want %d", id, got[id], l)
		}
	}
}
