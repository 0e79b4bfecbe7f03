package ids

import (
	"strings"
	"sync"
	"testing"
)

func TestCounterNext(t *testing.T) {
	c := &Counter{}

	tests := []struct {
		prefix string
		want   string
	}{
		{"", "0"},
		{"node", "node1"},
		{"graph", "graph2"},
		{"", "3"},
	}

	for _, tt := range tests {
		if got := c.Next(tt.prefix); got != tt.want {
			t.Errorf("Next(%q) = %q, want %q", tt.prefix, got, tt.want)
		}
	}
}

func TestNewCounter(t *testing.T) {
	c := NewCounter(41)
	if got := c.Peek(); got != 41 {
		t.Errorf("Peek() = %d, want 41", got)
	}
	if got := c.Next("n"); got != "n41" {
		t.Errorf("Next() = %q, want %q", got, "n41")
	}
	if got := c.Peek(); got != 42 {
		t.Errorf("Peek() = %d, want 42", got)
	}
}

func TestCounterConcurrentUnique(t *testing.T) {
	c := &Counter{}
	const workers, perWorker = 16, 200

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)

	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for range perWorker {
				local = append(local, c.Next("x"))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, id := range local {
				if seen[id] {
					t.Errorf("duplicate id %q", id)
				}
				seen[id] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("unique ids = %d, want %d", len(seen), workers*perWorker)
	}
}

func TestDefaultNeverRepeats(t *testing.T) {
	a := Next("p")
	b := Next("p")
	if a == b {
		t.Errorf("Next() returned %q twice", a)
	}
}

func TestUUID(t *testing.T) {
	var src Source = UUID{}
	a := src.Next("run-")
	b := src.Next("run-")

	if !strings.HasPrefix(a, "run-") {
		t.Errorf("Next() = %q, want prefix %q", a, "run-")
	}
	if len(a) != len("run-")+36 {
		t.Errorf("len(Next()) = %d, want %d", len(a), len("run-")+36)
	}
	if a == b {
		t.Errorf("Next() returned %q twice", a)
	}
}
