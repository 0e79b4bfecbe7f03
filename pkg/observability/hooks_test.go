package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Compute hooks
	c := NoopComputeHooks{}
	c.OnComputeStart(ctx, "graph0", 3)
	c.OnSortComplete(ctx, "graph0", time.Millisecond, nil)
	c.OnNodeComputed(ctx, "node1", 2, time.Millisecond, nil)
	c.OnComputeComplete(ctx, "graph0", 3, time.Second, nil)

	// Load hooks
	l := NoopLoadHooks{}
	l.OnLoadStart(ctx, "demo.toml")
	l.OnLoadComplete(ctx, "demo.toml", 3, 2, time.Second, nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRenderStart(ctx, "svg")
	r.OnRenderComplete(ctx, "svg", 1024, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Compute().(NoopComputeHooks); !ok {
		t.Error("Compute() should return NoopComputeHooks by default")
	}
	if _, ok := Load().(NoopLoadHooks); !ok {
		t.Error("Load() should return NoopLoadHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}

	// Set custom hooks
	customCompute := &testComputeHooks{}
	SetComputeHooks(customCompute)
	if Compute() != customCompute {
		t.Error("SetComputeHooks should set custom hooks")
	}

	customLoad := &testLoadHooks{}
	SetLoadHooks(customLoad)
	if Load() != customLoad {
		t.Error("SetLoadHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Compute().(NoopComputeHooks); !ok {
		t.Error("Reset() should restore NoopComputeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testComputeHooks{}
	SetComputeHooks(custom)

	// Setting nil should be ignored
	SetComputeHooks(nil)

	if Compute() != custom {
		t.Error("SetComputeHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testComputeHooks struct{ NoopComputeHooks }
type testLoadHooks struct{ NoopLoadHooks }
type testRenderHooks struct{ NoopRenderHooks }
