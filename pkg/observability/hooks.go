// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph evaluation, graph file loading and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the engine never imports
// a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetComputeHooks(&myComputeHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Compute().OnComputeStart(ctx, graphID, nodeCount)
//	// ... evaluate nodes ...
//	observability.Compute().OnComputeComplete(ctx, graphID, nodeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Compute Hooks
// =============================================================================

// ComputeHooks receives events from graph evaluation.
type ComputeHooks interface {
	// Pass events
	OnComputeStart(ctx context.Context, graphID string, nodeCount int)
	OnComputeComplete(ctx context.Context, graphID string, nodeCount int, duration time.Duration, err error)

	// OnSortComplete records the topological sort that precedes a pass.
	OnSortComplete(ctx context.Context, graphID string, duration time.Duration, err error)

	// OnNodeComputed records one node evaluation. paramSets is the number of
	// aligned parameter sets the transform was invoked with.
	OnNodeComputed(ctx context.Context, nodeID string, paramSets int, duration time.Duration, err error)
}

// =============================================================================
// Load Hooks
// =============================================================================

// LoadHooks receives events from graph definition loading.
type LoadHooks interface {
	OnLoadStart(ctx context.Context, path string)
	OnLoadComplete(ctx context.Context, path string, nodeCount, edgeCount int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from graph rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopComputeHooks is a no-op implementation of ComputeHooks.
type NoopComputeHooks struct{}

func (NoopComputeHooks) OnComputeStart(context.Context, string, int) {}
func (NoopComputeHooks) OnComputeComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopComputeHooks) OnSortComplete(context.Context, string, time.Duration, error)      {}
func (NoopComputeHooks) OnNodeComputed(context.Context, string, int, time.Duration, error) {}

// NoopLoadHooks is a no-op implementation of LoadHooks.
type NoopLoadHooks struct{}

func (NoopLoadHooks) OnLoadStart(context.Context, string)                                  {}
func (NoopLoadHooks) OnLoadComplete(context.Context, string, int, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                                {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	computeHooks ComputeHooks = NoopComputeHooks{}
	loadHooks    LoadHooks    = NoopLoadHooks{}
	renderHooks  RenderHooks  = NoopRenderHooks{}
	hooksMu      sync.RWMutex
)

// SetComputeHooks registers custom compute hooks.
// This should be called once at application startup before any graph is computed.
func SetComputeHooks(h ComputeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		computeHooks = h
	}
}

// SetLoadHooks registers custom load hooks.
func SetLoadHooks(h LoadHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		loadHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Compute returns the registered compute hooks.
func Compute() ComputeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return computeHooks
}

// Load returns the registered load hooks.
func Load() LoadHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return loadHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	computeHooks = NoopComputeHooks{}
	loadHooks = NoopLoadHooks{}
	renderHooks = NoopRenderHooks{}
}
