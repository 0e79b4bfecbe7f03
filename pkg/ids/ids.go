// Package ids mints identifiers for graphs and nodes.
//
// The process-wide [Default] counter starts at 0 when the process starts and
// is never reset. Every call to [Next] returns the prefix followed by the next
// counter value, so two calls never return the same identifier:
//
//	ids.Next("node") // "node0"
//	ids.Next("node") // "node1"
//	ids.Next("")     // "2"
//
// Hosts that want deterministic identifiers in tests inject their own
// [Counter] through the graph and node options of package flow. Hosts that
// need identifiers unique across processes can use [UUID].
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Source mints identifiers. Implementations must never return the same
// identifier twice for the lifetime of the source.
type Source interface {
	Next(prefix string) string
}

// Counter is a monotonically increasing identifier source.
// The zero value starts at 0 and is ready to use. Counter is safe for
// concurrent use.
type Counter struct {
	n atomic.Uint64
}

// NewCounter returns a counter whose first identifier uses start.
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

// Next returns prefix followed by the current counter value and advances
// the counter.
func (c *Counter) Next(prefix string) string {
	v := c.n.Add(1) - 1
	return prefix + strconv.FormatUint(v, 10)
}

// Peek returns the value the next call to Next will use.
func (c *Counter) Peek() uint64 { return c.n.Load() }

// UUID mints prefix + random UUIDv4 identifiers.
type UUID struct{}

// Next returns prefix followed by a new random UUID.
func (UUID) Next(prefix string) string { return prefix + uuid.NewString() }

// Default is the process-wide counter used when no source is injected.
var Default = &Counter{}

// Next mints an identifier from Default.
func Next(prefix string) string { return Default.Next(prefix) }
