package engine

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator mints opaque penalty and directive identifiers.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type IDGenerator interface {
	NewID() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort
// by creation time, which keeps store scans and debugging output in a
// sensible order.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// NewID returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined identifiers for tests, enabling
// exact golden comparisons of rollover output.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedGenerator("p-1", "p-2")
//	gen.NewID() // "p-1"
//	gen.NewID() // "p-2"
//	gen.NewID() // panic: ids exhausted
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// NewID returns the next predetermined identifier.
// Panics when all ids are consumed; a test that asks for more ids than
// it provisioned is broken and should fail fast.
func (g *FixedGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic("engine: FixedGenerator ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
