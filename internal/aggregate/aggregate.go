// Package aggregate fans out the independent boundary operations of one
// screen and joins them with wait-for-all semantics. One slow or failing
// panel never cancels, delays, or corrupts a sibling: every operation settles
// on its own and applies only to its own slice.
package aggregate

import (
	"context"
	"sync"

	"github.com/centavo-app/centavo/internal/action"
)

// Group runs boundary operations concurrently for a single screen. The zero
// value is not usable; construct with New.
type Group struct {
	ctx context.Context
	wg  sync.WaitGroup
	mu  sync.Mutex
}

// New creates a group. The context is passed to every operation; the group
// itself never cancels it, since in-flight boundary operations are idempotent
// reads or already-committed writes and late results are simply discarded by
// the caller.
func New(ctx context.Context) *Group {
	return &Group{ctx: ctx}
}

// Go launches one boundary operation. run must follow the action contract
// (value-returning, never panicking; action.Do guarantees both). apply
// receives the settled result, whatever its status, and is serialized against
// the group's other apply callbacks so slices can be plain fields.
func Go[T any](g *Group, run func(context.Context) action.Result[T], apply func(action.Result[T])) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		res := run(g.ctx)

		g.mu.Lock()
		defer g.mu.Unlock()
		apply(res)
	}()
}

// Wait blocks until every launched operation has settled and applied. It
// never short-circuits on failure; a batch resolves exactly once, after all
// of it has settled.
func (g *Group) Wait() {
	g.wg.Wait()
}
