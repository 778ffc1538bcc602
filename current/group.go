package current

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Group runs goroutines that each have their own bound context, so every
// worker owns a separate current-device cell.
type Group struct {
	slot *Slot
	eg   *errgroup.Group
	ctx  context.Context
}

// NewGroup creates a group whose workers bind to slot. A nil slot uses the
// default slot. The context passed to workers is canceled when a worker
// returns an error or Wait returns.
func NewGroup(ctx context.Context, slot *Slot) *Group {
	if slot == nil {
		slot = Default()
	}
	eg, gctx := errgroup.WithContext(ctx)
	return &Group{slot: slot, eg: eg, ctx: gctx}
}

// SetLimit caps the number of workers running at once. A negative value
// removes the limit.
func (g *Group) SetLimit(n int) {
	g.eg.SetLimit(n)
}

// Go starts fn on a new goroutine with a freshly bound context.
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		return fn(g.slot.Bind(g.ctx))
	})
}

// Wait blocks until every worker returns and reports the first error.
func (g *Group) Wait() error {
	return g.eg.Wait()
}
