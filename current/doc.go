// Package current tracks the device a thread of execution is implicitly
// operating on.
//
// Go has no goroutine-local storage, so a "thread" here is a context bound to
// a Slot. Bind gives the context a private cell; every context derived from it
// shares that cell, and no other context can see it:
//
//	ctx = current.Bind(ctx)
//	if err := current.Set(ctx, id); err != nil {
//	    return err
//	}
//	...
//	if id, ok := current.Get(ctx); ok {
//	    dev, err := tbl.Get(id, device.TypeAny)
//	}
//
// A context that was never bound reports no current device, and Set on it
// fails with a Failure error. Device id 0 is an ordinary id: Get returns
// (0, true) for a cell bound to 0 and (device.None, false) for an unset cell.
//
// The package-level functions use a process-wide Slot created on first use.
// NewSlot returns an independent Slot for tests or for hosts that run several
// registries side by side.
//
// Group starts goroutines that each get their own bound context:
//
//	g := current.NewGroup(ctx, slot)
//	for _, id := range ids {
//	    g.Go(func(ctx context.Context) error {
//	        return slot.Set(ctx, id)
//	    })
//	}
//	err := g.Wait()
package current
