package current

import (
	"context"
	"sync"

	"github.com/wippyai/devtable/device"
)

var (
	defaultSlot *Slot
	defaultOnce sync.Once
)

// Default returns the process-wide slot used by the package-level functions.
func Default() *Slot {
	defaultOnce.Do(func() {
		defaultSlot = NewSlot()
	})
	return defaultSlot
}

// Bind binds ctx to the default slot.
func Bind(ctx context.Context) context.Context {
	return Default().Bind(ctx)
}

// Set records id in the default slot.
func Set(ctx context.Context, id device.ID) error {
	return Default().Set(ctx, id)
}

// Clear unsets the default slot.
func Clear(ctx context.Context) error {
	return Default().Clear(ctx)
}

// Get reads the default slot.
func Get(ctx context.Context) (device.ID, bool) {
	return Default().Get(ctx)
}
