package current

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/wippyai/devtable/device"
	"github.com/wippyai/devtable/errors"
)

// Slot holds one current-device cell per bound context.
// The zero value is ready to use.
type Slot struct {
	key  *cellKey
	once sync.Once
}

type cellKey struct {
	slot *Slot
}

// cell is private to one bound context; a nil binding means unset.
type cell struct {
	b atomic.Pointer[binding]
}

type binding struct {
	id device.ID
}

// NewSlot returns an independent slot.
func NewSlot() *Slot {
	return &Slot{}
}

// contextKey creates the slot's key on first use.
func (s *Slot) contextKey() *cellKey {
	s.once.Do(func() {
		s.key = &cellKey{slot: s}
	})
	return s.key
}

func (s *Slot) cell(ctx context.Context) *cell {
	c, _ := ctx.Value(s.contextKey()).(*cell)
	return c
}

// Bind returns a context with a fresh, unset cell. Contexts derived from the
// result share the cell; binding again starts a new one.
func (s *Slot) Bind(ctx context.Context) context.Context {
	return context.WithValue(ctx, s.contextKey(), &cell{})
}

// Bound reports whether ctx carries a cell of this slot.
func (s *Slot) Bound(ctx context.Context) bool {
	return s.cell(ctx) != nil
}

// Set records id as the current device of ctx's thread.
// Setting device.None clears the cell.
func (s *Slot) Set(ctx context.Context, id device.ID) error {
	c := s.cell(ctx)
	if c == nil {
		return errors.New(errors.PhaseThread, errors.KindFailure).
			ID(id).
			Detail("context not bound to a device slot").
			Build()
	}
	if id == device.None {
		c.b.Store(nil)
		return nil
	}
	c.b.Store(&binding{id: id})
	return nil
}

// Clear unsets the current device of ctx's thread.
func (s *Slot) Clear(ctx context.Context) error {
	c := s.cell(ctx)
	if c == nil {
		return errors.Failure(errors.PhaseThread, "context not bound to a device slot")
	}
	c.b.Store(nil)
	return nil
}

// Get returns the current device of ctx's thread. It reports false when ctx
// is not bound or the cell is unset.
func (s *Slot) Get(ctx context.Context) (device.ID, bool) {
	c := s.cell(ctx)
	if c == nil {
		return device.None, false
	}
	b := c.b.Load()
	if b == nil {
		return device.None, false
	}
	return b.id, true
}
