package table

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/devtable/device"
	"github.com/wippyai/devtable/errors"
)

// DefaultCapacity is the number of slots in a table created with default options.
const DefaultCapacity = 128

// Options configures table behavior.
type Options struct {
	// Logger receives diagnostics for failed operations. Nil uses the package Logger.
	Logger *zap.Logger

	// Capacity is the number of slots. Zero or negative uses DefaultCapacity.
	Capacity int

	// ReleaseOnRemove clears the slot after a successful Remove. Off by default:
	// Remove only shuts the device down and leaves it registered.
	ReleaseOnRemove bool
}

// DefaultOptions returns default table configuration.
func DefaultOptions() Options {
	return Options{
		Capacity: DefaultCapacity,
	}
}

type slot struct {
	dev device.Device
	gen uint64
}

// Table maps device ids to device handles.
// Thread-safe: one mutex guards every slot.
type Table struct {
	log       *zap.Logger
	slots     []slot
	observers []Observer
	gen       uint64
	mu        sync.Mutex
	obsMu     sync.RWMutex
	closed    bool
	release   bool
}

// New creates a table with the given options.
func New(opts Options) *Table {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Table{
		log:     log,
		slots:   make([]slot, capacity),
		release: opts.ReleaseOnRemove,
	}
}

// NewWithDefaults creates a table with default options.
func NewWithDefaults() *Table {
	return New(DefaultOptions())
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.slots)
}

// Len returns the number of occupied slots.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, s := range t.slots {
		if s.dev != nil {
			n++
		}
	}
	return n
}

// Allocate checks that id is free and returns it. The table is not written;
// the caller publishes the device with Set.
func (t *Table) Allocate(id device.ID) (device.ID, error) {
	err := t.locked(func() *errors.Error {
		if t.closed {
			return errors.Closed(errors.PhaseAllocate)
		}
		if !id.InRange(len(t.slots)) {
			return errors.OutOfRange(errors.PhaseAllocate, id, len(t.slots))
		}
		if t.slots[id].dev != nil {
			return errors.AddressInUse(errors.PhaseAllocate, id)
		}
		return nil
	})
	if err != nil {
		return device.None, t.trace(err)
	}
	return id, nil
}

// Set stores dev at id. It never overwrites an occupied slot.
func (t *Table) Set(id device.ID, dev device.Device) error {
	if device.IsNil(dev) {
		return t.trace(errors.InvalidArgument(errors.PhaseSet, id, "nil device"))
	}
	if typ := dev.Type(); !typ.Storable() {
		return t.trace(errors.New(errors.PhaseSet, errors.KindInvalidArgument).
			ID(id).
			Detail("device type %s cannot be stored", typ).
			Build())
	}

	err := t.locked(func() *errors.Error {
		if t.closed {
			return errors.Closed(errors.PhaseSet)
		}
		if !id.InRange(len(t.slots)) {
			return errors.InvalidArgument(errors.PhaseSet, id, "id out of range")
		}
		if t.slots[id].dev != nil {
			return errors.AddressInUse(errors.PhaseSet, id)
		}
		t.gen++
		t.slots[id] = slot{dev: dev, gen: t.gen}
		return nil
	})
	if err != nil {
		return t.trace(err)
	}

	t.notify(Event{Type: EventSet, ID: id, Device: dev})
	return nil
}

// Get returns the device at id. A concrete typ also requires the device's
// type to match; TypeAny matches any device.
func (t *Table) Get(id device.ID, typ device.Type) (device.Device, error) {
	dev, _, err := t.get(errors.PhaseGet, id, typ)
	if err != nil {
		if err.Kind != errors.KindNotFound {
			t.trace(err)
		}
		return nil, err
	}
	return dev, nil
}

// get reads the slot at id. Callers trace the error.
func (t *Table) get(phase errors.Phase, id device.ID, typ device.Type) (device.Device, uint64, *errors.Error) {
	var s slot
	err := t.locked(func() *errors.Error {
		if t.closed {
			return errors.Closed(phase)
		}
		if !id.InRange(len(t.slots)) {
			return errors.InvalidArgument(phase, id, "id out of range")
		}
		s = t.slots[id]
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if s.dev == nil || !s.dev.Type().Matches(typ) {
		return nil, 0, errors.NotFound(phase, id)
	}
	return s.dev, s.gen, nil
}

// Find returns the first device, in id order, whose name equals name.
// The type filter applies to that first match only.
func (t *Table) Find(name string, typ device.Type) (device.Device, error) {
	_, dev, err := t.Lookup(name, typ)
	return dev, err
}

// Lookup is Find that also returns the id of the matching slot.
func (t *Table) Lookup(name string, typ device.Type) (device.ID, device.Device, error) {
	if name == "" {
		return device.None, nil, t.trace(errors.InvalidArgument(errors.PhaseFind, device.None, "empty name"))
	}

	id := device.None
	var dev device.Device
	err := t.locked(func() *errors.Error {
		if t.closed {
			return errors.Closed(errors.PhaseFind)
		}
		for i, s := range t.slots {
			if s.dev != nil && s.dev.Name() == name {
				id, dev = device.ID(i), s.dev
				break
			}
		}
		return nil
	})
	if err != nil {
		return device.None, nil, t.trace(err)
	}

	if dev == nil || !dev.Type().Matches(typ) {
		return device.None, nil, errors.NameNotFound(name, typ)
	}
	return id, dev, nil
}

// Remove shuts down the device at id.
//
// The slot is not cleared unless the table was created with ReleaseOnRemove:
// the device stays registered and a second Remove shuts it down again.
// Callers reclaim the slot with Release.
func (t *Table) Remove(id device.ID) error {
	dev, gen, err := t.get(errors.PhaseRemove, id, device.TypeAny)
	if err != nil {
		if err.Kind == errors.KindClosed {
			return t.trace(err)
		}
		return t.trace(errors.New(errors.PhaseRemove, errors.KindInvalidArgument).
			ID(id).
			Detail("no device found").
			Cause(err).
			Build())
	}

	s, ok := dev.(device.Shutdowner)
	if !ok {
		return t.trace(errors.InvalidArgument(errors.PhaseRemove, id, "device has no shutdown"))
	}

	if status := s.Shutdown(); status != 0 {
		serr := errors.ShutdownFailed(id, status)
		t.log.Warn("device shutdown failed",
			zap.Uint64("devid", uint64(id)),
			zap.String("name", dev.Name()),
			zap.Int("retval", status))
		return serr
	}
	t.notify(Event{Type: EventShutdown, ID: id, Device: dev})

	if !t.release {
		return nil
	}

	// Shutdown ran unlocked; only clear the slot if it still holds this device.
	released := false
	t.locked(func() *errors.Error {
		if !t.closed && t.slots[id].dev != nil && t.slots[id].gen == gen {
			t.slots[id] = slot{}
			released = true
		}
		return nil
	})
	if released {
		t.notify(Event{Type: EventReleased, ID: id, Device: dev})
	}
	return nil
}

// Release clears the slot at id without shutting the device down.
func (t *Table) Release(id device.ID) error {
	var dev device.Device
	err := t.locked(func() *errors.Error {
		if t.closed {
			return errors.Closed(errors.PhaseRelease)
		}
		if !id.InRange(len(t.slots)) {
			return errors.InvalidArgument(errors.PhaseRelease, id, "id out of range")
		}
		dev = t.slots[id].dev
		if dev == nil {
			return errors.InvalidArgument(errors.PhaseRelease, id, "slot empty")
		}
		t.slots[id] = slot{}
		return nil
	})
	if err != nil {
		return t.trace(err)
	}

	t.notify(Event{Type: EventReleased, ID: id, Device: dev})
	return nil
}

// Close empties every slot and rejects later operations. Devices are not
// shut down; their owners remain responsible for them.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true
	for i := range t.slots {
		t.slots[i] = slot{}
	}
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) locked(fn func() *errors.Error) *errors.Error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn()
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnDeviceEvent(e)
	}
}

func (t *Table) trace(err *errors.Error) error {
	t.log.Debug("device table operation failed",
		zap.String("op", string(err.Phase)),
		zap.String("kind", string(err.Kind)),
		zap.Stringer("devid", err.ID),
		zap.Error(err))
	return err
}
