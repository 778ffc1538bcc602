package table

import "github.com/wippyai/devtable/device"

// EventType identifies a slot lifecycle notification.
type EventType uint8

const (
	EventSet EventType = iota
	EventReleased
	EventShutdown
)

func (e EventType) String() string {
	switch e {
	case EventSet:
		return "set"
	case EventReleased:
		return "released"
	case EventShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Event represents a slot lifecycle event.
type Event struct {
	Device device.Device
	ID     device.ID
	Type   EventType
}

// Observer receives notifications about slot lifecycle events.
// Observers run on the goroutine that performed the operation, after the
// table lock is released.
type Observer interface {
	OnDeviceEvent(Event)
}
