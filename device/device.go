package device

import (
	"reflect"
	"strconv"
)

// ID identifies a slot in a device table.
type ID uint64

// None is the "no device id" sentinel. It is never a valid id.
const None ID = ^ID(0)

// InRange reports whether id addresses a slot of a table with the given capacity.
func (id ID) InRange(capacity int) bool {
	return id != None && capacity > 0 && id < ID(capacity)
}

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// Type is the device type tag.
type Type uint32

const (
	TypeAny Type = iota // wildcard, query only
	TypeFileSystem
	TypeSocket
	TypeEpoll
	TypeEventFD

	typeCount
)

var typeNames = [...]string{
	TypeAny:        "any",
	TypeFileSystem: "filesystem",
	TypeSocket:     "socket",
	TypeEpoll:      "epoll",
	TypeEventFD:    "eventfd",
}

func (t Type) String() string {
	if t < typeCount {
		return typeNames[t]
	}
	return "type(" + strconv.FormatUint(uint64(t), 10) + ")"
}

// Storable reports whether a device of this type may occupy a table slot.
func (t Type) Storable() bool {
	return t != TypeAny && t < typeCount
}

// Matches reports whether a device of type t satisfies a query for want.
// TypeAny matches every device.
func (t Type) Matches(want Type) bool {
	return want == TypeAny || t == want
}

// Device is the handle stored in a table slot.
type Device interface {
	Type() Type
	Name() string
}

// IsNil reports whether d is nil or an interface holding a nil pointer,
// map, slice, channel or func.
func IsNil(d Device) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Shutdowner is optionally implemented by devices that can be shut down.
// A zero status means success.
type Shutdowner interface {
	Shutdown() int
}

// ShutdownFunc adapts a function to the Shutdowner interface.
type ShutdownFunc func() int

// Shutdown calls f.
func (f ShutdownFunc) Shutdown() int {
	return f()
}

// Base carries the type tag and name. Embed it to implement Device.
type Base struct {
	name string
	typ  Type
}

// NewBase returns a Base for a device of the given type and name.
func NewBase(typ Type, name string) Base {
	return Base{typ: typ, name: name}
}

// Type returns the device type tag.
func (b Base) Type() Type {
	return b.typ
}

// Name returns the device name used for lookups.
func (b Base) Name() string {
	return b.name
}
