package table

import (
	"sync"
	"testing"

	"github.com/wippyai/devtable/device"
)

type testObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *testObserver) OnDeviceEvent(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *testObserver) types() []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]EventType, len(o.events))
	for i, e := range o.events {
		out[i] = e.Type
	}
	return out
}

func TestTable_Observer(t *testing.T) {
	tbl := NewWithDefaults()
	obs := &testObserver{}
	tbl.Subscribe(obs)

	h := newFake(device.TypeSocket, "hostsock")

	// Set should trigger EventSet
	if err := tbl.Set(2, h); err != nil {
		t.Fatal(err)
	}
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventSet {
		t.Fatalf("Expected EventSet, got %v", obs.events[0].Type)
	}
	if obs.events[0].ID != 2 || obs.events[0].Device != h {
		t.Fatal("Wrong id or device in event")
	}

	// Remove should trigger EventShutdown only
	if err := tbl.Remove(2); err != nil {
		t.Fatal(err)
	}
	// Release should trigger EventReleased
	if err := tbl.Release(2); err != nil {
		t.Fatal(err)
	}

	want := []EventType{EventSet, EventShutdown, EventReleased}
	got := obs.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}

	// Failed operations are not reported
	_ = tbl.Release(2)
	if len(obs.types()) != 3 {
		t.Fatal("failed Release should not emit an event")
	}

	// Unsubscribe
	tbl.Unsubscribe(obs)
	if err := tbl.Set(3, h); err != nil {
		t.Fatal(err)
	}
	if len(obs.types()) != 3 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_ObserverReleaseOnRemove(t *testing.T) {
	tbl := New(Options{ReleaseOnRemove: true})
	obs := &testObserver{}
	tbl.Subscribe(obs)

	if err := tbl.Set(0, newFake(device.TypeEventFD, "efd")); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Remove(0); err != nil {
		t.Fatal(err)
	}

	want := []EventType{EventSet, EventShutdown, EventReleased}
	got := obs.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestEventType_String(t *testing.T) {
	tests := map[EventType]string{
		EventSet:       "set",
		EventReleased:  "released",
		EventShutdown:  "shutdown",
		EventType(200): "unknown",
	}
	for e, want := range tests {
		if got := e.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", e, got, want)
		}
	}
}
