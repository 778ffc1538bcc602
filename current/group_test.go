package current

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/wippyai/devtable/device"
)

func TestGroup_WorkersHaveOwnCells(t *testing.T) {
	s := NewSlot()
	g := NewGroup(context.Background(), s)

	for i := 0; i < 16; i++ {
		id := device.ID(i)
		g.Go(func(ctx context.Context) error {
			if _, ok := s.Get(ctx); ok {
				return errors.New("worker cell should start unset")
			}
			if err := s.Set(ctx, id); err != nil {
				return err
			}
			if got, ok := s.Get(ctx); !ok || got != id {
				return errors.New("worker observed another worker's id")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestGroup_FirstError(t *testing.T) {
	g := NewGroup(context.Background(), nil)
	boom := errors.New("boom")

	g.Go(func(ctx context.Context) error {
		if !Default().Bound(ctx) {
			return errors.New("worker context should be bound to the default slot")
		}
		return boom
	})

	if err := g.Wait(); !errors.Is(err, boom) {
		t.Fatalf("Wait = %v, want %v", err, boom)
	}
}

func TestGroup_SetLimit(t *testing.T) {
	g := NewGroup(context.Background(), NewSlot())
	g.SetLimit(2)

	var running, peak atomic.Int32
	release := make(chan struct{})
	for i := 0; i < 6; i++ {
		g.Go(func(ctx context.Context) error {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-release
			running.Add(-1)
			return nil
		})
		if i == 1 {
			close(release)
		}
	}

	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if peak.Load() > 2 {
		t.Fatalf("peak concurrency = %d, want <= 2", peak.Load())
	}
}
