package core

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestGetOrCreateSingleWinner(t *testing.T) {
	reg := NewRegistry()

	const callers = 64
	rooms := make(chan *Room, callers)
	var wg sync.WaitGroup
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rooms <- reg.GetOrCreate("ABCD")
		}()
	}
	wg.Wait()
	close(rooms)

	first := <-rooms
	for room := range rooms {
		if room != first {
			t.Fatalf("concurrent GetOrCreate produced distinct rooms")
		}
	}
	if reg.Len() != 1 {
		t.Fatalf("expected a single registered room, got %d", reg.Len())
	}
}

func TestLookupNotFound(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Lookup("missing"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRemoveOnlyWhenEmpty(t *testing.T) {
	reg := NewRegistry()
	room := reg.GetOrCreate("ABCD")

	s := NewSession("a", 0)
	if _, err := room.add(s, "alice"); err != nil {
		t.Fatalf("add into fresh room failed: %v", err)
	}

	if reg.Remove("ABCD") {
		t.Fatalf("non-empty room must not be removed")
	}
	if _, err := reg.Lookup("ABCD"); err != nil {
		t.Fatalf("room should still be registered: %v", err)
	}

	room.remove(s)
	if !reg.Remove("ABCD") {
		t.Fatalf("empty room should be removed")
	}
	if _, err := reg.Lookup("ABCD"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("removed room must not resolve")
	}

	// Removing an absent code is a no-op.
	if reg.Remove("ABCD") {
		t.Fatalf("second remove must be a no-op")
	}
}

func TestJoinRacesEmptyRoomRemoval(t *testing.T) {
	b := NewBroker(DefaultLimits(), nil)

	// Churn the same code: each worker joins its own session into the
	// room and leaves again, racing the empty-room cleanup of others.
	const workers = 16
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 25 {
				s := NewSession(fmt.Sprintf("s%d-%d", i, j), 256)
				if _, err := b.Join(s, "ABCD", fmt.Sprintf("user%d", i)); err != nil {
					t.Errorf("join: %v", err)
					return
				}
				if got := s.RoomCode(); got != "ABCD" {
					t.Errorf("session in room %q, want ABCD", got)
					return
				}
				b.Leave(s)
			}
		}(i)
	}
	wg.Wait()

	if _, err := b.Registry().Lookup("ABCD"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("room should be gone once everyone left")
	}
	if b.Registry().Len() != 0 {
		t.Fatalf("registry should be empty, has %d rooms", b.Registry().Len())
	}
}
