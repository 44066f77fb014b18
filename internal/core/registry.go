package core

import "sync"

// Registry owns the set of live rooms. Rooms materialize on first join
// and are dropped as soon as their last member leaves; an emptied room
// is indistinguishable from one that never existed.
//
// Lock order is always registry before room.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room registered under code, creating it if
// absent. Concurrent calls with the same code observe a single winner.
// The returned room may be concurrently removed once emptied; callers
// adding membership must retry when Room.add reports a removed room.
func (reg *Registry) GetOrCreate(code string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		room = NewRoom(code)
		reg.rooms[code] = room
	}
	return room
}

// Lookup returns the live room for code or ErrRoomNotFound.
func (reg *Registry) Lookup(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// Remove drops the room registered under code if it is empty. The
// emptiness check and the removal are atomic with respect to joins:
// a join racing the removal observes the removed flag and retries
// against a fresh room. No-op when the code is absent or the room
// still has members.
func (reg *Registry) Remove(code string) bool {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		return false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if len(room.members) > 0 {
		return false
	}
	room.removed = true
	delete(reg.rooms, code)
	return true
}

// Len returns the number of live rooms.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
