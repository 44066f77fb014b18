package core

import (
	"sync"
	"sync/atomic"
)

const (
	defaultCommandBuffer = 8
	defaultEventBuffer   = 32
)

// Session is one client connection as seen by the core layer. A session
// belongs to at most one room at a time and may join exactly once in its
// lifetime; rejoining requires a new connection.
type Session struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	dropped atomic.Uint64

	mu     sync.Mutex
	name   string
	room   *Room
	joined bool // set on first successful join, never cleared
	closed bool // set on transport disconnect, terminal
}

// NewSession constructs a session with a bounded outbound event queue.
// eventBuffer <= 0 selects the default capacity.
func NewSession(id string, eventBuffer int) *Session {
	if eventBuffer <= 0 {
		eventBuffer = defaultEventBuffer
	}
	return &Session{
		ID:       id,
		Commands: make(chan *Command, defaultCommandBuffer),
		Events:   make(chan *Event, eventBuffer),
	}
}

// Name returns the display name fixed at join time, or "" before a join.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// Joined reports whether the session has ever joined a room.
func (s *Session) Joined() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.joined
}

// RoomCode returns the code of the currently joined room, or "".
func (s *Session) RoomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room == nil {
		return ""
	}
	return s.room.Code
}

// Dropped returns the number of events discarded because the session's
// queue was full.
func (s *Session) Dropped() uint64 {
	return s.dropped.Load()
}

// push delivers an event without blocking. A full queue drops the event
// and bumps the counter; a slow recipient must never stall dispatch.
func (s *Session) push(ev *Event) {
	select {
	case s.Events <- ev:
	default:
		s.dropped.Add(1)
	}
}

// markClosed seals the session on transport disconnect. A closed
// session can never enter a room: Room.add re-checks the flag under
// both locks, so a join command still in flight when the connection
// drops cannot plant a dead member.
func (s *Session) markClosed() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Closed reports whether the session's transport has disconnected.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// current returns the joined room and name, nil room if not joined.
func (s *Session) current() (*Room, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room, s.name
}

// clearRoom detaches the session from its room, returning the room it
// was in. joined stays true: a session's single join is spent.
func (s *Session) clearRoom() (*Room, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.room
	s.room = nil
	return room, s.name
}
