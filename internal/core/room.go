package core

import (
	"sync"
	"time"
)

// Room groups sessions subscribed to the same room code. Membership is
// kept in join order. All membership mutation and message dispatch is
// serialized by the room's own lock, so rooms proceed independently.
type Room struct {
	Code string

	mu      sync.Mutex
	members []*Session
	seq     int64
	removed bool // set when the registry drops the room
}

// NewRoom constructs a room with no members.
func NewRoom(code string) *Room {
	return &Room{Code: code}
}

// add commits a join: it inserts the session and records the room and
// name on the session itself, all under the room lock plus the session
// lock. The commit is atomic with respect to markClosed and clearRoom,
// so a disconnect racing the join either beats the commit (add refuses
// the closed session) or follows it (Leave finds the membership and
// removes it) — a dead session can never linger as a member. Returns
// the names of the members present before it, in join order.
// errRoomRemoved means the room lost a race with empty-room cleanup
// and the caller must fetch a fresh one.
func (r *Room) add(s *Session, name string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.removed {
		return nil, errRoomRemoved
	}
	prior := make([]string, 0, len(r.members))
	for _, m := range r.members {
		prior = append(prior, m.Name())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if s.joined {
		return nil, ErrAlreadyJoined
	}
	r.members = append(r.members, s)
	s.room = r
	s.name = name
	s.joined = true
	return prior, nil
}

// remove deletes a session from the room. Returns true if it was a member.
func (r *Room) remove(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.members {
		if m.ID == s.ID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// dispatch assigns the next sequence number, builds the message, and
// delivers it to every member. Holding the lock across delivery gives
// the per-room ordering guarantee: the sends are non-blocking, so the
// critical section stays bounded regardless of slow recipients.
func (r *Room) dispatch(from, text string) Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg := Message{
		Seq:       r.seq,
		Room:      r.Code,
		From:      from,
		Text:      text,
		CreatedAt: time.Now(),
	}
	ev := &Event{Kind: EventRoomMessage, Room: r.Code, Message: msg}
	for _, m := range r.members {
		m.push(ev)
	}
	return msg
}

// broadcast sends an event to all members, optionally skipping one
// session id (presence events are not echoed to their subject).
func (r *Room) broadcast(ev *Event, exceptID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.ID == exceptID {
			continue
		}
		m.push(ev)
	}
}

// Members returns the current member names in join order.
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.Name())
	}
	return names
}

// Empty returns true if no sessions are in the room.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members) == 0
}
