package core

// Notifier translates membership changes into presence event broadcasts.
// It is a stateless relay: no buffering, no history, best-effort
// per-recipient delivery via the sessions' bounded queues.
type Notifier struct{}

// NewNotifier constructs the presence relay.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Joined announces a new member to everyone already in the room. The
// joining session itself is skipped: it learns the room state from the
// member list returned by join.
func (n *Notifier) Joined(room *Room, name, sessionID string) {
	room.broadcast(&Event{Kind: EventUserJoined, Room: room.Code, User: name}, sessionID)
}

// Left announces a departure to the remaining members.
func (n *Notifier) Left(room *Room, name string) {
	room.broadcast(&Event{Kind: EventUserLeft, Room: room.Code, User: name}, "")
}
