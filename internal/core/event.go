package core

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventRoomMessage notifies sessions about a chat message in a room.
	EventRoomMessage EventKind = iota
	// EventUserJoined notifies sessions about a user joining their room.
	EventUserJoined
	// EventUserLeft notifies sessions about a user leaving their room.
	EventUserLeft
	// EventMembers delivers the current member list to a session upon joining.
	EventMembers
	// EventError notifies a session about a domain error.
	EventError
)

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Room    string
	User    string
	Members []string // for EventMembers
	Message Message
	Error   *CoreError
}
