package core

// CommandKind describes what the session wants to do.
type CommandKind int

const (
	// CommandJoinRoom registers the session into a room under a display name.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom removes the session from its room.
	CommandLeaveRoom
	// CommandSendMessage dispatches a chat message to room members.
	CommandSendMessage
)

// Command represents an action requested by a session.
type Command struct {
	Kind CommandKind
	Room string
	Name string // display name, join only
	Text string // message body, send only
}
