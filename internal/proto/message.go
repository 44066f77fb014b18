package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin  = "join"
	InboundTypeLeave = "leave"
	InboundTypeMsg   = "msg"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventNameMembers  = "members"
	EventNameUpdate   = "update"
	EventNameUserJoin = "user_join"
	EventNameUserLeft = "user_left"
)

// JoinData requests to join a room under a display name.
type JoinData struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

// LeaveData requests to leave a room.
type LeaveData struct {
	Room string `json:"room"`
}

// MsgData is a chat message from the client. Room must match the room
// the connection joined.
type MsgData struct {
	Room string `json:"room"`
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventMembers delivers the room's current member names, in join order,
// to a freshly joined connection.
type EventMembers struct {
	Room    string   `json:"room"`
	Members []string `json:"members"`
}

// EventUpdate is emitted to every room member for each dispatched
// message, the sender included.
type EventUpdate struct {
	Room string `json:"room"`
	User string `json:"user"`
	Text string `json:"text"`
	Seq  int64  `json:"seq"`
	TS   int64  `json:"ts"`
}

// EventUserJoin notifies that a user joined the room.
type EventUserJoin struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// EventUserLeft notifies that a user left the room.
type EventUserLeft struct {
	Room string `json:"room"`
	User string `json:"user"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
