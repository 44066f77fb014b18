package core

import "time"

// Message is the domain model for a dispatched chat message. Seq is
// assigned by the room at dispatch time and is strictly increasing and
// gap-free within one room, starting at 1.
type Message struct {
	Seq       int64
	Room      string
	From      string
	Text      string
	CreatedAt time.Time
}
