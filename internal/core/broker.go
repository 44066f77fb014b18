package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Broker routes joins, leaves, and chat messages between sessions and
// rooms. Each registered session gets its own command loop, so one
// logical task serves each connection; room state itself is guarded by
// per-room locks and rooms proceed fully in parallel.
type Broker struct {
	registry *Registry
	presence *Notifier
	limits   Limits
	log      *zerolog.Logger

	register chan *Session
}

// NewBroker constructs the broker. A nil logger disables logging.
func NewBroker(limits Limits, logger *zerolog.Logger) *Broker {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if limits.MaxNameLen <= 0 {
		limits.MaxNameLen = DefaultMaxNameLen
	}
	if limits.MaxMessageLen <= 0 {
		limits.MaxMessageLen = DefaultMaxMessageLen
	}
	return &Broker{
		registry: NewRegistry(),
		presence: NewNotifier(),
		limits:   limits,
		log:      logger,
		register: make(chan *Session),
	}
}

// Registry exposes the room registry.
func (b *Broker) Registry() *Registry {
	return b.registry
}

// Run accepts session registrations and spawns their command loops.
// Blocks until the context is cancelled.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case s := <-b.register:
			go b.sessionLoop(ctx, s)
		case <-ctx.Done():
			return
		}
	}
}

// Register hands a session to the broker. Run must be active.
func (b *Broker) Register(s *Session) {
	b.register <- s
}

// Unregister detaches a session on transport disconnect. The caller
// guarantees no further writes to the session's command channel.
// Closing the session first makes the detach terminal: a join command
// still buffered or mid-flight can no longer enter a room, it fails
// against the closed flag inside Room.add.
func (b *Broker) Unregister(s *Session) {
	s.markClosed()
	b.Leave(s)
	close(s.Commands)
}

func (b *Broker) sessionLoop(ctx context.Context, s *Session) {
	for {
		select {
		case cmd, ok := <-s.Commands:
			if !ok {
				return
			}
			if cmd != nil {
				b.handle(s, cmd)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (b *Broker) handle(s *Session, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		members, err := b.Join(s, cmd.Room, cmd.Name)
		if err != nil {
			b.pushError(s, cmd.Room, err)
			return
		}
		s.push(&Event{Kind: EventMembers, Room: cmd.Room, Members: members})
	case CommandLeaveRoom:
		if cmd.Room != "" && s.RoomCode() != "" && cmd.Room != s.RoomCode() {
			b.pushError(s, cmd.Room, ErrRoomMismatch)
			return
		}
		b.Leave(s)
	case CommandSendMessage:
		if _, err := b.Send(s, cmd.Room, cmd.Text); err != nil {
			b.pushError(s, cmd.Room, err)
		}
	}
}

func (b *Broker) pushError(s *Session, room string, err error) {
	s.push(&Event{Kind: EventError, Room: room, Error: AsCoreError(err)})
}

// Join validates the display name, registers the session into the room
// for code (creating it on first join), and announces the arrival to the
// members already present. Returns their names in join order, which the
// transport relays to the joiner for initial UI population.
func (b *Broker) Join(s *Session, code, name string) ([]string, error) {
	if code == "" {
		return nil, coreError(ErrCodeBadRequest, "room code is required")
	}
	clean, err := ValidateName(name, b.limits.MaxNameLen)
	if err != nil {
		return nil, err
	}
	if s.Joined() {
		return nil, ErrAlreadyJoined
	}

	for {
		room := b.registry.GetOrCreate(code)
		members, err := room.add(s, clean)
		if errors.Is(err, errRoomRemoved) {
			// Lost a race with empty-room removal; fetch a fresh room.
			continue
		}
		if err != nil {
			// GetOrCreate may have just materialized the room; a
			// refused commit must not leave it behind empty.
			if room.Empty() {
				b.registry.Remove(code)
			}
			return nil, err
		}
		b.presence.Joined(room, clean, s.ID)
		b.log.Debug().Str("session_id", s.ID).Str("room", code).Str("name", clean).Msg("session joined room")
		return members, nil
	}
}

// Leave removes the session from its room, announces the departure to
// the remaining members, and drops the room once emptied. Idempotent:
// a session that is not in a room is a no-op.
func (b *Broker) Leave(s *Session) {
	room, name := s.clearRoom()
	if room == nil {
		return
	}
	if !room.remove(s) {
		return
	}
	b.presence.Left(room, name)
	if room.Empty() {
		if b.registry.Remove(room.Code) {
			b.log.Debug().Str("room", room.Code).Msg("empty room removed")
		}
	}
	b.log.Debug().Str("session_id", s.ID).Str("room", room.Code).Msg("session left room")
}

// Send validates and dispatches a chat message to the session's room.
// The room code from the wire must match the joined room when present.
// Every member in the dispatch snapshot receives the message, the
// sender included.
func (b *Broker) Send(s *Session, roomCode, text string) (Message, error) {
	room, name := s.current()
	if room == nil {
		return Message{}, ErrNotJoined
	}
	if roomCode != "" && roomCode != room.Code {
		return Message{}, ErrRoomMismatch
	}
	body, err := ValidateMessage(text, b.limits.MaxMessageLen)
	if err != nil {
		return Message{}, err
	}
	return room.dispatch(name, body), nil
}

// Members returns the member names of the live room for code.
func (b *Broker) Members(code string) ([]string, error) {
	room, err := b.registry.Lookup(code)
	if err != nil {
		return nil, err
	}
	return room.Members(), nil
}
