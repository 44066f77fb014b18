package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomcast-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "cli-user", "display name")
	room := flag.String("room", "general", "room code to join")
	flag.Parse()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	send := func(v any) {
		if writeErr := wsjson.Write(ctx, conn, v); writeErr != nil {
			cancel()
			log.Printf("send: %v", writeErr)
		}
	}

	joinPayload, err := json.Marshal(proto.JoinData{Room: *room, Name: *name})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	send(proto.Inbound{Type: proto.InboundTypeJoin, Data: joinPayload})

	fmt.Printf("Connected to %s as %s in room %s\n", *addr, *name, *room)
	fmt.Println("Type messages and press Enter to send. Ctrl+C to exit.")

	go func() {
		defer cancel()
		readLoop(ctx, conn)
	}()

	writeLoop(ctx, conn, *room)

	stop()
	cancel()
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	return nil
}

func readLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		if outbound.Error != nil {
			fmt.Printf("server error: %s (%s)\n", outbound.Error.Msg, outbound.Error.Code)
			continue
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			log.Printf("marshal outbound data: %v", err)
			continue
		}

		switch outbound.Event {
		case proto.EventNameMembers:
			var evt proto.EventMembers
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal members: %v", err)
				continue
			}
			fmt.Printf("[room %s] members: %s\n", evt.Room, strings.Join(evt.Members, ", "))
		case proto.EventNameUpdate:
			var evt proto.EventUpdate
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal update: %v", err)
				continue
			}
			fmt.Printf("[%s #%d] %s: %s\n", evt.Room, evt.Seq, evt.User, evt.Text)
		case proto.EventNameUserJoin:
			var evt proto.EventUserJoin
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal user_join: %v", err)
				continue
			}
			fmt.Printf("[room %s] %s joined\n", evt.Room, evt.User)
		case proto.EventNameUserLeft:
			var evt proto.EventUserLeft
			if err := json.Unmarshal(raw, &evt); err != nil {
				log.Printf("unmarshal user_left: %v", err)
				continue
			}
			fmt.Printf("[room %s] %s left\n", evt.Room, evt.User)
		default:
			fmt.Printf("event=%s data=%v\n", outbound.Event, outbound.Data)
		}
	}
}

func writeLoop(ctx context.Context, conn *websocket.Conn, room string) {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			payload, err := json.Marshal(proto.MsgData{Room: room, Text: line})
			if err != nil {
				log.Printf("marshal msg: %v", err)
				continue
			}
			if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMsg, Data: payload}); err != nil {
				log.Printf("send: %v", err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
