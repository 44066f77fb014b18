package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/roomcast-server/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	name := flag.String("name", "tester", "display name to join with")
	room := flag.String("room", "general", "room code")
	text := flag.String("text", "hello from smoke test", "message text to send")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	mustSend := func(v any) error {
		if err := wsjson.Write(ctx, conn, v); err != nil {
			return fmt.Errorf("send: %w", err)
		}
		return nil
	}

	joinPayload, err := json.Marshal(proto.JoinData{Room: *room, Name: *name})
	if err != nil {
		return fmt.Errorf("marshal join: %w", err)
	}
	if err := mustSend(proto.Inbound{Type: proto.InboundTypeJoin, Data: joinPayload}); err != nil {
		return err
	}

	msgPayload, err := json.Marshal(proto.MsgData{Room: *room, Text: *text})
	if err != nil {
		return fmt.Errorf("marshal msg: %w", err)
	}
	if err := mustSend(proto.Inbound{Type: proto.InboundTypeMsg, Data: msgPayload}); err != nil {
		return err
	}

	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		fmt.Printf("Received outbound: type=%s", outbound.Type)
		if outbound.Event != "" {
			fmt.Printf(" event=%s", outbound.Event)
		}
		fmt.Println()

		if outbound.Error != nil {
			return fmt.Errorf("server error: %s (%s)", outbound.Error.Msg, outbound.Error.Code)
		}

		raw, err := json.Marshal(outbound.Data)
		if err != nil {
			return fmt.Errorf("marshal outbound data: %w", err)
		}

		switch outbound.Event {
		case proto.EventNameMembers:
			var evt proto.EventMembers
			if err := json.Unmarshal(raw, &evt); err == nil {
				fmt.Printf("Members: room=%s count=%d\n", evt.Room, len(evt.Members))
			}
		case proto.EventNameUpdate:
			var evt proto.EventUpdate
			if unmarshalErr := json.Unmarshal(raw, &evt); unmarshalErr != nil {
				fmt.Printf("Raw data: %s\n", string(raw))
				return fmt.Errorf("unmarshal update: %w", unmarshalErr)
			}
			fmt.Printf("Update: room=%s user=%s text=%q seq=%d ts=%d\n", evt.Room, evt.User, evt.Text, evt.Seq, evt.TS)
			return nil
		case proto.EventNameUserJoin:
			var evt proto.EventUserJoin
			if err := json.Unmarshal(raw, &evt); err == nil {
				fmt.Printf("Join: room=%s user=%s\n", evt.Room, evt.User)
			}
		case proto.EventNameUserLeft:
			var evt proto.EventUserLeft
			if err := json.Unmarshal(raw, &evt); err == nil {
				fmt.Printf("Left: room=%s user=%s\n", evt.Room, evt.User)
			}
		default:
			// keep looping for the update
		}
	}
}
