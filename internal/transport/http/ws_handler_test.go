package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomcast-server/internal/config"
	"github.com/vovakirdan/roomcast-server/internal/core"
	"github.com/vovakirdan/roomcast-server/internal/proto"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Addr = ":0"
	cfg.ReadHeaderTimeout = time.Second
	cfg.ShutdownTimeout = time.Second
	cfg.JoinTimeout = 0
	cfg.MessageRateLimit = 0
	return cfg
}

func startTestServer(t *testing.T, cfg config.Config) (*httptest.Server, *core.Broker, context.CancelFunc) {
	t.Helper()

	logger := zerolog.Nop()
	broker := core.NewBroker(core.Limits{
		MaxNameLen:    cfg.MaxNameLen,
		MaxMessageLen: cfg.MaxMessageLen,
	}, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	go broker.Run(ctx)

	server := NewServer(broker, cfg, &logger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, broker, cancel
}

func dialWS(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func sendJoin(t *testing.T, ctx context.Context, conn *websocket.Conn, room, name string) {
	t.Helper()

	payload, err := json.Marshal(proto.JoinData{Room: room, Name: name})
	if err != nil {
		t.Fatalf("marshal join: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeJoin, Data: payload}); err != nil {
		t.Fatalf("write join: %v", err)
	}
}

func sendMsg(t *testing.T, ctx context.Context, conn *websocket.Conn, room, text string) {
	t.Helper()

	payload, err := json.Marshal(proto.MsgData{Room: room, Text: text})
	if err != nil {
		t.Fatalf("marshal msg: %v", err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: proto.InboundTypeMsg, Data: payload}); err != nil {
		t.Fatalf("write msg: %v", err)
	}
}

func readOutbound(t *testing.T, ctx context.Context, conn *websocket.Conn) proto.Outbound {
	t.Helper()

	var outbound proto.Outbound
	if err := wsjson.Read(ctx, conn, &outbound); err != nil {
		t.Fatalf("read outbound: %v", err)
	}
	return outbound
}

func decodeData(t *testing.T, data any, v any) {
	t.Helper()

	raw, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts, _, cancel := startTestServer(t, testConfig())
	defer cancel()

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketJoinAndBroadcast(t *testing.T) {
	ts, _, cancel := startTestServer(t, testConfig())
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	connA := dialWS(t, ctx, ts)
	defer connA.Close(websocket.StatusNormalClosure, "done")

	sendJoin(t, ctx, connA, "ABCD", "alice")
	out := readOutbound(t, ctx, connA)
	if out.Event != proto.EventNameMembers {
		t.Fatalf("expected members event, got %+v", out)
	}
	var members proto.EventMembers
	decodeData(t, out.Data, &members)
	if len(members.Members) != 0 {
		t.Fatalf("expected empty member list, got %v", members.Members)
	}

	connB := dialWS(t, ctx, ts)
	defer connB.Close(websocket.StatusNormalClosure, "done")

	sendJoin(t, ctx, connB, "ABCD", "bob")
	out = readOutbound(t, ctx, connB)
	if out.Event != proto.EventNameMembers {
		t.Fatalf("expected members event, got %+v", out)
	}
	decodeData(t, out.Data, &members)
	if len(members.Members) != 1 || members.Members[0] != "alice" {
		t.Fatalf("expected member list [alice], got %v", members.Members)
	}

	out = readOutbound(t, ctx, connA)
	if out.Event != proto.EventNameUserJoin {
		t.Fatalf("expected user_join event, got %+v", out)
	}
	var joined proto.EventUserJoin
	decodeData(t, out.Data, &joined)
	if joined.User != "bob" {
		t.Fatalf("expected bob to join, got %+v", joined)
	}

	sendMsg(t, ctx, connA, "ABCD", "hi")
	for _, conn := range []*websocket.Conn{connA, connB} {
		out = readOutbound(t, ctx, conn)
		if out.Event != proto.EventNameUpdate {
			t.Fatalf("expected update event, got %+v", out)
		}
		var update proto.EventUpdate
		decodeData(t, out.Data, &update)
		if update.User != "alice" || update.Text != "hi" || update.Seq != 1 {
			t.Fatalf("unexpected update: %+v", update)
		}
	}

	sendMsg(t, ctx, connB, "ABCD", "yo")
	for _, conn := range []*websocket.Conn{connA, connB} {
		out = readOutbound(t, ctx, conn)
		var update proto.EventUpdate
		decodeData(t, out.Data, &update)
		if update.User != "bob" || update.Text != "yo" || update.Seq != 2 {
			t.Fatalf("unexpected update: %+v", update)
		}
	}
}

func TestWebSocketSendBeforeJoinFails(t *testing.T) {
	ts, broker, cancel := startTestServer(t, testConfig())
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dialWS(t, ctx, ts)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	sendMsg(t, ctx, conn, "ABCD", "hi")
	out := readOutbound(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeNotJoined {
		t.Fatalf("expected not_joined error, got %+v", out)
	}
	if _, err := broker.Members("ABCD"); err == nil {
		t.Fatalf("failed send must not create a room")
	}
}

func TestWebSocketJoinInvalidName(t *testing.T) {
	ts, broker, cancel := startTestServer(t, testConfig())
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dialWS(t, ctx, ts)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	sendJoin(t, ctx, conn, "ABCD", "")
	out := readOutbound(t, ctx, conn)
	if out.Type != proto.OutboundTypeError || out.Error == nil || out.Error.Code != core.ErrCodeInvalidName {
		t.Fatalf("expected invalid_name error, got %+v", out)
	}
	if _, err := broker.Members("ABCD"); err == nil {
		t.Fatalf("failed join must not create a room")
	}
}

func TestWebSocketRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.MessageRateLimit = 2

	ts, _, cancel := startTestServer(t, cfg)
	defer cancel()

	ctx, closeCtx := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCtx()

	conn := dialWS(t, ctx, ts)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	sendJoin(t, ctx, conn, "ABCD", "alice")
	for i := 0; i < 3; i++ {
		sendMsg(t, ctx, conn, "ABCD", "spam")
	}

	sawLimit := false
	for i := 0; i < 6 && !sawLimit; i++ {
		out := readOutbound(t, ctx, conn)
		if out.Error != nil && out.Error.Code == core.ErrCodeRateLimited {
			sawLimit = true
		}
	}
	if !sawLimit {
		t.Fatalf("expected a rate_limited error")
	}
}
