package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), nil, nil)
	coord.Start()
	t.Cleanup(coord.Stop)

	srv := httptest.NewServer(NewServer(coord, nil).Routes())
	t.Cleanup(srv.Close)
	return srv, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialRaw(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func writeFrame(t *testing.T, conn *websocket.Conn, typ string, data any) {
	t.Helper()
	env, err := envelope(typ, data)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(env); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn, wantType string, v any) {
	t.Helper()
	//nolint:errcheck // test deadline
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read %s: %v", wantType, err)
	}
	if env.Type != wantType {
		t.Fatalf("got %s frame %s, want %s", env.Type, env.Data, wantType)
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("decode %s: %v", wantType, err)
		}
	}
}

func TestCreateJoinStart(t *testing.T) {
	_, url := newTestServer(t)
	host, guest := dialRaw(t, url), dialRaw(t, url)

	writeFrame(t, host, TypeCreateRoom, nil)
	var created roomReply
	readFrame(t, host, TypeCreateRoom, &created)
	if !created.Success || len(created.RoomID) != multiplayer.CodeLength || created.PlayerIndex != 0 {
		t.Fatalf("create reply = %+v", created)
	}

	writeFrame(t, guest, TypeJoinRoom, joinRequest{RoomID: strings.ToLower(created.RoomID)})
	var joined roomReply
	readFrame(t, guest, TypeJoinRoom, &joined)
	if !joined.Success || joined.PlayerIndex != 1 {
		t.Fatalf("join reply = %+v", joined)
	}
	readFrame(t, host, TypeOpponentJoined, nil)

	var hs, gs gameStart
	readFrame(t, host, TypeGameStart, &hs)
	readFrame(t, guest, TypeGameStart, &gs)
	if hs.Seed != gs.Seed || hs.LevelIndex != gs.LevelIndex {
		t.Errorf("start differs: host %+v guest %+v", hs, gs)
	}
	if hs.LevelIndex < 0 || hs.LevelIndex >= 3 {
		t.Errorf("level index %d out of range", hs.LevelIndex)
	}

	claim := multiplayer.TileClaim{ID: 4, X: 100, Y: 200, Kind: calc.KindOperator, Op: calc.OpMul}
	writeFrame(t, host, TypeTileClaimed, claim)
	var got multiplayer.TileClaim
	readFrame(t, guest, TypeOpponentTileClaimed, &got)
	if got != claim {
		t.Errorf("relayed claim = %+v, want %+v", got, claim)
	}

	writeFrame(t, guest, TypePlayerWon, nil)
	var gr, hr gameResult
	readFrame(t, guest, TypeGameResult, &gr)
	readFrame(t, host, TypeGameResult, &hr)
	if gr.Result != multiplayer.ResultWin || hr.Result != multiplayer.ResultLose {
		t.Errorf("results guest=%s host=%s", gr.Result, hr.Result)
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	_, url := newTestServer(t)
	conn := dialRaw(t, url)

	writeFrame(t, conn, TypeJoinRoom, joinRequest{RoomID: "ZZZZZ"})
	var reply roomReply
	readFrame(t, conn, TypeJoinRoom, &reply)
	if reply.Success || reply.Error != string(multiplayer.ErrRoomNotFound) {
		t.Errorf("reply = %+v", reply)
	}
}

func TestBadFrameKeepsConnection(t *testing.T) {
	_, url := newTestServer(t)
	conn := dialRaw(t, url)

	for _, frame := range []string{"{not json", `{"type":"create-room"`, "", `"create-room"`} {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
			t.Fatal(err)
		}
		readFrame(t, conn, TypeError, nil)
	}

	writeFrame(t, conn, "teleport", nil)
	readFrame(t, conn, TypeError, nil)

	writeFrame(t, conn, TypeCreateRoom, nil)
	readFrame(t, conn, TypeCreateRoom, nil)
}

func TestDisconnectNotifiesOpponent(t *testing.T) {
	_, url := newTestServer(t)
	host, guest := dialRaw(t, url), dialRaw(t, url)

	writeFrame(t, host, TypeCreateRoom, nil)
	var created roomReply
	readFrame(t, host, TypeCreateRoom, &created)
	writeFrame(t, guest, TypeJoinRoom, joinRequest{RoomID: created.RoomID})
	readFrame(t, host, TypeOpponentJoined, nil)
	readFrame(t, host, TypeGameStart, nil)

	guest.Close()
	readFrame(t, host, TypeOpponentLeft, nil)
}

func TestHealthAndRooms(t *testing.T) {
	srv, url := newTestServer(t)
	conn := dialRaw(t, url)
	writeFrame(t, conn, TypeCreateRoom, nil)
	readFrame(t, conn, TypeCreateRoom, nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/rooms")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var stats multiplayer.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Rooms != 1 || stats.Waiting != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func nextEvent(t *testing.T, c *Client) multiplayer.SessionEvent {
	t.Helper()
	select {
	case evt := <-c.Events():
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return nil
}

func TestClientRoundTrip(t *testing.T) {
	_, url := newTestServer(t)
	ctx := context.Background()

	host, err := Dial(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer host.Close()
	guest, err := Dial(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer guest.Close()

	host.Send(multiplayer.CreateRoomMsg{SessionID: host.ID()})
	created, ok := nextEvent(t, host).(multiplayer.RoomCreatedEvent)
	if !ok {
		t.Fatal("expected RoomCreatedEvent")
	}

	guest.Send(multiplayer.JoinRoomMsg{SessionID: guest.ID(), Code: "NOPE1"})
	res, ok := nextEvent(t, guest).(multiplayer.JoinResultEvent)
	if !ok || !errors.Is(res.Err, multiplayer.ErrRoomNotFound) {
		t.Fatalf("join unknown = %+v", res)
	}

	guest.Send(multiplayer.JoinRoomMsg{SessionID: guest.ID(), Code: created.Code})
	if res, ok := nextEvent(t, guest).(multiplayer.JoinResultEvent); !ok || res.Err != nil {
		t.Fatalf("join = %+v", res)
	}
	start, ok := nextEvent(t, guest).(multiplayer.GameStartEvent)
	if !ok || start.Code != created.Code {
		t.Fatalf("guest start = %+v", start)
	}

	state := multiplayer.PlayerState{X: 12, Y: 34, Value: 7, Pending: calc.OpAdd, CalcPhase: calc.PhaseAwaitingNumber}
	guest.Send(multiplayer.PlayerStateMsg{SessionID: guest.ID(), State: state})

	if _, ok := nextEvent(t, host).(multiplayer.OpponentJoinedEvent); !ok {
		t.Fatal("expected OpponentJoinedEvent")
	}
	if _, ok := nextEvent(t, host).(multiplayer.GameStartEvent); !ok {
		t.Fatal("expected GameStartEvent")
	}
	got, ok := nextEvent(t, host).(multiplayer.OpponentStateEvent)
	if !ok || got.State != state {
		t.Fatalf("opponent state = %+v", got)
	}

	guest.Close()
	if _, ok := nextEvent(t, host).(multiplayer.OpponentLeftEvent); !ok {
		t.Fatal("expected OpponentLeftEvent after the guest closed")
	}
}
