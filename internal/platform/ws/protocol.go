// Package ws serves the room coordinator over websockets and provides the
// matching client. Frames are JSON envelopes {"type": ..., "data": ...}.
package ws

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

// Message types. Requests and their answers share a name.
const (
	TypeCreateRoom           = "create-room"
	TypeJoinRoom             = "join-room"
	TypePlayerState          = "player-state"
	TypeTileClaimed          = "tile-claimed"
	TypePlayerWon            = "player-won"
	TypeRematch              = "rematch"
	TypeLeaveRoom            = "leave-room"
	TypeGameStart            = "game-start"
	TypeOpponentState        = "opponent-state"
	TypeOpponentTileClaimed  = "opponent-tile-claimed"
	TypeGameResult           = "game-result"
	TypeOpponentWantsRematch = "opponent-wants-rematch"
	TypeOpponentJoined       = "opponent-joined"
	TypeOpponentLeft         = "opponent-left"
	TypeError                = "error"
)

// Envelope is one websocket frame.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type joinRequest struct {
	RoomID string `json:"roomId"`
}

type roomReply struct {
	Success     bool   `json:"success"`
	RoomID      string `json:"roomId,omitempty"`
	PlayerIndex int    `json:"playerIndex"`
	Error       string `json:"error,omitempty"`
}

type gameStart struct {
	RoomID      string `json:"roomId"`
	LevelIndex  int    `json:"levelIndex"`
	Seed        int64  `json:"seed"`
	PlayerIndex int    `json:"playerIndex"`
}

type gameResult struct {
	Result multiplayer.GameResult `json:"result"`
}

type errorReply struct {
	Error string `json:"error"`
}

func envelope(typ string, data any) (Envelope, error) {
	if data == nil {
		return Envelope{Type: typ}, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("ws: encode %s: %w", typ, err)
	}
	return Envelope{Type: typ, Data: raw}, nil
}

func (e Envelope) decode(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("ws: %s: missing data", e.Type)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("ws: decode %s: %w", e.Type, err)
	}
	return nil
}

// DecodeMessage turns a client frame into a coordinator message from id.
func DecodeMessage(id multiplayer.SessionID, e Envelope) (multiplayer.CoordinatorMessage, error) {
	switch e.Type {
	case TypeCreateRoom:
		return multiplayer.CreateRoomMsg{SessionID: id}, nil

	case TypeJoinRoom:
		var req joinRequest
		if err := e.decode(&req); err != nil {
			return nil, err
		}
		return multiplayer.JoinRoomMsg{SessionID: id, Code: req.RoomID}, nil

	case TypePlayerState:
		var st multiplayer.PlayerState
		if err := e.decode(&st); err != nil {
			return nil, err
		}
		return multiplayer.PlayerStateMsg{SessionID: id, State: st}, nil

	case TypeTileClaimed:
		var c multiplayer.TileClaim
		if err := e.decode(&c); err != nil {
			return nil, err
		}
		return multiplayer.TileClaimedMsg{SessionID: id, Claim: c}, nil

	case TypePlayerWon:
		return multiplayer.PlayerWonMsg{SessionID: id}, nil
	case TypeRematch:
		return multiplayer.RematchMsg{SessionID: id}, nil
	case TypeLeaveRoom:
		return multiplayer.LeaveRoomMsg{SessionID: id}, nil
	}
	return nil, fmt.Errorf("ws: unknown message type %q", e.Type)
}

// EncodeMessage is the client side of DecodeMessage. The sender's id is
// implied by the connection.
func EncodeMessage(msg multiplayer.CoordinatorMessage) (Envelope, error) {
	switch m := msg.(type) {
	case multiplayer.CreateRoomMsg:
		return envelope(TypeCreateRoom, nil)
	case multiplayer.JoinRoomMsg:
		return envelope(TypeJoinRoom, joinRequest{RoomID: m.Code})
	case multiplayer.PlayerStateMsg:
		return envelope(TypePlayerState, m.State)
	case multiplayer.TileClaimedMsg:
		return envelope(TypeTileClaimed, m.Claim)
	case multiplayer.PlayerWonMsg:
		return envelope(TypePlayerWon, nil)
	case multiplayer.RematchMsg:
		return envelope(TypeRematch, nil)
	case multiplayer.LeaveRoomMsg:
		return envelope(TypeLeaveRoom, nil)
	}
	return Envelope{}, fmt.Errorf("ws: %T cannot be sent by a client", msg)
}

// EncodeEvent turns a coordinator event into a server frame.
func EncodeEvent(evt multiplayer.SessionEvent) (Envelope, error) {
	switch e := evt.(type) {
	case multiplayer.RoomCreatedEvent:
		return envelope(TypeCreateRoom, roomReply{Success: true, RoomID: e.Code, PlayerIndex: e.PlayerIndex})

	case multiplayer.JoinResultEvent:
		reply := roomReply{Success: e.Err == nil, RoomID: e.Code, PlayerIndex: e.PlayerIndex}
		if e.Err != nil {
			reply.Error = e.Err.Error()
		}
		return envelope(TypeJoinRoom, reply)

	case multiplayer.GameStartEvent:
		return envelope(TypeGameStart, gameStart{
			RoomID:      e.Code,
			LevelIndex:  e.LevelIndex,
			Seed:        e.Seed,
			PlayerIndex: e.PlayerIndex,
		})

	case multiplayer.OpponentStateEvent:
		return envelope(TypeOpponentState, e.State)
	case multiplayer.OpponentTileClaimedEvent:
		return envelope(TypeOpponentTileClaimed, e.Claim)
	case multiplayer.GameResultEvent:
		return envelope(TypeGameResult, gameResult{Result: e.Result})
	case multiplayer.OpponentWantsRematchEvent:
		return envelope(TypeOpponentWantsRematch, nil)
	case multiplayer.OpponentJoinedEvent:
		return envelope(TypeOpponentJoined, nil)
	case multiplayer.OpponentLeftEvent:
		return envelope(TypeOpponentLeft, nil)
	case multiplayer.RoomErrorEvent:
		return envelope(TypeError, errorReply{Error: e.Err.Error()})
	}
	return Envelope{}, fmt.Errorf("ws: cannot encode %T", evt)
}

// DecodeEvent is the client side of EncodeEvent. Room errors come back as
// multiplayer.RoomError so errors.Is still matches the sentinels.
func DecodeEvent(e Envelope) (multiplayer.SessionEvent, error) {
	switch e.Type {
	case TypeCreateRoom:
		var r roomReply
		if err := e.decode(&r); err != nil {
			return nil, err
		}
		if !r.Success {
			return multiplayer.RoomErrorEvent{Err: multiplayer.RoomError(r.Error)}, nil
		}
		return multiplayer.RoomCreatedEvent{Code: r.RoomID, PlayerIndex: r.PlayerIndex}, nil

	case TypeJoinRoom:
		var r roomReply
		if err := e.decode(&r); err != nil {
			return nil, err
		}
		evt := multiplayer.JoinResultEvent{Code: r.RoomID, PlayerIndex: r.PlayerIndex}
		if !r.Success {
			evt.Err = multiplayer.RoomError(r.Error)
		}
		return evt, nil

	case TypeGameStart:
		var g gameStart
		if err := e.decode(&g); err != nil {
			return nil, err
		}
		return multiplayer.GameStartEvent{
			Code:        g.RoomID,
			LevelIndex:  g.LevelIndex,
			Seed:        g.Seed,
			PlayerIndex: g.PlayerIndex,
		}, nil

	case TypeOpponentState:
		var st multiplayer.PlayerState
		if err := e.decode(&st); err != nil {
			return nil, err
		}
		return multiplayer.OpponentStateEvent{State: st}, nil

	case TypeOpponentTileClaimed:
		var c multiplayer.TileClaim
		if err := e.decode(&c); err != nil {
			return nil, err
		}
		return multiplayer.OpponentTileClaimedEvent{Claim: c}, nil

	case TypeGameResult:
		var r gameResult
		if err := e.decode(&r); err != nil {
			return nil, err
		}
		return multiplayer.GameResultEvent{Result: r.Result}, nil

	case TypeOpponentWantsRematch:
		return multiplayer.OpponentWantsRematchEvent{}, nil
	case TypeOpponentJoined:
		return multiplayer.OpponentJoinedEvent{}, nil
	case TypeOpponentLeft:
		return multiplayer.OpponentLeftEvent{}, nil

	case TypeError:
		var r errorReply
		if err := e.decode(&r); err != nil {
			return nil, err
		}
		return multiplayer.RoomErrorEvent{Err: multiplayer.RoomError(r.Error)}, nil
	}
	return nil, fmt.Errorf("ws: unknown event type %q", e.Type)
}
