package multiplayer

// SessionEvent represents an event sent from the coordinator to a session.
type SessionEvent interface {
	sessionEvent()
}

// RoomCreatedEvent answers a create request.
type RoomCreatedEvent struct {
	Code        string
	PlayerIndex int
}

func (RoomCreatedEvent) sessionEvent() {}

// JoinResultEvent answers a join request. Err is nil on success.
type JoinResultEvent struct {
	Code        string
	PlayerIndex int
	Err         error
}

func (JoinResultEvent) sessionEvent() {}

// OpponentJoinedEvent tells the waiting peer someone joined.
type OpponentJoinedEvent struct{}

func (OpponentJoinedEvent) sessionEvent() {}

// GameStartEvent starts a match. Both peers receive the same level index
// and seed.
type GameStartEvent struct {
	Code        string
	LevelIndex  int
	Seed        int64
	PlayerIndex int
}

func (GameStartEvent) sessionEvent() {}

// OpponentStateEvent carries the other peer's latest snapshot.
type OpponentStateEvent struct {
	State PlayerState
}

func (OpponentStateEvent) sessionEvent() {}

// OpponentTileClaimedEvent tells a peer the opponent collected a tile.
type OpponentTileClaimedEvent struct {
	Claim TileClaim
}

func (OpponentTileClaimedEvent) sessionEvent() {}

// GameResultEvent ends a match for one peer.
type GameResultEvent struct {
	Result GameResult
}

func (GameResultEvent) sessionEvent() {}

// OpponentWantsRematchEvent is sent when the other peer asked for a rematch.
type OpponentWantsRematchEvent struct{}

func (OpponentWantsRematchEvent) sessionEvent() {}

// OpponentLeftEvent is sent when the other peer left or disconnected.
type OpponentLeftEvent struct{}

func (OpponentLeftEvent) sessionEvent() {}

// RoomErrorEvent reports a rejected request other than join.
type RoomErrorEvent struct {
	Err error
}

func (RoomErrorEvent) sessionEvent() {}

// CoordinatorMessage represents a message from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateRoomMsg requests a new room with the sender as player 0.
type CreateRoomMsg struct {
	SessionID SessionID
}

func (CreateRoomMsg) coordinatorMessage() {}

// JoinRoomMsg requests joining an existing room.
type JoinRoomMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinRoomMsg) coordinatorMessage() {}

// PlayerStateMsg relays a snapshot to the opponent.
type PlayerStateMsg struct {
	SessionID SessionID
	State     PlayerState
}

func (PlayerStateMsg) coordinatorMessage() {}

// TileClaimedMsg relays a tile pickup to the opponent.
type TileClaimedMsg struct {
	SessionID SessionID
	Claim     TileClaim
}

func (TileClaimedMsg) coordinatorMessage() {}

// PlayerWonMsg reports that the sender reached the target.
type PlayerWonMsg struct {
	SessionID SessionID
}

func (PlayerWonMsg) coordinatorMessage() {}

// RematchMsg marks the sender ready for another match.
type RematchMsg struct {
	SessionID SessionID
}

func (RematchMsg) coordinatorMessage() {}

// LeaveRoomMsg removes the sender from its room but keeps the session.
type LeaveRoomMsg struct {
	SessionID SessionID
}

func (LeaveRoomMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session's transport goes away.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}

// statsMsg asks the coordinator loop for counters.
type statsMsg struct {
	reply chan Stats
}

func (statsMsg) coordinatorMessage() {}
