package multiplayer

import "strings"

// MaxSeedValue bounds match seeds: seeds are drawn from [0, MaxSeedValue).
const MaxSeedValue = 999999999

// Seat is a peer's place in a room.
type Seat struct {
	Session SessionID
	Ready   bool // asked for a rematch
}

// Room is the coordinator's record of one pairing.
type Room struct {
	Code       string
	Seats      []Seat
	LevelIndex int
	Seed       int64
	Phase      RoomPhase
	Winner     SessionID
	Matches    int // matches started in this room
}

func (r *Room) seatOf(id SessionID) int {
	for i, s := range r.Seats {
		if s.Session == id {
			return i
		}
	}
	return -1
}

// other returns the seat that is not id.
func (r *Room) other(id SessionID) (SessionID, bool) {
	for _, s := range r.Seats {
		if s.Session != id {
			return s.Session, true
		}
	}
	return "", false
}

func (r *Room) clone() Room {
	c := *r
	c.Seats = append([]Seat(nil), r.Seats...)
	return c
}

// Delivery is an event addressed to one session.
type Delivery struct {
	To    SessionID
	Event SessionEvent
}

// Stats are coordinator counters.
type Stats struct {
	Rooms    int `json:"rooms"`
	Waiting  int `json:"waiting"`
	Playing  int `json:"playing"`
	Finished int `json:"finished"`
	Sessions int `json:"sessions"`
}

// Rooms is the room state machine. Handle is the only mutator; it is not
// safe for concurrent use and is driven by the coordinator loop.
type Rooms struct {
	src     Source
	levels  int
	rooms   map[string]*Room
	seated  map[SessionID]string
	results []MatchResult
}

// NewRooms creates an empty room table. Match level indices are drawn from
// [0, levels).
func NewRooms(src Source, levels int) *Rooms {
	if src == nil {
		src = NewRandSource()
	}
	return &Rooms{
		src:    src,
		levels: max(levels, 1),
		rooms:  make(map[string]*Room),
		seated: make(map[SessionID]string),
	}
}

// Handle applies one message and returns the events it produces, in order.
func (rs *Rooms) Handle(msg CoordinatorMessage) []Delivery {
	switch m := msg.(type) {
	case CreateRoomMsg:
		return rs.create(m.SessionID)
	case JoinRoomMsg:
		return rs.join(m.SessionID, m.Code)
	case PlayerStateMsg:
		return rs.relay(m.SessionID, OpponentStateEvent{State: m.State})
	case TileClaimedMsg:
		return rs.relay(m.SessionID, OpponentTileClaimedEvent{Claim: m.Claim})
	case PlayerWonMsg:
		return rs.won(m.SessionID)
	case RematchMsg:
		return rs.rematch(m.SessionID)
	case LeaveRoomMsg:
		return rs.leave(m.SessionID)
	case SessionDisconnectedMsg:
		return rs.leave(m.SessionID)
	}
	return nil
}

// DrainResults returns and clears the matches decided since the last call.
func (rs *Rooms) DrainResults() []MatchResult {
	out := rs.results
	rs.results = nil
	return out
}

// Room returns a copy of a room by code.
func (rs *Rooms) Room(code string) (Room, bool) {
	r, ok := rs.rooms[NormalizeCode(code)]
	if !ok {
		return Room{}, false
	}
	return r.clone(), true
}

// RoomOf returns the code of the room a session sits in.
func (rs *Rooms) RoomOf(id SessionID) (string, bool) {
	code, ok := rs.seated[id]
	return code, ok
}

// Stats counts rooms by phase.
func (rs *Rooms) Stats() Stats {
	st := Stats{Rooms: len(rs.rooms), Sessions: len(rs.seated)}
	for _, r := range rs.rooms {
		switch r.Phase {
		case PhaseWaiting:
			st.Waiting++
		case PhasePlaying:
			st.Playing++
		case PhaseFinished:
			st.Finished++
		}
	}
	return st
}

func (rs *Rooms) create(id SessionID) []Delivery {
	if _, ok := rs.seated[id]; ok {
		return []Delivery{{To: id, Event: RoomErrorEvent{Err: ErrAlreadyInRoom}}}
	}

	code := rs.newCode()
	rs.rooms[code] = &Room{
		Code:  code,
		Seats: []Seat{{Session: id}},
		Phase: PhaseWaiting,
	}
	rs.seated[id] = code
	return []Delivery{{To: id, Event: RoomCreatedEvent{Code: code, PlayerIndex: 0}}}
}

func (rs *Rooms) join(id SessionID, code string) []Delivery {
	code = NormalizeCode(code)
	fail := func(err error) []Delivery {
		return []Delivery{{To: id, Event: JoinResultEvent{Code: code, Err: err}}}
	}

	if _, ok := rs.seated[id]; ok {
		return fail(ErrAlreadyInRoom)
	}
	r, ok := rs.rooms[code]
	switch {
	case !ok:
		return fail(ErrRoomNotFound)
	case len(r.Seats) >= 2:
		return fail(ErrRoomFull)
	case r.Phase != PhaseWaiting:
		return fail(ErrRoomNotWaiting)
	}

	index := len(r.Seats)
	r.Seats = append(r.Seats, Seat{Session: id})
	rs.seated[id] = code

	out := []Delivery{{To: id, Event: JoinResultEvent{Code: code, PlayerIndex: index}}}
	for _, s := range r.Seats[:index] {
		out = append(out, Delivery{To: s.Session, Event: OpponentJoinedEvent{}})
	}
	if len(r.Seats) == 2 {
		out = append(out, rs.start(r)...)
	}
	return out
}

// start begins a match with a fresh level and seed.
func (rs *Rooms) start(r *Room) []Delivery {
	r.Phase = PhasePlaying
	r.Winner = ""
	r.LevelIndex = rs.src.IntN(rs.levels)
	r.Seed = int64(rs.src.IntN(MaxSeedValue))
	r.Matches++
	for i := range r.Seats {
		r.Seats[i].Ready = false
	}

	out := make([]Delivery, 0, len(r.Seats))
	for i, s := range r.Seats {
		out = append(out, Delivery{To: s.Session, Event: GameStartEvent{
			Code:        r.Code,
			LevelIndex:  r.LevelIndex,
			Seed:        r.Seed,
			PlayerIndex: i,
		}})
	}
	return out
}

func (rs *Rooms) relay(from SessionID, evt SessionEvent) []Delivery {
	r, ok := rs.roomOf(from)
	if !ok {
		return nil
	}
	to, ok := r.other(from)
	if !ok {
		return nil
	}
	return []Delivery{{To: to, Event: evt}}
}

func (rs *Rooms) won(id SessionID) []Delivery {
	r, ok := rs.roomOf(id)
	if !ok || r.Phase != PhasePlaying {
		return nil
	}

	r.Phase = PhaseFinished
	r.Winner = id
	out := []Delivery{{To: id, Event: GameResultEvent{Result: ResultWin}}}

	loser, hasLoser := r.other(id)
	if hasLoser {
		out = append(out, Delivery{To: loser, Event: GameResultEvent{Result: ResultLose}})
	}
	rs.record(r, id, loser, ReasonTarget)
	return out
}

func (rs *Rooms) rematch(id SessionID) []Delivery {
	r, ok := rs.roomOf(id)
	if !ok {
		return []Delivery{{To: id, Event: RoomErrorEvent{Err: ErrRoomNotFound}}}
	}
	if r.Phase != PhaseFinished || len(r.Seats) != 2 {
		return []Delivery{{To: id, Event: RoomErrorEvent{Err: ErrRoomNotFinished}}}
	}

	r.Seats[r.seatOf(id)].Ready = true
	for _, s := range r.Seats {
		if !s.Ready {
			other, _ := r.other(id)
			return []Delivery{{To: other, Event: OpponentWantsRematchEvent{}}}
		}
	}
	return rs.start(r)
}

func (rs *Rooms) leave(id SessionID) []Delivery {
	r, ok := rs.roomOf(id)
	if !ok {
		return nil
	}
	delete(rs.seated, id)

	i := r.seatOf(id)
	r.Seats = append(r.Seats[:i], r.Seats[i+1:]...)

	if len(r.Seats) == 0 {
		delete(rs.rooms, r.Code)
		return nil
	}

	remaining := r.Seats[0].Session
	if r.Phase == PhasePlaying {
		rs.record(r, remaining, id, ReasonForfeit)
	}

	r.Phase = PhaseWaiting
	r.Winner = ""
	for j := range r.Seats {
		r.Seats[j].Ready = false
	}
	return []Delivery{{To: remaining, Event: OpponentLeftEvent{}}}
}

func (rs *Rooms) roomOf(id SessionID) (*Room, bool) {
	code, ok := rs.seated[id]
	if !ok {
		return nil, false
	}
	r, ok := rs.rooms[code]
	return r, ok
}

func (rs *Rooms) record(r *Room, winner, loser SessionID, reason ResultReason) {
	rs.results = append(rs.results, MatchResult{
		Code:       r.Code,
		LevelIndex: r.LevelIndex,
		Seed:       r.Seed,
		Winner:     winner,
		Loser:      loser,
		Reason:     reason,
	})
}

// newCode draws codes until one is unused.
func (rs *Rooms) newCode() string {
	var b strings.Builder
	for {
		b.Reset()
		for i := 0; i < CodeLength; i++ {
			b.WriteByte(CodeAlphabet[rs.src.IntN(len(CodeAlphabet))])
		}
		if _, taken := rs.rooms[b.String()]; !taken {
			return b.String()
		}
	}
}
