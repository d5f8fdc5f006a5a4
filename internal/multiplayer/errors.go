package multiplayer

// RoomError is a rejected room request. Requests that fail never change
// room state.
type RoomError string

func (e RoomError) Error() string { return string(e) }

const (
	ErrRoomNotFound    RoomError = "room not found"
	ErrRoomFull        RoomError = "room is full"
	ErrRoomNotWaiting  RoomError = "match already in progress"
	ErrRoomNotFinished RoomError = "no finished match to rematch"
	ErrAlreadyInRoom   RoomError = "already in a room"
)
