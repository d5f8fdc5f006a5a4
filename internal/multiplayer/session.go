package multiplayer

import (
	"sync"

	"github.com/google/uuid"
)

// NewSessionID returns a fresh random session identifier.
func NewSessionID() SessionID {
	return SessionID(uuid.NewString())
}

// SessionHandle is how the coordinator reaches a player, whatever the
// transport. Send must not block the coordinator loop.
type SessionHandle interface {
	ID() SessionID
	Send(evt SessionEvent)
	Done() <-chan struct{}
}

// ChannelSession buffers events for one player. The terminal drains it
// through a relay; the websocket peer drains it in its write pump.
type ChannelSession struct {
	id     SessionID
	events chan SessionEvent
	done   chan struct{}
	once   sync.Once
	mu     sync.Mutex // serialises writers
}

// NewChannelSession creates a session holding up to size undelivered
// events (64 when size < 1).
func NewChannelSession(id SessionID, size int) *ChannelSession {
	if size < 1 {
		size = 64
	}
	return &ChannelSession{
		id:     id,
		events: make(chan SessionEvent, size),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID { return s.id }

// Send queues evt without blocking. When the buffer is full the oldest
// queued opponent snapshot makes room; room lifecycle events are never
// evicted. If only lifecycle events are queued, evt is dropped.
func (s *ChannelSession) Send(evt SessionEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
		return
	default:
	}
	if !s.evictSnapshot() {
		return
	}
	select {
	case s.events <- evt:
	default:
	}
}

// evictSnapshot removes the oldest queued OpponentStateEvent, keeping the
// order of everything else. Callers hold mu.
func (s *ChannelSession) evictSnapshot() bool {
	held := make([]SessionEvent, 0, cap(s.events))
drain:
	for {
		select {
		case e := <-s.events:
			held = append(held, e)
		default:
			break drain
		}
	}

	evicted := false
	for _, e := range held {
		if _, ok := e.(OpponentStateEvent); ok && !evicted {
			evicted = true
			continue
		}
		s.events <- e
	}
	return evicted
}

func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Close ends the session. The coordinator sees it as a disconnect.
// Idempotent.
func (s *ChannelSession) Close() {
	s.once.Do(func() { close(s.done) })
}

// SessionRegistry maps attached sessions by ID. Safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

func (r *SessionRegistry) Register(s SessionHandle) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns how many sessions are attached.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
