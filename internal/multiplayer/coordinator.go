package multiplayer

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	Levels    int    // match level index is drawn from [0, Levels)
	InboxSize int    // buffered messages before Send blocks
	Source    Source // nil uses the runtime random generator
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		Levels:    3,
		InboxSize: 256,
	}
}

var errStopped = errors.New("multiplayer: coordinator stopped")

// Coordinator serialises every room operation through one goroutine and
// delivers the resulting events to sessions.
type Coordinator struct {
	logger      *log.Logger
	sessions    *SessionRegistry
	rooms       *Rooms
	resultSaver MatchResultSaver // Optional, can be nil

	msgChan  chan CoordinatorMessage
	done     chan struct{}
	stopOnce sync.Once
	saves    sync.WaitGroup
}

// NewCoordinator creates a new coordinator. A nil logger discards output.
func NewCoordinator(cfg CoordinatorConfig, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if sessions == nil {
		sessions = NewSessionRegistry()
	}
	if cfg.InboxSize < 1 {
		cfg.InboxSize = DefaultCoordinatorConfig().InboxSize
	}
	return &Coordinator{
		logger:   logger,
		sessions: sessions,
		rooms:    NewRooms(cfg.Source, cfg.Levels),
		msgChan:  make(chan CoordinatorMessage, cfg.InboxSize),
		done:     make(chan struct{}),
	}
}

// SetResultSaver sets the optional match result saver.
func (c *Coordinator) SetResultSaver(saver MatchResultSaver) {
	c.resultSaver = saver
}

// Sessions returns the registry events are delivered through.
func (c *Coordinator) Sessions() *SessionRegistry {
	return c.sessions
}

// Start begins the coordinator's background processing.
func (c *Coordinator) Start() {
	go c.processMessages()
}

// Stop shuts down the coordinator and waits for pending result saves.
// Safe to call multiple times.
func (c *Coordinator) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
	c.saves.Wait()
}

// Send sends a message to the coordinator for async processing.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgChan <- msg:
	case <-c.done:
	}
}

// Attach registers a session and watches its Done channel; when it closes
// the session is disconnected from its room.
func (c *Coordinator) Attach(session SessionHandle) {
	c.sessions.Register(session)
	go func() {
		select {
		case <-session.Done():
			c.Send(SessionDisconnectedMsg{SessionID: session.ID()})
		case <-c.done:
		}
	}()
}

// Stats returns room counters, read through the coordinator loop.
func (c *Coordinator) Stats(ctx context.Context) (Stats, error) {
	select {
	case <-c.done:
		return Stats{}, errStopped
	default:
	}

	reply := make(chan Stats, 1)
	select {
	case c.msgChan <- statsMsg{reply: reply}:
	case <-c.done:
		return Stats{}, errStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
	select {
	case st := <-reply:
		return st, nil
	case <-c.done:
		return Stats{}, errStopped
	case <-ctx.Done():
		return Stats{}, ctx.Err()
	}
}

// processMessages handles incoming messages.
func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgChan:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case statsMsg:
		st := c.rooms.Stats()
		st.Sessions = c.sessions.Count()
		m.reply <- st
		return
	case SessionDisconnectedMsg:
		defer c.sessions.Unregister(m.SessionID)
	}

	for _, d := range c.rooms.Handle(msg) {
		c.logDelivery(d)
		if s, ok := c.sessions.Get(d.To); ok {
			s.Send(d.Event)
		}
	}

	for _, res := range c.rooms.DrainResults() {
		c.logger.Info("match decided",
			"room", res.Code, "winner", res.Winner, "loser", res.Loser, "reason", res.Reason)
		c.save(res)
	}
}

func (c *Coordinator) save(res MatchResult) {
	if c.resultSaver == nil {
		return
	}
	c.saves.Add(1)
	go func() {
		defer c.saves.Done()
		if err := c.resultSaver.SaveMatchResult(res); err != nil {
			c.logger.Warn("could not save match result", "room", res.Code, "error", err)
		}
	}()
}

func (c *Coordinator) logDelivery(d Delivery) {
	switch e := d.Event.(type) {
	case RoomCreatedEvent:
		c.logger.Info("room created", "room", e.Code, "session", d.To)
	case JoinResultEvent:
		if e.Err != nil {
			c.logger.Debug("join rejected", "room", e.Code, "session", d.To, "error", e.Err)
			return
		}
		c.logger.Info("room joined", "room", e.Code, "session", d.To)
	case GameStartEvent:
		if e.PlayerIndex == 0 {
			c.logger.Info("match started", "room", e.Code, "level", e.LevelIndex, "seed", e.Seed)
		}
	case OpponentLeftEvent:
		c.logger.Info("opponent left", "session", d.To)
	case RoomErrorEvent:
		c.logger.Debug("request rejected", "session", d.To, "error", e.Err)
	}
}
