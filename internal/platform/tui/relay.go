package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

// Relay carries one terminal's lobby and match traffic to a coordinator,
// either in process or over a network connection.
type Relay interface {
	ID() multiplayer.SessionID
	Send(msg multiplayer.CoordinatorMessage)
	Events() <-chan multiplayer.SessionEvent
	Done() <-chan struct{}
	Close()
}

// Dialer opens a relay for one online visit.
type Dialer func() (Relay, error)

// DialerWithContext ties every relay d opens to ctx: when ctx ends the
// relay is closed, which the coordinator sees as a disconnect. Hosts use it
// so a dropped terminal frees its room even if the model never saw a key.
func DialerWithContext(ctx context.Context, d Dialer) Dialer {
	return func() (Relay, error) {
		r, err := d()
		if err != nil {
			return nil, err
		}
		go func() {
			select {
			case <-ctx.Done():
				r.Close()
			case <-r.Done():
			}
		}()
		return r, nil
	}
}

type localRelay struct {
	coord   *multiplayer.Coordinator
	session *multiplayer.ChannelSession
}

// NewLocalDialer returns a dialer attaching sessions to an in-process
// coordinator.
func NewLocalDialer(coord *multiplayer.Coordinator) Dialer {
	return func() (Relay, error) {
		s := multiplayer.NewChannelSession(multiplayer.NewSessionID(), 64)
		coord.Attach(s)
		return &localRelay{coord: coord, session: s}, nil
	}
}

func (r *localRelay) ID() multiplayer.SessionID { return r.session.ID() }
func (r *localRelay) Send(msg multiplayer.CoordinatorMessage) { r.coord.Send(msg) }
func (r *localRelay) Events() <-chan multiplayer.SessionEvent { return r.session.Events() }
func (r *localRelay) Done() <-chan struct{} { return r.session.Done() }
func (r *localRelay) Close() { r.session.Close() }

// Relay messages name their relay so a model ignores leftovers from one it
// already closed.
type relayEventMsg struct {
	from  multiplayer.SessionID
	event multiplayer.SessionEvent
}

type relayClosedMsg struct {
	from multiplayer.SessionID
}

// waitForEvent blocks for the next relay event or the relay's end.
func waitForEvent(r Relay) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-r.Events():
			return relayEventMsg{from: r.ID(), event: evt}
		case <-r.Done():
			return relayClosedMsg{from: r.ID()}
		}
	}
}
