package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/calc-climb/internal/config"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/multiplayer"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func startCoordinator(t *testing.T) *multiplayer.Coordinator {
	t.Helper()
	coord := multiplayer.NewCoordinator(multiplayer.DefaultCoordinatorConfig(), nil, nil)
	coord.Start()
	t.Cleanup(coord.Stop)
	return coord
}

func dial(t *testing.T, d Dialer) Relay {
	t.Helper()
	r, err := d()
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

// deliver waits for the relay's next event and feeds it to m.
func deliver(t *testing.T, m OnlineModel, r Relay) OnlineModel {
	t.Helper()
	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- waitForEvent(r)() }()

	select {
	case msg := <-msgs:
		next, _ := m.Update(msg)
		return next.(OnlineModel)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relay event")
	}
	return m
}

func press(m OnlineModel, msg tea.KeyMsg) OnlineModel {
	next, _ := m.Update(msg)
	return next.(OnlineModel)
}

func TestOnlineMatchStart(t *testing.T) {
	coord := startCoordinator(t)
	dialer := NewLocalDialer(coord)
	r1, r2 := dial(t, dialer), dial(t, dialer)
	gameCfg := config.DefaultCalcClimbConfig()

	host := NewOnlineModel(r1, testRuntime(), gameCfg)
	guest := NewOnlineModel(r2, testRuntime(), gameCfg)

	host = press(host, runeKey('c'))
	host = deliver(t, host, r1)
	if host.State() != OnlineStateHostWaiting {
		t.Fatalf("host state = %v, want HostWaiting", host.State())
	}
	code := host.RoomCode()
	if len(code) != multiplayer.CodeLength {
		t.Fatalf("room code %q", code)
	}

	guest = press(guest, runeKey('j'))
	if guest.State() != OnlineStateJoinEnterCode {
		t.Fatalf("guest state = %v, want JoinEnterCode", guest.State())
	}
	guest.code.SetValue(code)
	guest = press(guest, tea.KeyMsg{Type: tea.KeyEnter})
	if guest.State() != OnlineStateJoinWaiting {
		t.Fatalf("guest state = %v, want JoinWaiting", guest.State())
	}

	guest = deliver(t, guest, r2) // join result
	guest = deliver(t, guest, r2) // game start
	host = deliver(t, host, r1)   // opponent joined
	host = deliver(t, host, r1)   // game start

	for name, m := range map[string]OnlineModel{"host": host, "guest": guest} {
		if m.State() != OnlineStateInMatch {
			t.Errorf("%s state = %v, want InMatch", name, m.State())
		}
		if !m.Session().Online() {
			t.Errorf("%s session is not online", name)
		}
	}
	if host.Session().Level().Seed != guest.Session().Level().Seed {
		t.Error("players got different levels")
	}

	guest = press(guest, tea.KeyMsg{Type: tea.KeyEscape})
	if guest.State() != OnlineStateChooseMode {
		t.Errorf("guest state after leaving = %v", guest.State())
	}
	host = deliver(t, host, r1)
	if st := host.Session().State(); !st.GameOver {
		t.Error("host match should end when the opponent leaves")
	}
}

func TestOnlineJoinUnknownRoom(t *testing.T) {
	coord := startCoordinator(t)
	r := dial(t, NewLocalDialer(coord))
	m := NewOnlineModel(r, testRuntime(), config.DefaultCalcClimbConfig())

	m = press(m, runeKey('j'))
	m.code.SetValue("zzzzz")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = deliver(t, m, r)

	if m.State() != OnlineStateJoinEnterCode {
		t.Errorf("state = %v, want JoinEnterCode", m.State())
	}
	if m.Err() != string(multiplayer.ErrRoomNotFound) {
		t.Errorf("Err() = %q", m.Err())
	}
}

func TestOnlineIgnoresStaleRelay(t *testing.T) {
	coord := startCoordinator(t)
	r := dial(t, NewLocalDialer(coord))
	m := NewOnlineModel(r, testRuntime(), config.DefaultCalcClimbConfig())

	next, _ := m.Update(relayClosedMsg{from: "someone-else"})
	m = next.(OnlineModel)
	if m.BackToMenu() {
		t.Fatal("closed message from another relay ended the visit")
	}

	next, _ = m.Update(relayClosedMsg{from: r.ID()})
	m = next.(OnlineModel)
	if !m.BackToMenu() || m.Err() == "" {
		t.Error("lost connection should return to the menu with an error")
	}
}

func TestOnlineLobbyBack(t *testing.T) {
	coord := startCoordinator(t)
	r := dial(t, NewLocalDialer(coord))
	m := NewOnlineModel(r, testRuntime(), config.DefaultCalcClimbConfig())

	m = press(m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc in the lobby should leave the online flow")
	}
}
