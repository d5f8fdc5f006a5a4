package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", 2)
	s.Send(OpponentStateEvent{State: PlayerState{X: 1}})
	s.Send(OpponentStateEvent{State: PlayerState{X: 2}})
	s.Send(OpponentStateEvent{State: PlayerState{X: 3}})

	first := (<-s.Events()).(OpponentStateEvent)
	second := (<-s.Events()).(OpponentStateEvent)
	if first.State.X != 2 || second.State.X != 3 {
		t.Errorf("got %v, %v; expected oldest dropped", first.State.X, second.State.X)
	}
}

func TestChannelSessionKeepsLifecycleEvents(t *testing.T) {
	s := NewChannelSession("s", 3)
	s.Send(GameStartEvent{Code: "ABCDE"})
	s.Send(OpponentStateEvent{State: PlayerState{X: 1}})
	s.Send(OpponentStateEvent{State: PlayerState{X: 2}})
	s.Send(GameResultEvent{Result: ResultWin})
	s.Send(OpponentLeftEvent{})

	want := []SessionEvent{
		GameStartEvent{Code: "ABCDE"},
		GameResultEvent{Result: ResultWin},
		OpponentLeftEvent{},
	}
	for i, w := range want {
		select {
		case got := <-s.Events():
			if got != w {
				t.Errorf("event %d = %#v, want %#v", i, got, w)
			}
		default:
			t.Fatalf("event %d missing", i)
		}
	}

	// A snapshot arriving at a buffer of lifecycle events is the one dropped.
	s.Send(GameStartEvent{Code: "FGHJK"})
	s.Send(OpponentJoinedEvent{})
	s.Send(GameResultEvent{Result: ResultLose})
	s.Send(OpponentStateEvent{State: PlayerState{X: 3}})
	for i := 0; i < 3; i++ {
		if _, ok := (<-s.Events()).(OpponentStateEvent); ok {
			t.Error("snapshot displaced a lifecycle event")
		}
	}
}

func TestChannelSessionClosed(t *testing.T) {
	s := NewChannelSession("s", 2)
	s.Close()
	s.Close()
	s.Send(OpponentLeftEvent{})

	select {
	case evt := <-s.Events():
		t.Errorf("closed session received %T", evt)
	default:
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession(NewSessionID(), 1)
	b := NewChannelSession(NewSessionID(), 1)
	if a.ID() == b.ID() {
		t.Fatal("session ids should be unique")
	}

	r.Register(a)
	r.Register(b)
	if r.Count() != 2 {
		t.Errorf("Count = %d", r.Count())
	}
	if got, ok := r.Get(a.ID()); !ok || got.ID() != a.ID() {
		t.Error("Get failed")
	}
	r.Unregister(a.ID())
	if _, ok := r.Get(a.ID()); ok {
		t.Error("unregistered session still present")
	}
}
