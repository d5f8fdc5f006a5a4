package physics

import (
	"testing"

	"github.com/vovakirdan/calc-climb/internal/core"
)

func testWorld() World {
	return World{
		Width:  960,
		Height: 640,
		Platforms: []core.Rect{
			core.NewRect(0, 592, 960, 48),
			core.NewRect(0, 448, 280, 24),
		},
		Ladders: []core.Rect{
			core.NewRect(140, 472, 36, 120),
		},
	}
}

func grounded(x float64) Avatar {
	a := NewAvatar(core.Vec{X: x, Y: 552}, 32, 40)
	a.OnGround = true
	return a
}

func TestRestOnGround(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := NewAvatar(core.Vec{X: 60, Y: 552}, 32, 40)

	for i := 0; i < 10; i++ {
		r.Step(&a, Intents{}, nil, nil)
	}
	if a.Pos.Y != 552 || !a.OnGround || a.Vel.Y != 0 {
		t.Errorf("avatar = %+v, expected resting on ground", a)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		in      Intents
		startX  float64
		wantX   float64
		facing  bool
		walking bool
	}{
		{"right", Intents{Right: true}, 300, 304.5, true, true},
		{"left", Intents{Left: true}, 300, 295.5, false, true},
		{"both prefers right", Intents{Left: true, Right: true}, 300, 304.5, true, true},
		{"idle", Intents{}, 300, 300, true, false},
		{"clamped left", Intents{Left: true}, 2, 0, false, true},
		{"clamped right", Intents{Right: true}, 926, 928, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(DefaultParams(), testWorld())
			a := grounded(tc.startX)
			r.Step(&a, tc.in, nil, nil)

			if a.Pos.X != tc.wantX {
				t.Errorf("X = %v, expected %v", a.Pos.X, tc.wantX)
			}
			if a.FacingRight != tc.facing {
				t.Errorf("FacingRight = %v", a.FacingRight)
			}
			if (a.WalkPhase > 0) != tc.walking {
				t.Errorf("WalkPhase = %v", a.WalkPhase)
			}
		})
	}
}

func TestJumpArcLands(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := grounded(600)

	r.Step(&a, Intents{Jump: true}, nil, nil)
	if a.OnGround {
		t.Fatal("expected to leave the ground")
	}
	if a.Vel.Y >= 0 || a.Pos.Y >= 552 {
		t.Fatalf("expected upward motion, got %+v", a)
	}

	peak := a.Pos.Y
	for i := 0; i < 120 && !a.OnGround; i++ {
		r.Step(&a, Intents{}, nil, nil)
		peak = min(peak, a.Pos.Y)
	}
	if !a.OnGround || a.Pos.Y != 552 {
		t.Errorf("expected to land back at 552, got %+v", a)
	}
	if peak > 552-100 {
		t.Errorf("jump peak %v too low", peak)
	}
}

func TestNoJumpInAir(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := NewAvatar(core.Vec{X: 600, Y: 300}, 32, 40)

	r.Step(&a, Intents{Jump: true}, nil, nil)
	if a.Vel.Y <= 0 {
		t.Errorf("airborne jump should not apply impulse, vy = %v", a.Vel.Y)
	}
}

func TestClimbLadderToMidTier(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := grounded(142) // centre 158 inside ladder 140..176

	r.Step(&a, Intents{Up: true}, nil, nil)
	if !a.OnLadder {
		t.Fatal("expected ladder mode")
	}
	if a.Pos.Y != 548.5 {
		t.Errorf("Y = %v, expected 548.5 after one climb tick", a.Pos.Y)
	}
	if a.Vel != (core.Vec{}) {
		t.Errorf("ladder mode should zero velocity, got %+v", a.Vel)
	}

	for i := 0; i < 60 && a.OnLadder; i++ {
		r.Step(&a, Intents{Up: true}, nil, nil)
	}
	if a.OnLadder || !a.OnGround || a.Pos.Y != 408 {
		t.Errorf("expected to step off onto the mid platform at 408, got %+v", a)
	}
}

func TestLadderRequiresCentreOverlap(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := grounded(100) // centre 116, left of the ladder

	r.Step(&a, Intents{Down: true}, nil, nil)
	if a.OnLadder {
		t.Error("should not grab a ladder the centre does not overlap")
	}
}

func TestPushOutOfWall(t *testing.T) {
	w := testWorld()
	w.Platforms = append(w.Platforms, core.NewRect(200, 500, 40, 92))
	r := NewResolver(DefaultParams(), w)
	a := grounded(165)

	r.Step(&a, Intents{Right: true}, nil, nil)
	if a.Pos.X != 168 {
		t.Errorf("X = %v, expected push-out to 168", a.Pos.X)
	}
}

func TestBumpHead(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	// Directly under the mid platform (bottom at 472), rising.
	a := NewAvatar(core.Vec{X: 20, Y: 474}, 32, 40)
	a.Vel.Y = -10

	r.Step(&a, Intents{}, nil, nil)
	if a.Pos.Y != 472 || a.Vel.Y != 0 {
		t.Errorf("expected to stop under platform at 472, got %+v", a)
	}
}

func TestFallOut(t *testing.T) {
	w := testWorld()
	w.Platforms = nil
	r := NewResolver(DefaultParams(), w)
	a := NewAvatar(core.Vec{X: 400, Y: 552}, 32, 40)

	fell := false
	for i := 0; i < 200; i++ {
		if r.Step(&a, Intents{}, nil, nil).FellOut {
			fell = true
			break
		}
	}
	if !fell {
		t.Fatal("expected FellOut")
	}
	if a.Pos.Y <= 740 {
		t.Errorf("FellOut reported at Y = %v", a.Pos.Y)
	}
}

func TestTouchedPickups(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := grounded(200)
	pickups := []Pickup{
		{ID: 4, Box: core.NewRect(210, 544, 40, 40)},
		{ID: 7, Box: core.NewRect(600, 544, 40, 40)},
		{ID: 2, Box: core.NewRect(190, 560, 40, 40)},
	}

	res := r.Step(&a, Intents{}, pickups, nil)
	if len(res.Touched) != 2 || res.Touched[0] != 4 || res.Touched[1] != 2 {
		t.Errorf("Touched = %v, expected [4 2]", res.Touched)
	}
}

func TestPushApartHorizontal(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())
	a := grounded(100)
	opp := core.NewRect(120, 552, 32, 40)

	r.Step(&a, Intents{}, nil, &opp)
	if a.Pos.X != 93 {
		t.Errorf("X = %v, expected 93", a.Pos.X)
	}
	if opp.X != 120 {
		t.Error("opponent box must not move")
	}
}

func TestPushApartVertical(t *testing.T) {
	r := NewResolver(DefaultParams(), testWorld())

	above := NewAvatar(core.Vec{X: 100, Y: 520}, 32, 40)
	above.Vel.Y = 5
	r.pushApart(&above, core.NewRect(100, 552, 32, 40))
	if above.Pos.Y != 512 || !above.OnGround || above.Vel.Y != 0 {
		t.Errorf("above = %+v, expected stacked at 512", above)
	}

	below := NewAvatar(core.Vec{X: 100, Y: 560}, 32, 40)
	below.Vel.Y = -3
	r.pushApart(&below, core.NewRect(100, 552, 32, 40))
	if below.Pos.Y != 592 || below.Vel.Y != 0 {
		t.Errorf("below = %+v, expected pushed under to 592", below)
	}
}

func TestIntentsFrom(t *testing.T) {
	f := core.NewInputFrame()
	f.Set(core.ActionLeft)
	f.Set(core.ActionJump)

	in := IntentsFrom(f)
	if !in.Left || !in.Jump || in.Right || in.Up || in.Down {
		t.Errorf("IntentsFrom = %+v", in)
	}
}
