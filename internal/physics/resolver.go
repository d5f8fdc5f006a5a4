package physics

import "github.com/vovakirdan/calc-climb/internal/core"

// Resolver advances avatars through a world.
type Resolver struct {
	Params Params
	World  World
}

// NewResolver creates a resolver over static geometry.
func NewResolver(p Params, w World) *Resolver {
	return &Resolver{Params: p, World: w}
}

// Step advances a by one tick. opponent, when non-nil, is the last known box
// of the other player; only a is pushed. Touched pickups are reported but
// not consumed. A FellOut result skips the pickup and opponent tests.
func (r *Resolver) Step(a *Avatar, in Intents, pickups []Pickup, opponent *core.Rect) Result {
	p := r.Params

	onLadderNow := r.overlapsLadder(a)
	if onLadderNow && (in.Up || in.Down) {
		a.OnLadder = true
	}
	if !onLadderNow {
		a.OnLadder = false
	}

	dir := in.dir()
	if a.OnLadder {
		a.Vel = core.Vec{}
		if in.Up {
			a.Pos.Y -= p.ClimbSpeed
		}
		if in.Down {
			a.Pos.Y += p.ClimbSpeed
		}
		a.Pos.X += dir * p.LadderCreep
	} else {
		a.Vel.X = dir * p.RunSpeed
		if (in.Jump || in.Up) && a.OnGround {
			a.Vel.Y = p.JumpImpulse
			a.OnGround = false
		}
		a.Vel.Y = min(a.Vel.Y+p.Gravity, p.MaxFall)
	}

	r.moveX(a)
	r.moveY(a, in.Down)

	if a.Pos.Y > r.World.Height+p.FallMargin {
		return Result{FellOut: true}
	}

	if dir != 0 {
		a.FacingRight = dir > 0
		a.WalkPhase += 0.15
	} else {
		a.WalkPhase = 0
	}

	var res Result
	box := a.Rect()
	for _, pk := range pickups {
		if box.Intersects(pk.Box) {
			res.Touched = append(res.Touched, pk.ID)
		}
	}

	if opponent != nil {
		r.pushApart(a, *opponent)
	}
	return res
}

func (r *Resolver) overlapsLadder(a *Avatar) bool {
	cx := a.Pos.X + a.W/2
	for _, l := range r.World.Ladders {
		if cx > l.X && cx < l.Right() && a.Pos.Y+a.H > l.Y && a.Pos.Y < l.Bottom() {
			return true
		}
	}
	return false
}

func (r *Resolver) clampX(a *Avatar) {
	a.Pos.X = core.ClampF(a.Pos.X, 0, r.World.Width-a.W)
}

// moveX applies horizontal velocity and pushes out of platforms against the
// direction of travel.
func (r *Resolver) moveX(a *Avatar) {
	a.Pos.X += a.Vel.X
	r.clampX(a)

	for _, plat := range r.World.Platforms {
		if !a.Rect().Intersects(plat) {
			continue
		}
		if a.Vel.X > 0 {
			a.Pos.X = plat.X - a.W
		} else if a.Vel.X < 0 {
			a.Pos.X = plat.Right()
		}
	}
}

// moveY applies vertical velocity (ladder mode already moved Y) and lands
// or bumps against platforms.
func (r *Resolver) moveY(a *Avatar, holdDown bool) {
	if !a.OnLadder {
		a.Pos.Y += a.Vel.Y
	}
	a.OnGround = false

	for _, plat := range r.World.Platforms {
		if !a.Rect().Intersects(plat) {
			continue
		}
		if a.Vel.Y >= 0 || a.OnLadder {
			a.Pos.Y = plat.Y - a.H
			a.Vel.Y = 0
			a.OnGround = true
			if a.OnLadder && !holdDown {
				a.OnLadder = false
			}
		} else {
			a.Pos.Y = plat.Bottom()
			a.Vel.Y = 0
		}
	}
}

// pushApart separates a from the opponent box along the axis of least
// overlap. The opponent never moves.
func (r *Resolver) pushApart(a *Avatar, opp core.Rect) {
	me := a.Rect()
	if !me.Intersects(opp) {
		return
	}
	overlapX := min(me.Right(), opp.Right()) - max(me.X, opp.X)
	overlapY := min(me.Bottom(), opp.Bottom()) - max(me.Y, opp.Y)

	if overlapX < overlapY {
		push := overlapX/2 + 1
		if a.Pos.X < opp.X {
			a.Pos.X -= push
		} else {
			a.Pos.X += push
		}
		r.clampX(a)
		return
	}

	if a.Pos.Y < opp.Y {
		a.Pos.Y = opp.Y - a.H
		a.Vel.Y = 0
		a.OnGround = true
	} else {
		a.Pos.Y = opp.Bottom()
		a.Vel.Y = max(a.Vel.Y, 0)
	}
}
