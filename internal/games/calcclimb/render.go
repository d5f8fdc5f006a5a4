package calcclimb

import (
	"fmt"
	"math"

	"github.com/vovakirdan/calc-climb/internal/calc"
	"github.com/vovakirdan/calc-climb/internal/core"
	"github.com/vovakirdan/calc-climb/internal/multiplayer"
	"github.com/vovakirdan/calc-climb/internal/puzzle"
)

const (
	hudRows  = 2
	minCols  = 40
	minRows  = 12
	helpSolo = "arrows/wasd move  space jump  r restart  p pause  esc menu"
	helpLive = "arrows/wasd move  space jump  r restart  esc leave"
)

// viewport maps world units onto the cells below the HUD.
type viewport struct {
	top    int
	sx, sy float64
}

func newViewport(w, h int) viewport {
	rows := h - hudRows - 1
	return viewport{
		top: hudRows,
		sx:  float64(w) / puzzle.Width,
		sy:  float64(rows) / puzzle.Height,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

// surface rounds up so a platform never shares a row with whatever stands on it.
func (v viewport) surface(y float64) int {
	return v.top + int(math.Ceil(y*v.sy))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y*v.sy))
}

// Render draws the HUD, the scaled world and any overlay.
func (s *Session) Render(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	if w < minCols || h < minRows {
		dst.DrawTextCentered(h/2, "terminal too small", core.ColorRed)
		return
	}

	s.renderHUD(dst)
	v := newViewport(w, h)
	drawLevel(dst, v, &s.level)

	if op, ok := s.Opponent(); ok {
		dst.SetColor(v.col(op.X+puzzle.PlayerW/2), v.row(op.Y+puzzle.PlayerH-1), '&', core.ColorOpponent)
	}
	feet := s.player.Pos.Y + s.player.H - 1
	dst.SetColor(v.col(s.player.Rect().Center().X), v.row(feet), '@', core.ColorPlayer)

	help := helpSolo
	if s.online {
		help = helpLive
	}
	dst.DrawTextColor(0, h-1, help, core.ColorGray)

	s.renderOverlay(dst)
}

// RenderLevel draws a level's platforms, ladders and remaining tiles
// scaled to fill dst, with the spawn point marked '@'.
func RenderLevel(dst *core.Screen, l *puzzle.Level) {
	v := viewport{
		sx: float64(dst.Width()) / puzzle.Width,
		sy: float64(dst.Height()-1) / puzzle.Height,
	}
	drawLevel(dst, v, l)
	feet := l.PlayerStart.Y + puzzle.PlayerH - 1
	dst.SetColor(v.col(l.PlayerStart.X+puzzle.PlayerW/2), v.row(feet), '@', core.ColorPlayer)
}

func drawLevel(dst *core.Screen, v viewport, l *puzzle.Level) {
	for _, p := range l.Platforms {
		x0, x1 := v.col(p.X), v.col(p.Right()-1)
		dst.DrawHLine(x0, v.surface(p.Y), x1-x0+1, '=', core.ColorPlatform)
	}
	for _, ld := range l.Ladders {
		y0, y1 := v.surface(ld.Y), v.surface(ld.Bottom())
		dst.DrawVLine(v.col(ld.Center().X), y0, y1-y0, 'H', core.ColorLadder)
	}
	for _, t := range l.Tiles {
		if t.Collected {
			continue
		}
		c := t.Rect().Center()
		dst.SetColor(v.col(c.X), v.row(c.Y), t.Glyph(), tileColor(t))
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	cs := s.calc.State()
	pending := "-"
	if cs.Pending != calc.OpNone {
		pending = cs.Pending.String()
	}

	hud := fmt.Sprintf("TARGET %d  NOW %d  OP %s  STAGE %d (tier %d)",
		s.level.Target, cs.Display(), pending, s.stages+1, s.level.Tier)
	if s.online {
		hud = fmt.Sprintf("TARGET %d  NOW %d  OP %s  LEVEL %d",
			s.level.Target, cs.Display(), pending, s.level.Tier+1)
	}
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)

	if s.online {
		opp := "OPP -"
		if op, ok := s.Opponent(); ok {
			oppPending := "-"
			if op.Pending != calc.OpNone {
				oppPending = op.Pending.String()
			}
			opp = fmt.Sprintf("OPP %d %s", op.Value, oppPending)
		}
		dst.DrawTextColor(dst.Width()-len([]rune(opp)), 0, opp, core.ColorOpponent)
	}

	if s.flash != "" {
		dst.DrawTextColor(0, 1, s.flash, s.flashColor)
	} else {
		dst.DrawTextColor(0, 1, s.calc.Hint(), core.ColorHint)
	}
}

func (s *Session) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2
	switch {
	case s.paused:
		dst.DrawTextCentered(mid, " PAUSED ", core.ColorBrightYellow)
		dst.DrawTextCentered(mid+1, " p to resume ", core.ColorGray)

	case s.online && s.opponentLeft:
		dst.DrawTextCentered(mid, " OPPONENT LEFT ", core.ColorBrightRed)
		dst.DrawTextCentered(mid+1, " esc back to lobby ", core.ColorGray)

	case s.online && s.result == multiplayer.ResultWin:
		dst.DrawTextCentered(mid, " YOU WIN! ", core.ColorBrightGreen)
		s.renderRematchLine(dst, mid+1)

	case s.online && s.result == multiplayer.ResultLose:
		dst.DrawTextCentered(mid, " YOU LOSE... ", core.ColorBrightRed)
		s.renderRematchLine(dst, mid+1)

	case s.online && s.won:
		dst.DrawTextCentered(mid, fmt.Sprintf(" %d reached! waiting for result ", s.level.Target), core.ColorBrightYellow)

	case s.won:
		dst.DrawTextCentered(mid, " STAGE CLEAR! ", core.ColorBrightGreen)
		dst.DrawTextCentered(mid+1, fmt.Sprintf(" reached %d  n next stage  esc menu ", s.level.Target), core.ColorGray)
	}
}

func (s *Session) renderRematchLine(dst *core.Screen, y int) {
	switch {
	case s.rematchSent:
		dst.DrawTextCentered(y, " waiting for opponent... ", core.ColorGray)
	case s.opponentWantsRematch:
		dst.DrawTextCentered(y, " opponent wants a rematch! m accept  esc leave ", core.ColorBrightYellow)
	default:
		dst.DrawTextCentered(y, " m rematch  esc leave ", core.ColorGray)
	}
}
