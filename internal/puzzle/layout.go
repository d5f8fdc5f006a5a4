package puzzle

import "github.com/vovakirdan/calc-climb/internal/core"

// World dimensions in world units. The layout is the same for every level;
// only tile placement and the target vary with the seed.
const (
	Width     = 960
	Height    = 640
	Unit      = 48
	GroundY   = Height - Unit   // 592
	MidY      = Height - Unit*4 // 448
	TopY      = Height - Unit*7 // 304
	PlatformH = Unit / 2
	LadderW   = 36
	TileSize  = 40
	PlayerW   = 32
	PlayerH   = 40
	MaxTier   = 12
)

// Platforms returns the seven static platforms: the full-width ground, three
// mid platforms and three top platforms.
func Platforms() []core.Rect {
	return []core.Rect{
		core.NewRect(0, GroundY, Width, Unit),
		core.NewRect(0, MidY, 280, PlatformH),
		core.NewRect(340, MidY, 280, PlatformH),
		core.NewRect(680, MidY, 280, PlatformH),
		core.NewRect(60, TopY, 240, PlatformH),
		core.NewRect(360, TopY, 240, PlatformH),
		core.NewRect(660, TopY, 240, PlatformH),
	}
}

// Ladders returns the five ladders. Each spans from the underside of the
// upper tier to the top of the tier below.
func Ladders() []core.Rect {
	lower := float64(GroundY - MidY - PlatformH)
	upper := float64(MidY - TopY - PlatformH)
	return []core.Rect{
		core.NewRect(140, MidY+PlatformH, LadderW, lower),
		core.NewRect(460, MidY+PlatformH, LadderW, lower),
		core.NewRect(780, MidY+PlatformH, LadderW, lower),
		core.NewRect(300, TopY+PlatformH, LadderW, upper),
		core.NewRect(660, TopY+PlatformH, LadderW, upper),
	}
}

// DropSpots returns the candidate tile positions in their canonical order,
// eight units above each tier surface.
func DropSpots() []core.Vec {
	g := float64(GroundY - TileSize - 8)
	m := float64(MidY - TileSize - 8)
	t := float64(TopY - TileSize - 8)
	return []core.Vec{
		{X: 200, Y: g}, {X: 380, Y: g}, {X: 560, Y: g}, {X: 740, Y: g},
		{X: 60, Y: m}, {X: 360, Y: m}, {X: 520, Y: m}, {X: 800, Y: m},
		{X: 120, Y: t}, {X: 420, Y: t}, {X: 720, Y: t},
	}
}

// PlayerStart is the spawn point at the bottom-left of the ground tier.
func PlayerStart() core.Vec {
	return core.Vec{X: 60, Y: GroundY - PlayerH}
}
