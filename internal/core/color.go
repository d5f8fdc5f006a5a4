package core

// Color is a foreground color for a screen cell. The platform layer maps it
// to a terminal color; games only pick from this palette.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightMagenta
	ColorGray
)

// Semantic aliases used by the climbing game renderer.
const (
	ColorPlatform = ColorBlue
	ColorLadder   = ColorYellow
	ColorNumber   = ColorBrightCyan
	ColorOperator = ColorBrightMagenta
	ColorPlayer   = ColorBrightGreen
	ColorOpponent = ColorBrightRed
	ColorHUD      = ColorWhite
	ColorHint     = ColorBrightYellow
)
