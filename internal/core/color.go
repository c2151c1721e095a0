package core

// Color is the foreground color of a screen cell. The platform layer maps
// these to ANSI styles; the scene only ever deals in these names.
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
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightWhite
	ColorPink
	ColorRose
	ColorGold
	ColorGray
	ColorDim
)
