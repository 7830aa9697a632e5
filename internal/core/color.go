package core

// Color is a foreground color for a screen cell. The platform maps it to an
// ANSI 256-color code.
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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Palette is the set of colors platforms cycle through, indexed by color tag.
var Palette = []Color{
	ColorBrightCyan,
	ColorBrightMagenta,
	ColorBrightYellow,
	ColorBrightGreen,
	ColorOrange,
	ColorBrightBlue,
	ColorBrightRed,
}

// PaletteColor returns the palette entry for a tag, wrapping around.
func PaletteColor(tag int) Color {
	if tag < 0 {
		tag = -tag
	}
	return Palette[tag%len(Palette)]
}
