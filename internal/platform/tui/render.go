package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stacktower/internal/core"
)

// ansiCodes maps core.Color to an ANSI 256-color code.
// ColorDefault has no entry and renders unstyled.
var ansiCodes = [...]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// colorStyles holds one prebuilt style per color, indexed like ansiCodes.
var colorStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(ansiCodes))
	for i, code := range ansiCodes {
		if code != "" {
			styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
		}
	}
	return styles
}()

// writeRun appends a run of same-colored text, styling it unless the color
// is the terminal default.
func writeRun(sb *strings.Builder, text string, c core.Color) {
	if int(c) >= len(ansiCodes) || ansiCodes[c] == "" {
		sb.WriteString(text)
		return
	}
	sb.WriteString(colorStyles[c].Render(text))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells of the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		run.Reset()
		runColor := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != runColor {
				writeRun(&sb, run.String(), runColor)
				run.Reset()
				runColor = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		writeRun(&sb, run.String(), runColor)
	}
	return sb.String()
}
