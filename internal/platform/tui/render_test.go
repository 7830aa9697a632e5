package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/stacktower/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorDefault)
	s.DrawTextColored(0, 1, "de", core.ColorDefault)

	got := RenderScreen(s)
	if got != "abc\nde " {
		t.Errorf("RenderScreen = %q", got)
	}
}

func TestRenderScreenKeepsTextAcrossColors(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawTextColored(0, 0, "ab", core.ColorBrightCyan)
	s.DrawTextColored(2, 0, "cd", core.ColorOrange)
	s.DrawTextColored(4, 0, "ef", core.ColorDefault)

	got := RenderScreen(s)
	// Escape codes may or may not be emitted depending on the terminal
	// profile, but the characters must come through in order.
	for _, part := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(got, part) {
			t.Errorf("output %q missing %q", got, part)
		}
	}
	if strings.Index(got, "ab") > strings.Index(got, "cd") || strings.Index(got, "cd") > strings.Index(got, "ef") {
		t.Errorf("runs out of order: %q", got)
	}
}

func TestWriteRunUnknownColorIsPlain(t *testing.T) {
	var sb strings.Builder
	writeRun(&sb, "xy", core.Color(200))
	if sb.String() != "xy" {
		t.Errorf("writeRun = %q", sb.String())
	}
}

func TestTickCmdDefaultsRate(t *testing.T) {
	if tickCmd(0) == nil {
		t.Error("tickCmd(0) should fall back to the default rate")
	}
}
