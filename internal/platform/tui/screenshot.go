package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vovakirdan/stacktower/internal/core"
)

// DefaultScreenshotDir is where local games save ctrl+s captures.
func DefaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stacktower", "screenshots")
}

// saveScreenshot writes the plain text of s to dir as <id>_<timestamp>.txt
// and returns the file path.
func saveScreenshot(dir, id string, s *core.Screen, at time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", id, at.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(s.String()+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}
